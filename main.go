package main

import (
	"flag"
	"os"
	"time"

	"monopoly/agent"
	"monopoly/env"
	"monopoly/game"
	"monopoly/tournament"

	"github.com/rs/zerolog"
)

func main() {
	games := flag.Int("games", 10, "games per matchup")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "base RNG seed")
	out := flag.String("out", "results", "directory for CSV results")
	debug := flag.Bool("debug", false, "per-action debug logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !*debug {
		logger = logger.Level(zerolog.InfoLevel)
	}

	entrants := []tournament.Entrant{
		{ID: 1, Name: "random", New: func(seed uint64) env.Agent { return agent.NewRandom("random", seed) }},
		{ID: 2, Name: "greedy", New: func(uint64) env.Agent { return agent.NewGreedy("greedy") }},
	}

	cfg := tournament.Config{
		GamesPerMatch: *games,
		Rules:         game.StandardRules(),
		Seed:          *seed,
	}

	logger.Info().Int("games", *games).Uint64("seed", *seed).Msg("starting tournament")
	gameRecords, moveRecords, err := tournament.Run(cfg, entrants, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("tournament failed")
	}

	writer, err := tournament.NewWriter(*out, "random_vs_greedy")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create results writer")
	}
	if err := writer.WriteEntrants(entrants); err != nil {
		logger.Fatal().Err(err).Msg("failed to store entrants")
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		logger.Fatal().Err(err).Msg("failed to store game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		logger.Fatal().Err(err).Msg("failed to store move records")
	}
	logger.Info().Str("dir", writer.Dir()).Int("games", len(gameRecords)).Msg("results stored")
}
