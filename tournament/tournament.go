// Package tournament runs repeated head-to-head matches between agent
// lineups on top of the environment and records per-game and per-move
// results as CSV files.
package tournament

import (
	"fmt"
	"time"

	"monopoly/env"
	"monopoly/game"

	"github.com/rs/zerolog"
)

// Entrant is one competitor: a factory so every game gets a fresh,
// independently seeded agent.
type Entrant struct {
	ID   int
	Name string
	New  func(seed uint64) env.Agent
}

// Config controls a tournament run.
type Config struct {
	GamesPerMatch int
	Rules         game.Rules
	Seed          uint64
}

// GameRecord is one completed game.
type GameRecord struct {
	ID        int
	Entrant1  int
	Entrant2  int
	Seed      uint64
	Winner    string // entrant name, empty on a turn-limit draw
	Turns     int
	StartTime time.Time
	Duration  time.Duration
}

// MoveRecord is one decision point inside a game.
type MoveRecord struct {
	Game   int
	Step   int
	Turn   int
	Player int
	Phase  string
	Cash   int // acting player's cash at the decision point
}

// recorder captures a move record per observation frame.
type recorder struct {
	game  int
	step  int
	moves *[]MoveRecord
}

func (r *recorder) Draw(obs env.Observation) {
	r.step++
	*r.moves = append(*r.moves, MoveRecord{
		Game:   r.game,
		Step:   r.step,
		Turn:   obs.Turn,
		Player: obs.Acting,
		Phase:  obs.Phase.String(),
		Cash:   obs.Players[obs.Acting].Cash,
	})
}

// Run plays every pair of entrants against each other, alternating the
// starting seat between games, and returns all records.
func Run(cfg Config, entrants []Entrant, logger zerolog.Logger) ([]GameRecord, []MoveRecord, error) {
	if len(entrants) < 2 {
		return nil, nil, fmt.Errorf("tournament: need at least two entrants, got %d", len(entrants))
	}

	var games []GameRecord
	var moves []MoveRecord
	count := 0
	seed := cfg.Seed

	for i := 0; i < len(entrants); i++ {
		for j := i + 1; j < len(entrants); j++ {
			logger.Info().Str("entrant1", entrants[i].Name).Str("entrant2", entrants[j].Name).Msg("starting match")
			for g := 0; g < cfg.GamesPerMatch; g++ {
				count++
				seed++
				first, second := entrants[i], entrants[j]
				if g%2 == 1 {
					first, second = second, first
				}

				rec, gameMoves, err := playGame(cfg, count, seed, first, second, logger)
				if err != nil {
					return nil, nil, err
				}
				rec.Entrant1 = entrants[i].ID
				rec.Entrant2 = entrants[j].ID
				games = append(games, rec)
				moves = append(moves, gameMoves...)

				logger.Info().Int("game", count).Str("winner", rec.Winner).Int("turns", rec.Turns).Msg("game finished")
			}
		}
	}
	return games, moves, nil
}

func playGame(cfg Config, id int, seed uint64, first, second Entrant, logger zerolog.Logger) (GameRecord, []MoveRecord, error) {
	var moves []MoveRecord
	e := env.New(cfg.Rules, logger, env.WithRenderer(&recorder{game: id, moves: &moves}))

	agents := []env.Agent{first.New(seed), second.New(seed + 1)}
	start := time.Now()
	obs, err := e.Run(agents, seed)
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("tournament: game %d: %w", id, err)
	}

	rec := GameRecord{
		ID:        id,
		Seed:      seed,
		Turns:     obs.Turn,
		StartTime: start,
		Duration:  time.Since(start),
	}
	if obs.Winner >= 0 {
		rec.Winner = obs.Players[obs.Winner].Name
	}
	return rec, moves, nil
}
