package tournament

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"monopoly/agent"
	"monopoly/env"
	"monopoly/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testEntrants() []Entrant {
	return []Entrant{
		{ID: 1, Name: "random", New: func(seed uint64) env.Agent { return agent.NewRandom("random", seed) }},
		{ID: 2, Name: "greedy", New: func(uint64) env.Agent { return agent.NewGreedy("greedy") }},
	}
}

func TestRun(t *testing.T) {
	cfg := Config{GamesPerMatch: 2, Rules: game.StandardRules(), Seed: 42}
	games, moves, err := Run(cfg, testEntrants(), zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, games, 2)
	for i, g := range games {
		require.Equal(t, i+1, g.ID)
		require.Equal(t, 1, g.Entrant1)
		require.Equal(t, 2, g.Entrant2)
		if g.Winner != "" {
			require.Contains(t, []string{"random", "greedy"}, g.Winner)
		}
		require.Greater(t, g.Turns, 0)
	}
	require.NotEmpty(t, moves)
	require.Equal(t, 1, moves[0].Game)
	require.Equal(t, 1, moves[0].Step)

	t.Run("fewer than two entrants", func(t *testing.T) {
		_, _, err := Run(cfg, testEntrants()[:1], zerolog.Nop())
		require.Error(t, err)
	})
}

func TestRunIsSeedReproducible(t *testing.T) {
	cfg := Config{GamesPerMatch: 1, Rules: game.StandardRules(), Seed: 7}
	a, _, err := Run(cfg, testEntrants(), zerolog.Nop())
	require.NoError(t, err)
	b, _, err := Run(cfg, testEntrants(), zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, a[0].Winner, b[0].Winner)
	require.Equal(t, a[0].Turns, b[0].Turns)
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "smoke")
	require.NoError(t, err)

	entrants := testEntrants()
	games := []GameRecord{{
		ID: 1, Entrant1: 1, Entrant2: 2, Seed: 43,
		Winner: "greedy", Turns: 120,
		StartTime: time.Now(), Duration: 3 * time.Second,
	}}
	moves := []MoveRecord{{Game: 1, Step: 1, Turn: 0, Player: 0, Phase: "AwaitingRoll", Cash: 1500}}

	require.NoError(t, w.WriteEntrants(entrants))
	require.NoError(t, w.WriteGameRecords(games))
	require.NoError(t, w.WriteMoveRecords(moves))

	readCSV := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	t.Run("entrants file", func(t *testing.T) {
		rows := readCSV("entrants.csv")
		require.Equal(t, []string{"id", "name"}, rows[0])
		require.Len(t, rows, 3)
	})

	t.Run("game records file", func(t *testing.T) {
		rows := readCSV("game_records.csv")
		require.Len(t, rows, 2)
		require.Equal(t, "greedy", rows[1][4])
		require.Equal(t, "120", rows[1][5])
	})

	t.Run("move records file", func(t *testing.T) {
		rows := readCSV("move_records.csv")
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "1", "0", "0", "AwaitingRoll", "1500"}, rows[1])
	})
}
