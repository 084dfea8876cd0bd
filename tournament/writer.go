package tournament

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores tournament results as CSV files under a timestamped
// directory.
type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>/ for this run's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the directory this writer stores into.
func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteEntrants(entrants []Entrant) error {
	f, err := os.Create(filepath.Join(w.baseDir, "entrants.csv"))
	if err != nil {
		return fmt.Errorf("failed to create entrants file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "name"}); err != nil {
		return fmt.Errorf("failed to write entrants header: %w", err)
	}
	for _, e := range entrants {
		row := []string{strconv.Itoa(e.ID), e.Name}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write entrant row: %w", err)
		}
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "game_records.csv"))
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "entrant1", "entrant2", "seed", "winner", "turns", "start_time", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Entrant1),
			strconv.Itoa(r.Entrant2),
			strconv.FormatUint(r.Seed, 10),
			r.Winner,
			strconv.Itoa(r.Turns),
			r.StartTime.Format(time.RFC3339),
			r.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	f, err := os.Create(filepath.Join(w.baseDir, "move_records.csv"))
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "step", "turn", "player", "phase", "cash"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			strconv.Itoa(r.Turn),
			strconv.Itoa(r.Player),
			r.Phase,
			strconv.Itoa(r.Cash),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}
	return nil
}
