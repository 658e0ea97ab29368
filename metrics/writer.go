package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subdirectory of root for one session.
func NewWriter(root string, sessionID string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp+"-"+sessionID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSession(session SessionMetric) error {
	header := []string{"session_id", "scenario", "start_time", "end_time", "duration", "turns", "retries", "commits", "promotions", "completed", "retries_by_reason"}
	row := []string{
		session.SessionID,
		session.Scenario,
		session.StartTime.Format(time.RFC3339),
		session.EndTime.Format(time.RFC3339),
		session.Duration.String(),
		strconv.Itoa(session.Turns),
		strconv.Itoa(session.Retries),
		strconv.Itoa(session.Commits),
		strconv.Itoa(session.Promotions),
		strconv.FormatBool(session.Completed),
		formatCounts(session.RetriesByReason),
	}
	return w.write("session.csv", header, [][]string{row})
}

// formatCounts renders counts as "key=n" pairs sorted by key.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + strconv.Itoa(counts[k])
	}
	return strings.Join(pairs, ";")
}

func (w *Writer) WriteTurns(turns []TurnMetric) error {
	header := []string{"turn", "phase", "step", "input", "advanced", "reason", "committed", "promoted", "duration"}
	rows := make([][]string, 0, len(turns))
	for _, turn := range turns {
		rows = append(rows, []string{
			strconv.Itoa(turn.Turn),
			turn.Phase,
			turn.Step,
			turn.Input,
			strconv.FormatBool(turn.Advanced),
			turn.Reason,
			strconv.FormatBool(turn.Committed),
			strconv.FormatBool(turn.Promoted),
			turn.Duration.String(),
		})
	}
	return w.write("turns.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
