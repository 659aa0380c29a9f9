package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID        int
	AgentRed  int // AgentConfig.ID
	AgentBlue int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <dir>/<name>/<timestamp> for one experiment run.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(dir, name, timestamp)
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

// WriteSetup stores the experiment description as setup.json.
func (w *Writer) WriteSetup(setup any) error {
	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "goroutines", "duration", "episodes", "cutoff", "evaluation", "rollout", "temperature"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
			config.Evaluation,
			config.Rollout,
			strconv.FormatFloat(config.Temperature, 'g', -1, 64),
		})
	}
	return w.writeCSV("agent_configs.csv", "agent configs", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent_red", "agent_blue", "starting_player", "winner", "score_red", "score_blue", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.AgentRed),
			strconv.Itoa(record.AgentBlue),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.Scores[0]),
			strconv.Itoa(record.Scores[1]),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "duration", "episodes", "full_playouts", "cache_hits", "is_tree_reset"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Move,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.CacheHits),
			strconv.FormatBool(record.IsTreeReset),
		})
	}
	return w.writeCSV("move_records.csv", "move records", header, rows)
}

func (w *Writer) writeCSV(filename, what string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", what, err)
	}
	return nil
}
