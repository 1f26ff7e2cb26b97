package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gat/game"
)

// AgentConfig describes one search configuration under measurement.
type AgentConfig struct {
	ID         int
	Depth      int
	MoveBudget time.Duration
	Weights    game.Weights
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// AcceptanceRecord is one accepted weight vector of a tuning run.
type AcceptanceRecord struct {
	Round   int
	Fitness float64
	Wins    int
	Losses  int
	Draws   int
	Weights game.Weights
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped result directory under experiments/<name>.
func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	path := filepath.Join(w.baseDir, "agent_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "depth", "move_budget"}
	for i := 0; i < game.NumFeatures; i++ {
		header = append(header, game.FeatureName(i))
	}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write agent configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			config.MoveBudget.String(),
		}
		for _, weight := range config.Weights {
			row = append(row, strconv.FormatFloat(weight, 'g', -1, 64))
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write agent config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "agent1", "agent2", "winner", "reason", "plies", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.Winner,
			record.Reason,
			strconv.Itoa(record.Plies),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "step", "player", "move", "score", "depth", "nodes", "cutoffs", "duration", "truncated"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			strconv.FormatFloat(record.Score, 'g', -1, 64),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Cutoffs),
			record.Duration.String(),
			strconv.FormatBool(record.Truncated),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteAcceptanceRecords(records []AcceptanceRecord) error {
	path := filepath.Join(w.baseDir, "acceptance_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create acceptance records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"round", "fitness", "wins", "losses", "draws"}
	for i := 0; i < game.NumFeatures; i++ {
		header = append(header, game.FeatureName(i))
	}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write acceptance records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Round),
			strconv.FormatFloat(record.Fitness, 'g', -1, 64),
			strconv.Itoa(record.Wins),
			strconv.Itoa(record.Losses),
			strconv.Itoa(record.Draws),
		}
		for _, weight := range record.Weights {
			row = append(row, strconv.FormatFloat(weight, 'g', -1, 64))
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write acceptance record row: %w", err)
		}
	}

	return nil
}
