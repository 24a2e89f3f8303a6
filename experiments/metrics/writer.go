package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type AgentConfig struct {
	ID                int
	Goroutines        int
	Budget            time.Duration
	SimulationTimeout time.Duration
}

type GameRecord struct {
	ID     uuid.UUID
	Agents []int // AgentConfig.ID per seat
	GameMetric
}

type MoveRecord struct {
	Game uuid.UUID // GameRecord.ID
	MoveMetric
}

type agentConfigRow struct {
	ID                  int32 `parquet:"id"`
	Goroutines          int32 `parquet:"goroutines"`
	BudgetMs            int64 `parquet:"budget_ms"`
	SimulationTimeoutMs int64 `parquet:"simulation_timeout_ms"`
}

type gameRow struct {
	ID          string  `parquet:"id"`
	Agents      []int32 `parquet:"agents"`
	Seats       int32   `parquet:"seats"`
	Winners     []int32 `parquet:"winners"`
	StartTimeMs int64   `parquet:"start_time_ms"`
	EndTimeMs   int64   `parquet:"end_time_ms"`
	DurationMs  int64   `parquet:"duration_ms"`
	TotalMoves  int32   `parquet:"total_moves"`
}

type moveRow struct {
	Game                string `parquet:"game,dict"`
	Step                int32  `parquet:"step"`
	Seat                int32  `parquet:"seat"`
	Goroutines          int32  `parquet:"goroutines"`
	BudgetMs            int64  `parquet:"budget_ms"`
	SimulationTimeoutMs int64  `parquet:"simulation_timeout_ms"`
	DurationMs          int64  `parquet:"duration_ms"`
	Episodes            int32  `parquet:"episodes"`
	FullPlayouts        int32  `parquet:"full_playouts"`
	Timeouts            int32  `parquet:"timeouts"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the files of one experiment.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
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

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([]agentConfigRow, len(configs))
	for i, config := range configs {
		rows[i] = agentConfigRow{
			ID:                  int32(config.ID),
			Goroutines:          int32(config.Goroutines),
			BudgetMs:            config.Budget.Milliseconds(),
			SimulationTimeoutMs: config.SimulationTimeout.Milliseconds(),
		}
	}
	if err := writeParquet(filepath.Join(w.baseDir, "agent_configs.parquet"), rows, "agent_config_v1"); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([]gameRow, len(records))
	for i, record := range records {
		rows[i] = gameRow{
			ID:          record.ID.String(),
			Agents:      toInt32s(record.Agents),
			Seats:       int32(record.Seats),
			Winners:     toInt32s(record.Winners),
			StartTimeMs: record.StartTime.UnixMilli(),
			EndTimeMs:   record.EndTime.UnixMilli(),
			DurationMs:  record.Duration.Milliseconds(),
			TotalMoves:  int32(record.TotalMoves),
		}
	}
	if err := writeParquet(filepath.Join(w.baseDir, "game_records.parquet"), rows, "game_record_v1"); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([]moveRow, len(records))
	for i, record := range records {
		rows[i] = moveRow{
			Game:                record.Game.String(),
			Step:                int32(record.Step),
			Seat:                int32(record.Seat),
			Goroutines:          int32(record.Goroutines),
			BudgetMs:            record.Budget.Milliseconds(),
			SimulationTimeoutMs: record.SimulationTimeout.Milliseconds(),
			DurationMs:          record.Duration.Milliseconds(),
			Episodes:            int32(record.Episodes),
			FullPlayouts:        int32(record.FullPlayouts),
			Timeouts:            int32(record.Timeouts),
		}
	}
	if err := writeParquet(filepath.Join(w.baseDir, "move_records.parquet"), rows, "move_record_v1"); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

// writeParquet writes to a temp file and renames it, so a reader never sees
// a partial file.
func writeParquet[T any](path string, rows []T, schema string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func toInt32s(values []int) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v)
	}
	return out
}
