// Package parquet provides data structures and functions for exporting run
// tracking data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/seasonlab/dropoff/schema"
)

// Run represents a single engine run with metadata.
// This struct maps to the dropoff_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalShows is the number of shows processed in this run (nullable)
	TotalShows *int64 `parquet:"total_shows,optional,snappy"`

	// TotalSeasons is the number of season KPI rows produced (nullable)
	TotalSeasons *int64 `parquet:"total_seasons,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ShowResult represents one show's verdicts for a run.
// This struct maps to the dropoff_show_results database table.
type ShowResult struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// ShowID is the show identifier
	ShowID string `parquet:"show_id,snappy"`

	// RunTime is when this show was processed
	RunTime time.Time `parquet:"run_time,snappy"`

	// SeasonCount is the number of seasons the show contributed
	SeasonCount int32 `parquet:"season_count,snappy"`

	// SeriesAvg is the show-wide vote-weighted average rating
	SeriesAvg float64 `parquet:"series_avg,snappy"`

	// SharkJumpSeason is the detected decline onset season (nullable)
	SharkJumpSeason *int32 `parquet:"shark_jump_season,optional,snappy"`

	// DurabilityIndex is the count of seasons above the series average
	DurabilityIndex int32 `parquet:"durability_index,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteShowResultsParquet writes a slice of ShowResult structs to a Parquet file.
func WriteShowResultsParquet(data []ShowResult, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ShowResult struct tags
	writer := parquet.NewGenericWriter[ShowResult](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts run store records to their Parquet representation.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	out := make([]Run, len(records))
	for i, r := range records {
		out[i] = Run{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalShows:    r.TotalShows,
			TotalSeasons:  r.TotalSeasons,
			ConfigParams:  r.ConfigParams,
		}
	}
	return out
}

// ConvertShowResultRecords converts show result records to their Parquet representation.
func ConvertShowResultRecords(records []schema.ShowResultRecord) []ShowResult {
	out := make([]ShowResult, len(records))
	for i, r := range records {
		var shark *int32
		if r.SharkJumpSeason != nil {
			v := int32(*r.SharkJumpSeason)
			shark = &v
		}
		out[i] = ShowResult{
			RunID:           r.RunID,
			ShowID:          r.ShowID,
			RunTime:         r.RunTime,
			SeasonCount:     int32(r.SeasonCount),
			SeriesAvg:       r.SeriesAvg,
			SharkJumpSeason: shark,
			DurabilityIndex: int32(r.DurabilityIndex),
		}
	}
	return out
}
