package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/seasonlab/dropoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvertRunRecords tests the store-to-parquet conversion for runs.
func TestConvertRunRecords(t *testing.T) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Second)
	durationMs := int64(1000)
	totalShows := int64(4)
	totalSeasons := int64(27)
	params := `{"sample":true}`

	records := []schema.RunRecord{
		{
			RunID: 1, StartTime: start, EndTime: &end, RunDurationMs: &durationMs,
			TotalShows: &totalShows, TotalSeasons: &totalSeasons, ConfigParams: &params,
		},
		{RunID: 2, StartTime: start}, // incomplete run, all nullables nil
	}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 2)

	assert.Equal(t, int64(1), runs[0].RunID)
	assert.Equal(t, &end, runs[0].EndTime)
	assert.Equal(t, &durationMs, runs[0].RunDurationMs)
	assert.Equal(t, &params, runs[0].ConfigParams)

	assert.Nil(t, runs[1].EndTime)
	assert.Nil(t, runs[1].RunDurationMs)
	assert.Nil(t, runs[1].ConfigParams)
}

// TestConvertShowResultRecords tests the conversion of per-show verdicts.
func TestConvertShowResultRecords(t *testing.T) {
	runTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	onset := 5

	records := []schema.ShowResultRecord{
		{RunID: 1, ShowID: "tt0000001", RunTime: runTime, SeasonCount: 8, SeriesAvg: 7.5, SharkJumpSeason: &onset, DurabilityIndex: 3},
		{RunID: 1, ShowID: "tt0000002", RunTime: runTime, SeasonCount: 5, SeriesAvg: 8.2, SharkJumpSeason: nil, DurabilityIndex: 2},
	}

	results := ConvertShowResultRecords(records)
	require.Len(t, results, 2)

	assert.Equal(t, int32(8), results[0].SeasonCount)
	require.NotNil(t, results[0].SharkJumpSeason)
	assert.Equal(t, int32(5), *results[0].SharkJumpSeason)
	assert.Equal(t, int32(3), results[0].DurabilityIndex)

	assert.Nil(t, results[1].SharkJumpSeason)
}

// TestWriteShowResultsParquet writes and reads back a Parquet file.
func TestWriteShowResultsParquet(t *testing.T) {
	runTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	onset := int32(4)
	data := []ShowResult{
		{RunID: 1, ShowID: "tt0000001", RunTime: runTime, SeasonCount: 8, SeriesAvg: 7.5, SharkJumpSeason: &onset, DurabilityIndex: 3},
		{RunID: 1, ShowID: "tt0000002", RunTime: runTime, SeasonCount: 5, SeriesAvg: 8.2, DurabilityIndex: 2},
	}

	path := filepath.Join(t.TempDir(), "show_results.parquet")
	require.NoError(t, WriteShowResultsParquet(data, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	reader := parquet.NewGenericReader[ShowResult](f)
	defer func() { _ = reader.Close() }()

	got := make([]ShowResult, 2)
	n, err := reader.Read(got)
	require.Equal(t, 2, n)
	_ = err // io.EOF is acceptable once all rows are consumed

	assert.Equal(t, "tt0000001", got[0].ShowID)
	require.NotNil(t, got[0].SharkJumpSeason)
	assert.Equal(t, int32(4), *got[0].SharkJumpSeason)
	assert.Nil(t, got[1].SharkJumpSeason)
	assert.InDelta(t, 8.2, got[1].SeriesAvg, 1e-9)
}

// TestWriteRunsParquet verifies an empty slice still produces a valid file.
func TestWriteRunsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteRunsParquet(nil, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
