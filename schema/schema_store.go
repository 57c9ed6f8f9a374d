package schema

import "time"

// RunStatus holds status information about the run store.
type RunStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int64            `json:"total_runs"`
	LastRunID      int64            `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	OldestRunTime  time.Time        `json:"oldest_run_time"`
	TotalShowsSeen int64            `json:"total_shows_seen"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// RunRecord is one row of the run-tracking table.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	RunDurationMs *int64     `json:"run_duration_ms"`
	TotalShows    *int64     `json:"total_shows"`
	TotalSeasons  *int64     `json:"total_seasons"`
	ConfigParams  *string    `json:"config_params"`
}

// ShowResultRecord is one per-show verdict row recorded for a run.
type ShowResultRecord struct {
	RunID           int64     `json:"run_id"`
	ShowID          string    `json:"show_id"`
	RunTime         time.Time `json:"run_time"`
	SeasonCount     int       `json:"season_count"`
	SeriesAvg       float64   `json:"series_avg"`
	SharkJumpSeason *int      `json:"shark_jump_season"`
	DurabilityIndex int       `json:"durability_index"`
}
