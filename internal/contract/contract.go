// Package contract holds the shared configuration and helper contracts that
// the cmd, core and writer layers agree on.
package contract

import (
	"time"

	"github.com/seasonlab/dropoff/schema"
)

// RunStore defines the interface for tracking engine runs and per-show
// verdicts. This allows the store to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalShows, totalSeasons int) error

	// RecordShowResult stores one show's verdicts for a run
	RecordShowResult(runID int64, runTime time.Time, result schema.ShowResultRecord) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns retrieves all runs from the store
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllShowResults retrieves all per-show verdict rows from the store
	GetAllShowResults() ([]schema.ShowResultRecord, error)

	// Clear removes all tracked runs and show results
	Clear() error

	// Close closes the underlying connection
	Close() error
}
