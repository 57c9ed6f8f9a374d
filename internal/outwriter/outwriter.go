// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/seasonlab/dropoff/internal/contract"
	"github.com/seasonlab/dropoff/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeasonKPIs prints the season KPI table using the configured output format.
func (ow *OutWriter) WriteSeasonKPIs(kpis []schema.SeasonKPI, sharks []schema.ShowShark, cfg *contract.Config, duration time.Duration) error {
	return WriteSeasonKPIResults(kpis, sharks, cfg, duration)
}

// WriteSharkJumps prints the shark-jump verdicts using the configured output format.
func (ow *OutWriter) WriteSharkJumps(sharks []schema.ShowShark, cfg *contract.Config, duration time.Duration) error {
	return WriteSharkResults(sharks, cfg, duration)
}

// WriteDurability prints the durability index using the configured output format.
func (ow *OutWriter) WriteDurability(durability []schema.ShowDurability, cfg *contract.Config, duration time.Duration) error {
	return WriteDurabilityResults(durability, cfg, duration)
}

// getMaxTableTitleWidth calculates the maximum width for show titles in table
// output based on terminal width and the fixed KPI columns.
func getMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 120
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric KPI columns with borders and padding
	baseWidth := 95

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable title width
		return 12
	}
	if available > 40 {
		// Maximum title width to keep rows compact
		return 40
	}
	return available
}
