package cmd

import (
	"github.com/seasonlab/dropoff/core"
	"github.com/seasonlab/dropoff/internal/contract"
	"github.com/spf13/cobra"
)

// sharkCmd detects the shark-jump season for every tracked show.
var sharkCmd = &cobra.Command{
	Use:   "shark [data-dir]",
	Short: "Detect the season where each show jumped the shark.",
	Long: `Find the onset of sustained rating decline for every tracked show.

A show "jumps the shark" at the first season of the earliest pair of
consecutive seasons whose 3-season rolling average sits below the show's
series average. One verdict is printed per show; shows that never decline
get a null verdict.

Use this to:
- Pin the exact season where audience sentiment turned
- Separate shows with a real decline from shows with a single bad dip
- Feed decline verdicts into downstream catalog valuation

Examples:
  # Verdicts for the bundled sample data
  dropoff shark --sample

  # Verdicts as JSON for scripting
  dropoff shark --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteShark(cfg, runStore); err != nil {
			contract.LogFatal("Cannot run shark analysis", err)
		}
	},
}
