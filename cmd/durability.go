package cmd

import (
	"github.com/seasonlab/dropoff/core"
	"github.com/seasonlab/dropoff/internal/contract"
	"github.com/spf13/cobra"
)

// durabilityCmd computes the durability index for every tracked show.
var durabilityCmd = &cobra.Command{
	Use:   "durability [data-dir]",
	Short: "Count how long each show stayed above its own average.",
	Long: `Compute the durability index: the number of seasons a show spent
strictly above its own series average rating.

A high index means the show sustained quality across its run; a low index
means a short peak followed by decline. The index is bounded by the show's
season count.

Examples:
  # Durability for the bundled sample data
  dropoff durability --sample

  # Durability as CSV
  dropoff durability --output csv --output-file durability.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDurability(cfg, runStore); err != nil {
			contract.LogFatal("Cannot run durability analysis", err)
		}
	},
}
