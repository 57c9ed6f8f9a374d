package cmd

import (
	"github.com/seasonlab/dropoff/core"
	"github.com/seasonlab/dropoff/internal/contract"
	"github.com/spf13/cobra"
)

// seasonsCmd computes and prints the season KPI table.
var seasonsCmd = &cobra.Command{
	Use:   "seasons [data-dir]",
	Short: "Show per-season rating KPIs for every tracked show.",
	Long: `Aggregate episode ratings into one KPI row per (show, season).

Each row carries the season's vote-weighted rating, the unweighted mean,
the rating spread, the share of high-rated episodes, the show-wide series
average, the trailing 3-season rolling average, the season's quality rank
within its show, and a catalog value score.

Use this to:
- Compare seasons of a show on a consistent, vote-weighted scale
- See where a show's rolling trend crosses its own series average
- Find each show's best and worst seasons at a glance

Examples:
  # KPIs for the bundled sample data
  dropoff seasons --sample

  # KPIs from a custom data directory
  dropoff seasons /path/to/data

  # Export to CSV for spreadsheets
  dropoff seasons --output csv --output-file season_kpis.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeasons(cfg, runStore); err != nil {
			contract.LogFatal("Cannot run seasons analysis", err)
		}
	},
}
