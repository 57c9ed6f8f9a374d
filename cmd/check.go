package cmd

import (
	"fmt"
	"os"

	"github.com/seasonlab/dropoff/core"
	"github.com/spf13/cobra"
)

// checkCmd runs the validation suite for CI/CD gating.
var checkCmd = &cobra.Command{
	Use:   "check [data-dir]",
	Short: "Validate the input data and derived tables.",
	Long: `Run the full validation suite over the input CSVs and every derived
table, returning a non-zero exit code on any failure.

Validates:
- Input contract: unique episode IDs, valid seasons, ratings and votes
- Output grain: exactly one KPI row per (show, season), one verdict per show
- Value ranges: weighted ratings in [1, 10], non-negative durability
- Off-by-one: the shark-jump verdict names the FIRST season of the below pair
- Cross-table consistency between KPI, shark and durability outputs

With --sample, fixture-only checks are added (synthetic IDs, expected
decline arcs).

Examples:
  # Gate a data refresh in CI
  dropoff check /path/to/data

  # Validate the synthetic fixtures end to end
  dropoff check --sample`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(cfg, runStore); err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}
	},
}
