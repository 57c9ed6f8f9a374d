package cmd

import (
	"os"
	"path/filepath"

	"github.com/seasonlab/dropoff/core"
	"github.com/seasonlab/dropoff/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sampleCmd generates the synthetic fixture dataset.
var sampleCmd = &cobra.Command{
	Use:   "sample [data-dir]",
	Short: "Generate the synthetic sample dataset.",
	Long: `Write a deterministic, fully synthetic sample dataset under
<data-dir>/sample.

The fixtures cover four designed rating arcs: a gradual decline, a sharp
drop, a dip with full recovery, and a late decline. All IDs, ratings and
vote counts are fabricated with a fixed seed, so repeated runs are
byte-identical and no real ratings data is redistributed.

Every other command accepts --sample to analyze this dataset.

Examples:
  # Generate fixtures under ./data/sample
  dropoff sample

  # Then analyze them
  dropoff seasons --sample
  dropoff check --sample`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The sample directory may not exist yet; create it before the
		// shared setup validates the data directory.
		viper.Set("sample", true)
		if err := ensureSampleDir(args); err != nil {
			return err
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSample(cfg, runStore); err != nil {
			contract.LogFatal("Cannot generate sample data", err)
		}
	},
}

// ensureSampleDir creates the sample subdirectory under the requested data
// directory so the shared validation can pass on a fresh checkout.
func ensureSampleDir(args []string) error {
	dataDir := contract.DefaultDataDir
	if len(args) == 1 {
		dataDir = args[0]
	}
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(absDataDir, contract.SampleSubdir), 0o755)
}
