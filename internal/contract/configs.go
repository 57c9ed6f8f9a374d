package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seasonlab/dropoff/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 4
	MaxPrecision     = 6
	DefaultDataDir   = "data"
	SampleSubdir     = "sample"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a dropoff run.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir    string // Directory holding the input CSVs
	Sample     bool   // True when analyzing the synthetic sample fixtures
	Precision  int    // Decimal precision for numeric columns
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	// Shows maps known show IDs to display titles. Comes from the config
	// file (shows: {id: title}) and defaults to schema.DefaultShowSet.
	Shows map[string]string

	HighRatedThreshold float64
	ZeroVotePolicy     schema.ZeroVotePolicy

	StoreBackend   schema.StoreBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Sample         bool    `mapstructure:"sample"`
	Precision      int     `mapstructure:"precision"`
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Width          int     `mapstructure:"width"`
	HighThreshold  float64 `mapstructure:"high-rated-threshold"`
	ZeroVotePolicy string  `mapstructure:"zero-vote-policy"`
	StoreBackend   string  `mapstructure:"store-backend"`
	StoreDBConnect string  `mapstructure:"store-db-connect"`
	Color          string  `mapstructure:"color"`

	// --- Fields from the config file only ---
	Shows map[string]string `mapstructure:"shows"`
}

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig populates the profiling config from the raw prefix.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	profile.Prefix = prefix
	profile.Enabled = prefix != ""
	return nil
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Shows != nil {
		clone.Shows = make(map[string]string, len(c.Shows))
		maps.Copy(clone.Shows, c.Shows)
	}
	return &clone
}

// EpisodesDir resolves the directory the input CSVs are read from,
// accounting for sample mode.
func (c *Config) EpisodesDir() string {
	if c.Sample {
		return filepath.Join(c.DataDir, SampleSubdir)
	}
	return c.DataDir
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format %q. must be text, csv, json", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 2. Engine knobs ---
	if input.HighThreshold != 0 && (input.HighThreshold < schema.MinRating || input.HighThreshold > schema.MaxRating) {
		return fmt.Errorf("high-rated-threshold must be in [%.1f, %.1f] (received %g)", schema.MinRating, schema.MaxRating, input.HighThreshold)
	}
	cfg.HighRatedThreshold = input.HighThreshold
	if cfg.HighRatedThreshold == 0 {
		cfg.HighRatedThreshold = schema.HighRatedThreshold
	}

	cfg.ZeroVotePolicy = schema.ZeroVotePolicy(strings.ToLower(input.ZeroVotePolicy))
	if cfg.ZeroVotePolicy == "" {
		cfg.ZeroVotePolicy = schema.ZeroVoteFail
	}
	if _, ok := schema.ValidZeroVotePolicies[cfg.ZeroVotePolicy]; !ok {
		return fmt.Errorf("invalid zero-vote-policy %q. must be fail or exclude", input.ZeroVotePolicy)
	}

	// --- 3. Show set ---
	cfg.Shows = input.Shows
	if len(cfg.Shows) == 0 {
		cfg.Shows = make(map[string]string, len(schema.DefaultShowSet))
		maps.Copy(cfg.Shows, schema.DefaultShowSet)
	}

	// --- 4. Store backend ---
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store-backend %q. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect

	// --- 5. Color toggle ---
	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.UseColors = useColors

	// --- 6. Data directory resolution ---
	cfg.Sample = input.Sample
	dataDir := input.DataDirStr
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return err
	}
	cfg.DataDir = absDataDir

	if info, err := os.Stat(cfg.EpisodesDir()); err != nil || !info.IsDir() {
		return fmt.Errorf("data directory not found: %s", cfg.EpisodesDir())
	}

	return nil
}
