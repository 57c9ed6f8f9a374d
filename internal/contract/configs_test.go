package contract

import (
	"path/filepath"
	"testing"

	"github.com/seasonlab/dropoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation against dataDir.
func validInput(dataDir string) *ConfigRawInput {
	return &ConfigRawInput{
		DataDirStr:     dataDir,
		Precision:      DefaultPrecision,
		Output:         "text",
		ZeroVotePolicy: "fail",
		StoreBackend:   "sqlite",
		Color:          "yes",
	}
}

// TestProcessAndValidate tests raw input processing and validation.
func TestProcessAndValidate(t *testing.T) {
	t.Run("valid input with defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, validInput(dir)))

		assert.Equal(t, DefaultPrecision, cfg.Precision)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.Equal(t, schema.ZeroVoteFail, cfg.ZeroVotePolicy)
		assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
		assert.InDelta(t, schema.HighRatedThreshold, cfg.HighRatedThreshold, 1e-12)
		assert.Equal(t, schema.DefaultShowSet, cfg.Shows)
		assert.True(t, cfg.UseColors)
		assert.True(t, filepath.IsAbs(cfg.DataDir))
	})

	t.Run("empty policy defaults to fail", func(t *testing.T) {
		input := validInput(t.TempDir())
		input.ZeroVotePolicy = ""
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, schema.ZeroVoteFail, cfg.ZeroVotePolicy)
	})

	t.Run("uppercase values normalized", func(t *testing.T) {
		input := validInput(t.TempDir())
		input.Output = "JSON"
		input.ZeroVotePolicy = "EXCLUDE"
		input.StoreBackend = "NONE"
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, schema.JSONOut, cfg.Output)
		assert.Equal(t, schema.ZeroVoteExclude, cfg.ZeroVotePolicy)
		assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
	})

	t.Run("custom show set preserved", func(t *testing.T) {
		input := validInput(t.TempDir())
		input.Shows = map[string]string{"tt1234567": "Custom Show"}
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, map[string]string{"tt1234567": "Custom Show"}, cfg.Shows)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		dir := t.TempDir()
		cases := []struct {
			name   string
			mutate func(*ConfigRawInput)
		}{
			{"precision too low", func(in *ConfigRawInput) { in.Precision = 0 }},
			{"precision too high", func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 }},
			{"unknown output", func(in *ConfigRawInput) { in.Output = "xml" }},
			{"negative width", func(in *ConfigRawInput) { in.Width = -1 }},
			{"threshold out of range", func(in *ConfigRawInput) { in.HighThreshold = 11.0 }},
			{"unknown policy", func(in *ConfigRawInput) { in.ZeroVotePolicy = "ignore" }},
			{"unknown backend", func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
			{"bad color string", func(in *ConfigRawInput) { in.Color = "maybe" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := validInput(dir)
				tc.mutate(input)
				assert.Error(t, ProcessAndValidate(&Config{}, input))
			})
		}
	})

	t.Run("missing data directory", func(t *testing.T) {
		input := validInput(filepath.Join(t.TempDir(), "missing"))
		err := ProcessAndValidate(&Config{}, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data directory not found")
	})

	t.Run("sample mode requires the sample subdir", func(t *testing.T) {
		dir := t.TempDir()
		input := validInput(dir)
		input.Sample = true
		// dir exists but dir/sample does not.
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})
}

// TestEpisodesDir tests sample-mode directory resolution.
func TestEpisodesDir(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	assert.Equal(t, "/data", cfg.EpisodesDir())

	cfg.Sample = true
	assert.Equal(t, filepath.Join("/data", SampleSubdir), cfg.EpisodesDir())
}

// TestConfigClone verifies the clone does not share the show map.
func TestConfigClone(t *testing.T) {
	cfg := &Config{
		DataDir: "/data",
		Shows:   map[string]string{"tt1": "One"},
	}
	clone := cfg.Clone()
	clone.Shows["tt2"] = "Two"

	assert.Len(t, cfg.Shows, 1)
	assert.Len(t, clone.Shows, 2)
	assert.Equal(t, cfg.DataDir, clone.DataDir)
}

// TestProcessProfilingConfig tests the profiling prefix toggle.
func TestProcessProfilingConfig(t *testing.T) {
	var profile ProfileConfig
	require.NoError(t, ProcessProfilingConfig(&profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(&profile, "prof"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "prof", profile.Prefix)
}
