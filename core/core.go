// Package core has core logic for aggregation, trend detection and ranking.
package core

import (
	"fmt"
	"time"

	"github.com/seasonlab/dropoff/internal/contract"
	"github.com/seasonlab/dropoff/internal/ingest"
	"github.com/seasonlab/dropoff/internal/outwriter"
	"github.com/seasonlab/dropoff/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(cfg *contract.Config, store contract.RunStore) error

// ExecuteSeasons runs the full pipeline and prints the season KPI table.
// It serves as the main entry point for the 'seasons' command.
func ExecuteSeasons(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	_, result, err := runEngineForConfig(cfg)
	if err != nil {
		return err
	}
	recordRun(store, cfg, result, start)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSeasonKPIs(result.SeasonKPIs, result.SharkJumps, cfg, duration)
}

// ExecuteShark runs the full pipeline and prints the shark-jump verdicts.
// It serves as the main entry point for the 'shark' command.
func ExecuteShark(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	_, result, err := runEngineForConfig(cfg)
	if err != nil {
		return err
	}
	recordRun(store, cfg, result, start)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSharkJumps(result.SharkJumps, cfg, duration)
}

// ExecuteDurability runs the full pipeline and prints the durability index.
// It serves as the main entry point for the 'durability' command.
func ExecuteDurability(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	_, result, err := runEngineForConfig(cfg)
	if err != nil {
		return err
	}
	recordRun(store, cfg, result, start)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteDurability(result.Durability, cfg, duration)
}

// ExecuteCheck runs the validation suite over the inputs and derived tables.
// A non-nil error means at least one hard check failed, which makes the
// command suitable for CI gating.
func ExecuteCheck(cfg *contract.Config, _ contract.RunStore) error {
	start := time.Now()
	ds, result, err := runEngineForConfig(cfg)
	if err != nil {
		return err
	}

	checkResult := RunChecks(ds, result, cfg.Shows, cfg.Sample)
	printCheckResult(checkResult, cfg, time.Since(start))

	if !checkResult.Passed() {
		return fmt.Errorf("%d of %d checks failed", checkResult.Failures, checkResult.Total)
	}
	return nil
}

// ExecuteSample generates the synthetic fixture dataset under the data
// directory and verifies it round-trips through the engine.
func ExecuteSample(cfg *contract.Config, _ contract.RunStore) error {
	dir := cfg.EpisodesDir()
	ds, err := ingest.WriteFixtures(dir, cfg.Shows)
	if err != nil {
		return fmt.Errorf("failed to write fixtures: %w", err)
	}

	// Sanity pass: the fixtures must survive their own pipeline.
	engine := NewEngine(engineConfigFrom(cfg))
	result, err := engine.Run(ds.Episodes)
	if err != nil {
		return fmt.Errorf("fixture dataset failed the engine: %w", err)
	}

	fmt.Printf("Wrote synthetic sample data to %s\n", dir)
	fmt.Printf("  Episodes: %d\n", len(ds.Episodes))
	fmt.Printf("  Shows: %d\n", len(ds.Shows))
	fmt.Printf("  Seasons: %d\n", len(result.SeasonKPIs))
	return nil
}

// GetAnalysisResult runs the engine for the given config and returns the raw
// result. It backs the MCP tool handlers, which render their own payloads.
func GetAnalysisResult(cfg *contract.Config) (*schema.EngineResult, error) {
	_, result, err := runEngineForConfig(cfg)
	return result, err
}

// runEngineForConfig loads the dataset from the configured directory and runs
// the engine over it.
func runEngineForConfig(cfg *contract.Config) (*ingest.Dataset, *schema.EngineResult, error) {
	ds, err := ingest.LoadDataset(cfg.EpisodesDir())
	if err != nil {
		return nil, nil, err
	}

	engine := NewEngine(engineConfigFrom(cfg))
	result, err := engine.Run(ds.Episodes)
	if err != nil {
		return nil, nil, err
	}
	return ds, result, nil
}

func engineConfigFrom(cfg *contract.Config) EngineConfig {
	return EngineConfig{
		Shows:              cfg.Shows,
		HighRatedThreshold: cfg.HighRatedThreshold,
		ZeroVotePolicy:     cfg.ZeroVotePolicy,
	}
}

// recordRun persists the run and per-show verdicts. Tracking is best-effort:
// a store failure warns but never fails the command.
func recordRun(store contract.RunStore, cfg *contract.Config, result *schema.EngineResult, start time.Time) {
	if store == nil {
		return
	}

	configParams := map[string]any{
		"data_dir":             cfg.DataDir,
		"sample":               cfg.Sample,
		"high_rated_threshold": cfg.HighRatedThreshold,
		"zero_vote_policy":     string(cfg.ZeroVotePolicy),
		"shows":                len(cfg.Shows),
	}

	runID, err := store.BeginRun(start, configParams)
	if err != nil {
		contract.LogWarn("recording run start", err)
		return
	}

	seasonCounts := make(map[string]int)
	seriesAvgs := make(map[string]float64)
	for _, kpi := range result.SeasonKPIs {
		seasonCounts[kpi.ShowID]++
		seriesAvgs[kpi.ShowID] = kpi.SeriesAvg
	}
	durability := make(map[string]int)
	for _, d := range result.Durability {
		durability[d.ShowID] = d.DurabilityIndex
	}

	now := time.Now()
	for _, shark := range result.SharkJumps {
		record := schema.ShowResultRecord{
			ShowID:          shark.ShowID,
			SeasonCount:     seasonCounts[shark.ShowID],
			SeriesAvg:       seriesAvgs[shark.ShowID],
			SharkJumpSeason: shark.SharkJumpSeason,
			DurabilityIndex: durability[shark.ShowID],
		}
		if err := store.RecordShowResult(runID, now, record); err != nil {
			contract.LogWarn("recording show result", err)
		}
	}

	if err := store.EndRun(runID, time.Now(), len(result.SharkJumps), len(result.SeasonKPIs)); err != nil {
		contract.LogWarn("recording run end", err)
	}
}

// printCheckResult prints the validation findings in a concise format
// suitable for CI logs.
func printCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) {
	fmt.Println("Validation Results:")
	for _, f := range result.Findings {
		status := contract.GetColorCheckStatus(f.Status, cfg.UseColors)
		if f.Detail != "" {
			fmt.Printf("  [%s] %s: %s\n", status, f.Name, f.Detail)
		} else {
			fmt.Printf("  [%s] %s\n", status, f.Name)
		}
	}
	fmt.Printf("%d checks, %d failures, %d warnings in %v\n", result.Total, result.Failures, result.Warnings, duration)
}
