package core

import (
	"testing"

	"github.com/seasonlab/dropoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ep(showID string, season, episode int, rating float64, votes int64) schema.Episode {
	return schema.Episode{
		EpisodeID:  "tt9990000",
		ShowID:     showID,
		SeasonNum:  season,
		EpisodeNum: episode,
		Rating:     rating,
		Votes:      votes,
	}
}

// TestEngineRun runs the full pipeline on hand-checkable inputs.
func TestEngineRun(t *testing.T) {
	shows := map[string]string{"tt0000001": "Declining Show"}

	// Five seasons, two episodes each, equal votes. Weighted ratings come out
	// to 9, 8, 6, 6, 5 and the series average to 6.8.
	episodes := []schema.Episode{
		ep("tt0000001", 1, 1, 9.0, 1000), ep("tt0000001", 1, 2, 9.0, 1000),
		ep("tt0000001", 2, 1, 8.0, 1000), ep("tt0000001", 2, 2, 8.0, 1000),
		ep("tt0000001", 3, 1, 6.0, 1000), ep("tt0000001", 3, 2, 6.0, 1000),
		ep("tt0000001", 4, 1, 6.0, 1000), ep("tt0000001", 4, 2, 6.0, 1000),
		ep("tt0000001", 5, 1, 5.0, 1000), ep("tt0000001", 5, 2, 5.0, 1000),
	}

	engine := NewEngine(EngineConfig{Shows: shows})
	result, err := engine.Run(episodes)
	require.NoError(t, err)
	require.Len(t, result.SeasonKPIs, 5)

	kpis := result.KPIByKey()

	t.Run("series average is vote weighted", func(t *testing.T) {
		for _, kpi := range result.SeasonKPIs {
			assert.InDelta(t, 6.8, kpi.SeriesAvg, 1e-12)
		}
	})

	t.Run("rolling averages", func(t *testing.T) {
		assert.InDelta(t, 9.0, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 1}].Rolling3SeasonAvg, 1e-12)
		assert.InDelta(t, 8.5, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 2}].Rolling3SeasonAvg, 1e-12)
		assert.InDelta(t, 23.0/3.0, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 3}].Rolling3SeasonAvg, 1e-12)
		assert.InDelta(t, 20.0/3.0, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 4}].Rolling3SeasonAvg, 1e-12)
		assert.InDelta(t, 17.0/3.0, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 5}].Rolling3SeasonAvg, 1e-12)
	})

	t.Run("ranks distinct with ties by earlier season", func(t *testing.T) {
		// Seasons 3 and 4 both sit at 6.0; the earlier season ranks higher.
		assert.Equal(t, 1, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 1}].SeasonRankBest)
		assert.Equal(t, 2, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 2}].SeasonRankBest)
		assert.Equal(t, 3, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 3}].SeasonRankBest)
		assert.Equal(t, 4, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 4}].SeasonRankBest)
		assert.Equal(t, 5, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 5}].SeasonRankBest)
	})

	t.Run("pct high rated is strict", func(t *testing.T) {
		// 9.0 clears the 8.0 threshold, 8.0 itself does not.
		assert.InDelta(t, 1.0, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 1}].PctHighRated, 1e-12)
		assert.InDelta(t, 0.0, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 2}].PctHighRated, 1e-12)
	})

	t.Run("shark jump at first sustained below pair", func(t *testing.T) {
		// Rolling values for seasons 4 and 5 are the first consecutive pair
		// under the 6.8 series average; the verdict names season 4.
		require.Len(t, result.SharkJumps, 1)
		require.NotNil(t, result.SharkJumps[0].SharkJumpSeason)
		assert.Equal(t, 4, *result.SharkJumps[0].SharkJumpSeason)
	})

	t.Run("durability counts strictly above seasons", func(t *testing.T) {
		require.Len(t, result.Durability, 1)
		assert.Equal(t, 2, result.Durability[0].DurabilityIndex)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		again, err := engine.Run(episodes)
		require.NoError(t, err)
		assert.Equal(t, result, again)
	})
}

// TestEngineSeriesAvgWeighting pins series_avg to the episode-weighted
// definition rather than a mean of per-season means.
func TestEngineSeriesAvgWeighting(t *testing.T) {
	shows := map[string]string{"tt0000001": "Lopsided Show"}
	episodes := []schema.Episode{
		ep("tt0000001", 1, 1, 9.0, 10000),
		ep("tt0000001", 2, 1, 5.0, 100),
	}

	result, err := NewEngine(EngineConfig{Shows: shows}).Run(episodes)
	require.NoError(t, err)
	require.Len(t, result.SeasonKPIs, 2)

	want := (9.0*10000 + 5.0*100) / 10100.0
	assert.InDelta(t, want, result.SeasonKPIs[0].SeriesAvg, 1e-12)
	// A mean of means would land at 7.0.
	assert.Greater(t, result.SeasonKPIs[0].SeriesAvg, 8.9)
}

// TestEngineRollingWindowGaps verifies the window is positional over the
// sorted seasons, not keyed on season numbers.
func TestEngineRollingWindowGaps(t *testing.T) {
	shows := map[string]string{"tt0000001": "Gappy Show"}
	episodes := []schema.Episode{
		ep("tt0000001", 1, 1, 9.0, 1000),
		ep("tt0000001", 2, 1, 8.0, 1000),
		ep("tt0000001", 5, 1, 6.0, 1000),
	}

	result, err := NewEngine(EngineConfig{Shows: shows}).Run(episodes)
	require.NoError(t, err)

	kpis := result.KPIByKey()
	// Season 5's window covers the three observed rows: 9, 8, 6.
	assert.InDelta(t, 23.0/3.0, kpis[schema.SeasonKey{ShowID: "tt0000001", SeasonNum: 5}].Rolling3SeasonAvg, 1e-12)
}

// TestEngineZeroVotePolicies covers both handling modes for all-zero-vote
// seasons.
func TestEngineZeroVotePolicies(t *testing.T) {
	shows := map[string]string{"tt0000001": "Quiet Show"}
	episodes := []schema.Episode{
		ep("tt0000001", 1, 1, 8.0, 0),
		ep("tt0000001", 2, 1, 7.0, 1000),
	}

	t.Run("fail policy aborts the run", func(t *testing.T) {
		_, err := NewEngine(EngineConfig{Shows: shows}).Run(episodes)
		var dqErr *schema.DataQualityError
		require.ErrorAs(t, err, &dqErr)
		assert.Equal(t, "tt0000001", dqErr.ShowID)
		assert.Equal(t, 1, dqErr.SeasonNum)
	})

	t.Run("exclude policy drops the season", func(t *testing.T) {
		engine := NewEngine(EngineConfig{Shows: shows, ZeroVotePolicy: schema.ZeroVoteExclude})
		result, err := engine.Run(episodes)
		require.NoError(t, err)
		require.Len(t, result.SeasonKPIs, 1)
		assert.Equal(t, 2, result.SeasonKPIs[0].SeasonNum)
		// The show itself still appears in the per-show outputs.
		require.Len(t, result.SharkJumps, 1)
		require.Len(t, result.Durability, 1)
	})
}

// TestEngineValidation covers the fact-table contract checks.
func TestEngineValidation(t *testing.T) {
	shows := map[string]string{"tt0000001": "Known Show"}
	engine := NewEngine(EngineConfig{Shows: shows})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := engine.Run([]schema.Episode{ep("tt0000001", 1, 1, 10.5, 100)})
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "avg_rating", schemaErr.Field)
	})

	t.Run("unknown show", func(t *testing.T) {
		_, err := engine.Run([]schema.Episode{ep("tt0099999", 1, 1, 8.0, 100)})
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "show_id", schemaErr.Field)
	})

	t.Run("nonpositive season number", func(t *testing.T) {
		_, err := engine.Run([]schema.Episode{ep("tt0000001", 0, 1, 8.0, 100)})
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "season_num", schemaErr.Field)
	})

	t.Run("negative votes", func(t *testing.T) {
		_, err := engine.Run([]schema.Episode{ep("tt0000001", 1, 1, 8.0, -1)})
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "num_votes", schemaErr.Field)
	})
}

// TestEngineShowCoverage verifies every known show gets exactly one row in
// the shark and durability tables even without episodes.
func TestEngineShowCoverage(t *testing.T) {
	shows := map[string]string{
		"tt0000001": "Has Episodes",
		"tt0000002": "No Episodes",
	}
	episodes := []schema.Episode{ep("tt0000001", 1, 1, 8.0, 100)}

	result, err := NewEngine(EngineConfig{Shows: shows}).Run(episodes)
	require.NoError(t, err)

	require.Len(t, result.SharkJumps, 2)
	require.Len(t, result.Durability, 2)
	assert.Equal(t, "tt0000001", result.SharkJumps[0].ShowID)
	assert.Equal(t, "tt0000002", result.SharkJumps[1].ShowID)
	assert.Nil(t, result.SharkJumps[1].SharkJumpSeason)
	assert.Equal(t, 0, result.Durability[1].DurabilityIndex)
}
