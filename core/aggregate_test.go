package core

import (
	"math"
	"testing"

	"github.com/seasonlab/dropoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSampleStddev tests the sample standard deviation helper.
func TestSampleStddev(t *testing.T) {
	t.Run("known spread", func(t *testing.T) {
		// Values 2, 4, 4, 4, 5, 5, 7, 9 have sample variance 32/7.
		got := sampleStddev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
		assert.InDelta(t, math.Sqrt(32.0/7.0), got, 1e-12)
	})

	t.Run("single observation has no spread", func(t *testing.T) {
		assert.Equal(t, 0.0, sampleStddev([]float64{8.3}))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, 0.0, sampleStddev(nil))
	})

	t.Run("identical values", func(t *testing.T) {
		assert.Equal(t, 0.0, sampleStddev([]float64{7.5, 7.5, 7.5}))
	})
}

// TestFractionAbove tests the strict-threshold fraction helper.
func TestFractionAbove(t *testing.T) {
	t.Run("strictly above only", func(t *testing.T) {
		// 8.0 does not count against a threshold of 8.0.
		got := fractionAbove([]float64{8.0, 8.1, 7.9, 9.0}, 8.0)
		assert.InDelta(t, 0.5, got, 1e-12)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, 0.0, fractionAbove(nil, 8.0))
	})
}

// TestCatalogValueIndex tests the catalog value score.
func TestCatalogValueIndex(t *testing.T) {
	t.Run("formula", func(t *testing.T) {
		got := catalogValueIndex(8.0, 10000)
		assert.InDelta(t, 8.0*math.Log1p(10000), got, 1e-12)
	})

	t.Run("increasing in votes", func(t *testing.T) {
		assert.Greater(t, catalogValueIndex(8.0, 20000), catalogValueIndex(8.0, 10000))
	})

	t.Run("increasing in rating", func(t *testing.T) {
		assert.Greater(t, catalogValueIndex(9.0, 10000), catalogValueIndex(8.0, 10000))
	})
}

// TestAggregateSeasons tests the season grouping and per-season statistics.
func TestAggregateSeasons(t *testing.T) {
	engine := NewEngine(EngineConfig{})

	t.Run("vote weighted rating", func(t *testing.T) {
		episodes := []schema.Episode{
			{EpisodeID: "e1", ShowID: "tt1", SeasonNum: 1, EpisodeNum: 1, Rating: 9.0, Votes: 3000},
			{EpisodeID: "e2", ShowID: "tt1", SeasonNum: 1, EpisodeNum: 2, Rating: 6.0, Votes: 1000},
		}
		aggs, err := engine.aggregateSeasons(episodes)
		require.NoError(t, err)
		require.Len(t, aggs, 1)

		kpi := aggs[0].kpi
		// (9*3000 + 6*1000) / 4000 = 8.25, against an unweighted mean of 7.5.
		assert.InDelta(t, 8.25, kpi.WeightedRating, 1e-12)
		assert.InDelta(t, 7.5, kpi.MeanRating, 1e-12)
		assert.Equal(t, 2, kpi.EpisodeCount)
		assert.Equal(t, int64(4000), kpi.SeasonTotalVotes)
	})

	t.Run("deterministic order regardless of input order", func(t *testing.T) {
		episodes := []schema.Episode{
			{EpisodeID: "e1", ShowID: "tt2", SeasonNum: 2, EpisodeNum: 1, Rating: 7.0, Votes: 100},
			{EpisodeID: "e2", ShowID: "tt1", SeasonNum: 1, EpisodeNum: 1, Rating: 8.0, Votes: 100},
			{EpisodeID: "e3", ShowID: "tt2", SeasonNum: 1, EpisodeNum: 1, Rating: 7.0, Votes: 100},
		}
		aggs, err := engine.aggregateSeasons(episodes)
		require.NoError(t, err)
		require.Len(t, aggs, 3)
		assert.Equal(t, "tt1", aggs[0].kpi.ShowID)
		assert.Equal(t, "tt2", aggs[1].kpi.ShowID)
		assert.Equal(t, 1, aggs[1].kpi.SeasonNum)
		assert.Equal(t, 2, aggs[2].kpi.SeasonNum)
	})

	t.Run("zero vote season fails by default", func(t *testing.T) {
		episodes := []schema.Episode{
			{EpisodeID: "e1", ShowID: "tt1", SeasonNum: 1, EpisodeNum: 1, Rating: 8.0, Votes: 0},
		}
		_, err := engine.aggregateSeasons(episodes)
		var dqErr *schema.DataQualityError
		require.ErrorAs(t, err, &dqErr)
		assert.Equal(t, "tt1", dqErr.ShowID)
		assert.Equal(t, 1, dqErr.SeasonNum)
	})

	t.Run("zero vote season excluded under exclude policy", func(t *testing.T) {
		excl := NewEngine(EngineConfig{ZeroVotePolicy: schema.ZeroVoteExclude})
		episodes := []schema.Episode{
			{EpisodeID: "e1", ShowID: "tt1", SeasonNum: 1, EpisodeNum: 1, Rating: 8.0, Votes: 0},
			{EpisodeID: "e2", ShowID: "tt1", SeasonNum: 2, EpisodeNum: 1, Rating: 8.0, Votes: 500},
		}
		aggs, err := excl.aggregateSeasons(episodes)
		require.NoError(t, err)
		require.Len(t, aggs, 1)
		assert.Equal(t, 2, aggs[0].kpi.SeasonNum)
	})
}
