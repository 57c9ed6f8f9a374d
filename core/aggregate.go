package core

import (
	"math"
	"sort"

	"github.com/seasonlab/dropoff/schema"
)

// seasonAgg is a SeasonKPI in progress. It carries the raw weighted sum so
// the trend pass can derive the show-wide series average without re-reading
// episodes; recomputing it from WeightedRating*SeasonTotalVotes would
// reintroduce rounding.
type seasonAgg struct {
	kpi           schema.SeasonKPI
	sumRatingVote float64 // sum of rating*votes over the season
}

// aggregateSeasons groups episodes by (show, season) and computes the
// season-scalar statistics. Output is sorted by show then season so the
// result is deterministic regardless of input row order.
//
// Zero-vote seasons are handled per policy before any trend math: fail aborts
// with a DataQualityError, exclude drops the season from all derived tables.
func (e *Engine) aggregateSeasons(episodes []schema.Episode) ([]seasonAgg, error) {
	type bucket struct {
		count         int
		totalVotes    int64
		sumRating     float64
		sumRatingVote float64
		ratings       []float64
	}

	buckets := make(map[schema.SeasonKey]*bucket)
	for _, ep := range episodes {
		key := schema.SeasonKey{ShowID: ep.ShowID, SeasonNum: ep.SeasonNum}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		b.totalVotes += ep.Votes
		b.sumRating += ep.Rating
		b.sumRatingVote += ep.Rating * float64(ep.Votes)
		b.ratings = append(b.ratings, ep.Rating)
	}

	keys := make([]schema.SeasonKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ShowID != keys[j].ShowID {
			return keys[i].ShowID < keys[j].ShowID
		}
		return keys[i].SeasonNum < keys[j].SeasonNum
	})

	aggs := make([]seasonAgg, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		if b.totalVotes == 0 {
			if e.zeroVotePolicy == schema.ZeroVoteExclude {
				continue
			}
			return nil, &schema.DataQualityError{
				ShowID:    key.ShowID,
				SeasonNum: key.SeasonNum,
				Reason:    "season has zero total votes; weighted rating is undefined",
			}
		}

		weighted := b.sumRatingVote / float64(b.totalVotes)
		aggs = append(aggs, seasonAgg{
			kpi: schema.SeasonKPI{
				ShowID:            key.ShowID,
				SeasonNum:         key.SeasonNum,
				EpisodeCount:      b.count,
				SeasonTotalVotes:  b.totalVotes,
				WeightedRating:    weighted,
				MeanRating:        b.sumRating / float64(b.count),
				RatingStddev:      sampleStddev(b.ratings),
				PctHighRated:      fractionAbove(b.ratings, e.highRatedThreshold),
				CatalogValueIndex: catalogValueIndex(weighted, b.totalVotes),
			},
			sumRatingVote: b.sumRatingVote,
		})
	}
	return aggs, nil
}

// sampleStddev returns the sample standard deviation (divisor N-1).
// A single observation has no spread; 0 by convention.
func sampleStddev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// fractionAbove returns the fraction of values strictly above the threshold.
func fractionAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

// catalogValueIndex scores a season's contribution to catalog value.
// It is strictly increasing in both rating and votes, with the vote term
// kept sub-linear so rating dominates.
func catalogValueIndex(weightedRating float64, totalVotes int64) float64 {
	return weightedRating * math.Log1p(float64(totalVotes))
}
