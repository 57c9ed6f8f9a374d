package core

import "sort"

// applyTrends fills series_avg, rolling_3_season_avg and season_rank_best on
// each show's seasons. The input must already be sorted by show then season,
// which aggregateSeasons guarantees. Each show is handled in one pass over
// its ascending season slice.
func applyTrends(aggs []seasonAgg) {
	for start := 0; start < len(aggs); {
		end := start
		for end < len(aggs) && aggs[end].kpi.ShowID == aggs[start].kpi.ShowID {
			end++
		}
		applyShowTrends(aggs[start:end])
		start = end
	}
}

// applyShowTrends computes trend fields for a single show's seasons, sorted
// ascending by season number.
func applyShowTrends(seasons []seasonAgg) {
	// Series average is vote-weighted across ALL the show's episodes, not a
	// mean of per-season weighted ratings. A mean of means would over-weight
	// low-vote seasons and shift which seasons land above or below average.
	var sumRatingVote float64
	var totalVotes int64
	for _, s := range seasons {
		sumRatingVote += s.sumRatingVote
		totalVotes += s.kpi.SeasonTotalVotes
	}
	seriesAvg := sumRatingVote / float64(totalVotes)

	// The rolling window is positional: the current row plus up to two
	// immediately preceding rows in season_num-sorted order. Gaps in season
	// numbering neither shrink the window nor get skipped over.
	for i := range seasons {
		lo := max(0, i-(rollingWindow-1))
		var sum float64
		for j := lo; j <= i; j++ {
			sum += seasons[j].kpi.WeightedRating
		}
		seasons[i].kpi.SeriesAvg = seriesAvg
		seasons[i].kpi.Rolling3SeasonAvg = sum / float64(i-lo+1)
	}

	rankSeasons(seasons)
}

// rankSeasons assigns season_rank_best: rank 1 is the highest weighted
// rating within the show, ties broken by the lower season number.
func rankSeasons(seasons []seasonAgg) {
	order := make([]int, len(seasons))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		si, sj := seasons[order[a]].kpi, seasons[order[b]].kpi
		if si.WeightedRating != sj.WeightedRating {
			return si.WeightedRating > sj.WeightedRating
		}
		return si.SeasonNum < sj.SeasonNum
	})
	for rank, idx := range order {
		seasons[idx].kpi.SeasonRankBest = rank + 1
	}
}
