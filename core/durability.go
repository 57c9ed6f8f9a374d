package core

// durabilityIndex counts one show's seasons whose weighted rating sits
// strictly above the show's series average. Ties do not count, and the
// comparison uses the raw weighted rating, not the smoothed rolling signal.
// A single-season show always scores 0: its series average equals its only
// season's weighted rating.
func durabilityIndex(seasons []seasonAgg) int {
	count := 0
	for _, s := range seasons {
		if s.kpi.WeightedRating > s.kpi.SeriesAvg {
			count++
		}
	}
	return count
}
