package core

// sharkJump scans one show's seasons (ascending by season number, trend
// fields populated) for the earliest onset of sustained decline.
//
// A season is "below" when its rolling average sits under the show's series
// average. The first pair of seasons that are adjacent in the sorted sequence
// with consecutive season numbers (difference exactly one, no gap) and both
// below marks the shark-jump. The reported value is the EARLIER season of
// that pair; reporting the later one would land the onset a season late.
//
// A show's first season is never marked below: its rolling window holds a
// single observation, which the two-in-a-row rule already treats as noise.
// That also pins the minimum reportable shark-jump season at 2.
func sharkJump(seasons []seasonAgg) *int {
	if len(seasons) < 2 {
		return nil
	}

	below := make([]bool, len(seasons))
	for i := 1; i < len(seasons); i++ {
		below[i] = seasons[i].kpi.Rolling3SeasonAvg < seasons[i].kpi.SeriesAvg
	}

	for i := 0; i+1 < len(seasons); i++ {
		if !below[i] || !below[i+1] {
			continue
		}
		if seasons[i+1].kpi.SeasonNum-seasons[i].kpi.SeasonNum != 1 {
			continue
		}
		season := seasons[i].kpi.SeasonNum
		return &season
	}
	return nil
}
