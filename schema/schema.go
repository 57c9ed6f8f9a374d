// Package schema has configs, models and constants for all parts of dropoff.
package schema

// Episode is one validated row of the episode fact table.
// The engine treats the slice of episodes as immutable for the run.
type Episode struct {
	EpisodeID  string  `json:"episode_id"`  // Unique episode identifier (e.g. tt9990001)
	ShowID     string  `json:"show_id"`     // Parent show identifier
	SeasonNum  int     `json:"season_num"`  // Season number, >= 1
	EpisodeNum int     `json:"episode_num"` // Episode number within the season, >= 1
	Rating     float64 `json:"rating"`      // Average user rating in [1.0, 10.0]
	Votes      int64   `json:"votes"`       // Vote count, >= 0
}

// SeasonKPI is the derived per-(show, season) row. The JSON/CSV field names
// are load-bearing: downstream reporting and the check suite key on them.
type SeasonKPI struct {
	ShowID            string  `json:"show_id"`
	SeasonNum         int     `json:"season_num"`
	EpisodeCount      int     `json:"episode_count"`
	SeasonTotalVotes  int64   `json:"season_total_votes"`
	WeightedRating    float64 `json:"weighted_rating"`      // Vote-weighted mean rating
	MeanRating        float64 `json:"mean_rating"`          // Unweighted mean rating
	RatingStddev      float64 `json:"rating_stddev"`        // Sample stddev (N-1), 0 when N == 1
	PctHighRated      float64 `json:"pct_high_rated"`       // Fraction of episodes rated above the high threshold
	SeriesAvg         float64 `json:"series_avg"`           // Show-wide weighted rating, repeated per season
	Rolling3SeasonAvg float64 `json:"rolling_3_season_avg"` // Trailing mean of weighted ratings, window of up to 3
	SeasonRankBest    int     `json:"season_rank_best"`     // 1 = highest weighted rating within the show
	CatalogValueIndex float64 `json:"catalog_value_index"`  // weighted_rating * ln(1 + season_total_votes)
}

// ShowShark holds the decline-onset result for a single show.
// SharkJumpSeason is nil when no sustained decline was detected.
type ShowShark struct {
	ShowID          string `json:"show_id"`
	SharkJumpSeason *int   `json:"shark_jump_season"`
}

// ShowDurability counts how many of a show's seasons perform strictly above
// the show's own series average.
type ShowDurability struct {
	ShowID          string `json:"show_id"`
	DurabilityIndex int    `json:"durability_index"`
}

// Show is one row of the show metadata table.
type Show struct {
	ShowID       string `json:"show_id"`
	PrimaryTitle string `json:"primary_title"`
	StartYear    int    `json:"start_year"`
	EndYear      int    `json:"end_year"`
	Genres       string `json:"genres"`
}

// ShowCategory is one row of the static display-labeling dimension.
type ShowCategory struct {
	ShowID   string `json:"show_id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// EngineResult bundles the three derived tables produced by a single run.
// All three are recomputed from scratch on every invocation.
type EngineResult struct {
	SeasonKPIs []SeasonKPI      `json:"season_kpis"`
	SharkJumps []ShowShark      `json:"shark_jumps"`
	Durability []ShowDurability `json:"durability"`
}

// KPIByKey returns the KPI rows indexed by (show, season) for lookups in
// checks and tests. Keys are unique by construction.
func (r *EngineResult) KPIByKey() map[SeasonKey]SeasonKPI {
	out := make(map[SeasonKey]SeasonKPI, len(r.SeasonKPIs))
	for _, k := range r.SeasonKPIs {
		out[SeasonKey{ShowID: k.ShowID, SeasonNum: k.SeasonNum}] = k
	}
	return out
}

// SeasonKey identifies a single (show, season) grain.
type SeasonKey struct {
	ShowID    string
	SeasonNum int
}
