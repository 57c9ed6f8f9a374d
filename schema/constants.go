package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for run tracking.
	StoreBackend string

	// ZeroVotePolicy decides what happens to seasons whose total vote count
	// is zero, where a weighted rating is mathematically undefined.
	ZeroVotePolicy string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All run-store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// All zero-vote policies supported. The policy is applied by the aggregator
// before any trend math so the two stages can never disagree.
const (
	ZeroVoteFail    ZeroVotePolicy = "fail" // default: abort with a data-quality error
	ZeroVoteExclude ZeroVotePolicy = "exclude"
)

// Engine tuning constants.
const (
	// HighRatedThreshold is the rating an episode must strictly exceed to
	// count toward pct_high_rated.
	HighRatedThreshold = 8.0

	// RollingWindowSeasons is the trailing window length for the smoothed
	// trend signal. The window is positional: the current season plus up to
	// RollingWindowSeasons-1 immediately preceding rows in season_num order.
	RollingWindowSeasons = 3

	// MinRating and MaxRating bound valid episode ratings.
	MinRating = 1.0
	MaxRating = 10.0
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidStoreBackends lists all valid run-store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidZeroVotePolicies lists all valid zero-vote policies.
var ValidZeroVotePolicies = map[ZeroVotePolicy]struct{}{
	ZeroVoteFail:    {},
	ZeroVoteExclude: {},
}

// Input CSV file names produced by the upstream filtering stage.
const (
	EpisodesFile   = "episodes_filtered.csv"
	ShowsFile      = "shows_metadata.csv"
	BasicsFile     = "episodes_basics.csv"
	CategoriesFile = "dim_show_category.csv"
)

// EpisodeColumns is the required header of episodes_filtered.csv, in order.
var EpisodeColumns = []string{
	"episode_id",
	"show_id",
	"season_num",
	"episode_num",
	"avg_rating",
	"num_votes",
}

// ShowColumns is the required header of shows_metadata.csv, in order.
var ShowColumns = []string{
	"show_id",
	"primary_title",
	"start_year",
	"end_year",
	"genres",
}

// CategoryColumns is the required header of dim_show_category.csv, in order.
var CategoryColumns = []string{
	"show_id",
	"title",
	"category",
}

// KPIColumns is the column order for season KPI CSV output. The check suite
// verifies this exact set on exported files.
var KPIColumns = []string{
	"show_id",
	"season_num",
	"episode_count",
	"season_total_votes",
	"weighted_rating",
	"mean_rating",
	"rating_stddev",
	"pct_high_rated",
	"series_avg",
	"rolling_3_season_avg",
	"season_rank_best",
	"catalog_value_index",
}

// SharkColumns is the column order for shark-jump CSV output.
var SharkColumns = []string{"show_id", "shark_jump_season"}

// DurabilityColumns is the column order for durability CSV output.
var DurabilityColumns = []string{"show_id", "durability_index"}
