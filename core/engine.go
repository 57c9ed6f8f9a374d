package core

import (
	"fmt"
	"sort"

	"github.com/seasonlab/dropoff/schema"
)

const rollingWindow = schema.RollingWindowSeasons

// EngineConfig carries the knobs the engine needs. Show identifiers are
// passed in rather than read from package globals so the engine can be run
// against arbitrary show sets.
type EngineConfig struct {
	// Shows maps every known show ID to its display title. Every ID listed
	// here appears exactly once in the shark and durability outputs even
	// when it has no episodes.
	Shows map[string]string

	// HighRatedThreshold overrides schema.HighRatedThreshold when > 0.
	HighRatedThreshold float64

	// ZeroVotePolicy defaults to ZeroVoteFail when empty.
	ZeroVotePolicy schema.ZeroVotePolicy
}

// Engine computes the three derived tables from a clean episode fact table.
// It holds no state between runs; every Run recomputes from scratch.
type Engine struct {
	shows              map[string]string
	highRatedThreshold float64
	zeroVotePolicy     schema.ZeroVotePolicy
}

// NewEngine builds an engine, applying defaults for unset config fields.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		shows:              cfg.Shows,
		highRatedThreshold: cfg.HighRatedThreshold,
		zeroVotePolicy:     cfg.ZeroVotePolicy,
	}
	if e.highRatedThreshold <= 0 {
		e.highRatedThreshold = schema.HighRatedThreshold
	}
	if e.zeroVotePolicy == "" {
		e.zeroVotePolicy = schema.ZeroVoteFail
	}
	return e
}

// Run executes the full pipeline: season aggregation, trend calculation, and
// the two detectors. Episodes may arrive in any order. The result is either
// all three complete derived tables or an error; there is no partial output.
func (e *Engine) Run(episodes []schema.Episode) (*schema.EngineResult, error) {
	if err := e.validateEpisodes(episodes); err != nil {
		return nil, err
	}

	aggs, err := e.aggregateSeasons(episodes)
	if err != nil {
		return nil, err
	}
	applyTrends(aggs)

	result := &schema.EngineResult{
		SeasonKPIs: make([]schema.SeasonKPI, len(aggs)),
		SharkJumps: make([]schema.ShowShark, 0, len(e.shows)),
		Durability: make([]schema.ShowDurability, 0, len(e.shows)),
	}
	for i, a := range aggs {
		result.SeasonKPIs[i] = a.kpi
	}

	// Both detectors consume the same per-show season slices and emit one
	// row per KNOWN show, triggered or not.
	byShow := groupByShow(aggs)
	for _, showID := range sortedShowIDs(e.shows) {
		seasons := byShow[showID]
		result.SharkJumps = append(result.SharkJumps, schema.ShowShark{
			ShowID:          showID,
			SharkJumpSeason: sharkJump(seasons),
		})
		result.Durability = append(result.Durability, schema.ShowDurability{
			ShowID:          showID,
			DurabilityIndex: durabilityIndex(seasons),
		})
	}

	if err := e.checkInvariants(result); err != nil {
		return nil, err
	}
	return result, nil
}

// validateEpisodes enforces the episode fact table contract. Ingest performs
// the same checks on raw CSV; repeating them here keeps the engine safe when
// callers construct episodes directly.
func (e *Engine) validateEpisodes(episodes []schema.Episode) error {
	for _, ep := range episodes {
		switch {
		case ep.ShowID == "":
			return &schema.SchemaError{Field: "show_id", Detail: "empty show identifier"}
		case ep.SeasonNum < 1:
			return &schema.SchemaError{Field: "season_num", Detail: fmt.Sprintf("must be >= 1, got %d (show %s)", ep.SeasonNum, ep.ShowID)}
		case ep.EpisodeNum < 1:
			return &schema.SchemaError{Field: "episode_num", Detail: fmt.Sprintf("must be >= 1, got %d (show %s)", ep.EpisodeNum, ep.ShowID)}
		case ep.Rating < schema.MinRating || ep.Rating > schema.MaxRating:
			return &schema.SchemaError{Field: "avg_rating", Detail: fmt.Sprintf("must be in [%.1f, %.1f], got %g (show %s)", schema.MinRating, schema.MaxRating, ep.Rating, ep.ShowID)}
		case ep.Votes < 0:
			return &schema.SchemaError{Field: "num_votes", Detail: fmt.Sprintf("must be >= 0, got %d (show %s)", ep.Votes, ep.ShowID)}
		}
		if len(e.shows) > 0 {
			if _, ok := e.shows[ep.ShowID]; !ok {
				return &schema.SchemaError{Field: "show_id", Detail: fmt.Sprintf("unknown show %s", ep.ShowID)}
			}
		}
	}
	return nil
}

// checkInvariants runs the defensive post-conditions. A failure here is an
// engine bug and aborts loudly instead of being silently corrected.
func (e *Engine) checkInvariants(result *schema.EngineResult) error {
	ranks := make(map[schema.SeasonKey]struct{})
	for _, kpi := range result.SeasonKPIs {
		key := schema.SeasonKey{ShowID: kpi.ShowID, SeasonNum: kpi.SeasonRankBest}
		if _, dup := ranks[key]; dup {
			return &schema.InvariantError{ShowID: kpi.ShowID, SeasonNum: kpi.SeasonNum, Invariant: fmt.Sprintf("duplicate season rank %d", kpi.SeasonRankBest)}
		}
		ranks[key] = struct{}{}
	}
	for _, shark := range result.SharkJumps {
		if shark.SharkJumpSeason != nil && *shark.SharkJumpSeason < 2 {
			return &schema.InvariantError{ShowID: shark.ShowID, SeasonNum: *shark.SharkJumpSeason, Invariant: "shark-jump season below 2"}
		}
	}
	for _, dur := range result.Durability {
		if dur.DurabilityIndex < 0 {
			return &schema.InvariantError{ShowID: dur.ShowID, Invariant: fmt.Sprintf("negative durability index %d", dur.DurabilityIndex)}
		}
	}
	return nil
}

// groupByShow splits the sorted aggregate slice into per-show sub-slices.
func groupByShow(aggs []seasonAgg) map[string][]seasonAgg {
	out := make(map[string][]seasonAgg)
	for start := 0; start < len(aggs); {
		end := start
		for end < len(aggs) && aggs[end].kpi.ShowID == aggs[start].kpi.ShowID {
			end++
		}
		out[aggs[start].kpi.ShowID] = aggs[start:end]
		start = end
	}
	return out
}

// sortedShowIDs returns the known show IDs in stable order.
func sortedShowIDs(shows map[string]string) []string {
	ids := make([]string, 0, len(shows))
	for id := range shows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
