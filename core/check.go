package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seasonlab/dropoff/internal/ingest"
	"github.com/seasonlab/dropoff/schema"
)

// RunChecks executes the validation suite over the loaded inputs and the
// derived tables. Input checks mirror the contract the upstream filtering
// stage promises; output checks pin the grain, ranges and the off-by-one
// subtlety of the shark-jump rule. sampleMode adds fixture-only checks.
func RunChecks(ds *ingest.Dataset, result *schema.EngineResult, shows map[string]string, sampleMode bool) *schema.CheckResult {
	res := &schema.CheckResult{}
	checkInputs(res, ds, shows, sampleMode)
	checkSeasonKPIs(res, result, shows)
	checkSharkJumps(res, result, shows, sampleMode)
	checkDurability(res, result, shows)
	checkCrossTable(res, result, shows)
	return res
}

// checkInputs validates the episode fact table and show metadata.
func checkInputs(res *schema.CheckResult, ds *ingest.Dataset, shows map[string]string, sampleMode bool) {
	// Duplicate episode IDs would double-count votes in every aggregate.
	seen := make(map[string]struct{}, len(ds.Episodes))
	dups := 0
	for _, ep := range ds.Episodes {
		if _, ok := seen[ep.EpisodeID]; ok {
			dups++
		}
		seen[ep.EpisodeID] = struct{}{}
	}
	res.Check("unique episode_id", dups == 0, countDetail(dups, "duplicates", fmt.Sprintf("%d unique", len(ds.Episodes))))

	badSeason, badEpisode, badRating, badVotes := 0, 0, 0, 0
	for _, ep := range ds.Episodes {
		if ep.SeasonNum < 1 {
			badSeason++
		}
		if ep.EpisodeNum < 1 {
			badEpisode++
		}
		if ep.Rating < schema.MinRating || ep.Rating > schema.MaxRating {
			badRating++
		}
		if ep.Votes < 0 {
			badVotes++
		}
	}
	res.Check("season_num >= 1", badSeason == 0, countDetail(badSeason, "invalid", "no NULL or 0"))
	res.Check("episode_num >= 1", badEpisode == 0, countDetail(badEpisode, "invalid", "no NULL or 0"))
	res.Check(fmt.Sprintf("avg_rating in [%.1f, %.1f]", schema.MinRating, schema.MaxRating), badRating == 0, countDetail(badRating, "out of range", "all in range"))
	res.Check("num_votes >= 0", badVotes == 0, countDetail(badVotes, "negative", "all non-negative"))

	// Every episode must belong to a known show.
	unknown := make(map[string]struct{})
	for _, ep := range ds.Episodes {
		if _, ok := shows[ep.ShowID]; !ok {
			unknown[ep.ShowID] = struct{}{}
		}
	}
	res.Check("all show_id in known show set", len(unknown) == 0, countDetail(len(unknown), "unexpected shows", "all valid"))

	// Show metadata completeness.
	metaIDs := make(map[string]struct{}, len(ds.Shows))
	for _, s := range ds.Shows {
		metaIDs[s.ShowID] = struct{}{}
	}
	complete := len(metaIDs) == len(shows)
	for id := range shows {
		if _, ok := metaIDs[id]; !ok {
			complete = false
		}
	}
	res.Check("shows_metadata covers known show set", complete, fmt.Sprintf("%d rows for %d known shows", len(ds.Shows), len(shows)))

	if sampleMode {
		// Fabrication check: synthetic fixtures never contain real IDs.
		nonSynthetic := 0
		for _, ep := range ds.Episodes {
			if !strings.HasPrefix(ep.EpisodeID, "tt999") {
				nonSynthetic++
			}
		}
		res.Check("all episode_id synthetic (tt999 prefix)", nonSynthetic == 0, countDetail(nonSynthetic, "non-synthetic IDs", fmt.Sprintf("%d synthetic IDs", len(ds.Episodes))))
	}
}

// checkSeasonKPIs validates the grain and value ranges of the KPI table.
func checkSeasonKPIs(res *schema.CheckResult, result *schema.EngineResult, shows map[string]string) {
	dup := 0
	keys := make(map[schema.SeasonKey]struct{}, len(result.SeasonKPIs))
	for _, k := range result.SeasonKPIs {
		key := schema.SeasonKey{ShowID: k.ShowID, SeasonNum: k.SeasonNum}
		if _, ok := keys[key]; ok {
			dup++
		}
		keys[key] = struct{}{}
	}
	res.Check("unique (show_id, season_num)", dup == 0, countDetail(dup, "duplicates", fmt.Sprintf("%d rows, all unique", len(result.SeasonKPIs))))

	unexpected, badSeason, badCount, badRating, badCVI := 0, 0, 0, 0, 0
	for _, k := range result.SeasonKPIs {
		if _, ok := shows[k.ShowID]; !ok {
			unexpected++
		}
		if k.SeasonNum < 1 {
			badSeason++
		}
		if k.EpisodeCount < 1 {
			badCount++
		}
		if k.SeasonTotalVotes > 0 && (k.WeightedRating < schema.MinRating || k.WeightedRating > schema.MaxRating) {
			badRating++
		}
		if k.SeasonTotalVotes > 0 && k.CatalogValueIndex <= 0 {
			badCVI++
		}
	}
	res.Check("kpi show_id membership", unexpected == 0, countDetail(unexpected, "unexpected", "all valid"))
	res.Check("kpi season_num > 0", badSeason == 0, countDetail(badSeason, "invalid", "all positive"))
	res.Check("kpi episode_count > 0", badCount == 0, countDetail(badCount, "invalid", "all positive"))
	res.Check("weighted_rating in [1.0, 10.0]", badRating == 0, countDetail(badRating, "out of range", "all in range"))
	res.Check("catalog_value_index > 0", badCVI == 0, countDetail(badCVI, "non-positive", "all positive"))
}

// checkSharkJumps validates the shark grain and, in sample mode, re-derives
// the expected onset per show to pin the first-of-pair rule.
func checkSharkJumps(res *schema.CheckResult, result *schema.EngineResult, shows map[string]string, sampleMode bool) {
	sharkShows := make(map[string]int)
	for _, s := range result.SharkJumps {
		sharkShows[s.ShowID]++
	}
	res.Check("exactly 1 shark row per known show", exactlyOnePerShow(sharkShows, shows),
		fmt.Sprintf("%d rows for %d known shows", len(result.SharkJumps), len(shows)))

	for _, s := range result.SharkJumps {
		title := schema.TitleOrID(shows, s.ShowID)
		if s.SharkJumpSeason == nil {
			res.Check("shark_jump_season "+title, true, "null (no shark-jump)")
			continue
		}
		sj := *s.SharkJumpSeason
		inSet := false
		for _, k := range result.SeasonKPIs {
			if k.ShowID == s.ShowID && k.SeasonNum == sj {
				inSet = true
				break
			}
		}
		res.Check("shark_jump_season "+title, sj >= 2 && inSet, fmt.Sprintf("season %d", sj))
	}

	if !sampleMode {
		return
	}

	// Off-by-one verification: independently re-derive the expected onset
	// from the KPI table and compare. Reporting the SECOND season of the
	// below pair is the classic mistake this pins down.
	triggered := 0
	for _, s := range result.SharkJumps {
		if s.SharkJumpSeason == nil {
			continue
		}
		triggered++
		title := schema.TitleOrID(shows, s.ShowID)
		expected := expectedSharkJump(result.SeasonKPIs, s.ShowID)
		ok := expected != nil && *expected == *s.SharkJumpSeason
		res.Check("off-by-one "+title, ok,
			fmt.Sprintf("shark_jump_season=%d, expected=%s", *s.SharkJumpSeason, formatNullable(expected)))
	}
	res.Check("at least one show triggers shark-jump", triggered > 0, fmt.Sprintf("%d shows triggered", triggered))
}

// checkDurability validates the durability grain and bounds.
func checkDurability(res *schema.CheckResult, result *schema.EngineResult, shows map[string]string) {
	durShows := make(map[string]int)
	for _, d := range result.Durability {
		durShows[d.ShowID]++
	}
	res.Check("exactly 1 durability row per known show", exactlyOnePerShow(durShows, shows),
		fmt.Sprintf("%d rows for %d known shows", len(result.Durability), len(shows)))

	seasonCounts := make(map[string]int)
	for _, k := range result.SeasonKPIs {
		seasonCounts[k.ShowID]++
	}
	for _, d := range result.Durability {
		title := schema.TitleOrID(shows, d.ShowID)
		ok := d.DurabilityIndex >= 0 && d.DurabilityIndex <= seasonCounts[d.ShowID]
		res.Check("durability_index "+title, ok, fmt.Sprintf("%d of %d seasons above avg", d.DurabilityIndex, seasonCounts[d.ShowID]))
	}
}

// checkCrossTable verifies the show sets of all outputs line up.
func checkCrossTable(res *schema.CheckResult, result *schema.EngineResult, shows map[string]string) {
	kpiSet := make(map[string]struct{})
	for _, k := range result.SeasonKPIs {
		kpiSet[k.ShowID] = struct{}{}
	}
	sharkSet := make(map[string]struct{})
	for _, s := range result.SharkJumps {
		sharkSet[s.ShowID] = struct{}{}
	}
	durSet := make(map[string]struct{})
	for _, d := range result.Durability {
		durSet[d.ShowID] = struct{}{}
	}

	consistent := len(sharkSet) == len(shows) && len(durSet) == len(shows)
	for id := range shows {
		if _, ok := sharkSet[id]; !ok {
			consistent = false
		}
		if _, ok := durSet[id]; !ok {
			consistent = false
		}
	}
	// KPI rows only exist for shows with episodes, so kpiSet may be a
	// strict subset of the known set.
	for id := range kpiSet {
		if _, ok := shows[id]; !ok {
			consistent = false
		}
	}
	res.Check("show sets consistent across outputs", consistent,
		fmt.Sprintf("kpi=%d shark=%d durability=%d known=%d", len(kpiSet), len(sharkSet), len(durSet), len(shows)))
}

// expectedSharkJump re-derives the first-of-pair onset from the KPI rows,
// independent of the detector implementation.
func expectedSharkJump(kpis []schema.SeasonKPI, showID string) *int {
	var seasons []schema.SeasonKPI
	for _, k := range kpis {
		if k.ShowID == showID {
			seasons = append(seasons, k)
		}
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i].SeasonNum < seasons[j].SeasonNum })

	for i := 1; i+1 < len(seasons); i++ {
		if seasons[i].Rolling3SeasonAvg >= seasons[i].SeriesAvg {
			continue
		}
		if seasons[i+1].Rolling3SeasonAvg >= seasons[i+1].SeriesAvg {
			continue
		}
		if seasons[i+1].SeasonNum-seasons[i].SeasonNum != 1 {
			continue
		}
		season := seasons[i].SeasonNum
		return &season
	}
	return nil
}

func exactlyOnePerShow(counts map[string]int, shows map[string]string) bool {
	if len(counts) != len(shows) {
		return false
	}
	for id := range shows {
		if counts[id] != 1 {
			return false
		}
	}
	return true
}

func countDetail(n int, bad, good string) string {
	if n > 0 {
		return fmt.Sprintf("%d %s", n, bad)
	}
	return good
}

func formatNullable(v *int) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *v)
}
