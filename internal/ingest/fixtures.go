package ingest

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/seasonlab/dropoff/schema"
)

// fixtureSeed keeps the synthetic fixtures byte-identical across runs.
const fixtureSeed = 42

// seasonSpec describes one synthetic season: episode count, the rating the
// episodes cluster around, and the vote volume they cluster around.
type seasonSpec struct {
	episodes  int
	rating    float64
	baseVotes int64
}

// fixtureShows holds the designed rating arcs, keyed by show ID. Each arc
// exercises a different detector outcome:
//
//	tt0096697 gradual decline over 8 seasons -> shark-jump at season 6
//	tt0206512 sharp drop after season 3      -> shark-jump at season 5
//	tt0182576 dip at season 3, full recovery -> no shark-jump
//	tt1520211 late decline                   -> shark-jump at season 5
var fixtureShows = map[string][]seasonSpec{
	"tt0096697": {
		{8, 8.5, 30000}, {8, 8.3, 28000}, {7, 8.0, 25000}, {7, 7.7, 22000},
		{6, 7.3, 18000}, {6, 7.0, 15000}, {5, 6.7, 10000}, {5, 6.4, 8000},
	},
	"tt0206512": {
		{8, 8.5, 20000}, {7, 8.7, 22000}, {7, 8.8, 25000},
		{6, 6.5, 12000}, {6, 6.2, 10000}, {5, 6.0, 8000},
	},
	"tt0182576": {
		{7, 8.2, 25000}, {7, 8.5, 27000}, {6, 7.8, 15000}, {6, 9.2, 30000},
		{6, 8.3, 22000}, {5, 8.0, 18000}, {5, 7.8, 15000},
	},
	"tt1520211": {
		{8, 8.8, 35000}, {8, 8.5, 32000}, {7, 8.2, 28000},
		{7, 7.5, 20000}, {6, 6.5, 12000}, {6, 6.0, 8000},
	},
}

// fixtureMeta holds synthetic show metadata: real titles, simplified fields.
var fixtureMeta = map[string]schema.Show{
	"tt0096697": {ShowID: "tt0096697", StartYear: 2000, EndYear: 2008, Genres: "Animation,Comedy"},
	"tt0206512": {ShowID: "tt0206512", StartYear: 2001, EndYear: 2007, Genres: "Animation,Comedy,Family"},
	"tt0182576": {ShowID: "tt0182576", StartYear: 2000, EndYear: 2007, Genres: "Animation,Comedy"},
	"tt1520211": {ShowID: "tt1520211", StartYear: 2010, EndYear: 2016, Genres: "Drama,Horror,Thriller"},
}

// GenerateFixtures builds the synthetic sample dataset in memory. All data
// is fabricated from scratch with a fixed seed; no real ratings are sampled.
func GenerateFixtures(shows map[string]string) *Dataset {
	rng := rand.New(rand.NewSource(fixtureSeed))

	ds := &Dataset{}
	epCounter := 1
	for _, showID := range sortedIDs(fixtureShows) {
		for seasonIdx, spec := range fixtureShows[showID] {
			for epIdx := range spec.episodes {
				// Ratings cluster around the target, rounded to one decimal
				// and clipped to the valid range like the upstream data.
				rating := spec.rating + rng.NormFloat64()*0.3
				rating = math.Round(rating*10) / 10
				rating = math.Min(schema.MaxRating, math.Max(schema.MinRating, rating))

				lo := max(int64(500), spec.baseVotes-5000)
				hi := spec.baseVotes + 5000
				votes := lo + rng.Int63n(hi-lo)

				ds.Episodes = append(ds.Episodes, schema.Episode{
					EpisodeID:  fmt.Sprintf("tt999%04d", epCounter),
					ShowID:     showID,
					SeasonNum:  seasonIdx + 1,
					EpisodeNum: epIdx + 1,
					Rating:     rating,
					Votes:      votes,
				})
				epCounter++
			}
		}
	}

	for _, showID := range sortedIDs(fixtureMeta) {
		meta := fixtureMeta[showID]
		meta.PrimaryTitle = schema.TitleOrID(shows, showID)
		ds.Shows = append(ds.Shows, meta)
		ds.Categories = append(ds.Categories, schema.ShowCategory{
			ShowID:   showID,
			Title:    meta.PrimaryTitle,
			Category: "Scripted",
		})
	}
	return ds
}

// WriteFixtures generates the synthetic dataset and writes the input CSVs
// into dir, creating it when needed.
func WriteFixtures(dir string, shows map[string]string) (*Dataset, error) {
	ds := GenerateFixtures(shows)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	epRows := make([][]string, 0, len(ds.Episodes))
	for _, ep := range ds.Episodes {
		epRows = append(epRows, []string{
			ep.EpisodeID,
			ep.ShowID,
			strconv.Itoa(ep.SeasonNum),
			strconv.Itoa(ep.EpisodeNum),
			strconv.FormatFloat(ep.Rating, 'f', 1, 64),
			strconv.FormatInt(ep.Votes, 10),
		})
	}
	if err := writeCSV(filepath.Join(dir, schema.EpisodesFile), schema.EpisodeColumns, epRows); err != nil {
		return nil, err
	}

	showRows := make([][]string, 0, len(ds.Shows))
	for _, s := range ds.Shows {
		showRows = append(showRows, []string{
			s.ShowID, s.PrimaryTitle, strconv.Itoa(s.StartYear), strconv.Itoa(s.EndYear), s.Genres,
		})
	}
	if err := writeCSV(filepath.Join(dir, schema.ShowsFile), schema.ShowColumns, showRows); err != nil {
		return nil, err
	}

	catRows := make([][]string, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		catRows = append(catRows, []string{c.ShowID, c.Title, c.Category})
	}
	if err := writeCSV(filepath.Join(dir, schema.CategoriesFile), schema.CategoryColumns, catRows); err != nil {
		return nil, err
	}

	return ds, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write(header); err != nil {
		return err
	}
	return w.WriteAll(rows)
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
