// Package ingest reads the cleaned input CSVs into memory and enforces the
// episode fact table contract. It performs parsing only; all analytics live
// in core.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/seasonlab/dropoff/schema"
)

// Dataset bundles the in-memory input tables for a run.
type Dataset struct {
	Episodes   []schema.Episode
	Shows      []schema.Show
	Categories []schema.ShowCategory
}

// LoadDataset loads all input CSVs from dir. The categories file is optional
// (display labeling only); episodes and show metadata are required.
func LoadDataset(dir string) (*Dataset, error) {
	episodes, err := LoadEpisodes(filepath.Join(dir, schema.EpisodesFile))
	if err != nil {
		return nil, err
	}
	shows, err := LoadShows(filepath.Join(dir, schema.ShowsFile))
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Episodes: episodes, Shows: shows}

	catPath := filepath.Join(dir, schema.CategoriesFile)
	if _, err := os.Stat(catPath); err == nil {
		cats, err := LoadCategories(catPath)
		if err != nil {
			return nil, err
		}
		ds.Categories = cats
	}
	return ds, nil
}

// LoadEpisodes reads episodes_filtered.csv and validates every row against
// the episode contract. Any malformed row is a SchemaError naming the field.
func LoadEpisodes(path string) ([]schema.Episode, error) {
	rows, cols, err := readCSV(path, schema.EpisodeColumns)
	if err != nil {
		return nil, err
	}

	episodes := make([]schema.Episode, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // header is line 1

		seasonNum, err := strconv.Atoi(row[cols["season_num"]])
		if err != nil || seasonNum < 1 {
			return nil, &schema.SchemaError{Field: "season_num", Detail: fmt.Sprintf("%s line %d: must be an integer >= 1, got %q", filepath.Base(path), line, row[cols["season_num"]])}
		}
		episodeNum, err := strconv.Atoi(row[cols["episode_num"]])
		if err != nil || episodeNum < 1 {
			return nil, &schema.SchemaError{Field: "episode_num", Detail: fmt.Sprintf("%s line %d: must be an integer >= 1, got %q", filepath.Base(path), line, row[cols["episode_num"]])}
		}
		rating, err := strconv.ParseFloat(row[cols["avg_rating"]], 64)
		if err != nil || rating < schema.MinRating || rating > schema.MaxRating {
			return nil, &schema.SchemaError{Field: "avg_rating", Detail: fmt.Sprintf("%s line %d: must be a number in [%.1f, %.1f], got %q", filepath.Base(path), line, schema.MinRating, schema.MaxRating, row[cols["avg_rating"]])}
		}
		votes, err := strconv.ParseInt(row[cols["num_votes"]], 10, 64)
		if err != nil || votes < 0 {
			return nil, &schema.SchemaError{Field: "num_votes", Detail: fmt.Sprintf("%s line %d: must be an integer >= 0, got %q", filepath.Base(path), line, row[cols["num_votes"]])}
		}

		episodes = append(episodes, schema.Episode{
			EpisodeID:  row[cols["episode_id"]],
			ShowID:     row[cols["show_id"]],
			SeasonNum:  seasonNum,
			EpisodeNum: episodeNum,
			Rating:     rating,
			Votes:      votes,
		})
	}
	return episodes, nil
}

// LoadShows reads shows_metadata.csv.
func LoadShows(path string) ([]schema.Show, error) {
	rows, cols, err := readCSV(path, schema.ShowColumns)
	if err != nil {
		return nil, err
	}

	shows := make([]schema.Show, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		startYear, err := strconv.Atoi(row[cols["start_year"]])
		if err != nil {
			return nil, &schema.SchemaError{Field: "start_year", Detail: fmt.Sprintf("%s line %d: must be an integer, got %q", filepath.Base(path), line, row[cols["start_year"]])}
		}
		// end_year may be blank for shows still running
		endYear := 0
		if v := row[cols["end_year"]]; v != "" {
			endYear, err = strconv.Atoi(v)
			if err != nil {
				return nil, &schema.SchemaError{Field: "end_year", Detail: fmt.Sprintf("%s line %d: must be an integer or blank, got %q", filepath.Base(path), line, v)}
			}
		}
		shows = append(shows, schema.Show{
			ShowID:       row[cols["show_id"]],
			PrimaryTitle: row[cols["primary_title"]],
			StartYear:    startYear,
			EndYear:      endYear,
			Genres:       row[cols["genres"]],
		})
	}
	return shows, nil
}

// LoadCategories reads the static show-category dimension.
func LoadCategories(path string) ([]schema.ShowCategory, error) {
	rows, cols, err := readCSV(path, schema.CategoryColumns)
	if err != nil {
		return nil, err
	}

	cats := make([]schema.ShowCategory, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, schema.ShowCategory{
			ShowID:   row[cols["show_id"]],
			Title:    row[cols["title"]],
			Category: row[cols["category"]],
		})
	}
	return cats, nil
}

// readCSV loads all records from path and maps the required column names to
// their indices. Extra columns and arbitrary column order are tolerated;
// missing required columns are a SchemaError.
func readCSV(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, &schema.SchemaError{Field: "header", Detail: fmt.Sprintf("%s is empty", filepath.Base(path))}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read %s header: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, &schema.SchemaError{Field: name, Detail: fmt.Sprintf("%s is missing required column %q", filepath.Base(path), name)}
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return rows, cols, nil
}
