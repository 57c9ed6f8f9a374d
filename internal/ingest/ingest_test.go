package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/seasonlab/dropoff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCSV(t *testing.T, dir, name string, records [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(records))
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func validEpisodeRows() [][]string {
	return [][]string{
		schema.EpisodeColumns,
		{"tt9990001", "tt0096697", "1", "1", "8.5", "30000"},
		{"tt9990002", "tt0096697", "1", "2", "8.2", "28000"},
		{"tt9990003", "tt0096697", "2", "1", "7.9", "25000"},
	}
}

// TestLoadEpisodes tests the episode CSV parser and its contract checks.
func TestLoadEpisodes(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeTestCSV(t, t.TempDir(), schema.EpisodesFile, validEpisodeRows())

		episodes, err := LoadEpisodes(path)
		require.NoError(t, err)
		require.Len(t, episodes, 3)
		assert.Equal(t, "tt9990001", episodes[0].EpisodeID)
		assert.Equal(t, "tt0096697", episodes[0].ShowID)
		assert.Equal(t, 1, episodes[0].SeasonNum)
		assert.InDelta(t, 8.5, episodes[0].Rating, 1e-12)
		assert.Equal(t, int64(30000), episodes[0].Votes)
	})

	t.Run("reordered and extra columns tolerated", func(t *testing.T) {
		rows := [][]string{
			{"num_votes", "episode_id", "extra_col", "avg_rating", "show_id", "episode_num", "season_num"},
			{"30000", "tt9990001", "ignored", "8.5", "tt0096697", "1", "1"},
		}
		path := writeTestCSV(t, t.TempDir(), schema.EpisodesFile, rows)

		episodes, err := LoadEpisodes(path)
		require.NoError(t, err)
		require.Len(t, episodes, 1)
		assert.Equal(t, "tt9990001", episodes[0].EpisodeID)
		assert.Equal(t, int64(30000), episodes[0].Votes)
	})

	t.Run("missing required column", func(t *testing.T) {
		rows := [][]string{
			{"episode_id", "show_id", "season_num", "episode_num", "avg_rating"},
			{"tt9990001", "tt0096697", "1", "1", "8.5"},
		}
		path := writeTestCSV(t, t.TempDir(), schema.EpisodesFile, rows)

		_, err := LoadEpisodes(path)
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "num_votes", schemaErr.Field)
	})

	t.Run("rating out of range", func(t *testing.T) {
		rows := validEpisodeRows()
		rows[1][4] = "10.5"
		path := writeTestCSV(t, t.TempDir(), schema.EpisodesFile, rows)

		_, err := LoadEpisodes(path)
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "avg_rating", schemaErr.Field)
	})

	t.Run("non numeric votes", func(t *testing.T) {
		rows := validEpisodeRows()
		rows[1][5] = "many"
		path := writeTestCSV(t, t.TempDir(), schema.EpisodesFile, rows)

		_, err := LoadEpisodes(path)
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "num_votes", schemaErr.Field)
	})

	t.Run("zero season number", func(t *testing.T) {
		rows := validEpisodeRows()
		rows[1][2] = "0"
		path := writeTestCSV(t, t.TempDir(), schema.EpisodesFile, rows)

		_, err := LoadEpisodes(path)
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "season_num", schemaErr.Field)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), schema.EpisodesFile)
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := LoadEpisodes(path)
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "header", schemaErr.Field)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadEpisodes(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

// TestLoadShows tests the show metadata parser.
func TestLoadShows(t *testing.T) {
	t.Run("valid with blank end year", func(t *testing.T) {
		rows := [][]string{
			schema.ShowColumns,
			{"tt0096697", "The Simpsons", "1989", "", "Animation,Comedy"},
			{"tt1520211", "The Walking Dead", "2010", "2022", "Drama,Horror"},
		}
		path := writeTestCSV(t, t.TempDir(), schema.ShowsFile, rows)

		shows, err := LoadShows(path)
		require.NoError(t, err)
		require.Len(t, shows, 2)
		assert.Equal(t, 0, shows[0].EndYear)
		assert.Equal(t, 2022, shows[1].EndYear)
	})

	t.Run("bad start year", func(t *testing.T) {
		rows := [][]string{
			schema.ShowColumns,
			{"tt0096697", "The Simpsons", "eighty-nine", "1998", "Animation"},
		}
		path := writeTestCSV(t, t.TempDir(), schema.ShowsFile, rows)

		_, err := LoadShows(path)
		var schemaErr *schema.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "start_year", schemaErr.Field)
	})
}

// TestLoadDataset tests directory-level loading.
func TestLoadDataset(t *testing.T) {
	writeRequired := func(t *testing.T, dir string) {
		writeTestCSV(t, dir, schema.EpisodesFile, validEpisodeRows())
		writeTestCSV(t, dir, schema.ShowsFile, [][]string{
			schema.ShowColumns,
			{"tt0096697", "The Simpsons", "1989", "1998", "Animation,Comedy"},
		})
	}

	t.Run("categories file optional", func(t *testing.T) {
		dir := t.TempDir()
		writeRequired(t, dir)

		ds, err := LoadDataset(dir)
		require.NoError(t, err)
		assert.Len(t, ds.Episodes, 3)
		assert.Len(t, ds.Shows, 1)
		assert.Empty(t, ds.Categories)
	})

	t.Run("categories loaded when present", func(t *testing.T) {
		dir := t.TempDir()
		writeRequired(t, dir)
		writeTestCSV(t, dir, schema.CategoriesFile, [][]string{
			schema.CategoryColumns,
			{"tt0096697", "The Simpsons", "Scripted"},
		})

		ds, err := LoadDataset(dir)
		require.NoError(t, err)
		require.Len(t, ds.Categories, 1)
		assert.Equal(t, "Scripted", ds.Categories[0].Category)
	})

	t.Run("missing episodes file", func(t *testing.T) {
		dir := t.TempDir()
		writeTestCSV(t, dir, schema.ShowsFile, [][]string{schema.ShowColumns})

		_, err := LoadDataset(dir)
		assert.Error(t, err)
	})
}
