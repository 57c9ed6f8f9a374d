package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/seasonlab/dropoff/internal/contract"
	"github.com/seasonlab/dropoff/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSeasonKPIResults outputs the season KPI table, dispatching based on the
// output format configured. Shark verdicts are passed alongside so the table
// can mark the onset season in the trend column.
func WriteSeasonKPIResults(kpis []schema.SeasonKPI, sharks []schema.ShowShark, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeKPIJSONResults(kpis, sharks, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeKPICSVResults(kpis, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeKPITable(kpis, sharks, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeKPIJSONResults handles opening the file and calling the JSON writer.
func writeKPIJSONResults(kpis []schema.SeasonKPI, sharks []schema.ShowShark, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForKPIs(w, kpis, sharks, cfg)
	}, "Wrote JSON")
}

// writeKPICSVResults handles opening the file and calling the CSV writer.
func writeKPICSVResults(kpis []schema.SeasonKPI, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, schema.KPIColumns, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForKPIs(csvWriter, kpis, fmtFloat, intFmt)
		})
	}, "Wrote CSV")
}

// writeKPITable generates and writes the human-readable table.
func writeKPITable(kpis []schema.SeasonKPI, sharks []schema.ShowShark, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	onsets := onsetByShow(sharks)

	table.Header([]string{"Show", "Season", "Eps", "Votes", "Weighted", "Mean", "Stddev", "HighPct", "SeriesAvg", "Roll3", "Rank", "CVI", "Trend"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	titleWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	for _, k := range kpis {
		isOnset := onsets[k.ShowID] != nil && *onsets[k.ShowID] == k.SeasonNum
		row := []string{
			contract.TruncateTitle(schema.TitleOrID(cfg.Shows, k.ShowID), titleWidth),
			strconv.Itoa(k.SeasonNum),
			fmt.Sprintf(intFmt, k.EpisodeCount),
			fmt.Sprintf(intFmt, k.SeasonTotalVotes),
			fmtFloat(k.WeightedRating),
			fmtFloat(k.MeanRating),
			fmtFloat(k.RatingStddev),
			fmtFloat(k.PctHighRated),
			fmtFloat(k.SeriesAvg),
			fmtFloat(k.Rolling3SeasonAvg),
			strconv.Itoa(k.SeasonRankBest),
			fmtFloat(k.CatalogValueIndex),
			contract.GetColorTrendLabel(k.Rolling3SeasonAvg, k.SeriesAvg, isOnset, cfg.UseColors),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	showSet := make(map[string]struct{})
	var totalVotes int64
	for _, k := range kpis {
		showSet[k.ShowID] = struct{}{}
		totalVotes += k.SeasonTotalVotes
	}
	if _, err := fmt.Fprintf(writer, "Showing %d seasons across %d shows (total votes: %d)\n", len(kpis), len(showSet), totalVotes); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForKPIs writes the season KPI rows in CSV format. The column
// order must match schema.KPIColumns.
func writeCSVResultsForKPIs(w *csv.Writer, kpis []schema.SeasonKPI, fmtFloat func(float64) string, intFmt string) error {
	for _, k := range kpis {
		rec := []string{
			k.ShowID,
			strconv.Itoa(k.SeasonNum),
			fmt.Sprintf(intFmt, k.EpisodeCount),
			fmt.Sprintf(intFmt, k.SeasonTotalVotes),
			fmtFloat(k.WeightedRating),
			fmtFloat(k.MeanRating),
			fmtFloat(k.RatingStddev),
			fmtFloat(k.PctHighRated),
			fmtFloat(k.SeriesAvg),
			fmtFloat(k.Rolling3SeasonAvg),
			strconv.Itoa(k.SeasonRankBest),
			fmtFloat(k.CatalogValueIndex),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForKPIs writes the season KPI rows in JSON format with the
// display title and trend label added.
func writeJSONResultsForKPIs(w io.Writer, kpis []schema.SeasonKPI, sharks []schema.ShowShark, cfg *contract.Config) error {
	type JSONSeasonKPI struct {
		Title string `json:"title"`
		Trend string `json:"trend"`
		schema.SeasonKPI
	}

	onsets := onsetByShow(sharks)
	output := make([]JSONSeasonKPI, len(kpis))
	for i, k := range kpis {
		isOnset := onsets[k.ShowID] != nil && *onsets[k.ShowID] == k.SeasonNum
		output[i] = JSONSeasonKPI{
			Title:     schema.TitleOrID(cfg.Shows, k.ShowID),
			Trend:     contract.GetPlainTrendLabel(k.Rolling3SeasonAvg, k.SeriesAvg, isOnset),
			SeasonKPI: k,
		}
	}

	return writeJSON(w, output)
}

// onsetByShow indexes shark-jump seasons by show ID for the trend column.
func onsetByShow(sharks []schema.ShowShark) map[string]*int {
	out := make(map[string]*int, len(sharks))
	for _, s := range sharks {
		out[s.ShowID] = s.SharkJumpSeason
	}
	return out
}
