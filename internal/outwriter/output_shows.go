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

// WriteSharkResults outputs the shark-jump verdicts, dispatching based on the
// output format configured.
func WriteSharkResults(sharks []schema.ShowShark, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForSharks(w, sharks, cfg)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, schema.SharkColumns, func(csvWriter *csv.Writer) error {
				for _, s := range sharks {
					if err := csvWriter.Write([]string{s.ShowID, formatNullableSeason(s.SharkJumpSeason)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSharkTable(sharks, cfg, duration, w)
		}, "Wrote table")
	}
}

// WriteDurabilityResults outputs the durability index, dispatching based on
// the output format configured.
func WriteDurabilityResults(durability []schema.ShowDurability, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForDurability(w, durability, cfg)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, schema.DurabilityColumns, func(csvWriter *csv.Writer) error {
				for _, d := range durability {
					if err := csvWriter.Write([]string{d.ShowID, strconv.Itoa(d.DurabilityIndex)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDurabilityTable(durability, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeSharkTable generates and writes the human-readable shark table.
func writeSharkTable(sharks []schema.ShowShark, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Show", "Shark-Jump Season", "Verdict"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	titleWidth := getMaxTableTitleWidth(cfg)
	triggered := 0
	var data [][]string
	for _, s := range sharks {
		verdict := contract.GetColorSharkVerdict(s.SharkJumpSeason, cfg.UseColors)
		season := "-"
		if s.SharkJumpSeason != nil {
			season = strconv.Itoa(*s.SharkJumpSeason)
			triggered++
		}
		data = append(data, []string{
			contract.TruncateTitle(schema.TitleOrID(cfg.Shows, s.ShowID), titleWidth),
			season,
			verdict,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "%d of %d shows triggered the shark-jump rule\n", triggered, len(sharks)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeDurabilityTable generates and writes the human-readable durability table.
func writeDurabilityTable(durability []schema.ShowDurability, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Show", "Durability Index"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	titleWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	for _, d := range durability {
		data = append(data, []string{
			contract.TruncateTitle(schema.TitleOrID(cfg.Shows, d.ShowID), titleWidth),
			strconv.Itoa(d.DurabilityIndex),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeJSONResultsForSharks writes the shark verdicts in JSON format with the
// display title added.
func writeJSONResultsForSharks(w io.Writer, sharks []schema.ShowShark, cfg *contract.Config) error {
	type JSONShowShark struct {
		Title string `json:"title"`
		schema.ShowShark
	}

	output := make([]JSONShowShark, len(sharks))
	for i, s := range sharks {
		output[i] = JSONShowShark{
			Title:     schema.TitleOrID(cfg.Shows, s.ShowID),
			ShowShark: s,
		}
	}
	return writeJSON(w, output)
}

// writeJSONResultsForDurability writes the durability rows in JSON format with
// the display title added.
func writeJSONResultsForDurability(w io.Writer, durability []schema.ShowDurability, cfg *contract.Config) error {
	type JSONShowDurability struct {
		Title string `json:"title"`
		schema.ShowDurability
	}

	output := make([]JSONShowDurability, len(durability))
	for i, d := range durability {
		output[i] = JSONShowDurability{
			Title:          schema.TitleOrID(cfg.Shows, d.ShowID),
			ShowDurability: d,
		}
	}
	return writeJSON(w, output)
}
