package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/internal/parquet"
	"github.com/huangsam/hotelpulse/schema"
)

// PrintTotals outputs the totals of a section, dispatching based on the output
// format configured. A positive limit keeps only the top and bottom entries.
func PrintTotals(view schema.SectionView, limit int, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeTotalsParquet(view, limit, cfg)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteTotals(w, view, limit, cfg)
	}, "Wrote totals")
}

// WriteTotals writes the ranked series totals of a section to w.
func WriteTotals(w io.Writer, view schema.SectionView, limit int, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	ranked := limitRanking(schema.RankSeries(view.Totals), limit)

	type jsonTotals struct {
		SectionID string                `json:"section_id"`
		Title     string                `json:"title"`
		Periods   []string              `json:"periods"`
		PerPeriod []float64             `json:"per_period"`
		Ranked    []schema.RankedSeries `json:"ranked"`
		Variation schema.Variation      `json:"variation"`
	}

	data := tabular{
		title:     view.Title + " - Totals",
		headers:   []string{"Rank", "Series", "Total", "Share"},
		csvHeader: []string{"section_id", "rank", "series", "total", "share"},
		json: jsonTotals{
			SectionID: view.SectionID,
			Title:     view.Title,
			Periods:   view.Totals.Periods,
			PerPeriod: view.Totals.PerPeriod,
			Ranked:    ranked,
			Variation: view.Totals.Variation,
		},
	}
	for _, r := range ranked {
		data.rows = append(data.rows, []string{
			strconv.Itoa(r.Rank),
			r.Name,
			schema.FormatUSD(r.Total),
			fmtFloat(r.Share) + "%",
		})
		data.csvRows = append(data.csvRows, []string{
			view.SectionID,
			strconv.Itoa(r.Rank),
			r.Name,
			fmt.Sprintf("%.2f", r.Total),
			fmtFloat(r.Share),
		})
	}

	periods := make([]string, 0, len(view.Totals.Periods))
	for i, p := range view.Totals.Periods {
		var v float64
		if i < len(view.Totals.PerPeriod) {
			v = view.Totals.PerPeriod[i]
		}
		periods = append(periods, p+" "+schema.FormatUSD(v))
	}
	variation := view.Totals.Variation
	data.footer = []string{
		"Per period: " + strings.Join(periods, ", "),
		fmt.Sprintf("Grand total: %s, variation: %s", schema.FormatUSD(view.Totals.GrandTotal()),
			colorDelta(cfg, variation.Abs, schema.FormatDelta(variation.Abs, variation.Pct))),
	}
	return writeTabular(w, data, cfg)
}

// limitRanking keeps the top and bottom limit entries of a ranking.
func limitRanking(ranked []schema.RankedSeries, limit int) []schema.RankedSeries {
	if limit <= 0 {
		return ranked
	}
	top, bottom := schema.TopBottom(ranked, limit)
	out := make([]schema.RankedSeries, 0, len(top)+len(bottom))
	out = append(out, top...)
	return append(out, bottom...)
}

// writeTotalsParquet handles the parquet branch, which needs a file path.
func writeTotalsParquet(view schema.SectionView, limit int, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	ranked := limitRanking(schema.RankSeries(view.Totals), limit)
	records := parquet.ConvertTotalsRecords(view.SectionID, ranked)
	if err := parquet.WriteTotalsParquet(records, cfg.OutputFile); err != nil {
		return fmt.Errorf("error writing parquet output: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	return nil
}
