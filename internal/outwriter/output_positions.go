package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/internal/parquet"
	"github.com/huangsam/hotelpulse/schema"
)

// PrintOverrides outputs every saved label position.
func PrintOverrides(rows []schema.ChartOverride, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteOverridesParquet(parquet.ConvertOverrideRecords(rows, time.Now()), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteOverrides(w, rows, cfg)
	}, "Wrote overrides")
}

// WriteOverrides writes the saved positions as one row per chart and index.
func WriteOverrides(w io.Writer, rows []schema.ChartOverride, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	if rows == nil {
		rows = []schema.ChartOverride{}
	}
	data := tabular{
		title:     "Saved positions",
		headers:   []string{"Chart", "Index", "X", "Y"},
		csvHeader: []string{"chart_id", "index", "x", "y"},
		json:      rows,
	}
	charts := map[string]struct{}{}
	for _, r := range rows {
		charts[r.ChartID] = struct{}{}
		data.rows = append(data.rows, []string{r.ChartID, fmt.Sprintf(intFmt, r.Index), fmtFloat(r.X), fmtFloat(r.Y)})
		data.csvRows = append(data.csvRows, []string{
			r.ChartID,
			strconv.Itoa(r.Index),
			strconv.FormatFloat(r.X, 'f', -1, 64),
			strconv.FormatFloat(r.Y, 'f', -1, 64),
		})
	}
	data.footer = []string{fmt.Sprintf("Showing %d overrides across %d charts", len(rows), len(charts))}
	return writeTabular(w, data, cfg)
}

// PrintDragResult reports where a dragged label was saved.
func PrintDragResult(chartID string, index int, pos schema.Position, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteDragResult(w, chartID, index, pos, cfg)
	}, "Wrote drag result")
}

// WriteDragResult writes the saved override of one drag to w.
func WriteDragResult(w io.Writer, chartID string, index int, pos schema.Position, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, schema.ChartOverride{ChartID: chartID, Index: index, X: pos.X, Y: pos.Y})
	}
	if cfg.Output != schema.TextOut && cfg.Output != "" {
		return WriteOverrides(w, []schema.ChartOverride{{ChartID: chartID, Index: index, X: pos.X, Y: pos.Y}}, cfg)
	}
	fmtFloat, _ := createFormatters(cfg.Precision)
	_, err := fmt.Fprintf(w, "📍 Label %d on %s saved at (%s, %s)\n", index, chartID, fmtFloat(pos.X), fmtFloat(pos.Y))
	return err
}
