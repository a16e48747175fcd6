package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
)

// PrintRenderSummary outputs what was drawn for each activated section.
func PrintRenderSummary(views []schema.SectionView, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRenderSummary(w, views, cfg, duration)
	}, "Wrote render summary")
}

// WriteRenderSummary writes one row per rendered chart.
func WriteRenderSummary(w io.Writer, views []schema.SectionView, cfg *contract.Config, duration time.Duration) error {
	type jsonRender struct {
		SectionID  string  `json:"section_id"`
		ChartID    string  `json:"chart_id"`
		Labels     int     `json:"labels"`
		Overridden int     `json:"overridden"`
		GrandTotal float64 `json:"grand_total"`
		ChartPath  string  `json:"chart_path,omitempty"`
	}

	pathWidth := getMaxTextWidth(cfg, 60)
	data := tabular{
		title:     "Rendered charts",
		headers:   []string{"Section", "Chart", "Labels", "Moved", "Total", "File"},
		csvHeader: []string{"section_id", "chart_id", "labels", "overridden", "grand_total", "chart_path"},
	}
	out := make([]jsonRender, 0, len(views))
	for _, v := range views {
		grand := v.Totals.GrandTotal()
		path := v.ChartPath
		if path == "" {
			path = "-"
		}
		data.rows = append(data.rows, []string{
			v.SectionID,
			v.ChartID,
			strconv.Itoa(len(v.Annotations)),
			strconv.Itoa(v.Overridden),
			schema.FormatUSD(grand),
			contract.TruncateText(path, pathWidth),
		})
		data.csvRows = append(data.csvRows, []string{
			v.SectionID,
			v.ChartID,
			strconv.Itoa(len(v.Annotations)),
			strconv.Itoa(v.Overridden),
			fmt.Sprintf("%.2f", grand),
			v.ChartPath,
		})
		out = append(out, jsonRender{
			SectionID:  v.SectionID,
			ChartID:    v.ChartID,
			Labels:     len(v.Annotations),
			Overridden: v.Overridden,
			GrandTotal: grand,
			ChartPath:  v.ChartPath,
		})
	}
	data.json = out
	data.footer = []string{fmt.Sprintf("Rendered %d charts in %v", len(views), duration.Round(time.Millisecond))}
	return writeTabular(w, data, cfg)
}
