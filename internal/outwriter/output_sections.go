package outwriter

import (
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
)

// PrintSections lists the dashboard sections using the configured output format.
func PrintSections(sections []schema.Section, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSections(w, sections, cfg)
	}, "Wrote sections")
}

// WriteSections writes the section list to w.
func WriteSections(w io.Writer, sections []schema.Section, cfg *contract.Config) error {
	type jsonSection struct {
		ID      string             `json:"id"`
		ChartID string             `json:"chart_id"`
		Title   string             `json:"title"`
		Kind    schema.SectionKind `json:"kind"`
		Model   string             `json:"model,omitempty"`
		Periods []string           `json:"periods"`
		Series  []string           `json:"series"`
	}

	textWidth := getMaxTextWidth(cfg, 50)
	data := tabular{
		title:     "Sections",
		headers:   []string{"ID", "Title", "Kind", "Periods", "Series", "Model"},
		csvHeader: []string{"id", "chart_id", "title", "kind", "periods", "series", "model"},
	}
	out := make([]jsonSection, 0, len(sections))
	for _, sec := range sections {
		names := seriesNames(sec)
		data.rows = append(data.rows, []string{
			sec.ID,
			contract.TruncateText(sec.Title, textWidth),
			string(sec.Kind),
			periodSpan(sec.Periods),
			strconv.Itoa(len(names)),
			sec.Model,
		})
		data.csvRows = append(data.csvRows, []string{
			sec.ID,
			sec.ChartID(),
			sec.Title,
			string(sec.Kind),
			strings.Join(sec.Periods, "|"),
			strings.Join(names, "|"),
			sec.Model,
		})
		out = append(out, jsonSection{
			ID:      sec.ID,
			ChartID: sec.ChartID(),
			Title:   sec.Title,
			Kind:    sec.Kind,
			Model:   sec.Model,
			Periods: sec.Periods,
			Series:  names,
		})
	}
	data.json = out
	data.footer = []string{"Showing " + strconv.Itoa(len(sections)) + " sections"}
	return writeTabular(w, data, cfg)
}

func seriesNames(sec schema.Section) []string {
	if sec.Kind == schema.TripletKind {
		return []string{"Gross", "Net", "Cancellation"}
	}
	return sec.Series.Names()
}

// periodSpan shows a period sequence as "first..last (n)".
func periodSpan(periods []string) string {
	switch len(periods) {
	case 0:
		return "-"
	case 1:
		return periods[0]
	}
	return periods[0] + ".." + periods[len(periods)-1] + " (" + strconv.Itoa(len(periods)) + ")"
}
