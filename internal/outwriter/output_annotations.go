package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
)

// PrintAnnotations outputs the reconciled labels of a section.
func PrintAnnotations(view schema.SectionView, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteAnnotations(w, view, cfg)
	}, "Wrote annotations")
}

// WriteAnnotations writes the label list of a section to w.
func WriteAnnotations(w io.Writer, view schema.SectionView, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	type jsonAnnotations struct {
		ChartID     string              `json:"chart_id"`
		Overridden  int                 `json:"overridden"`
		Annotations []schema.Annotation `json:"annotations"`
	}

	data := tabular{
		title:     view.Title + " - Labels",
		headers:   []string{"Index", "Period", "Role", "X", "Y", "Text", "Color"},
		csvHeader: []string{"chart_id", "index", "period", "role", "x", "y", "text", "font_size", "color"},
		json:      jsonAnnotations{ChartID: view.ChartID, Overridden: view.Overridden, Annotations: view.Annotations},
	}
	for _, a := range view.Annotations {
		data.rows = append(data.rows, []string{
			fmt.Sprintf(intFmt, a.Index),
			a.Period,
			string(a.Role),
			fmtFloat(a.X),
			fmtFloat(a.Y),
			a.Text,
			a.Style.Color,
		})
		data.csvRows = append(data.csvRows, []string{
			view.ChartID,
			strconv.Itoa(a.Index),
			a.Period,
			string(a.Role),
			strconv.FormatFloat(a.X, 'f', -1, 64),
			strconv.FormatFloat(a.Y, 'f', -1, 64),
			a.Text,
			strconv.FormatFloat(a.Style.FontSize, 'f', -1, 64),
			a.Style.Color,
		})
	}
	data.footer = []string{
		fmt.Sprintf("Showing %d labels on %s (%d at saved positions)", len(view.Annotations), view.ChartID, view.Overridden),
	}
	return writeTabular(w, data, cfg)
}
