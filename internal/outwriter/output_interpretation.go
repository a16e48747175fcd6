package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/hotelpulse/core/theory"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
)

// PrintInterpretation outputs the marketing reading of a section.
func PrintInterpretation(view schema.SectionView, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteInterpretation(w, view, cfg)
	}, "Wrote interpretation")
}

// WriteInterpretation writes the interpretation of a section to w. Text and
// markdown output keep the markdown source; html output converts it.
func WriteInterpretation(w io.Writer, view schema.SectionView, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		html, err := theory.RenderHTML(view.Interpretation)
		if err != nil {
			return err
		}
		return writeJSON(w, struct {
			SectionID      string `json:"section_id"`
			Title          string `json:"title"`
			Interpretation string `json:"interpretation"`
			HTML           string `json:"html"`
		}{view.SectionID, view.Title, view.Interpretation, html})
	case schema.CSVOut:
		return writeTabular(w, tabular{
			csvHeader: []string{"section_id", "title", "interpretation"},
			csvRows:   [][]string{{view.SectionID, view.Title, view.Interpretation}},
		}, cfg)
	case schema.HTMLOut:
		html, err := theory.RenderHTML(fmt.Sprintf("# %s\n\n%s\n", view.Title, view.Interpretation))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	case schema.ParquetOut:
		return writeTabular(w, tabular{}, cfg)
	default:
		_, err := fmt.Fprintf(w, "# %s\n\n%s\n", view.Title, view.Interpretation)
		return err
	}
}
