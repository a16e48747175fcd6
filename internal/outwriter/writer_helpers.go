// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/hotelpulse/core/theory"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// tabular is one result set in every format a printer supports.
type tabular struct {
	headers   []string   // table and markdown headers
	rows      [][]string // table and markdown cells
	csvHeader []string
	csvRows   [][]string
	json      any
	footer    []string // lines printed under the table
	title     string   // markdown heading
}

// writeTabular dispatches a result set on the configured output format.
func writeTabular(w io.Writer, data tabular, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, data.json)
	case schema.CSVOut:
		return writeCSVWithHeader(w, data.csvHeader, func(cw *csv.Writer) error {
			for _, rec := range data.csvRows {
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	case schema.MarkdownOut:
		_, err := io.WriteString(w, markdownTable(data))
		return err
	case schema.HTMLOut:
		html, err := theory.RenderHTML(markdownTable(data))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by totals and positions export")
	default:
		return writeTable(w, data.headers, data.rows, data.footer)
	}
}

// writeTable renders a right-aligned table followed by the footer lines.
func writeTable(w io.Writer, headers []string, rows [][]string, footer []string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	for _, line := range footer {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// markdownTable renders the result set as a GitHub-style pipe table.
func markdownTable(data tabular) string {
	var sb strings.Builder
	if data.title != "" {
		fmt.Fprintf(&sb, "## %s\n\n", data.title)
	}
	sb.WriteString("| " + strings.Join(data.headers, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(data.headers)) + "\n")
	for _, row := range data.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	if len(data.footer) > 0 {
		sb.WriteString("\n")
		for _, line := range data.footer {
			sb.WriteString(line + "\n\n")
		}
	}
	return sb.String()
}
