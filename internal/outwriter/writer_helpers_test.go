package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{name: "precision 2", precision: 2, value: 3.14159, expected: "3.14"},
		{name: "precision 1", precision: 1, value: 3.14159, expected: "3.1"},
		{name: "negative value", precision: 2, value: -42.567, expected: "-42.57"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]any{"name": "test", "value": 42}))
	assert.Equal(t, "{\n  \"name\": \"test\",\n  \"value\": 42\n}\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:     "simple csv",
			header:   []string{"series", "total"},
			rows:     [][]string{{"TTOO", "300.00"}, {"OTAs", "70.00"}},
			expected: "series,total\nTTOO,300.00\nOTAs,70.00\n",
		},
		{
			name:     "empty rows",
			header:   []string{"col1", "col2"},
			rows:     [][]string{},
			expected: "col1,col2\n",
		},
		{
			name:     "values with commas",
			header:   []string{"text"},
			rows:     [][]string{{"$1,500.00"}},
			expected: "text\n\"$1,500.00\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCSVWithHeader(&buf, tt.header, func(w *csv.Writer) error {
				for _, row := range tt.rows {
					if err := w.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "out.json")
	err := writeWithFile(tmpFile, func(w io.Writer) error {
		return writeJSON(w, map[string]any{"count": 3})
	}, "Wrote JSON")
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal(content, &result))
	assert.Equal(t, float64(3), result["count"])

	err = writeWithFile(tmpFile, func(io.Writer) error { return assert.AnError }, "Wrote JSON")
	assert.Equal(t, assert.AnError, err)

	err = writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error { return nil }, "Wrote JSON")
	assert.Error(t, err)
}

func TestWriteTabular(t *testing.T) {
	data := tabular{
		title:     "Totals",
		headers:   []string{"Series", "Total"},
		rows:      [][]string{{"A|B", "$60.00"}},
		csvHeader: []string{"series", "total"},
		csvRows:   [][]string{{"A|B", "60.00"}},
		json:      map[string]int{"rows": 1},
		footer:    []string{"Showing 1 series"},
	}

	tests := []struct {
		output   schema.OutputMode
		contains []string
	}{
		{schema.TextOut, []string{"A|B", "$60.00", "Showing 1 series"}},
		{schema.CSVOut, []string{"series,total\nA|B,60.00\n"}},
		{schema.JSONOut, []string{`"rows": 1`}},
		{schema.MarkdownOut, []string{"## Totals", "| Series | Total |", "| --- | --- |", `| A\|B | $60.00 |`, "Showing 1 series"}},
		{schema.HTMLOut, []string{"<h2>Totals</h2>", "<table>", "<td>A|B</td>", "<p>Showing 1 series</p>"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeTabular(&buf, data, &contract.Config{Output: tt.output, Precision: 2}))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}

	var buf bytes.Buffer
	err := writeTabular(&buf, data, &contract.Config{Output: schema.ParquetOut})
	assert.ErrorContains(t, err, "parquet output is only supported")
}

func TestMarkdownTableNoFooter(t *testing.T) {
	md := markdownTable(tabular{headers: []string{"A"}, rows: [][]string{{"1"}}})
	assert.Equal(t, "| A |\n| --- |\n| 1 |\n", md)
	assert.False(t, strings.HasPrefix(md, "##"))
}

func TestGetMaxTextWidth(t *testing.T) {
	assert.Equal(t, 40, getMaxTextWidth(&contract.Config{Width: 100}, 60))
	assert.Equal(t, 12, getMaxTextWidth(&contract.Config{Width: 50}, 60), "minimum width")
	assert.Equal(t, 60, getMaxTextWidth(&contract.Config{Width: 300}, 60), "maximum width")
}

func TestColorDelta(t *testing.T) {
	plain := &contract.Config{Output: schema.TextOut}
	assert.Equal(t, "↑ +$1.00 (1.0%)", colorDelta(plain, 1, "↑ +$1.00 (1.0%)"))

	csvOut := &contract.Config{Output: schema.CSVOut, UseColors: true}
	assert.Equal(t, "x", colorDelta(csvOut, -1, "x"), "colors only apply to tables")
}
