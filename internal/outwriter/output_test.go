package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textCfg() *contract.Config {
	return &contract.Config{Output: schema.TextOut, Precision: 2, Width: 120}
}

func withOutput(mode schema.OutputMode) *contract.Config {
	cfg := textCfg()
	cfg.Output = mode
	return cfg
}

func sampleView() schema.SectionView {
	return schema.SectionView{
		SectionID: "general",
		ChartID:   "chart-general",
		Title:     "General",
		Totals: schema.Totals{
			Periods:   []string{"W1", "W2", "W3"},
			PerPeriod: []float64{15, 20, 35},
			PerSeries: []schema.SeriesTotal{{Name: "A", Total: 60}, {Name: "B", Total: 10}},
			Ranking:   []string{"A", "B"},
			Variation: schema.Variation{Abs: 20, Pct: 133.333},
		},
		Annotations: []schema.Annotation{
			{Index: 0, Period: "W1", X: 0, Y: 15.45, Text: "$15.00", Role: schema.TotalRole, Style: schema.AnnotationStyle{FontSize: 14, Color: "#003366"}},
			{Index: 1, Period: "W2", X: 1.5, Y: 30, Text: "↑ +$5.00 (33.3%)", Role: schema.VariationRole, Style: schema.AnnotationStyle{FontSize: 13, Color: "#1FA055"}},
		},
		Overridden:     1,
		Interpretation: "**Production**\n\n- First period: $15.00",
		ChartPath:      "charts/chart-general.svg",
	}
}

func TestWriteSections(t *testing.T) {
	sections := []schema.Section{
		{ID: "general", Title: "General", Kind: schema.StackedKind, Model: "General", Periods: []string{"W1", "W2"},
			Series: schema.Dataset{{Name: "A"}, {Name: "B"}}},
		{ID: "web", Title: "Web", Kind: schema.TripletKind, Periods: []string{"W1"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSections(&buf, sections, textCfg()))
	out := buf.String()
	assert.Contains(t, out, "W1..W2 (2)")
	assert.Contains(t, out, "triplet")
	assert.Contains(t, out, "Showing 2 sections")

	buf.Reset()
	require.NoError(t, WriteSections(&buf, sections, withOutput(schema.CSVOut)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,chart_id,title,kind,periods,series,model", lines[0])
	assert.Equal(t, "general,chart-general,General,stacked,W1|W2,A|B,General", lines[1])
	assert.Equal(t, "web,chart-web,Web,triplet,W1,Gross|Net|Cancellation,", lines[2])

	buf.Reset()
	require.NoError(t, WriteSections(&buf, sections, withOutput(schema.JSONOut)))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "chart-web", decoded[1]["chart_id"])
	assert.NotContains(t, decoded[1], "model")
}

func TestPeriodSpan(t *testing.T) {
	assert.Equal(t, "-", periodSpan(nil))
	assert.Equal(t, "W1", periodSpan([]string{"W1"}))
	assert.Equal(t, "W42..W47 (6)", periodSpan([]string{"W42", "W43", "W44", "W45", "W46", "W47"}))
}

func TestWriteTotals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTotals(&buf, sampleView(), 0, textCfg()))
	out := buf.String()
	assert.Contains(t, out, "$60.00")
	assert.Contains(t, out, "85.71%")
	assert.Contains(t, out, "Per period: W1 $15.00, W2 $20.00, W3 $35.00")
	assert.Contains(t, out, "Grand total: $70.00, variation: ↑ +$20.00 (133.3%)")

	buf.Reset()
	require.NoError(t, WriteTotals(&buf, sampleView(), 0, withOutput(schema.CSVOut)))
	assert.Equal(t, "section_id,rank,series,total,share\ngeneral,1,A,60.00,85.71\ngeneral,2,B,10.00,14.29\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTotals(&buf, sampleView(), 0, withOutput(schema.JSONOut)))
	var decoded struct {
		Ranked []schema.RankedSeries `json:"ranked"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Ranked, 2)
	assert.Equal(t, 1, decoded.Ranked[0].Rank)
	assert.Equal(t, "A", decoded.Ranked[0].Name)
}

func TestLimitRanking(t *testing.T) {
	ranked := []schema.RankedSeries{
		{Rank: 1, SeriesTotal: schema.SeriesTotal{Name: "US"}},
		{Rank: 2, SeriesTotal: schema.SeriesTotal{Name: "CA"}},
		{Rank: 3, SeriesTotal: schema.SeriesTotal{Name: "MX"}},
		{Rank: 4, SeriesTotal: schema.SeriesTotal{Name: "UK"}},
		{Rank: 5, SeriesTotal: schema.SeriesTotal{Name: "DE"}},
	}
	assert.Equal(t, ranked, limitRanking(ranked, 0))

	names := func(rs []schema.RankedSeries) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.Name)
		}
		return out
	}
	assert.Equal(t, []string{"US", "CA", "UK", "DE"}, names(limitRanking(ranked, 2)))
	assert.Equal(t, []string{"US", "CA", "MX", "UK", "DE"}, names(limitRanking(ranked, 3)), "no repeats")
}

func TestPrintTotalsParquet(t *testing.T) {
	cfg := withOutput(schema.ParquetOut)
	assert.ErrorContains(t, PrintTotals(sampleView(), 0, cfg), "requires --output-file")

	cfg.OutputFile = filepath.Join(t.TempDir(), "totals.parquet")
	require.NoError(t, PrintTotals(sampleView(), 0, cfg))
	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteAnnotations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnnotations(&buf, sampleView(), textCfg()))
	out := buf.String()
	assert.Contains(t, out, "variation")
	assert.Contains(t, out, "15.45")
	assert.Contains(t, out, "Showing 2 labels on chart-general (1 at saved positions)")

	buf.Reset()
	require.NoError(t, WriteAnnotations(&buf, sampleView(), withOutput(schema.CSVOut)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "chart-general,1,W2,variation,1.5,30,↑ +$5.00 (33.3%),13,#1FA055", lines[2])

	buf.Reset()
	require.NoError(t, WriteAnnotations(&buf, sampleView(), withOutput(schema.JSONOut)))
	assert.Contains(t, buf.String(), `"overridden": 1`)
}

func TestWriteInterpretation(t *testing.T) {
	tests := []struct {
		output   schema.OutputMode
		contains string
	}{
		{schema.TextOut, "# General\n\n**Production**"},
		{schema.MarkdownOut, "# General\n\n**Production**"},
		{schema.HTMLOut, "<strong>Production</strong>"},
		{schema.JSONOut, `"interpretation": "**Production**`},
		{schema.CSVOut, "section_id,title,interpretation\ngeneral,General,"},
	}
	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteInterpretation(&buf, sampleView(), withOutput(tt.output)))
			assert.Contains(t, buf.String(), tt.contains)
		})
	}

	var buf bytes.Buffer
	assert.Error(t, WriteInterpretation(&buf, sampleView(), withOutput(schema.ParquetOut)))
}

func TestWriteAdKPIs(t *testing.T) {
	kpis := []schema.AdKPI{
		{Period: "W42", Spend: 100, Clicks: 200, Leads: 10, Revenue: 500, CTR: 5, ROAS: 5},
		{Period: "W43", Spend: 0, Clicks: 0, Leads: 0, Revenue: 0},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteAdKPIs(&buf, kpis, textCfg()))
	out := buf.String()
	assert.Contains(t, out, "5.00%")
	assert.Contains(t, out, "5.00x")
	assert.Contains(t, out, "Total spend $100.00, revenue $500.00, CTR 5.00%, ROAS 5.00x")

	buf.Reset()
	require.NoError(t, WriteAdKPIs(&buf, kpis, withOutput(schema.CSVOut)))
	assert.Contains(t, buf.String(), "W43,0.00,0,0,0.00,0.00,0.00\n")
}

func TestWriteFunnel(t *testing.T) {
	week := schema.FunnelWeek{Period: "W45", Stages: []schema.FunnelStage{
		{Name: "Site visits", Count: 1000},
		{Name: "Searches", Count: 400},
		{Name: "Bookings", Count: 20},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteFunnel(&buf, week, textCfg()))
	out := buf.String()
	assert.Contains(t, out, "40.00%")
	assert.Contains(t, out, "End-to-end conversion: 2.00%")

	buf.Reset()
	require.NoError(t, WriteFunnel(&buf, week, withOutput(schema.CSVOut)))
	assert.Equal(t, "period,stage,count,conversion\nW45,Site visits,1000,100.00\nW45,Searches,400,40.00\nW45,Bookings,20,5.00\n", buf.String())
}

func TestWriteOverrides(t *testing.T) {
	rows := []schema.ChartOverride{
		{ChartID: "chart-general", Index: 2, X: 7.5, Y: 120},
		{ChartID: "chart-general", Index: 3, X: 1, Y: 2},
		{ChartID: "chart-web", Index: 0, X: 0.25, Y: -10},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteOverrides(&buf, rows, textCfg()))
	assert.Contains(t, buf.String(), "Showing 3 overrides across 2 charts")

	buf.Reset()
	require.NoError(t, WriteOverrides(&buf, rows, withOutput(schema.CSVOut)))
	assert.Contains(t, buf.String(), "chart-general,2,7.5,120\n")

	buf.Reset()
	require.NoError(t, WriteOverrides(&buf, nil, withOutput(schema.JSONOut)))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintOverridesParquet(t *testing.T) {
	cfg := withOutput(schema.ParquetOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "overrides.parquet")
	require.NoError(t, PrintOverrides([]schema.ChartOverride{{ChartID: "chart-x1", Index: 2, X: 7.5, Y: 120}}, cfg))
	_, err := os.Stat(cfg.OutputFile)
	assert.NoError(t, err)
}

func TestWriteDragResult(t *testing.T) {
	pos := schema.Position{X: 7.5, Y: 120}

	var buf bytes.Buffer
	require.NoError(t, WriteDragResult(&buf, "chart-x1", 2, pos, textCfg()))
	assert.Equal(t, "📍 Label 2 on chart-x1 saved at (7.50, 120.00)\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteDragResult(&buf, "chart-x1", 2, pos, withOutput(schema.JSONOut)))
	var decoded schema.ChartOverride
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, schema.ChartOverride{ChartID: "chart-x1", Index: 2, X: 7.5, Y: 120}, decoded)

	buf.Reset()
	require.NoError(t, WriteDragResult(&buf, "chart-x1", 2, pos, withOutput(schema.CSVOut)))
	assert.Equal(t, "chart_id,index,x,y\nchart-x1,2,7.5,120\n", buf.String())
}

func TestWriteRenderSummary(t *testing.T) {
	views := []schema.SectionView{sampleView()}
	views = append(views, schema.SectionView{SectionID: "web", ChartID: "chart-web"})

	var buf bytes.Buffer
	require.NoError(t, WriteRenderSummary(&buf, views, textCfg(), 1500*time.Microsecond))
	out := buf.String()
	assert.Contains(t, out, "charts/chart-general.svg")
	assert.Contains(t, out, "$70.00")
	assert.Contains(t, out, "Rendered 2 charts in 2ms")

	buf.Reset()
	require.NoError(t, WriteRenderSummary(&buf, views, withOutput(schema.CSVOut), 0))
	assert.Contains(t, buf.String(), "general,chart-general,2,1,70.00,charts/chart-general.svg\n")
	assert.Contains(t, buf.String(), "web,chart-web,0,0,0.00,\n")
}
