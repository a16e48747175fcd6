// Package render draws dashboard charts to SVG or PNG files with go-chart.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/huangsam/hotelpulse/core/agg"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 560
)

// Options configures a ChartRenderer.
type Options struct {
	Dir    string             // output directory; empty keeps images in memory
	Format schema.ImageFormat // svg or png
	Width  int
	Height int
	Logger *zap.Logger
}

// chartState is everything needed to redraw one chart.
type chartState struct {
	series      schema.Dataset
	layout      schema.ChartLayout
	annotations []schema.Annotation
	geom        *geometry
	image       []byte
	path        string
}

// ChartRenderer keeps the last drawing of every chart and redraws it whenever
// its series or labels change.
type ChartRenderer struct {
	mu     sync.Mutex
	opts   Options
	charts map[string]*chartState
}

var (
	_ contract.Renderer      = &ChartRenderer{} // Compile-time check
	_ contract.AxisQuerier   = &ChartRenderer{} // Compile-time check
	_ contract.PixelInverter = &ChartRenderer{} // Compile-time check
	_ contract.ChartLocator  = &ChartRenderer{} // Compile-time check
)

// NewChartRenderer creates a renderer with the given options.
func NewChartRenderer(opts Options) *ChartRenderer {
	if opts.Format == "" {
		opts.Format = schema.SVGImage
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &ChartRenderer{opts: opts, charts: make(map[string]*chartState)}
}

// CreateOrUpdateChart draws the series of a chart, replacing any previous drawing.
// Labels already placed on the chart are kept.
func (r *ChartRenderer) CreateOrUpdateChart(targetID string, series schema.Dataset, layout schema.ChartLayout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.charts[targetID]
	if !ok {
		st = &chartState{geom: &geometry{}}
		r.charts[targetID] = st
	}
	st.series = series
	st.layout = layout
	return r.draw(targetID, st)
}

// UpdateAnnotations replaces the labels of a chart and redraws it.
// Unknown targets are ignored.
func (r *ChartRenderer) UpdateAnnotations(targetID string, annotations []schema.Annotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.charts[targetID]
	if !ok {
		r.opts.Logger.Debug("Ignoring labels for unknown chart", zap.String("chart", targetID))
		return nil
	}
	st.annotations = append([]schema.Annotation(nil), annotations...)
	return r.draw(targetID, st)
}

// Axes returns the axis ranges and plot size of the last drawing.
func (r *ChartRenderer) Axes(targetID string) (x, y schema.AxisQuery, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, found := r.charts[targetID]
	if !found || !st.geom.valid() {
		return schema.AxisQuery{}, schema.AxisQuery{}, false
	}
	return st.geom.axes()
}

// PixelToData converts a pixel position relative to the top-left of the plot
// area to data coordinates, using the plot box go-chart actually painted.
func (r *ChartRenderer) PixelToData(targetID string, px, py float64) (x, y float64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, found := r.charts[targetID]
	if !found || !st.geom.valid() {
		return 0, 0, false
	}
	return st.geom.invert(px, py)
}

// ChartPath returns the file the chart was last written to, or "" when the
// chart is unknown or kept in memory.
func (r *ChartRenderer) ChartPath(targetID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.charts[targetID]; ok {
		return st.path
	}
	return ""
}

// Image returns the encoded bytes of the last drawing.
func (r *ChartRenderer) Image(targetID string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.charts[targetID]
	if !ok || st.image == nil {
		return nil, false
	}
	return st.image, true
}

// draw renders the chart and writes it out. Callers hold r.mu.
func (r *ChartRenderer) draw(targetID string, st *chartState) error {
	ch := r.buildChart(st)

	provider := chart.SVG
	if r.opts.Format == schema.PNGImage {
		provider = chart.PNG
	}

	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", targetID, err)
	}
	st.image = buf.Bytes()

	if r.opts.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(r.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	path := filepath.Join(r.opts.Dir, targetID+"."+string(r.opts.Format))
	if err := os.WriteFile(path, st.image, 0o644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	st.path = path
	r.opts.Logger.Debug("Chart written", zap.String("chart", targetID), zap.String("path", path))
	return nil
}

// buildChart assembles the go-chart description of one chart.
func (r *ChartRenderer) buildChart(st *chartState) chart.Chart {
	n := len(st.layout.Periods)
	if n == 0 {
		n = maxLen(st.series)
	}
	xMin, xMax := -0.5, float64(max(n, 1))-0.5
	yMin, yMax := st.layout.YMin, st.layout.YMax
	if yMax <= yMin {
		yMin, yMax = agg.Extent(st.series, st.layout.Kind, nil, nil)
	}
	st.geom.setRanges(xMin, xMax, yMin, yMax)

	series := []chart.Series{probe{geom: st.geom}}
	switch st.layout.Kind {
	case schema.TripletKind:
		series = append(series, lineSeries(st.series, st.layout.Colors)...)
	default:
		series = append(series, stackedBars{series: st.series, colors: st.layout.Colors, periods: n})
	}
	if len(st.layout.TrendLine) > 0 {
		series = append(series, trendSeries(st.layout.TrendLine, st.layout.Colors))
	}
	if len(st.annotations) > 0 {
		series = append(series, labelSeries(st.annotations))
	}

	return chart.Chart{
		Title:  st.layout.Title,
		Width:  r.opts.Width,
		Height: r.opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: periodTicks(st.layout.Periods, xMin, xMax),
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: compactUSD,
		},
		Series: series,
	}
}

// periodTicks labels each category. go-chart fits the x range to the ticks,
// so blank ticks pin the half-slot margins on both ends.
func periodTicks(periods []string, xMin, xMax float64) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(periods)+2)
	ticks = append(ticks, chart.Tick{Value: xMin})
	for i, p := range periods {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p})
	}
	return append(ticks, chart.Tick{Value: xMax})
}

func maxLen(series schema.Dataset) int {
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
	}
	return n
}

// compactUSD formats axis ticks, e.g. "$1.2M" or "$350K".
func compactUSD(v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	switch {
	case f >= 1e6:
		return fmt.Sprintf("%s$%.1fM", sign, f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%s$%.0fK", sign, f/1e3)
	default:
		return fmt.Sprintf("%s$%.0f", sign, f)
	}
}
