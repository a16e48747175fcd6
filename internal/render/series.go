package render

import (
	"strings"

	"github.com/huangsam/hotelpulse/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Bars take this share of their category slot.
const barFraction = 0.7

// Fallback colors.
const (
	fallbackColor = "#888888"
	trendColor    = "#444444"
)

// geometry is the plot box and ranges of the last drawing.
type geometry struct {
	xMin, xMax float64
	yMin, yMax float64
	box        chart.Box
	captured   bool
}

func (g *geometry) setRanges(xMin, xMax, yMin, yMax float64) {
	g.xMin, g.xMax, g.yMin, g.yMax = xMin, xMax, yMin, yMax
	g.captured = false
}

func (g *geometry) capture(box chart.Box, xr, yr chart.Range) {
	g.box = box
	g.xMin, g.xMax = xr.GetMin(), xr.GetMax()
	g.yMin, g.yMax = yr.GetMin(), yr.GetMax()
	g.captured = true
}

func (g *geometry) valid() bool {
	return g != nil && g.captured && g.box.Width() > 0 && g.box.Height() > 0
}

func (g *geometry) axes() (x, y schema.AxisQuery, ok bool) {
	x = schema.AxisQuery{RangeMin: g.xMin, RangeMax: g.xMax, PixelSize: float64(g.box.Width())}
	y = schema.AxisQuery{RangeMin: g.yMin, RangeMax: g.yMax, PixelSize: float64(g.box.Height())}
	return x, y, true
}

func (g *geometry) invert(px, py float64) (x, y float64, ok bool) {
	w, h := float64(g.box.Width()), float64(g.box.Height())
	x = g.xMin + (g.xMax-g.xMin)*(px/w)
	y = g.yMin + (g.yMax-g.yMin)*(1-py/h)
	return x, y, true
}

// probe draws nothing. It records the plot box go-chart hands to every series.
type probe struct {
	geom *geometry
}

func (p probe) GetName() string           { return "" }
func (p probe) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (p probe) GetStyle() chart.Style     { return chart.Style{} }
func (p probe) Validate() error           { return nil }

func (p probe) Render(_ chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	p.geom.capture(canvasBox, xrange, yrange)
}

// stackedBars draws one bar per period with positives stacked up from zero
// and negatives stacked down, in series order.
type stackedBars struct {
	series  schema.Dataset
	colors  map[string]string
	periods int
}

func (s stackedBars) GetName() string           { return "stacked" }
func (s stackedBars) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s stackedBars) GetStyle() chart.Style     { return chart.Style{} }
func (s stackedBars) Validate() error           { return nil }

func (s stackedBars) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	if s.periods == 0 {
		return
	}
	half := int(float64(canvasBox.Width()) / float64(s.periods) * barFraction / 2)
	for i := range s.periods {
		cx := canvasBox.Left + xrange.Translate(float64(i))
		var up, down float64
		for _, ser := range s.series {
			v := ser.At(i)
			if v == 0 {
				continue
			}
			var lo, hi float64
			if v > 0 {
				lo, hi = up, up+v
				up = hi
			} else {
				lo, hi = down+v, down
				down = lo
			}
			c := parseColor(colorFor(s.colors, ser))
			chart.Draw.Box(r, chart.Box{
				Top:    canvasBox.Bottom - yrange.Translate(hi),
				Left:   cx - half,
				Right:  cx + half,
				Bottom: canvasBox.Bottom - yrange.Translate(lo),
			}, chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1})
		}
	}
}

// lineSeries draws each series as a line over the period index.
func lineSeries(series schema.Dataset, colors map[string]string) []chart.Series {
	out := make([]chart.Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		c := parseColor(colorFor(colors, s))
		out = append(out, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: indexes(len(s.Values)),
			YValues: s.Values,
			Style:   chart.Style{StrokeColor: c, StrokeWidth: 3, DotColor: c, DotWidth: 4},
		})
	}
	return out
}

func trendSeries(values []float64, colors map[string]string) chart.Series {
	c := parseColor(colorFor(colors, schema.Series{Name: "Trend", Color: trendColor}))
	return chart.ContinuousSeries{
		Name:    "Trend",
		XValues: indexes(len(values)),
		YValues: values,
		Style:   chart.Style{StrokeColor: c, StrokeWidth: 2, StrokeDashArray: []float64{6, 4}},
	}
}

func labelSeries(annotations []schema.Annotation) chart.Series {
	values := make([]chart.Value2, 0, len(annotations))
	for _, a := range annotations {
		c := parseColor(a.Style.Color)
		values = append(values, chart.Value2{
			XValue: a.X,
			YValue: a.Y,
			Label:  a.Text,
			Style: chart.Style{
				FontSize:    a.Style.FontSize,
				FontColor:   c,
				StrokeColor: c,
				FillColor:   drawing.ColorWhite,
			},
		})
	}
	return chart.AnnotationSeries{Name: "Labels", Annotations: values}
}

func colorFor(colors map[string]string, s schema.Series) string {
	if c, ok := colors[s.Name]; ok && c != "" {
		return c
	}
	if s.Color != "" {
		return s.Color
	}
	return fallbackColor
}

// parseColor reads "#rrggbb" or "#rgb". Anything else is the fallback grey.
func parseColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 3 && len(hex) != 6 {
		hex = strings.TrimPrefix(fallbackColor, "#")
	}
	return drawing.ColorFromHex(hex)
}

func indexes(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
