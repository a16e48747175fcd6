package drag

import "github.com/huangsam/hotelpulse/schema"

// Point is a pointer position in pixels relative to the top-left of the plot area.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScreenToData converts a plot-relative pixel position to data coordinates.
// Screen y grows downward, so the y axis is inverted. Positions outside the plot
// extrapolate linearly. It reports false when an axis has no pixel size.
func ScreenToData(xAxis, yAxis schema.AxisQuery, p Point) (x, y float64, ok bool) {
	if xAxis.PixelSize <= 0 || yAxis.PixelSize <= 0 {
		return 0, 0, false
	}
	x = xAxis.RangeMin + (xAxis.RangeMax-xAxis.RangeMin)*(p.X/xAxis.PixelSize)
	y = yAxis.RangeMin + (yAxis.RangeMax-yAxis.RangeMin)*(1-p.Y/yAxis.PixelSize)
	return x, y, true
}

// DataToScreen is the inverse of ScreenToData. It reports false for a
// degenerate axis.
func DataToScreen(xAxis, yAxis schema.AxisQuery, x, y float64) (Point, bool) {
	dx := xAxis.RangeMax - xAxis.RangeMin
	dy := yAxis.RangeMax - yAxis.RangeMin
	if dx == 0 || dy == 0 || xAxis.PixelSize <= 0 || yAxis.PixelSize <= 0 {
		return Point{}, false
	}
	return Point{
		X: (x - xAxis.RangeMin) / dx * xAxis.PixelSize,
		Y: (1 - (y-yAxis.RangeMin)/dy) * yAxis.PixelSize,
	}, true
}
