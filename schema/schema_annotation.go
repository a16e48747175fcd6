package schema

import "strconv"

// AnnotationStyle is the cosmetic part of an annotation.
type AnnotationStyle struct {
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color"`
}

// Annotation is a positioned text label in chart-data coordinates.
// Index is the positional identity used to match saved overrides.
type Annotation struct {
	Index  int             `json:"index"`
	Period string          `json:"period,omitempty"` // period the label was built for
	X      float64         `json:"x"`                // category index or free coordinate
	Y      float64         `json:"y"`
	Text   string          `json:"text"`
	Role   LabelRole       `json:"role"`
	Style  AnnotationStyle `json:"style"`
}

// Position is a saved (x, y) override in chart-data coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Overrides maps annotation index to its saved position.
type Overrides map[int]Position

// Clone returns a copy of the overrides.
func (o Overrides) Clone() Overrides {
	clone := make(Overrides, len(o))
	for k, v := range o {
		clone[k] = v
	}
	return clone
}

// ChartOverride is a flattened override row used for listing and export.
type ChartOverride struct {
	ChartID string  `json:"chart_id"`
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// ParseOverrideIndex parses a string-encoded annotation index.
func ParseOverrideIndex(s string) (int, error) {
	return strconv.Atoi(s)
}

// AxisQuery describes one axis of a rendered chart.
type AxisQuery struct {
	RangeMin  float64 `json:"range_min"`
	RangeMax  float64 `json:"range_max"`
	PixelSize float64 `json:"pixel_size"`
}

// ChartLayout carries the rendering hints for one chart.
type ChartLayout struct {
	Title     string            `json:"title"`
	Kind      SectionKind       `json:"kind"`
	Periods   []string          `json:"periods"`
	Colors    map[string]string `json:"colors,omitempty"`
	YMin      float64           `json:"y_min"`
	YMax      float64           `json:"y_max"`
	TrendLine []float64         `json:"trend_line,omitempty"`
}
