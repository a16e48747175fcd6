package agg

import (
	"math"

	"github.com/huangsam/hotelpulse/schema"
)

// ExtentPad is the share of the data span added above a chart, and below it
// when values go negative.
const ExtentPad = 0.08

// Extent returns a padded y range covering the series, the labels and the
// trend line. Stacked series add up per period, positives up and negatives
// down; triplet series are plotted as plain lines.
func Extent(series schema.Dataset, kind schema.SectionKind, annotations []schema.Annotation, trend []float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
	}
	for i := range n {
		var up, down float64
		for _, s := range series {
			v := s.At(i)
			switch {
			case kind == schema.TripletKind:
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			case v >= 0:
				up += v
			default:
				down += v
			}
		}
		lo, hi = math.Min(lo, down), math.Max(hi, up)
	}
	for _, a := range annotations {
		lo, hi = math.Min(lo, a.Y), math.Max(hi, a.Y)
	}
	for _, v := range trend {
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * ExtentPad
	if lo < 0 {
		lo -= pad
	}
	return lo, hi + pad
}
