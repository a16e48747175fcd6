package annot

import (
	"slices"

	"github.com/huangsam/hotelpulse/schema"
)

// Reconcile overlays saved positions on a freshly built label set.
// Only X and Y are taken from an override; text and style always come from the
// fresh labels. The result has the same length and order as fresh.
func Reconcile(fresh []schema.Annotation, overrides schema.Overrides) []schema.Annotation {
	out := slices.Clone(fresh)
	if out == nil {
		out = []schema.Annotation{}
	}
	for i := range out {
		if pos, ok := overrides[i]; ok {
			out[i].X = pos.X
			out[i].Y = pos.Y
		}
	}
	return out
}

// Overridden counts the labels of fresh that have a saved position.
func Overridden(fresh []schema.Annotation, overrides schema.Overrides) int {
	var n int
	for i := range fresh {
		if _, ok := overrides[i]; ok {
			n++
		}
	}
	return n
}
