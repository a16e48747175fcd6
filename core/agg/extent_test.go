package agg

import (
	"testing"

	"github.com/huangsam/hotelpulse/schema"
	"github.com/stretchr/testify/assert"
)

func TestExtent(t *testing.T) {
	series := schema.Dataset{
		{Name: "A", Values: []float64{10, 20}},
		{Name: "B", Values: []float64{-5, 5}},
	}
	lo, hi := Extent(series, schema.StackedKind, nil, nil)
	assert.InDelta(t, -7.4, lo, 1e-9)
	assert.InDelta(t, 27.4, hi, 1e-9)

	lo, hi = Extent(series, schema.StackedKind, []schema.Annotation{{Y: 50}}, []float64{60})
	assert.InDelta(t, -10.2, lo, 1e-9)
	assert.InDelta(t, 65.2, hi, 1e-9)

	lo, hi = Extent(series, schema.TripletKind, nil, nil)
	assert.InDelta(t, -7.0, lo, 1e-9)
	assert.InDelta(t, 22.0, hi, 1e-9)

	lo, hi = Extent(nil, schema.StackedKind, nil, nil)
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 1.08, hi, 1e-9)
}
