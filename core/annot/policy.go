// Package annot builds, separates and reconciles chart annotations.
package annot

import "github.com/huangsam/hotelpulse/schema"

// DefaultMinGap is the relative vertical gap kept between labels of one column.
const DefaultMinGap = 0.07

// Label colors.
const (
	TotalColor    = "#003366"
	UpColor       = "#1FA055"
	DownColor     = "#C1272D"
	GrossColor    = "#003f5c"
	NetColor      = "#0044ff"
	CancelColor   = "#C1272D"
	TrendColor    = "#2C7AC9"
	trendLift     = 1.05
	defaultFontSz = 13
)

// RolePolicy places one label role relative to its anchor value.
type RolePolicy struct {
	Scale         float64 // zero means 1
	Offset        float64
	Fixed         bool
	FixedY        float64
	FloorFraction float64 // label sits this fraction of the chart top below zero
	FontSize      float64
	Color         string // empty lets the builder pick (variation labels)
}

// Place returns the y coordinate for a label anchored at value on a chart whose
// largest value is top.
func (p RolePolicy) Place(value, top float64) float64 {
	switch {
	case p.Fixed:
		return p.FixedY
	case p.FloorFraction > 0:
		return -p.FloorFraction * top
	}
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	return value*scale + p.Offset
}

// LayoutPolicy is the full placement policy of one chart.
type LayoutPolicy struct {
	Roles  map[schema.LabelRole]RolePolicy
	Boosts []schema.Boost
	MinGap float64
}

// DefaultPolicy returns the placement used when a section declares nothing.
// Each role gets its own vertical offset so labels rarely collide.
func DefaultPolicy() LayoutPolicy {
	return LayoutPolicy{
		Roles: map[schema.LabelRole]RolePolicy{
			schema.TotalRole:        {Scale: 1.03, FontSize: 14, Color: TotalColor},
			schema.VariationRole:    {Scale: 1.20, FontSize: defaultFontSz},
			schema.GrossRole:        {Scale: 1.32, FontSize: defaultFontSz, Color: GrossColor},
			schema.NetRole:          {Scale: 0.82, FontSize: defaultFontSz, Color: NetColor},
			schema.CancellationRole: {FloorFraction: 0.18, FontSize: 12, Color: CancelColor},
		},
		MinGap: DefaultMinGap,
	}
}

// Role returns the policy for a role, falling back to the default policy.
func (lp LayoutPolicy) Role(role schema.LabelRole) RolePolicy {
	if rp, ok := lp.Roles[role]; ok {
		return rp
	}
	return DefaultPolicy().Roles[role]
}

// PolicyFor overlays a section's declared label specs and boosts on the default policy.
func PolicyFor(sec schema.Section, minGap float64) LayoutPolicy {
	policy := DefaultPolicy()
	policy.MinGap = minGap
	policy.Boosts = append([]schema.Boost(nil), sec.Boosts...)

	for role, spec := range sec.Labels {
		rp := policy.Role(role)
		if spec.Scale != 0 || spec.Offset != 0 {
			rp.Scale = spec.Scale
			rp.Offset = spec.Offset
			rp.FloorFraction = spec.FloorFraction
			rp.Fixed = false
		}
		if spec.FloorFraction != 0 {
			rp.FloorFraction = spec.FloorFraction
		}
		if spec.FixedY != nil {
			rp.Fixed = true
			rp.FixedY = *spec.FixedY
		}
		if spec.FontSize != 0 {
			rp.FontSize = spec.FontSize
		}
		if spec.Color != "" {
			rp.Color = spec.Color
		}
		policy.Roles[role] = rp
	}
	return policy
}
