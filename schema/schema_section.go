package schema

// LabelSpec is the declarative placement rule for one label role.
// The y coordinate is FixedY when set, FloorFraction of the chart's largest
// value below the axis when FloorFraction is set, and anchor*Scale+Offset
// otherwise. A zero Scale means 1.
type LabelSpec struct {
	Scale         float64  `json:"scale,omitempty" yaml:"scale,omitempty" validate:"gte=0"`
	Offset        float64  `json:"offset,omitempty" yaml:"offset,omitempty"`
	FixedY        *float64 `json:"fixed_y,omitempty" yaml:"fixed_y,omitempty"`
	FloorFraction float64  `json:"floor_fraction,omitempty" yaml:"floor_fraction,omitempty" validate:"gte=0,lte=1"`
	FontSize      float64  `json:"font_size,omitempty" yaml:"font_size,omitempty" validate:"gte=0"`
	Color         string   `json:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Boost adjusts already-placed labels for specific periods.
// An empty Roles list applies to every role.
type Boost struct {
	Periods []string    `json:"periods" yaml:"periods" validate:"required,min=1"`
	Roles   []LabelRole `json:"roles,omitempty" yaml:"roles,omitempty"`
	Factor  float64     `json:"factor,omitempty" yaml:"factor,omitempty" validate:"gte=0"`
	Shift   float64     `json:"shift,omitempty" yaml:"shift,omitempty"`
}

// Section is one dashboard tab: a chart, its labels and its interpretation model.
type Section struct {
	ID      string                  `json:"id" yaml:"id" validate:"required,sectionid"`
	Title   string                  `json:"title" yaml:"title" validate:"required"`
	Kind    SectionKind             `json:"kind" yaml:"kind" validate:"required,oneof=stacked triplet"`
	Model   string                  `json:"model,omitempty" yaml:"model,omitempty"`
	Periods []string                `json:"periods" yaml:"periods" validate:"required,min=1,unique"`
	Series  Dataset                 `json:"series,omitempty" yaml:"series,omitempty" validate:"dive"`
	Triplet Triplet                 `json:"triplet,omitempty" yaml:"triplet,omitempty"`
	Labels  map[LabelRole]LabelSpec `json:"labels,omitempty" yaml:"labels,omitempty" validate:"dive"`
	Boosts  []Boost                 `json:"boosts,omitempty" yaml:"boosts,omitempty" validate:"dive"`
	Trend   bool                    `json:"trend,omitempty" yaml:"trend,omitempty"`
}

// ChartID returns the chart identifier used for rendering and overrides.
func (s Section) ChartID() string {
	return "chart-" + s.ID
}

// Colors returns the series palette keyed by series name.
func (s Section) Colors() map[string]string {
	colors := make(map[string]string, len(s.Series))
	for _, ser := range s.Series {
		if ser.Color != "" {
			colors[ser.Name] = ser.Color
		}
	}
	return colors
}

// SectionView is everything produced when a section becomes active.
type SectionView struct {
	SectionID      string       `json:"section_id"`
	ChartID        string       `json:"chart_id"`
	Title          string       `json:"title"`
	Totals         Totals       `json:"totals"`
	Annotations    []Annotation `json:"annotations"`
	Overridden     int          `json:"overridden"`
	Interpretation string       `json:"interpretation"`
	ChartPath      string       `json:"chart_path,omitempty"`
}

// AdCampaign holds weekly paid-social results.
type AdCampaign struct {
	Periods []string  `json:"periods" yaml:"periods" validate:"required,min=1"`
	Spend   []float64 `json:"spend" yaml:"spend"`
	Clicks  []float64 `json:"clicks" yaml:"clicks"`
	Leads   []float64 `json:"leads" yaml:"leads"`
	Revenue []float64 `json:"revenue" yaml:"revenue"`
}

// AdKPI is the derived performance of one campaign week.
type AdKPI struct {
	Period  string  `json:"period"`
	Spend   float64 `json:"spend"`
	Clicks  float64 `json:"clicks"`
	Leads   float64 `json:"leads"`
	Revenue float64 `json:"revenue"`
	CTR     float64 `json:"ctr"`
	ROAS    float64 `json:"roas"`
}

// FunnelStage is one step of the booking funnel.
type FunnelStage struct {
	Name  string  `json:"name" yaml:"name" validate:"required"`
	Count float64 `json:"count" yaml:"count" validate:"gte=0"`
}

// FunnelWeek is the booking funnel for a single period.
type FunnelWeek struct {
	Period string        `json:"period" yaml:"period" validate:"required"`
	Stages []FunnelStage `json:"stages" yaml:"stages" validate:"required,min=1,dive"`
}

// FunnelStep is a funnel stage with its conversion from the previous stage.
type FunnelStep struct {
	Name  string  `json:"name"`
	Count float64 `json:"count"`
	Pct   float64 `json:"pct"`
}
