package core

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/huangsam/hotelpulse/core/agg"
	"github.com/huangsam/hotelpulse/core/annot"
	"github.com/huangsam/hotelpulse/core/drag"
	"github.com/huangsam/hotelpulse/core/theory"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/internal/dataset"
	"github.com/huangsam/hotelpulse/schema"
	"go.uber.org/zap"
)

// ErrUnknownChart is returned when a chart id matches no section.
var ErrUnknownChart = errors.New("unknown chart")

// ErrNoMove is returned when a drag gesture saved nothing.
var ErrNoMove = errors.New("drag gesture did not move the label")


// Options tune the dashboard.
type Options struct {
	LabelGap float64 // relative label separation, 0 disables it
	Logger   *zap.Logger
}

// Dashboard wires the sections to the renderer, the position store and one
// drag controller per chart.
type Dashboard struct {
	bundle   *dataset.Bundle
	renderer contract.Renderer
	store    contract.PositionStore
	registry *drag.Registry
	logger   *zap.Logger
	opts     Options
}

// NewDashboard creates a dashboard over bundle. A nil renderer turns Activate
// into a headless preview.
func NewDashboard(bundle *dataset.Bundle, renderer contract.Renderer, store contract.PositionStore, opts Options) *Dashboard {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Dashboard{
		bundle:   bundle,
		renderer: renderer,
		store:    store,
		registry: drag.NewRegistry(drag.Deps{Renderer: renderer, Store: store, Logger: opts.Logger}),
		logger:   opts.Logger,
		opts:     opts,
	}
}

// Bundle returns the dashboard data.
func (d *Dashboard) Bundle() *dataset.Bundle {
	return d.bundle
}

// Sections returns every section in display order.
func (d *Dashboard) Sections() []schema.Section {
	return d.bundle.Sections
}

// Preview computes the view of a section without drawing it.
func (d *Dashboard) Preview(ctx context.Context, sectionID string) (schema.SectionView, error) {
	view, _, err := d.prepare(ctx, sectionID)
	return view, err
}

// Activate is the render trigger of a section tab. It aggregates, builds and
// reconciles the labels, draws the chart and rebinds the chart's drag controller.
func (d *Dashboard) Activate(ctx context.Context, sectionID string) (schema.SectionView, error) {
	view, p, err := d.prepare(ctx, sectionID)
	if err != nil {
		return schema.SectionView{}, err
	}
	if d.renderer != nil {
		if err := d.renderer.CreateOrUpdateChart(view.ChartID, p.series, p.layout); err != nil {
			return schema.SectionView{}, fmt.Errorf("failed to draw %s: %w", view.ChartID, err)
		}
		if err := d.renderer.UpdateAnnotations(view.ChartID, view.Annotations); err != nil {
			return schema.SectionView{}, fmt.Errorf("failed to draw labels of %s: %w", view.ChartID, err)
		}
		if loc, ok := d.renderer.(contract.ChartLocator); ok {
			view.ChartPath = loc.ChartPath(view.ChartID)
		}
	}
	d.registry.Bind(view.ChartID, view.Annotations)
	d.logger.Debug("Section activated",
		zap.String("section", sectionID),
		zap.Int("annotations", len(view.Annotations)),
		zap.Int("overridden", view.Overridden))
	return view, nil
}

// ActivateAll activates every section in display order.
func (d *Dashboard) ActivateAll(ctx context.Context) ([]schema.SectionView, error) {
	views := make([]schema.SectionView, 0, len(d.bundle.Sections))
	for _, sec := range d.bundle.Sections {
		view, err := d.Activate(ctx, sec.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Drag replays a pointer gesture on the label at index. Charts that were never
// drawn are activated first.
func (d *Dashboard) Drag(ctx context.Context, chartID string, index int, path []drag.Point) (schema.Position, error) {
	c, err := d.controller(ctx, chartID)
	if err != nil {
		return schema.Position{}, err
	}
	pos, ok := c.Gesture(index, path)
	if !ok {
		return schema.Position{}, fmt.Errorf("%w: chart %s index %d", ErrNoMove, chartID, index)
	}
	return pos, nil
}

// MoveTo drags the label at index through data positions. The positions are
// turned into plot pixels with the chart's current axes, so the saved override
// lands where the axes put it.
func (d *Dashboard) MoveTo(ctx context.Context, chartID string, index int, to schema.Position, via ...schema.Position) (schema.Position, error) {
	c, err := d.controller(ctx, chartID)
	if err != nil {
		return schema.Position{}, err
	}
	path := make([]drag.Point, 0, len(via)+1)
	for _, p := range append(slices.Clone(via), to) {
		pt, ok := c.Screen(p.X, p.Y)
		if !ok {
			return schema.Position{}, fmt.Errorf("%w: no axes for chart %s", ErrNoMove, chartID)
		}
		path = append(path, pt)
	}
	pos, ok := c.Gesture(index, path)
	if !ok {
		return schema.Position{}, fmt.Errorf("%w: chart %s index %d", ErrNoMove, chartID, index)
	}
	return pos, nil
}

// Reset drops the saved positions of a chart and redraws it when it is active.
func (d *Dashboard) Reset(ctx context.Context, chartID string) error {
	if d.store == nil {
		return nil
	}
	if err := d.store.Reset(chartID); err != nil {
		return fmt.Errorf("failed to reset %s: %w", chartID, err)
	}
	if _, ok := d.registry.Get(chartID); !ok {
		return nil
	}
	sec, err := d.bundle.SectionForChart(chartID)
	if err != nil {
		return nil
	}
	_, err = d.Activate(ctx, sec.ID)
	return err
}

// Controller returns the drag controller of an active chart.
func (d *Dashboard) Controller(chartID string) (*drag.Controller, bool) {
	return d.registry.Get(chartID)
}

func (d *Dashboard) controller(ctx context.Context, chartID string) (*drag.Controller, error) {
	if c, ok := d.registry.Get(chartID); ok {
		return c, nil
	}
	sec, err := d.bundle.SectionForChart(chartID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, chartID)
	}
	if _, err := d.Activate(ctx, sec.ID); err != nil {
		return nil, err
	}
	c, _ := d.registry.Get(chartID)
	return c, nil
}

// prepared holds what the renderer needs besides the view.
type prepared struct {
	series schema.Dataset
	layout schema.ChartLayout
}

func (d *Dashboard) prepare(ctx context.Context, sectionID string) (schema.SectionView, prepared, error) {
	if err := ctx.Err(); err != nil {
		return schema.SectionView{}, prepared{}, err
	}
	sec, err := d.bundle.Section(sectionID)
	if err != nil {
		return schema.SectionView{}, prepared{}, err
	}

	var (
		totals schema.Totals
		series schema.Dataset
	)
	if sec.Kind == schema.TripletKind {
		series = tripletSeries(sec.Triplet)
		net, _ := series.Lookup("Net")
		totals = agg.ComputeTotals(sec.Periods, schema.Dataset{net})
	} else {
		totals = agg.ComputeTotals(sec.Periods, sec.Series)
		series = stackOrder(sec.Series, totals.Ranking)
	}

	fresh := annot.BuildSection(sec, totals, annot.PolicyFor(sec, d.opts.LabelGap))
	if d.opts.LabelGap > 0 {
		fresh = annot.Separate(fresh, d.opts.LabelGap)
	}
	overrides := schema.Overrides{}
	if d.store != nil {
		overrides = d.store.Load(sec.ChartID())
	}
	annotations := annot.Reconcile(fresh, overrides)

	layout := schema.ChartLayout{
		Title:   sec.Title,
		Kind:    sec.Kind,
		Periods: sec.Periods,
		Colors:  palette(sec),
	}
	if sec.Trend && sec.Kind != schema.TripletKind {
		layout.TrendLine = annot.TrendLine(sec.Periods, fresh)
	}
	layout.YMin, layout.YMax = agg.Extent(series, sec.Kind, annotations, layout.TrendLine)

	view := schema.SectionView{
		SectionID:      sec.ID,
		ChartID:        sec.ChartID(),
		Title:          sec.Title,
		Totals:         totals,
		Annotations:    annotations,
		Overridden:     annot.Overridden(fresh, overrides),
		Interpretation: Interpretation(sec, totals),
	}
	return view, prepared{series: series, layout: layout}, nil
}

// Interpretation returns the prose shown under a section's chart. Sections
// with a model use it; the rest get the overview reading.
func Interpretation(sec schema.Section, totals schema.Totals) string {
	if sec.Kind == schema.TripletKind {
		side := theory.SideOf(sec.Triplet)
		if sec.Model != "" {
			return theory.Interpret(sec.Model, totals.PerPeriod, side)
		}
		net := schema.Dataset{{Name: sec.Title, Values: agg.NetSeries(sec.Triplet.Gross, sec.Triplet.Cancellation)}}
		if len(sec.Triplet.Net) > 0 {
			net[0].Values = sec.Triplet.Net
		}
		return theory.InterpretOverview(sec.Title, sec.Periods, net, side)
	}
	if sec.Model != "" {
		return theory.Interpret(sec.Model, totals.PerPeriod, theory.Side{Net: totals.PerPeriod})
	}
	return theory.InterpretOverview(sec.Title, sec.Periods, sec.Series, theory.Side{})
}

// tripletSeries returns the three lines of a triplet chart. A missing net line
// is derived from gross and cancellations.
func tripletSeries(t schema.Triplet) schema.Dataset {
	net := t.Net
	if len(net) == 0 {
		net = agg.NetSeries(t.Gross, t.Cancellation)
	}
	return schema.Dataset{
		{Name: "Gross", Values: t.Gross},
		{Name: "Net", Values: net},
		{Name: "Cancellation", Values: t.Cancellation},
	}
}

// stackOrder sorts series by ranking so the largest channel sits at the bottom.
func stackOrder(series schema.Dataset, ranking []string) schema.Dataset {
	out := make(schema.Dataset, 0, len(series))
	for _, name := range ranking {
		if s, ok := series.Lookup(name); ok {
			out = append(out, s)
		}
	}
	return out
}

func palette(sec schema.Section) map[string]string {
	colors := sec.Colors()
	if sec.Kind == schema.TripletKind {
		colors["Gross"] = annot.GrossColor
		colors["Net"] = annot.NetColor
		colors["Cancellation"] = annot.CancelColor
	}
	colors["Trend"] = annot.TrendColor
	return colors
}
