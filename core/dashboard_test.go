package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/hotelpulse/core/annot"
	"github.com/huangsam/hotelpulse/core/drag"
	"github.com/huangsam/hotelpulse/core/theory"
	"github.com/huangsam/hotelpulse/internal/dataset"
	"github.com/huangsam/hotelpulse/internal/iocache"
	"github.com/huangsam/hotelpulse/internal/render"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testBundle() *dataset.Bundle {
	return &dataset.Bundle{Sections: []schema.Section{
		{
			ID:      "general",
			Title:   "General",
			Kind:    schema.StackedKind,
			Periods: []string{"W1", "W2", "W3"},
			Series: schema.Dataset{
				{Name: "B", Values: []float64{5, 0, 5}, Color: "#DC267F"},
				{Name: "A", Values: []float64{10, 20, 30}},
			},
			Trend: true,
		},
		{
			ID:      "web",
			Title:   "Web",
			Kind:    schema.TripletKind,
			Model:   "Web",
			Periods: []string{"W1", "W2"},
			Triplet: schema.Triplet{
				Gross:        []float64{100, 200},
				Cancellation: []float64{10, 40},
			},
		},
	}}
}

func newTestDashboard(renderer *render.ChartRenderer) (*Dashboard, *iocache.PositionStoreImpl) {
	store := iocache.NewPositionStore(iocache.NewMemoryStore(), zap.NewNop())
	d := NewDashboard(testBundle(), renderer, store, Options{LabelGap: annot.DefaultMinGap})
	return d, store
}

func TestActivateStacked(t *testing.T) {
	r := &render.MockRenderer{}
	byRanking := mock.MatchedBy(func(s schema.Dataset) bool {
		return assert.ObjectsAreEqual([]string{"A", "B"}, s.Names())
	})
	withTrend := mock.MatchedBy(func(l schema.ChartLayout) bool {
		return l.Kind == schema.StackedKind && len(l.TrendLine) == 3 &&
			l.YMax > 35 && l.Colors["B"] == "#DC267F" && l.Colors["Trend"] == annot.TrendColor
	})
	r.On("CreateOrUpdateChart", "chart-general", byRanking, withTrend).Return(nil).Once()
	r.On("UpdateAnnotations", "chart-general", mock.Anything).Return(nil).Once()

	d := NewDashboard(testBundle(), r, nil, Options{})
	view, err := d.Activate(context.Background(), "general")
	require.NoError(t, err)
	r.AssertExpectations(t)

	assert.Equal(t, "chart-general", view.ChartID)
	assert.Equal(t, []float64{15, 20, 35}, view.Totals.PerPeriod)
	assert.Equal(t, []string{"A", "B"}, view.Totals.Ranking)
	assert.InDelta(t, 133.33, view.Totals.Variation.Pct, 0.01)
	assert.Len(t, view.Annotations, 5, "three totals then two variations")
	assert.Equal(t, 0, view.Overridden)
	assert.Contains(t, view.Interpretation, "## General - Overview")
	assert.Empty(t, view.ChartPath, "mock renderer locates nothing")

	c, ok := d.Controller("chart-general")
	require.True(t, ok)
	assert.Equal(t, view.Annotations, c.Annotations())
}

func TestActivateTriplet(t *testing.T) {
	d, _ := newTestDashboard(render.NewChartRenderer(render.Options{}))
	view, err := d.Activate(context.Background(), "web")
	require.NoError(t, err)

	assert.Equal(t, []float64{90, 160}, view.Totals.PerPeriod, "totals follow the net line")
	assert.Len(t, view.Annotations, 6, "gross, net and cancellation per period")
	assert.Equal(t, theory.Interpret("Web", view.Totals.PerPeriod, theory.Side{
		Gross:        []float64{100, 200},
		Cancellation: []float64{10, 40},
	}), view.Interpretation)
}

func TestActivateErrors(t *testing.T) {
	d := NewDashboard(testBundle(), nil, nil, Options{})
	_, err := d.Activate(context.Background(), "missing")
	assert.ErrorIs(t, err, dataset.ErrUnknownSection)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Activate(ctx, "general")
	assert.ErrorIs(t, err, context.Canceled)

	r := &render.MockRenderer{}
	r.On("CreateOrUpdateChart", "chart-general", mock.Anything, mock.Anything).Return(errors.New("boom"))
	d = NewDashboard(testBundle(), r, nil, Options{})
	_, err = d.Activate(context.Background(), "general")
	assert.ErrorContains(t, err, "failed to draw chart-general")
	_, ok := d.Controller("chart-general")
	assert.False(t, ok, "failed draws bind nothing")
}

func TestActivateAll(t *testing.T) {
	d, _ := newTestDashboard(render.NewChartRenderer(render.Options{}))
	views, err := d.ActivateAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "general", views[0].SectionID)
	assert.Equal(t, "web", views[1].SectionID)
}

func TestMoveToReconciles(t *testing.T) {
	ctx := context.Background()
	d, store := newTestDashboard(render.NewChartRenderer(render.Options{}))

	fresh, err := d.Preview(ctx, "general")
	require.NoError(t, err)

	pos, err := d.MoveTo(ctx, "chart-general", 2, schema.Position{X: 1.5, Y: 30}, schema.Position{X: 2, Y: 33})
	require.NoError(t, err, "first drag activates the chart")
	assert.InDelta(t, 1.5, pos.X, 1e-6)
	assert.InDelta(t, 30.0, pos.Y, 1e-6)

	saved := store.Load("chart-general")
	require.Len(t, saved, 1)
	assert.InDelta(t, 1.5, saved[2].X, 1e-6)

	view, err := d.Preview(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Overridden)
	assert.Equal(t, fresh.Annotations[0], view.Annotations[0])
	assert.Equal(t, fresh.Annotations[1], view.Annotations[1])
	assert.InDelta(t, 1.5, view.Annotations[2].X, 1e-6)
	assert.InDelta(t, 30.0, view.Annotations[2].Y, 1e-6)
	assert.Equal(t, fresh.Annotations[2].Text, view.Annotations[2].Text)
}

func TestDragPixels(t *testing.T) {
	ctx := context.Background()
	d, store := newTestDashboard(render.NewChartRenderer(render.Options{}))
	_, err := d.Activate(ctx, "general")
	require.NoError(t, err)

	_, err = d.Drag(ctx, "chart-general", 0, []drag.Point{{X: 10, Y: 10}, {X: 20, Y: 20}})
	require.NoError(t, err)
	assert.Contains(t, store.Load("chart-general"), 0)

	_, err = d.Drag(ctx, "chart-general", 9, []drag.Point{{X: 10, Y: 10}})
	assert.ErrorIs(t, err, ErrNoMove, "missing index")

	_, err = d.Drag(ctx, "chart-nope", 0, nil)
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestMoveToHeadless(t *testing.T) {
	d := NewDashboard(testBundle(), nil, nil, Options{})
	_, err := d.MoveTo(context.Background(), "chart-general", 0, schema.Position{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrNoMove, "no renderer means no axes")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	d, store := newTestDashboard(render.NewChartRenderer(render.Options{}))

	_, err := d.MoveTo(ctx, "chart-general", 1, schema.Position{X: 0.5, Y: 12})
	require.NoError(t, err)
	require.Len(t, store.Load("chart-general"), 1)

	require.NoError(t, d.Reset(ctx, "chart-general"))
	assert.Empty(t, store.Load("chart-general"))

	fresh, err := d.Preview(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Overridden)
	c, ok := d.Controller("chart-general")
	require.True(t, ok)
	assert.Equal(t, fresh.Annotations, c.Annotations(), "the active chart is redrawn")

	assert.NoError(t, d.Reset(ctx, "chart-web"), "inactive charts only lose their overrides")
}

func TestInterpretation(t *testing.T) {
	sections := testBundle().Sections

	general := sections[0]
	general.Model = "General"
	totals := schema.Totals{PerPeriod: []float64{15, 20, 35}}
	assert.Equal(t, theory.Interpret("General", totals.PerPeriod, theory.Side{Net: totals.PerPeriod}),
		Interpretation(general, totals))

	web := sections[1]
	web.Model = ""
	out := Interpretation(web, schema.Totals{})
	assert.Contains(t, out, "## Web - Overview")
	assert.Contains(t, out, "- Last period: $160.00")
	assert.Contains(t, out, "Overall cancellation rate: 16.67%")
}
