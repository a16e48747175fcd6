// Package core has the dashboard orchestration: section rendering, label
// reconciliation and drag sessions.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/hotelpulse/core/agg"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/internal/dataset"
	"github.com/huangsam/hotelpulse/internal/outwriter"
	"github.com/huangsam/hotelpulse/internal/render"
	"github.com/huangsam/hotelpulse/schema"
)

// NewDashboardFromConfig loads the configured dataset and builds a dashboard
// over store. With draw set, charts are written to the configured directory.
func NewDashboardFromConfig(cfg *contract.Config, store contract.PositionStore, draw bool) (*Dashboard, error) {
	bundle, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	var renderer contract.Renderer
	if draw {
		renderer = render.NewChartRenderer(render.Options{
			Dir:    cfg.ChartDir,
			Format: cfg.ImageFormat,
			Width:  cfg.ChartWidth,
			Height: cfg.ChartHeight,
			Logger: contract.Logger(),
		})
	}
	return NewDashboard(bundle, renderer, store, Options{
		LabelGap: cfg.LabelGap,
		Logger:   contract.Logger(),
	}), nil
}

// ResolveChartID accepts a chart id or a section id and returns the chart id.
func ResolveChartID(bundle *dataset.Bundle, id string) (string, error) {
	if sec, err := bundle.SectionForChart(id); err == nil {
		return sec.ChartID(), nil
	}
	if sec, err := bundle.Section(id); err == nil {
		return sec.ChartID(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownChart, id)
}

// ExecuteSections lists the dashboard sections.
func ExecuteSections(_ context.Context, cfg *contract.Config) error {
	bundle, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return err
	}
	return outwriter.PrintSections(bundle.Sections, cfg)
}

// ExecuteRender activates the given sections, or every section when none is
// given, and writes their charts.
func ExecuteRender(ctx context.Context, cfg *contract.Config, store contract.PositionStore, sectionIDs []string) error {
	start := time.Now()
	d, err := NewDashboardFromConfig(cfg, store, true)
	if err != nil {
		return err
	}

	var views []schema.SectionView
	if len(sectionIDs) == 0 {
		if views, err = d.ActivateAll(ctx); err != nil {
			return err
		}
	} else {
		for _, id := range sectionIDs {
			view, err := d.Activate(ctx, id)
			if err != nil {
				return err
			}
			views = append(views, view)
		}
	}
	return outwriter.PrintRenderSummary(views, cfg, time.Since(start))
}

// ExecuteTotals prints the aggregated totals of a section. A positive limit
// keeps the top and bottom entries of the ranking.
func ExecuteTotals(ctx context.Context, cfg *contract.Config, store contract.PositionStore, sectionID string, limit int) error {
	view, err := preview(ctx, cfg, store, sectionID)
	if err != nil {
		return err
	}
	return outwriter.PrintTotals(view, limit, cfg)
}

// ExecuteAnnotations prints the reconciled labels of a section.
func ExecuteAnnotations(ctx context.Context, cfg *contract.Config, store contract.PositionStore, sectionID string) error {
	view, err := preview(ctx, cfg, store, sectionID)
	if err != nil {
		return err
	}
	return outwriter.PrintAnnotations(view, cfg)
}

// ExecuteInterpret prints the marketing reading of a section.
func ExecuteInterpret(ctx context.Context, cfg *contract.Config, sectionID string) error {
	view, err := preview(ctx, cfg, nil, sectionID)
	if err != nil {
		return err
	}
	return outwriter.PrintInterpretation(view, cfg)
}

// ExecuteDrag moves a label of a chart through the given data positions and
// saves where it lands. The chart is redrawn along the way.
func ExecuteDrag(ctx context.Context, cfg *contract.Config, store contract.PositionStore, id string, index int, to schema.Position, via []schema.Position) error {
	if store == nil {
		return errors.New("position store is not initialized")
	}
	d, err := NewDashboardFromConfig(cfg, store, true)
	if err != nil {
		return err
	}
	chartID, err := ResolveChartID(d.Bundle(), id)
	if err != nil {
		return err
	}
	pos, err := d.MoveTo(ctx, chartID, index, to, via...)
	if err != nil {
		return err
	}
	return outwriter.PrintDragResult(chartID, index, pos, cfg)
}

// ExecuteAdKPIs prints CTR and ROAS for every campaign week.
func ExecuteAdKPIs(_ context.Context, cfg *contract.Config) error {
	bundle, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return err
	}
	if bundle.Ads == nil {
		return errors.New("dataset has no ad campaign")
	}
	return outwriter.PrintAdKPIs(agg.AdKPIs(*bundle.Ads), cfg)
}

// ExecuteFunnel prints the booking funnel of a period, or of the latest
// period when none is given.
func ExecuteFunnel(_ context.Context, cfg *contract.Config, period string) error {
	bundle, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return err
	}
	if len(bundle.Funnel) == 0 {
		return errors.New("dataset has no funnel")
	}
	if period == "" {
		period = bundle.Funnel[len(bundle.Funnel)-1].Period
	}
	week, ok := bundle.FunnelWeek(strings.ToUpper(period))
	if !ok {
		return fmt.Errorf("no funnel for period %s", period)
	}
	return outwriter.PrintFunnel(week, cfg)
}

// ExecutePositionsList prints every saved label position.
func ExecutePositionsList(_ context.Context, cfg *contract.Config, store contract.PositionStore) error {
	if store == nil {
		return errors.New("position store is not initialized")
	}
	rows, err := store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read overrides: %w", err)
	}
	return outwriter.PrintOverrides(rows, cfg)
}

// ExecutePositionsReset drops the saved positions of one chart, given by chart
// or section id.
func ExecutePositionsReset(ctx context.Context, cfg *contract.Config, store contract.PositionStore, id string) (string, error) {
	if store == nil {
		return "", errors.New("position store is not initialized")
	}
	bundle, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return "", err
	}
	chartID, err := ResolveChartID(bundle, id)
	if err != nil {
		return "", err
	}
	d := NewDashboard(bundle, nil, store, Options{Logger: contract.Logger()})
	if err := d.Reset(ctx, chartID); err != nil {
		return "", err
	}
	return chartID, nil
}

func preview(ctx context.Context, cfg *contract.Config, store contract.PositionStore, sectionID string) (schema.SectionView, error) {
	d, err := NewDashboardFromConfig(cfg, store, false)
	if err != nil {
		return schema.SectionView{}, err
	}
	return d.Preview(ctx, sectionID)
}
