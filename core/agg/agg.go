// Package agg has aggregation logic for weekly revenue series.
package agg

import (
	"sort"

	"github.com/huangsam/hotelpulse/schema"
)

// ComputeTotals sums the dataset per period and per series and ranks the series.
// Missing entries count as zero. Ties in the ranking keep insertion order.
func ComputeTotals(periods []string, dataset schema.Dataset) schema.Totals {
	perPeriod := make([]float64, len(periods))
	perSeries := make([]schema.SeriesTotal, 0, len(dataset))

	for _, s := range dataset {
		var seriesTotal float64
		for i := range periods {
			v := s.At(i)
			perPeriod[i] += v
			seriesTotal += v
		}
		perSeries = append(perSeries, schema.SeriesTotal{Name: s.Name, Total: seriesTotal})
	}

	return schema.Totals{
		Periods:   append([]string(nil), periods...),
		PerPeriod: perPeriod,
		PerSeries: perSeries,
		Ranking:   rankSeries(perSeries),
		Variation: Variance(perPeriod),
	}
}

// rankSeries orders series names by total, descending, keeping insertion order on ties.
func rankSeries(perSeries []schema.SeriesTotal) []string {
	ordered := make([]schema.SeriesTotal, len(perSeries))
	copy(ordered, perSeries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Total > ordered[j].Total
	})

	ranking := make([]string, 0, len(ordered))
	for _, st := range ordered {
		ranking = append(ranking, st.Name)
	}
	return ranking
}

// Variance compares the last total with the first.
// It returns the zero Variation when fewer than two totals exist.
func Variance(totals []float64) schema.Variation {
	if len(totals) < 2 {
		return schema.Variation{}
	}
	first := totals[0]
	abs := totals[len(totals)-1] - first
	return schema.Variation{Abs: abs, Pct: schema.SafePct(abs, first)}
}

// PeriodChanges returns the change of each total against the previous one.
// The result has len(totals)-1 entries, or none for fewer than two totals.
func PeriodChanges(totals []float64) []schema.Variation {
	if len(totals) < 2 {
		return nil
	}
	changes := make([]schema.Variation, 0, len(totals)-1)
	for i := 1; i < len(totals); i++ {
		diff := totals[i] - totals[i-1]
		changes = append(changes, schema.Variation{Abs: diff, Pct: schema.SafePct(diff, totals[i-1])})
	}
	return changes
}

// Sum returns the total of values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// NetSeries derives net values as gross minus cancellations, rounded to cents.
func NetSeries(gross, cancellations []float64) []float64 {
	net := make([]float64, len(gross))
	for i, g := range gross {
		var c float64
		if i < len(cancellations) {
			c = cancellations[i]
		}
		net[i] = schema.Round2(g - c)
	}
	return net
}

// CancellationRate returns the share of gross revenue lost to cancellations.
func CancellationRate(gross, cancellations []float64) float64 {
	return schema.SafePct(Sum(cancellations), Sum(gross))
}

// MeanCancellationPct averages the per-period cancellation percentage.
// Periods with no gross revenue contribute zero.
func MeanCancellationPct(gross, cancellations []float64) float64 {
	if len(cancellations) == 0 {
		return 0
	}
	var total float64
	for i, c := range cancellations {
		var g float64
		if i < len(gross) {
			g = gross[i]
		}
		total += schema.SafePct(c, g)
	}
	return total / float64(len(cancellations))
}
