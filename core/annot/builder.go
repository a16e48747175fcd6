package annot

import (
	"slices"

	"github.com/huangsam/hotelpulse/core/agg"
	"github.com/huangsam/hotelpulse/schema"
)

// BuildAnnotations builds the labels of a stacked chart: one total label per
// period followed by one week-over-week variation label per period after the first.
// Fewer than two periods yield no labels.
func BuildAnnotations(periods []string, perPeriodTotal []float64, policy LayoutPolicy) []schema.Annotation {
	if len(periods) < 2 {
		return []schema.Annotation{}
	}

	totals := make([]float64, len(periods))
	for i := range periods {
		if i < len(perPeriodTotal) {
			totals[i] = perPeriodTotal[i]
		}
	}
	top := maxOf(totals)

	totalPolicy := policy.Role(schema.TotalRole)
	varPolicy := policy.Role(schema.VariationRole)

	out := make([]schema.Annotation, 0, 2*len(periods)-1)
	for i, period := range periods {
		out = append(out, schema.Annotation{
			Index:  len(out),
			Period: period,
			X:      float64(i),
			Y:      totalPolicy.Place(totals[i], top),
			Text:   schema.FormatUSD(totals[i]),
			Role:   schema.TotalRole,
			Style:  schema.AnnotationStyle{FontSize: totalPolicy.FontSize, Color: totalPolicy.Color},
		})
	}

	for i, change := range agg.PeriodChanges(totals) {
		at := i + 1
		color := varPolicy.Color
		if color == "" {
			color = UpColor
			if change.Abs < 0 {
				color = DownColor
			}
		}
		out = append(out, schema.Annotation{
			Index:  len(out),
			Period: periods[at],
			X:      float64(at),
			Y:      varPolicy.Place(totals[at], top),
			Text:   schema.FormatDelta(change.Abs, change.Pct),
			Role:   schema.VariationRole,
			Style:  schema.AnnotationStyle{FontSize: varPolicy.FontSize, Color: color},
		})
	}

	return ApplyBoosts(out, policy.Boosts)
}

// BuildTripletAnnotations builds gross, net and cancellation labels for every period.
// Missing values count as zero and net is derived when absent.
func BuildTripletAnnotations(periods []string, t schema.Triplet, policy LayoutPolicy) []schema.Annotation {
	if len(periods) < 2 {
		return []schema.Annotation{}
	}

	net := t.Net
	if len(net) == 0 {
		net = agg.NetSeries(t.Gross, t.Cancellation)
	}

	gross := schema.Series{Values: t.Gross}
	cancel := schema.Series{Values: t.Cancellation}
	netSeries := schema.Series{Values: net}

	grossValues := make([]float64, len(periods))
	for i := range periods {
		grossValues[i] = gross.At(i)
	}
	top := maxOf(grossValues)

	roles := []struct {
		role   schema.LabelRole
		prefix string
		series schema.Series
	}{
		{schema.GrossRole, "Gross → ", gross},
		{schema.NetRole, "Net → ", netSeries},
		{schema.CancellationRole, "Cxl → ", cancel},
	}

	out := make([]schema.Annotation, 0, 3*len(periods))
	for i, period := range periods {
		for _, r := range roles {
			rp := policy.Role(r.role)
			value := r.series.At(i)
			out = append(out, schema.Annotation{
				Index:  len(out),
				Period: period,
				X:      float64(i),
				Y:      rp.Place(value, top),
				Text:   r.prefix + schema.FormatUSD(value),
				Role:   r.role,
				Style:  schema.AnnotationStyle{FontSize: rp.FontSize, Color: rp.Color},
			})
		}
	}

	return ApplyBoosts(out, policy.Boosts)
}

// BuildSection builds the fresh label set for a section according to its kind.
func BuildSection(sec schema.Section, totals schema.Totals, policy LayoutPolicy) []schema.Annotation {
	if sec.Kind == schema.TripletKind {
		return BuildTripletAnnotations(sec.Periods, sec.Triplet, policy)
	}
	return BuildAnnotations(sec.Periods, totals.PerPeriod, policy)
}

// ApplyBoosts scales and shifts labels of the boosted periods.
// Boosts apply in order, so a later boost compounds on an earlier one.
func ApplyBoosts(annotations []schema.Annotation, boosts []schema.Boost) []schema.Annotation {
	out := slices.Clone(annotations)
	for _, b := range boosts {
		for i := range out {
			a := &out[i]
			if !slices.Contains(b.Periods, a.Period) {
				continue
			}
			if len(b.Roles) > 0 && !slices.Contains(b.Roles, a.Role) {
				continue
			}
			if b.Factor != 0 {
				a.Y *= b.Factor
			}
			a.Y += b.Shift
		}
	}
	return out
}

// TrendLine returns the trend line values that ride just above the total labels.
// Periods without a total label map to zero.
func TrendLine(periods []string, annotations []schema.Annotation) []float64 {
	line := make([]float64, len(periods))
	for _, a := range annotations {
		if a.Role != schema.TotalRole {
			continue
		}
		i := int(a.X)
		if i >= 0 && i < len(line) {
			line[i] = a.Y * trendLift
		}
	}
	return line
}

func maxOf(values []float64) float64 {
	var top float64
	for _, v := range values {
		if v > top {
			top = v
		}
	}
	return top
}
