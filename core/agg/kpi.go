package agg

import "github.com/huangsam/hotelpulse/schema"

// AdKPIs computes click-to-lead rate and return on ad spend per campaign week.
func AdKPIs(c schema.AdCampaign) []schema.AdKPI {
	at := func(values []float64, i int) float64 {
		if i < len(values) {
			return values[i]
		}
		return 0
	}

	out := make([]schema.AdKPI, 0, len(c.Periods))
	for i, period := range c.Periods {
		k := schema.AdKPI{
			Period:  period,
			Spend:   at(c.Spend, i),
			Clicks:  at(c.Clicks, i),
			Leads:   at(c.Leads, i),
			Revenue: at(c.Revenue, i),
		}
		k.CTR = schema.SafePct(k.Leads, k.Clicks)
		k.ROAS = schema.SafeRatio(k.Revenue, k.Spend)
		out = append(out, k)
	}
	return out
}

// FunnelSteps computes each stage's conversion from the stage before it.
// The first stage has no predecessor and reports 100 when it has any volume.
func FunnelSteps(w schema.FunnelWeek) []schema.FunnelStep {
	steps := make([]schema.FunnelStep, 0, len(w.Stages))
	for i, st := range w.Stages {
		step := schema.FunnelStep{Name: st.Name, Count: st.Count}
		if i == 0 {
			if st.Count > 0 {
				step.Pct = 100
			}
		} else {
			step.Pct = schema.SafePct(st.Count, w.Stages[i-1].Count)
		}
		steps = append(steps, step)
	}
	return steps
}
