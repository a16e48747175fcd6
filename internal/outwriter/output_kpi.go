package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/hotelpulse/core/agg"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
)

// PrintAdKPIs outputs the weekly paid-social performance.
func PrintAdKPIs(kpis []schema.AdKPI, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteAdKPIs(w, kpis, cfg)
	}, "Wrote ad KPIs")
}

// WriteAdKPIs writes one row per campaign week with CTR and ROAS.
func WriteAdKPIs(w io.Writer, kpis []schema.AdKPI, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	data := tabular{
		title:     "Paid social",
		headers:   []string{"Period", "Spend", "Clicks", "Leads", "Revenue", "CTR", "ROAS"},
		csvHeader: []string{"period", "spend", "clicks", "leads", "revenue", "ctr", "roas"},
		json:      kpis,
	}

	var spend, clicks, leads, revenue float64
	for _, k := range kpis {
		data.rows = append(data.rows, []string{
			k.Period,
			schema.FormatUSD(k.Spend),
			fmt.Sprintf("%.0f", k.Clicks),
			fmt.Sprintf("%.0f", k.Leads),
			schema.FormatUSD(k.Revenue),
			fmtFloat(k.CTR) + "%",
			fmtFloat(k.ROAS) + "x",
		})
		data.csvRows = append(data.csvRows, []string{
			k.Period,
			fmt.Sprintf("%.2f", k.Spend),
			fmt.Sprintf("%.0f", k.Clicks),
			fmt.Sprintf("%.0f", k.Leads),
			fmt.Sprintf("%.2f", k.Revenue),
			fmtFloat(k.CTR),
			fmtFloat(k.ROAS),
		})
		spend += k.Spend
		clicks += k.Clicks
		leads += k.Leads
		revenue += k.Revenue
	}
	data.footer = []string{fmt.Sprintf("Total spend %s, revenue %s, CTR %s%%, ROAS %sx",
		schema.FormatUSD(spend), schema.FormatUSD(revenue),
		fmtFloat(schema.SafePct(leads, clicks)), fmtFloat(schema.SafeRatio(revenue, spend)))}
	return writeTabular(w, data, cfg)
}

// PrintFunnel outputs the booking funnel of one period.
func PrintFunnel(week schema.FunnelWeek, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteFunnel(w, week, cfg)
	}, "Wrote funnel")
}

// WriteFunnel writes each funnel stage with its conversion from the previous stage.
func WriteFunnel(w io.Writer, week schema.FunnelWeek, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	steps := agg.FunnelSteps(week)

	data := tabular{
		title:     "Booking funnel " + week.Period,
		headers:   []string{"Stage", "Count", "Conversion"},
		csvHeader: []string{"period", "stage", "count", "conversion"},
		json: struct {
			Period string              `json:"period"`
			Steps  []schema.FunnelStep `json:"steps"`
		}{week.Period, steps},
	}
	for i, s := range steps {
		conv := fmtFloat(s.Pct) + "%"
		if i == 0 {
			conv = "-"
		}
		data.rows = append(data.rows, []string{s.Name, fmt.Sprintf("%.0f", s.Count), conv})
		data.csvRows = append(data.csvRows, []string{week.Period, s.Name, fmt.Sprintf("%.0f", s.Count), fmtFloat(s.Pct)})
	}
	if n := len(steps); n > 1 {
		data.footer = []string{fmt.Sprintf("End-to-end conversion: %s%%",
			fmtFloat(schema.SafePct(steps[n-1].Count, steps[0].Count)))}
	}
	return writeTabular(w, data, cfg)
}
