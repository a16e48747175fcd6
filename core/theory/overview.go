package theory

import (
	"fmt"
	"strings"

	"github.com/huangsam/hotelpulse/core/agg"
	"github.com/huangsam/hotelpulse/schema"
)

// Cancellation thresholds in percent.
const (
	highCancelPct    = 15
	healthyCancelPct = 8
)

// InterpretOverview summarizes a multi-series section: first and last period
// totals, the channel ranking and theory notes keyed on the dominant channel.
// When side carries gross and cancellation figures the overall cancellation
// rate is reported too.
func InterpretOverview(name string, periods []string, dataset schema.Dataset, side Side) string {
	totals := agg.ComputeTotals(periods, dataset)
	ranked := schema.RankSeries(totals)

	var first, last float64
	if n := len(totals.PerPeriod); n > 0 {
		first, last = totals.PerPeriod[0], totals.PerPeriod[n-1]
	}
	diff := last - first

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s - Overview\n\n", name)

	sb.WriteString("**Production**\n\n")
	fmt.Fprintf(&sb, "- First period: %s\n", schema.FormatUSD(first))
	fmt.Fprintf(&sb, "- Last period: %s\n", schema.FormatUSD(last))
	fmt.Fprintf(&sb, "- Absolute change: %s\n", schema.FormatUSD(diff))
	fmt.Fprintf(&sb, "- Relative change: %.2f%%\n\n", schema.SafePct(diff, first))

	top := ""
	if len(ranked) > 0 {
		top = ranked[0].Name
		sb.WriteString("**Channel ranking**\n\n")
		for _, r := range ranked[:min(2, len(ranked))] {
			fmt.Fprintf(&sb, "- #%d %s: %s\n", r.Rank, r.Name, schema.FormatUSD(r.Total))
		}
		bottom := ranked[len(ranked)-1]
		fmt.Fprintf(&sb, "- Lowest channel: %s (%s)\n\n", bottom.Name, schema.FormatUSD(bottom.Total))
	}

	cancelKnown := len(side.Gross) > 0 && len(side.Cancellation) > 0
	var cancelRate float64
	if cancelKnown {
		cancelRate = agg.CancellationRate(side.Gross, side.Cancellation)
		fmt.Fprintf(&sb, "Overall cancellation rate: %.2f%%\n\n", cancelRate)
	}

	sb.WriteString("**Theory-based reading**\n\n")
	for _, note := range theoryNotes(name, top, cancelKnown, cancelRate) {
		fmt.Fprintf(&sb, "- %s\n", note)
	}
	sb.WriteString("\n**Recommendations**\n\n")
	for _, rec := range recommendations(top) {
		fmt.Fprintf(&sb, "- %s\n", rec)
	}
	return strings.TrimSpace(sb.String())
}

func theoryNotes(name, top string, cancelKnown bool, cancelRate float64) []string {
	var notes []string
	switch top {
	case "TTOO":
		notes = append(notes, "TTOO is the dominant channel, a sign of reliance on pre-negotiated contracts, "+
			"low price elasticity and volume strategies. Under **Channel Mix Optimization Theory** this "+
			"steadies occupancy but caps the achievable ADR.")
	case "OTAs":
		notes = append(notes, "OTAs as the main channel reflect high price elasticity and strong competition. "+
			"The **Price Sensitivity & Visibility Model** says better ranking and visibility lift revenue right away.")
	case "Directo", "Web":
		notes = append(notes, "The direct channel leads. Under **Direct Booking Funnel Theory** the hotel is "+
			"capturing high-intent demand at a low acquisition cost. Tuning the funnel raises ROAS and "+
			"reduces OTA dependence.")
	}
	if strings.Contains(strings.ToLower(name), "oceanfront") {
		notes = append(notes, "Oceanfront fits **Destination Image Theory (Gallarza, 2002)**: European and "+
			"Canadian markets favor boutique, less crowded hotels with strong visual appeal. This lifts the "+
			"international mix, ADR and conversion.")
	}
	if cancelKnown && cancelRate > highCancelPct {
		notes = append(notes, "The cancellation rate is above 15%, which points to rate parity issues, "+
			"flexible rates or impulse OTA bookings.")
	}
	if cancelKnown && cancelRate < healthyCancelPct {
		notes = append(notes, "Healthy cancellation rate (<8%), a sign of firmer demand and lower volatility.")
	}
	if len(notes) == 0 {
		notes = append(notes, "No single theory pattern stands out for this mix.")
	}
	return notes
}

func recommendations(top string) []string {
	recs := make([]string, 0, 5)
	if top != "" {
		recs = append(recs, fmt.Sprintf("Reduce dependence on %s by adjusting the mix to improve ADR.", top))
	}
	return append(recs,
		"Apply a Win The Search strategy: visibility, parity and conversion.",
		"Strengthen direct campaigns with added value rather than discounts.",
		"Review lead time per channel to adjust spend by season.",
		"Use cancellation data to calibrate flexible versus non-refundable policies.",
	)
}
