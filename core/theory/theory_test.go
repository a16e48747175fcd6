package theory

import (
	"strings"
	"testing"

	"github.com/huangsam/hotelpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModels(t *testing.T) {
	assert.Equal(t, []string{
		"Beachfront", "Bedbank", "Contact Center", "Downtown", "General",
		"OTAs", "Oceanfront", "The Fives Beach", "Web",
	}, Models())
}

func TestCompute(t *testing.T) {
	m := Compute(nil, Side{Gross: []float64{100, 200}, Cancellation: []float64{10, 40}})
	assert.InDelta(t, 300.0, m.TotalGross, 1e-9)
	assert.InDelta(t, 50.0, m.TotalCancel, 1e-9)
	assert.InDelta(t, 250.0, m.TotalNet, 1e-9, "net derived from gross minus cancellations")
	assert.InDelta(t, 70.0, m.NetVariation, 1e-9)
	assert.InDelta(t, 77.777, m.TrendPct, 1e-3)
	assert.InDelta(t, 15.0, m.MeanCancelPct, 1e-9)
	assert.True(t, m.Accelerating)

	m = Compute([]float64{300, 100}, Side{})
	assert.InDelta(t, -200.0, m.NetVariation, 1e-9, "net falls back to the totals")
	assert.False(t, m.Accelerating)
	assert.Equal(t, 0.0, m.MeanCancelPct)

	m = Compute([]float64{0, 100}, Side{Net: []float64{0, 50}, Gross: []float64{0, 60}, Cancellation: []float64{5, 10}})
	assert.InDelta(t, 50.0, m.NetVariation, 1e-9, "explicit net wins")
	assert.Equal(t, 0.0, m.TrendPct, "zero first net")
	assert.InDelta(t, 8.333, m.MeanCancelPct, 1e-3, "zero gross periods count as zero")

	assert.Equal(t, Metrics{Accelerating: true}, Compute(nil, Side{}))
}

func TestInterpret(t *testing.T) {
	otas := Interpret("OTAs", nil, Side{Gross: []float64{100, 200}, Cancellation: []float64{10, 40}})
	assert.Contains(t, otas, "**OTA Cannibalization**")
	assert.Contains(t, otas, "(**15.00%**)")

	general := Interpret("General", []float64{1000, 2500.5}, Side{})
	assert.Contains(t, general, "**1,500.50 USD**")
	assert.Contains(t, general, "accelerating aggregate demand")
	assert.Contains(t, general, "**0.00%**")
	assert.False(t, strings.HasPrefix(general, "\n"), "output is trimmed")

	slowing := Interpret("General", []float64{2000, 1000}, Side{})
	assert.Contains(t, slowing, "**-1,000.00 USD**")
	assert.Contains(t, slowing, "decelerating aggregate demand")

	contact := Interpret("Contact Center", nil, Side{Gross: []float64{100, 300}, Cancellation: []float64{1, 3}})
	assert.Contains(t, contact, "growing net line")
	assert.Contains(t, contact, "**1.00%**")
}

func TestInterpretSummary(t *testing.T) {
	web := Interpret("Web", nil, Side{Gross: []float64{66057.14, 100086.50}, Cancellation: []float64{610, 6960}})
	assert.True(t, strings.HasPrefix(web, "## Period summary"))
	assert.Contains(t, web, "- Total gross: $166,143.64")
	assert.Contains(t, web, "- Total cancellations: $7,570.00")
	assert.Contains(t, web, "- Total net: $158,573.64")
	assert.Contains(t, web, "- Mean cancellation: 3.94%")
	assert.Contains(t, web, "- Net variation: ▲ $27,679.36 (42.3%)")
	assert.Contains(t, web, "## Marketing model\n\nThe direct channel (Web)")

	falling := Interpret("General", []float64{2000, 1000}, Side{})
	assert.Contains(t, falling, "- Net variation: ▼ $1,000.00 (-50.0%)")
	assert.Contains(t, falling, "- Total gross: $0.00")

	flat := Interpret("General", []float64{0, 0}, Side{})
	assert.Contains(t, flat, "- Net variation: ▲ $0.00 (0.0%)", "zero first period")
}

func TestInterpretEveryModel(t *testing.T) {
	side := Side{Gross: []float64{28790.59, 24094.74}, Cancellation: []float64{16630.40, 5336.32}}
	for _, name := range Models() {
		t.Run(name, func(t *testing.T) {
			out := Interpret(name, nil, side)
			assert.NotEqual(t, Fallback, out)
			assert.Contains(t, out, "**Strategic recommendation:**")
			assert.NotContains(t, out, "<no value>")
		})
	}
}

func TestInterpretFallback(t *testing.T) {
	for _, name := range []string{"", "general", "The Fives Oceanfront", "models", "Unknown"} {
		assert.Equal(t, Fallback, Interpret(name, []float64{1, 2}, Side{}), name)
	}
	assert.Equal(t, "No model defined for this channel.", Fallback)
}

func TestInterpretDeterministic(t *testing.T) {
	side := Side{Gross: []float64{1, 2, 3}, Cancellation: []float64{0.1, 0.2, 0.3}}
	assert.Equal(t, Interpret("Web", nil, side), Interpret("Web", nil, side))
}

func TestSideOf(t *testing.T) {
	side := SideOf(schema.Triplet{Gross: []float64{1}, Cancellation: []float64{2}, Net: []float64{3}})
	assert.Equal(t, Side{Gross: []float64{1}, Cancellation: []float64{2}, Net: []float64{3}}, side)
}

func TestInterpretOverview(t *testing.T) {
	dataset := schema.Dataset{
		{Name: "TTOO", Values: []float64{100, 200}},
		{Name: "OTAs", Values: []float64{50, 20}},
	}
	out := InterpretOverview("Oceanfront Hotel", []string{"W1", "W2"}, dataset,
		Side{Gross: []float64{100, 100}, Cancellation: []float64{20, 20}})

	assert.True(t, strings.HasPrefix(out, "## Oceanfront Hotel - Overview"))
	assert.Contains(t, out, "- First period: $150.00")
	assert.Contains(t, out, "- Last period: $220.00")
	assert.Contains(t, out, "- Absolute change: $70.00")
	assert.Contains(t, out, "- Relative change: 46.67%")
	assert.Contains(t, out, "- #1 TTOO: $300.00")
	assert.Contains(t, out, "- #2 OTAs: $70.00")
	assert.Contains(t, out, "- Lowest channel: OTAs ($70.00)")
	assert.Contains(t, out, "Overall cancellation rate: 20.00%")
	assert.Contains(t, out, "TTOO is the dominant channel")
	assert.Contains(t, out, "Destination Image Theory")
	assert.Contains(t, out, "cancellation rate is above 15%")
	assert.NotContains(t, out, "Healthy cancellation rate")
	assert.Contains(t, out, "Reduce dependence on TTOO")
}

func TestInterpretOverviewBranches(t *testing.T) {
	periods := []string{"W1", "W2"}

	web := InterpretOverview("Media", periods, schema.Dataset{{Name: "Web", Values: []float64{5, 5}}},
		Side{Gross: []float64{100}, Cancellation: []float64{5}})
	assert.Contains(t, web, "Direct Booking Funnel Theory")
	assert.Contains(t, web, "Healthy cancellation rate")
	assert.NotContains(t, web, "- #2", "a single channel has no runner-up")

	otas := InterpretOverview("Mix", periods, schema.Dataset{{Name: "OTAs", Values: []float64{1, 1}}}, Side{})
	assert.Contains(t, otas, "Price Sensitivity & Visibility Model")
	assert.NotContains(t, otas, "cancellation rate")

	empty := InterpretOverview("Empty", nil, nil, Side{})
	assert.Contains(t, empty, "- First period: $0.00")
	assert.Contains(t, empty, "- Relative change: 0.00%")
	assert.Contains(t, empty, "No single theory pattern stands out")
	assert.NotContains(t, empty, "Reduce dependence")
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("**Production**\n\n- First period: $150.00\n- Last period: $220.00\n")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Production</strong>")
	assert.Contains(t, html, "<li>First period: $150.00</li>")

	html, err = RenderHTML(Interpret("General", []float64{1, 2}, Side{}))
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Revenue Velocity Theory (RVT)</strong>")
	assert.Contains(t, html, "<pre><code>")
}
