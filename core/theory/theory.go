// Package theory turns section figures into hospitality-marketing prose.
// Every function is pure and deterministic.
package theory

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"slices"
	"strings"
	"text/template"

	"github.com/huangsam/hotelpulse/core/agg"
	"github.com/huangsam/hotelpulse/schema"
)

// Fallback is returned when no model matches the series name.
const Fallback = "No model defined for this channel."

//go:embed models.md.tmpl
var modelsText string

//go:embed summary.md.tmpl
var summaryText string

const rootName = "models"

var funcs = template.FuncMap{
	"usd": schema.FormatAmount,
	"pct": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"abs": math.Abs,
}

var (
	models  = template.Must(template.New(rootName).Funcs(funcs).Parse(modelsText))
	summary = template.Must(template.New("summary").Funcs(funcs).Parse(summaryText))
)

// Side carries the gross, cancellation and net figures of a channel.
// Any of them may be empty.
type Side struct {
	Gross        []float64
	Cancellation []float64
	Net          []float64
}

// SideOf returns the side figures of a triplet.
func SideOf(t schema.Triplet) Side {
	return Side{Gross: t.Gross, Cancellation: t.Cancellation, Net: t.Net}
}

// Metrics are the figures a model template reads.
type Metrics struct {
	TotalGross    float64
	TotalCancel   float64
	TotalNet      float64
	NetVariation  float64 // last net minus first net
	TrendPct      float64 // NetVariation relative to the first net
	MeanCancelPct float64
	Accelerating  bool
}

// Compute derives the template metrics. Net falls back to gross minus
// cancellations, then to the per-period totals.
func Compute(totals []float64, side Side) Metrics {
	net := side.Net
	if len(net) == 0 && len(side.Gross) > 0 {
		net = agg.NetSeries(side.Gross, side.Cancellation)
	}
	if len(net) == 0 {
		net = totals
	}

	m := Metrics{
		TotalGross:    agg.Sum(side.Gross),
		TotalCancel:   agg.Sum(side.Cancellation),
		TotalNet:      agg.Sum(net),
		MeanCancelPct: agg.MeanCancellationPct(side.Gross, side.Cancellation),
	}
	if len(net) > 0 {
		m.NetVariation = net[len(net)-1] - net[0]
		m.TrendPct = schema.SafePct(m.NetVariation, net[0])
	}
	m.Accelerating = m.NetVariation >= 0
	return m
}

// Models lists the series names that have an interpretation model.
func Models() []string {
	var names []string
	for _, t := range models.Templates() {
		if t.Name() != rootName {
			names = append(names, t.Name())
		}
	}
	slices.Sort(names)
	return names
}

// HasModel reports whether name matches a model exactly.
func HasModel(name string) bool {
	return name != rootName && models.Lookup(name) != nil
}

// Interpret renders the period summary followed by the model registered
// under name. Matching is exact; unknown names yield Fallback.
func Interpret(name string, totals []float64, side Side) string {
	if !HasModel(name) {
		return Fallback
	}
	m := Compute(totals, side)
	var buf bytes.Buffer
	if err := summary.Execute(&buf, m); err != nil {
		return Fallback
	}
	buf.WriteString("\n")
	if err := models.ExecuteTemplate(&buf, name, m); err != nil {
		return Fallback
	}
	return strings.TrimSpace(buf.String())
}
