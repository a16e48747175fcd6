package schema

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// usPrinter groups thousands the way the dashboard shows money.
var usPrinter = message.NewPrinter(language.AmericanEnglish)

// SafePct returns part/base*100, or 0 when base is zero or negative.
// The result is never NaN or infinite.
func SafePct(part, base float64) float64 {
	if base <= 0 || math.IsNaN(base) || math.IsNaN(part) {
		return 0
	}
	v := part / base * 100
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// SafeRatio returns num/den, or 0 when den is zero or negative.
func SafeRatio(num, den float64) float64 {
	if den <= 0 || math.IsNaN(den) || math.IsNaN(num) {
		return 0
	}
	return num / den
}

// FormatAmount formats v with thousands separators and two decimals.
func FormatAmount(v float64) string {
	return usPrinter.Sprintf("%.2f", v)
}

// FormatUSD formats v as US dollars, e.g. "$1,234.50" or "-$4,470.22".
func FormatUSD(v float64) string {
	if v < 0 {
		return "-$" + FormatAmount(math.Abs(v))
	}
	return "$" + FormatAmount(v)
}

// FormatDelta formats a change with a direction arrow and its percentage,
// e.g. "↑ +$1,200.00 (12.5%)" or "↓ –$300.00 (2.0%)".
func FormatDelta(diff, pct float64) string {
	var sb strings.Builder
	if diff >= 0 {
		sb.WriteString("↑ +$")
	} else {
		sb.WriteString("↓ –$")
	}
	sb.WriteString(FormatAmount(math.Abs(diff)))
	sb.WriteString(usPrinter.Sprintf(" (%.1f%%)", math.Abs(pct)))
	return sb.String()
}

// Round2 rounds v to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
