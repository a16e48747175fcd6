package schema

// RankedSeries adds presentation data to a SeriesTotal.
type RankedSeries struct {
	Rank  int     `json:"rank"`
	Share float64 `json:"share"` // percent of the grand total
	SeriesTotal
}

// RankSeries returns the series totals in ranking order with rank and share.
func RankSeries(t Totals) []RankedSeries {
	grand := t.GrandTotal()
	out := make([]RankedSeries, 0, len(t.Ranking))
	for i, name := range t.Ranking {
		total := t.SeriesTotalOf(name)
		out = append(out, RankedSeries{
			Rank:        i + 1,
			Share:       SafePct(total, grand),
			SeriesTotal: SeriesTotal{Name: name, Total: total},
		})
	}
	return out
}

// TopBottom splits a ranking into its first n and last n entries.
// Entries are not repeated when the ranking is shorter than 2n.
func TopBottom(ranked []RankedSeries, n int) (top, bottom []RankedSeries) {
	if n <= 0 || len(ranked) == 0 {
		return nil, nil
	}
	if n >= len(ranked) {
		return ranked, nil
	}
	top = ranked[:n]
	start := max(len(ranked)-n, n)
	bottom = ranked[start:]
	return top, bottom
}
