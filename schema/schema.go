// Package schema has the data types shared across the dashboard packages.
package schema

// Series is a named ordered sequence of values, one per period.
type Series struct {
	Name   string    `json:"name" yaml:"name" validate:"required"`
	Values []float64 `json:"values" yaml:"values"`
	Color  string    `json:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,hexcolor"`
}

// At returns the value for period i, treating a missing entry as zero.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s.Values) {
		return 0
	}
	return s.Values[i]
}

// Sum returns the total of all values in the series.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Dataset is an ordered set of series aligned to the same periods.
// Order is insertion order and is used to break ranking ties.
type Dataset []Series

// Lookup returns the series with the given name.
func (d Dataset) Lookup(name string) (Series, bool) {
	for _, s := range d {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Names returns series names in insertion order.
func (d Dataset) Names() []string {
	names := make([]string, 0, len(d))
	for _, s := range d {
		names = append(names, s.Name)
	}
	return names
}

// SeriesTotal is the total of one series over all periods.
type SeriesTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Variation is the change between two totals.
type Variation struct {
	Abs float64 `json:"abs"`
	Pct float64 `json:"pct"`
}

// Totals is the result of aggregating a dataset over its periods.
type Totals struct {
	Periods   []string      `json:"periods"`
	PerPeriod []float64     `json:"per_period"`
	PerSeries []SeriesTotal `json:"per_series"` // insertion order
	Ranking   []string      `json:"ranking"`    // descending by total
	Variation Variation     `json:"variation"`
}

// SeriesTotalOf returns the total for the named series, or zero.
func (t Totals) SeriesTotalOf(name string) float64 {
	for _, st := range t.PerSeries {
		if st.Name == name {
			return st.Total
		}
	}
	return 0
}

// GrandTotal returns the sum of all per-period totals.
func (t Totals) GrandTotal() float64 {
	var total float64
	for _, v := range t.PerPeriod {
		total += v
	}
	return total
}

// Triplet holds the gross, cancellation and net figures of one channel.
type Triplet struct {
	Gross        []float64 `json:"gross" yaml:"gross"`
	Cancellation []float64 `json:"cancellation" yaml:"cancellation"`
	Net          []float64 `json:"net" yaml:"net"`
	Bookings     []int     `json:"bookings,omitempty" yaml:"bookings,omitempty"`
}

// IsZero reports whether the triplet carries no figures.
func (t Triplet) IsZero() bool {
	return len(t.Gross) == 0 && len(t.Cancellation) == 0 && len(t.Net) == 0
}
