// Package dataset provides the dashboard sections, ad results and funnel data,
// either built in or loaded from a YAML, JSON or XLSX file.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/hotelpulse/schema"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

// ErrUnknownSection is returned when a section id is not part of the bundle.
var ErrUnknownSection = errors.New("unknown section")

// Bundle is everything the dashboard draws from.
type Bundle struct {
	Sections []schema.Section   `json:"sections" yaml:"sections" validate:"required,min=1,unique=ID,dive"`
	Ads      *schema.AdCampaign `json:"ads,omitempty" yaml:"ads,omitempty" validate:"omitempty"`
	Funnel   []schema.FunnelWeek `json:"funnel,omitempty" yaml:"funnel,omitempty" validate:"dive"`
}

// Builtin returns the bundled dashboard data.
func Builtin() (*Bundle, error) {
	return Parse(builtinYAML, ".yaml")
}

// Load returns the bundle at path, or the built-in bundle when path is empty.
func Load(path string) (*Bundle, error) {
	if path == "" {
		return Builtin()
	}
	return LoadFile(path)
}

// LoadFile reads a bundle from a .yaml, .yml, .json or .xlsx file.
func LoadFile(path string) (*Bundle, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return loadWorkbook(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return Parse(data, ext)
}

// Parse decodes a bundle from YAML or JSON bytes and validates it.
// JSON is a subset of YAML, so both go through the YAML decoder.
func Parse(data []byte, ext string) (*Bundle, error) {
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}

	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	b.normalize()
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Section returns the section with the given id.
func (b *Bundle) Section(id string) (schema.Section, error) {
	for _, s := range b.Sections {
		if s.ID == id {
			return s, nil
		}
	}
	return schema.Section{}, fmt.Errorf("%w: %s", ErrUnknownSection, id)
}

// SectionForChart returns the section drawn on the given chart.
func (b *Bundle) SectionForChart(chartID string) (schema.Section, error) {
	for _, s := range b.Sections {
		if s.ChartID() == chartID {
			return s, nil
		}
	}
	return schema.Section{}, fmt.Errorf("%w: no section draws %s", ErrUnknownSection, chartID)
}

// SectionIDs lists section ids in bundle order.
func (b *Bundle) SectionIDs() []string {
	ids := make([]string, 0, len(b.Sections))
	for _, s := range b.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// FunnelWeek returns the funnel of one period.
func (b *Bundle) FunnelWeek(period string) (schema.FunnelWeek, bool) {
	i := slices.IndexFunc(b.Funnel, func(w schema.FunnelWeek) bool { return w.Period == period })
	if i < 0 {
		return schema.FunnelWeek{}, false
	}
	return b.Funnel[i], true
}

// normalize aligns every series to its section's periods, padding missing
// values with zero and dropping extras.
func (b *Bundle) normalize() {
	for i := range b.Sections {
		sec := &b.Sections[i]
		n := len(sec.Periods)
		for j := range sec.Series {
			sec.Series[j].Values = fit(sec.Series[j].Values, n)
		}
		if !sec.Triplet.IsZero() {
			sec.Triplet.Gross = fit(sec.Triplet.Gross, n)
			sec.Triplet.Cancellation = fit(sec.Triplet.Cancellation, n)
			if len(sec.Triplet.Net) > 0 {
				sec.Triplet.Net = fit(sec.Triplet.Net, n)
			}
		}
	}
	if b.Ads != nil {
		n := len(b.Ads.Periods)
		b.Ads.Spend = fit(b.Ads.Spend, n)
		b.Ads.Clicks = fit(b.Ads.Clicks, n)
		b.Ads.Leads = fit(b.Ads.Leads, n)
		b.Ads.Revenue = fit(b.Ads.Revenue, n)
	}
}

func fit(values []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, values)
	return out
}
