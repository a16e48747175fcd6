// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/huangsam/hotelpulse/schema"

// KVStore defines the string-keyed store underneath the position store.
// This allows mocking the backend for testing.
type KVStore interface {
	// GetItem returns the value for key and whether it exists.
	GetItem(key string) (string, bool, error)

	// SetItem writes value under key, replacing any previous value.
	SetItem(key, value string) error

	// DeleteItem removes key. Deleting a missing key is not an error.
	DeleteItem(key string) error

	// Keys lists all keys starting with prefix, sorted.
	Keys(prefix string) ([]string, error)

	// GetStatus returns status information about the store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}

// PositionStore persists dragged annotation positions per chart.
type PositionStore interface {
	// Save upserts the override for one annotation index. Last write wins.
	Save(chartID string, index int, x, y float64) error

	// Load returns the overrides of a chart, or an empty mapping. It never fails.
	Load(chartID string) schema.Overrides

	// Reset drops every override of a chart.
	Reset(chartID string) error

	// Charts lists the chart identifiers that have overrides.
	Charts() ([]string, error)

	// Snapshot flattens all overrides for listing and export.
	Snapshot() ([]schema.ChartOverride, error)
}

// StoreManager defines the interface for managing the dashboard stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetKVStore() KVStore
	GetPositionStore() PositionStore
}

// Renderer is the charting surface the dashboard draws on.
type Renderer interface {
	// CreateOrUpdateChart draws the series of a chart, replacing any previous drawing.
	CreateOrUpdateChart(targetID string, series schema.Dataset, layout schema.ChartLayout) error

	// UpdateAnnotations replaces the labels of a chart. Unknown targets are ignored.
	UpdateAnnotations(targetID string, annotations []schema.Annotation) error
}

// AxisQuerier exposes the current axis ranges and plot size of a rendered chart.
type AxisQuerier interface {
	Axes(targetID string) (x, y schema.AxisQuery, ok bool)
}

// PixelInverter converts a pixel position on a rendered chart to data coordinates.
// Renderers that implement it take precedence over the linear axis approximation.
type PixelInverter interface {
	PixelToData(targetID string, px, py float64) (x, y float64, ok bool)
}

// ChartLocator reports where a rendered chart was written.
type ChartLocator interface {
	ChartPath(targetID string) string
}
