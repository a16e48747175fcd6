package render

import (
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockRenderer is a mock implementation of Renderer and AxisQuerier for testing.
type MockRenderer struct {
	mock.Mock
}

var (
	_ contract.Renderer    = &MockRenderer{} // Compile-time check
	_ contract.AxisQuerier = &MockRenderer{} // Compile-time check
)

// CreateOrUpdateChart implements the Renderer interface.
func (m *MockRenderer) CreateOrUpdateChart(targetID string, series schema.Dataset, layout schema.ChartLayout) error {
	args := m.Called(targetID, series, layout)
	return args.Error(0)
}

// UpdateAnnotations implements the Renderer interface.
func (m *MockRenderer) UpdateAnnotations(targetID string, annotations []schema.Annotation) error {
	args := m.Called(targetID, annotations)
	return args.Error(0)
}

// Axes implements the AxisQuerier interface.
func (m *MockRenderer) Axes(targetID string) (schema.AxisQuery, schema.AxisQuery, bool) {
	args := m.Called(targetID)
	x, _ := args.Get(0).(schema.AxisQuery)
	y, _ := args.Get(1).(schema.AxisQuery)
	return x, y, args.Bool(2)
}
