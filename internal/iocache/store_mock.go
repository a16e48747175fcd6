package iocache

import (
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetKVStore implements the StoreManager interface.
func (m *MockStoreManager) GetKVStore() contract.KVStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.KVStore)
	return store
}

// GetPositionStore implements the StoreManager interface.
func (m *MockStoreManager) GetPositionStore() contract.PositionStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.PositionStore)
	return store
}

// MockKVStore is a mock implementation of KVStore for testing.
type MockKVStore struct {
	mock.Mock
}

var _ contract.KVStore = &MockKVStore{} // Compile-time check

// GetItem implements the KVStore interface.
func (m *MockKVStore) GetItem(key string) (string, bool, error) {
	args := m.Called(key)
	return args.String(0), args.Bool(1), args.Error(2)
}

// SetItem implements the KVStore interface.
func (m *MockKVStore) SetItem(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// DeleteItem implements the KVStore interface.
func (m *MockKVStore) DeleteItem(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// Keys implements the KVStore interface.
func (m *MockKVStore) Keys(prefix string) ([]string, error) {
	args := m.Called(prefix)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// GetStatus implements the KVStore interface.
func (m *MockKVStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the KVStore interface.
func (m *MockKVStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPositionStore is a mock implementation of PositionStore for testing.
type MockPositionStore struct {
	mock.Mock
}

var _ contract.PositionStore = &MockPositionStore{} // Compile-time check

// Save implements the PositionStore interface.
func (m *MockPositionStore) Save(chartID string, index int, x, y float64) error {
	args := m.Called(chartID, index, x, y)
	return args.Error(0)
}

// Load implements the PositionStore interface.
func (m *MockPositionStore) Load(chartID string) schema.Overrides {
	args := m.Called(chartID)
	overrides, _ := args.Get(0).(schema.Overrides)
	if overrides == nil {
		return schema.Overrides{}
	}
	return overrides
}

// Reset implements the PositionStore interface.
func (m *MockPositionStore) Reset(chartID string) error {
	args := m.Called(chartID)
	return args.Error(0)
}

// Charts implements the PositionStore interface.
func (m *MockPositionStore) Charts() ([]string, error) {
	args := m.Called()
	charts, _ := args.Get(0).([]string)
	return charts, args.Error(1)
}

// Snapshot implements the PositionStore interface.
func (m *MockPositionStore) Snapshot() ([]schema.ChartOverride, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.ChartOverride)
	return rows, args.Error(1)
}
