package iocache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"go.uber.org/zap"
)

// positionKeyPrefix prefixes every chart's storage key.
const positionKeyPrefix = "pos_"

// ErrKeyNotFound is returned when a requested override does not exist.
var ErrKeyNotFound = errors.New("key not found")

// PositionStoreImpl stores each chart's overrides as one JSON object keyed by
// the string-encoded annotation index.
type PositionStoreImpl struct {
	mu     sync.Mutex // serializes read-modify-write cycles
	kv     contract.KVStore
	logger *zap.Logger
}

var _ contract.PositionStore = &PositionStoreImpl{} // Compile-time check

// NewPositionStore wraps a KVStore. A nil logger discards load warnings.
func NewPositionStore(kv contract.KVStore, logger *zap.Logger) *PositionStoreImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PositionStoreImpl{kv: kv, logger: logger}
}

// PositionKey returns the storage key of a chart.
func PositionKey(chartID string) string {
	return positionKeyPrefix + chartID
}

// Save implements the PositionStore interface.
func (ps *PositionStoreImpl) Save(chartID string, index int, x, y float64) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	overrides, err := ps.read(chartID)
	if err != nil {
		return err
	}
	overrides[index] = schema.Position{X: x, Y: y}
	return ps.write(chartID, overrides)
}

// Load implements the PositionStore interface.
func (ps *PositionStoreImpl) Load(chartID string) schema.Overrides {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.load(chartID)
}

// Get returns a single override or ErrKeyNotFound.
func (ps *PositionStoreImpl) Get(chartID string, index int) (schema.Position, error) {
	pos, ok := ps.Load(chartID)[index]
	if !ok {
		return schema.Position{}, fmt.Errorf("override %d on %s: %w", index, chartID, ErrKeyNotFound)
	}
	return pos, nil
}

// Reset implements the PositionStore interface.
func (ps *PositionStoreImpl) Reset(chartID string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.kv.DeleteItem(PositionKey(chartID))
}

// Charts implements the PositionStore interface.
func (ps *PositionStoreImpl) Charts() ([]string, error) {
	keys, err := ps.kv.Keys(positionKeyPrefix)
	if err != nil {
		return nil, err
	}
	charts := make([]string, 0, len(keys))
	for _, key := range keys {
		chartID := strings.TrimPrefix(key, positionKeyPrefix)
		if len(ps.Load(chartID)) > 0 {
			charts = append(charts, chartID)
		}
	}
	return charts, nil
}

// Snapshot implements the PositionStore interface.
// Rows are ordered by chart then index.
func (ps *PositionStoreImpl) Snapshot() ([]schema.ChartOverride, error) {
	charts, err := ps.Charts()
	if err != nil {
		return nil, err
	}

	var rows []schema.ChartOverride
	for _, chartID := range charts {
		overrides := ps.Load(chartID)
		indices := make([]int, 0, len(overrides))
		for i := range overrides {
			indices = append(indices, i)
		}
		sort.Ints(indices)
		for _, i := range indices {
			pos := overrides[i]
			rows = append(rows, schema.ChartOverride{ChartID: chartID, Index: i, X: pos.X, Y: pos.Y})
		}
	}
	return rows, nil
}

// Status returns the backing store status with the override count filled in.
func (ps *PositionStoreImpl) Status() (schema.StoreStatus, error) {
	status, err := ps.kv.GetStatus()
	if err != nil {
		return status, err
	}
	rows, err := ps.Snapshot()
	if err != nil {
		return status, err
	}
	status.TotalOverrides = len(rows)
	return status, nil
}

// load reads a chart's overrides. Backend errors are logged and treated as
// no overrides.
func (ps *PositionStoreImpl) load(chartID string) schema.Overrides {
	overrides, err := ps.read(chartID)
	if err != nil {
		ps.logger.Warn("failed to read positions", zap.String("chart", chartID), zap.Error(err))
		return schema.Overrides{}
	}
	return overrides
}

// read returns a chart's overrides or the backend error. Malformed values
// are logged and dropped.
func (ps *PositionStoreImpl) read(chartID string) (schema.Overrides, error) {
	overrides := schema.Overrides{}

	raw, ok, err := ps.kv.GetItem(PositionKey(chartID))
	if err != nil {
		return nil, fmt.Errorf("failed to read positions for %s: %w", chartID, err)
	}
	if !ok || raw == "" {
		return overrides, nil
	}

	var encoded map[string]schema.Position
	if err := json.Unmarshal([]byte(raw), &encoded); err != nil {
		ps.logger.Warn("discarding malformed positions", zap.String("chart", chartID), zap.Error(err))
		return overrides, nil
	}
	for k, pos := range encoded {
		index, err := schema.ParseOverrideIndex(k)
		if err != nil {
			ps.logger.Warn("skipping malformed index", zap.String("chart", chartID), zap.String("index", k))
			continue
		}
		overrides[index] = pos
	}
	return overrides, nil
}

func (ps *PositionStoreImpl) write(chartID string, overrides schema.Overrides) error {
	encoded := make(map[string]schema.Position, len(overrides))
	for i, pos := range overrides {
		encoded[strconv.Itoa(i)] = pos
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("failed to encode positions: %w", err)
	}
	if err := ps.kv.SetItem(PositionKey(chartID), string(data)); err != nil {
		return fmt.Errorf("failed to save positions for %s: %w", chartID, err)
	}
	return nil
}
