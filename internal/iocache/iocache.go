package iocache

import (
	"sync"

	"github.com/huangsam/hotelpulse/internal/contract"
)

// StoreManager manages the key-value store and the position store built on it.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	kv           contract.KVStore
	positions    *PositionStoreImpl
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetKVStore returns the backing KVStore.
func (mgr *StoreManager) GetKVStore() contract.KVStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.kv
}

// GetPositionStore returns the PositionStore.
func (mgr *StoreManager) GetPositionStore() contract.PositionStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.positions == nil {
		return nil
	}
	return mgr.positions
}

// Positions returns the concrete position store for status and export.
func (mgr *StoreManager) Positions() *PositionStoreImpl {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.positions
}
