// Package iocache holds the durable storage backends for commit caching
// and run tracking.
package iocache

import (
	"sync"

	"github.com/repominer/repominer/internal/contract"
)

// StoreManagerImpl manages the commit cache store and the run store.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	commits      contract.CacheStore
	runs         contract.RunStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetCommitStore returns the commit CacheStore.
func (mgr *StoreManagerImpl) GetCommitStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.commits
}

// GetRunStore returns the RunStore.
func (mgr *StoreManagerImpl) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
