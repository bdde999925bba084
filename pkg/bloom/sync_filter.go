package bloom

import "sync"

// SyncFilter guards a Filter with a single read/write lock.
// Contains and Len share the lock; Add holds it exclusively.
type SyncFilter struct {
	filter Filter
	rwlock sync.RWMutex
}

// NewSyncFilter wraps filter. The caller must not use filter directly afterwards.
func NewSyncFilter(filter Filter) *SyncFilter {
	return &SyncFilter{filter: filter}
}

// Grab a write lock on the filter.
func (sf *SyncFilter) WLock() {
	sf.rwlock.Lock()
}

// Release a write lock on the filter.
func (sf *SyncFilter) WUnlock() {
	sf.rwlock.Unlock()
}

// Grab a read lock on the filter.
func (sf *SyncFilter) RLock() {
	sf.rwlock.RLock()
}

// Release a read lock on the filter.
func (sf *SyncFilter) RUnlock() {
	sf.rwlock.RUnlock()
}

// Unwrap returns the guarded filter. Hold the lock while using it.
func (sf *SyncFilter) Unwrap() Filter {
	return sf.filter
}

// Add inserts key under the write lock.
func (sf *SyncFilter) Add(key []byte) {
	sf.WLock()
	defer sf.WUnlock()
	sf.filter.Add(key)
}

// Contains tests key under the read lock.
func (sf *SyncFilter) Contains(key []byte) bool {
	sf.RLock()
	defer sf.RUnlock()
	return sf.filter.Contains(key)
}

// Len returns the wrapped filter's length under the read lock.
func (sf *SyncFilter) Len() int {
	sf.RLock()
	defer sf.RUnlock()
	return sf.filter.Len()
}

// TestAndAdd reports whether key was possibly present, adding it if not.
func (sf *SyncFilter) TestAndAdd(key []byte) bool {
	sf.WLock()
	defer sf.WUnlock()
	if sf.filter.Contains(key) {
		return true
	}
	sf.filter.Add(key)
	return false
}
