package stats

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/google/uuid"
)

// Snapshot is one memoized aggregation pass. Callers must treat Merged as
// read-only; filters and sorts return fresh slices.
type Snapshot struct {
	Merged  []StudentStatus
	Stats   Statistics
	Orphans OrphanReport
}

type memoKey struct {
	examID      uuid.UUID
	fingerprint string
}

// Memo caches snapshots keyed by exam id and a fingerprint of the source
// rows. A changed fingerprint is a miss, so stale snapshots are never served.
type Memo struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewMemo returns a Memo with room for maxEntries snapshots (0 = unbounded).
func NewMemo(maxEntries int) *Memo {
	return &Memo{cache: lru.New(maxEntries)}
}

func (m *Memo) Get(examID uuid.UUID, fingerprint string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.cache.Get(memoKey{examID, fingerprint})
	if !ok {
		return Snapshot{}, false
	}
	return v.(Snapshot), true
}

func (m *Memo) Put(examID uuid.UUID, fingerprint string, snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Add(memoKey{examID, fingerprint}, snap)
}

func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

// GetOrCompute returns the cached snapshot or stores the result of compute.
// A failed compute stores nothing.
func (m *Memo) GetOrCompute(examID uuid.UUID, fingerprint string, compute func() (Snapshot, error)) (Snapshot, bool, error) {
	if snap, ok := m.Get(examID, fingerprint); ok {
		return snap, true, nil
	}
	snap, err := compute()
	if err != nil {
		return Snapshot{}, false, err
	}
	m.Put(examID, fingerprint, snap)
	return snap, false, nil
}
