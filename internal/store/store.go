// Package store holds the current normalized event set. The whole set is
// swapped atomically on each successful fetch and tagged with a version so
// consumers can detect staleness; nothing is ever patched in place.
package store

import (
	"sync"
	"time"

	"github.com/DEREKLIN1429/dereknou114/internal/feed"
)

// Snapshot is an immutable view of the event set at a point in time.
type Snapshot struct {
	Events    []feed.TruckEvent `json:"events"`
	FetchedAt time.Time         `json:"fetchedAt"`
	Version   uint64            `json:"version"`
}

// SnapshotStore provides thread-safe atomic replacement of the event set.
type SnapshotStore struct {
	mu      sync.RWMutex
	current Snapshot
}

// NewSnapshotStore creates an empty store at version 0.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Replace swaps in a new event set and bumps the version counter.
func (s *SnapshotStore) Replace(events []feed.TruckEvent, fetchedAt time.Time) Snapshot {
	// Copy so later mutation of the caller's slice cannot leak into readers.
	owned := make([]feed.TruckEvent, len(events))
	copy(owned, events)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Snapshot{
		Events:    owned,
		FetchedAt: fetchedAt,
		Version:   s.current.Version + 1,
	}
	return s.current
}

// Current returns the latest snapshot. The contained slice must be treated
// as read-only by callers.
func (s *SnapshotStore) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Version returns the current version counter without copying the snapshot.
func (s *SnapshotStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Version
}
