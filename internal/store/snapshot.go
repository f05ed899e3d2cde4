package store

import (
	"sync"
	"time"

	"github.com/supercweida/weida-picks/pkg/models"
)

// Snapshot is one fetch's raw payload plus when it landed. It is
// immutable once stored; aggregation re-derives rows from it on
// every request.
type Snapshot struct {
	Games     []models.RawGame
	FetchedAt time.Time
}

// Store holds the single cached snapshot between explicit refreshes.
// Replace swaps it wholesale; a failed fetch never touches it. The
// mutex only guards the slot pointer — handlers read concurrently
// while a refresh is in flight.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// New creates an empty store. Current reports no data until the
// first Replace.
func New() *Store {
	return &Store{}
}

// Replace installs a new snapshot and returns it.
func (s *Store) Replace(games []models.RawGame) *Snapshot {
	snap := &Snapshot{
		Games:     games,
		FetchedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	return snap
}

// Current returns the cached snapshot, or false if nothing has been
// fetched yet.
func (s *Store) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, false
	}

	return s.snap, true
}
