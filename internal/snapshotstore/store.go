package snapshotstore

import (
	"sync/atomic"
	"time"

	"github.com/specialistvlad/ciproject/internal/resolve"
)

// Snapshot is one accepted, resolved configuration.
type Snapshot struct {
	Tree     *resolve.Tree
	Version  uint64
	LoadedAt time.Time
}

// Store is an in-memory holder of the current Snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64
	now     func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// Publish replaces the current snapshot with tree and returns the new
// snapshot. Versions start at 1 and grow by one per publish.
func (s *Store) Publish(tree *resolve.Tree) *Snapshot {
	snap := &Snapshot{
		Tree:     tree,
		Version:  s.version.Add(1),
		LoadedAt: s.now(),
	}
	s.current.Store(snap)
	return snap
}

// Current returns the latest published snapshot, or false if nothing has been
// published yet.
func (s *Store) Current() (*Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}
