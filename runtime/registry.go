package runtime

import (
	"cmp"
	"fmt"
	"slices"
	"sng-lab/domain"
	"sng-lab/errors"
	"sync"
	"sync/atomic"
)

// sessionEntry owns one live session.
// mu serializes every read and write of the session; ending is the
// single-acquire termination latch, checked without the lock as a fast path.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
	timers  *TimerSet
	ending  atomic.Bool
}

// Registry is the only shared mutable state of the coordinator.
// Its own lock only guards the map; work on a session happens under the entry lock,
// so different sessions never contend.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[domain.SessionID]*sessionEntry)}
}

func (r *Registry) add(session *domain.Session, timers *TimerSet) (*sessionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrSessionExists, session.ID)
	}
	e := &sessionEntry{session: session, timers: timers}
	r.sessions[session.ID] = e
	return e, nil
}

func (r *Registry) lookup(id domain.SessionID) (*sessionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	return e, ok
}

// with runs fn under the session lock.
// Unknown and ended sessions both report errors.ErrSessionNotFound.
func (r *Registry) with(id domain.SessionID, fn func(e *sessionEntry) error) error {
	e, ok := r.lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrSessionNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.Phase == domain.PhaseEnded {
		return fmt.Errorf("%w: %s", errors.ErrSessionNotFound, id)
	}
	return fn(e)
}

// remove deletes the entry only if it is still the one registered under its id.
func (r *Registry) remove(id domain.SessionID, e *sessionEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.sessions[id]; ok && current == e {
		delete(r.sessions, id)
	}
}

func (r *Registry) entries() []*sessionEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]*sessionEntry, 0, len(r.sessions))
	for _, e := range r.sessions {
		res = append(res, e)
	}
	return res
}

// IDs lists the registered sessions, oldest first.
func (r *Registry) IDs() []domain.SessionID {
	snapshots := r.Snapshots()
	ids := make([]domain.SessionID, 0, len(snapshots))
	for _, s := range snapshots {
		ids = append(ids, s.ID)
	}
	return ids
}

// Snapshots copies every live session, oldest first.
func (r *Registry) Snapshots() []domain.Snapshot {
	var res []domain.Snapshot
	for _, e := range r.entries() {
		e.mu.Lock()
		if e.session.Phase != domain.PhaseEnded {
			res = append(res, e.session.Snapshot())
		}
		e.mu.Unlock()
	}
	slices.SortFunc(res, func(a, b domain.Snapshot) int {
		return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	})
	return res
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
