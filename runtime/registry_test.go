package runtime

import (
	"sng-lab/domain"
	"sng-lab/errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newRegisteredSession(t *testing.T, registry *Registry, createdAt time.Time) *sessionEntry {
	t.Helper()
	id, display := domain.NewSessionID()
	session := domain.NewSession(id, display, domain.Participant{ID: "u1", Name: "alice", Channel: "c1"}, 8, 2, createdAt)
	e, err := registry.add(session, NewTimerSet(nil))
	require.NoError(t, err)
	return e
}

func TestRegistry_AddAndLookup(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// Given one registered session
	e := newRegisteredSession(t, registry, time.Now())

	// Then it can be looked up
	found, ok := registry.lookup(e.session.ID)
	req.True(ok)
	req.Same(e, found)
	req.Equal(1, registry.Len())

	// When the same session is added twice
	_, err := registry.add(e.session, NewTimerSet(nil))

	// Then the registry refuses it
	req.ErrorIs(err, errors.ErrSessionExists)
}

func TestRegistry_With_UnknownOrEnded(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	e := newRegisteredSession(t, registry, time.Now())

	err := registry.with("missing", func(*sessionEntry) error { return nil })
	req.ErrorIs(err, errors.ErrSessionNotFound)

	// Given the session ended but is not removed yet
	req.NoError(e.session.End())

	called := false
	err = registry.with(e.session.ID, func(*sessionEntry) error {
		called = true
		return nil
	})

	// Then the callback never runs
	req.ErrorIs(err, errors.ErrSessionNotFound)
	req.False(called)
	req.Empty(registry.Snapshots())
}

func TestRegistry_RemoveOnlyMatchingEntry(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	e := newRegisteredSession(t, registry, time.Now())

	// When removing with a foreign entry
	registry.remove(e.session.ID, &sessionEntry{})

	// Then the session stays
	req.Equal(1, registry.Len())

	registry.remove(e.session.ID, e)
	req.Equal(0, registry.Len())
}

func TestRegistry_SnapshotsOldestFirst(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	now := time.Now()
	newer := newRegisteredSession(t, registry, now)
	older := newRegisteredSession(t, registry, now.Add(-time.Minute))

	ids := registry.IDs()

	req.Equal([]domain.SessionID{older.session.ID, newer.session.ID}, ids)
}

func TestRegistry_ConcurrentSessionsDoNotShareLock(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	a := newRegisteredSession(t, registry, time.Now())
	b := newRegisteredSession(t, registry, time.Now())

	// Given session a is locked for a while
	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = registry.with(a.session.ID, func(*sessionEntry) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	// When session b is used meanwhile
	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan struct{})
	go func() {
		defer wg.Done()
		_ = registry.with(b.session.ID, func(e *sessionEntry) error {
			_, err := e.session.ClaimSlot(3, time.Now())
			return err
		})
		close(done)
	}()

	// Then it is not blocked by a
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("session b waited on session a")
	}
	close(release)
	wg.Wait()
}
