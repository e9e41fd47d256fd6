package runtime

import (
	"sync"
	"time"
)

type TimerKind int

const (
	TimerInactivity TimerKind = iota
	TimerRefresh
	TimerAutoEnd
)

func (k TimerKind) String() string {
	switch k {
	case TimerInactivity:
		return "inactivity"
	case TimerRefresh:
		return "refresh"
	case TimerAutoEnd:
		return "auto_end"
	default:
		return "unknown"
	}
}

type armedTimer struct {
	timer      *time.Timer
	generation uint64
}

// TimerSet holds at most one armed timer per kind for a single session.
// Every arm gets a new generation: a callback whose generation is no longer
// current when it fires is dropped, so a disarmed timer that already fired
// never reaches its callback.
type TimerSet struct {
	mu         sync.Mutex
	timers     map[TimerKind]armedTimer
	generation uint64
	stopped    bool
	tasks      *TaskGroup
}

func NewTimerSet(tasks *TaskGroup) *TimerSet {
	return &TimerSet{timers: make(map[TimerKind]armedTimer), tasks: tasks}
}

// Arm schedules fn once after d, replacing any armed timer of the same kind.
func (t *TimerSet) Arm(kind TimerKind, d time.Duration, fn func()) {
	t.schedule(kind, d, fn, false)
}

// Every schedules fn every d until the kind is disarmed.
func (t *TimerSet) Every(kind TimerKind, d time.Duration, fn func()) {
	t.schedule(kind, d, fn, true)
}

func (t *TimerSet) schedule(kind TimerKind, d time.Duration, fn func(), repeat bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopLocked(kind)
	t.generation++
	t.startLocked(kind, t.generation, d, fn, repeat)
}

func (t *TimerSet) startLocked(kind TimerKind, gen uint64, d time.Duration, fn func(), repeat bool) {
	timer := time.AfterFunc(d, func() {
		t.fire(kind, gen, d, fn, repeat)
	})
	t.timers[kind] = armedTimer{timer: timer, generation: gen}
}

func (t *TimerSet) fire(kind TimerKind, gen uint64, d time.Duration, fn func(), repeat bool) {
	t.mu.Lock()
	current, ok := t.timers[kind]
	if t.stopped || !ok || current.generation != gen {
		t.mu.Unlock()
		return
	}
	if repeat {
		t.startLocked(kind, gen, d, fn, repeat)
	} else {
		delete(t.timers, kind)
	}
	t.mu.Unlock()

	if t.tasks == nil {
		fn()
		return
	}
	t.tasks.Go(fn)
}

func (t *TimerSet) Disarm(kinds ...TimerKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, kind := range kinds {
		t.stopLocked(kind)
	}
}

func (t *TimerSet) stopLocked(kind TimerKind) {
	if current, ok := t.timers[kind]; ok {
		current.timer.Stop()
		delete(t.timers, kind)
	}
}

func (t *TimerSet) Armed(kind TimerKind) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.timers[kind]
	return ok
}

// StopAll cancels every timer and refuses new arms.
func (t *TimerSet) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	for kind := range t.timers {
		t.stopLocked(kind)
	}
}
