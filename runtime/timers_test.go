package runtime

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimerSet_ArmFiresOnce(t *testing.T) {
	req := require.New(t)
	timers := NewTimerSet(nil)
	var calls atomic.Int32

	timers.Arm(TimerInactivity, 10*time.Millisecond, func() { calls.Add(1) })
	req.True(timers.Armed(TimerInactivity))

	req.Eventually(func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	req.Equal(int32(1), calls.Load())
	req.False(timers.Armed(TimerInactivity))
}

func TestTimerSet_RearmReplacesPrevious(t *testing.T) {
	req := require.New(t)
	timers := NewTimerSet(nil)
	var first, second atomic.Int32

	// Given an armed timer
	timers.Arm(TimerAutoEnd, 20*time.Millisecond, func() { first.Add(1) })

	// When the same kind is armed again
	timers.Arm(TimerAutoEnd, 20*time.Millisecond, func() { second.Add(1) })

	// Then only the latest instance fires
	req.Eventually(func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	req.Equal(int32(0), first.Load())
}

func TestTimerSet_EveryRepeatsUntilDisarmed(t *testing.T) {
	req := require.New(t)
	timers := NewTimerSet(nil)
	var ticks atomic.Int32

	timers.Every(TimerRefresh, 5*time.Millisecond, func() { ticks.Add(1) })
	req.Eventually(func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)

	timers.Disarm(TimerRefresh)
	req.False(timers.Armed(TimerRefresh))
	settled := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	// At most one tick already in flight may land after disarm
	req.LessOrEqual(ticks.Load(), settled+1)
}

func TestTimerSet_StaleGenerationIsDropped(t *testing.T) {
	req := require.New(t)
	timers := NewTimerSet(nil)
	var calls atomic.Int32

	timers.Arm(TimerInactivity, time.Hour, func() { calls.Add(1) })
	timers.mu.Lock()
	gen := timers.timers[TimerInactivity].generation
	timers.mu.Unlock()

	// Given the timer was disarmed after its callback had been scheduled
	timers.Disarm(TimerInactivity)

	// When the stale wake-up arrives anyway
	timers.fire(TimerInactivity, gen, time.Hour, func() { calls.Add(1) }, false)

	// Then nothing runs
	req.Equal(int32(0), calls.Load())
}

func TestTimerSet_StopAllRefusesNewArms(t *testing.T) {
	req := require.New(t)
	timers := NewTimerSet(nil)
	var calls atomic.Int32

	timers.Arm(TimerInactivity, 10*time.Millisecond, func() { calls.Add(1) })
	timers.Every(TimerRefresh, 10*time.Millisecond, func() { calls.Add(1) })
	timers.StopAll()
	timers.Arm(TimerAutoEnd, 10*time.Millisecond, func() { calls.Add(1) })

	time.Sleep(50 * time.Millisecond)
	req.Equal(int32(0), calls.Load())
	req.False(timers.Armed(TimerAutoEnd))
}

func TestTimerSet_CallbacksRunInTaskGroup(t *testing.T) {
	req := require.New(t)
	tasks := NewTaskGroup()
	timers := NewTimerSet(tasks)
	var calls atomic.Int32

	timers.Arm(TimerAutoEnd, 5*time.Millisecond, func() {
		time.Sleep(20 * time.Millisecond)
		calls.Add(1)
	})
	time.Sleep(15 * time.Millisecond)

	// When the group is drained
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	req.NoError(tasks.CloseAndWait(ctx))

	// Then the in-flight callback finished first
	req.Equal(int32(1), calls.Load())
	req.False(tasks.Go(func() {}))
}

func TestTaskGroup_CloseAndWaitTimeout(t *testing.T) {
	req := require.New(t)
	tasks := NewTaskGroup()
	block := make(chan struct{})
	defer close(block)
	req.True(tasks.Go(func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := tasks.CloseAndWait(ctx)

	req.ErrorIs(err, context.DeadlineExceeded)
	select {
	case <-tasks.Closing():
	default:
		req.Fail("closing channel should be closed")
	}
}
