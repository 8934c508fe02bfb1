package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// advance ticks the service n times.
func advance(ts *TimerService, n int) {
	for i := 0; i < n; i++ {
		ts.Advance()
	}
}

func TestTimerAfter(t *testing.T) {
	t.Run("FiresOnceAtDelay", func(t *testing.T) {
		ts := NewTimerService()
		fired := 0
		ts.After("fuse", 3, func() { fired++ })

		advance(ts, 2)
		assert.Equal(t, 0, fired, "one-shot fired before its delay")

		ts.Advance()
		assert.Equal(t, 1, fired)
		assert.False(t, ts.Active("fuse"), "one-shot is still armed after firing")

		advance(ts, 5)
		assert.Equal(t, 1, fired, "one-shot fired more than once")
	})

	t.Run("ZeroDelayFiresNextAdvance", func(t *testing.T) {
		ts := NewTimerService()
		fired := false
		ts.After("fuse", 0, func() { fired = true })
		ts.Advance()
		assert.True(t, fired)
	})

	t.Run("CallbackMayRearmOwnName", func(t *testing.T) {
		ts := NewTimerService()
		fired := 0
		var arm func()
		arm = func() {
			fired++
			if fired < 3 {
				ts.After("fuse", 2, arm)
			}
		}
		ts.After("fuse", 2, arm)

		advance(ts, 6)
		assert.Equal(t, 3, fired)
		assert.False(t, ts.Active("fuse"))
	})
}

func TestTimerEvery(t *testing.T) {
	t.Run("FiresEveryInterval", func(t *testing.T) {
		ts := NewTimerService()
		fired := 0
		ts.Every("pulse", 2, func() { fired++ })

		advance(ts, 7)
		assert.Equal(t, 3, fired)
		assert.True(t, ts.Active("pulse"), "repeating timer disarmed itself")
	})

	t.Run("ZeroIntervalClampedToOneTick", func(t *testing.T) {
		ts := NewTimerService()
		fired := 0
		ts.Every("pulse", 0, func() { fired++ })

		advance(ts, 3)
		assert.Equal(t, 3, fired)
	})
}

func TestTimerCancel(t *testing.T) {
	t.Run("CancelledTimerNeverFires", func(t *testing.T) {
		ts := NewTimerService()
		fired := false
		ts.After("fuse", 2, func() { fired = true })
		ts.Cancel("fuse")

		advance(ts, 5)
		assert.False(t, fired)
		assert.False(t, ts.Active("fuse"))
	})

	t.Run("CancelIsIdempotent", func(t *testing.T) {
		ts := NewTimerService()
		ts.After("fuse", 2, func() {})

		ts.Cancel("fuse")
		ts.Cancel("fuse")
		ts.Cancel("never-armed")
	})

	t.Run("CallbackMayCancelLaterTimerInSameBatch", func(t *testing.T) {
		// Both timers are due on the same tick; callbacks run in name
		// order, so "a" can revoke "b" before it runs.
		ts := NewTimerService()
		bFired := false
		ts.After("a", 1, func() { ts.Cancel("b") })
		ts.After("b", 1, func() { bFired = true })

		ts.Advance()
		assert.False(t, bFired, "cancelled timer fired from the due batch")
	})

	t.Run("CancelAllRevokesEverything", func(t *testing.T) {
		ts := NewTimerService()
		fired := 0
		ts.After("a", 1, func() { fired++ })
		ts.Every("b", 1, func() { fired++ })
		ts.CancelAll()

		advance(ts, 3)
		assert.Equal(t, 0, fired)
		assert.False(t, ts.Active("a"))
		assert.False(t, ts.Active("b"))
	})
}

func TestTimerRearm(t *testing.T) {
	t.Run("RearmReplacesPendingTimer", func(t *testing.T) {
		ts := NewTimerService()
		var order []string
		ts.After("fuse", 1, func() { order = append(order, "old") })
		ts.After("fuse", 3, func() { order = append(order, "new") })

		advance(ts, 5)
		assert.Equal(t, []string{"new"}, order, "replaced timer still fired")
	})

	t.Run("RearmRepeatingTimerResetsInterval", func(t *testing.T) {
		ts := NewTimerService()
		fired := 0
		ts.Every("pulse", 2, func() { fired++ })
		advance(ts, 2)
		assert.Equal(t, 1, fired)

		ts.Every("pulse", 4, func() { fired += 10 })
		advance(ts, 4)
		assert.Equal(t, 11, fired)
	})
}
