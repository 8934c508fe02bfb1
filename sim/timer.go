package sim

import "sort"

// timer is one scheduled callback. A zero interval marks a one-shot.
type timer struct {
	name      string
	fireAt    uint64
	interval  uint64
	callback  func()
	cancelled bool
}

// TimerService owns every named, cancellable, re-armable timer of one level
// session. Timers are tick-driven: nothing fires between Advance calls, so
// callbacks always run on the simulation goroutine and guard conditions can
// be re-checked at fire time. Re-arming a name cancels and replaces any
// prior timer with that name; a single CancelAll on teardown revokes every
// outstanding callback.
//
// The service is not safe for concurrent use; it is owned by the session
// that drives it.
type TimerService struct {
	now    uint64
	timers map[string]*timer
}

// NewTimerService creates an empty timer service.
func NewTimerService() *TimerService {
	return &TimerService{timers: make(map[string]*timer)}
}

// Now returns the current tick count.
func (ts *TimerService) Now() uint64 {
	return ts.now
}

// After arms a one-shot timer that fires after delay ticks. Any existing
// timer with the same name is replaced. A zero delay fires on the next
// Advance.
func (ts *TimerService) After(name string, delay uint64, callback func()) {
	if old, ok := ts.timers[name]; ok {
		old.cancelled = true
	}
	ts.timers[name] = &timer{
		name:     name,
		fireAt:   ts.now + delay,
		callback: callback,
	}
}

// Every arms a repeating timer that fires every interval ticks until
// cancelled. Any existing timer with the same name is replaced. The interval
// must be at least one tick.
func (ts *TimerService) Every(name string, interval uint64, callback func()) {
	if interval == 0 {
		interval = 1
	}
	if old, ok := ts.timers[name]; ok {
		old.cancelled = true
	}
	ts.timers[name] = &timer{
		name:     name,
		fireAt:   ts.now + interval,
		interval: interval,
		callback: callback,
	}
}

// Cancel revokes the named timer. Cancelling a missing or already-cancelled
// timer is a no-op.
func (ts *TimerService) Cancel(name string) {
	if t, ok := ts.timers[name]; ok {
		t.cancelled = true
		delete(ts.timers, name)
	}
}

// CancelAll revokes every outstanding timer. A leaked timer firing after
// level teardown would mutate state for a level that no longer exists, so
// teardown calls this unconditionally.
func (ts *TimerService) CancelAll() {
	for name, t := range ts.timers {
		t.cancelled = true
		delete(ts.timers, name)
	}
}

// Active reports whether a timer with the given name is armed.
func (ts *TimerService) Active(name string) bool {
	_, ok := ts.timers[name]
	return ok
}

// Advance moves the clock one tick forward and fires every due timer.
// One-shots are removed before their callback runs, so a callback may re-arm
// its own name; repeating timers advance by their interval. Callbacks run in
// name order for deterministic behavior.
func (ts *TimerService) Advance() {
	ts.now++

	var due []*timer
	for _, t := range ts.timers {
		if t.fireAt <= ts.now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].name < due[j].name })

	for _, t := range due {
		// A callback earlier in this batch may have cancelled this one.
		if t.cancelled {
			continue
		}
		if t.interval == 0 {
			delete(ts.timers, t.name)
		} else {
			t.fireAt += t.interval
		}
		t.callback()
	}
}
