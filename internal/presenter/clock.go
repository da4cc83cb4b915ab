package presenter

import "time"

// Clock defines an interface for getting the current time.
// This allows us to inject a fake time during unit tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual server system time.
type RealClock struct{}

func (c RealClock) Now() time.Time {
	return time.Now()
}

// MockClock implements Clock for testing specific scenarios.
// e.g., "Pretend the countdown started 5 seconds ago"
type MockClock struct {
	MockTime time.Time
}

func (m *MockClock) Now() time.Time {
	return m.MockTime
}

// Advance moves the mock time forward.
func (m *MockClock) Advance(d time.Duration) {
	m.MockTime = m.MockTime.Add(d)
}

// CancelFunc stops a pending timer. Safe to call more than once.
type CancelFunc func()

// Scheduler schedules one-shot callbacks. The overlay engine owns three
// independent timers (countdown tick, message rotation, announcement
// auto-hide); routing them through this interface keeps the timer-driven
// paths testable without sleeping.
type Scheduler interface {
	After(d time.Duration, fn func()) CancelFunc
}

// RealScheduler implements Scheduler with time.AfterFunc.
type RealScheduler struct{}

func (RealScheduler) After(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler implements Scheduler for tests. Scheduled callbacks pile up
// until the test fires them explicitly.
type ManualScheduler struct {
	pending []*manualTimer
}

type manualTimer struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

func (m *ManualScheduler) After(d time.Duration, fn func()) CancelFunc {
	t := &manualTimer{d: d, fn: fn}
	m.pending = append(m.pending, t)
	return func() { t.cancelled = true }
}

// FireNext runs the oldest pending non-cancelled callback.
// Returns false if nothing was pending.
func (m *ManualScheduler) FireNext() bool {
	for len(m.pending) > 0 {
		t := m.pending[0]
		m.pending = m.pending[1:]
		if t.cancelled {
			continue
		}
		t.fn()
		return true
	}
	return false
}

// PendingCount reports how many live callbacks are queued.
func (m *ManualScheduler) PendingCount() int {
	n := 0
	for _, t := range m.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}
