package ovlkit

import "time"

// Clock abstracts time for the lifecycle core so auto-hide countdowns are
// deterministic under test. Production code uses the real clock; tests use
// FakeClock from this package's test harness.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancelable countdown armed through a Clock.
type Timer interface {
	// Stop cancels the timer. Reports whether the cancellation prevented
	// the callback from firing.
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{time.AfterFunc(d, f)}
}

type realTimer struct{ t *time.Timer }

func (rt realTimer) Stop() bool { return rt.t.Stop() }
