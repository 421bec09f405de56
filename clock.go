package tickkit

import "time"

// A WakeTimer works just like [time.Timer], and the worker waits for its next
// deadline by waiting on the time event emitted by a WakeTimer. By default,
// [time.Timer] is used. You can customize the source with [WithClock] to
// control scheduling behavior, e.g. in tests.
type WakeTimer interface {
	C() <-chan time.Time
	Reset(d time.Duration) bool
	Stop() bool
}

// Clock is the worker's time source. Now must be monotonic with respect to
// scheduling: values produced by Now and timers produced by NewTimer must
// agree, and neither may jump with wall-clock adjustments. The standard
// library satisfies this because [time.Time] carries a monotonic reading.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) WakeTimer
}

type stdClock struct{}

func (stdClock) Now() time.Time { return time.Now() }

func (stdClock) NewTimer(d time.Duration) WakeTimer {
	return &stdWakeTimer{t: time.NewTimer(d)}
}

type stdWakeTimer struct {
	t *time.Timer
}

func (w *stdWakeTimer) C() <-chan time.Time { return w.t.C }

func (w *stdWakeTimer) Reset(d time.Duration) bool { return w.t.Reset(d) }

func (w *stdWakeTimer) Stop() bool { return w.t.Stop() }

// resetWakeTimer re-arms w for d, discarding a stale fire left in the channel
// by a wait that ended early.
func resetWakeTimer(w WakeTimer, d time.Duration) {
	if !w.Stop() {
		select {
		case <-w.C():
		default:
		}
	}
	w.Reset(d)
}
