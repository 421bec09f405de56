package tickkit

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// Timer invokes a caller-supplied task periodically on a dedicated worker
// goroutine. At most one worker is alive per Timer at any time; starting a
// new run always joins the previous worker first, so two tasks are never
// concurrently active on one instance.
//
// Timer is safe for concurrent use. Start, Stop and Restart block until the
// worker they replace (or stop) has fully exited; Pause, Resume, SetInterval
// and all queries are non-blocking.
//
// The task must not call Stop, Start or Restart on its own Timer: those wait
// for the in-flight invocation to finish and would deadlock. Pause, Resume,
// SetInterval and the queries are safe to call from the task.
//
// Discarding a Timer without calling Stop leaks its worker goroutine.
type Timer struct {
	name string
	tags []Tag

	oneShot          bool
	startImmediately bool

	clock   Clock
	onPanic PanicHandler
	onTick  func(info TickInfo)

	// state is written only while holding mu (so a waiter checking it under
	// mu cannot miss the wake that follows), and read atomically anywhere to
	// keep the queries lock-free.
	state atomic.Int32 // State

	mu              sync.Mutex
	interval        time.Duration
	intervalChanged bool
	worker          chan struct{} // closed when the current worker exits; nil before first Start

	// wake stands in for a condition variable: capacity 1, token sent only
	// while holding mu, drained by the worker under mu before parking.
	wake chan struct{}

	// run stats, under mu; reset by Start.
	ticks        uint64
	lastTick     time.Time
	lastDuration time.Duration
	panicked     bool
	nextTick     time.Time

	// joinMu serializes the stop/join sequence so concurrent Stop, Start and
	// Restart calls are safe.
	joinMu sync.Mutex
}

// New creates a stopped Timer with the given tick interval.
//
// The interval must be > 0; otherwise New panics (configuration error).
func New(interval time.Duration, opts ...Option) *Timer {
	if interval <= 0 {
		panic(fmt.Sprintf("tickkit: New interval=%s is invalid (must be > 0)", interval))
	}
	c := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return &Timer{
		name:             c.name,
		tags:             cloneTags(c.tags),
		oneShot:          c.oneShot,
		startImmediately: c.startImmediately,
		clock:            c.clock,
		onPanic:          c.onPanic,
		onTick:           c.onTick,
		interval:         interval,
		wake:             make(chan struct{}, 1),
	}
}

// Start stops any existing run, then begins a new run executing task.
//
// The task is captured for the duration of the run and released when the
// worker exits (Stop, one-shot completion, or task panic). Unless
// WithStartImmediately is set, the first tick fires one interval after Start
// returns.
//
// Start panics if task is nil (configuration error).
func (t *Timer) Start(task Task) {
	if task == nil {
		panic("tickkit: Start called with nil task")
	}
	t.joinMu.Lock()
	defer t.joinMu.Unlock()

	t.stopAndJoin()

	done := make(chan struct{})
	t.mu.Lock()
	t.setStateLocked(StateRunning)
	t.intervalChanged = false
	t.drainWakeLocked() // discard a stale token left by the previous run
	t.worker = done
	t.ticks = 0
	t.lastTick = time.Time{}
	t.lastDuration = 0
	t.panicked = false
	t.mu.Unlock()

	go t.run(task, done)
}

// Stop transitions the timer to StateStopped and blocks until the worker has
// exited. It is idempotent, a no-op before any Start, and safe to call from
// multiple goroutines concurrently.
func (t *Timer) Stop() {
	t.joinMu.Lock()
	defer t.joinMu.Unlock()
	t.stopAndJoin()
}

// Restart is equivalent to Stop followed by Start(task): the old task is
// never invoked after Restart returns, and the new task's first tick fires
// one full interval later.
func (t *Timer) Restart(task Task) {
	t.Start(task)
}

// stopAndJoin requires joinMu to be held.
func (t *Timer) stopAndJoin() {
	t.mu.Lock()
	t.setStateLocked(StateStopped)
	t.wakeLocked()
	worker := t.worker
	t.mu.Unlock()

	if worker != nil {
		<-worker
	}
}

// Pause suspends ticking if the timer is running; otherwise it is a no-op.
// Non-blocking. An invocation already in flight is not interrupted.
func (t *Timer) Pause() {
	t.mu.Lock()
	if State(t.state.Load()) == StateRunning {
		t.setStateLocked(StatePaused)
	}
	t.mu.Unlock()
}

// Resume continues ticking if the timer is paused; otherwise it is a no-op.
// Non-blocking. Time elapsed before the pause is discarded: the next tick
// fires one full interval after Resume, never a partial remainder.
func (t *Timer) Resume() {
	t.mu.Lock()
	if State(t.state.Load()) == StatePaused {
		t.setStateLocked(StateRunning)
		t.wakeLocked()
	}
	t.mu.Unlock()
}

// SetInterval replaces the tick interval. Non-blocking.
//
// If a tick is pending under the old interval it is discarded: the next tick
// fires one new interval after this call, not after the remainder of the old
// one. If the timer is stopped, the new interval applies to the next run.
//
// The interval must be > 0; otherwise SetInterval panics (configuration
// error).
func (t *Timer) SetInterval(d time.Duration) {
	if d <= 0 {
		panic(fmt.Sprintf("tickkit: SetInterval(%s) is invalid (must be > 0)", d))
	}
	t.mu.Lock()
	t.interval = d
	t.intervalChanged = true
	t.wakeLocked()
	t.mu.Unlock()
}

// Interval returns the current tick interval.
func (t *Timer) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// State returns the current lifecycle state. It is lock-free.
func (t *Timer) State() State { return State(t.state.Load()) }

// IsRunning reports whether the timer is ticking.
func (t *Timer) IsRunning() bool { return t.State() == StateRunning }

// IsPaused reports whether the timer is paused.
func (t *Timer) IsPaused() bool { return t.State() == StatePaused }

// IsStopped reports whether the timer is stopped. After a task panic this
// becomes true; it is the only way such a failure is observable from the
// control surface.
func (t *Timer) IsStopped() bool { return t.State() == StateStopped }

// Status returns a point-in-time snapshot of the timer.
func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{
		Name:         t.name,
		Tags:         cloneTags(t.tags),
		State:        State(t.state.Load()),
		Interval:     t.interval,
		OneShot:      t.oneShot,
		TickCount:    t.ticks,
		LastTick:     t.lastTick,
		LastDuration: t.lastDuration,
		Panicked:     t.panicked,
		NextTick:     t.nextTick,
	}
}

// run is the worker loop. done is closed when the worker exits, which is the
// join point for stopAndJoin.
func (t *Timer) run(task Task, done chan struct{}) {
	defer close(done)

	t.mu.Lock()
	wt := t.clock.NewTimer(t.interval)
	defer wt.Stop()

	deadline := t.clock.Now().Add(t.interval)
	if t.startImmediately {
		deadline = t.clock.Now()
	}
	t.nextTick = deadline

	for {
		// t.mu is held at the top of every iteration.
		switch State(t.state.Load()) {
		case StateStopped:
			t.nextTick = time.Time{}
			t.mu.Unlock()
			return

		case StatePaused:
			// Park until a control signal. Elapsed time is discarded: after
			// leaving pause the wait is always one full interval.
			t.nextTick = time.Time{}
			t.drainWakeLocked()
			t.mu.Unlock()
			<-t.wake
			t.mu.Lock()
			deadline = t.clock.Now().Add(t.interval)
			t.nextTick = deadline
			continue
		}

		if t.intervalChanged {
			// Discard the pending tick: the new interval counts from the
			// moment of the change, not from the original schedule.
			t.intervalChanged = false
			deadline = t.clock.Now().Add(t.interval)
			t.nextTick = deadline
		}

		if remaining := deadline.Sub(t.clock.Now()); remaining > 0 {
			t.drainWakeLocked()
			resetWakeTimer(wt, remaining)
			t.mu.Unlock()
			select {
			case <-t.wake:
				// State or interval changed; re-evaluate.
				t.mu.Lock()
				continue
			case <-wt.C():
			}
			t.mu.Lock()
			if State(t.state.Load()) != StateRunning || t.intervalChanged {
				continue
			}
		}

		interval := t.interval
		t.mu.Unlock()

		// The tick: outside the lock, so Pause/Resume/SetInterval stay
		// non-blocking during a long-running task.
		p, stack, startedAt, finishedAt := t.invoke(task)

		t.mu.Lock()
		t.ticks++
		seq := t.ticks
		t.lastTick = startedAt
		t.lastDuration = finishedAt.Sub(startedAt)
		exiting := p != nil || t.oneShot
		if p != nil {
			t.panicked = true
		}
		if exiting {
			// Stopped directly, never via Stop: the worker must not join
			// itself.
			t.setStateLocked(StateStopped)
			t.nextTick = time.Time{}
		}
		t.mu.Unlock()

		if p != nil {
			t.reportPanic(p, stack)
		}
		if t.onTick != nil {
			callTickHookNoPanic(t.onTick, t.name, t.tags, TickInfo{
				Name:       t.name,
				Tags:       cloneTags(t.tags),
				Seq:        seq,
				StartedAt:  startedAt,
				FinishedAt: finishedAt,
				Duration:   finishedAt.Sub(startedAt),
				Panicked:   p != nil,
			})
		}
		if exiting {
			return
		}

		t.mu.Lock()
		// Advance from the previous deadline, not from the clock: this bounds
		// cumulative drift to the latency of a single task execution instead
		// of accumulating error across ticks.
		deadline = deadline.Add(interval)
		t.nextTick = deadline
	}
}

// invoke runs the task with panic containment. It takes no locks.
func (t *Timer) invoke(task Task) (p any, stack []byte, startedAt, finishedAt time.Time) {
	startedAt = t.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			p = r
			stack = debug.Stack()
		}
		finishedAt = t.clock.Now()
	}()
	task()
	return
}

func (t *Timer) reportPanic(p any, stack []byte) {
	info := PanicInfo{
		Name:  t.name,
		Tags:  cloneTags(t.tags),
		Value: p,
		Stack: stack,
	}
	if t.onPanic != nil {
		callPanicHandlerNoPanic(t.onPanic, info)
		return
	}
	reportPanicToStderr(info)
}

// setStateLocked requires t.mu to be held.
func (t *Timer) setStateLocked(s State) {
	t.state.Store(int32(s))
}

// wakeLocked signals the worker. It requires t.mu to be held, which is what
// makes the wake reliable: the worker only parks after checking state under
// the same mutex, so a token sent here is either consumed by the pending park
// or left in the buffer for the next one.
func (t *Timer) wakeLocked() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// drainWakeLocked discards a stale wake token. It requires t.mu to be held so
// that no signal sent after the drain can be lost.
func (t *Timer) drainWakeLocked() {
	select {
	case <-t.wake:
	default:
	}
}
