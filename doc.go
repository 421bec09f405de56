// Package tickkit provides a single-instance, cancellable periodic task
// timer: one background worker repeatedly invokes a caller-supplied function
// at a fixed interval, with runtime control to pause, resume, change the
// interval, restart with a new task, or stop and synchronously tear down.
//
// tickkit is intentionally small and standard-library flavored in its core:
// it targets single-process applications that need lightweight scheduled
// callbacks (heartbeats, polling, periodic flushes) without a full scheduler.
// It is not a multi-timer scheduler or worker pool (each Timer manages
// exactly one worker), and it gives no hard real-time guarantee: tick
// accuracy is bounded by the host scheduler's wake latency.
//
// # Lifecycle
//
// A Timer cycles through three states: stopped, running, paused.
//
//	t := tickkit.New(10 * time.Second)
//	t.Start(flushCache)
//	defer t.Stop()
//
// Start replaces any existing run: it first stops and joins the previous
// worker, so two tasks are never active on one Timer at the same time.
// Restart(task) is the same operation under its intent-revealing name.
//
// Stop is blocking and idempotent: it waits for an in-flight invocation to
// finish and for the worker to exit, and extra Stop calls (including before
// any Start) are no-ops. Stop is the teardown operation; call it before
// discarding a Timer. Do NOT call Stop (or Start/Restart) from inside the
// task itself: that waits on the task's own completion and deadlocks.
//
// Pause, Resume, SetInterval and the state queries are non-blocking.
// Requested transitions that do not apply (Pause while stopped, Resume while
// running, ...) are silently absorbed as no-ops.
//
// # Scheduling semantics
//
// By default the first tick fires one interval after Start; use
// WithStartImmediately(true) to fire immediately. After each tick the next
// deadline is the previous deadline plus one interval (not "now plus one
// interval"), so timing error does not accumulate across ticks; a single
// slow task execution is the bound on drift.
//
// Resume always begins a fresh, full interval: time elapsed before a pause is
// discarded, never resumed as a partial remainder.
//
// SetInterval takes effect at once: a tick pending under the old interval is
// discarded and the new interval counts from the moment of the call. While
// stopped, SetInterval simply configures the next run.
//
// A one-shot timer (WithOneShot(true)) stops itself after its first
// invocation.
//
// # Failure containment
//
// A panic escaping the task is fatal to the current run: it is recovered at
// the invocation boundary, the Timer transitions to stopped, and the panic is
// reported via WithPanicHandler (or to stderr by default). Nothing is
// retried, no error is returned from any control operation, and the Timer
// remains reusable: a later Start begins a fresh run. After-the-fact,
// failure is observable via IsStopped and Status().Panicked.
//
// Logger integrations for panic reports live in the adapter subpackages
// tickslog, tickzap, tickzerolog and ticklogrus.
//
// # Observability
//
// State() (and IsRunning/IsPaused/IsStopped) are atomic, lock-free reads.
// Status() returns a fuller snapshot: tick count, last tick time and
// duration, next deadline, and the panicked flag. WithOnTick registers a
// synchronous hook observing every invocation.
//
// # Custom time source
//
// The worker waits on a [WakeTimer] produced by a [Clock]; by default these
// wrap [time.Now] and [time.NewTimer]. WithClock substitutes another source,
// which is mainly useful for deterministic scheduling tests.
package tickkit
