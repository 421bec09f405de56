package tickkit

import (
	"fmt"
	"time"
)

// Task is the caller-supplied function executed on every tick.
//
// The task runs on the timer's worker goroutine, never concurrently with
// another invocation of itself, and never while the timer's control lock is
// held (control calls made during a long-running task take effect after the
// task returns). A panic escaping the task is fatal to the current run: it is
// recovered, reported via the configured panic handler (or stderr by
// default), and the timer transitions to StateStopped.
type Task func()

// State is the lifecycle state of a Timer.
type State int32

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Tag is a lightweight key/value pair carried by panic reports and tick info.
// Tags are kept as a slice to preserve insertion order for stable output.
type Tag struct {
	Key   string
	Value string
}

// PanicHandler is called when the task panics.
//
// The handler runs on the worker goroutine, after the timer has already
// transitioned to StateStopped. Panics in the handler are contained: they are
// recovered and reported to stderr.
type PanicHandler func(info PanicInfo)

// PanicInfo describes a panic recovered at the task boundary.
type PanicInfo struct {
	Name  string
	Tags  []Tag
	Value any
	Stack []byte
}

// TickInfo is passed to the OnTick hook after every task invocation,
// including the one that panicked.
type TickInfo struct {
	Name string
	Tags []Tag

	// Seq is 1 for the first invocation of a run and increments per tick.
	// It resets when a new run begins (Start/Restart).
	Seq uint64

	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration

	Panicked bool
}

// Status is a point-in-time snapshot of a Timer.
type Status struct {
	Name string
	Tags []Tag

	State    State
	Interval time.Duration
	OneShot  bool

	// TickCount is the number of invocations in the current/most recent run.
	TickCount uint64

	LastTick     time.Time
	LastDuration time.Duration

	// Panicked reports whether the current/most recent run ended because the
	// task panicked. It resets when a new run begins.
	Panicked bool

	// NextTick is the worker's current deadline. Zero when no worker is
	// waiting (stopped, or parked in pause).
	NextTick time.Time
}

func cloneTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}
