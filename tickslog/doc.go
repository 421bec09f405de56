// Package tickslog provides small helpers to report tickkit panics via
// log/slog.
//
// It bridges tickkit's handler-based reporting and slog constructs. The
// handlers log synchronously on the timer's worker goroutine; point them at a
// non-blocking slog.Handler if the logger may stall.
package tickslog
