// Package tickzap provides small helpers to report tickkit panics via
// go.uber.org/zap.
//
// The handlers log synchronously on the timer's worker goroutine; they are
// cheap (structured fields, no formatting) but inherit whatever blocking
// behavior the zap core has.
package tickzap
