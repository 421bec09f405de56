// Package tickzerolog provides small helpers to report tickkit panics via
// github.com/rs/zerolog.
package tickzerolog
