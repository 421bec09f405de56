package tickzerolog

import (
	"github.com/rs/zerolog"

	"github.com/evan-idocoding/tickkit"
)

// PanicHandler returns a tickkit.PanicHandler that logs recovered task panics
// at zerolog's error level.
//
// The handler logs synchronously on the timer's worker goroutine.
func PanicHandler(logger zerolog.Logger) tickkit.PanicHandler {
	return func(info tickkit.PanicInfo) {
		ev := logger.Error()
		if info.Name != "" {
			ev = ev.Str("timer", info.Name)
		}
		for _, t := range info.Tags {
			ev = ev.Str(t.Key, t.Value)
		}
		ev = ev.Interface("value", info.Value)
		if len(info.Stack) > 0 {
			ev = ev.Bytes("stack", info.Stack)
		}
		ev.Msg("timer task panicked")
	}
}
