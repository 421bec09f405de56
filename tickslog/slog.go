package tickslog

import (
	"log/slog"

	"github.com/evan-idocoding/tickkit"
)

// PanicHandler returns a tickkit.PanicHandler that logs recovered task panics
// at slog.LevelError.
//
// If logger is nil, slog.Default() is used (resolved at report time, so a
// later slog.SetDefault is respected).
func PanicHandler(logger *slog.Logger) tickkit.PanicHandler {
	return func(info tickkit.PanicInfo) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		l.Error("timer task panicked", attrs(info)...)
	}
}

func attrs(info tickkit.PanicInfo) []any {
	out := make([]any, 0, 4)
	if info.Name != "" {
		out = append(out, slog.String("timer", info.Name))
	}
	for _, t := range info.Tags {
		out = append(out, slog.String(t.Key, t.Value))
	}
	out = append(out, slog.Any("value", info.Value))
	if len(info.Stack) > 0 {
		out = append(out, slog.String("stack", string(info.Stack)))
	}
	return out
}
