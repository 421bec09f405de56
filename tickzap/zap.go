package tickzap

import (
	"go.uber.org/zap"

	"github.com/evan-idocoding/tickkit"
)

// PanicHandler returns a tickkit.PanicHandler that logs recovered task panics
// at zap's Error level.
//
// If logger is nil, a no-op logger is used.
func PanicHandler(logger *zap.Logger) tickkit.PanicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(info tickkit.PanicInfo) {
		logger.Error("timer task panicked", fields(info)...)
	}
}

func fields(info tickkit.PanicInfo) []zap.Field {
	out := make([]zap.Field, 0, 4)
	if info.Name != "" {
		out = append(out, lfdTimer(info.Name))
	}
	for _, t := range info.Tags {
		out = append(out, zap.String(t.Key, t.Value))
	}
	out = append(out, lfdValue(info.Value))
	if len(info.Stack) > 0 {
		out = append(out, lfdStack(info.Stack))
	}
	return out
}

func lfdTimer(name string) zap.Field {
	return zap.String("timer", name)
}

func lfdValue(v any) zap.Field {
	return zap.Any("value", v)
}

func lfdStack(stack []byte) zap.Field {
	return zap.ByteString("stack", stack)
}
