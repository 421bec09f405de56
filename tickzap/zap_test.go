package tickzap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/evan-idocoding/tickkit"
)

func TestPanicHandler_LogsNameTagsAndValue(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	h := PanicHandler(zap.New(core))

	h(tickkit.PanicInfo{
		Name:  "job",
		Tags:  []tickkit.Tag{{Key: "component", Value: "cache"}},
		Value: "boom",
		Stack: []byte("goroutine 1 [running]:"),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "timer task panicked", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "job", fields["timer"])
	require.Equal(t, "cache", fields["component"])
	require.Equal(t, "boom", fields["value"])
}

func TestPanicHandler_NilLogger_DoesNotPanic(t *testing.T) {
	t.Parallel()

	h := PanicHandler(nil)
	require.NotPanics(t, func() { h(tickkit.PanicInfo{Value: "x"}) })
}

func TestPanicHandler_WiredIntoTimer(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)

	tm := tickkit.New(10*time.Millisecond,
		tickkit.WithName("flaky"),
		tickkit.WithPanicHandler(PanicHandler(zap.New(core))),
	)
	tm.Start(func() { panic("boom") })
	defer tm.Stop()

	require.Eventually(t, tm.IsStopped, 2*time.Second, 2*time.Millisecond)
	require.Eventually(t, func() bool { return logs.Len() == 1 }, 2*time.Second, 2*time.Millisecond)

	entry := logs.All()[0]
	require.Equal(t, "flaky", entry.ContextMap()["timer"])
	require.NotEmpty(t, entry.ContextMap()["stack"])
}
