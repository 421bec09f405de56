package tickkit

import (
	"bytes"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
)

var stderrMu sync.Mutex

func reportPanicToStderr(info PanicInfo) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tickkit: task panic")
	if info.Name != "" {
		fmt.Fprintf(&buf, " name=%q", info.Name)
	}
	if len(info.Tags) > 0 {
		fmt.Fprintf(&buf, " tags=%s", formatTags(info.Tags))
	}
	fmt.Fprintf(&buf, " value=%v\n", info.Value)
	if len(info.Stack) > 0 {
		_, _ = buf.Write(info.Stack)
		if info.Stack[len(info.Stack)-1] != '\n' {
			_ = buf.WriteByte('\n')
		}
	}

	stderrMu.Lock()
	_, _ = os.Stderr.Write(buf.Bytes())
	stderrMu.Unlock()
}

func formatTags(tags []Tag) string {
	// Keep insertion order for stable output.
	var b strings.Builder
	b.WriteByte('{')
	for i, t := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%q", t.Key, t.Value)
	}
	b.WriteByte('}')
	return b.String()
}

func callPanicHandlerNoPanic(h PanicHandler, info PanicInfo) {
	defer func() {
		if p := recover(); p != nil {
			// A secondary panic from a user handler must not take down the
			// worker before it has finished tearing the run down.
			reportPanicToStderr(PanicInfo{
				Name:  info.Name,
				Tags:  info.Tags,
				Value: fmt.Sprintf("tickkit: panic handler panicked: %v", p),
				Stack: debug.Stack(),
			})
		}
	}()
	h(info)
}

func callTickHookNoPanic(h func(info TickInfo), name string, tags []Tag, info TickInfo) {
	defer func() {
		if p := recover(); p != nil {
			reportPanicToStderr(PanicInfo{
				Name:  name,
				Tags:  cloneTags(tags),
				Value: fmt.Sprintf("tickkit: tick hook panicked: %v", p),
				Stack: debug.Stack(),
			})
		}
	}()
	h(info)
}
