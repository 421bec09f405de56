package tickkit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStress_ConcurrentControlCalls_NoDeadlock(t *testing.T) {
	// This is a "property-ish" test: it hammers every non-blocking control
	// operation and the queries from many goroutines while the worker ticks,
	// without relying on brittle timing assumptions. It must finish quickly
	// or fail.
	var ticks atomic.Int64
	tm := New(time.Millisecond, WithName("stress"))
	tm.Start(func() { ticks.Add(1) })

	stop := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				tm.Pause()
				tm.Resume()
				tm.SetInterval(time.Duration(i+1) * time.Millisecond)
				_ = tm.State()
				_ = tm.IsRunning()
				_ = tm.Interval()
				_ = tm.Status()
			}
		}(i)
	}

	time.Sleep(200 * time.Millisecond)
	close(stop)
	wg.Wait()

	tm.Stop()
	if !tm.IsStopped() {
		t.Fatalf("state=%v after Stop, want stopped", tm.State())
	}
}

func TestStress_ConcurrentStops_AllReturn(t *testing.T) {
	tm := New(time.Millisecond)
	tm.Start(func() {})

	// Every Stop must return, exactly one of them having performed the join.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Stop()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("concurrent Stop calls did not all return")
	}

	if !tm.IsStopped() {
		t.Fatalf("state=%v after Stop, want stopped", tm.State())
	}
}

func TestStress_RepeatedStartStopCycles(t *testing.T) {
	tm := New(time.Millisecond)
	for i := 0; i < 50; i++ {
		var n atomic.Int64
		tm.Start(func() { n.Add(1) })
		if !tm.IsRunning() {
			t.Fatalf("cycle %d: state=%v after Start, want running", i, tm.State())
		}
		tm.Stop()
		if !tm.IsStopped() {
			t.Fatalf("cycle %d: state=%v after Stop, want stopped", i, tm.State())
		}
		frozen := n.Load()
		time.Sleep(2 * time.Millisecond)
		if got := n.Load(); got != frozen {
			t.Fatalf("cycle %d: ticks after Stop: %d -> %d", i, frozen, got)
		}
	}
}
