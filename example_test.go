package tickkit_test

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/evan-idocoding/tickkit"
)

func ExampleTimer() {
	done := make(chan struct{})
	var n atomic.Int32

	t := tickkit.New(10*time.Millisecond, tickkit.WithName("heartbeat"))
	t.Start(func() {
		if v := n.Add(1); v <= 3 {
			fmt.Println("tick")
			if v == 3 {
				close(done)
			}
		}
	})
	<-done
	t.Stop()

	// Output:
	// tick
	// tick
	// tick
}

func ExampleTimer_oneShot() {
	done := make(chan struct{})

	t := tickkit.New(10*time.Millisecond, tickkit.WithOneShot(true))
	t.Start(func() {
		fmt.Println("fired once")
		close(done)
	})
	<-done
	t.Stop()

	fmt.Println(t.IsStopped())

	// Output:
	// fired once
	// true
}

func ExampleTimer_pauseResume() {
	ticked := make(chan struct{}, 1)

	t := tickkit.New(15 * time.Millisecond)
	t.Start(func() {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	<-ticked
	fmt.Println("tick")

	t.Pause()
	fmt.Println("paused:", t.IsPaused())

	t.Resume()
	<-ticked
	fmt.Println("tick")

	t.Stop()

	// Output:
	// tick
	// paused: true
	// tick
}

func ExampleTimer_setInterval() {
	t := tickkit.New(time.Hour)
	t.SetInterval(25 * time.Millisecond)
	fmt.Println(t.Interval())

	ticked := make(chan struct{}, 1)
	t.Start(func() {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})
	<-ticked
	fmt.Println("tick")
	t.Stop()

	// Output:
	// 25ms
	// tick
}

func ExampleTimer_panicHandler() {
	done := make(chan struct{})

	t := tickkit.New(10*time.Millisecond,
		tickkit.WithName("job"),
		tickkit.WithPanicHandler(func(info tickkit.PanicInfo) {
			fmt.Println("recovered:", info.Value)
			close(done)
		}),
	)
	t.Start(func() { panic("boom") })
	<-done
	t.Stop()

	fmt.Println(t.State())

	// Output:
	// recovered: boom
	// stopped
}
