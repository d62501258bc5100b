package pool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestJoinWaitsForAllTasks(t *testing.T) {
	p := New(4)
	defer p.Stop()

	var count int64
	const n = 500
	for i := 0; i < n; i++ {
		p.Submit(func() {
			atomic.AddInt64(&count, 1)
		})
	}
	p.Join()

	if got := atomic.LoadInt64(&count); got != n {
		t.Fatalf("count = %d; want %d", got, n)
	}
}

func TestSubmitFromInsideTask(t *testing.T) {
	p := New(2)
	defer p.Stop()

	var count int64
	var submit func(depth int)
	submit = func(depth int) {
		atomic.AddInt64(&count, 1)
		if depth > 0 {
			p.Submit(func() { submit(depth - 1) })
		}
	}
	p.Submit(func() { submit(5) })
	p.Join()

	if got := atomic.LoadInt64(&count); got != 6 {
		t.Fatalf("count = %d; want 6", got)
	}
}

func TestJoinIsIdempotentWhenEmpty(t *testing.T) {
	p := New(1)
	defer p.Stop()

	done := make(chan struct{})
	go func() {
		p.Join()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Join on an empty pool blocked")
	}
}

func TestStopDiscardsDoesNotHang(t *testing.T) {
	p := New(2)
	// Submit a slow task so Stop races with in-flight work.
	p.Submit(func() { time.Sleep(10 * time.Millisecond) })

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
