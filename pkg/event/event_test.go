package event_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tyabelawras/api/pkg/event"
)

func TestFireCallsAllListeners(t *testing.T) {
	event.Flush()
	defer event.Flush()

	var calls atomic.Int32
	event.Listen("order.created", func(payload interface{}) { calls.Add(1) })
	event.Listen("order.created", func(payload interface{}) { calls.Add(1) })

	event.Fire("order.created", nil)

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestFirePassesPayload(t *testing.T) {
	event.Flush()
	defer event.Flush()

	var got interface{}
	event.Listen("ping", func(payload interface{}) { got = payload })
	event.Fire("ping", 42)

	if got != 42 {
		t.Errorf("expected payload 42, got %v", got)
	}
}

func TestFireAsyncReturnsImmediately(t *testing.T) {
	event.Flush()
	defer event.Flush()

	var wg sync.WaitGroup
	wg.Add(1)
	started := make(chan struct{})

	event.Listen("slow", func(payload interface{}) {
		close(started)
		defer wg.Done()
		time.Sleep(50 * time.Millisecond)
	})

	done := make(chan struct{})
	go func() {
		event.FireAsync("slow", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(20 * time.Millisecond):
		t.Fatal("FireAsync blocked on a slow listener")
	}

	<-started
	wg.Wait()
}

func TestFireWithNoListenersIsNoop(t *testing.T) {
	event.Flush()
	event.Fire("nobody.listens", "payload") // must not panic
}

func TestListenerCount(t *testing.T) {
	event.Flush()
	defer event.Flush()

	if n := event.ListenerCount("x"); n != 0 {
		t.Errorf("expected 0 listeners, got %d", n)
	}
	event.Listen("x", func(payload interface{}) {})
	if n := event.ListenerCount("x"); n != 1 {
		t.Errorf("expected 1 listener, got %d", n)
	}
}
