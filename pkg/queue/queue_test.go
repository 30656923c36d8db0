package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tyabelawras/api/pkg/queue"
)

var handled atomic.Int32

type countJob struct {
	Label string `json:"label"`
}

func (j *countJob) Handle() error {
	handled.Add(1)
	return nil
}

type brokenJob struct{}

func (j *brokenJob) Handle() error {
	return errors.New("smtp down")
}

func init() {
	queue.Register("*queue_test.countJob", func() queue.Job { return &countJob{} })
	queue.Register("*queue_test.brokenJob", func() queue.Job { return &brokenJob{} })
	queue.StartWorkers(context.Background(), 2)
}

func TestDispatchProcessesJob(t *testing.T) {
	before := handled.Load()

	if err := queue.Dispatch(&countJob{Label: "newsletter"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for handled.Load() == before {
		select {
		case <-deadline:
			t.Fatal("job never processed")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestFailedJobRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	if err := queue.Dispatch(&brokenJob{}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	// One attempt plus one second of backoff.
	deadline := time.After(4 * time.Second)
	for len(queue.FailedJobs()) == 0 {
		select {
		case <-deadline:
			t.Fatal("expected a failed job record")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestDispatchAfterDelays(t *testing.T) {
	before := handled.Load()

	queue.DispatchAfter(&countJob{Label: "delayed"}, 100*time.Millisecond)

	deadline := time.After(3 * time.Second)
	for handled.Load() == before {
		select {
		case <-deadline:
			t.Fatal("delayed job never processed")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
