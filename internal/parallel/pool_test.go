package parallel

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPoolRunsAllSubmittedTasks(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	ctx := context.Background()
	var mu sync.Mutex
	var completed int
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			mu.Lock()
			completed++
			mu.Unlock()
		}
		if err := pool.Submit(ctx, task); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	wg.Wait()
	if completed != 20 {
		t.Errorf("completed = %d, want 20", completed)
	}
}

func TestPoolDefaultsWorkerCount(t *testing.T) {
	pool := NewPool(0)
	defer pool.Shutdown()

	if pool.WorkerCount() <= 0 {
		t.Errorf("WorkerCount() = %d, want > 0", pool.WorkerCount())
	}
}

func TestPoolSubmitAfterShutdownFails(t *testing.T) {
	pool := NewPool(2)
	pool.Shutdown()

	err := pool.Submit(context.Background(), func() {})
	if err != ErrPoolShutdown {
		t.Errorf("Submit after shutdown = %v, want ErrPoolShutdown", err)
	}
}

func TestPoolSubmitRespectsContextCancellation(t *testing.T) {
	pool := NewPool(1)
	defer pool.Shutdown()

	block := make(chan struct{})
	defer close(block)

	// Occupy the one worker, then saturate its buffered queue (size 2) so
	// a further Submit has nowhere to go but ctx cancellation.
	_ = pool.Submit(context.Background(), func() { <-block })
	_ = pool.Submit(context.Background(), func() { <-block })
	_ = pool.Submit(context.Background(), func() { <-block })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Submit(ctx, func() {})
	if err != context.Canceled {
		t.Errorf("Submit with cancelled context = %v, want context.Canceled", err)
	}
}

func TestPoolShutdownIsIdempotent(t *testing.T) {
	pool := NewPool(2)
	pool.Shutdown()
	pool.Shutdown() // must not panic or double-close a channel
}

func TestPoolShutdownWaitsForInFlightTasks(t *testing.T) {
	pool := NewPool(2)

	var ran int32 = 0
	done := make(chan struct{})
	_ = pool.Submit(context.Background(), func() {
		time.Sleep(10 * time.Millisecond)
		ran = 1
		close(done)
	})

	pool.Shutdown()
	select {
	case <-done:
	default:
	}
	if ran != 1 {
		t.Error("Shutdown returned before its in-flight task finished")
	}
}
