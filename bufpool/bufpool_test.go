package bufpool

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestAcquireReleaseConservation(t *testing.T) {
	const size = 4
	pool := New(size, 1024, nil)
	ctx := context.Background()

	leased := make([]*Buffer, 0, size)
	for i := 0; i < size; i++ {
		buf, err := pool.Acquire(ctx)
		if err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
		leased = append(leased, buf)
	}

	acquireCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(acquireCtx); err == nil {
		t.Fatal("expected Acquire to block when pool is exhausted")
	}

	for _, buf := range leased {
		buf.Release()
	}

	for i := 0; i < size; i++ {
		if _, err := pool.Acquire(ctx); err != nil {
			t.Fatalf("Acquire after release %d: %v", i, err)
		}
	}
}

func TestConcurrentAcquireRelease(t *testing.T) {
	const size = 3
	pool := New(size, 64, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf, err := pool.Acquire(ctx)
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			buf.data = append(buf.data[:0], 1, 2, 3)
			buf.Release()
		}()
	}
	wg.Wait()
}

func TestReleaseIdempotent(t *testing.T) {
	pool := New(1, 16, nil)
	buf, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	buf.Release()
	buf.Release() // must not double-push into the channel
}
