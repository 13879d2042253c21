package linkpass

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/adrian5/wikidigest-link-count/bufpool"
	"github.com/adrian5/wikidigest-link-count/chunkreader"
)

// Extractor scans one chunk's bytes with re and accumulates matches into
// a worker-local aggregate. It must not touch shared state. An error
// (e.g. a captured numeric field that fails to parse) aborts the pass:
// outstanding workers are still joined, but the shared aggregate is not
// considered valid by the caller once an error is returned.
type Extractor[T any] func(chunk []byte, re *regexp.Regexp, local T) error

// Merger folds a worker-local aggregate into the shared aggregate. The
// pass executor guarantees merge is never called concurrently with
// itself, so it does not need its own locking.
type Merger[T any] func(shared, local T)

// run drives one streaming pass (spec §4.3): it repeatedly acquires a
// buffer, fills it from src, and spawns a worker that extracts matches
// into a local aggregate and merges them into the shared one. All
// spawned workers are joined before run returns, whether it succeeds or
// a worker/read error aborts the pass early.
func run[T any](
	ctx context.Context,
	src io.Reader,
	chunkSize int,
	pool *bufpool.Pool,
	pattern *regexp.Regexp,
	newLocal func() T,
	extract Extractor[T],
	merge Merger[T],
	onProgress func(n int),
) (T, error) {
	reader := chunkreader.New(src)
	shared := newLocal()
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)

	var loopErr error
loop:
	for {
		buf, err := pool.Acquire(groupCtx)
		if err != nil {
			loopErr = err
			break loop
		}

		n, final, err := reader.Fill(buf.Bytes()[:cap(buf.Bytes())], chunkSize)
		if err != nil {
			buf.Release()
			loopErr = err
			break loop
		}

		chunk := buf.Bytes()[:n]
		group.Go(func() error {
			defer buf.Release()
			local := newLocal()
			if err := extract(chunk, pattern, local); err != nil {
				return err
			}
			mu.Lock()
			merge(shared, local)
			mu.Unlock()
			if onProgress != nil {
				onProgress(len(chunk))
			}
			return nil
		})

		if final {
			break loop
		}
	}

	if err := group.Wait(); err != nil {
		return shared, fmt.Errorf("linkpass: %w", err)
	}
	if loopErr != nil {
		return shared, fmt.Errorf("linkpass: %w", loopErr)
	}
	return shared, nil
}
