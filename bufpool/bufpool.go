// Package bufpool provides a fixed-size pool of reusable, pre-allocated
// byte buffers that back-pressures producers once every buffer is leased
// out to a worker.
package bufpool

import (
	"context"
	"fmt"
	"log"

	"github.com/pbnjay/memory"
)

// footprintWarnFraction is the share of total system memory above which
// Pool logs a warning about the requested pool size; it never refuses to
// allocate.
const footprintWarnFraction = 0.7

// Buffer is a leased, reusable byte slice. It must be released back to its
// pool exactly once.
type Buffer struct {
	data []byte
	pool *Pool
}

// Bytes returns the buffer's backing storage. It is valid only while the
// buffer is leased.
func (b *Buffer) Bytes() []byte { return b.data }

// Release returns the buffer to its pool. Calling Release more than once
// on the same lease is a programming error but is tolerated: subsequent
// calls are no-ops.
func (b *Buffer) Release() {
	if b.pool == nil {
		return
	}
	pool := b.pool
	b.pool = nil
	pool.free <- b
}

// Pool is a bounded, FIFO free-list of buffers of a fixed capacity.
type Pool struct {
	free      chan *Buffer
	chunkSize int
}

// New allocates size buffers of the given chunkSize and returns a pool
// holding all of them, free for lease. logger may be nil.
func New(size, chunkSize int, logger *log.Logger) *Pool {
	if logger != nil {
		footprint := uint64(size) * uint64(chunkSize)
		if total := memory.TotalMemory(); total > 0 && float64(footprint) > footprintWarnFraction*float64(total) {
			logger.Printf("bufpool: requested footprint %d MiB exceeds %.0f%% of %d MiB total system memory",
				footprint/(1<<20), footprintWarnFraction*100, total/(1<<20))
		}
	}

	p := &Pool{free: make(chan *Buffer, size), chunkSize: chunkSize}
	for i := 0; i < size; i++ {
		buf := &Buffer{data: make([]byte, 0, chunkSize), pool: p}
		p.free <- buf
	}
	return p
}

// Acquire blocks until a buffer is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Buffer, error) {
	select {
	case buf := <-p.free:
		buf.pool = p
		return buf, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("bufpool: acquire: %w", ctx.Err())
	}
}

// ChunkSize returns the buffer capacity each slot was allocated with.
func (p *Pool) ChunkSize() int { return p.chunkSize }
