// Package chunkreader pulls newline-aligned byte chunks out of an arbitrary
// byte source, retaining the tail of an incomplete record across calls.
package chunkreader

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoRecordBoundary is returned when a non-final chunk contains no
// newline at all, which would otherwise silently split a record across
// two chunks.
var ErrNoRecordBoundary = errors.New("chunkreader: no record boundary (newline) in non-final chunk")

// Reader turns a byte stream into a sequence of chunks that each end on a
// newline, except for the very last chunk of the stream.
type Reader struct {
	src       io.Reader
	remainder []byte
	exhausted bool
}

// New wraps src. src is read sequentially and never concurrently.
func New(src io.Reader) *Reader {
	return &Reader{src: src}
}

// Fill reads into dst, growing it up to targetLen bytes. It returns the
// number of bytes written into dst and whether this was the final chunk
// of the stream (no further call will yield any bytes). dst's capacity
// must be at least targetLen; Fill grows dst's length as needed without
// zero-filling bytes it is about to overwrite.
//
// Once Fill has returned final=true, every subsequent call returns
// (0, true, nil) without touching the source again.
func (r *Reader) Fill(dst []byte, targetLen int) (n int, final bool, err error) {
	if r.exhausted {
		return 0, true, nil
	}
	if cap(dst) < targetLen {
		return 0, false, fmt.Errorf("chunkreader: dst capacity %d below target length %d", cap(dst), targetLen)
	}

	dst = dst[:targetLen]
	copy(dst, r.remainder)
	filled := len(r.remainder)
	r.remainder = r.remainder[:0]

	for filled < targetLen {
		m, rerr := r.src.Read(dst[filled:])
		filled += m
		if rerr != nil {
			if rerr == io.EOF {
				r.exhausted = true
				return filled, true, nil
			}
			return 0, false, fmt.Errorf("chunkreader: read: %w", rerr)
		}
	}

	cut := lastNewline(dst[:filled])
	if cut < 0 {
		return 0, false, ErrNoRecordBoundary
	}
	cut++ // keep the newline itself in the delivered chunk

	tailLen := filled - cut
	if cap(r.remainder) < tailLen {
		r.remainder = make([]byte, tailLen)
	} else {
		r.remainder = r.remainder[:tailLen]
	}
	copy(r.remainder, dst[cut:filled])

	return cut, false, nil
}

func lastNewline(b []byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '\n' {
			return i
		}
	}
	return -1
}
