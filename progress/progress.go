// Package progress displays per-pass byte-progress bars on the terminal.
// It is a boundary collaborator (spec §1/§6): the streaming core in
// linkpass never imports this package, it only accepts an optional
// onProgress callback.
package progress

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Bar wraps a cheggaaa/pb progress bar tracking bytes consumed from one
// pass's input source.
type Bar struct {
	bar *pb.ProgressBar
}

// Start begins a byte-count progress bar for a pass named stage (e.g.
// "1/3 page", "2/3 redirect", "3/3 pagelinks"), given the total size of
// the source in bytes (0 if unknown).
func Start(stage string, totalBytes int64) *Bar {
	bar := pb.Full.Start64(totalBytes)
	bar.Set("prefix", fmt.Sprintf("%s ", stage))
	return &Bar{bar: bar}
}

// Proxy wraps r so that every byte read through it advances the bar. This
// is the only way a bar is ever advanced: it tracks compressed bytes read
// off disk, which is why passes are driven with onProgress left nil
// (a decompressed-chunk-length callback would use a different unit and
// total than the bar was started with).
func (b *Bar) Proxy(r io.Reader) io.Reader {
	return b.bar.NewProxyReader(r)
}

// Finish stops the bar and prints a trailing newline.
func (b *Bar) Finish() {
	b.bar.Finish()
}
