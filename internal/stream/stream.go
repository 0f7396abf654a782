// Package stream opens report inputs and outputs by path. Compressed inputs
// (gzip, xz, zstd, bzip2) are detected from their content; outputs are
// compressed according to their file extension. The path "-" selects stdin
// or stdout.
package stream

import (
	"fmt"
	"io"

	"github.com/shenwei356/xopen"
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

// Open opens path for reading, decompressing it if needed.
func Open(path string) (io.ReadCloser, error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return r, nil
}

// Create opens path for writing, truncating an existing file. The returned
// writer buffers; Close must be called to flush it.
func Create(path string) (io.WriteCloser, error) {
	w, err := xopen.Wopen(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return w, nil
}
