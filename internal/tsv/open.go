// internal/tsv/open.go
package tsv

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"alienness/internal/errors"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path. "-" reads stdin. Gzip input is detected by
// magic number (1F 8B) or by a .gz suffix and decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return Decompress(io.NopCloser(os.Stdin))
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, errors.Wrapf(err, "rewind %s", path)
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, errors.Wrapf(err, "gzip %s", path)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// Decompress sniffs rc without seeking (stdin, pipes) and unwraps gzip when
// the magic number is present.
func Decompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = rc.Close()
			return nil, errors.Wrap(err, "gzip stdin")
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, rc}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{rc}}, nil
}
