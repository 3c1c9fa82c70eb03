// internal/tsv/scan.go
package tsv

import (
	"bufio"
	"context"
	"io"
	"strings"

	"alienness/internal/errors"
)

// maxLine bounds a single row; BLAST rows with long titles stay well below it.
const maxLine = 16 * 1024 * 1024

// LineFunc receives the 1-based line number and the line without its
// terminator ("\n" or "\r\n"). Return a non-nil error to stop scanning.
type LineFunc func(lineNo int, line string) error

// ForEachLine scans r line by line. Cancellation via ctx is checked between
// lines. Empty lines are passed through; callers decide what they mean.
func ForEachLine(ctx context.Context, r io.Reader, fn LineFunc) error {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	ln := 0
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ln++
		if err := fn(ln, strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return errors.Wrap(err, "tsv scan")
	}
	return nil
}

// ForEachLinePath opens path (see Open) and scans it with ForEachLine.
func ForEachLinePath(ctx context.Context, path string, fn LineFunc) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	if err := ForEachLine(ctx, rc, fn); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if errors.IsParseError(err) {
			return err
		}
		return errors.Wrapf(err, "read %s", path)
	}
	return nil
}

// Split breaks a line into tab-separated fields. An empty line yields one
// empty field, matching how column counts are judged upstream.
func Split(line string) []string {
	return strings.Split(line, "\t")
}
