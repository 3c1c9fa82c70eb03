// internal/writers/registry.go
package writers

import (
	"io"
	"sort"

	"alienness/internal/alien"
	"alienness/internal/errors"
)

// StreamFunc drains in and writes every result to w.
type StreamFunc func(w io.Writer, in <-chan alien.Result, header bool) error

// Score writers by format name. Registered from init() in score.go.
var scoreWriters = map[string]StreamFunc{}

// Register adds or replaces the writer for format (last wins).
func Register(format string, fn StreamFunc) { scoreWriters[format] = fn }

// Formats lists registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(scoreWriters))
	for k := range scoreWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the writer for format.
func Lookup(format string) (StreamFunc, error) {
	fn, ok := scoreWriters[format]
	if !ok {
		return nil, errors.Newf("unknown output format %q (no writer registered)", format)
	}
	return fn, nil
}
