// internal/writers/score.go
package writers

import (
	"encoding/json"
	"io"

	"alienness/internal/alien"
	"alienness/internal/jsonlutil"
	"alienness/internal/output"
)

func init() {
	Register("text", output.StreamText)
	Register("json", func(w io.Writer, in <-chan alien.Result, _ bool) error {
		var buf []alien.Result
		for r := range in {
			buf = append(buf, r)
		}
		return output.WriteJSON(w, buf)
	})
	Register("jsonl", streamJSONL)
}

// StartScoreWriter spins up a writer goroutine for the given format. Results
// are written in the order they are sent. The error channel yields exactly
// one value once in is closed and drained.
func StartScoreWriter(out io.Writer, format string, header bool, bufSize int) (chan<- alien.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan alien.Result, bufSize)
	errCh := make(chan error, 1)

	fn, lerr := Lookup(format)
	go func() {
		if lerr != nil {
			for range in {
			}
			errCh <- lerr
			return
		}
		err := fn(out, in, header)
		// Keep draining so senders never block after a write failure.
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}

// streamJSONL writes one v1 object per line.
func streamJSONL(w io.Writer, in <-chan alien.Result, _ bool) error {
	ch, done := jsonlutil.Start[alien.Result](w, 64,
		func(enc *json.Encoder, r alien.Result) error {
			return enc.Encode(output.ToAPIScore(r))
		},
		IsBrokenPipe,
	)
	for r := range in {
		ch <- r
	}
	close(ch)
	return <-done
}
