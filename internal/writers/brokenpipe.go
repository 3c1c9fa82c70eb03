package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether the reader on the other end went away
// (`| head`, a closed socket). Such write errors end the run quietly.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrClosedPipe))
}
