// internal/writers/asv.go
package writers

import (
	"errors"
	"io"
	"syscall"

	"blastlca/internal/output"
)

// StartASVWriter spins up a writer goroutine for result rows. Rows sent
// on the returned channel are written in arrival order; the error
// channel yields the first write error (or nil) after the input channel
// is closed and drained.
func StartASVWriter(out io.Writer, header bool, bufSize int) (chan<- output.Row, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Row, bufSize)
	errCh := make(chan error, 1)

	go func() {
		err := output.StreamTSV(out, in, header)
		// Drain so senders never block after a write failure.
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers (like `head`) closing early is not a failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
