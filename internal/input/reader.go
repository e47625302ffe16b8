// Package input captures single characters from a terminal in raw mode.
package input

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal indicates stdin is not attached to a terminal, so raw-mode
// capture is impossible.
var ErrNotTerminal = errors.New("input: stdin is not a terminal")

// Reader delivers one typed character per read from a raw-mode terminal.
// The terminal is switched to raw mode by NewReader and must be restored via
// Restore on every exit path.
type Reader struct {
	f        *os.File
	fd       int
	oldState *term.State
	restored bool
}

// NewReader puts the file's terminal into raw mode. The caller owns the
// obligation to call Restore before the process exits.
func NewReader(f *os.File) (*Reader, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("input: entering raw mode: %w", err)
	}
	return &Reader{f: f, fd: fd, oldState: oldState}, nil
}

// ReadChar blocks until one character is available and returns it.
func (r *Reader) ReadChar() (rune, error) {
	var buf [1]byte
	if _, err := r.f.Read(buf[:]); err != nil {
		return 0, err
	}
	return rune(buf[0]), nil
}

// Restore reverts the terminal to its pre-raw state. Safe to call more than
// once; only the first call does the work.
func (r *Reader) Restore() error {
	if r.restored {
		return nil
	}
	r.restored = true
	return term.Restore(r.fd, r.oldState)
}

// Chars starts a producer goroutine reading characters until ctx is
// canceled or the read fails, and returns the channel it feeds. Characters
// arrive strictly in typing order; the channel is closed when the producer
// stops. The blocking read itself cannot be interrupted, so after
// cancellation the goroutine exits at the next keystroke.
func (r *Reader) Chars(ctx context.Context) <-chan rune {
	out := make(chan rune, 64)
	go func() {
		defer close(out)
		for {
			c, err := r.ReadChar()
			if err != nil {
				return
			}
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
