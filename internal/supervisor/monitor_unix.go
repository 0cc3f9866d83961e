//go:build !windows

package supervisor

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Monitor is the read end of the caller's monitor pipe.
type Monitor struct {
	FD int

	read func(fd int, p []byte) (int, error)
}

// Wait blocks until one byte arrives or the write end is closed. Reads
// interrupted by a signal are retried without limit. Any other read failure
// is returned; callers treat it the same as a release.
func (m Monitor) Wait() error {
	read := m.read
	if read == nil {
		read = unix.Read
	}

	var buf [1]byte
	for {
		_, err := read(m.FD, buf[:])
		if err == nil {
			return nil
		}
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return fmt.Errorf("read monitor fd %d: %w", m.FD, err)
	}
}
