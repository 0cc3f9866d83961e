//go:build !windows

package supervisor

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
)

// Group delivers signals to a process group.
type Group interface {
	Signal(sig unix.Signal) error
}

// OwnGroup is the process group of the calling process.
type OwnGroup struct{}

// Signal sends sig to every member of the caller's group, the caller included.
func (OwnGroup) Signal(sig unix.Signal) error {
	if err := unix.Kill(0, sig); err != nil {
		return fmt.Errorf("signal own process group with %s: %w", unix.SignalName(sig), err)
	}
	return nil
}

// hangupSettle bounds how long Terminate waits for its own copy of SIGHUP
// before it stops holding the signal.
var hangupSettle = 100 * time.Millisecond

// EstablishGroup makes the calling process the leader of a new process group.
// A process that cannot isolate its group kills itself.
func EstablishGroup(w io.Writer) {
	if err := unix.Setpgid(0, 0); err != nil {
		fmt.Fprintf(w, "pgguard: set process group: %v\n", err)
		_ = unix.Kill(os.Getpid(), unix.SIGKILL)
		os.Exit(1)
	}
}

// Fatal reports err and kills the caller's whole process group. It does not
// return.
func Fatal(w io.Writer, err error) {
	if w != nil {
		fmt.Fprintf(w, "pgguard: %v\n", err)
	}
	_ = OwnGroup{}.Signal(unix.SIGKILL)
	os.Exit(1)
}

// Terminate runs the kill protocol against g. Members that handle SIGHUP get
// one chance to react, stopped members are continued, and then SIGKILL lands
// regardless. SIGHUP is held for the caller while it is delivered, so a caller
// inside g survives until the SIGKILL.
func Terminate(g Group) {
	held := make(chan os.Signal, 1)
	signal.Notify(held, unix.SIGHUP)

	_ = g.Signal(unix.SIGHUP)
	_ = g.Signal(unix.SIGCONT)

	select {
	case <-held:
	case <-time.After(hangupSettle):
	}
	signal.Stop(held)

	_ = g.Signal(unix.SIGKILL)
}
