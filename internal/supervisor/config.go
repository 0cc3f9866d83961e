package supervisor

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Config describes a single launch.
type Config struct {
	// MonitorFD is an open, readable descriptor inherited from the caller. The
	// caller keeps the write end.
	MonitorFD int
	// Target is the executable path or a name resolved on PATH.
	Target string
	// Argv is the target's argument vector, Argv[0] included.
	Argv []string
	// Env is the target's environment. Nil means the current environment.
	Env []string
	// Stderr receives failure reports. Nil means os.Stderr.
	Stderr io.Writer
}

// Validate reports configuration errors that can be detected without
// touching the process group.
func (c Config) Validate() error {
	if c.MonitorFD < 0 {
		return fmt.Errorf("monitor descriptor must be non-negative, got %d", c.MonitorFD)
	}
	if c.Target == "" {
		return errors.New("target command is required")
	}
	if len(c.Argv) == 0 {
		return errors.New("target argument vector must include argv[0]")
	}
	return nil
}

func (c Config) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

func (c Config) environ() []string {
	if c.Env == nil {
		return os.Environ()
	}
	return c.Env
}
