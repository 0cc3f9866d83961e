//go:build !windows

package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"syscall"

	"github.com/docker/docker/pkg/reexec"
	"golang.org/x/sys/unix"
)

const (
	watchdogRole = "pgguard-watchdog"
	guardRole    = "pgguard-guard"

	// helperMonitorFD is where ExtraFiles places the monitor in a helper.
	helperMonitorFD = 3
)

func init() {
	reexec.Register(watchdogRole, watchdogMain)
	reexec.Register(guardRole, guardMain)
}

// Launch establishes a new process group, installs the guard and replaces the
// current process image with the target. It returns only when cfg is invalid,
// before the process group has been touched. Every later failure kills the
// group.
func Launch(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := unix.FcntlInt(uintptr(cfg.MonitorFD), unix.F_GETFD, 0); err != nil {
		return fmt.Errorf("monitor descriptor %d: %w", cfg.MonitorFD, err)
	}
	self, err := executable()
	if err != nil {
		return fmt.Errorf("resolve own executable: %w", err)
	}
	stderr := cfg.stderr()

	EstablishGroup(stderr)

	monitor := os.NewFile(uintptr(cfg.MonitorFD), "monitor")
	watchdog := helperCommand(self, watchdogRole, monitor)
	watchdog.Stderr = stderr
	if err := watchdog.Run(); err != nil {
		Fatal(stderr, fmt.Errorf("watchdog: %w", err))
	}
	_ = monitor.Close()

	path, err := exec.LookPath(cfg.Target)
	if err != nil && !errors.Is(err, exec.ErrDot) {
		Fatal(stderr, fmt.Errorf("exec %s: %w", cfg.Target, err))
	}
	err = unix.Exec(path, cfg.Argv, cfg.environ())
	Fatal(stderr, fmt.Errorf("exec %s: %w", path, err))
	return nil
}

// executable names the running binary for helper re-execution. reexec only
// knows how to find it on Linux; elsewhere it guesses from os.Args[0], which
// inside a helper is the role name.
func executable() (string, error) {
	if runtime.GOOS == "linux" {
		return reexec.Self(), nil
	}
	return os.Executable()
}

// helperCommand re-executes self under role with monitor passed as its first
// extra file. reexec sets a parent-death signal, which would kill the guard as
// soon as the watchdog exits, so it is cleared.
func helperCommand(self, role string, monitor *os.File) *exec.Cmd {
	args := []string{role, strconv.Itoa(helperMonitorFD), self}
	cmd := reexec.Command(args...)
	if cmd == nil {
		cmd = &exec.Cmd{Args: args}
	}
	cmd.Path = self
	cmd.SysProcAttr = &syscall.SysProcAttr{}
	cmd.ExtraFiles = []*os.File{monitor}
	return cmd
}

// helperArgs decodes the argv built by helperCommand.
func helperArgs(args []string) (fd int, self string, err error) {
	if len(args) < 3 {
		return 0, "", errors.New("missing helper arguments")
	}
	fd, err = strconv.Atoi(args[1])
	if err != nil || fd < 0 {
		return 0, "", fmt.Errorf("invalid monitor descriptor %q", args[1])
	}
	if args[2] == "" {
		return 0, "", errors.New("missing executable path")
	}
	return fd, args[2], nil
}

// watchdogMain starts the guard and exits without waiting for it, so the
// guard is reparented away from the launcher.
func watchdogMain() {
	fd, self, err := helperArgs(os.Args)
	if err != nil {
		Fatal(os.Stderr, err)
	}
	guard := helperCommand(self, guardRole, os.NewFile(uintptr(fd), "monitor"))
	if err := guard.Start(); err != nil {
		Fatal(os.Stderr, fmt.Errorf("start guard: %w", err))
	}
	os.Exit(0)
}

func guardMain() {
	fd, _, err := helperArgs(os.Args)
	for _, std := range []int{0, 1, 2} {
		_ = unix.Close(std)
	}
	if err == nil {
		_ = Monitor{FD: fd}.Wait()
	}
	Terminate(OwnGroup{})
	os.Exit(1)
}
