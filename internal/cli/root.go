package cli

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/pgguard/internal/supervisor"
)

// launch is replaced in tests so the test process keeps its image.
var launch = supervisor.Launch

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pgguard FD TARGET ARGV0 [ARG...]",
		Short: "Run a command in a process group that dies with its owner",
		Long: `pgguard makes itself the leader of a new process group, starts a detached
guard that blocks reading descriptor FD, and then execs TARGET with the
argument vector ARGV0 ARG...

TARGET is a path or a name looked up on PATH. FD must be an inherited,
readable descriptor whose write end the caller keeps. When the caller
writes to it or closes it, the whole group receives SIGHUP, SIGCONT and
finally SIGKILL.`,
		Args:    cobra.MinimumNArgs(3),
		Version: version(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parseArgs(args)
			if err != nil {
				return err
			}
			cfg.Stderr = cmd.ErrOrStderr()
			return launch(cfg)
		},
	}

	// Everything after FD belongs to the target.
	root.Flags().SetInterspersed(false)

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root
}

// Execute runs the CLI entrypoint.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pgguard:", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (supervisor.Config, error) {
	fd, err := strconv.Atoi(args[0])
	if err != nil || fd < 0 {
		return supervisor.Config{}, fmt.Errorf("monitor descriptor must be a non-negative integer, got %q", args[0])
	}
	cfg := supervisor.Config{
		MonitorFD: fd,
		Target:    args[1],
		Argv:      append([]string(nil), args[2:]...),
	}
	if err := cfg.Validate(); err != nil {
		return supervisor.Config{}, err
	}
	return cfg, nil
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "devel"
	}
	return info.Main.Version
}
