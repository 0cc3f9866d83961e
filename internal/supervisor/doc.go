// Package supervisor launches a command inside a fresh process group and ties
// the lifetime of that group to a monitor pipe owned by the caller.
//
// Three processes cooperate. The launcher becomes a group leader, starts a
// short-lived watchdog and waits for it. The watchdog starts the guard and
// exits, leaving the guard reparented and independent of the launcher. Once
// the watchdog is gone the launcher closes its copy of the monitor and execs
// the target, so the target never runs without a guard.
//
// The guard blocks on a one byte read from the monitor. When the caller
// writes to the pipe or its write end goes away, the guard delivers SIGHUP and
// SIGCONT to the group, then SIGKILL, which also ends the guard.
//
// Go cannot fork without exec, so the watchdog and guard are re-executions of
// the running binary selected by argv[0] through reexec. Programs embedding
// this package must call reexec.Init before doing anything else in main.
//
// Only POSIX systems are supported. On Windows Launch reports an error.
package supervisor
