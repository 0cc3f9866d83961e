package main

import (
	"github.com/docker/docker/pkg/reexec"

	"github.com/Paintersrp/pgguard/internal/cli"
)

func main() {
	// Watchdog and guard are this binary re-executed under a role name.
	if reexec.Init() {
		return
	}
	cli.Execute()
}
