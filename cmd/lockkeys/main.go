// Package main is the entry point for lockkeys.
package main

import (
	"os"

	"github.com/dshills/lockkeys/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Execute(cli.Build{Version: version, Commit: commit, Date: date}))
}
