// Package main is the entry point for the suiwallet CLI.
package main

import (
	"os"

	"github.com/mrz1836/suiwallet/internal/cli"
)

// Set by -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
//
//nolint:gochecknoglobals // link-time build stamps
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	err := cli.Execute(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	os.Exit(cli.ExitCode(err))
}
