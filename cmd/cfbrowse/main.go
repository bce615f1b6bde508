package main

import (
	"os"

	"github.com/steviee/cfbrowse/internal/cli"
)

// Version information (set by ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	os.Exit(cli.Execute(version, commit, date, builtBy))
}
