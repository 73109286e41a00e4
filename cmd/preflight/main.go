package main

import (
	"os"

	preflightcmd "github.com/initializ/preflight/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	preflightcmd.SetVersionInfo(version, commit)
	os.Exit(preflightcmd.Execute())
}
