package main

import (
	"os"

	"github.com/calebstern/sysdash/internal/cli"
)

// version is set via ldflags at build time:
//
//	go build -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	cli.SetVersionInfo(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
