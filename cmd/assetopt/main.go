// Command assetopt is the entrypoint for the asset optimization CLI.
// It builds the cobra command tree and runs it under fang, which supplies
// styled help, --version, and a context canceled on SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/backmassage/assetopt/internal/cli"
)

// version is set at build time via -ldflags.
var version = "0.1.0-dev"

func main() {
	root := cli.NewRootCmd()
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
