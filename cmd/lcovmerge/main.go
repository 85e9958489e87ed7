package main

import (
	"fmt"
	"os"

	"github.com/zjy-dev/lcovmerge/cmd/lcovmerge/app"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := app.NewLcovmergeCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
