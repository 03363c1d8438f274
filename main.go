package main

import (
	"fmt"
	"os"

	"github.com/idelchi/filecensus/internal/cli"
)

// version is injected at build time.
var version = "dev" //nolint:gochecknoglobals // Set via ldflags

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "filecensus: %v\n", err)
		os.Exit(1)
	}
}
