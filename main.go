// Package main is the entry point for sizefinder.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/sizefinder/internal/cli"
)

// Version is set at build time.
//
//nolint:gochecknoglobals // Set by the linker
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
