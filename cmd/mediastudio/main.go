// Package main is the entry point for the MediaStudio site service. The
// binary serves the content and contact API and carries the operational
// commands: migrations, content checks and exports, inquiry maintenance.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
