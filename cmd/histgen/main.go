// Command histgen generates transaction methods for aggregates that carry a
// history.Journal.
//
// Typical use is through go:generate:
//
//	//go:generate go run github.com/dshills/revertable/cmd/histgen generate --type Form form.go
package main

import (
	"fmt"
	"os"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
