// Package main is the entry point for the eventcost CLI.
package main

import (
	"os"

	"eventcost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
