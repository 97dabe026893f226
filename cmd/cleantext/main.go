// Package main is the entry point for the cleantext CLI.
package main

import (
	"os"

	"github.com/jmylchreest/cleantext/cmd/cleantext/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
