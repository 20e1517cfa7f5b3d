// Package main is the entry point for the prospect CLI.
package main

import (
	"os"

	"github.com/jmylchreest/prospect/cmd/prospect/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
