// Package main is the entry point for the materia-calc CLI.
package main

import (
	"os"

	"materia-calc/cmd/cli/cmd"
	"materia-calc/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
