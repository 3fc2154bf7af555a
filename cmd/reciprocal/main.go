// Package main is the entry point for the reciprocal CLI.
package main

import (
	"os"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
