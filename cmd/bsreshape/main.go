// Package main is the entry point for the bsreshape CLI.
package main

import (
	"os"

	"github.com/nao1215/bsreshape/cmd/bsreshape/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
