// Package main provides the CLI entry point for rulec.
package main

import (
	"fmt"
	"os"

	"github.com/rulelang/rulec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
