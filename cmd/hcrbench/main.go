// Package main provides the entry point for the hcrbench evaluation harness.
package main

import (
	"errors"
	"os"

	"github.com/Aman-CERP/hcr/cmd/hcrbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrKilled) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
