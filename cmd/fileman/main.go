package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fileman/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps run-aborting failures (missing source, bad configuration) to
// exit 2; partial per-file failures and usage errors exit 1.
func exitCode(err error) int {
	if services.Fatal(err) {
		return 2
	}
	return 1
}
