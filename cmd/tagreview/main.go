package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tagreview/internal/reviewerr"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "error (%s): %v\n", reviewerr.Kind(err), err)
		}
		os.Exit(1)
	}
}
