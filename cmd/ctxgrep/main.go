package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if errors.Is(err, errNoMatches) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "ctxgrep: %v\n", err)
		os.Exit(2)
	}
}
