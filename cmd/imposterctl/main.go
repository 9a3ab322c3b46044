package main

import (
	"fmt"
	"os"
)

const releaseVersion = "0.1.0"

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "imposterctl: %v\n", err)
		os.Exit(1)
	}
}
