// Command sequoia runs registered test families against a working
// directory, reporting results the way the framework's test binaries do.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	if _, err := maxprocs.Set(); err != nil {
		fmt.Fprintln(os.Stderr, "sequoia: GOMAXPROCS tuning skipped:", err)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
