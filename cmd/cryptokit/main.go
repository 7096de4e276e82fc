// Command cryptokit inspects and exercises the algorithm suites of the
// cryptokit library.
package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
)

func main() {
	// Wipe locked buffers on SIGINT or SIGTERM before exiting.
	memguard.CatchInterrupt()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		memguard.Purge()
		os.Exit(1)
	}
	memguard.Purge()
}
