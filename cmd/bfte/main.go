// Command bfte estimates password strength, trains the length→entropy model
// and generates passwords.
package main

import (
	"os"

	"github.com/awnumar/memguard"

	"github.com/fx-xf/bfte/internal/ui"
)

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	if err := newRootCmd().Execute(); err != nil {
		ui.PrintError(os.Stderr, err)
		memguard.SafeExit(1)
	}
}
