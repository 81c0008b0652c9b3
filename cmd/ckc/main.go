// Command ckc runs, proves, and verifies claims about TinyRAM-style
// register-machine programs (spec §1, §5, §6).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ckc/internal/logging"
)

func main() {
	logging.Setup()

	root := &cobra.Command{
		Use:   "ckc",
		Short: "Probabilistic claim-checking over a register-machine emulator",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newProveCmd())
	root.AddCommand(newVerifyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
