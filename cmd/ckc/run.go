package main

import (
	"crypto/sha1"
	"fmt"

	"github.com/spf13/cobra"
)

// newRunCmd executes a single program once against a tape pair and prints
// its output and final per-step hash (spec §4, supplemented from
// original_source's tinyvm::from_cli — see SPEC_FULL.md §4).
func newRunCmd() *cobra.Command {
	var tape1Path, tape2Path string

	cmd := &cobra.Command{
		Use:   "run <program.tr>",
		Short: "Execute a program once and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build := machineBuilder(args[0])
			machine, err := build()
			if err != nil {
				return err
			}

			tape1, err := loadTapeOrNil(tape1Path)
			if err != nil {
				return err
			}
			tape2, err := loadTapeOrNil(tape2Path)
			if err != nil {
				return err
			}
			machine.LoadTapes(tape1, tape2)

			identity, err := machine.ProgramIdentity()
			if err != nil {
				return err
			}
			hasher := sha1.New()
			hasher.Write(identity)

			if err := machine.Run(func(b []byte) { hasher.Write(b) }); err != nil {
				return err
			}

			fmt.Printf("output:    %d\n", machine.Output())
			fmt.Printf("exit code: %d\n", machine.ExitCode())
			fmt.Printf("hash:      %x\n", hasher.Sum(nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&tape1Path, "tape1", "", "primary input tape file")
	cmd.Flags().StringVar(&tape2Path, "tape2", "", "secondary input tape file")
	return cmd
}
