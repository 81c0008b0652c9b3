package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ckc/proof"
	"ckc/verifier"
)

// newVerifyCmd loads a proof artifact, re-checks it against a fresh
// execution of the program it names, and prints the resulting report
// (spec §6, supplemented with original_source's human-readable rendering).
func newVerifyCmd() *cobra.Command {
	var epsilon float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "verify <proof.json>",
		Short: "Check a proof artifact and print its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var p proof.Proof
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("decoding proof artifact: %w", err)
			}

			v := verifier.New(p, machineBuilder(p.Params.ProgramFile))
			report, err := v.CheckProof(epsilon)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := report.Export()
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			fmt.Print(report.Render())
			return nil
		},
	}

	cmd.Flags().Float64Var(&epsilon, "epsilon", 0.99, "acceptance confidence threshold")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON instead of human-readable text")
	return cmd
}
