package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ckc/proof"
	"ckc/prover"
)

// newProveCmd runs a prover strategy against a program and writes the
// resulting proof artifact as JSON (spec §5, §6).
func newProveCmd() *cobra.Command {
	var (
		domainStart, domainEnd int
		expectedOutput         uint64
		kappa                  uint64
		v                      int
		strategyName           string
		strategyParam          float64
		outPath                string
	)

	cmd := &cobra.Command{
		Use:   "prove <program.tr>",
		Short: "Run a prover strategy and write a proof artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			programFile := args[0]
			machine, err := machineBuilder(programFile)()
			if err != nil {
				return err
			}

			strategy, err := parseStrategy(strategyName, strategyParam)
			if err != nil {
				return err
			}

			params := proof.Params{
				ProgramFile:    programFile,
				InputDomain:    proof.Domain{Start: domainStart, End: domainEnd},
				ExpectedOutput: expectedOutput,
				Kappa:          kappa,
				V:              v,
				Strategy:       strategy,
			}

			p, err := prover.New(programFile, machine)
			if err != nil {
				return err
			}

			produced, err := p.ObtainProof(params)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(produced, "", "  ")
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Println(string(data))
				return nil
			}
			return os.WriteFile(outPath, data, 0o644)
		},
	}

	cmd.Flags().IntVar(&domainStart, "domain-start", 0, "inclusive start of the input domain")
	cmd.Flags().IntVar(&domainEnd, "domain-end", 0, "exclusive end of the input domain")
	cmd.Flags().Uint64Var(&expectedOutput, "expected-output", 0, "claimed program output")
	cmd.Flags().Uint64Var(&kappa, "kappa", 8, "hash acceptance threshold")
	cmd.Flags().IntVar(&v, "v", 1, "target witness count")
	cmd.Flags().StringVar(&strategyName, "strategy", "best-effort", "fixed-effort|best-effort|best-effort-adaptive|over-testing")
	cmd.Flags().Float64Var(&strategyParam, "strategy-param", 0.99, "epsilon (fixed-effort) or eta0 (adaptive/over-testing)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the proof artifact here instead of stdout")
	return cmd
}

func parseStrategy(name string, param float64) (proof.Strategy, error) {
	switch name {
	case "fixed-effort":
		return proof.NewFixedEffort(param), nil
	case "best-effort":
		return proof.NewBestEffort(), nil
	case "best-effort-adaptive":
		return proof.NewBestEffortAdaptive(param), nil
	case "over-testing":
		return proof.NewOverTesting(param), nil
	default:
		return proof.Strategy{}, fmt.Errorf("unknown strategy %q", name)
	}
}
