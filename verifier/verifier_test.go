package verifier

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"ckc/proof"
	"ckc/prover"
	"ckc/vm"
)

func openMachine(t *testing.T, path string) func() (*vm.VM, error) {
	t.Helper()
	return func() (*vm.VM, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		params, program, labels, err := vm.Parse(f)
		if err != nil {
			return nil, err
		}
		return vm.New(params, program, labels)
	}
}

func TestCheckProofValidForGenuineWitnesses(t *testing.T) {
	newMachine := openMachine(t, "../testdata/collatz_v0.tr")

	machine, err := newMachine()
	require.NoError(t, err)
	p, err := prover.New("collatz_v0.tr", machine)
	require.NoError(t, err)

	params := proof.Params{
		InputDomain:    proof.Domain{Start: 1, End: 50},
		ExpectedOutput: 0,
		Kappa:          8, // p < 1, avoids the eta/q 0/0 indeterminacy kappa=160 produces
		V:              1,
		Strategy:       proof.NewBestEffort(),
	}
	produced, err := p.ObtainProof(params)
	require.NoError(t, err)

	v := New(produced, newMachine)
	report, err := v.CheckProof(0.99)
	require.NoError(t, err)
	require.True(t, report.Valid)
}

func TestValidateVsetCatchesIncorrectInput(t *testing.T) {
	newMachine := openMachine(t, "../testdata/collatz_v0.tr")

	p := proof.Proof{
		VSet: []int{5000},
		Params: proof.Params{
			InputDomain:    proof.Domain{Start: 1, End: 50},
			ExpectedOutput: 0,
			Kappa:          160,
			V:              1,
		},
	}

	v := New(p, newMachine)
	result, err := v.ValidateVset(p.Params.InputDomain)
	require.NoError(t, err)
	require.Equal(t, ResultIncorrectInput, result.Kind)
	require.Equal(t, 5000, result.N)
}

func TestValidateVsetCatchesIncorrectOutput(t *testing.T) {
	newMachine := openMachine(t, "../testdata/collatz_v0.tr")

	p := proof.Proof{
		VSet: []int{7},
		Params: proof.Params{
			InputDomain:    proof.Domain{Start: 1, End: 50},
			ExpectedOutput: 999, // collatz_v0 always outputs 0
			Kappa:          160,
			V:              1,
		},
	}

	v := New(p, newMachine)
	result, err := v.ValidateVset(p.Params.InputDomain)
	require.NoError(t, err)
	require.Equal(t, ResultIncorrectOutput, result.Kind)
	require.Equal(t, 7, result.N)
}

func TestValidateVsetTooFewHashes(t *testing.T) {
	newMachine := openMachine(t, "../testdata/collatz_v0.tr")

	p := proof.Proof{
		VSet: []int{7},
		Params: proof.Params{
			InputDomain:    proof.Domain{Start: 1, End: 50},
			ExpectedOutput: 0,
			Kappa:          160,
			V:              5,
		},
	}

	v := New(p, newMachine)
	result, err := v.ValidateVset(p.Params.InputDomain)
	require.NoError(t, err)
	require.Equal(t, ResultValidButTooFewHashes, result.Kind)
	require.Equal(t, 1, result.N)
}

func TestValidateVsetInvalidProgram(t *testing.T) {
	newMachine := func() (*vm.VM, error) {
		return nil, os.ErrNotExist
	}

	p := proof.Proof{
		VSet: []int{1},
		Params: proof.Params{
			InputDomain: proof.Domain{Start: 1, End: 50},
		},
	}

	v := New(p, newMachine)
	result, err := v.ValidateVset(p.Params.InputDomain)
	require.NoError(t, err)
	require.Equal(t, ResultInvalidProgram, result.Kind)
}
