// Package verifier checks a proof.Proof against a fresh re-execution of the
// program it claims to be about, and renders the statistical report a
// relying party uses to decide whether to trust it (spec §5–§6).
package verifier

import (
	"crypto/sha1"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"ckc/hash"
	"ckc/proof"
	"ckc/stats"
	"ckc/vm"
)

// ResultKind enumerates the ways a witness set can fail to check out, plus
// its two success shapes (spec §6 "ValidationResult").
type ResultKind int

const (
	ResultIncorrectHash ResultKind = iota
	ResultInvalidProgram
	ResultIncorrectInput
	ResultIncorrectOutput
	ResultExecutionError
	ResultValidButTooFewHashes
	ResultValid
)

func (k ResultKind) String() string {
	switch k {
	case ResultIncorrectHash:
		return "IncorrectHash"
	case ResultInvalidProgram:
		return "InvalidProgram"
	case ResultIncorrectInput:
		return "IncorrectInput"
	case ResultIncorrectOutput:
		return "IncorrectOutput"
	case ResultExecutionError:
		return "ExecutionError"
	case ResultValidButTooFewHashes:
		return "ValidButTooFewHashes"
	case ResultValid:
		return "Valid"
	default:
		return "Unknown"
	}
}

// Result is the flattened form of the original tagged ValidationResult enum:
// N carries the associated payload for the variants that have one (the
// offending input for IncorrectInput/IncorrectOutput, the witness count for
// ValidButTooFewHashes) and is zero otherwise.
type Result struct {
	Kind ResultKind
	N    int
}

// Verifier checks one Proof. NewMachine rebuilds a fresh *vm.VM from program
// text on demand — the verifier never reuses the prover's machine, matching
// the original's "construct a fresh InstrumentedVM for every witness
// re-check" behavior.
type Verifier struct {
	Proof      proof.Proof
	NewMachine func() (*vm.VM, error)
}

func New(p proof.Proof, newMachine func() (*vm.VM, error)) *Verifier {
	return &Verifier{Proof: p, NewMachine: newMachine}
}

// ValidateVset re-executes every witness in the proof's vset and returns the
// first failure it finds, in order, or one of the two success results if the
// whole set checks out (spec §6).
func (v *Verifier) ValidateVset(domain proof.Domain) (Result, error) {
	params := v.Proof.Params

	for _, i := range v.Proof.VSet {
		if !domain.Contains(i) {
			return Result{Kind: ResultIncorrectInput, N: i}, nil
		}

		machine, err := v.NewMachine()
		if err != nil {
			return Result{Kind: ResultInvalidProgram}, nil
		}

		identity, err := machine.ProgramIdentity()
		if err != nil {
			return Result{}, err
		}
		machine.LoadTapes([]uint64{uint64(i)}, nil)

		hasher := sha1.New()
		hasher.Write(identity)

		if err := machine.Run(func(b []byte) { hasher.Write(b) }); err != nil {
			return Result{Kind: ResultExecutionError}, nil
		}

		if machine.Output() != params.ExpectedOutput {
			return Result{Kind: ResultIncorrectOutput, N: i}, nil
		}

		digest := hasher.Sum(nil)
		if !hash.ValidateHash(digest, int(params.Kappa)) {
			return Result{Kind: ResultIncorrectHash}, nil
		}
	}

	if len(v.Proof.VSet) < params.V {
		return Result{Kind: ResultValidButTooFewHashes, N: len(v.Proof.VSet)}, nil
	}
	return Result{Kind: ResultValid}, nil
}

// CheckProof validates the vset, computes the eta/q statistics appropriate
// to the proof's strategy, and gates Report.Valid on both the witness-set
// re-check and the statistical bound (spec §5/§6, generalizing
// check_proof_fixed_effort/check_proof_best_effort/check_proof_overtesting).
func (v *Verifier) CheckProof(epsilon float64) (proof.Report, error) {
	start := time.Now()

	domain := v.Proof.EffectiveDomain()
	result, err := v.ValidateVset(domain)
	if err != nil {
		return proof.Report{}, err
	}

	u := domain.Len()
	kappa := v.Proof.Params.Kappa

	var reportV int
	switch v.Proof.Params.Strategy.Kind {
	case proof.FixedEffort:
		reportV = v.Proof.Params.V
	default:
		reportV = len(v.Proof.VSet)
	}

	eta := stats.Eta(kappa, u, reportV)
	q := stats.Q(kappa, u, reportV)
	statsOK := !math.IsNaN(eta) && !math.IsNaN(q)

	var valid bool
	switch v.Proof.Params.Strategy.Kind {
	case proof.FixedEffort:
		valid = statsOK && q > 1-epsilon && result.Kind == ResultValid
	case proof.OverTesting:
		valid = statsOK && result.Kind == ResultValid
	default: // BestEffort, BestEffortAdaptive
		valid = statsOK && (result.Kind == ResultValid || result.Kind == ResultValidButTooFewHashes)
	}

	report := proof.Report{
		Proof:    v.Proof,
		Eta:      eta,
		Q:        q,
		Valid:    valid,
		Duration: time.Since(start),
	}

	log.Info().
		Str("result", result.Kind.String()).
		Float64("eta", eta).
		Float64("q", q).
		Bool("valid", valid).
		Dur("duration", report.Duration).
		Msg("verifier finished")

	return report, nil
}
