// Package prover implements the four witness-selection strategies a CKC
// prover can run against a program and a claimed input/output relationship
// (spec §5).
package prover

import (
	"crypto/sha1"
	"fmt"

	"github.com/rs/zerolog/log"

	"ckc/hash"
	"ckc/proof"
	"ckc/stats"
	"ckc/vm"
)

// Prover runs witness trials against one parsed program. Build one per
// program (it owns a single *vm.VM it resets between trials) and call
// ObtainProof once per claim.
type Prover struct {
	programFile string
	machine     *vm.VM
	identity    []byte
}

// New wraps an already-constructed VM, ready to run repeated trials over a
// candidate input domain.
func New(programFile string, machine *vm.VM) (*Prover, error) {
	identity, err := machine.ProgramIdentity()
	if err != nil {
		return nil, fmt.Errorf("computing program identity: %w", err)
	}
	return &Prover{programFile: programFile, machine: machine, identity: identity}, nil
}

// trial runs the machine once against input i on the primary tape and
// reports whether it is a valid witness for params: its output matches
// params.ExpectedOutput and its digest passes the kappa predicate.
func (p *Prover) trial(i int, params proof.Params) (accepted bool, err error) {
	p.machine.LoadTapes([]uint64{uint64(i)}, nil)

	hasher := sha1.New()
	hasher.Write(p.identity)

	if err := p.machine.Run(func(b []byte) { hasher.Write(b) }); err != nil {
		return false, err
	}

	if p.machine.Output() != params.ExpectedOutput {
		return false, nil
	}
	digest := hasher.Sum(nil)
	return hash.ValidateHash(digest, int(params.Kappa)), nil
}

// ObtainProof dispatches to the strategy named in params.Strategy and
// returns the resulting Proof (spec §5).
func (p *Prover) ObtainProof(params proof.Params) (proof.Proof, error) {
	switch params.Strategy.Kind {
	case proof.FixedEffort:
		return p.fixedEffort(params)
	case proof.BestEffort:
		return p.bestEffort(params, nil)
	case proof.BestEffortAdaptive:
		eta0 := params.Strategy.Param
		return p.bestEffort(params, &eta0)
	case proof.OverTesting:
		return p.overTesting(params)
	default:
		return proof.Proof{}, fmt.Errorf("unknown proof strategy kind %v", params.Strategy.Kind)
	}
}

// fixedEffort exhausts the declared input domain exactly once, regardless
// of how many witnesses it turns up: the trial budget is fixed up front,
// not a function of the results.
func (p *Prover) fixedEffort(params proof.Params) (proof.Proof, error) {
	var vset []int
	domain := params.InputDomain
	for i := domain.Start; i < domain.End; i++ {
		ok, err := p.trial(i, params)
		if err != nil {
			return proof.Proof{}, err
		}
		if ok {
			vset = append(vset, i)
		}
	}
	log.Info().Str("strategy", "FixedEffort").Int("witnesses", len(vset)).Msg("prover finished")
	return proof.Proof{VSet: vset, Params: params}, nil
}

// bestEffort exhausts the declared domain, optionally stopping early once
// the witness count found so far already meets eta0's confidence target
// for the trials run so far and has reached params.V (BestEffortAdaptive).
// A nil eta0 runs to
// completion of the domain (plain BestEffort).
func (p *Prover) bestEffort(params proof.Params, eta0 *float64) (proof.Proof, error) {
	var vset []int
	domain := params.InputDomain
	for i := domain.Start; i < domain.End; i++ {
		ok, err := p.trial(i, params)
		if err != nil {
			return proof.Proof{}, err
		}
		if ok {
			vset = append(vset, i)
		}

		if eta0 != nil {
			trialsRun := i - domain.Start + 1
			vMin := stats.VMin(*eta0, params.Kappa, trialsRun)
			if len(vset) >= vMin && len(vset) >= params.V {
				log.Info().Int("trials", trialsRun).Int("witnesses", len(vset)).
					Msg("BestEffortAdaptive stopping early, confidence target reached")
				break
			}
		}
	}
	log.Info().Str("strategy", "BestEffort").Int("witnesses", len(vset)).Msg("prover finished")
	return proof.Proof{VSet: vset, Params: params}, nil
}

// overTesting runs the declared domain once, then — if the resulting
// witness count falls short of eta0's confidence target — extends the
// domain by Δu additional trials and keeps going, recording the final
// extended domain on the returned Proof (spec §5 "OverTesting").
func (p *Prover) overTesting(params proof.Params) (proof.Proof, error) {
	eta0 := params.Strategy.Param
	domain := params.InputDomain

	var vset []int
	for i := domain.Start; i < domain.End; i++ {
		ok, err := p.trial(i, params)
		if err != nil {
			return proof.Proof{}, err
		}
		if ok {
			vset = append(vset, i)
		}
	}

	u := domain.Len()
	deltaU := stats.DeltaU(eta0, params.Kappa, u, len(vset))
	if deltaU <= 0 {
		log.Info().Int("witnesses", len(vset)).Msg("OverTesting met confidence without extension")
		return proof.Proof{VSet: vset, Params: params}, nil
	}

	extendedEnd := domain.End + deltaU
	for i := domain.End; i < extendedEnd; i++ {
		ok, err := p.trial(i, params)
		if err != nil {
			return proof.Proof{}, err
		}
		if ok {
			vset = append(vset, i)
		}
	}

	extended := proof.Domain{Start: domain.Start, End: extendedEnd}
	log.Info().Int("delta_u", deltaU).Int("witnesses", len(vset)).Msg("OverTesting extended domain")
	return proof.Proof{VSet: vset, ExtendedDomain: &extended, Params: params}, nil
}
