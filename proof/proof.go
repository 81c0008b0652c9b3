// Package proof holds the data model for a CKC proof artifact: the request
// it was produced against, the witnesses it found, and the report a
// verifier produces when checking it (spec §5–§6).
package proof

import (
	"encoding/json"
	"fmt"
	"time"
)

// StrategyKind tags which of the four witness-selection strategies a proof
// was produced under (spec §5).
type StrategyKind int

const (
	FixedEffort StrategyKind = iota
	BestEffort
	BestEffortAdaptive
	OverTesting
)

func (k StrategyKind) String() string {
	switch k {
	case FixedEffort:
		return "FixedEffort"
	case BestEffort:
		return "BestEffort"
	case BestEffortAdaptive:
		return "BestEffortAdaptive"
	case OverTesting:
		return "OverTesting"
	default:
		return "Unknown"
	}
}

// Strategy is the Go flattening of the original tagged enum: Kind selects
// the variant, Param carries its single associated value where the variant
// has one (epsilon for FixedEffort, eta0 for BestEffortAdaptive/OverTesting)
// and is ignored for BestEffort.
type Strategy struct {
	Kind  StrategyKind `json:"kind"`
	Param float64      `json:"param,omitempty"`
}

func NewFixedEffort(epsilon float64) Strategy         { return Strategy{Kind: FixedEffort, Param: epsilon} }
func NewBestEffort() Strategy                         { return Strategy{Kind: BestEffort} }
func NewBestEffortAdaptive(eta0 float64) Strategy     { return Strategy{Kind: BestEffortAdaptive, Param: eta0} }
func NewOverTesting(eta0 float64) Strategy            { return Strategy{Kind: OverTesting, Param: eta0} }

// Domain is an inclusive-exclusive range [Start, End) over the input tape
// value used as the varying claim parameter (spec §5 "input domain").
type Domain struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (d Domain) Contains(i int) bool { return i >= d.Start && i < d.End }
func (d Domain) Len() int            { return d.End - d.Start }

// Params is the fully-specified claim request a prover is asked to produce
// a proof for (spec §5 "ProofParams").
type Params struct {
	ProgramFile    string   `json:"program_file"`
	InputDomain    Domain   `json:"input_domain"`
	ExpectedOutput uint64   `json:"expected_output"`
	Kappa          uint64   `json:"kappa"`
	V              int      `json:"v"`
	Strategy       Strategy `json:"strategy"`
}

// Proof is what a prover hands back: the witness set it found, the domain
// it actually searched (which OverTesting may have extended past
// Params.InputDomain), and the request it was produced against.
type Proof struct {
	VSet           []int   `json:"vset"`
	ExtendedDomain *Domain `json:"extended_domain,omitempty"`
	Params         Params  `json:"params"`
}

// EffectiveDomain returns the domain a verifier should iterate: the
// extended domain if the prover recorded one, else the originally
// requested domain.
func (p Proof) EffectiveDomain() Domain {
	if p.ExtendedDomain != nil {
		return *p.ExtendedDomain
	}
	return p.Params.InputDomain
}

// Report is the outcome of a verifier checking a Proof: the statistical
// figures it computed and whether the proof meets the caller's epsilon.
type Report struct {
	Proof    Proof         `json:"proof"`
	Eta      float64       `json:"eta"`
	Q        float64       `json:"q"`
	Valid    bool          `json:"valid"`
	Duration time.Duration `json:"duration_ns"`
}

// Render produces the multi-line human-readable rendering the original
// prover/verifier CLI printed (original_source's ProofReport::display).
func (r Report) Render() string {
	return fmt.Sprintf(
		"REPORT for %s\n"+
			"\tstrategy:  %s\n"+
			"\trequest:   domain=[%d,%d) expected_output=%d kappa=%d v=%d\n"+
			"\tproof:     witnesses=%d extended_domain=%s\n"+
			"\teta:       %g\n"+
			"\tq:         %g\n"+
			"\tvalid:     %t\n"+
			"\tduration:  %s\n",
		r.Proof.Params.ProgramFile,
		r.Proof.Params.Strategy.Kind,
		r.Proof.Params.InputDomain.Start, r.Proof.Params.InputDomain.End,
		r.Proof.Params.ExpectedOutput, r.Proof.Params.Kappa, r.Proof.Params.V,
		len(r.Proof.VSet), domainString(r.Proof.ExtendedDomain),
		r.Eta, r.Q, r.Valid, r.Duration,
	)
}

func domainString(d *Domain) string {
	if d == nil {
		return "none"
	}
	return fmt.Sprintf("[%d,%d)", d.Start, d.End)
}

// Export serializes a Report as JSON, the wire format the original
// implementation used for exactly this artifact (serde_json in
// original_source's proof.rs).
func (r Report) Export() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
