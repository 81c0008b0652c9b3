// Package stats implements the closed-form acceptance model CKC uses to
// relate a proof's sample size and hash-budget to its statistical
// confidence (spec §4.4). Every function here is a direct port of the
// closed forms; none of it depends on the emulator or the proof protocol.
package stats

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// deriveP converts a hash-acceptance threshold kappa into the per-trial
// success probability p = 2^(kappa-160) used throughout this package.
func deriveP(kappa uint64) float64 {
	return math.Exp2(float64(kappa) - 160.0)
}

// erfcInv is erfc^-1, expressed via the standard library's Erfinv since Go
// has no erfc inverse of its own: erfc(x)=t iff erf(x)=1-t iff x=erfinv(1-t).
func erfcInv(t float64) float64 {
	return math.Erfinv(1.0 - t)
}

// Eta computes η(κ,u,v): the probability, when each of u trials is
// hash-accepted independently with p = 2^(κ-160), of observing at least v
// hash-accepting trials, by the normal approximation.
func Eta(kappa uint64, u, v int) float64 {
	p := deriveP(kappa)
	uf, vf := float64(u), float64(v)

	term1 := vf - uf*p
	term2 := math.Sqrt(2.0 * uf * p * (1.0 - p))

	return 0.5 * math.Erfc(term1/term2)
}

// Q computes q(κ,u,r): the upper tail of the negative binomial distribution
// governing how many trials are needed to observe r hash-accepting
// witnesses, evaluated at u-r+1 failures for the observed budget u.
// Returns 0 if u<1 or r<1,
// matching the original closed form's degenerate-input guard.
func Q(kappa uint64, u, r int) float64 {
	if u < 1 || r < 1 {
		return 0.0
	}
	p := deriveP(kappa)
	d := float64(u - r + 1)
	rf := float64(r)

	// CDF_NB(d; r, p) = I_p(r, d+1), the regularized incomplete beta
	// identity the original closed form relies on via statrs internally.
	cdf := mathext.RegIncBeta(rf, d+1, p)
	return 1.0 - cdf
}

// DeltaU computes Δu(η0,κ,u,v): the additional trial budget an
// OverTesting-strategy proof needs to extend its domain by, so that the
// extended budget still meets the target confidence η0 at the same v.
func DeltaU(eta0 float64, kappa uint64, u, v int) int {
	p := deriveP(kappa)
	alpha := erfcInv(2.0 * eta0)
	uf, vf := float64(u), float64(v)

	inner := alpha*alpha*(1.0-p) + 2.0*vf
	numerator := alpha*(alpha*(1.0-p)+math.Sqrt((1.0-p)*inner)) + vf

	// Truncate to a non-negative integer (spec: Δu >= 0), mirroring the
	// saturating float->usize cast the original closed form relies on.
	if result := uf - numerator/p; result > 0 {
		return int(result)
	}
	return 0
}

// VMin computes v_min(η0,κ,u): the minimum hash-accepting witness count a
// proof with budget u needs to meet confidence η0, used by
// BestEffortAdaptive to decide when it may stop early.
func VMin(eta0 float64, kappa uint64, u int) int {
	p := deriveP(kappa)
	alpha := erfcInv(2.0 * eta0)
	beta := float64(u) * p

	return int(beta + math.Sqrt(beta*(1.0-p))*alpha)
}
