package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEtaDecreasesAsWitnessCountGrows(t *testing.T) {
	kappa := uint64(8)
	u := 1000

	low := Eta(kappa, u, 0)
	high := Eta(kappa, u, 50)
	require.Greater(t, low, high, "eta should fall as the observed witness count v grows")
}

func TestEtaBounded(t *testing.T) {
	eta := Eta(8, 1000, 4)
	require.GreaterOrEqual(t, eta, 0.0)
	require.LessOrEqual(t, eta, 1.0)
}

func TestQZeroOnDegenerateInputs(t *testing.T) {
	require.Equal(t, 0.0, Q(8, 0, 5))
	require.Equal(t, 0.0, Q(8, 100, 0))
}

func TestQBounded(t *testing.T) {
	q := Q(8, 1000, 4)
	require.GreaterOrEqual(t, q, 0.0)
	require.LessOrEqual(t, q, 1.0)
}

func TestVMinIncreasesWithConfidence(t *testing.T) {
	lo := VMin(0.9, 8, 1000)
	hi := VMin(0.999, 8, 1000)
	require.GreaterOrEqual(t, hi, lo, "a tighter confidence target should not require fewer witnesses")
}

func TestDeltaUNonNegative(t *testing.T) {
	du := DeltaU(0.99, 8, 1000, 1)
	require.GreaterOrEqual(t, du, 0)
}
