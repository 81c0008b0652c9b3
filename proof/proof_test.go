package proof

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDomainContains(t *testing.T) {
	d := Domain{Start: 1, End: 1000}
	require.True(t, d.Contains(1))
	require.True(t, d.Contains(999))
	require.False(t, d.Contains(1000))
	require.False(t, d.Contains(0))
	require.Equal(t, 999, d.Len())
}

func TestEffectiveDomainFallsBackToRequested(t *testing.T) {
	p := Proof{Params: Params{InputDomain: Domain{Start: 0, End: 100}}}
	require.Equal(t, Domain{Start: 0, End: 100}, p.EffectiveDomain())

	ext := Domain{Start: 0, End: 500}
	p.ExtendedDomain = &ext
	require.Equal(t, ext, p.EffectiveDomain())
}

func TestReportRender(t *testing.T) {
	r := Report{
		Proof: Proof{
			VSet: []int{1, 2, 3},
			Params: Params{
				ProgramFile:    "collatz_v0.tr",
				InputDomain:    Domain{Start: 1, End: 1000},
				ExpectedOutput: 0,
				Kappa:          8,
				V:              1000,
				Strategy:       NewBestEffortAdaptive(0.99),
			},
		},
		Eta:   0.5,
		Q:     0.01,
		Valid: true,
	}

	out := r.Render()
	require.True(t, strings.Contains(out, "REPORT for collatz_v0.tr"))
	require.True(t, strings.Contains(out, "BestEffortAdaptive"))
	require.True(t, strings.Contains(out, "valid:     true"))
}

func TestReportExportIncludesStrategyKind(t *testing.T) {
	r := Report{
		Proof: Proof{
			VSet:   []int{1, 2},
			Params: Params{Strategy: NewFixedEffort(0.99)},
		},
		Eta: 0.1,
		Q:   0.2,
	}
	data, err := r.Export()
	require.NoError(t, err)
	require.Contains(t, string(data), `"kind"`)
}
