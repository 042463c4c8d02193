// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// a 2-out-of-2 series system: both components must be up for the system to
// be up, each component Bernoulli(p).
func seriesSystem(t *testing.T) (*Manager, Node) {
	t.Helper()
	m, err := New(2)
	require.NoError(t, err)
	f := m.And(m.Variable(0, 1), m.Variable(1, 1))
	return m, f
}

func uniformProbs(m *Manager, p float64) [][]float64 {
	probs := make([][]float64, m.Varnum())
	for i := range probs {
		probs[i] = []float64{1 - p, p}
	}
	return probs
}

func TestAvailabilitySeriesSystem(t *testing.T) {
	m, f := seriesSystem(t)
	probs := uniformProbs(m, 0.9)
	avail := m.Availability(f, probs, 1)
	require.InDelta(t, 0.81, avail, 1e-9)
	require.InDelta(t, 0.19, m.Unavailability(f, probs, 1), 1e-9)
}

func TestAvailabilityParallelSystem(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	f := m.Or(m.Variable(0, 1), m.Variable(1, 1))
	probs := uniformProbs(m, 0.9)
	avail := m.Availability(f, probs, 1)
	// 1 - (1-p)^2
	require.InDelta(t, 1-0.1*0.1, avail, 1e-9)
}

func TestDPLDBasicSeriesSystem(t *testing.T) {
	m, f := seriesSystem(t)
	// flipping x0 from 0 to 1 is critical exactly when x1 = 1.
	d := m.DPLD(f, 0, 0, 1, DPLDBasic(0, 1))
	if got := m.Evaluate(d, []int32{0, 1}); got != 1 {
		t.Fatalf("DPLD at x1=1 = %d, want 1", got)
	}
	if got := m.Evaluate(d, []int32{0, 0}); got != 0 {
		t.Fatalf("DPLD at x1=0 = %d, want 0", got)
	}
}

func TestBirnbaumImportanceSeriesSystem(t *testing.T) {
	m, f := seriesSystem(t)
	probs := uniformProbs(m, 0.9)
	b0 := m.BirnbaumImportance(f, 0, 0, 1, DPLDBasic(0, 1), probs)
	// component 0 is critical exactly when component 1 is up: P(x1=1) = 0.9.
	require.InDelta(t, 0.9, b0, 1e-9)
}

func TestStructuralImportanceSeriesSystem(t *testing.T) {
	m, f := seriesSystem(t)
	s0 := m.StructuralImportance(f, 0, 0, 1, DPLDBasic(0, 1))
	// ignoring probabilities, component 0 is critical in exactly one of the
	// two states of component 1.
	require.InDelta(t, 0.5, s0, 1e-9)
}

func TestFussellVeselyImportanceSeriesSystem(t *testing.T) {
	m, f := seriesSystem(t)
	probs := uniformProbs(m, 0.9)
	// component 0 failing (1 -> 0) is critical exactly when component 1 is
	// up: P(x1=1) = 0.9. P(x0 in a state below 1) = P(x0=0) = 0.1, and
	// system unavailability is 1 - 0.9*0.9 = 0.19, so FV = (0.1*0.9)/0.19.
	fv := m.FussellVeselyImportance(f, 0, 1, 0, DPLDBasic(1, 0), probs, 1)
	require.InDelta(t, (0.1*0.9)/0.19, fv, 1e-9)
}

func TestMinimalCutAndPathVectorsSeriesSystem(t *testing.T) {
	m, f := seriesSystem(t)
	cuts := m.MinimalCutVectors(f, 1)
	require.Len(t, cuts, 2)
	paths := m.MinimalPathVectors(f, 1)
	require.Len(t, paths, 1)
	require.Equal(t, []int32{1, 1}, paths[0])
}

func TestExtendedDPLDReintroducesVariable(t *testing.T) {
	m, f := seriesSystem(t)
	e := m.ExtendedDPLD(f, 0, 0, 1, DPLDBasic(0, 1))
	// on the jFrom branch (x0=0) it behaves like the plain DPLD...
	if got := m.Evaluate(e, []int32{0, 1}); got != 1 {
		t.Fatalf("ExtendedDPLD at x0=0,x1=1 = %d, want 1", got)
	}
	// ...and is Undefined everywhere else.
	if got := m.Evaluate(e, []int32{1, 1}); got != Undefined {
		t.Fatalf("ExtendedDPLD at x0=1,x1=1 = %d, want Undefined", got)
	}
}

func TestToMNFRemovesUndefined(t *testing.T) {
	m, err := New(1)
	require.NoError(t, err)
	f := m.Constant(Undefined)
	g := m.ToMNF(f)
	if v, ok := m.IsConstant(g); !ok || v == Undefined {
		t.Fatalf("ToMNF left an Undefined terminal: %v, ok=%v", v, ok)
	}
}
