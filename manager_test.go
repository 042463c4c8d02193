// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "testing"

func TestNewRejectsBadVarnum(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected an error for varnum 0")
	}
	if _, err := New(-1); err == nil {
		t.Fatal("expected an error for a negative varnum")
	}
}

func TestNewDefaultsToBoolean(t *testing.T) {
	m, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	if m.Codomain() != 2 {
		t.Fatalf("default codomain = %d, want 2", m.Codomain())
	}
	for i := 0; i < 3; i++ {
		if d := m.Domain(i); d != 2 {
			t.Fatalf("default domain of variable %d = %d, want 2", i, d)
		}
	}
}

func TestFixedDomain(t *testing.T) {
	m, err := New(2, FixedDomain(4))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if d := m.Domain(i); d != 4 {
			t.Fatalf("domain of variable %d = %d, want 4", i, d)
		}
	}
}

func TestDomainsMismatchIsRejected(t *testing.T) {
	if _, err := New(3, Domains([]int32{2, 3})); err == nil {
		t.Fatal("expected an error for a short domain table")
	}
}

func TestVariableIndicator(t *testing.T) {
	m, err := New(2, FixedDomain(3))
	if err != nil {
		t.Fatal(err)
	}
	x := m.Variable(0, 1)
	for k := int32(0); k < 3; k++ {
		point := []int32{k, 0}
		want := int32(0)
		if k == 1 {
			want = 1
		}
		if got := m.Evaluate(x, point); got != want {
			t.Errorf("Evaluate(x0==1, x0=%d) = %d, want %d", k, got, want)
		}
	}
}

func TestIdentity(t *testing.T) {
	m, err := New(1, FixedDomain(5), Codomain(5))
	if err != nil {
		t.Fatal(err)
	}
	x := m.Identity(0)
	for k := int32(0); k < 5; k++ {
		if got := m.Evaluate(x, []int32{k}); got != k {
			t.Errorf("Evaluate(identity, x0=%d) = %d, want %d", k, got, k)
		}
	}
}

func TestEqualIsStructural(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	a := m.And(m.Variable(0, 1), m.Variable(1, 1))
	b := m.And(m.Variable(1, 1), m.Variable(0, 1))
	if !m.Equal(a, b) {
		t.Fatal("x0 & x1 and x1 & x0 should canonicalise to the same node")
	}
}

func TestForceGCIsSafeWithLiveHandles(t *testing.T) {
	m, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	f := m.And(m.Variable(0, 1), m.Variable(1, 1))
	g := m.Or(f, m.Variable(2, 1))
	m.ForceGC()
	// a collection must never reclaim a node a live handle still names.
	if got := m.Evaluate(g, []int32{1, 1, 0, 0}); got != 1 {
		t.Fatalf("Evaluate after GC = %d, want 1", got)
	}
}
