// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "testing"

func TestSatisfyCountBoolean(t *testing.T) {
	m, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	f := m.And(m.Variable(0, 1), m.Variable(1, 1))
	// x2 is free: 1 assignment of (x0,x1) satisfies f, times 2 for x2.
	count := m.SatisfyCount(f, 1)
	if count.Int64() != 2 {
		t.Fatalf("SatisfyCount = %s, want 2", count.String())
	}
}

func TestSatisfyAllMatchesSatisfyCount(t *testing.T) {
	m, err := New(3, FixedDomain(3))
	if err != nil {
		t.Fatal(err)
	}
	f := m.Or(m.Variable(0, 2), m.Variable(2, 1))
	all := m.SatisfyAll(f, 1)
	count := m.SatisfyCount(f, 1)
	if int64(len(all)) != count.Int64() {
		t.Fatalf("SatisfyAll found %d assignments, SatisfyCount says %s", len(all), count.String())
	}
	for _, point := range all {
		if got := m.Evaluate(f, point); got != 1 {
			t.Errorf("assignment %v evaluates to %d, want 1", point, got)
		}
	}
}

func TestStateFrequencyBoolean(t *testing.T) {
	m, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	f := m.And(m.Variable(0, 1), m.Variable(1, 1))
	// 2 of the 8 full assignments satisfy f.
	if got, want := m.StateFrequency(f, 1), 0.25; got != want {
		t.Fatalf("StateFrequency = %v, want %v", got, want)
	}
}

func TestDependencySet(t *testing.T) {
	m, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	f := m.And(m.Variable(0, 1), m.Variable(2, 1))
	deps := m.DependencySet(f)
	seen := map[int]bool{}
	for _, d := range deps {
		seen[d] = true
	}
	if !seen[0] || !seen[2] || seen[1] || seen[3] {
		t.Fatalf("DependencySet = %v, want exactly {0,2}", deps)
	}
}

func TestAllnodesIncludesRoot(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	f := m.Variable(0, 1)
	ids := m.Allnodes(f)
	found := false
	for _, id := range ids {
		if id == *f {
			found = true
		}
	}
	if !found {
		t.Fatal("Allnodes(f) did not include f's own root")
	}
}
