// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "testing"

func TestApplyMultiValuedAndOr(t *testing.T) {
	// multi-state reliability convention: And is the pointwise minimum,
	// Or is the pointwise maximum.
	m, err := New(2, FixedDomain(3), Codomain(3))
	if err != nil {
		t.Fatal(err)
	}
	x0, x1 := m.Identity(0), m.Identity(1)
	and := m.And(x0, x1)
	or := m.Or(x0, x1)
	for a := int32(0); a < 3; a++ {
		for b := int32(0); b < 3; b++ {
			point := []int32{a, b}
			if got := m.Evaluate(and, point); got != min32(a, b) {
				t.Errorf("And(%d,%d) = %d, want %d", a, b, got, min32(a, b))
			}
			if got := m.Evaluate(or, point); got != max32(a, b) {
				t.Errorf("Or(%d,%d) = %d, want %d", a, b, got, max32(a, b))
			}
		}
	}
}

func TestNotInvolution(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	f := m.And(m.Variable(0, 1), m.Not(m.Variable(1, 1)))
	g := m.Not(m.Not(f))
	if !m.Equal(f, g) {
		t.Fatal("Not(Not(f)) should canonicalise back to f")
	}
}

func TestRestrict(t *testing.T) {
	m, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	f := m.And(m.Variable(0, 1), m.Or(m.Variable(1, 1), m.Variable(2, 1)))
	r := m.Restrict(f, 0, 1)
	for b := int32(0); b < 2; b++ {
		for c := int32(0); c < 2; c++ {
			point := []int32{1, b, c}
			want := m.Evaluate(f, point)
			if got := m.Evaluate(r, []int32{0, b, c}); got != want {
				t.Errorf("Restrict(f,0,1) at (%d,%d) = %d, want %d", b, c, got, want)
			}
		}
	}
}

func TestTreeFoldMatchesLeftFold(t *testing.T) {
	m, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	vars := []Node{m.Variable(0, 1), m.Variable(1, 1), m.Variable(2, 1), m.Variable(3, 1)}
	left := m.LeftFold(OpOr, vars)
	tree := m.TreeFold(OpOr, vars)
	if !m.Equal(left, tree) {
		t.Fatal("LeftFold and TreeFold of an associative, commutative op should agree")
	}
}
