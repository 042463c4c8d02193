// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"strings"
	"testing"
)

// the on-set of a 2-input AND gate, in Espresso PLA form.
const andPLA = `.i 2
.o 1
11 1
.e
`

func TestLoadPLA(t *testing.T) {
	f, err := LoadPLA(strings.NewReader(andPLA))
	if err != nil {
		t.Fatal(err)
	}
	if f.Nin != 2 || f.Nout != 1 {
		t.Fatalf("LoadPLA got (nin=%d, nout=%d), want (2,1)", f.Nin, f.Nout)
	}
	if len(f.Cubes) != 1 {
		t.Fatalf("LoadPLA found %d cubes, want 1", len(f.Cubes))
	}
}

func TestFromPLAMatchesAnd(t *testing.T) {
	pla, err := LoadPLA(strings.NewReader(andPLA))
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(pla.Nin)
	if err != nil {
		t.Fatal(err)
	}
	columns, err := m.FromPLA(pla, FoldTree)
	if err != nil {
		t.Fatal(err)
	}
	if len(columns) != 1 {
		t.Fatalf("FromPLA produced %d columns, want 1", len(columns))
	}
	f := columns[0]
	for a := int32(0); a < 2; a++ {
		for b := int32(0); b < 2; b++ {
			want := int32(0)
			if a == 1 && b == 1 {
				want = 1
			}
			if got := m.Evaluate(f, []int32{a, b}); got != want {
				t.Errorf("FromPLA(and)(%d,%d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

// a two-term majority-ish function with a don't-care column, exercising the
// '-' literal and the multi-cube disjunction.
const orWithDontCarePLA = `.i 3
.o 1
1-- 1
-1- 1
--0 0
`

func TestFromPLADontCare(t *testing.T) {
	pla, err := LoadPLA(strings.NewReader(orWithDontCarePLA))
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(pla.Nin)
	if err != nil {
		t.Fatal(err)
	}
	columns, err := m.FromPLA(pla, FoldTree)
	if err != nil {
		t.Fatal(err)
	}
	f := columns[0]
	if got := m.Evaluate(f, []int32{1, 0, 0}); got != 1 {
		t.Fatalf("Evaluate(1,0,0) = %d, want 1", got)
	}
	if got := m.Evaluate(f, []int32{0, 0, 0}); got != 0 {
		t.Fatalf("Evaluate(0,0,0) = %d, want 0", got)
	}
}

// a two-output PLA (AND on column 0, OR on column 1) checking that FromPLA
// builds one diagram per output column, and that FoldTree and FoldLeft
// agree since OpAnd/OpOr are associative and commutative.
const twoOutputPLA = `.i 2
.o 2
11 10
1- 01
-1 01
`

func TestFromPLAMultipleOutputColumns(t *testing.T) {
	pla, err := LoadPLA(strings.NewReader(twoOutputPLA))
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(pla.Nin)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := m.FromPLA(pla, FoldTree)
	if err != nil {
		t.Fatal(err)
	}
	left, err := m.FromPLA(pla, FoldLeft)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree) != 2 || len(left) != 2 {
		t.Fatalf("FromPLA produced %d/%d columns, want 2/2", len(tree), len(left))
	}
	for a := int32(0); a < 2; a++ {
		for b := int32(0); b < 2; b++ {
			point := []int32{a, b}
			wantAnd := int32(0)
			if a == 1 && b == 1 {
				wantAnd = 1
			}
			wantOr := int32(0)
			if a == 1 || b == 1 {
				wantOr = 1
			}
			if got := m.Evaluate(tree[0], point); got != wantAnd {
				t.Errorf("column 0 (tree) at %v = %d, want %d", point, got, wantAnd)
			}
			if got := m.Evaluate(tree[1], point); got != wantOr {
				t.Errorf("column 1 (tree) at %v = %d, want %d", point, got, wantOr)
			}
			if got := m.Evaluate(left[0], point); got != wantAnd {
				t.Errorf("column 0 (left) at %v = %d, want %d", point, got, wantAnd)
			}
			if got := m.Evaluate(left[1], point); got != wantOr {
				t.Errorf("column 1 (left) at %v = %d, want %d", point, got, wantOr)
			}
		}
	}
}
