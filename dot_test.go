// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"strings"
	"testing"
)

func TestPrintDotBinaryEdgesStyled(t *testing.T) {
	m, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	f := m.And(m.Variable(0, 1), m.Variable(1, 1))
	var buf strings.Builder
	if err := m.PrintDot(&buf, f); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "style=dashed") {
		t.Error("PrintDot of a Boolean diagram should emit a dashed 0-edge")
	}
	if !strings.Contains(out, "style=solid") {
		t.Error("PrintDot of a Boolean diagram should emit a solid 1-edge")
	}
	if strings.Contains(out, "[label=\"0\"]") || strings.Contains(out, "[label=\"1\"]") {
		t.Error("PrintDot of a Boolean diagram should not label binary edges")
	}
}

func TestPrintDotMultiValuedEdgesLabeled(t *testing.T) {
	m, err := New(1, FixedDomain(3), Codomain(3))
	if err != nil {
		t.Fatal(err)
	}
	f := m.Identity(0)
	var buf strings.Builder
	if err := m.PrintDot(&buf, f); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for k := 0; k < 3; k++ {
		if !strings.Contains(out, "[label=\""+string(rune('0'+k))+"\"]") {
			t.Errorf("PrintDot of a 3-valued diagram should label edge %d", k)
		}
	}
	if strings.Contains(out, "style=dashed") || strings.Contains(out, "style=solid") {
		t.Error("PrintDot of a multi-valued diagram should not use binary edge styling")
	}
}
