// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TriState is one cube position of an Espresso-style PLA file.
type TriState byte

const (
	Zero     TriState = '0'
	One      TriState = '1'
	DontCare TriState = '-'
)

// Cube is one product-term row of a PLA file: Inputs holds one TriState per
// input variable, Outputs one per output column.
type Cube struct {
	Inputs  []TriState
	Outputs []TriState
}

// PLAFile is the parsed on/off-set of a PLA description: its cube list
// together with the declared input and output counts.
type PLAFile struct {
	Cubes []Cube
	Nin   int
	Nout  int
}

// FoldKind selects how FromPLA combines a column's literal-conjunction
// cubes into the column's disjunction.
type FoldKind int

const (
	// FoldTree combines cubes pairwise in a balanced binary tree.
	FoldTree FoldKind = iota
	// FoldLeft combines cubes left to right.
	FoldLeft
)

func parseTriStates(s string) ([]TriState, error) {
	out := make([]TriState, len(s))
	for i := 0; i < len(s); i++ {
		switch b := s[i]; b {
		case '0', '1', '-':
			out[i] = TriState(b)
		default:
			return nil, fmt.Errorf("mdd: invalid PLA cube character %q", b)
		}
	}
	return out, nil
}

// LoadPLA parses the on/off-set cubes of a PLA file, along with its declared
// input and output counts (the .ilb/.ob/.p/.e/.type directives are
// otherwise ignored; this engine only needs the cube list and the .i/.o
// sizes).
func LoadPLA(r io.Reader) (*PLAFile, error) {
	f := &PLAFile{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, ".i "):
			if _, err := fmt.Sscanf(line, ".i %d", &f.Nin); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, ".o "):
			if _, err := fmt.Sscanf(line, ".o %d", &f.Nout); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "."):
			// .ilb, .ob, .p, .e, .type and similar directives carry no
			// information this loader needs.
		default:
			fields := strings.Fields(line)
			if len(fields) != 2 {
				continue
			}
			in, err := parseTriStates(fields[0])
			if err != nil {
				return nil, err
			}
			out, err := parseTriStates(fields[1])
			if err != nil {
				return nil, err
			}
			f.Cubes = append(f.Cubes, Cube{Inputs: in, Outputs: out})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if f.Nin == 0 {
		for _, c := range f.Cubes {
			if len(c.Inputs) > f.Nin {
				f.Nin = len(c.Inputs)
			}
		}
	}
	if f.Nout == 0 {
		for _, c := range f.Cubes {
			if len(c.Outputs) > f.Nout {
				f.Nout = len(c.Outputs)
			}
		}
	}
	return f, nil
}

// FromPLA builds one diagram per output column of f: the disjunction, over
// every cube whose character at that column is '1', of the conjunction of
// its literals ('1' for the variable itself, '0' for its negation, '-'
// skipped). A column character of '-' means the cube does not constrain
// that output and contributes no term to it. fold selects whether the
// per-cube terms and the per-column disjunction are combined with TreeFold
// or LeftFold. It requires every variable named by a cube to have a
// Boolean domain.
func (m *Manager) FromPLA(f *PLAFile, fold FoldKind) ([]Node, error) {
	m.enterPublic()
	defer m.leavePublic()

	combine := m.TreeFold
	if fold == FoldLeft {
		combine = m.LeftFold
	}

	columns := make([]Node, f.Nout)
	for out := 0; out < f.Nout; out++ {
		var terms []Node
		for _, c := range f.Cubes {
			if out >= len(c.Outputs) || c.Outputs[out] != One {
				continue
			}
			var literals []Node
			for i, ch := range c.Inputs {
				switch ch {
				case One:
					literals = append(literals, m.Variable(i, 1))
				case Zero:
					literals = append(literals, m.Not(m.Variable(i, 1)))
				case DontCare:
					// don't care: no constraint contributed by this variable
				}
			}
			if len(literals) == 0 {
				terms = append(terms, m.Constant(m.codomain-1))
				continue
			}
			terms = append(terms, combine(OpAnd, literals))
		}
		if len(terms) == 0 {
			columns[out] = m.Constant(0)
			continue
		}
		columns[out] = combine(OpOr, terms)
	}
	return columns, nil
}
