// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"fmt"
	"io"
)

// PrintDot writes a Graphviz description of the diagram rooted at f to w,
// one rank per variable level plus a rank for the terminals.
func (m *Manager) PrintDot(w io.Writer, f Node) error {
	id := m.checkNode(f)
	m.enterPublic()
	defer m.leavePublic()

	bw, ok := w.(interface {
		io.Writer
		WriteString(string) (int, error)
	})
	var write func(string) error
	if ok {
		write = func(s string) error { _, err := bw.WriteString(s); return err }
	} else {
		write = func(s string) error { _, err := io.WriteString(w, s); return err }
	}

	if err := write("digraph G {\n"); err != nil {
		return err
	}
	levelNodes := make(map[int32][]int32)
	m.traverse([]int32{id}, func(n int32) {
		levelNodes[m.levelOfNode(n)] = append(levelNodes[m.levelOfNode(n)], n)
	})
	for lvl := int32(0); lvl <= m.varnum; lvl++ {
		ids, ok := levelNodes[lvl]
		if !ok {
			continue
		}
		if err := write("{ rank=same; "); err != nil {
			return err
		}
		for _, n := range ids {
			nd := &m.pool.nodes[n]
			if nd.isTerminal() {
				if err := write(fmt.Sprintf("%d [shape=box, label=\"%s\"]; ", n, dotlabel(nd.value))); err != nil {
					return err
				}
			} else {
				if err := write(fmt.Sprintf("%d [label=\"x%d\"]; ", n, nd.index)); err != nil {
					return err
				}
			}
		}
		if err := write("}\n"); err != nil {
			return err
		}
	}
	for _, ids := range levelNodes {
		for _, n := range ids {
			nd := &m.pool.nodes[n]
			if nd.isTerminal() {
				continue
			}
			for k, s := range nd.sons {
				var edge string
				if m.domain[nd.index] == 2 {
					style := "solid"
					if k == 0 {
						style = "dashed"
					}
					edge = fmt.Sprintf("%d -> %d [style=%s];\n", n, s, style)
				} else {
					edge = fmt.Sprintf("%d -> %d [label=\"%d\"];\n", n, s, k)
				}
				if err := write(edge); err != nil {
					return err
				}
			}
		}
	}
	return write("}\n")
}

func dotlabel(v int32) string {
	if v == Undefined {
		return "?"
	}
	return fmt.Sprintf("%d", v)
}
