// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "runtime"

// Node is a handle to a diagram rooted at some node owned by a Manager. It
// is the only type client code ever holds; the manager keeps the node it
// designates alive for as long as the handle (or anything derived from it
// and stored elsewhere) is reachable, and reclaims it automatically once it
// is not, tying a diagram's lifetime to Go's garbage collector instead of
// requiring an explicit Free call.
type Node = *int32

// retnode wraps a node id into a Node handle, registers the finalizer that
// will eventually drop the manager's reference, and clears the transient
// "just created" mark (4.4.1 step 4): once a node is wrapped in a handle it
// is no longer at risk of being swept before its owner had a chance to use
// it.
func (m *Manager) retnode(id int32) Node {
	if m.pool.nodes[id].refcou < _MAXREFCOUNT {
		m.pool.nodes[id].refcou++
	}
	m.pool.nodes[id].mark = false
	h := new(int32)
	*h = id
	runtime.SetFinalizer(h, m.nodefinalizer)
	return h
}

func (m *Manager) checkNode(f Node) int32 {
	if f == nil {
		m.violate("nil node handle")
	}
	id := *f
	if id < 0 || int(id) >= m.pool.size() {
		m.violate("node handle %d is out of range; it may belong to a different manager", id)
	}
	return id
}

// Constant returns the diagram for the terminal value v, which must be in
// {0,...,M-1} or Undefined.
func (m *Manager) Constant(v int32) Node {
	if v != Undefined && (v < 0 || v >= m.codomain) {
		m.violate("value %d is not a valid terminal for a codomain of size %d", v, m.codomain)
	}
	return m.retnode(m.makeTerminal(v))
}

// Variable returns the elementary diagram that tests variable i and returns
// the top value M-1 on the branch where the variable equals k, 0 elsewhere:
// the multi-valued generalisation of a Boolean Ithvar.
func (m *Manager) Variable(i int, k int32) Node {
	m.checkIndex(int32(i))
	m.checkValue(int32(i), k)
	d := m.domain[i]
	sons := make([]int32, d)
	zero := m.makeTerminal(0)
	one := m.makeTerminal(m.codomain - 1)
	for j := int32(0); j < d; j++ {
		if j == k {
			sons[j] = one
		} else {
			sons[j] = zero
		}
	}
	return m.retnode(m.makeInternal(int32(i), sons))
}

// Identity returns the diagram that tests variable i and returns the value
// of i unchanged on every branch (requires codomain >= domain(i)).
func (m *Manager) Identity(i int) Node {
	m.checkIndex(int32(i))
	d := m.domain[i]
	if d > m.codomain {
		m.violate("variable %d has domain %d larger than the codomain %d", i, d, m.codomain)
	}
	sons := make([]int32, d)
	for j := int32(0); j < d; j++ {
		sons[j] = m.makeTerminal(j)
	}
	return m.retnode(m.makeInternal(int32(i), sons))
}

// IsConstant reports whether f is a terminal node, and returns its value.
func (m *Manager) IsConstant(f Node) (int32, bool) {
	id := m.checkNode(f)
	n := &m.pool.nodes[id]
	if n.isTerminal() {
		return n.value, true
	}
	return 0, false
}

// Index returns the variable index tested at the root of f, or -1 if f is a
// terminal.
func (m *Manager) Index(f Node) int {
	id := m.checkNode(f)
	n := &m.pool.nodes[id]
	if n.isTerminal() {
		return -1
	}
	return int(n.index)
}

// Son returns the root of the k-th cofactor of f, i.e. the diagram reached
// when the tested variable takes value k. It panics if f is a terminal.
func (m *Manager) Son(f Node, k int32) Node {
	id := m.checkNode(f)
	n := &m.pool.nodes[id]
	if n.isTerminal() {
		m.violate("cannot take a son of terminal node %d", id)
	}
	m.checkValue(n.index, k)
	return m.retnode(n.sons[k])
}

// Equal reports whether f and g designate the same node, the constant-time
// structural equality a canonical, hash-consed representation gives for
// free.
func (m *Manager) Equal(f, g Node) bool {
	return m.checkNode(f) == m.checkNode(g)
}
