// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

// Apply builds the diagram for op(f, g): a single cached recursive descent
// that works variable by variable, expanding whichever operand has the
// lower level and copying the other operand unchanged along branches it
// does not yet test.
func (m *Manager) Apply(op Operator, f, g Node) Node {
	fi, gi := m.checkNode(f), m.checkNode(g)
	m.enterPublic()
	defer m.leavePublic()
	return m.retnode(m.apply(op, fi, gi))
}

func (m *Manager) apply(op Operator, f, g int32) int32 {
	fn, gn := &m.pool.nodes[f], &m.pool.nodes[g]
	if fn.isTerminal() && gn.isTerminal() {
		return m.makeTerminal(evalOperator(op, m.codomain, fn.value, gn.value))
	}
	lhs, rhs := f, g
	if op.commutative() && lhs > rhs {
		lhs, rhs = rhs, lhs
	}
	if res, ok := m.cache.matchApply(op, lhs, rhs); ok {
		return res
	}

	var index int32
	var fLevel, gLevel int32 = m.varnum, m.varnum
	if !fn.isTerminal() {
		fLevel = m.level(fn.index)
	}
	if !gn.isTerminal() {
		gLevel = m.level(gn.index)
	}
	switch {
	case fLevel < gLevel:
		index = fn.index
	case gLevel < fLevel:
		index = gn.index
	default:
		index = fn.index
	}

	d := m.domain[index]
	sons := make([]int32, d)
	for k := int32(0); k < d; k++ {
		fk, gk := f, g
		if !fn.isTerminal() && fn.index == index {
			fk = fn.sons[k]
		}
		if !gn.isTerminal() && gn.index == index {
			gk = gn.sons[k]
		}
		sons[k] = m.apply(op, fk, gk)
	}
	res := m.makeInternal(index, sons)
	m.cache.setApply(op, lhs, rhs, res)
	return res
}

// And, Or, Xor, Nand, Nor, Implies, Plus and Times are thin wrappers over
// Apply for each named operator.
func (m *Manager) And(f, g Node) Node     { return m.Apply(OpAnd, f, g) }
func (m *Manager) Or(f, g Node) Node      { return m.Apply(OpOr, f, g) }
func (m *Manager) Xor(f, g Node) Node     { return m.Apply(OpXor, f, g) }
func (m *Manager) Nand(f, g Node) Node    { return m.Apply(OpNand, f, g) }
func (m *Manager) Nor(f, g Node) Node     { return m.Apply(OpNor, f, g) }
func (m *Manager) Implies(f, g Node) Node { return m.Apply(OpImplies, f, g) }
func (m *Manager) Plus(f, g Node) Node    { return m.Apply(OpPlus, f, g) }
func (m *Manager) Times(f, g Node) Node   { return m.Apply(OpTimes, f, g) }
func (m *Manager) PiConj(f, g Node) Node  { return m.Apply(OpPiConj, f, g) }

// Not returns the diagram for (M-1) - f, pointwise.
func (m *Manager) Not(f Node) Node {
	fi := m.checkNode(f)
	m.enterPublic()
	defer m.leavePublic()
	return m.retnode(m.not(fi))
}

func (m *Manager) not(f int32) int32 {
	n := &m.pool.nodes[f]
	if n.isTerminal() {
		return m.makeTerminal(evalOperator(opNot, m.codomain, n.value, 0))
	}
	if res, ok := m.cache.matchApply(opNot, f, f); ok {
		return res
	}
	d := m.domain[n.index]
	sons := make([]int32, d)
	for k := int32(0); k < d; k++ {
		sons[k] = m.not(n.sons[k])
	}
	res := m.makeInternal(n.index, sons)
	m.cache.setApply(opNot, f, f, res)
	return res
}

// Restrict returns the diagram obtained from f by fixing variable index to
// value: every test of that variable is replaced by the cofactor for value.
func (m *Manager) Restrict(f Node, index int, value int32) Node {
	fi := m.checkNode(f)
	m.checkIndex(int32(index))
	m.checkValue(int32(index), value)
	m.enterPublic()
	defer m.leavePublic()
	return m.retnode(m.restrict(fi, int32(index), value))
}

func (m *Manager) restrict(f int32, index int32, value int32) int32 {
	n := &m.pool.nodes[f]
	if n.isTerminal() {
		return f
	}
	fLevel := m.level(n.index)
	targetLevel := m.level(index)
	if fLevel > targetLevel {
		// f does not depend on index: sons only ever sit at a greater level.
		return f
	}
	if n.index == index {
		return n.sons[value]
	}
	if res, ok := m.cache.matchRestrict(index, value, f); ok {
		return res
	}
	d := m.domain[n.index]
	sons := make([]int32, d)
	for k := int32(0); k < d; k++ {
		sons[k] = m.restrict(n.sons[k], index, value)
	}
	res := m.makeInternal(n.index, sons)
	m.cache.setRestrict(index, value, f, res)
	return res
}

// LeftFold folds op over nodes left to right: op(...op(op(nodes[0],
// nodes[1]), nodes[2])...). It panics on an empty slice.
func (m *Manager) LeftFold(op Operator, nodes []Node) Node {
	if len(nodes) == 0 {
		m.violate("LeftFold called with no operands")
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = m.Apply(op, acc, n)
	}
	return acc
}

// TreeFold folds op over nodes pairwise in a balanced binary tree, which
// for an associative, commutative op produces the same diagram as LeftFold
// but builds fewer, smaller intermediate nodes. It panics on an empty
// slice.
func (m *Manager) TreeFold(op Operator, nodes []Node) Node {
	if len(nodes) == 0 {
		m.violate("TreeFold called with no operands")
	}
	level := make([]Node, len(nodes))
	copy(level, nodes)
	for len(level) > 1 {
		next := make([]Node, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, m.Apply(op, level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}
	return level[0]
}
