// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "math/big"

// Probabilities propagates the per-variable state distribution probs (probs[i]
// holds one probability per value of variable i, the chance that component i
// is currently in that state) down through the diagram rooted at f, and
// returns the probability of reaching each node reachable from f. Terminal
// node probabilities, summed by value, give the distribution of f itself
// (see TerminalProbabilities); the reach-probabilities of internal nodes
// are included in the returned map as well.
func (m *Manager) Probabilities(f Node, probs [][]float64) map[int32]float64 {
	id := m.checkNode(f)
	m.checkProbs(probs)
	m.enterPublic()
	defer m.leavePublic()

	levels := make(map[int32][]int32)
	m.traverse([]int32{id}, func(n int32) {
		levels[m.levelOfNode(n)] = append(levels[m.levelOfNode(n)], n)
	})
	reach := map[int32]float64{id: 1.0}
	for lvl := int32(0); lvl <= m.varnum; lvl++ {
		for _, n := range levels[lvl] {
			p := reach[n]
			if p == 0 {
				continue
			}
			nd := &m.pool.nodes[n]
			if nd.isTerminal() {
				continue
			}
			for k, s := range nd.sons {
				reach[s] += p * probs[nd.index][k]
			}
		}
	}
	return reach
}

func (m *Manager) checkProbs(probs [][]float64) {
	if len(probs) != int(m.varnum) {
		m.violate("probability table has %d rows, expected %d", len(probs), m.varnum)
	}
	for i, row := range probs {
		if len(row) != int(m.domain[i]) {
			m.violate("probability row %d has %d entries, expected domain size %d", i, len(row), m.domain[i])
		}
	}
}

// TerminalProbabilities returns, for every value v in {0,...,M-1}, the
// probability that f evaluates to v under probs. Undefined is excluded: a
// structure function that reaches Undefined under probs has no reliability
// interpretation at that point, and its mass is simply dropped.
func (m *Manager) TerminalProbabilities(f Node, probs [][]float64) []float64 {
	reach := m.Probabilities(f, probs)
	res := make([]float64, m.codomain)
	for id, p := range reach {
		n := &m.pool.nodes[id]
		if n.isTerminal() && n.value != Undefined {
			res[n.value] += p
		}
	}
	return res
}

// Availability returns P(f >= threshold) under probs.
func (m *Manager) Availability(f Node, probs [][]float64, threshold int32) float64 {
	tp := m.TerminalProbabilities(f, probs)
	var sum float64
	for v := threshold; v < m.codomain; v++ {
		sum += tp[v]
	}
	return sum
}

// Unavailability returns P(f < threshold) under probs.
func (m *Manager) Unavailability(f Node, probs [][]float64, threshold int32) float64 {
	return 1.0 - m.Availability(f, probs, threshold)
}

// *************************************************************************
// direct partial logic derivatives

// TransitionPredicate decides whether a variable moving from one value to
// another, holding every other variable fixed, counts as a critical
// transition of the structure function's two cofactors (before, after).
type TransitionPredicate func(before, after int32) bool

// DPLDBasic is the elementary derivative: the transition is critical exactly
// when the cofactors take the named before/after pair.
func DPLDBasic(before, after int32) TransitionPredicate {
	return func(b, a int32) bool { return b == before && a == after }
}

// DPLDThresholdDecrease flags a transition that drops the cofactor from at
// or above threshold to strictly below it.
func DPLDThresholdDecrease(threshold int32) TransitionPredicate {
	return func(before, after int32) bool { return before >= threshold && after < threshold }
}

// DPLDThresholdIncrease flags a transition that raises the cofactor from
// strictly below threshold to at or above it.
func DPLDThresholdIncrease(threshold int32) TransitionPredicate {
	return func(before, after int32) bool { return before < threshold && after >= threshold }
}

// DPLDFullDecrease flags a transition out of the top state M-1 into any
// lesser state.
func DPLDFullDecrease(codomain int32) TransitionPredicate {
	return func(before, after int32) bool { return before == codomain-1 && after < codomain-1 }
}

// DPLDFullIncrease flags a transition into the top state M-1 from any
// lesser state.
func DPLDFullIncrease(codomain int32) TransitionPredicate {
	return func(before, after int32) bool { return before < codomain-1 && after == codomain-1 }
}

// DPLDAnyDecrease flags any transition that strictly lowers the cofactor.
func DPLDAnyDecrease() TransitionPredicate {
	return func(before, after int32) bool { return after < before }
}

// DPLDAnyIncrease flags any transition that strictly raises the cofactor.
func DPLDAnyIncrease() TransitionPredicate {
	return func(before, after int32) bool { return after > before }
}

// pairwise is the shared engine behind every synchronous two-diagram
// rewrite in this file (DPLD and the MNF smoothing passes): it descends a
// and b in lockstep by level, exactly like apply, but calls leaf instead of
// a fixed Operator once both sides are terminal.
func (m *Manager) pairwise(a, b int32, leaf func(va, vb int32) int32, memo map[[2]int32]int32) int32 {
	an, bn := &m.pool.nodes[a], &m.pool.nodes[b]
	if an.isTerminal() && bn.isTerminal() {
		return leaf(an.value, bn.value)
	}
	key := [2]int32{a, b}
	if res, ok := memo[key]; ok {
		return res
	}
	aLevel, bLevel := m.varnum, m.varnum
	if !an.isTerminal() {
		aLevel = m.level(an.index)
	}
	if !bn.isTerminal() {
		bLevel = m.level(bn.index)
	}
	var index int32
	if aLevel <= bLevel {
		index = an.index
	} else {
		index = bn.index
	}
	d := m.domain[index]
	sons := make([]int32, d)
	for k := int32(0); k < d; k++ {
		ak, bk := a, b
		if !an.isTerminal() && an.index == index {
			ak = an.sons[k]
		}
		if !bn.isTerminal() && bn.index == index {
			bk = bn.sons[k]
		}
		sons[k] = m.pairwise(ak, bk, leaf, memo)
	}
	res := m.makeInternal(index, sons)
	memo[key] = res
	return res
}

// DPLD builds the Boolean diagram of the direct partial logic derivative of
// f with respect to variable index moving from jFrom to jTo: it is 1 at
// exactly the assignments of the other variables where that transition is
// critical under pred.
func (m *Manager) DPLD(f Node, index int, jFrom, jTo int32, pred TransitionPredicate) Node {
	fi := m.checkNode(f)
	m.checkIndex(int32(index))
	m.checkValue(int32(index), jFrom)
	m.checkValue(int32(index), jTo)
	m.enterPublic()
	defer m.leavePublic()

	cofFrom := m.restrict(fi, int32(index), jFrom)
	cofTo := m.restrict(fi, int32(index), jTo)
	memo := make(map[[2]int32]int32)
	leaf := func(va, vb int32) int32 {
		if pred(va, vb) {
			return m.makeTerminal(1)
		}
		return m.makeTerminal(0)
	}
	return m.retnode(m.pairwise(cofFrom, cofTo, leaf, memo))
}

// ExtendedDPLD reintroduces variable index into its own derivative: the
// result tests index again, taking the DPLD's value on the jFrom branch and
// Undefined everywhere else, since the derivative says nothing about what
// happens when index is not at the state the transition starts from.
func (m *Manager) ExtendedDPLD(f Node, index int, jFrom, jTo int32, pred TransitionPredicate) Node {
	dpld := m.DPLD(f, index, jFrom, jTo, pred)
	did := m.checkNode(dpld)
	m.enterPublic()
	defer m.leavePublic()

	d := m.domain[index]
	sons := make([]int32, d)
	undef := m.makeSpecial()
	for k := int32(0); k < d; k++ {
		if k == jFrom {
			sons[k] = did
		} else {
			sons[k] = undef
		}
	}
	return m.retnode(m.makeInternal(int32(index), sons))
}

// *************************************************************************
// importance measures

// StructuralImportance counts, among every full assignment of the other
// variables, the fraction for which the index -> (jFrom,jTo) transition is
// critical, ignoring component probabilities entirely.
func (m *Manager) StructuralImportance(f Node, index int, jFrom, jTo int32, pred TransitionPredicate) float64 {
	dpld := m.DPLD(f, index, jFrom, jTo, pred)
	total := big.NewInt(1)
	for i := int32(0); i < m.varnum; i++ {
		total.Mul(total, big.NewInt(int64(m.domain[i])))
	}
	count := m.SatisfyCount(dpld, 1)
	ratio := new(big.Float).Quo(new(big.Float).SetInt(count), new(big.Float).SetInt(total))
	r, _ := ratio.Float64()
	return r
}

// BirnbaumImportance is the probability, under probs, that the index ->
// (jFrom,jTo) transition is critical.
func (m *Manager) BirnbaumImportance(f Node, index int, jFrom, jTo int32, pred TransitionPredicate, probs [][]float64) float64 {
	dpld := m.DPLD(f, index, jFrom, jTo, pred)
	tp := m.TerminalProbabilities(dpld, probs)
	return tp[1]
}

// FussellVeselyImportance weights the minimal-normal-form probability of the
// index -> (jFrom,jTo) derivative by the probability that component index is
// sitting in any state below jFrom, then normalises by the system's overall
// unavailability: the share of system failure attributable to component
// index being in a state below jFrom.
func (m *Manager) FussellVeselyImportance(f Node, index int, jFrom, jTo int32, pred TransitionPredicate, probs [][]float64, threshold int32) float64 {
	unavail := m.Unavailability(f, probs, threshold)
	if unavail == 0 {
		return 0
	}
	dpld := m.DPLD(f, index, jFrom, jTo, pred)
	mnf := m.ToMNF(dpld)
	mnfProb := m.TerminalProbabilities(mnf, probs)[1]
	var nominator float64
	for v := int32(0); v < jFrom; v++ {
		nominator += probs[index][v]
	}
	nominator *= mnfProb
	return nominator / unavail
}

// *************************************************************************
// threshold indicator, minimal cut/path vectors

// Threshold returns the Boolean diagram that is 1 wherever f >= t and 0
// elsewhere (Undefined stays Undefined).
func (m *Manager) Threshold(f Node, t int32) Node {
	fi := m.checkNode(f)
	m.enterPublic()
	defer m.leavePublic()
	memo := make(map[int32]int32)
	var walk func(n int32) int32
	walk = func(n int32) int32 {
		nd := &m.pool.nodes[n]
		if nd.isTerminal() {
			if nd.value == Undefined {
				return m.makeSpecial()
			}
			if nd.value >= t {
				return m.makeTerminal(1)
			}
			return m.makeTerminal(0)
		}
		if res, ok := memo[n]; ok {
			return res
		}
		d := m.domain[nd.index]
		sons := make([]int32, d)
		for k := int32(0); k < d; k++ {
			sons[k] = walk(nd.sons[k])
		}
		res := m.makeInternal(nd.index, sons)
		memo[n] = res
		return res
	}
	return m.retnode(walk(fi))
}

func dominates(u, v []int32) bool {
	allGE, anyGT := true, false
	for i := range u {
		if u[i] < v[i] {
			return false
		}
		if u[i] > v[i] {
			anyGT = true
		}
	}
	return allGE && anyGT
}

func dominatesBelow(u, v []int32) bool {
	allLE, anyLT := true, false
	for i := range u {
		if u[i] > v[i] {
			return false
		}
		if u[i] < v[i] {
			anyLT = true
		}
	}
	return allLE && anyLT
}

// MinimalCutVectors enumerates the minimal cut vectors of f at threshold t:
// the failing assignments (f < t) that are not dominated by any other
// failing assignment that is at least as good in every component. It is
// exponential in the number of variables, meant for diagrams small enough
// to enumerate outright.
func (m *Manager) MinimalCutVectors(f Node, t int32) [][]int32 {
	g := m.Threshold(f, t)
	failing := m.SatisfyAll(g, 0)
	var minimal [][]int32
	for _, v := range failing {
		min := true
		for _, u := range failing {
			if dominates(u, v) {
				min = false
				break
			}
		}
		if min {
			minimal = append(minimal, v)
		}
	}
	return minimal
}

// MinimalPathVectors enumerates the minimal path vectors of f at threshold
// t: the succeeding assignments (f >= t) that are not dominated from below
// by any other succeeding assignment that is at least as bad everywhere.
func (m *Manager) MinimalPathVectors(f Node, t int32) [][]int32 {
	g := m.Threshold(f, t)
	succeeding := m.SatisfyAll(g, 1)
	var minimal [][]int32
	for _, v := range succeeding {
		min := true
		for _, u := range succeeding {
			if dominatesBelow(u, v) {
				min = false
				break
			}
		}
		if min {
			minimal = append(minimal, v)
		}
	}
	return minimal
}

// *************************************************************************
// minimal normal form

// ToMNF produces the smallest monotone structure function consistent with
// f: an upward pass saturates every node so its sons are non-decreasing in
// their own variable (Undefined acting as the identity of that max, via
// PiConj's convention), then a downward pass smooths away any Undefined
// that survives by inheriting the nearest already-resolved value from a
// lower branch of the same node or an ancestor.
func (m *Manager) ToMNF(f Node) Node {
	fi := m.checkNode(f)
	m.enterPublic()
	defer m.leavePublic()

	pmemo := make(map[[2]int32]int32)
	maxOrIdentity := func(a, b int32) int32 {
		return m.pairwise(a, b, func(va, vb int32) int32 {
			switch {
			case va == Undefined:
				return m.makeTerminal(vb)
			case vb == Undefined:
				return m.makeTerminal(va)
			default:
				return m.makeTerminal(max32(va, vb))
			}
		}, pmemo)
	}

	smemo := make(map[int32]int32)
	var saturate func(n int32) int32
	saturate = func(n int32) int32 {
		nd := &m.pool.nodes[n]
		if nd.isTerminal() {
			return n
		}
		if res, ok := smemo[n]; ok {
			return res
		}
		d := m.domain[nd.index]
		sons := make([]int32, d)
		for k := int32(0); k < d; k++ {
			sons[k] = saturate(nd.sons[k])
		}
		for k := int32(1); k < d; k++ {
			sons[k] = maxOrIdentity(sons[k-1], sons[k])
		}
		res := m.makeInternal(nd.index, sons)
		smemo[n] = res
		return res
	}

	dmemo := make(map[[2]int32]int32)
	var smoothDown func(n int32, inherited int32) int32
	smoothDown = func(n int32, inherited int32) int32 {
		nd := &m.pool.nodes[n]
		if nd.isTerminal() {
			if nd.value == Undefined {
				return inherited
			}
			return n
		}
		key := [2]int32{n, inherited}
		if res, ok := dmemo[key]; ok {
			return res
		}
		d := m.domain[nd.index]
		sons := make([]int32, d)
		running := inherited
		for k := int32(0); k < d; k++ {
			sons[k] = smoothDown(nd.sons[k], running)
			running = sons[k]
		}
		res := m.makeInternal(nd.index, sons)
		dmemo[key] = res
		return res
	}

	up := saturate(fi)
	down := smoothDown(up, m.makeTerminal(0))
	return m.retnode(down)
}
