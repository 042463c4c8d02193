// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"math/big"
	"sort"
)

// Evaluate walks f following point, a full assignment of every variable,
// and returns the terminal value reached. point must have exactly Varnum
// entries, one per index.
func (m *Manager) Evaluate(f Node, point []int32) int32 {
	id := m.checkNode(f)
	if len(point) != int(m.varnum) {
		m.violate("assignment has %d entries, expected %d", len(point), m.varnum)
	}
	for {
		n := &m.pool.nodes[id]
		if n.isTerminal() {
			return n.value
		}
		v := point[n.index]
		m.checkValue(n.index, v)
		id = n.sons[v]
	}
}

// traverse visits every node reachable from roots exactly once, calling pre
// before descending into a node's sons. It follows the two-pass XOR-mark
// discipline (4.4.6): a first pass toggles mark while visiting so a shared
// son is only processed once, a second retoggles every visited node back to
// false so the manager's invariant ("no public call ever returns with a
// node still marked") holds once traverse returns.
func (m *Manager) traverse(roots []int32, pre func(id int32)) {
	var walk func(id int32, want bool)
	walk = func(id int32, want bool) {
		n := &m.pool.nodes[id]
		if n.mark == want {
			return
		}
		n.mark = want
		if want && pre != nil {
			pre(id)
		}
		if !n.isTerminal() {
			for _, s := range n.sons {
				walk(s, want)
			}
		}
	}
	for _, r := range roots {
		walk(r, true)
	}
	for _, r := range roots {
		walk(r, false)
	}
}

// Allnodes returns the id of every node reachable from f, including f
// itself, in the order they were first discovered (root first).
func (m *Manager) Allnodes(f Node) []int32 {
	id := m.checkNode(f)
	m.enterPublic()
	defer m.leavePublic()
	var ids []int32
	m.traverse([]int32{id}, func(n int32) { ids = append(ids, n) })
	return ids
}

// Size returns the number of distinct nodes (internal and terminal) in the
// diagram rooted at f.
func (m *Manager) Size(f Node) int {
	return len(m.Allnodes(f))
}

// DependencySet returns the set of variable indices tested anywhere in the
// diagram rooted at f.
func (m *Manager) DependencySet(f Node) []int {
	id := m.checkNode(f)
	m.enterPublic()
	defer m.leavePublic()
	seen := make(map[int32]bool)
	var idxs []int
	m.traverse([]int32{id}, func(n int32) {
		nd := &m.pool.nodes[n]
		if !nd.isTerminal() && !seen[nd.index] {
			seen[nd.index] = true
			idxs = append(idxs, int(nd.index))
		}
	})
	return idxs
}

// SatisfyCount returns the number of full assignments of every variable
// that evaluate f to target. The count is exact and can exceed the range of
// a machine integer (product of up to _MAXVAR domain sizes), hence math/big.
func (m *Manager) SatisfyCount(f Node, target int32) *big.Int {
	id := m.checkNode(f)
	m.enterPublic()
	defer m.leavePublic()
	memo := make(map[int32]*big.Int)
	var count func(n int32, fromLevel int32) *big.Int
	count = func(n int32, fromLevel int32) *big.Int {
		nd := &m.pool.nodes[n]
		nodeLevel := m.varnum
		if !nd.isTerminal() {
			nodeLevel = m.level(nd.index)
		}
		var sub *big.Int
		if nd.isTerminal() {
			if nd.value == target {
				sub = big.NewInt(1)
			} else {
				sub = big.NewInt(0)
			}
		} else if c, ok := memo[n]; ok {
			sub = c
		} else {
			sub = big.NewInt(0)
			for k := int32(0); k < m.domain[nd.index]; k++ {
				sub.Add(sub, count(nd.sons[k], nodeLevel+1))
			}
			memo[n] = sub
		}
		// account for every level strictly between fromLevel and nodeLevel
		// that the diagram skips over: each such variable is free, so every
		// one of its domain values satisfies f identically.
		res := new(big.Int).Set(sub)
		for lvl := fromLevel; lvl < nodeLevel; lvl++ {
			idx := m.indexAt(lvl)
			res.Mul(res, big.NewInt(int64(m.domain[idx])))
		}
		return res
	}
	return count(id, 0)
}

// StateFrequency returns the fraction of the full state space (every
// assignment of every variable) on which f evaluates to target: SatisfyCount
// divided by the product of every variable's domain size.
func (m *Manager) StateFrequency(f Node, target int32) float64 {
	count := new(big.Float).SetInt(m.SatisfyCount(f, target))
	total := big.NewInt(1)
	for _, d := range m.domain {
		total.Mul(total, big.NewInt(int64(d)))
	}
	frequency, _ := new(big.Float).Quo(count, new(big.Float).SetInt(total)).Float64()
	return frequency
}

// SatisfyAll enumerates every full assignment evaluating f to target. It is
// exponential in the number of free variables and meant for small diagrams
// or testing; large diagrams should use SatisfyCount.
func (m *Manager) SatisfyAll(f Node, target int32) [][]int32 {
	id := m.checkNode(f)
	m.enterPublic()
	defer m.leavePublic()
	var results [][]int32
	point := make([]int32, m.varnum)
	var walk func(n int32, level int32)
	walk = func(n int32, level int32) {
		if level == m.varnum {
			nd := &m.pool.nodes[n]
			if nd.value == target {
				cp := make([]int32, m.varnum)
				copy(cp, point)
				results = append(results, cp)
			}
			return
		}
		idx := m.indexAt(level)
		nd := &m.pool.nodes[n]
		if nd.isTerminal() || m.level(nd.index) > level {
			for k := int32(0); k < m.domain[idx]; k++ {
				point[idx] = k
				walk(n, level+1)
			}
			return
		}
		for k := int32(0); k < m.domain[idx]; k++ {
			point[idx] = k
			walk(nd.sons[k], level+1)
		}
	}
	walk(id, 0)

	// walk descends level by level, so results come out in lexicographic
	// order of the variables' current levels. Once Sift or AutoReorder has
	// permuted indexToLevel away from the identity, that is no longer the
	// same order as lexicographic order of the variables' indices, which is
	// what callers are promised; each point is already index-indexed
	// (written to point[idx], not point[level]), so a plain slice sort
	// restores it.
	sort.Slice(results, func(a, b int) bool {
		pa, pb := results[a], results[b]
		for i := range pa {
			if pa[i] != pb[i] {
				return pa[i] < pb[i]
			}
		}
		return false
	})
	return results
}
