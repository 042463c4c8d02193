// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "sort"

// swapAdjacent exchanges the variables at level and level+1, rewriting
// every node of the upper variable that has a son testing the lower
// variable in place so that existing Node handles
// (which only ever name an id, never a pool slot by address) stay valid.
//
// This mirrors node_manager::swap_node_with_next from the original
// reliability manager: for every node F of the upper variable, cross its
// Du sons against the Dl sons of whichever of them test the lower
// variable (a son that skips over the lower variable is treated as
// constant across all Dl branches), then re-home F under the lower
// variable with Dl new sons, each combining across the old Du branches.
//
// A rewritten node can end up with the same content as another node already
// indexed under the lower variable, or as another node rewritten earlier in
// this same pass: the swap's content transform is a bijection on functions,
// but not an injection on the diagram's current node population, so two
// previously-distinct nodes can legitimately collapse to one function at the
// new level. The original keeps a single in-place pointer, so every other
// node referencing either one transparently ends up pointing at the
// survivor. A Go Node handle only ever names an id, never a pool slot by
// address, and an id with a live external handle cannot be erased from
// under it, so collisions are resolved with mergeNode: every internal sons
// edge naming the losing id is redirected to the survivor, and the loser is
// destroyed immediately if nothing external still holds it, or parked in
// m.orphans to be swept by the next garbage collection otherwise.
func (m *Manager) swapAdjacent(level int32) {
	upper := m.indexAt(level)
	lower := m.indexAt(level + 1)
	du := m.domain[upper]
	dl := m.domain[lower]

	upperTable := m.uniq[upper]
	lowerTable := m.uniq[lower]
	rehomed := newUniqueTable()

	ids := make([]int32, 0, upperTable.len())
	for _, id := range upperTable.buckets {
		ids = append(ids, id)
	}

	for _, id := range ids {
		n := &m.pool.nodes[id]
		if n.isTerminal() || n.index != upper {
			continue
		}
		oldSons := n.sons

		// A node with no son testing the lower variable keeps its index and
		// sons unchanged; only its level moves down by one.
		touchesLower := false
		for _, s := range oldSons {
			if sn := &m.pool.nodes[s]; !sn.isTerminal() && sn.index == lower {
				touchesLower = true
				break
			}
		}
		if !touchesLower {
			continue
		}

		grand := make([][]int32, du)
		for k := int32(0); k < du; k++ {
			s := oldSons[k]
			sn := &m.pool.nodes[s]
			row := make([]int32, dl)
			if !sn.isTerminal() && sn.index == lower {
				copy(row, sn.sons)
			} else {
				for j := range row {
					row[j] = s
				}
			}
			grand[k] = row
		}

		if _, key, ok := upperTable.find(oldSons); ok {
			upperTable.erase(key)
		}

		newSons := make([]int32, dl)
		for j := int32(0); j < dl; j++ {
			col := make([]int32, du)
			for k := int32(0); k < du; k++ {
				col[k] = grand[k][j]
			}
			newSons[j] = m.makeInternal(upper, col)
		}
		for _, s := range newSons {
			m.incRef(s)
		}
		for _, s := range oldSons {
			m.decRefTryGC(s)
		}

		n.index = lower
		n.sons = newSons

		key := encodeSons(newSons)
		if existing, ok := lowerTable.buckets[key]; ok && existing != id {
			m.mergeNode(id, existing)
			continue
		}
		if existing, ok := rehomed.buckets[key]; ok && existing != id {
			m.mergeNode(id, existing)
			continue
		}
		rehomed.buckets[key] = id
	}

	lowerTable.merge(rehomed)

	m.indexToLevel[upper], m.indexToLevel[lower] = m.indexToLevel[lower], m.indexToLevel[upper]
	m.levelToIndex[level], m.levelToIndex[level+1] = m.levelToIndex[level+1], m.levelToIndex[level]
	m.cache.reset()
}

// mergeNode retires id in favour of existing, an already-registered node
// found to carry identical (index,sons) content after a swap. Every son
// edge anywhere in the pool still naming id is redirected to existing; once
// none remain, id is destroyed if it has no other referent, or else kept
// outside every unique table in m.orphans until whatever external handle is
// still pinning it lets go.
func (m *Manager) mergeNode(id, existing int32) {
	for i := range m.pool.nodes {
		nd := &m.pool.nodes[i]
		if nd.isTerminal() {
			continue
		}
		for k, s := range nd.sons {
			if s == id {
				nd.sons[k] = existing
				m.incRef(existing)
				m.decRef(id)
			}
		}
	}

	n := &m.pool.nodes[id]
	if n.refcou == 0 {
		sons := n.sons
		m.pool.destroy(id)
		for _, s := range sons {
			m.decRefTryGC(s)
		}
		return
	}
	m.orphans = append(m.orphans, id)
}

// siftVariable moves index through every level, recording the live node
// count at each position, then settles it at whichever position produced
// the smallest count: sift to the bottom, sift all the way to the top, then
// walk back to the recorded optimum.
func (m *Manager) siftVariable(index int32) {
	level := m.level(index)
	best := level
	bestCount := m.NodeCount()

	for level < m.varnum-1 {
		m.swapAdjacent(level)
		level++
		if c := m.NodeCount(); c < bestCount {
			bestCount, best = c, level
		}
	}
	for level > 0 {
		m.swapAdjacent(level - 1)
		level--
		if c := m.NodeCount(); c < bestCount {
			bestCount, best = c, level
		}
	}
	for level < best {
		m.swapAdjacent(level)
		level++
	}
	for level > best {
		m.swapAdjacent(level - 1)
		level--
	}
}

// Sift runs one round of variable reordering: every variable is visited in
// descending order of its current live node count (the variables most
// likely to be worth moving are tried first) and resettled at its locally
// optimal level via siftVariable.
func (m *Manager) Sift() {
	if m.depth > 0 {
		m.deferredSift = true
		return
	}
	m.enterPublic()
	defer m.leavePublic()

	order := make([]int32, m.varnum)
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(a, b int) bool {
		return m.uniq[order[a]].len() > m.uniq[order[b]].len()
	})
	for _, index := range order {
		m.siftVariable(index)
	}
	m.lastSiftCount = m.NodeCount()
}
