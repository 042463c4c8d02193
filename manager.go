// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"fmt"
	"log"
)

// gcstat records the history of garbage collections for a manager, purely
// for diagnostics (see Stats).
type gcstat struct {
	collections int
	reclaimed   int
	history     []gcpoint
}

type gcpoint struct {
	nodes     int
	available int
	reclaimed int
}

// Manager owns every node of every diagram built through it: the pool, the
// per-index unique tables, the terminal table, the apply cache, and the
// index<->level bijections. It is single-threaded: no two goroutines may
// call into the same Manager concurrently, and a Node produced by one
// Manager must never be passed to another.
type Manager struct {
	varnum   int32
	domain   []int32
	codomain int32

	indexToLevel []int32
	levelToIndex []int32

	pool *pool
	uniq []*uniqueTable

	terminals        map[int32]int32 // value -> node id
	specialUndefined int32           // node id of the Undefined terminal, -1 if unused

	cache *opcache

	minfreenodes int
	gcRatio      int
	autoReorder  bool

	depth         int  // > 0 while a public recursive call is executing
	deferredGC    bool
	deferredSift  bool
	lastSiftCount int // live node count as of the last completed Sift

	// orphans holds ids retired by a sifting collision (see reorder.go's
	// mergeNode) that could not be reclaimed immediately because an
	// external Node handle was still pinning them. They are not registered
	// in any uniqueTable, so collectGarbage sweeps this slice separately.
	orphans []int32

	nodefinalizer interface{}

	error  error
	gcstat gcstat
}

// New builds a manager for varnum variables. By default every variable is
// Boolean (domain {0,1}) and the codomain is {0,1}; use the FixedDomain,
// Domains and Codomain options to build a genuine multi-valued manager.
func New(varnum int, options ...Option) (*Manager, error) {
	m := &Manager{}
	if varnum < 1 || varnum > int(_MAXVAR) {
		m.seterror("bad number of variables (%d)", varnum)
		return nil, m.error
	}
	cfg := makeconfigs(varnum)
	for _, f := range options {
		f(cfg)
	}
	domain := cfg.resolveDomain()
	if len(domain) != varnum {
		m.seterror("domain table has %d entries, expected %d", len(domain), varnum)
		return nil, m.error
	}
	for i, d := range domain {
		if d < 2 {
			m.seterror("variable %d has domain size %d, must be >= 2", i, d)
			return nil, m.error
		}
	}

	m.varnum = int32(varnum)
	m.domain = domain
	m.codomain = cfg.codomain
	if _LOGLEVEL > 0 {
		log.Printf("new manager: varnum=%d codomain=%d\n", m.varnum, m.codomain)
	}

	m.indexToLevel = make([]int32, varnum)
	m.levelToIndex = make([]int32, varnum)
	for i := 0; i < varnum; i++ {
		m.indexToLevel[i] = int32(i)
		m.levelToIndex[i] = int32(i)
	}

	m.uniq = make([]*uniqueTable, varnum)
	for i := range m.uniq {
		m.uniq[i] = newUniqueTable()
	}

	nodesize := primeGte(cfg.nodesize)
	m.pool = newPool(nodesize, cfg.maxnodeincrease, cfg.maxnodesize)

	m.terminals = make(map[int32]int32, m.codomain)
	for v := int32(0); v < m.codomain; v++ {
		id := m.pool.create()
		m.pool.nodes[id] = node{index: -1, value: v, refcou: _MAXREFCOUNT}
		m.terminals[v] = id
	}
	m.specialUndefined = -1

	m.cache = newOpCache(cfg.cachesize, cfg.cacheratio)
	m.minfreenodes = cfg.minfreenodes
	m.gcRatio = cfg.gcratio
	m.autoReorder = cfg.autoreorder

	m.nodefinalizer = func(id *int32) {
		m.pool.nodes[*id].refcou--
	}

	m.gcstat.history = []gcpoint{}
	return m, nil
}

// Varnum returns the number of variables of m.
func (m *Manager) Varnum() int { return int(m.varnum) }

// Domain returns the domain size Dᵢ of variable i.
func (m *Manager) Domain(i int) int32 {
	m.checkIndex(int32(i))
	return m.domain[i]
}

// Codomain returns M, the number of terminal values.
func (m *Manager) Codomain() int32 { return m.codomain }

// SetGCRatio sets the percentage of the pool that a GC pass must reclaim
// for the manager to skip growing the pool afterwards (see GCRatio).
func (m *Manager) SetGCRatio(r int) { m.gcRatio = r }

// SetAutoReorder turns automatic sifting on or off.
func (m *Manager) SetAutoReorder(on bool) { m.autoReorder = on }

// ForceGC runs an immediate garbage collection pass.
func (m *Manager) ForceGC() { m.collectGarbage() }

// Stats returns a short textual summary of the manager's internal state.
func (m *Manager) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", m.varnum)
	res += fmt.Sprintf("Codomain:   %d\n", m.codomain)
	res += fmt.Sprintf("Allocated:  %d\n", m.pool.size())
	res += fmt.Sprintf("Produced:   %d\n", m.pool.produced)
	free := m.pool.available()
	r := (float64(free) / float64(m.pool.size())) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", free, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", m.pool.size()-free, 100.0-r)
	res += fmt.Sprintf("# of GC:    %d\n", m.gcstat.collections)
	return res
}

// *************************************************************************
// index / level bookkeeping

func (m *Manager) checkIndex(i int32) {
	if i < 0 || i >= m.varnum {
		m.violate("variable index %d out of range [0,%d)", i, m.varnum)
	}
}

func (m *Manager) checkValue(i int32, v int32) {
	if v < 0 || v >= m.domain[i] {
		m.violate("value %d out of domain [0,%d) of variable %d", v, m.domain[i], i)
	}
}

func (m *Manager) level(index int32) int32 { return m.indexToLevel[index] }

func (m *Manager) indexAt(level int32) int32 { return m.levelToIndex[level] }

// levelOfNode returns the level of node id: the variable's level for an
// internal node, m.varnum (the terminal level) for a terminal.
func (m *Manager) levelOfNode(id int32) int32 {
	n := &m.pool.nodes[id]
	if n.isTerminal() {
		return m.varnum
	}
	return m.level(n.index)
}

// *************************************************************************
// node creation (C5.4.4.1 / 4.4.2)

// makeTerminal returns the unique node for terminal value v.
func (m *Manager) makeTerminal(v int32) int32 {
	if v == Undefined {
		return m.makeSpecial()
	}
	id, ok := m.terminals[v]
	if !ok {
		m.violate("value %d is not a valid terminal for a codomain of size %d", v, m.codomain)
	}
	return id
}

// makeSpecial returns the unique node for the Undefined terminal, creating
// it lazily on first use.
func (m *Manager) makeSpecial() int32 {
	if m.specialUndefined >= 0 {
		return m.specialUndefined
	}
	id := m.allocate()
	m.pool.nodes[id] = node{index: -1, value: Undefined, refcou: _MAXREFCOUNT}
	m.specialUndefined = id
	return id
}

// makeInternal is the canonicalisation primitive: it returns the unique
// node of index with the given sons, creating one if none exists, and
// collapsing to sons[0] when every son is identical (reducedness).
func (m *Manager) makeInternal(index int32, sons []int32) int32 {
	allEqual := true
	for _, s := range sons[1:] {
		if s != sons[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return sons[0]
	}
	if id, _, ok := m.uniq[index].find(sons); ok {
		return id
	}
	id := m.allocate()
	cp := make([]int32, len(sons))
	copy(cp, sons)
	m.pool.nodes[id] = node{index: index, sons: cp, mark: true}
	_, key, _ := m.uniq[index].find(cp)
	m.uniq[index].insert(key, id)
	for _, s := range cp {
		m.incRef(s)
	}
	return id
}

// *************************************************************************
// allocation policy (4.4.3)

func (m *Manager) allocate() int32 {
	if m.pool.available() == 0 {
		if m.depth > 0 {
			// A reorder or GC here could invalidate an in-flight apply's
			// recursion frames (its cached calls refer to node ids that a
			// sweep might recycle); grow instead and let the outermost
			// call drain the deferred cleanup once it returns.
			if !m.pool.grow() {
				m.violate("node pool exhausted (%d nodes) while an operation is in progress", m.pool.size())
			}
			m.deferredGC = true
			return m.pool.create()
		}
		m.collectGarbage()
		reclaimedRatio := 0
		if m.pool.size() > 0 {
			reclaimedRatio = (m.pool.available() * 100) / m.pool.size()
		}
		if reclaimedRatio < m.gcRatio || reclaimedRatio < m.minfreenodes {
			if !m.pool.grow() {
				if m.pool.available() == 0 {
					m.violate("node pool exhausted (%d nodes)", m.pool.size())
				}
			}
		}
	}
	return m.pool.create()
}

// enterPublic/leavePublic bracket every externally visible manager
// operation, deferring GC and sifting until the outermost call returns.
func (m *Manager) enterPublic() { m.depth++ }

func (m *Manager) leavePublic() {
	m.depth--
	if m.depth == 0 {
		if m.deferredGC {
			m.deferredGC = false
			m.collectGarbage()
		}
		if m.deferredSift {
			m.deferredSift = false
			m.Sift()
			return
		}
		if m.autoReorder {
			if count := m.NodeCount(); m.lastSiftCount == 0 || count > 2*m.lastSiftCount {
				m.Sift()
			}
		}
	}
}

// *************************************************************************
// reference counting (C6 bookkeeping)

func (m *Manager) incRef(id int32) {
	n := &m.pool.nodes[id]
	if n.refcou < _MAXREFCOUNT {
		n.refcou++
	}
	n.mark = false
}

func (m *Manager) decRef(id int32) {
	n := &m.pool.nodes[id]
	if n.refcou > 0 && n.refcou < _MAXREFCOUNT {
		n.refcou--
	}
}

// decRefTryGC decrements id's refcount and, if it drops to zero and the
// node is unmarked, immediately frees it and cascades to its sons. Used by
// the sifting primitive (4.4.5) which needs subtrees reclaimed eagerly
// rather than waiting for the next sweep.
func (m *Manager) decRefTryGC(id int32) {
	n := &m.pool.nodes[id]
	if n.refcou >= _MAXREFCOUNT {
		return
	}
	if n.refcou > 0 {
		n.refcou--
	}
	if n.refcou != 0 || n.mark {
		return
	}
	if n.isTerminal() {
		if m.specialUndefined == id {
			m.specialUndefined = -1
		}
		m.pool.destroy(id)
		return
	}
	index, sons := n.index, n.sons
	if _, key, ok := m.uniq[index].find(sons); ok {
		m.uniq[index].erase(key)
	}
	m.pool.destroy(id)
	for _, s := range sons {
		m.decRefTryGC(s)
	}
}

// *************************************************************************
// garbage collection (4.4.4)

// collectGarbage sweeps every unique table, from the root level down to the
// leaves so that a cascade of zero-refcount sons is caught in the same pass (a son's level
// is always strictly greater than its parent's, so visiting levels in
// ascending order processes parents before the children they may
// orphan).
func (m *Manager) collectGarbage() {
	if _LOGLEVEL > 0 {
		log.Println("starting GC")
	}
	reclaimed := 0
	for lvl := int32(0); lvl < m.varnum; lvl++ {
		index := m.indexAt(lvl)
		t := m.uniq[index]
		for key, id := range t.buckets {
			n := &m.pool.nodes[id]
			if n.refcou == 0 && !n.mark {
				for _, s := range n.sons {
					m.decRef(s)
				}
				delete(t.buckets, key)
				m.pool.destroy(id)
				reclaimed++
			}
		}
	}
	if m.specialUndefined >= 0 {
		n := &m.pool.nodes[m.specialUndefined]
		if n.refcou == 0 && !n.mark {
			m.pool.destroy(m.specialUndefined)
			m.specialUndefined = -1
			reclaimed++
		}
	}
	if len(m.orphans) > 0 {
		live := m.orphans[:0]
		for _, id := range m.orphans {
			n := &m.pool.nodes[id]
			if n.refcou == 0 && !n.mark {
				for _, s := range n.sons {
					m.decRef(s)
				}
				m.pool.destroy(id)
				reclaimed++
				continue
			}
			live = append(live, id)
		}
		m.orphans = live
	}
	m.cache.reset()
	m.gcstat.collections++
	m.gcstat.reclaimed += reclaimed
	m.gcstat.history = append(m.gcstat.history, gcpoint{
		nodes:     m.pool.size(),
		available: m.pool.available(),
		reclaimed: reclaimed,
	})
	if _LOGLEVEL > 0 {
		log.Printf("end GC; reclaimed %d\n", reclaimed)
	}
}

// NodeCount returns the number of live internal nodes currently allocated
// by the manager, independently of any particular diagram.
func (m *Manager) NodeCount() int {
	total := 0
	for _, t := range m.uniq {
		total += t.len()
	}
	return total
}
