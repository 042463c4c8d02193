// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

// node is either an internal node, identified by sons != nil, or a terminal,
// identified by sons == nil. An internal node's index names the variable it
// tests; sons[k] is the child reached when that variable equals k. A
// terminal's value is in {0,...,M-1} or the special Undefined.
//
// The next field is the pool's free-list link. It is meaningful only while
// the node is not in use; it is an intrusive-chaining free-list link,
// reused here purely for pool recycling since the unique table itself is
// backed by a Go map (see uniquetable.go).
type node struct {
	index  int32
	value  int32
	sons   []int32
	refcou int32
	mark   bool
	next   int32
}

func (n *node) isTerminal() bool { return n.sons == nil }

// pool is a slab allocator for nodes: a single growable slice plus an
// intrusive free list. Go's append already amortises growth the way the
// original's main-slab-plus-overflow-slabs design does, so we do not keep
// a list of separate slab arrays; conceptually resize (grow) still appends
// fresh raw storage exactly like an overflow slab would.
type pool struct {
	nodes        []node
	freeHead     int32 // -1 when the free list is empty
	free         int   // number of recyclable + never-used slots
	produced     int   // total number of nodes ever produced
	maxsize      int   // hard cap on len(nodes), 0 means unbounded
	maxincrease  int   // cap on the growth of a single resize, 0 means unbounded
}

func newPool(size, maxincrease, maxsize int) *pool {
	p := &pool{
		freeHead:    -1,
		maxsize:     maxsize,
		maxincrease: maxincrease,
	}
	p.nodes = make([]node, size)
	for i := range p.nodes {
		p.nodes[i].next = int32(i) + 1
	}
	p.nodes[size-1].next = -1
	p.freeHead = 0
	p.free = size
	return p
}

// create returns the id of a fresh, zeroed node slot. It is a contract
// violation to call create on an exhausted pool; callers (the manager) must
// run GC and/or grow first.
func (p *pool) create() int32 {
	if p.freeHead < 0 {
		panic(ContractViolation{msg: "node pool exhausted"})
	}
	id := p.freeHead
	p.freeHead = p.nodes[id].next
	p.free--
	p.produced++
	p.nodes[id] = node{}
	return id
}

// destroy pushes id back onto the free list.
func (p *pool) destroy(id int32) {
	p.nodes[id] = node{next: p.freeHead}
	p.freeHead = id
	p.free++
}

// available reports how many nodes can be created without growing.
func (p *pool) available() int { return p.free }

func (p *pool) size() int { return len(p.nodes) }

// grow appends an overflow slab, doubling the pool (bounded by maxincrease
// and maxsize) and threading the new slots onto the free list. It returns
// false if the pool is already at its maximum size.
func (p *pool) grow() bool {
	oldsize := len(p.nodes)
	if p.maxsize > 0 && oldsize >= p.maxsize {
		return false
	}
	newsize := oldsize * 2
	if p.maxincrease > 0 && newsize > oldsize+p.maxincrease {
		newsize = oldsize + p.maxincrease
	}
	if p.maxsize > 0 && newsize > p.maxsize {
		newsize = p.maxsize
	}
	if newsize <= oldsize {
		return false
	}
	grown := make([]node, newsize)
	copy(grown, p.nodes)
	for i := oldsize; i < newsize; i++ {
		grown[i].next = int32(i) + 1
	}
	grown[newsize-1].next = p.freeHead
	p.freeHead = int32(oldsize)
	p.free += newsize - oldsize
	p.nodes = grown
	return true
}
