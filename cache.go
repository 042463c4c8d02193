// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

// opcache memoises the apply and restrict engines. A single cache keyed by
// a tagged (op, operands) triple covers every operator, in place of one
// purpose-built cache per operation (see DESIGN.md for the operations this
// engine dropped).
type opcache struct {
	apply    map[applyKey]int32
	restrict map[restrictKey]int32
	hit      int
	miss     int
}

type applyKey struct {
	op       Operator
	lhs, rhs int32
}

type restrictKey struct {
	index int32
	value int32
	f     int32
}

func newOpCache(size, ratio int) *opcache {
	if size <= 0 {
		size = 10000
	}
	return &opcache{
		apply:    make(map[applyKey]int32, size),
		restrict: make(map[restrictKey]int32, size/4+1),
	}
}

func (c *opcache) matchApply(op Operator, lhs, rhs int32) (int32, bool) {
	v, ok := c.apply[applyKey{op, lhs, rhs}]
	if ok {
		c.hit++
	} else {
		c.miss++
	}
	return v, ok
}

func (c *opcache) setApply(op Operator, lhs, rhs, res int32) {
	c.apply[applyKey{op, lhs, rhs}] = res
}

func (c *opcache) matchRestrict(index, value, f int32) (int32, bool) {
	v, ok := c.restrict[restrictKey{index, value, f}]
	return v, ok
}

func (c *opcache) setRestrict(index, value, f, res int32) {
	c.restrict[restrictKey{index, value, f}] = res
}

// reset drops every memoised entry; called after a GC pass since the node
// ids a stale entry refers to may have been reused for a different node.
func (c *opcache) reset() {
	c.apply = make(map[applyKey]int32, len(c.apply))
	c.restrict = make(map[restrictKey]int32, len(c.restrict))
}
