// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

// configs stores the values of the different tunable parameters of a
// manager, set through the functional options passed to New.
type configs struct {
	varnum          int     // number of variables
	codomain        int32   // M, number of terminal values
	domain          []int32 // Dᵢ per index; nil means "use fixedDomain for every index"
	fixedDomain     int32   // used to build domain lazily when Domains is not given
	nodesize        int     // initial number of nodes in the pool
	cachesize       int     // initial cache size
	cacheratio      int     // ratio (%) between cache size and node table, 0 if constant
	maxnodesize     int     // maximum total number of nodes (0: no limit)
	maxnodeincrease int     // maximum nodes added to the table at each resize (0: no limit)
	minfreenodes    int     // minimum % of free nodes left after GC before a resize is triggered
	gcratio         int     // % of reclaimed nodes below which GC triggers a grow instead
	autoreorder     bool    // whether sifting runs automatically
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.codomain = _DEFAULTCODOMAIN
	c.fixedDomain = 2
	c.gcratio = 20
	// we build enough nodes to include the M terminals and the n variables
	c.nodesize = 2*varnum + int(c.codomain) + 2
	return c
}

func (c *configs) resolveDomain() []int32 {
	if c.domain != nil {
		return c.domain
	}
	d := make([]int32, c.varnum)
	for i := range d {
		d[i] = c.fixedDomain
	}
	return d
}

// Option is a configuration function, applied by New to a fresh configs
// value before the manager is built.
type Option func(*configs)

// Nodesize sets a preferred initial size for the node pool. The pool may
// grow during computation; the default is large enough to hold the terminals
// plus two nodes per variable.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size >= 2*c.varnum+int(c.codomain)+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize limits the total number of nodes a manager may ever hold. An
// operation that would grow the pool past this limit fails instead. The
// default (0) means no limit.
func Maxnodesize(size int) Option {
	return func(c *configs) { c.maxnodesize = size }
}

// Maxnodeincrease limits how much the node pool grows in a single resize.
// Set to zero to remove the limit.
func Maxnodeincrease(size int) Option {
	return func(c *configs) { c.maxnodeincrease = size }
}

// Minfreenodes sets the percentage of free nodes that must remain after a
// garbage collection; below this threshold the pool is grown instead of
// relying on the next GC. The default is 20%.
func Minfreenodes(ratio int) Option {
	return func(c *configs) { c.minfreenodes = ratio }
}

// Cachesize sets the initial number of entries in the apply cache.
func Cachesize(size int) Option {
	return func(c *configs) { c.cachesize = size }
}

// Cacheratio records a percentage of cache entries for every 100 slots in
// the node pool. The cache does not use it: it is a Go map that grows as
// entries are added, whatever this value, and is emptied after every
// garbage collection.
func Cacheratio(ratio int) Option {
	return func(c *configs) { c.cacheratio = ratio }
}

// GCRatio sets the percentage of the pool that must be reclaimed by a GC
// pass for the manager to skip growing the pool afterwards. Below this ratio
// we consider the GC unproductive and grow instead. The default is 20%.
func GCRatio(ratio int) Option {
	return func(c *configs) { c.gcratio = ratio }
}

// AutoReorder turns dynamic variable reordering (sifting) on or off. When
// on, a sift pass may run, deferred to the end of the enclosing public call,
// whenever the node manager decides the table has grown enough to warrant
// one. Off by default.
func AutoReorder(on bool) Option {
	return func(c *configs) { c.autoreorder = on }
}

// Codomain sets the number of terminal values M (the diagram computes a
// function into {0,...,M-1}). The default is 2, the Boolean case.
func Codomain(m int32) Option {
	return func(c *configs) {
		if m >= 2 {
			c.codomain = m
		}
	}
}

// FixedDomain sets a single domain size K used for every variable, so that
// Dᵢ = K for all i. The default is 2 (Boolean variables).
func FixedDomain(k int32) Option {
	return func(c *configs) {
		if k >= 2 {
			c.fixedDomain = k
			c.domain = nil
		}
	}
}

// Domains sets an explicit, per-index domain table. Its length must equal
// varnum; New returns an error otherwise.
func Domains(d []int32) Option {
	return func(c *configs) {
		dup := make([]int32, len(d))
		copy(dup, d)
		c.domain = dup
	}
}
