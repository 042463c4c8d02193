// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"errors"
)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in a diagram. We use only the first
// 21 bits for encoding levels (so also the max number of variables); the
// other bits are reserved for markings. We always use int32 to avoid problems
// when we change architecture.
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter, also used to
// stick nodes (like constants and single-variable diagrams) in the node
// table. It is equal to 1023 (10 bits).
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize: approximately one million nodes.
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTCODOMAIN is the default number of terminal values (M) when no
// explicit Codomain option is given; it matches the Boolean case.
const _DEFAULTCODOMAIN int32 = 2

// Undefined is the reserved codomain value used by extended direct partial
// logic derivatives to mark a "don't care" leaf. It is not one of the
// ordinary values {0,...,M-1}; Evaluate returns it for an assignment that
// reaches an Undefined leaf.
const Undefined int32 = -1

var errMemory = errors.New("unable to free memory or resize node table")
var errResize = errors.New("should resize caches")  // when gc and then resize
var errReset = errors.New("should reset caches")    // when gc only, no resize
var errManager = errors.New("node belongs to a different manager")
var errDomain = errors.New("value outside the domain of the variable")
var errIndex = errors.New("variable index out of range")
