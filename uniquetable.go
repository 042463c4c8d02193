// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "encoding/binary"

// uniqueTable maps the son-tuple of an internal node of a fixed index to the
// canonical node id for that tuple. One table exists per variable index.
//
// Rather than an open-chained hash table keyed by a node's own
// next-in-chain field, this packs the son ids into an encoded byte string
// and uses it as the key of a Go map, generalised from a fixed-arity byte
// array to the variable arity Dᵢ a multi-valued variable requires.
type uniqueTable struct {
	buckets map[string]int32
}

func newUniqueTable() *uniqueTable {
	return &uniqueTable{buckets: make(map[string]int32)}
}

func encodeSons(sons []int32) string {
	buf := make([]byte, 4*len(sons))
	for i, s := range sons {
		binary.LittleEndian.PutUint32(buf[4*i:4*i+4], uint32(s))
	}
	return string(buf)
}

// find returns the canonical node for sons, if one is already registered,
// along with the key it would be stored under.
func (t *uniqueTable) find(sons []int32) (id int32, key string, ok bool) {
	key = encodeSons(sons)
	id, ok = t.buckets[key]
	return id, key, ok
}

// insert registers id under key. The caller must have verified with find
// that no equal entry exists.
func (t *uniqueTable) insert(key string, id int32) {
	t.buckets[key] = id
}

func (t *uniqueTable) erase(key string) {
	delete(t.buckets, key)
}

func (t *uniqueTable) len() int { return len(t.buckets) }

// merge moves every entry of other into t, used by the sifting primitive
// when a variable's population is rebuilt under a different index.
func (t *uniqueTable) merge(other *uniqueTable) {
	for k, v := range other.buckets {
		t.buckets[k] = v
	}
	other.buckets = make(map[string]int32)
}
