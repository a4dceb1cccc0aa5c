package engine

import "github.com/dolthub/swiss"

// shardInitialCapacity is spec.md §4.3's "initial capacity ≈ 2^15
// entries" target, chosen so steady-state ingestion never triggers a
// rehash for realistic station-name cardinalities.
const shardInitialCapacity = 1 << 15

// Shard is a single consumer's private name-to-aggregate table. Spec.md
// requires "no concurrent mutation" and "keys unique per shard" — both
// hold structurally here because a Shard is only ever touched by the
// goroutine that owns it; nothing in this package hands a *Shard to
// more than one goroutine.
//
// Backed by a SwissTable (github.com/dolthub/swiss) rather than a
// built-in map: it accepts the pre-sizing hint literally and avoids the
// built-in map's incremental, randomized-order growth, which matters
// here because accept() runs on the hot path for every line in the
// file.
type Shard struct {
	table *swiss.Map[string, *MetaInfo]
}

// NewShard allocates an empty, pre-sized shard.
func NewShard() *Shard {
	return &Shard{table: swiss.NewMap[string, *MetaInfo](shardInitialCapacity)}
}

// accept folds value (in tenths) into name's aggregate, creating it on
// first observation.
func (s *Shard) accept(name []byte, tenths int64) {
	if agg, ok := s.table.Get(string(name)); ok {
		agg.update(tenths)
		return
	}
	agg := &MetaInfo{MinTenths: tenths, MaxTenths: tenths, SumTenths: tenths, Count: 1}
	s.table.Put(string(name), agg)
}

// Lookup returns name's aggregate, or the identity element if name was
// never observed in this shard.
func (s *Shard) Lookup(name string) MetaInfo {
	if agg, ok := s.table.Get(name); ok {
		return *agg
	}
	return identityMetaInfo()
}

// Enumerate calls fn once per (name, aggregate) pair in this shard, in
// unspecified order, matching spec.md §4.3's enumerate() contract.
func (s *Shard) Enumerate(fn func(name string, agg MetaInfo)) {
	s.table.Iter(func(name string, agg *MetaInfo) bool {
		fn(name, *agg)
		return false
	})
}

// Len reports the number of distinct names observed by this shard.
func (s *Shard) Len() int { return s.table.Count() }
