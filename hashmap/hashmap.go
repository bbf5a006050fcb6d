// Copyright (c) 2020 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashmap implements a hopscotch-hashing generic map: every key's
// home bucket tracks, via a bitmap, which of the next few buckets hold
// entries that belong to it, bounding every lookup to a fixed
// neighborhood regardless of how full the table gets. Insertion grows that
// neighborhood — via in-table displacement — before it ever grows the
// bucket count, trading a few extra swaps for fewer reallocations.
package hashmap

import (
	"math/bits"

	"github.com/lofty-go/vextr/vconfig"
	"github.com/lofty-go/vextr/vextr"
)

type entry[K any, V any] struct {
	// hash is 0 for an unused slot (see remapZero), nonzero for every slot
	// that has ever held an entry — tombstoned or live.
	hash      uint64
	key       K
	value     V
	tombstone bool
}

func (e *entry[K, V]) used() bool { return e.hash != 0 }
func (e *entry[K, V]) live() bool { return e.hash != 0 && !e.tombstone }

// Hashmap is a hopscotch-hashing map from K to V.
type Hashmap[K any, V any] struct {
	seed         uint64
	entries      []entry[K, V]
	hopInfo      []uint32 // hopInfo[i] bit j set: entries[(i+j)&mask] belongs to home i (j < hopBits only)
	length       int
	neighborhood int
	hash         func(K) uint64
	equal        func(K, K) bool

	cfg     *vconfig.Config
	metrics *vextr.Metrics
}

// Option configures a Hashmap at construction.
type Option[K any, V any] func(*Hashmap[K, V])

// WithConfig overrides the growth tunables (default vconfig.Default()).
func WithConfig[K any, V any](cfg *vconfig.Config) Option[K, V] {
	return func(m *Hashmap[K, V]) { m.cfg = cfg }
}

// WithMetrics wires displacement/rehash counters into m.
func WithMetrics[K any, V any](metrics *vextr.Metrics) Option[K, V] {
	return func(m *Hashmap[K, V]) { m.metrics = metrics }
}

// New builds a Hashmap presized to hold at least size entries without
// growing.
func New[K any, V any](size uint, hash func(K) uint64, equal func(K, K) bool, opts ...Option[K, V]) *Hashmap[K, V] {
	m := &Hashmap[K, V]{hash: hash, equal: equal}
	for _, opt := range opts {
		opt(m)
	}
	if m.cfg == nil {
		m.cfg = vconfig.Default()
	}
	if size != 0 {
		buckets := m.cfg.MinBuckets
		for buckets*m.cfg.MaxLoadFactorPercent < int(size)*100 {
			buckets <<= 1
		}
		m.resize(buckets, m.cfg.InitialNeighborhood)
	}
	return m
}

// Len returns the number of live entries in m.
func (m *Hashmap[K, V]) Len() int { return m.length }

func (m *Hashmap[K, V]) mask() int { return len(m.entries) - 1 }

func (m *Hashmap[K, V]) position(hash uint64) int {
	return int(hash^m.seed) & m.mask()
}

// distance returns how many forward steps (wrapping) separate from and to.
func (m *Hashmap[K, V]) distance(from, to int) int {
	d := to - from
	if d < 0 {
		d += len(m.entries)
	}
	return d
}

func (m *Hashmap[K, V]) hopBit(home, pos int) uint32 {
	return 1 << uint(m.distance(home, pos))
}

func (m *Hashmap[K, V]) setHop(home, pos int)   { m.hopInfo[home] |= m.hopBit(home, pos) }
func (m *Hashmap[K, V]) clearHop(home, pos int) { m.hopInfo[home] &^= m.hopBit(home, pos) }

// Set associates k with v in m, growing the table first if needed.
func (m *Hashmap[K, V]) Set(k K, v V) {
	if len(m.entries) == 0 {
		m.resize(m.cfg.MinBuckets, m.cfg.InitialNeighborhood)
	} else if (m.length+1)*100 > len(m.entries)*m.cfg.MaxLoadFactorPercent {
		m.growBuckets()
	}
	hash := remapZero(m.hash(k))
	m.insert(hash, k, v)
}

func (m *Hashmap[K, V]) insert(hash uint64, k K, v V) {
	home := m.position(hash)
	if ent := m.findLive(home, hash, k); ent != nil {
		ent.value = v
		return
	}
	for {
		if pos, ok := m.place(home); ok {
			m.entries[pos] = entry[K, V]{hash: hash, key: k, value: v}
			m.setHop(home, pos)
			m.length++
			return
		}
		if m.neighborhood < len(m.entries) {
			m.growNeighborhood()
		} else {
			m.growBuckets()
		}
		home = m.position(hash)
	}
}

// hopBits is how many distances from a home a hopInfo word can record.
const hopBits = 32

// findLive returns the live entry for (hash, k) within home's neighborhood,
// or nil. For the first hopBits slots it only inspects the bits hopInfo
// marks as belonging to home; when the neighborhood is wider than that, the
// slots beyond the bitmap's reach are scanned one by one.
func (m *Hashmap[K, V]) findLive(home int, hash uint64, k K) *entry[K, V] {
	bitmap := m.hopInfo[home]
	for bitmap != 0 {
		i := bits.TrailingZeros32(bitmap)
		bitmap &^= 1 << uint(i)
		pos := (home + i) & m.mask()
		ent := &m.entries[pos]
		if ent.live() && ent.hash == hash && m.equal(ent.key, k) {
			return ent
		}
	}
	for d := hopBits; d < m.neighborhood; d++ {
		ent := &m.entries[(home+d)&m.mask()]
		if ent.live() && ent.hash == hash && m.equal(ent.key, k) {
			return ent
		}
	}
	return nil
}

// place finds (creating room via displacement if necessary) a slot within
// [home, home+neighborhood) that Set can write into. ok is false if the
// neighborhood is exhausted and the caller must grow before retrying.
func (m *Hashmap[K, V]) place(home int) (int, bool) {
	pos := home
	dist := 0
	for m.entries[pos].used() && !m.entries[pos].tombstone {
		pos = (pos + 1) & m.mask()
		dist++
		if dist == len(m.entries) {
			return 0, false
		}
	}
	for dist >= m.neighborhood {
		moved, ok := m.displaceTo(pos)
		if !ok {
			return 0, false
		}
		pos = moved
		dist = m.distance(home, pos)
	}
	return pos, true
}

// displaceTo finds a used slot within [empty-neighborhood+1, empty) whose
// own home is still within neighborhood of empty, and swaps it into empty —
// freeing up a slot closer to empty's eventual occupant's home. It tries
// the candidate closest to empty-neighborhood+1 first, maximizing how far
// the freed slot moves toward the target home.
func (m *Hashmap[K, V]) displaceTo(empty int) (int, bool) {
	for back := m.neighborhood - 1; back >= 1; back-- {
		j := (empty - back + len(m.entries)*2) % len(m.entries)
		e := &m.entries[j]
		if !e.used() {
			continue
		}
		jHome := m.position(e.hash)
		if m.distance(jHome, empty) < m.neighborhood {
			m.entries[empty] = *e
			m.clearHop(jHome, j)
			m.setHop(jHome, empty)
			*e = entry[K, V]{}
			if m.metrics != nil && m.metrics.Displacements != nil {
				m.metrics.Displacements.Inc()
			}
			return j, true
		}
	}
	return 0, false
}

// Get returns the value associated with k, if present.
func (m *Hashmap[K, V]) Get(k K) (V, bool) {
	if len(m.entries) == 0 {
		var zero V
		return zero, false
	}
	hash := remapZero(m.hash(k))
	if ent := m.findLive(m.position(hash), hash, k); ent != nil {
		return ent.value, true
	}
	var zero V
	return zero, false
}

// Delete removes k from m. The slot is tombstoned rather than cleared: its
// hash and hop bit are preserved so that any other key whose neighborhood
// still reaches through this slot keeps a correct lookup chain; Set is free
// to reuse a tombstoned slot outright. Deleting a key absent from m reports
// a KindBadAccess error.
func (m *Hashmap[K, V]) Delete(k K) error {
	if len(m.entries) == 0 {
		return vextr.NewBadAccess("hashmap.Hashmap.Delete", "key not found")
	}
	hash := remapZero(m.hash(k))
	ent := m.findLive(m.position(hash), hash, k)
	if ent == nil {
		return vextr.NewBadAccess("hashmap.Hashmap.Delete", "key not found")
	}
	var zeroK K
	var zeroV V
	ent.key, ent.value = zeroK, zeroV
	ent.tombstone = true
	m.length--
	return nil
}

// Range calls f for every live entry in m, in bucket order. f must not
// mutate m.
func (m *Hashmap[K, V]) Range(f func(K, V) bool) {
	for i := range m.entries {
		if ent := &m.entries[i]; ent.live() {
			if !f(ent.key, ent.value) {
				return
			}
		}
	}
}

func (m *Hashmap[K, V]) growNeighborhood() {
	next := m.neighborhood * m.cfg.BucketGrowth
	if next > len(m.entries) {
		next = len(m.entries)
	}
	m.resize(len(m.entries), next)
}

func (m *Hashmap[K, V]) growBuckets() {
	m.resize(len(m.entries)*m.cfg.BucketGrowth, m.cfg.InitialNeighborhood)
}

// resize rebuilds the table at the given bucket count and neighborhood
// size, reinserting every live entry and dropping every tombstone.
func (m *Hashmap[K, V]) resize(buckets, neighborhood int) {
	if buckets < m.cfg.MinBuckets {
		buckets = m.cfg.MinBuckets
	}
	if neighborhood > buckets {
		neighborhood = buckets
	}
	old := m.entries
	m.entries = make([]entry[K, V], buckets)
	m.hopInfo = make([]uint32, buckets)
	m.neighborhood = neighborhood
	m.length = 0
	if m.metrics != nil && m.metrics.Rehashes != nil {
		m.metrics.Rehashes.Inc()
	}
	for _, ent := range old {
		if !ent.live() {
			continue
		}
		m.insert(ent.hash, ent.key, ent.value)
	}
}
