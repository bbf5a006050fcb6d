// Copyright (c) 2020 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// Hashable represents a key for an entry in a Hashmap that cannot natively
// be compared with ==.
type Hashable interface {
	Hash() uint64
	Equal(other interface{}) bool
}

// zeroRemap is the value a real hash of 0 is remapped to before it's ever
// stored in a bucket. Bucket 0-ness (an unused slot) is tracked by a stored
// hash of exactly 0, so a legitimate key that happens to hash to 0 would
// otherwise be indistinguishable from an empty bucket.
const zeroRemap = 65521

func remapZero(h uint64) uint64 {
	if h == 0 {
		return zeroRemap
	}
	return h
}
