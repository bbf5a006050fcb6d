// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vextr

// Allocator is vextr's collaboration boundary with memory management
// (spec.md §6). Go's garbage collector reclaims an abandoned array on its
// own, so unlike the C++ original there is no Free method here: the
// interface exists so a caller can plug a pooled or instrumented allocator
// for the Alloc/Realloc calls that actually matter for performance, not so
// vextr can manage a release by hand.
type Allocator interface {
	// Alloc returns a freshly allocated, zeroed byte slice of length n.
	Alloc(n int) []byte
	// Realloc returns a byte slice of length n holding b's original
	// contents (truncated or zero-extended). It may return b itself
	// (grown in place, if b's capacity allows it) or a new slice — callers
	// must not keep using b afterwards.
	Realloc(b []byte, n int) []byte
}

// defaultAllocator is the zero-configuration Allocator backed by make().
type defaultAllocator struct{}

func (defaultAllocator) Alloc(n int) []byte { return make([]byte, n) }

func (defaultAllocator) Realloc(b []byte, n int) []byte {
	if n <= cap(b) {
		out := b[:n]
		for i := len(b); i < n; i++ {
			out[i] = 0
		}
		return out
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// DefaultAllocator is the Allocator used when a facade is not given one.
var DefaultAllocator Allocator = defaultAllocator{}
