// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vstring

import "github.com/lofty-go/vextr/vextr"

// Iterator walks a String's bytes. It stores the owning String and a byte
// offset rather than a raw slice pointer, so it stays valid across a
// mutation that relocates the backing array — unlike a plain []byte index,
// it is never silently left pointing at freed or stale memory. It is,
// however, only meaningful for offsets that are still in range: a mutation
// that shrinks the string invalidates any iterator now past the new end,
// which Byte reports as a KindIteratorInvalidated error.
type Iterator struct {
	s   *String
	pos int
}

// Begin returns an iterator positioned at the first byte of s.
func Begin(s *String) Iterator { return Iterator{s: s, pos: 0} }

// End returns an iterator positioned one past the last byte of s.
func End(s *String) Iterator { return Iterator{s: s, pos: s.Len()} }

// Valid reports whether the iterator's position is still a dereferenceable
// byte of its String.
func (it Iterator) Valid() bool { return it.pos >= 0 && it.pos < it.s.Len() }

// Offset returns the iterator's current byte offset.
func (it Iterator) Offset() int { return it.pos }

// Byte returns the byte at the iterator's position, or a
// KindIteratorInvalidated error if a mutation has left the position out of
// range (e.g. a shrink past it).
func (it Iterator) Byte() (byte, error) {
	if !it.Valid() {
		return 0, vextr.NewIteratorInvalidated("vstring.Iterator.Byte")
	}
	return it.s.st.Bytes()[it.pos], nil
}

// Next advances the iterator by one byte, returning false once it reaches
// End.
func (it *Iterator) Next() bool {
	if it.pos >= it.s.Len() {
		return false
	}
	it.pos++
	return it.pos < it.s.Len()
}

// Prev moves the iterator back by one byte, returning false if it was
// already at the first byte.
func (it *Iterator) Prev() bool {
	if it.pos <= 0 {
		return false
	}
	it.pos--
	return true
}
