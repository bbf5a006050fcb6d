// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vector

import "github.com/lofty-go/vextr/vextr"

// Iterator walks a Vector[T]'s elements. It carries the generation counter
// the vector had when the iterator was created, so any structural mutation
// (PushBack, InsertAt, RemoveAt, Clear, Reserve growing the backing array)
// is detected on the next use rather than silently read through a stale or
// relocated slice.
type Iterator[T any] struct {
	v          *Vector[T]
	pos        int
	generation uint64
}

// Begin returns an iterator positioned at the first element of v.
func Begin[T any](v *Vector[T]) Iterator[T] {
	return Iterator[T]{v: v, pos: 0, generation: v.generation}
}

// End returns an iterator positioned one past the last element of v.
func End[T any](v *Vector[T]) Iterator[T] {
	return Iterator[T]{v: v, pos: v.Len(), generation: v.generation}
}

// Valid reports whether the iterator still points at a live element: its
// vector must not have structurally mutated since it was created, and its
// position must be in range.
func (it Iterator[T]) Valid() bool {
	return it.generation == it.v.generation && it.pos >= 0 && it.pos < it.v.Len()
}

// Index returns the iterator's current element index.
func (it Iterator[T]) Index() int { return it.pos }

// Value returns the element at the iterator's position, or a
// KindIteratorInvalidated error if the vector has structurally mutated
// since the iterator was created.
func (it Iterator[T]) Value() (T, error) {
	if it.generation != it.v.generation {
		var zero T
		return zero, vextr.NewIteratorInvalidated("vector.Iterator.Value")
	}
	return it.v.arr[it.pos], nil
}

// Next advances the iterator by one element, returning false once it
// reaches End.
func (it *Iterator[T]) Next() bool {
	if it.pos >= it.v.Len() {
		return false
	}
	it.pos++
	return it.pos < it.v.Len()
}

// Prev moves the iterator back by one element, returning false if it was
// already at the first element.
func (it *Iterator[T]) Prev() bool {
	if it.pos <= 0 {
		return false
	}
	it.pos--
	return true
}
