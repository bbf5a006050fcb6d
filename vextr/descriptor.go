// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vextr

// Descriptor is the type-erased vtable spec.md §3.2 calls for: it lets the
// complex vextr operations move bulk byte ranges around without knowing the
// element type, while still calling the real constructors/destructors so
// that throwing (panicking or error-returning) user code leaves the
// container in a well-defined state.
//
// All ranges are expressed as [begin, end) byte windows into a vextr's
// backing array; ElemSize must evenly divide every range's length.
type Descriptor struct {
	// ElemSize is the size in bytes of one element.
	ElemSize int
	// CopyConstruct copy-constructs the elements of src into dst, which
	// must be at least len(src) bytes. It may return an error; on error it
	// must guarantee that no element past the failure point was
	// constructed.
	CopyConstruct func(dst, src []byte) error
	// MoveConstruct move-constructs the elements of src into dst. Its error
	// is checked where it moves elements into a new array or a backup, but
	// ignored by OverlappingMove and by AssignConcat's rollback (see
	// AssignConcat's note on moving a source back after a failure).
	MoveConstruct func(dst, src []byte) error
	// Destruct destructs the elements in [begin, end). It must not fail:
	// a destructor that can itself throw gives the transaction machinery
	// no safe unwind path, exactly as in the original.
	Destruct func(rng []byte)
}

// constructRange dispatches to CopyConstruct or MoveConstruct per the move
// flag, used by the complex operations to avoid repeating the branch.
func (d Descriptor) constructRange(dst, src []byte, move bool) error {
	if move {
		return d.MoveConstruct(dst, src)
	}
	return d.CopyConstruct(dst, src)
}
