// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package vextr implements the discriminated buffer engine that backs the
// string and vector facades (vstring.String, vector.Vector[T]): one state
// machine that fuses an empty mode, an externally-owned read-only view, an
// embedded fixed-size buffer, and a heap-allocated prefixed array behind a
// single byte slice plus a handful of flags.
//
// Go already gives a slice its length and capacity for free, so vextr does
// not hand-roll a capacity header the way the C++ original does: a
// "prefixed" array's capacity is simply cap() of its backing slice, and a
// "non-prefixed" (external) array's capacity is defined to equal its
// length, matching §3.1 of the design this package implements.
package vextr

import "github.com/lofty-go/vextr/vconfig"

// Mode discriminates the storage backing a State's active byte array.
type Mode uint8

const (
	// ModeEmpty means there is no array; any write allocates one.
	ModeEmpty Mode = iota
	// ModeExternal means the array is a borrowed, read-only view (e.g. a
	// string literal); its capacity equals its length.
	ModeExternal
	// ModeEmbedded means the array lives in the facade's own embedded
	// buffer.
	ModeEmbedded
	// ModeHeap means the array was obtained from the Allocator and is
	// owned by this State.
	ModeHeap
)

// State is the four-field vextr state of spec.md §3.1: a byte array plus
// flags, with no inheritance and no vtable — dispatch between trivial and
// complex element handling happens one level up, via a Descriptor.
type State struct {
	// array is the live byte window; len(array) is the size in bytes.
	// array == nil iff the state is empty.
	array []byte

	mode Mode

	// hasEmbedded is immutable once the owning facade is constructed: it
	// records whether that facade carries an embedded buffer at all.
	hasEmbedded bool
	// isPrefixed says the active array can be grown in place (up to its
	// cap) or replaced via the allocator; false means it is an external,
	// read-only view.
	isPrefixed bool
	// isDynamic says the active array came from the Allocator and must be
	// accounted for as a release when replaced.
	isDynamic bool
	// hasNulTerm says a terminating NUL element is reachable one past the
	// end of array; used only by the string facade.
	hasNulTerm bool
}

// Size returns the size of the active array in bytes.
func (s *State) Size() int { return len(s.array) }

// Bytes returns the active byte window. Callers must not retain it past the
// next mutation, since embedded-to-heap and heap-to-heap transitions may
// relocate it.
func (s *State) Bytes() []byte { return s.array }

// Mode reports the current storage mode.
func (s *State) Mode() Mode { return s.mode }

// HasEmbedded reports whether the owning facade carries an embedded buffer.
func (s *State) HasEmbedded() bool { return s.hasEmbedded }

// IsPrefixed reports whether the active array can be grown in place.
func (s *State) IsPrefixed() bool { return s.isPrefixed }

// IsDynamic reports whether the active array was obtained from the
// Allocator.
func (s *State) IsDynamic() bool { return s.isDynamic }

// HasNulTerm reports whether the active array is NUL-terminated (strings
// only).
func (s *State) HasNulTerm() bool { return s.hasNulTerm }

// SetHasNulTerm is used by the string facade to record or clear NUL
// termination; it does not itself append or remove a terminator byte.
func (s *State) SetHasNulTerm(v bool) { s.hasNulTerm = v }

// Capacity returns the number of bytes the active array can hold without a
// reallocation: cap() of the backing slice for prefixed arrays, the
// array's own length for external (read-only) views, and 0 when empty.
func (s *State) Capacity() int {
	switch s.mode {
	case ModeEmpty:
		return 0
	case ModeExternal:
		return len(s.array)
	default:
		return cap(s.array)
	}
}

// NewEmpty returns the empty-mode state: no array, has_embedded recorded
// for later transaction decisions.
func NewEmpty(hasEmbedded bool) State {
	return State{hasEmbedded: hasEmbedded}
}

// NewExternal adopts src as a borrowed, read-only, non-prefixed view —
// e.g. a string literal. hasNulTerm should be set when src is already
// NUL-terminated by its owner.
func NewExternal(hasEmbedded bool, src []byte, hasNulTerm bool) State {
	return State{
		array:       src,
		mode:        ModeExternal,
		hasEmbedded: hasEmbedded,
		hasNulTerm:  hasNulTerm,
	}
}

// assignEmpty resets the state to empty in place, preserving hasEmbedded.
func (s *State) assignEmpty() {
	s.array = nil
	s.mode = ModeEmpty
	s.isPrefixed = false
	s.isDynamic = false
	s.hasNulTerm = false
}

// assignShallow copies every field of src into s — the Go analogue of the
// original's assign_shallow, used by Transaction.Commit.
func (s *State) assignShallow(src State) {
	*s = src
}

// ValidateOffset checks that byte offset p is within [0, size] (p == size
// allowed only when allowEnd is true), mirroring
// vextr_impl_base::validate_pointer's allow_end bump-then-compare.
func (s *State) ValidateOffset(p int, allowEnd bool) error {
	end := s.Size()
	if allowEnd {
		end++
	}
	if p < 0 || p >= end {
		return NewOutOfRange("vextr.ValidateOffset", p, 0, s.Size())
	}
	return nil
}

// growCapacity implements spec.md §4.1's capacity growth policy, faithful
// to original_source's calculate_increased_capacity: start from capMin,
// double on repeat growth, clamp on overflow, never grow by less than
// capMin.
// GrowCapacity exposes the same policy for facades that manage their own
// typed slice directly instead of routing through a Transaction — notably
// vector.Vector[T], whose element type the byte-oriented State can't
// safely erase behind unsafe casts without defeating the garbage
// collector's pointer scanning. oldSize and newSize are in whatever unit
// the caller counts in (bytes here, elements for vector.Vector[T]).
func GrowCapacity(cfg *vconfig.Config, oldSize, newSize int) int {
	return growCapacity(cfg, oldSize, newSize)
}

func growCapacity(cfg *vconfig.Config, oldSize, newSize int) int {
	if cfg == nil {
		cfg = vconfig.Default()
	}
	var newCap int
	if oldSize != 0 {
		newCap = oldSize * cfg.GrowthFactor
		if newCap <= oldSize {
			// Overflowed: the allocation can't succeed anyway, but don't
			// wrap around to a tiny number — saturate instead.
			newCap = int(^uint(0) >> 1)
		}
	} else {
		newCap = cfg.CapMin
	}
	if newCap < newSize {
		newCap = newSize
	}
	if newCap-oldSize < cfg.CapMin {
		newCap = oldSize + cfg.CapMin
	}
	return newCap
}
