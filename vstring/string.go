// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package vstring is a vextr-backed string facade: an owned, growable byte
// buffer that can also adopt a Go string literal as a zero-copy, read-only
// view, matching the dual "literal or owned" identity of the original
// string class. Every element is a byte, a trivial type, so this facade
// never touches vextr.Descriptor — it drives vextr's trivial operations
// directly.
package vstring

import (
	"strings"
	"unsafe"

	"github.com/lofty-go/vextr/vextr"
)

// stringEmbeddedCap is the string facade's embedded buffer size in bytes.
// It is independent of vconfig.Config.DefaultEmbeddedCap (which counts
// vector elements) and cannot be wired to a Config value because Go array
// lengths must be compile-time constants (see DESIGN.md).
const stringEmbeddedCap = 24

// String is a growable, UTF-8-agnostic byte string backed by vextr.State.
// The zero String is a valid empty string.
type String struct {
	st       vextr.State
	embedded [stringEmbeddedCap]byte
	Deps     vextr.Deps
}

// FromLiteral adopts s as a read-only, non-owned view with no copy: Go
// string bytes are immutable and the runtime keeps them alive as long as s
// (and therefore String) is referenced, exactly like the original's literal
// adoption but without the static-storage-duration caveat.
func FromLiteral(s string) *String {
	str := &String{}
	if len(s) == 0 {
		str.st = vextr.NewEmpty(true)
		return str
	}
	view := unsafe.Slice(unsafe.StringData(s), len(s))
	str.st = vextr.NewExternal(true, view, false)
	return str
}

// FromBytes copies b into an owned buffer.
func FromBytes(b []byte) *String {
	str := &String{}
	str.st = vextr.NewEmpty(true)
	vextr.AssignCopy(&str.st, b, str.embedded[:], str.Deps)
	return str
}

// New returns an empty String.
func New() *String {
	return &String{st: vextr.NewEmpty(true)}
}

// Len returns the string's length in bytes.
func (s *String) Len() int { return s.st.Size() }

// Bytes returns the string's current byte window. It is only valid until
// the next mutating call, since growth may relocate the backing array.
func (s *String) Bytes() []byte { return s.st.Bytes() }

// String renders s as an immutable Go string (always a copy).
func (s *String) String() string { return string(s.st.Bytes()) }

// IsReadOnly reports whether s currently holds a borrowed, non-owned view
// (e.g. the result of FromLiteral) rather than an owned buffer.
func (s *String) IsReadOnly() bool { return !s.st.IsPrefixed() }

// Cap returns the number of bytes s can hold without reallocating.
func (s *String) Cap() int { return s.st.Capacity() }

// Clear empties s without releasing an owned buffer's capacity.
func (s *String) Clear() {
	vextr.SetSize(&s.st, 0, s.embedded[:], s.Deps)
	s.st.SetHasNulTerm(false)
}

// Assign replaces s's contents with a copy of src.
func (s *String) Assign(src string) {
	vextr.AssignCopy(&s.st, stringBytes(src), s.embedded[:], s.Deps)
}

// AssignString replaces s's contents with a copy of src's, without forcing
// src to give up ownership (src is left untouched).
func (s *String) AssignString(src *String) {
	vextr.AssignShareOrCopy(&s.st, &src.st, s.embedded[:], s.Deps)
}

// Move replaces s's contents by taking ownership of src's buffer where
// possible, leaving src empty. Use this instead of AssignString when src
// will not be read again.
func (s *String) Move(src *String) {
	vextr.AssignMoveOrCopy(&s.st, &src.st, s.embedded[:], s.Deps)
}

// Reserve ensures s can grow to at least n bytes without reallocating.
func (s *String) Reserve(n int) {
	if n > s.st.Capacity() {
		vextr.SetCapacity(&s.st, n, true, s.embedded[:], s.Deps)
	}
}

// Append adds suffix to the end of s.
func (s *String) Append(suffix string) {
	n := s.Len()
	vextr.InsertRemove(&s.st, n, stringBytes(suffix), 0, s.embedded[:], s.Deps)
}

// Insert inserts ins at byte offset p.
func (s *String) Insert(p int, ins string) error {
	if err := s.st.ValidateOffset(p, true); err != nil {
		return err
	}
	vextr.InsertRemove(&s.st, p, stringBytes(ins), 0, s.embedded[:], s.Deps)
	return nil
}

// Remove deletes the n bytes starting at offset p.
func (s *String) Remove(p, n int) error {
	if n == 0 {
		return nil
	}
	if err := s.st.ValidateOffset(p, false); err != nil {
		return err
	}
	if err := s.st.ValidateOffset(p+n, true); err != nil {
		return err
	}
	vextr.InsertRemove(&s.st, p, nil, n, s.embedded[:], s.Deps)
	return nil
}

// Replace replaces the n bytes starting at offset p with repl.
func (s *String) Replace(p, n int, repl string) error {
	if err := s.st.ValidateOffset(p, false); err != nil {
		return err
	}
	if err := s.st.ValidateOffset(p+n, true); err != nil {
		return err
	}
	if len(repl) == n {
		// InsertRemove leaves a same-size replacement untouched, so
		// overwrite in place, copying a read-only view out first.
		if s.IsReadOnly() {
			vextr.SetCapacity(&s.st, s.Len(), true, s.embedded[:], s.Deps)
		}
		copy(s.st.Bytes()[p:p+n], repl)
		return nil
	}
	vextr.InsertRemove(&s.st, p, stringBytes(repl), n, s.embedded[:], s.Deps)
	return nil
}

// Substr returns a copy of the byte range [from, to), with negative indices
// counting from the end (Python-style): -1 is Len()-1. An out-of-range
// result after normalization is clamped to [0, Len()], matching the
// original's permissive substring semantics.
func (s *String) Substr(from, to int) string {
	n := s.Len()
	from = normalizeIndex(from, n)
	to = normalizeIndex(to, n)
	if from > to {
		return ""
	}
	return string(s.st.Bytes()[from:to])
}

func normalizeIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Find returns the byte offset of the first occurrence of needle at or
// after from, or -1 if absent.
func (s *String) Find(needle string, from int) int {
	if from < 0 {
		from = 0
	}
	if from > s.Len() {
		return -1
	}
	idx := strings.Index(string(s.st.Bytes()[from:]), needle)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// FindLast returns the byte offset of the last occurrence of needle, or -1.
func (s *String) FindLast(needle string) int {
	return strings.LastIndex(string(s.st.Bytes()), needle)
}

// StartsWith reports whether s begins with prefix.
func (s *String) StartsWith(prefix string) bool {
	return strings.HasPrefix(string(s.st.Bytes()), prefix)
}

// EndsWith reports whether s ends with suffix.
func (s *String) EndsWith(suffix string) bool {
	return strings.HasSuffix(string(s.st.Bytes()), suffix)
}

// CBytes ensures s is an owned, NUL-terminated buffer and returns its bytes
// including the trailing NUL — e.g. for cgo interop that expects a
// C-string-shaped byte slice. The returned slice's logical length (as
// reported by Len) is unaffected.
func (s *String) CBytes() []byte {
	n := s.Len()
	if !s.st.HasNulTerm() {
		vextr.SetSize(&s.st, n+1, s.embedded[:], s.Deps)
		s.st.Bytes()[n] = 0
		// Restore the logical length; the capacity still covers the NUL
		// byte just written, one past the new end.
		vextr.SetSize(&s.st, n, s.embedded[:], s.Deps)
		s.st.SetHasNulTerm(true)
	}
	return s.st.Bytes()[:n+1]
}

func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
