// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vstring

import (
	"testing"

	"github.com/lofty-go/vextr/internal/vtest"
	"github.com/lofty-go/vextr/vextr"
)

func TestFromLiteralIsReadOnlyUntilMutated(t *testing.T) {
	s := FromLiteral("hello")
	if !s.IsReadOnly() {
		t.Fatal("FromLiteral should produce a read-only view")
	}
	if s.String() != "hello" {
		t.Fatalf("String() = %q, want %q", s.String(), "hello")
	}
	s.Append(", world")
	if s.IsReadOnly() {
		t.Fatal("mutating a literal-backed String should copy out to an owned buffer")
	}
	if got, want := s.String(), "hello, world"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestAssignOwnContentsKeepsValue(t *testing.T) {
	s := FromBytes([]byte("abc"))
	s.Assign(s.String())
	if s.String() != "abc" {
		t.Fatalf("String() = %q, want %q", s.String(), "abc")
	}
}

func TestInsertRemoveReplace(t *testing.T) {
	s := FromBytes([]byte("hello world"))
	if err := s.Insert(5, ","); err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), "hello, world"; got != want {
		t.Fatalf("after Insert: %q, want %q", got, want)
	}
	if err := s.Remove(5, 1); err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), "hello world"; got != want {
		t.Fatalf("after Remove: %q, want %q", got, want)
	}
	if err := s.Replace(6, 5, "there"); err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), "hello there"; got != want {
		t.Fatalf("after Replace: %q, want %q", got, want)
	}
}

func TestSubstrNegativeIndices(t *testing.T) {
	s := FromLiteral("hello world")
	if got, want := s.Substr(-5, -1), "worl"; got != want {
		t.Fatalf("Substr(-5, -1) = %q, want %q", got, want)
	}
	if got, want := s.Substr(0, -1), "hello worl"; got != want {
		t.Fatalf("Substr(0, -1) = %q, want %q", got, want)
	}
	if got, want := s.Substr(-100, 100), "hello world"; got != want {
		t.Fatalf("out-of-range Substr = %q, want %q", got, want)
	}
}

func TestFindStartsEndsWith(t *testing.T) {
	s := FromLiteral("hello world hello")
	if got := s.Find("hello", 0); got != 0 {
		t.Fatalf("Find first = %d, want 0", got)
	}
	if got := s.Find("hello", 1); got != 12 {
		t.Fatalf("Find after 0 = %d, want 12", got)
	}
	if got := s.FindLast("hello"); got != 12 {
		t.Fatalf("FindLast = %d, want 12", got)
	}
	if !s.StartsWith("hello") || !s.EndsWith("hello") {
		t.Fatal("expected both StartsWith and EndsWith to match")
	}
	if s.Find("missing", 0) != -1 {
		t.Fatal("Find of an absent substring should return -1")
	}
}

func TestCBytesIsNulTerminatedAndIdempotent(t *testing.T) {
	s := FromBytes([]byte("abc"))
	b := s.CBytes()
	if len(b) != 4 || b[3] != 0 {
		t.Fatalf("CBytes() = %v, want 4 bytes ending in NUL", b)
	}
	if s.Len() != 3 {
		t.Fatalf("CBytes should not change Len(): got %d, want 3", s.Len())
	}
	b2 := s.CBytes()
	if len(b2) != 4 || b2[3] != 0 {
		t.Fatalf("second CBytes() = %v, want 4 bytes ending in NUL", b2)
	}
}

func TestIteratorInvalidatedByShrink(t *testing.T) {
	s := FromBytes([]byte("abc"))
	it := End(s)
	it.Prev()
	s.Remove(1, 2) // shrinks s to "a", leaving it's position (2) out of range
	_, err := it.Byte()
	vtest.ExpectKind(t, err, vextr.KindIteratorInvalidated)
}

func TestMoveEmptiesSource(t *testing.T) {
	src := FromBytes([]byte("take me"))
	dst := New()
	dst.Move(src)
	if got, want := dst.String(), "take me"; got != want {
		t.Fatalf("dst.String() = %q, want %q", got, want)
	}
	if src.Len() != 0 {
		t.Fatalf("src.Len() = %d after Move, want 0", src.Len())
	}
}

func TestIteratorSurvivesGrowth(t *testing.T) {
	s := FromBytes([]byte("ab"))
	it := Begin(s)
	b, err := it.Byte()
	if err != nil || b != 'a' {
		t.Fatalf("first byte = (%q, %v), want ('a', nil)", b, err)
	}
	s.Append("very long suffix that forces a reallocation of the buffer")
	b, err = it.Byte()
	if !it.Valid() || err != nil || b != 'a' {
		t.Fatalf("iterator should still see the original first byte after growth")
	}
}

func TestOutOfRangeInsert(t *testing.T) {
	s := FromLiteral("abc")
	vtest.ExpectKind(t, s.Insert(10, "x"), vextr.KindOutOfRange)
}
