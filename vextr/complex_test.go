// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vextr

import "testing"

// byteDescriptor treats each byte as its own "complex" element, so the
// complex-operation algorithms (which only ever move byte ranges through
// CopyConstruct/MoveConstruct/Destruct) can be exercised without needing an
// actual non-trivial Go type. A CopyConstruct/MoveConstruct call fails if
// the source contains failOn, letting tests drive the rollback paths.
func byteDescriptor(failOn byte) Descriptor {
	return Descriptor{
		ElemSize: 1,
		CopyConstruct: func(dst, src []byte) error {
			for _, b := range src {
				if b == failOn {
					return NewBadAccess("test.CopyConstruct", "simulated construction failure")
				}
			}
			copy(dst, src)
			return nil
		},
		MoveConstruct: func(dst, src []byte) error {
			for _, b := range src {
				if b == failOn {
					return NewBadAccess("test.MoveConstruct", "simulated construction failure")
				}
			}
			copy(dst, src)
			for i := range src {
				src[i] = 0
			}
			return nil
		},
		Destruct: func(rng []byte) {
			for i := range rng {
				rng[i] = 0
			}
		},
	}
}

const noFail = 0xFF

func TestAssignConcatBasic(t *testing.T) {
	s := NewEmpty(false)
	desc := byteDescriptor(noFail)
	if err := AssignConcat(&s, []byte("ab"), []byte("cd"), false, false, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if got, want := string(s.Bytes()), "abcd"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestAssignConcatMoveClearsSource(t *testing.T) {
	s := NewEmpty(false)
	desc := byteDescriptor(noFail)
	src := []byte("ef")
	if err := AssignConcat(&s, []byte("ab"), src, false, true, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if got, want := string(s.Bytes()), "abef"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
	if src[0] != 0 || src[1] != 0 {
		t.Fatal("a moved source must be cleared by MoveConstruct")
	}
}

func TestAssignConcatRollsBackInPlaceOnFailure(t *testing.T) {
	s := NewEmpty(false)
	desc := byteDescriptor(noFail)
	// Give the target plenty of spare capacity so the next AssignConcat
	// reuses the array in place instead of allocating fresh.
	if err := AssignConcat(&s, nil, []byte("WXYZ"), false, false, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if s.Capacity() < 4+16 {
		t.Fatalf("Capacity() = %d, want plenty of headroom for the in-place case below", s.Capacity())
	}

	failing := byteDescriptor(byte('F'))
	err := AssignConcat(&s, []byte("AB"), []byte{'F'}, false, false, failing, nil, Deps{})
	if err == nil {
		t.Fatal("expected an error from the failing CopyConstruct")
	}
	if got, want := string(s.Bytes()), "WXYZ"; got != want {
		t.Fatalf("Bytes() after a rolled-back in-place AssignConcat = %q, want unchanged %q", got, want)
	}
}

func TestAssignCopyComplexSameBackingIsNoop(t *testing.T) {
	s := State{array: []byte("abc"), mode: ModeHeap, isPrefixed: true}
	desc := byteDescriptor(noFail)
	if err := AssignCopyComplex(&s, s.array, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if string(s.Bytes()) != "abc" {
		t.Fatalf("Bytes() = %q, want unchanged %q", s.Bytes(), "abc")
	}
}

func TestAssignMoveDescOrMoveElementsTakesOverDynamicArray(t *testing.T) {
	src := NewEmpty(false)
	desc := byteDescriptor(noFail)
	if err := AssignConcat(&src, nil, []byte("owned"), false, false, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	srcPtr := &src.array[0]

	dst := NewEmpty(false)
	if err := AssignMoveDescOrMoveElements(&dst, &src, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if &dst.array[0] != srcPtr {
		t.Fatal("should adopt src's dynamic array directly, without moving elements")
	}
	if src.Size() != 0 {
		t.Fatal("src should be left empty")
	}
}

func TestOverlappingMoveForwardAndBackward(t *testing.T) {
	desc := byteDescriptor(noFail)

	s := State{array: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	OverlappingMove(&s, desc, 0, 2, 6) // move [2,6) down to start at 0: forward walk
	if got, want := s.array[:4], ([]byte{3, 4, 5, 6}); !bytesEqual(got, want) {
		t.Fatalf("forward move: got %v, want %v", got, want)
	}

	s = State{array: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	OverlappingMove(&s, desc, 4, 0, 4) // move [0,4) up to start at 4: backward walk
	if got, want := s.array[4:8], ([]byte{1, 2, 3, 4}); !bytesEqual(got, want) {
		t.Fatalf("backward move: got %v, want %v", got, want)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertReplacedArray(t *testing.T) {
	// No spare capacity: Insert must allocate a fresh array.
	s := State{array: []byte("abc"), mode: ModeHeap, isPrefixed: true, isDynamic: true}
	desc := byteDescriptor(noFail)
	if err := Insert(&s, 1, []byte("XY"), false, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if got, want := string(s.Bytes()), "aXYbc"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestInsertInPlace(t *testing.T) {
	s := NewEmpty(false)
	desc := byteDescriptor(noFail)
	if err := AssignConcat(&s, nil, []byte("helloworld"), false, false, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if err := Insert(&s, 5, []byte(", "), false, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if got, want := string(s.Bytes()), "hello, world"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestRemoveComplex(t *testing.T) {
	s := NewEmpty(false)
	desc := byteDescriptor(noFail)
	if err := AssignConcat(&s, nil, []byte("hello, world"), false, false, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if err := Remove(&s, 5, 2, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if got, want := string(s.Bytes()), "helloworld"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestSetSizeComplexGrowAndShrink(t *testing.T) {
	s := NewEmpty(false)
	desc := byteDescriptor(noFail)
	if err := AssignConcat(&s, nil, []byte("ab"), false, false, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if err := SetSizeComplex(&s, 1, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if got, want := string(s.Bytes()), "a"; got != want {
		t.Fatalf("Bytes() after shrink = %q, want %q", got, want)
	}
	if err := SetSizeComplex(&s, 3, desc, nil, Deps{}); err != nil {
		t.Fatal(err)
	}
	if s.Size() != 3 || s.Bytes()[0] != 'a' {
		t.Fatalf("Size()/first byte after grow = %d/%q, want 3/'a'", s.Size(), s.Bytes()[0])
	}
}
