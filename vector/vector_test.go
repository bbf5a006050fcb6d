// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vector

import (
	"testing"

	"github.com/lofty-go/vextr/internal/vtest"
	"github.com/lofty-go/vextr/vextr"
)

func intEq(a, b int) bool { return a == b }

func TestFrontBackOnEmptyVectorIsBadAccess(t *testing.T) {
	v := New[int]()
	_, err := v.Front()
	vtest.ExpectKind(t, err, vextr.KindBadAccess)
	_, err = v.Back()
	vtest.ExpectKind(t, err, vextr.KindBadAccess)
}

func TestFrontBack(t *testing.T) {
	v := Of(1, 2, 3)
	front, err := v.Front()
	if err != nil || front != 1 {
		t.Fatalf("Front() = (%v, %v), want (1, nil)", front, err)
	}
	back, err := v.Back()
	if err != nil || back != 3 {
		t.Fatalf("Back() = (%v, %v), want (3, nil)", back, err)
	}
}

func TestPushBackGrowsPastEmbedded(t *testing.T) {
	v := New[int]()
	for i := 0; i < 100; i++ {
		v.PushBack(i)
	}
	if v.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", v.Len())
	}
	for i := 0; i < 100; i++ {
		if v.At(i) != i {
			t.Fatalf("At(%d) = %d, want %d", i, v.At(i), i)
		}
	}
}

func TestPushBackStaysEmbeddedForSmallVectors(t *testing.T) {
	v := New[int]()
	v.PushBack(1)
	v.PushBack(2)
	if v.mode != modeEmbedded {
		t.Fatalf("mode = %v, want modeEmbedded for a 2-element vector", v.mode)
	}
}

func TestPopBack(t *testing.T) {
	v := Of(1, 2, 3)
	val, ok := v.PopBack()
	if !ok || val != 3 {
		t.Fatalf("PopBack() = (%d, %v), want (3, true)", val, ok)
	}
	if v.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", v.Len())
	}
	empty := New[int]()
	if _, ok := empty.PopBack(); ok {
		t.Fatal("PopBack() on an empty vector should report false")
	}
}

var errBuildFailed = vextr.NewBadAccess("test", "simulated constructor failure")

func TestInsertFuncRollsBackInPlaceOnFailure(t *testing.T) {
	v := Of(1, 2, 3, 4, 5)
	v.Reserve(20) // plenty of spare capacity, so InsertFunc reuses the array in place
	before := append([]int(nil), v.Slice()...)

	err := v.InsertFunc(2, 3, func(idx int) (int, error) {
		if idx == 4 {
			return 0, errBuildFailed
		}
		return idx * 100, nil
	})
	if err != errBuildFailed {
		t.Fatalf("InsertFunc err = %v, want %v", err, errBuildFailed)
	}
	if v.Len() != len(before) {
		t.Fatalf("Len() after failed InsertFunc = %d, want %d", v.Len(), len(before))
	}
	for i, want := range before {
		if v.At(i) != want {
			t.Fatalf("At(%d) after rolled-back InsertFunc = %d, want %d (vector must be unchanged)", i, v.At(i), want)
		}
	}
}

func TestInsertFuncRollsBackOnFreshAllocationFailure(t *testing.T) {
	v := Of(1, 2, 3) // embedded cap 4, too small for two more: InsertFunc must allocate fresh
	before := append([]int(nil), v.Slice()...)

	err := v.InsertFunc(1, 2, func(idx int) (int, error) {
		return 0, errBuildFailed
	})
	if err != errBuildFailed {
		t.Fatalf("InsertFunc err = %v, want %v", err, errBuildFailed)
	}
	if v.Len() != len(before) {
		t.Fatalf("Len() after failed InsertFunc = %d, want %d", v.Len(), len(before))
	}
	for i, want := range before {
		if v.At(i) != want {
			t.Fatalf("At(%d) after rolled-back InsertFunc = %d, want %d (vector must be unchanged)", i, v.At(i), want)
		}
	}
}

func TestInsertFuncSucceeds(t *testing.T) {
	v := Of(1, 2, 5)
	if err := v.InsertFunc(2, 2, func(idx int) (int, error) { return idx, nil }); err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 2, 3, 5}
	for i, w := range want {
		if v.At(i) != w {
			t.Fatalf("At(%d) = %d, want %d", i, v.At(i), w)
		}
	}
}

func TestInsertAtRemoveAt(t *testing.T) {
	v := Of(1, 2, 4)
	if err := v.InsertAt(2, 3); err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 3, 4}
	for i, w := range want {
		if v.At(i) != w {
			t.Fatalf("after InsertAt, At(%d) = %d, want %d", i, v.At(i), w)
		}
	}
	if err := v.RemoveAt(0); err != nil {
		t.Fatal(err)
	}
	want = []int{2, 3, 4}
	for i, w := range want {
		if v.At(i) != w {
			t.Fatalf("after RemoveAt, At(%d) = %d, want %d", i, v.At(i), w)
		}
	}
	if err := v.InsertAt(100, 5); err == nil {
		t.Fatal("expected an error inserting past the end")
	}
	if err := v.RemoveAt(100); err == nil {
		t.Fatal("expected an error removing past the end")
	}
}

func TestFindContains(t *testing.T) {
	v := Of(10, 20, 30)
	if idx := v.Find(20, intEq); idx != 1 {
		t.Fatalf("Find(20) = %d, want 1", idx)
	}
	if v.Contains(99, intEq) {
		t.Fatal("Contains(99) should be false")
	}
}

func TestMoveEmptiesSource(t *testing.T) {
	src := Of(1, 2, 3, 4, 5, 6, 7, 8) // past the embedded cap, so src is heap-backed
	dst := New[int]()
	dst.Move(src)
	if dst.Len() != 8 {
		t.Fatalf("dst.Len() = %d, want 8", dst.Len())
	}
	if src.Len() != 0 {
		t.Fatalf("src.Len() = %d after Move, want 0", src.Len())
	}
}

func TestCopyFromLeavesSourceIntact(t *testing.T) {
	src := Of(1, 2, 3)
	dst := New[int]()
	dst.CopyFrom(src)
	dst.Set(0, 99)
	if src.At(0) != 1 {
		t.Fatalf("mutating dst.At(0) should not affect src; src.At(0) = %d", src.At(0))
	}
}

func TestIteratorInvalidatedByMutation(t *testing.T) {
	v := Of(1, 2, 3)
	it := Begin(v)
	val, err := it.Value()
	if err != nil || val != 1 {
		t.Fatalf("Value() = (%d, %v), want (1, nil)", val, err)
	}
	v.PushBack(4)
	if it.Valid() {
		t.Fatal("iterator should be invalidated by a structural mutation")
	}
	vtest.ExpectKind(t, func() error { _, err := it.Value(); return err }(), vextr.KindIteratorInvalidated)
}

func TestLogFields(t *testing.T) {
	v := Of(1, 2, 3)
	fields := v.LogFields()
	if len(fields) != 3 {
		t.Fatalf("LogFields() len = %d, want 3", len(fields))
	}
	for i, want := range []int{1, 2, 3} {
		if fields[i].(int) != want {
			t.Fatalf("LogFields()[%d] = %v, want %d", i, fields[i], want)
		}
	}
}

func TestClearKeepsCapacity(t *testing.T) {
	v := Of(1, 2, 3, 4, 5, 6, 7, 8)
	capBefore := v.Cap()
	v.Clear()
	if v.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", v.Len())
	}
	if v.Cap() != capBefore {
		t.Fatalf("Cap() after Clear = %d, want %d", v.Cap(), capBefore)
	}
}
