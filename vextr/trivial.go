// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vextr

import (
	"github.com/lofty-go/vextr/logger"
	"github.com/lofty-go/vextr/vconfig"
)

// Deps bundles the optional collaborators every vextr operation accepts, so
// call sites don't have to repeat a four-argument tail everywhere. A zero
// Deps uses every package default.
type Deps struct {
	Config    *vconfig.Config
	Allocator Allocator
	Metrics   *Metrics
	Logger    logger.Logger
}

func sameBacking(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// AssignCopy implements the trivial vextr assign_copy of spec.md §4.3: copy
// src into s, unless src is already s's own active array (in which case
// this is a no-op, modulo the read-only-to-prefixed upgrade the caller
// performs separately).
func AssignCopy(s *State, src []byte, embedded []byte, d Deps) {
	if sameBacking(s.array, src) {
		return
	}
	tx := Begin(s, true, len(src), embedded, d.Config, d.Allocator, d.Metrics, d.Logger)
	defer tx.Rollback()
	copy(tx.Work(), src)
	tx.Commit()
}

// AssignMoveOrCopy implements assign_move_or_copy: if src owns its array or
// holds a non-prefixed (external) view, adopt its fields directly; else
// copy the bytes. src is always left empty afterward.
func AssignMoveOrCopy(s *State, src *State, embedded []byte, d Deps) {
	if src.isDynamic || src.mode == ModeExternal {
		*s = *src
		src.assignEmpty()
		return
	}
	AssignCopy(s, src.array, embedded, d)
	src.assignEmpty()
}

// AssignShareOrCopy implements assign_share_or_copy: share src's pointers
// when src is a non-prefixed (external) view, else copy.
func AssignShareOrCopy(s *State, src *State, embedded []byte, d Deps) {
	if src.mode == ModeExternal {
		*s = *src
		return
	}
	AssignCopy(s, src.array, embedded, d)
}

// InsertRemove implements insert_remove: replace the removeSize bytes at
// offset with add, growing or shrinking the array as needed. When
// len(add) == removeSize this is a no-op, faithfully reproducing
// original_source's `if (insert_size != remove_size)` guard — a same-size
// "insert_remove" does not even overwrite the removed bytes with add.
func InsertRemove(s *State, offset int, add []byte, removeSize int, embedded []byte, d Deps) {
	if len(add) == removeSize {
		return
	}
	oldSize := s.Size()
	newSize := oldSize + len(add) - removeSize
	tx := Begin(s, true, newSize, embedded, d.Config, d.Allocator, d.Metrics, d.Logger)
	defer tx.Rollback()

	work := tx.Work()
	removeEnd := offset + removeSize
	if tail := oldSize - removeEnd; tail > 0 {
		copy(work[offset+len(add):], s.array[removeEnd:removeEnd+tail])
	}
	if len(add) > 0 {
		copy(work[offset:offset+len(add)], add)
	}
	if offset > 0 && tx.WillReplaceArray() {
		copy(work[:offset], s.array[:offset])
	}
	tx.Commit()
}

// SetCapacity implements set_capacity: ensure the array can hold at least
// minBytes without reallocating, preserving existing contents when preserve
// is true. Because the transaction's own sizing targets minBytes (the
// requested capacity, not the element count), the target's logical size is
// restored afterward — original_source's "the transaction changed the size
// to cbMin, which is incorrect" comment, reproduced here.
func SetCapacity(s *State, minBytes int, preserve bool, embedded []byte, d Deps) {
	origSize := s.Size()
	tx := Begin(s, true, minBytes, embedded, d.Config, d.Allocator, d.Metrics, d.Logger)
	defer tx.Rollback()
	if tx.WillReplaceArray() {
		if preserve {
			copy(tx.Work(), s.array[:origSize])
		} else {
			origSize = 0
		}
	}
	tx.Commit()
	s.array = s.array[:origSize]
}

// SetSize implements set_size: change the element count, growing capacity
// first if needed. Newly exposed bytes (when growing) are left as returned
// by the Allocator (zeroed by DefaultAllocator, but a custom Allocator need
// not zero them).
func SetSize(s *State, newBytes int, embedded []byte, d Deps) {
	if newBytes == s.Size() {
		return
	}
	if newBytes > s.Capacity() {
		SetCapacity(s, newBytes, true, embedded, d)
	}
	s.array = s.array[:newBytes]
}
