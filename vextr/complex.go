// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vextr

// AssignConcat implements the complex vextr assign_concat of spec.md §4.4:
// constructs the target's new contents from src1 followed by src2, each
// either copy- or move-constructed per move1/move2, with full rollback to
// the target's original state if either constructor fails partway.
//
// Moving a source region back on failure (when move1 is true) is advisory
// only — it is
// correct solely because this package's contract requires CopyConstruct and
// MoveConstruct to leave a range either fully constructed or fully
// unconstructed, never partially so. A type whose move constructor cannot
// be safely re-run after a destruct should not set move1/move2 true.
func AssignConcat(s *State, src1, src2 []byte, move1, move2 bool, desc Descriptor, embedded []byte, d Deps) error {
	tx := Begin(s, false, len(src1)+len(src2), embedded, d.Config, d.Allocator, d.Metrics, d.Logger)
	defer tx.Rollback()

	origSize := s.Size()
	original := s.array[:origSize]

	var backup []byte
	needsBackup := origSize > 0 && !tx.WillReplaceArray() && !(move1 && move2)
	if needsBackup {
		// The target will be resized in place, so constructing the new
		// elements would overwrite the old ones before they're out of the
		// way. Move them aside first.
		backup = make([]byte, origSize)
		if err := desc.MoveConstruct(backup, original); err != nil {
			return err
		}
		desc.Destruct(original)
	}

	work := tx.Work()
	constructed := 0 // bytes of src1+src2 successfully constructed into work
	var ctorErr error
	if len(src1) > 0 {
		if err := desc.constructRange(work[:len(src1)], src1, move1); err != nil {
			ctorErr = err
		} else {
			constructed = len(src1)
		}
	}
	if ctorErr == nil && len(src2) > 0 {
		if err := desc.constructRange(work[constructed:constructed+len(src2)], src2, move2); err != nil {
			ctorErr = err
		} else {
			constructed += len(src2)
		}
	}

	if ctorErr != nil {
		if constructed >= len(src1) && len(src1) > 0 {
			// src1 fully landed in work; unwind it.
			if move1 {
				desc.Destruct(src1)
				_ = desc.MoveConstruct(src1, work[:len(src1)])
			}
			desc.Destruct(work[:len(src1)])
		}
		if backup != nil {
			_ = desc.MoveConstruct(original, backup)
			desc.Destruct(backup)
		}
		return ctorErr
	}

	if origSize > 0 {
		if backup != nil {
			desc.Destruct(backup)
		} else {
			desc.Destruct(original)
		}
	}
	tx.Commit()
	return nil
}

// AssignCopyComplex implements assign_copy for non-trivial elements: pass
// the source as the second region (src1 empty), matching the original's
// choice to route assign_copy through assign_concat's faster code path.
func AssignCopyComplex(s *State, src []byte, desc Descriptor, embedded []byte, d Deps) error {
	if sameBacking(s.array, src) && s.isPrefixed {
		return nil
	}
	return AssignConcat(s, nil, src, false, false, desc, embedded, d)
}

// AssignMoveDescOrMoveElements implements assign_move_desc_or_move_elements:
// if src owns a heap allocation, take it over directly (no element moves);
// otherwise move-construct src's elements via assign_concat. src is always
// left empty.
func AssignMoveDescOrMoveElements(s *State, src *State, desc Descriptor, embedded []byte, d Deps) error {
	if src.isDynamic {
		if s.Size() > 0 {
			desc.Destruct(s.array)
		}
		*s = *src
		src.assignEmpty()
		return nil
	}
	if err := AssignConcat(s, nil, src.array, false, true, desc, embedded, d); err != nil {
		return err
	}
	desc.Destruct(src.array)
	src.assignEmpty()
	return nil
}

// OverlappingMove implements overlapping_move: move-constructs
// s.array[srcBegin:srcEnd] to start at dst within the same array, handling
// the three relative-position cases of spec.md §4.4.
func OverlappingMove(s *State, desc Descriptor, dst, srcBegin, srcEnd int) {
	elem := desc.ElemSize
	n := srcEnd - srcBegin
	if n <= 0 || dst == srcBegin {
		return
	}
	arr := s.array
	// Whether the ranges [srcBegin, srcEnd) and [dst, dst+n) actually
	// overlap or not, walking element-by-element from the end furthest
	// from the overlap never reads a slot it has already overwritten —
	// the same direction-picking memmove itself uses.
	if dst < srcBegin {
		moveElementwiseForward(desc, arr, dst, srcBegin, n, elem)
	} else {
		moveElementwiseBackward(desc, arr, dst, srcBegin, n, elem)
	}
}

// moveElementwiseForward walks from the low end, one element at a time,
// over the whole range of a dst < src overlapping move.
func moveElementwiseForward(desc Descriptor, arr []byte, dst, src, count, elem int) {
	for i := 0; i < count; i++ {
		s := src + i*elem
		d := dst + i*elem
		_ = desc.MoveConstruct(arr[d:d+elem], arr[s:s+elem])
		desc.Destruct(arr[s : s+elem])
	}
}

// moveElementwiseBackward walks from the high end, one element at a time,
// so that a dst > src move never clobbers a not-yet-moved source element.
func moveElementwiseBackward(desc Descriptor, arr []byte, dst, src, count, elem int) {
	for i := count - 1; i >= 0; i-- {
		s := src + i*elem
		d := dst + i*elem
		_ = desc.MoveConstruct(arr[d:d+elem], arr[s:s+elem])
		desc.Destruct(arr[s : s+elem])
	}
}

// Insert implements the complex insert(offset, ptr, size, move) of spec.md
// §4.4: open a transaction, relocate the tail past the hole, construct the
// inserted region into the hole, and relocate the prefix if the array was
// replaced.
func Insert(s *State, offset int, add []byte, move bool, desc Descriptor, embedded []byte, d Deps) error {
	oldSize := s.Size()
	addSize := len(add)
	tx := Begin(s, false, oldSize+addSize, embedded, d.Config, d.Allocator, d.Metrics, d.Logger)
	defer tx.Rollback()

	work := tx.Work()
	tailLen := oldSize - offset
	replaced := tx.WillReplaceArray()

	if replaced {
		// Fresh array: construct the prefix, then the insertion, then the
		// tail, each straight from the original (no in-place overlap).
		if offset > 0 {
			if err := desc.CopyConstruct(work[:offset], s.array[:offset]); err != nil {
				return err
			}
		}
		if err := desc.constructRange(work[offset:offset+addSize], add, move); err != nil {
			if offset > 0 {
				desc.Destruct(work[:offset])
			}
			return err
		}
		if tailLen > 0 {
			if err := desc.CopyConstruct(work[offset+addSize:], s.array[offset:oldSize]); err != nil {
				desc.Destruct(work[:offset+addSize])
				return err
			}
			desc.Destruct(s.array[offset:oldSize])
		}
		if offset > 0 {
			desc.Destruct(s.array[:offset])
		}
	} else {
		// In-place growth: the tail must move out of the way (to its new,
		// higher offset) before the hole can be constructed into.
		if tailLen > 0 {
			OverlappingMove(s, desc, offset+addSize, offset, oldSize)
		}
		if err := desc.constructRange(work[offset:offset+addSize], add, move); err != nil {
			if tailLen > 0 {
				// Undo the tail relocation.
				OverlappingMove(s, desc, offset, offset+addSize, offset+addSize+tailLen)
			}
			return err
		}
	}
	tx.Commit()
	return nil
}

// Remove implements the complex remove(offset, size) of spec.md §4.4:
// destruct the removed elements, then relocate the tail — directly when the
// transaction replaces the array, via OverlappingMove otherwise.
func Remove(s *State, offset, size int, desc Descriptor, embedded []byte, d Deps) error {
	oldSize := s.Size()
	tx := Begin(s, false, oldSize-size, embedded, d.Config, d.Allocator, d.Metrics, d.Logger)
	defer tx.Rollback()

	removeEnd := offset + size
	tailLen := oldSize - removeEnd
	work := tx.Work()
	replaced := tx.WillReplaceArray()

	desc.Destruct(s.array[offset:removeEnd])

	if replaced {
		if offset > 0 {
			if err := desc.MoveConstruct(work[:offset], s.array[:offset]); err != nil {
				return err
			}
			desc.Destruct(s.array[:offset])
		}
		if tailLen > 0 {
			if err := desc.MoveConstruct(work[offset:], s.array[removeEnd:oldSize]); err != nil {
				if offset > 0 {
					desc.Destruct(work[:offset])
				}
				return err
			}
			desc.Destruct(s.array[removeEnd:oldSize])
		}
	} else if tailLen > 0 {
		OverlappingMove(s, desc, offset, removeEnd, oldSize)
	}
	tx.Commit()
	return nil
}

// SetCapacityComplex implements set_capacity for non-trivial elements:
// element relocation across arrays uses move-construct + destruct rather
// than memcpy.
func SetCapacityComplex(s *State, minBytes int, preserve bool, desc Descriptor, embedded []byte, d Deps) error {
	origSize := s.Size()
	tx := Begin(s, false, minBytes, embedded, d.Config, d.Allocator, d.Metrics, d.Logger)
	defer tx.Rollback()

	finalSize := origSize
	if tx.WillReplaceArray() {
		if preserve {
			if err := desc.MoveConstruct(tx.Work()[:origSize], s.array[:origSize]); err != nil {
				return err
			}
			desc.Destruct(s.array[:origSize])
		} else {
			desc.Destruct(s.array[:origSize])
			finalSize = 0
		}
	}
	tx.Commit()
	s.array = s.array[:finalSize]
	return nil
}

// SetSizeComplex implements set_size for non-trivial elements: shrinking
// destructs the trailing elements; growing ensures capacity (preserving
// existing elements) and leaves the newly exposed range unconstructed —
// the caller (the facade) is responsible for constructing it immediately,
// since an unconstructed complex element is not a valid vextr state.
func SetSizeComplex(s *State, newBytes int, desc Descriptor, embedded []byte, d Deps) error {
	oldBytes := s.Size()
	if newBytes == oldBytes {
		return nil
	}
	if newBytes < oldBytes {
		desc.Destruct(s.array[newBytes:oldBytes])
		s.array = s.array[:newBytes]
		return nil
	}
	if newBytes > s.Capacity() {
		if err := SetCapacityComplex(s, newBytes, true, desc, embedded, d); err != nil {
			return err
		}
	}
	s.array = s.array[:newBytes]
	return nil
}
