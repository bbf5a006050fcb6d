// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vextr

import (
	"github.com/lofty-go/vextr/logger"
	"github.com/lofty-go/vextr/vconfig"
)

// Transaction is the scoped resource of spec.md §4.2 and the "Transaction
// object" design note: it materializes a candidate successor array for a
// vextr under construction, then either Commit()s it into the target or is
// abandoned via Rollback(). Calling Rollback unconditionally via defer right
// after Begin, then calling Commit only once the candidate array has been
// fully populated, is the idiom every trivial/complex operation in this
// package follows — the same shape as database/sql's Tx.
type Transaction struct {
	target   *State
	work     State
	replaced bool
	committed bool

	cfg     *vconfig.Config
	alloc   Allocator
	metrics *Metrics
	log     logger.Logger
}

// Begin opens a transaction against target for a final byte-size of
// newSize, deciding among reuse-in-place, embedded-buffer, realloc, and
// fresh-allocation per spec.md §4.2's construction decision.
//
// trivial selects the realloc-in-place fast path, valid only when elements
// never need their constructors re-run. embedded is the facade's embedded
// buffer backing, or nil if it has none. cfg, alloc, m, and log may all be
// nil, each falling back to its package default.
func Begin(
	target *State, trivial bool, newSize int, embedded []byte,
	cfg *vconfig.Config, alloc Allocator, m *Metrics, log logger.Logger,
) *Transaction {
	if alloc == nil {
		alloc = DefaultAllocator
	}
	if log == nil {
		log = logger.Discard{}
	}
	tx := &Transaction{target: target, cfg: cfg, alloc: alloc, metrics: m, log: log}
	tx.construct(trivial, newSize, embedded)
	return tx
}

func (tx *Transaction) construct(trivial bool, newSize int, embedded []byte) {
	target := tx.target
	if newSize == 0 {
		tx.work = State{hasEmbedded: target.hasEmbedded}
		tx.replaced = target.mode != ModeEmpty
		return
	}

	tx.work.isPrefixed = true
	tx.work.hasNulTerm = false
	tx.work.hasEmbedded = target.hasEmbedded

	switch {
	case embedded != nil && newSize <= cap(embedded) && target.mode != ModeEmbedded:
		// The embedded buffer is large enough and not already in use:
		// switch to it.
		tx.work.array = embedded[:newSize]
		tx.work.mode = ModeEmbedded
		tx.work.isDynamic = false
		tx.replaced = true

	case target.isPrefixed && newSize <= target.Capacity():
		// The current array is prefixed (writable) and large enough:
		// reuse it in place, no allocation.
		tx.work.array = target.array[:newSize]
		tx.work.mode = target.mode
		tx.work.isDynamic = target.isDynamic
		tx.replaced = false

	default:
		oldSize := target.Size()
		newCap := growCapacity(tx.cfg, oldSize, newSize)
		if trivial && target.isDynamic {
			// Trivial elements tolerate a relocating realloc; because it
			// cannot throw, the target is updated eagerly, exactly as
			// original_source's vextr_impl_base::_construct does.
			grown := tx.alloc.Realloc(target.array[:target.Capacity()], newCap)
			tx.metrics.incRealloc()
			target.array = grown[:oldSize]
			target.mode = ModeHeap
			tx.work.array = grown[:newSize]
			tx.work.mode = ModeHeap
			tx.work.isDynamic = true
			tx.replaced = false
		} else {
			// Non-trivial elements must be moved with their move
			// constructor, so a relocating realloc is never safe for
			// them: always allocate fresh storage.
			fresh := tx.alloc.Alloc(newCap)
			tx.metrics.incAlloc()
			tx.work.array = fresh[:newSize]
			tx.work.mode = ModeHeap
			tx.work.isDynamic = true
			tx.replaced = true
		}
	}
}

// Work returns the candidate array being prepared. Its length is the
// transaction's requested byte-size; callers populate it before Commit.
func (tx *Transaction) Work() []byte { return tx.work.array }

// WillReplaceArray reports whether committing will give the target a
// different backing array than it has right now.
func (tx *Transaction) WillReplaceArray() bool { return tx.replaced }

// Commit adopts the prepared work state into the target. If the target's
// current array is dynamic and is about to be replaced, that allocation is
// logically released — Go's garbage collector reclaims it once the last
// reference (this Commit call) drops it.
func (tx *Transaction) Commit() {
	if tx.committed {
		return
	}
	if tx.replaced && tx.target.isDynamic {
		tx.metrics.incFree()
		tx.log.Debugf("vextr: releasing %d-byte array, replaced by a %d-byte one",
			tx.target.Size(), len(tx.work.array))
	}
	tx.target.assignShallow(tx.work)
	tx.committed = true
}

// Rollback discards the prepared work state, leaving the target untouched.
// It is a no-op once Commit has run, so deferring it unconditionally right
// after Begin is always safe.
func (tx *Transaction) Rollback() {
	if tx.committed {
		return
	}
	if tx.replaced {
		tx.log.Debugf("vextr: rolling back transaction, discarding %d-byte work array",
			len(tx.work.array))
	}
	tx.committed = true
}
