// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package vtest holds small test helpers shared across this module's
// packages, in the style of the wider retrieval pack's test package.
package vtest

import (
	"errors"
	"testing"

	"github.com/lofty-go/vextr/vextr"
)

// ExpectKind fails the test unless err is a *vextr.Error of the given kind.
func ExpectKind(t *testing.T, err error, kind vextr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %v error, got nil", kind)
	}
	var verr *vextr.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected a *vextr.Error, got %T: %v", err, err)
	}
	if verr.Kind != kind {
		t.Fatalf("expected Kind %v, got %v (%v)", kind, verr.Kind, err)
	}
}

// ExpectPanic fails the test unless fn panics.
func ExpectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r == nil {
			t.Error("expected a panic, but fn returned normally")
		}
	}()
	fn()
}
