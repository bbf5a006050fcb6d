// Copyright (c) 2021 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package vlog adapts github.com/aristanetworks/glog to logger.Logger so
// vextr's diagnostics can be wired into glog without the core importing it
// directly.
package vlog

import "github.com/aristanetworks/glog"

// Glog implements logger.Logger on top of glog's package-level verbosity
// logging.
type Glog struct {
	// DebugLevel is the glog.V() level Debug/Debugf log at.
	DebugLevel glog.Level
}

// Debug logs at DebugLevel.
func (g Glog) Debug(args ...interface{}) {
	glog.V(g.DebugLevel).Info(args...)
}

// Debugf logs at DebugLevel, with format.
func (g Glog) Debugf(format string, args ...interface{}) {
	glog.V(g.DebugLevel).Infof(format, args...)
}

// Warn logs at the warning level.
func (g Glog) Warn(args ...interface{}) {
	glog.Warning(args...)
}

// Warnf logs at the warning level, with format.
func (g Glog) Warnf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

// Error logs at the error level.
func (g Glog) Error(args ...interface{}) {
	glog.Error(args...)
}

// Errorf logs at the error level, with format.
func (g Glog) Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}
