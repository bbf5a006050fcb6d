// Copyright (c) 2021 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package vextr

import "github.com/prometheus/client_golang/prometheus"

// Metrics is optional Prometheus instrumentation for a vextr's transactions.
// A nil *Metrics disables instrumentation entirely — no registry access, no
// counter increments — so a caller that doesn't want Prometheus pays
// nothing for it.
type Metrics struct {
	Allocs        prometheus.Counter
	Reallocs      prometheus.Counter
	Frees         prometheus.Counter
	Displacements prometheus.Counter
	Rehashes      prometheus.Counter
}

// NewMetrics builds a Metrics registered under the given namespace, e.g.
// "vextr" or "hashmap". Register it with a prometheus.Registerer of the
// caller's choosing; NewMetrics does not register it itself.
func NewMetrics(namespace string) *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		Allocs:        counter("allocs_total", "Fresh allocations performed by transactions."),
		Reallocs:      counter("reallocs_total", "In-place (or emulated) reallocations performed by transactions."),
		Frees:         counter("frees_total", "Dynamic arrays released when a transaction replaced them."),
		Displacements: counter("displacements_total", "Hopscotch displacement steps performed on insert."),
		Rehashes:      counter("rehashes_total", "Full rehashes performed by the hopscotch map."),
	}
}

// Collectors returns every counter as a prometheus.Collector, for bulk
// registration: reg.MustRegister(m.Collectors()...).
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.Allocs, m.Reallocs, m.Frees, m.Displacements, m.Rehashes}
}

func (m *Metrics) incAlloc() {
	if m != nil && m.Allocs != nil {
		m.Allocs.Inc()
	}
}

func (m *Metrics) incRealloc() {
	if m != nil && m.Reallocs != nil {
		m.Reallocs.Inc()
	}
}

func (m *Metrics) incFree() {
	if m != nil && m.Frees != nil {
		m.Frees.Inc()
	}
}
