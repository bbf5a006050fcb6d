// Copyright (c) 2021 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package vconfig holds the tunable constants of the vextr engine and the
// hopscotch hash map, with compiled-in defaults that can be overridden by
// decoding a YAML document — the same pattern the wider retrieval pack uses
// for small, infrequently-changed tuning knobs.
package vconfig

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// pointerWords is the "≥ 8x pointer size" floor spec.md §4.1 calls for,
// expressed as in original_source (sizeof(ptrdiff_t) * 8 on a 64-bit word).
const pointerWords = 8 * 8

// Config collects every tunable named in the specification. The zero value
// is not valid; use Default() or Load().
type Config struct {
	// CapMin is the minimum byte capacity a vextr allocates from empty, and
	// the amortization floor below which growCapacity will not grow by
	// less (spec.md §4.1).
	CapMin int `yaml:"cap_min"`
	// GrowthFactor is the fixed small integer a vextr's capacity is
	// multiplied by on growth (spec.md §4.1 step 2).
	GrowthFactor int `yaml:"growth_factor"`
	// DefaultEmbeddedCap is the default embedded buffer size, in elements
	// (spec.md §4.6, §9 — stands in for the original's compile-time template
	// parameter N). No facade reads it at run time: vector's
	// vectorEmbeddedCap is a compile-time constant equal to this default.
	DefaultEmbeddedCap int `yaml:"default_embedded_cap"`

	// MinBuckets is the hopscotch map's minimum bucket count (spec.md
	// §4.7).
	MinBuckets int `yaml:"hashmap_min_buckets"`
	// InitialNeighborhood is the hopscotch map's starting neighborhood
	// size (spec.md §4.7).
	InitialNeighborhood int `yaml:"hashmap_initial_neighborhood"`
	// BucketGrowth is the hopscotch map's GROWTH constant, used both for
	// bucket-count growth on rehash and for neighborhood enlargement on
	// repeated displacement failure (spec.md §4.7).
	BucketGrowth int `yaml:"hashmap_bucket_growth"`
	// MaxLoadFactorPercent is the percent-full threshold past which Set
	// triggers a rehash before inserting.
	MaxLoadFactorPercent int `yaml:"hashmap_max_load_factor_percent"`
}

// Default returns the specification's hard-coded defaults.
func Default() *Config {
	return &Config{
		CapMin:               pointerWords,
		GrowthFactor:         2,
		DefaultEmbeddedCap:   4,
		MinBuckets:           8,
		InitialNeighborhood:  8,
		BucketGrowth:         4,
		MaxLoadFactorPercent: 90,
	}
}

// Load decodes a YAML document into a Config seeded from Default(), so a
// caller only needs to specify the knobs they want to override.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("vconfig: decoding config: %w", err)
	}
	cfg.validate()
	return cfg, nil
}

// validate panics on a malformed config: these are programming errors (a
// bad deployment file), not conditions a vextr caller can recover from.
func (c *Config) validate() {
	switch {
	case c.CapMin <= 0:
		panic("vconfig: cap_min must be positive")
	case c.GrowthFactor < 2:
		panic("vconfig: growth_factor must be at least 2")
	case c.MinBuckets <= 0 || c.MinBuckets&(c.MinBuckets-1) != 0:
		panic("vconfig: hashmap_min_buckets must be a positive power of two")
	case c.InitialNeighborhood <= 0 || c.InitialNeighborhood > c.MinBuckets:
		panic("vconfig: hashmap_initial_neighborhood must be in (0, hashmap_min_buckets]")
	case c.BucketGrowth < 2:
		panic("vconfig: hashmap_bucket_growth must be at least 2")
	case c.MaxLoadFactorPercent <= 0 || c.MaxLoadFactorPercent >= 100:
		panic("vconfig: hashmap_max_load_factor_percent must be in (0, 100)")
	}
}
