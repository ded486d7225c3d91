// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchsave reads saved benchmark runs.
//
// A save is a JSON document holding one record per executed benchmark
// and, optionally, a description of the machine the run was captured
// on. The format is the one written by pytest-benchmark's --benchmark-save
// and --benchmark-json options; only the fields used for reporting are
// decoded, and unknown fields are ignored.
//
// Two schema versions are understood. The minimal schema carries only
// benchmarks. The extended schema also requires machine_info. Load
// picks the right one by looking at the document.
package benchsave

// Stats holds the timing distribution of one benchmark's repeated
// calls, in seconds.
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// A Benchmark is a single measured benchmark and its statistics.
type Benchmark struct {
	// Name is the short label, e.g. "test_union[100000]".
	Name string `json:"name"`

	// Fullname is the fully-qualified test identifier of the form
	// unit::container::member[params]. See package benchsource.
	Fullname string `json:"fullname"`

	// Params maps parameter names to values for parametrized
	// benchmarks. It is nil otherwise.
	Params map[string]any `json:"params,omitempty"`

	Stats Stats `json:"stats"`
}

// MachineInfo describes the environment a save was captured in.
type MachineInfo struct {
	Implementation string `json:"python_implementation"`
	Version        string `json:"python_version"`
	System         string `json:"system"`
	Release        string `json:"release"`
}

// A Save is the root of a persisted benchmark dataset.
type Save struct {
	Benchmarks []Benchmark `json:"benchmarks"`

	// MachineInfo is nil for saves in the minimal schema.
	MachineInfo *MachineInfo `json:"machine_info,omitempty"`
}
