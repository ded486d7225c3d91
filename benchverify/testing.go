// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchverify

import (
	"testing"
	"time"
)

// BRunner is a Runner that measures with a *testing.B.
type BRunner struct {
	B *testing.B
}

// Measure resets the benchmark timer and calls fn b.N times.
func (r BRunner) Measure(fn Func) any {
	var result any
	r.B.ResetTimer()
	for i := 0; i < r.B.N; i++ {
		result = fn()
	}
	return result
}

// MeasureFixed calls fn for the given rounds and iterations, ignoring
// b.N, and reports the fastest round's time per call as ns/op.
func (r BRunner) MeasureFixed(fn Func, rounds, iterations int) any {
	r.B.StopTimer()
	var result any
	best := time.Duration(-1)
	for i := 0; i < rounds; i++ {
		start := time.Now()
		for j := 0; j < iterations; j++ {
			result = fn()
		}
		d := time.Since(start) / time.Duration(iterations)
		if best < 0 || d < best {
			best = d
		}
	}
	r.B.ReportMetric(float64(best.Nanoseconds()), "ns/op")
	r.B.ReportMetric(float64(rounds), "rounds")
	return result
}
