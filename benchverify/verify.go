// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchverify guards benchmarks against functions whose result
// changes from one invocation to the next.
//
// Benchmarks that compare different ways of computing the same thing
// are grouped into a Suite. Before a benchmark is measured, its
// function is called once and the result is compared with the result
// recorded by the previous benchmark of the suite. A mismatch fails
// that benchmark with a *DivergenceError and it is not measured.
//
// Whether a suite verifies results, and whether its benchmarks run a
// fixed number of rounds and iterations, is configured per group with
// a Resolver:
//
//	func init() {
//		if _, err := benchverify.Default.Apply("SetUnion", benchverify.Verify(), benchverify.Rounds(5)); err != nil {
//			panic(err)
//		}
//	}
//
//	var unions = benchverify.NewSuite("SetUnion", nil)
//
//	func BenchmarkUnion(b *testing.B) {
//		if _, err := unions.Bench(b.Name(), benchverify.BRunner{B: b}).Run(union); err != nil {
//			b.Fatal(err)
//		}
//	}
package benchverify

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
)

// Func is a benchmarked function. Its result is what gets verified.
type Func func() any

// A Runner measures a function.
type Runner interface {
	// Measure runs fn as many times as the runner sees fit and
	// returns the result of the last call.
	Measure(fn Func) any

	// MeasureFixed runs fn for rounds rounds of iterations calls
	// each and returns the result of the last call.
	MeasureFixed(fn Func, rounds, iterations int) any
}

// ErrDivergence matches errors reporting that a benchmarked function
// returned a different result than before.
var ErrDivergence = errors.New("benchmark result diverged")

// A DivergenceError reports that the result of a benchmarked function
// differs from the result recorded for another benchmark of the suite.
type DivergenceError struct {
	// ID identifies the benchmark whose result was recorded.
	ID string

	// Current identifies the benchmark that diverged.
	Current string

	// Diff describes the difference, from the recorded result to
	// the current one.
	Diff string
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%s: result different from %s:\n%s", e.Current, e.ID, e.Diff)
}

func (e *DivergenceError) Is(target error) bool {
	return target == ErrDivergence
}

// A Record is the most recently verified result of a suite.
type Record struct {
	// ID identifies the benchmark that produced Result.
	ID     string
	Result any
}

// A Suite is a group of benchmarks whose results must agree.
// A Suite is not safe for concurrent use.
type Suite struct {
	group    string
	resolver *Resolver
	equal    []cmp.Option
	record   Record
	recorded bool

	// Log receives an entry for every verified result.
	// If nil, the standard logger is used.
	Log logrus.FieldLogger
}

// NewSuite returns a Suite for the benchmarks of group, configured by
// r. If r is nil, Default is used. Results are compared exactly.
func NewSuite(group string, r *Resolver) *Suite {
	if r == nil {
		r = Default
	}
	return &Suite{group: group, resolver: r, equal: exactly()}
}

func exactly() []cmp.Option {
	return []cmp.Option{
		cmp.Exporter(func(reflect.Type) bool { return true }),
		cmpopts.EquateNaNs(),
	}
}

// WithTolerance makes s treat floating-point numbers in results as
// equal if they are within margin or a fraction of each other, as
// cmpopts.EquateApprox does. It returns s.
func (s *Suite) WithTolerance(fraction, margin float64) *Suite {
	s.equal = append(exactly(), cmpopts.EquateApprox(fraction, margin))
	return s
}

// Record returns the last verified result of s. It reports false if
// no result has been verified yet.
func (s *Suite) Record() (Record, bool) {
	return s.record, s.recorded
}

// Config returns the current configuration of the suite's group.
func (s *Suite) Config() Config {
	return s.resolver.Resolve(s.group)
}

func (s *Suite) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// Bench returns the benchmark id of s, measured by runner.
func (s *Suite) Bench(id string, runner Runner) *Bench {
	return &Bench{suite: s, id: id, runner: runner}
}

// A Bench is one benchmark of a Suite.
type Bench struct {
	suite  *Suite
	id     string
	runner Runner
}

// Run measures fn according to the configuration of the suite's group,
// which is read once when Run starts. If the group verifies results,
// fn is first called once and its result checked.
func (b *Bench) Run(fn Func) (any, error) {
	c := b.suite.Config()
	if c.Verify {
		if err := b.check(fn); err != nil {
			return nil, err
		}
	}
	if c.Fixed() {
		rounds, iterations := c.Counts()
		return b.runner.MeasureFixed(fn, rounds, iterations), nil
	}
	return b.runner.Measure(fn), nil
}

// PedanticOptions are the counts of Bench.Pedantic. Zero counts are 1.
type PedanticOptions struct {
	Rounds     int
	Iterations int
}

// Pedantic checks the result of fn once and then measures it for a
// fixed number of rounds and iterations, whatever the group's
// configuration.
func (b *Bench) Pedantic(fn Func, opts PedanticOptions) (any, error) {
	c := Config{Rounds: opts.Rounds, Iterations: opts.Iterations}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", b.id, err)
	}
	if err := b.check(fn); err != nil {
		return nil, err
	}
	rounds, iterations := c.Counts()
	return b.runner.MeasureFixed(fn, rounds, iterations), nil
}

// check calls fn and compares its result with the suite's record.
// On a match, or if nothing was recorded, the result is recorded
// under b's id.
func (b *Bench) check(fn Func) error {
	s := b.suite
	result := fn()
	if s.recorded && !cmp.Equal(s.record.Result, result, s.equal...) {
		err := &DivergenceError{
			ID:      s.record.ID,
			Current: b.id,
			Diff:    cmp.Diff(s.record.Result, result, s.equal...),
		}
		s.log().WithFields(logrus.Fields{"group": s.group, "benchmark": b.id, "recorded": s.record.ID}).Warn("result diverged")
		return err
	}
	s.record, s.recorded = Record{ID: b.id, Result: result}, true
	s.log().WithFields(logrus.Fields{"group": s.group, "benchmark": b.id}).Debug("result verified")
	return nil
}
