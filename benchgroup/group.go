// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchgroup groups benchmarks by the test container they
// came from and scores each against the fastest in its group.
package benchgroup

import (
	"errors"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/sirupsen/logrus"
	"golang.org/x/benchreport/benchsave"
	"golang.org/x/benchreport/benchsource"
)

// A Locator resolves a benchmark identifier to its provenance.
// *benchsource.Locator implements Locator.
type Locator interface {
	Locate(fullname string) (benchsource.SourceInfo, error)
}

// Annotated pairs a benchmark with its resolved provenance.
type Annotated struct {
	Benchmark benchsave.Benchmark
	Source    benchsource.SourceInfo
}

// A Group is the set of benchmarks from one container.
type Group struct {
	Key benchsource.Key

	// ContainerLabel is the human-readable label of the container,
	// taken from the group's first member.
	ContainerLabel string

	// Benchmarks is sorted by increasing Stats.Min once the group
	// is returned by Builder.Groups. Ties keep input order.
	Benchmarks []*Annotated
}

// A Builder collects benchmarks into groups.
type Builder struct {
	loc Locator

	// Log receives a debug entry for each skipped benchmark.
	// If nil, the standard logger is used.
	Log logrus.FieldLogger

	groups map[benchsource.Key]*Group
	// order is the groups in order of first appearance.
	order []*Group
}

// NewBuilder returns a Builder that resolves benchmarks using loc.
func NewBuilder(loc Locator) *Builder {
	return &Builder{loc: loc, groups: make(map[benchsource.Key]*Group)}
}

func (b *Builder) log() logrus.FieldLogger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}

// Add adds bench to the group of its container, creating the group if
// this is the first benchmark seen from it. Benchmarks whose
// identifier cannot be resolved are skipped; Add reports false for
// them. Any other locator error is returned.
func (b *Builder) Add(bench benchsave.Benchmark) (bool, error) {
	src, err := b.loc.Locate(bench.Fullname)
	if errors.Is(err, benchsource.ErrUnresolvable) {
		b.log().WithField("fullname", bench.Fullname).Debug("skipping benchmark with unresolvable identifier")
		return false, nil
	} else if err != nil {
		return false, err
	}

	key := src.Key()
	g := b.groups[key]
	if g == nil {
		g = &Group{Key: key, ContainerLabel: src.ContainerLabel}
		b.groups[key] = g
		b.order = append(b.order, g)
	}
	g.Benchmarks = append(g.Benchmarks, &Annotated{Benchmark: bench, Source: src})
	return true, nil
}

// Groups finalizes the Builder, returning the groups in the order
// their first member was added, each sorted by increasing minimum.
func (b *Builder) Groups() []*Group {
	for _, g := range b.order {
		g.Sort()
	}
	return b.order
}

// Build groups benchmarks in one pass. See Builder.
func Build(loc Locator, benchmarks []benchsave.Benchmark) ([]*Group, error) {
	b := NewBuilder(loc)
	for _, bench := range benchmarks {
		if _, err := b.Add(bench); err != nil {
			return nil, err
		}
	}
	return b.Groups(), nil
}

// Sort orders g's benchmarks by increasing Stats.Min. Ties keep
// their current order. Builder.Groups sorts every group it returns.
func (g *Group) Sort() {
	sort.SliceStable(g.Benchmarks, func(i, j int) bool {
		return g.Benchmarks[i].Benchmark.Stats.Min < g.Benchmarks[j].Benchmark.Stats.Min
	})
}

// Name returns the declared name of the group's container.
func (g *Group) Name() string {
	return g.Key.Container
}

// Baseline returns the fastest benchmark in g.
func (g *Group) Baseline() *Annotated {
	return g.Benchmarks[0]
}

// A Score is a benchmark and its minimum relative to the group's
// baseline.
type Score struct {
	*Annotated
	Ratio float64
}

// Scores returns the relative score of every benchmark in g, in
// order. The baseline's ratio is exactly 1.
func (g *Group) Scores() []Score {
	base := g.Baseline().Benchmark.Stats.Min
	scores := make([]Score, len(g.Benchmarks))
	for i, a := range g.Benchmarks {
		scores[i] = Score{a, ratio(a.Benchmark.Stats.Min, base)}
	}
	return scores
}

func ratio(min, base float64) float64 {
	if min == base {
		// Treat 0/0 as 1.
		return 1
	}
	if base == 0 {
		return math.Inf(1)
	}
	return min / base
}

// Geomean returns the geometric mean of the ratios in g.
// It reports false if the mean is not finite, which happens when
// the baseline minimum is zero and some other minimum is not.
func (g *Group) Geomean() (float64, bool) {
	scores := g.Scores()
	ratios := make([]float64, len(scores))
	for i, s := range scores {
		ratios[i] = s.Ratio
	}
	gm := stats.GeoMean(ratios)
	if math.IsNaN(gm) || math.IsInf(gm, 0) {
		return 0, false
	}
	return gm, true
}
