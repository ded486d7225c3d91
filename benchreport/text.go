// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport renders grouped benchmarks as text tables and
// HTML documents.
//
// Within each group, benchmarks are listed from fastest to slowest by
// their minimum time, with each minimum also shown relative to the
// fastest one. For example, the text form of one group is
//
//	       Dict creation
//	Benchmark      Min  Relative
//	────────────────────────────
//	literal    3.1e-08         1
//	keywords   9.3e-08         3
//
// The HTML form is built in two steps: Document shapes the groups into
// a display structure, which a Renderer turns into a page.
package benchreport

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/benchreport/benchgroup"
	"golang.org/x/benchreport/internal/texttab"
)

// FormatFloat formats v in the shortest general form with up to six
// significant digits, switching to an exponent for very large or
// small values. Trailing zeros are dropped.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// A TextTable is the tabular projection of one group.
type TextTable struct {
	Title string
	Rows  []TextRow
}

// A TextRow is one benchmark of a TextTable.
type TextRow struct {
	Label    string
	Min      string
	Relative string
}

// Table projects g into a TextTable. Rows follow g's order.
func Table(g *benchgroup.Group) *TextTable {
	t := &TextTable{Title: g.ContainerLabel}
	for _, s := range g.Scores() {
		t.Rows = append(t.Rows, TextRow{
			Label:    s.Source.MemberLabel,
			Min:      FormatFloat(s.Benchmark.Stats.Min),
			Relative: FormatFloat(s.Ratio),
		})
	}
	return t
}

// Format writes t to w assuming a fixed-width font.
func (t *TextTable) Format(w io.Writer) error {
	var o texttab.Table
	o.Title(t.Title)
	o.Row().Cell("Benchmark").Cell("Min", texttab.Right).Cell("Relative", texttab.Right)
	for i, r := range t.Rows {
		if i == 0 {
			o.Rule()
		} else {
			o.Row()
		}
		o.Cell(r.Label).Cell(r.Min, texttab.Right).Cell(r.Relative, texttab.Right)
	}
	return o.Format(w)
}

// WriteText writes one table per group to w, in order, separated by
// blank lines.
func WriteText(w io.Writer, groups []*benchgroup.Group) error {
	for i, g := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := Table(g).Format(w); err != nil {
			return err
		}
	}
	return nil
}
