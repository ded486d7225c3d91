// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	title string
	rows  [][]textCell
	cols  int

	// rules holds the indexes of rows that are preceded by a
	// horizontal rule.
	rules map[int]bool
}

type textCell struct {
	value     string
	alignment align
}

// A CellOption adjusts a single cell.
type CellOption func(c *textCell)

var (
	Left   CellOption = func(c *textCell) { c.alignment = alignLeft }
	Center CellOption = func(c *textCell) { c.alignment = alignCenter }
	Right  CellOption = func(c *textCell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	default:
		return s + strings.Repeat(" ", n)
	case alignCenter:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	case alignRight:
		return strings.Repeat(" ", n) + s
	}
}

// Title sets a title printed centered above the table.
func (t *Table) Title(title string) *Table {
	t.title = title
	return t
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Rule starts a new row in table t that is separated from the
// previous rows by a horizontal rule.
func (t *Table) Rule() *Table {
	if t.rules == nil {
		t.rules = make(map[int]bool)
	}
	t.rules[len(t.rows)] = true
	return t.Row()
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := textCell{value: value}
	for _, o := range opts {
		o(&c)
	}
	row := &t.rows[len(t.rows)-1]
	*row = append(*row, c)
	if len(*row) > t.cols {
		t.cols = len(*row)
	}
	return t
}

// Format lays out table t and writes it to w. Columns are separated by
// two spaces. Trailing spaces are never printed.
func (t *Table) Format(w io.Writer) error {
	ws := make([]int, t.cols)
	for _, row := range t.rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}
	width := 0
	for i, cw := range ws {
		if i > 0 {
			width += len(sep)
		}
		width += cw
	}

	var lines []string
	if t.title != "" {
		for _, line := range strings.Split(strings.TrimSpace(t.title), "\n") {
			lines = append(lines, alignCenter.pad(strings.TrimSpace(line), width))
		}
	}
	for r, row := range t.rows {
		if t.rules[r] {
			lines = append(lines, strings.Repeat("─", width))
		}
		var b strings.Builder
		for i, c := range row {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(c.alignment.pad(c.value, ws[i]))
		}
		lines = append(lines, b.String())
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s\n", strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

const sep = "  "
