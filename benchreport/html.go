// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"fmt"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/russross/blackfriday/v2"
	"golang.org/x/benchreport/benchgroup"
	"golang.org/x/benchreport/benchsave"
	"golang.org/x/benchreport/benchsource"
)

// A Linker builds a link to the definition of a benchmark.
// *benchsource.Locator implements Linker.
type Linker interface {
	Link(base string, id benchsource.ID) (string, bool)
}

// DocOptions controls Document.
type DocOptions struct {
	// LinkBase is the repository URL that source paths are relative
	// to. If empty, entries carry no links.
	LinkBase string

	// Links builds the entry links. If nil, entries carry no links.
	Links Linker

	// Charts adds a bar chart of the relative scores to each group.
	Charts bool
}

// A Doc is the display structure of one HTML report.
type Doc struct {
	Title  string
	Groups []DisplayGroup

	// Info describes the machine the benchmarks ran on. It is
	// empty if the save carries no machine information.
	Info []InfoItem
}

// A DisplayGroup is one group of a Doc.
type DisplayGroup struct {
	// Name is the declared name of the group's container.
	Name string

	// Description is the container label rendered from Markdown.
	Description safehtml.HTML

	Benchmarks []Entry

	// Geomean is the geometric mean of the relative scores, or ""
	// if it is not defined.
	Geomean string

	// Chart is an inline SVG chart of the relative scores, or the
	// empty HTML if charts are off or the scores cannot be drawn.
	Chart safehtml.HTML
}

// An Entry is one benchmark of a DisplayGroup.
type Entry struct {
	Name   string
	Min    string
	Scaled string

	// Link points at the benchmark's definition, or is "".
	Link string
}

// An InfoItem is one labelled line of machine information.
type InfoItem struct {
	Label string
	Value string
}

// Document shapes groups and optional machine information into a Doc.
// Missing links are not an error; chart failures are.
func Document(groups []*benchgroup.Group, machine *benchsave.MachineInfo, opts DocOptions) (*Doc, error) {
	doc := &Doc{Title: "Benchmark report"}
	if machine != nil {
		doc.Title = fmt.Sprintf("Benchmark report: %s %s on %s", machine.Implementation, machine.Version, machine.System)
		doc.Info = []InfoItem{
			{"Implementation", machine.Implementation},
			{"Version", machine.Version},
			{"Operating System", machine.System + " " + machine.Release},
		}
	}

	for _, g := range groups {
		dg := DisplayGroup{
			Name:        g.Name(),
			Description: Markdown(g.ContainerLabel),
		}
		for _, s := range g.Scores() {
			e := Entry{
				Name:   s.Source.MemberLabel,
				Min:    FormatFloat(s.Benchmark.Stats.Min),
				Scaled: FormatFloat(s.Ratio),
			}
			if opts.LinkBase != "" && opts.Links != nil {
				e.Link, _ = opts.Links.Link(opts.LinkBase, s.Source.ID)
			}
			dg.Benchmarks = append(dg.Benchmarks, e)
		}
		if gm, ok := g.Geomean(); ok {
			dg.Geomean = FormatFloat(gm)
			if opts.Charts {
				svg, err := Chart(g)
				if err != nil {
					return nil, fmt.Errorf("charting %s: %w", g.Name(), err)
				}
				dg.Chart = uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(string(svg))
			}
		}
		doc.Groups = append(doc.Groups, dg)
	}
	return doc, nil
}

// Markdown renders a description as HTML. Common leading indentation
// is removed first, so indented doc comments render as paragraphs
// rather than code blocks.
func Markdown(text string) safehtml.HTML {
	out := blackfriday.Run([]byte(dedent(text)),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
		blackfriday.WithRenderer(markdownRenderer()))
	// Raw HTML in the input is dropped and link targets are
	// restricted to safe schemes, so the output is safe to embed.
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(string(out))
}

func markdownRenderer() blackfriday.Renderer {
	return blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML | blackfriday.Safelink,
	})
}

// dedent removes the longest common leading whitespace from every
// non-blank line of text. Lines consisting only of whitespace are
// emptied.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	prefix, first := "", true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		} else {
			lines[i] = line[len(prefix):]
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}
