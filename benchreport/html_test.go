// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/benchreport/benchsave"
	"golang.org/x/benchreport/benchsource"
)

const setCatalog = `
units:
  tests/test_set.py:
    path: python/tests/test_set.py
    containers:
      TestSet:
        description: |
          Compare *set* operations.
        members:
          test_union:
            description: Union of sets
            start: 3
            end: 5
          test_chain:
            description: Chain & collect
`

var linuxMachine = &benchsave.MachineInfo{
	Implementation: "CPython",
	Version:        "3.12.1",
	System:         "Linux",
	Release:        "6.5.0",
}

func catalogLocator(t *testing.T) *benchsource.Locator {
	t.Helper()
	c, err := benchsource.ParseCatalog([]byte(setCatalog))
	if err != nil {
		t.Fatal(err)
	}
	return benchsource.NewLocator(c)
}

var ignoreHTML = cmpopts.IgnoreFields(DisplayGroup{}, "Description", "Chart")

func TestDocument(t *testing.T) {
	loc := catalogLocator(t)
	groups := mustGroup(t, loc,
		bench("tests/test_set.py::TestSet::test_union", 2),
		bench("tests/test_set.py::TestSet::test_chain", 1),
	)
	doc, err := Document(groups, linuxMachine, DocOptions{
		LinkBase: "https://example.com/repo/",
		Links:    loc,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := &Doc{
		Title: "Benchmark report: CPython 3.12.1 on Linux",
		Groups: []DisplayGroup{{
			Name: "TestSet",
			Benchmarks: []Entry{
				{Name: "Chain & collect", Min: "1", Scaled: "1"},
				{Name: "Union of sets", Min: "2", Scaled: "2", Link: "https://example.com/repo/python/tests/test_set.py#L3-L5"},
			},
			Geomean: "1.41421",
		}},
		Info: []InfoItem{
			{"Implementation", "CPython"},
			{"Version", "3.12.1"},
			{"Operating System", "Linux 6.5.0"},
		},
	}
	if diff := cmp.Diff(want, doc, ignoreHTML); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got, want := doc.Groups[0].Description.String(), "<p>Compare <em>set</em> operations.</p>\n"; got != want {
		t.Errorf("want description %q, got %q", want, got)
	}
	if got := doc.Groups[0].Chart.String(); got != "" {
		t.Errorf("want no chart, got %q", got)
	}
}

func TestDocumentWithoutLinksOrMachine(t *testing.T) {
	loc := catalogLocator(t)
	groups := mustGroup(t, loc, bench("tests/test_set.py::TestSet::test_union", 2))

	// No link base.
	doc, err := Document(groups, nil, DocOptions{Links: loc})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Benchmark report" || doc.Info != nil {
		t.Errorf("want untitled doc without info, got %q %v", doc.Title, doc.Info)
	}
	if link := doc.Groups[0].Benchmarks[0].Link; link != "" {
		t.Errorf("want no link, got %q", link)
	}

	// A linker that knows no spans.
	groups = mustGroup(t, names, bench("f.py::C::m", 1))
	doc, err = Document(groups, nil, DocOptions{
		LinkBase: "https://example.com",
		Links:    benchsource.NewLocator(benchsource.NameResolver{}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if link := doc.Groups[0].Benchmarks[0].Link; link != "" {
		t.Errorf("want no link, got %q", link)
	}
}

func TestDocumentCharts(t *testing.T) {
	groups := mustGroup(t, names,
		bench("f.py::C::a", 1),
		bench("f.py::C::b", 3),
		bench("f.py::Z::a", 0),
		bench("f.py::Z::b", 1),
	)
	doc, err := Document(groups, nil, DocOptions{Charts: true})
	if err != nil {
		t.Fatal(err)
	}
	if chart := doc.Groups[0].Chart.String(); !strings.HasPrefix(chart, "<svg") {
		t.Errorf("want inline svg chart, got %.40q", chart)
	}
	// Z has an infinite score, so it has neither a geomean nor a chart.
	if z := doc.Groups[1]; z.Geomean != "" || z.Chart.String() != "" {
		t.Errorf("want no geomean or chart for Z, got %q, %.40q", z.Geomean, z.Chart.String())
	}
	if _, err := Chart(groups[1]); err == nil {
		t.Errorf("Chart with infinite score succeeded")
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown("Some *text* & <b>raw</b> [link](javascript:void)").String()
	if !strings.Contains(got, "<em>text</em>") || !strings.Contains(got, "&amp;") {
		t.Errorf("Markdown not rendered: %q", got)
	}
	if strings.Contains(got, "<b>") || strings.Contains(got, "javascript:") {
		t.Errorf("unsafe content passed through: %q", got)
	}

	// Indented text is a paragraph, not a code block.
	got = Markdown("    Indented\n    description\n").String()
	if want := "<p>Indented\ndescription</p>\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestDedent(t *testing.T) {
	for _, test := range []struct{ in, want string }{
		{"  a\n    b\n", "a\n  b\n"},
		{"a\n  b", "a\n  b"},
		{"\t\tx\n\n\t\ty", "x\n\ny"},
		{"   \n  a", "\na"},
		{"  a\n\tb", "  a\n\tb"},
		{"", ""},
	} {
		if got := dedent(test.in); got != test.want {
			t.Errorf("dedent(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestRenderReport(t *testing.T) {
	loc := catalogLocator(t)
	groups := mustGroup(t, loc,
		bench("tests/test_set.py::TestSet::test_union", 2),
		bench("tests/test_set.py::TestSet::test_chain", 1),
	)
	doc, err := Document(groups, linuxMachine, DocOptions{LinkBase: "https://example.com/repo", Links: loc})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Templates.Render("report.html", doc)
	if err != nil {
		t.Fatal(err)
	}
	page := string(out)
	for _, want := range []string{
		"<title>Benchmark report: CPython 3.12.1 on Linux</title>",
		"<dt>Operating System</dt><dd>Linux 6.5.0</dd>",
		"<h2>TestSet</h2>",
		"<p>Compare <em>set</em> operations.</p>",
		`<a href="https://example.com/repo/python/tests/test_set.py#L3-L5">Union of sets</a>`,
		"<td>Chain &amp; collect</td>",
		`<td class="num">1.41421</td>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("report does not contain %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, `class="chart"`) {
		t.Errorf("report has a chart without Charts set")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Templates.Render("missing.html", nil); err == nil {
		t.Fatal("want error for unknown template")
	}
}

func TestIndex(t *testing.T) {
	names := []string{"Linux-CPython-3.12.1.html", "Darwin-CPython-3.11.0.html"}
	out, err := Index(Templates, names)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Darwin-CPython-3.11.0.html", "Linux-CPython-3.12.1.html"}, names); diff != "" {
		t.Errorf("names not sorted (-want +got):\n%s", diff)
	}
	page := string(out)
	d := strings.Index(page, `<a href="Darwin-CPython-3.11.0.html">`)
	l := strings.Index(page, `<a href="Linux-CPython-3.12.1.html">`)
	if d < 0 || l < 0 || d > l {
		t.Errorf("index not in sorted order:\n%s", page)
	}
}

func TestReportName(t *testing.T) {
	if got, want := ReportName(linuxMachine, "html"), "Linux-CPython-3.12.1.html"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestGeomeanFormatting(t *testing.T) {
	if got := FormatFloat(math.Sqrt(2)); got != "1.41421" {
		t.Errorf("want 1.41421, got %s", got)
	}
}
