// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"golang.org/x/benchreport/archive"
	"golang.org/x/benchreport/benchsource"
)

const (
	linuxSave = `{
  "machine_info": {"python_implementation": "CPython", "python_version": "3.12.1", "system": "Linux", "release": "6.5.0"},
  "benchmarks": [
    {"name": "a", "fullname": "f.py::C::a", "stats": {"min": 2, "max": 3, "mean": 2.5, "stddev": 0.1}},
    {"name": "b", "fullname": "f.py::C::b", "stats": {"min": 1, "max": 2, "mean": 1.5, "stddev": 0.1}}
  ]
}`
	macSave = `{
  "benchmarks": [
    {"name": "a", "fullname": "f.py::D::a", "stats": {"min": 1, "max": 1, "mean": 1, "stddev": 0}}
  ]
}`
	catalogYAML = `
units:
  f.py:
    containers:
      C:
        description: Dict creation
        members:
          a: {description: Literal, start: 10, end: 12}
          b: {description: Constructor, start: 14, end: 16}
`
)

func testFS(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, data := range map[string]string{
		"runs/linux/0002_new.json": linuxSave,
		"runs/mac/0001_mac.json":   macSave,
		"cat.yaml":                 catalogYAML,
	} {
		if err := afero.WriteFile(fs, name, []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

// testApp returns an app over fs that archives to an in-memory
// database. Log messages are collected in the returned buffer.
func testApp(t *testing.T, fs afero.Fs) (*app, *bytes.Buffer) {
	t.Helper()
	t.Setenv("BENCHREPORT_ARCHIVE_DSN", ":memory:")
	var errOut bytes.Buffer
	a := newApp(fs, nil, &errOut)
	t.Cleanup(func() {
		if err := a.close(); err != nil {
			t.Error(err)
		}
	})
	return a, &errOut
}

func run(t *testing.T, a *app, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	a.out = &out
	t.Logf("benchreport %s", strings.Join(args, " "))
	if err := a.execute(args); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return out.String()
}

func TestTable(t *testing.T) {
	a, _ := testApp(t, testFS(t))
	got := run(t, a, "table", "runs/linux/0002_new.json")
	want := `           C
Benchmark  Min  Relative
────────────────────────
b            1         1
a            2         2
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

const labeledTable = `      Dict creation
Benchmark    Min  Relative
──────────────────────────
Constructor    1         1
Literal        2         2
`

func TestTableCatalogFlag(t *testing.T) {
	a, _ := testApp(t, testFS(t))
	got := run(t, a, "--catalog", "cat.yaml", "table", "runs/linux/0002_new.json")
	if diff := cmp.Diff(labeledTable, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTableCatalogEnv(t *testing.T) {
	t.Setenv("BENCHREPORT_CATALOG", "cat.yaml")
	a, _ := testApp(t, testFS(t))
	got := run(t, a, "table", "runs/linux/0002_new.json")
	if diff := cmp.Diff(labeledTable, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTableCatalogMiss(t *testing.T) {
	a, _ := testApp(t, testFS(t))
	a.out = new(bytes.Buffer)
	err := a.execute([]string{"--catalog", "cat.yaml", "table", "runs/mac/0001_mac.json"})
	var nf *benchsource.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestHTMLConfigFile(t *testing.T) {
	fs := testFS(t)
	config := "catalog: cat.yaml\nlink-base: https://example.com/repo/\n"
	if err := afero.WriteFile(fs, "benchreport.yaml", []byte(config), 0666); err != nil {
		t.Fatal(err)
	}
	a, _ := testApp(t, fs)
	run(t, a, "--config", "benchreport.yaml", "html", "runs/linux/0002_new.json", "report.html")

	page, err := afero.ReadFile(fs, "report.html")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Benchmark report: CPython 3.12.1 on Linux",
		"Dict creation",
		`href="https://example.com/repo/f.py#L10-L12"`,
		`href="https://example.com/repo/f.py#L14-L16"`,
	} {
		if !strings.Contains(string(page), want) {
			t.Errorf("report does not contain %q:\n%s", want, page)
		}
	}
	if strings.Contains(string(page), "<svg") {
		t.Errorf("report has a chart without -charts")
	}
}

func TestHTMLCharts(t *testing.T) {
	fs := testFS(t)
	a, _ := testApp(t, fs)
	run(t, a, "--charts", "html", "runs/linux/0002_new.json", "report.html")
	page, err := afero.ReadFile(fs, "report.html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<svg") {
		t.Errorf("report has no chart:\n%s", page)
	}
}

func TestDir(t *testing.T) {
	a, _ := testApp(t, testFS(t))
	got := run(t, a, "dir", "runs")
	want := `runs/linux/0002_new.json

           C
Benchmark  Min  Relative
────────────────────────
b            1         1
a            2         2

runs/mac/0001_mac.json

           D
Benchmark  Min  Relative
────────────────────────
a            1         1
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDirHTML(t *testing.T) {
	fs := testFS(t)
	a, _ := testApp(t, fs)

	// The mac save has no machine information to name its report.
	a.out = new(bytes.Buffer)
	if err := a.execute([]string{"dir-html", "runs", "out"}); err == nil {
		t.Fatal("want error for save without machine info")
	}

	got := run(t, a, "dir-html", "runs/linux", "out")
	if want := "Linux-CPython-3.12.1.html\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	for _, name := range []string{"out/Linux-CPython-3.12.1.html", "out/index.html"} {
		if ok, _ := afero.Exists(fs, name); !ok {
			t.Errorf("%s not written", name)
		}
	}
}

const dictSource = `package bench

// Dict creation.
type Dict struct{}

// Literal syntax.
func (Dict) Literal() {}
`

const setSource = `package bench

type Set struct{}

func (Set) Union() {
}
`

func TestCatalog(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "dict.go", []byte(dictSource), 0666)
	afero.WriteFile(fs, "set.go", []byte(setSource), 0666)
	a, errOut := testApp(t, fs)

	// Without -out the catalog is printed.
	got := run(t, a, "catalog", "dict.go")
	c, err := benchsource.ParseCatalog([]byte(got))
	if err != nil {
		t.Fatal(err)
	}
	container, member, err := c.Resolve(benchsource.ID{Unit: "dict.go", Container: "Dict", Member: "Literal"})
	if err != nil || container != "Dict creation." || member != "Literal syntax." {
		t.Errorf("Resolve = %q, %q, %v", container, member, err)
	}

	// With -out, later runs merge into the file.
	run(t, a, "catalog", "--out", "cat.yaml", "dict.go")
	run(t, a, "catalog", "--out", "cat.yaml", "set.go")
	c, err = benchsource.LoadCatalog(fs, "cat.yaml")
	if err != nil {
		t.Fatal(err)
	}
	want := []benchsource.ID{
		{Unit: "dict.go", Container: "Dict", Member: "Literal"},
		{Unit: "set.go", Container: "Set", Member: "Union"},
	}
	if diff := cmp.Diff(want, c.IDs()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !strings.Contains(errOut.String(), "wrote 2 benchmark(s)") {
		t.Errorf("missing log message in:\n%s", errOut)
	}
}

func TestArchive(t *testing.T) {
	a, _ := testApp(t, testFS(t))

	got := run(t, a, "archive", "add", "runs/linux/0002_new.json", "runs/mac/0001_mac.json")
	if want := "1 runs/linux/0002_new.json\n2 runs/mac/0001_mac.json\n"; got != want {
		t.Errorf("add: want %q, got %q", want, got)
	}

	got = run(t, a, "archive", "list")
	want := `ID  Name                      Machine                  Benchmarks
─────────────────────────────────────────────────────────────────
 1  runs/linux/0002_new.json  CPython 3.12.1 on Linux           2
 2  runs/mac/0001_mac.json    -                                 1
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}

	got = run(t, a, "--catalog", "cat.yaml", "archive", "show", "1")
	if diff := cmp.Diff(labeledTable, got); diff != "" {
		t.Errorf("show (-want +got):\n%s", diff)
	}

	run(t, a, "archive", "delete", "1")
	got = run(t, a, "archive", "list")
	want = `ID  Name                    Machine  Benchmarks
───────────────────────────────────────────────
 2  runs/mac/0001_mac.json  -                 1
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list after delete (-want +got):\n%s", diff)
	}

	a.out = new(bytes.Buffer)
	if err := a.execute([]string{"archive", "show", "1"}); !errors.Is(err, archive.ErrNotFound) {
		t.Errorf("show deleted save: want ErrNotFound, got %v", err)
	}
	if err := a.execute([]string{"archive", "delete", "x"}); err == nil {
		t.Errorf("want error for bad save ID")
	}
}

func TestBadLogLevel(t *testing.T) {
	a, _ := testApp(t, testFS(t))
	a.out = new(bytes.Buffer)
	if err := a.execute([]string{"--log-level", "loud", "table", "runs/mac/0001_mac.json"}); err == nil {
		t.Fatal("want error for unknown log level")
	}
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestDirHTMLWriteError(t *testing.T) {
	a, _ := testApp(t, testFS(t))
	a.out = failWriter{}
	if err := a.execute([]string{"dir-html", "runs/linux", "out"}); !errors.Is(err, errWrite) {
		t.Errorf("want write error, got %v", err)
	}
}
