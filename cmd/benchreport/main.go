// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchreport turns saved benchmark results into comparison reports.
//
// Usage:
//
//	benchreport [flags] table file
//	benchreport [flags] html file out.html
//	benchreport [flags] dir dir
//	benchreport [flags] dir-html dir outdir
//	benchreport [flags] catalog [--out file] file.go...
//	benchreport [flags] archive add|list|show|delete ...
//
// Each save is a JSON file of benchmark statistics. Benchmarks are
// grouped by the test container that declares them and scored against
// the group's fastest benchmark. table prints the groups of one save as
// text; html writes them as an HTML page. dir prints every save below
// a directory, and dir-html writes a page for the newest save of each
// directory plus an index.
//
// The --catalog flag names a YAML catalog of source descriptions and
// line spans, as written by the catalog command. With a catalog,
// groups and benchmarks are labeled by their descriptions, and --link-base
// adds links to the benchmark sources.
//
// Saves can be kept in a SQL archive, sqlite3 by default or MySQL with
// --archive-driver=mysql.
//
// Every flag can also be set in the file named by --config or in an
// environment variable, for example BENCHREPORT_LINK_BASE.
package main

import (
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/afero"
	_ "golang.org/x/benchreport/archive/sqlite3"
)

func main() {
	a := newApp(afero.NewOsFs(), os.Stdout, os.Stderr)
	err := a.execute(os.Args[1:])
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(1)
	}
}
