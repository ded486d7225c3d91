// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/benchreport/benchgroup"
	"golang.org/x/benchreport/benchsave"
	"golang.org/x/benchreport/benchsource"
)

// IndexName is the file name of the index written by Batch.WriteHTML.
const IndexName = "index.html"

// ReportName returns the file name of the report for machine m, in the
// form "<system>-<implementation>-<version>.<ext>".
func ReportName(m *benchsave.MachineInfo, ext string) string {
	return fmt.Sprintf("%s-%s-%s.%s", m.System, m.Implementation, m.Version, ext)
}

// Index renders the index of report file names with r.
// names are sorted in place.
func Index(r Renderer, names []string) ([]byte, error) {
	sort.Strings(names)
	return r.Render(IndexName, names)
}

// A Batch reports on many saves at once.
type Batch struct {
	FS afero.Fs

	// Resolver labels benchmarks. Each report gets its own Locator
	// over it. If nil, benchsource.NameResolver is used.
	Resolver benchsource.Resolver

	// Renderer renders HTML reports. If nil, Templates is used.
	Renderer Renderer

	// Options are passed to Document. Links is set by Batch.
	Options DocOptions

	Log logrus.FieldLogger
}

func (b *Batch) resolver() benchsource.Resolver {
	if b.Resolver == nil {
		return benchsource.NameResolver{}
	}
	return b.Resolver
}

func (b *Batch) renderer() Renderer {
	if b.Renderer == nil {
		return Templates
	}
	return b.Renderer
}

func (b *Batch) log() logrus.FieldLogger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}

// Groups loads the save in file and groups its benchmarks.
func (b *Batch) Groups(file string) (*benchsave.Save, []*benchgroup.Group, *benchsource.Locator, error) {
	save, err := benchsave.LoadFile(b.FS, file)
	if err != nil {
		return nil, nil, nil, err
	}
	groups, loc, err := b.GroupSave(file, save)
	if err != nil {
		return nil, nil, nil, err
	}
	return save, groups, loc, nil
}

// GroupSave groups the benchmarks of a save that is already loaded.
// name identifies the save in errors and log messages.
func (b *Batch) GroupSave(name string, save *benchsave.Save) ([]*benchgroup.Group, *benchsource.Locator, error) {
	loc := benchsource.NewLocator(b.resolver())
	bl := benchgroup.NewBuilder(loc)
	bl.Log = b.log().WithField("file", name)
	for _, bench := range save.Benchmarks {
		if _, err := bl.Add(bench); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return bl.Groups(), loc, nil
}

// Report renders the HTML report of the save in file.
func (b *Batch) Report(file string) (*benchsave.Save, []byte, error) {
	save, groups, loc, err := b.Groups(file)
	if err != nil {
		return nil, nil, err
	}
	opts := b.Options
	opts.Links = loc
	doc, err := Document(groups, save.MachineInfo, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}
	out, err := b.renderer().Render("report.html", doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}
	return save, out, nil
}

// WriteText writes the text tables of every save below root to w.
// Saves are the files named *.json, visited in lexical order. Each
// file's tables are preceded by its path.
func (b *Batch) WriteText(w io.Writer, root string) error {
	files, err := SaveFiles(b.FS, root)
	if err != nil {
		return err
	}
	for i, file := range files {
		_, groups, _, err := b.Groups(file)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", file); err != nil {
			return err
		}
		if err := WriteText(w, groups); err != nil {
			return err
		}
	}
	return nil
}

// WriteHTML writes an HTML report for the newest save in each
// directory below root, plus an index of the reports, to outDir.
// The newest save of a directory is the lexically last *.json file in
// it. Reports are named by ReportName, so every save must carry
// machine information. When the newest saves of two directories share
// a report name, the later directory's report replaces the earlier one
// and a warning is logged. WriteHTML returns the report names in index
// order, each once.
func (b *Batch) WriteHTML(root, outDir string) ([]string, error) {
	files, err := LatestSaves(b.FS, root)
	if err != nil {
		return nil, err
	}
	if err := b.FS.MkdirAll(outDir, 0777); err != nil {
		return nil, err
	}
	var names []string
	written := make(map[string]string)
	for _, file := range files {
		save, out, err := b.Report(file)
		if err != nil {
			return nil, err
		}
		if save.MachineInfo == nil {
			return nil, fmt.Errorf("%s: no machine information to name the report", file)
		}
		name := ReportName(save.MachineInfo, "html")
		if err := afero.WriteFile(b.FS, filepath.Join(outDir, name), out, 0666); err != nil {
			return nil, err
		}
		log := b.log().WithFields(logrus.Fields{"save": file, "report": name})
		if prev, ok := written[name]; ok {
			log.WithField("replaced", prev).Warn("report replaces the report of another save with the same machine")
		} else {
			names = append(names, name)
		}
		written[name] = file
		log.Info("wrote report")
	}
	index, err := Index(b.renderer(), names)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(b.FS, filepath.Join(outDir, IndexName), index, 0666); err != nil {
		return nil, err
	}
	return names, nil
}

// SaveFiles returns every *.json file below root in lexical order.
func SaveFiles(fsys afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isSave(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LatestSaves returns the lexically last *.json file of every
// directory below root that has one, ordered by directory.
func LatestSaves(fsys afero.Fs, root string) ([]string, error) {
	files, err := SaveFiles(fsys, root)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]string)
	var dirs []string
	for _, f := range files {
		dir := filepath.Dir(f)
		if _, ok := latest[dir]; !ok {
			dirs = append(dirs, dir)
		}
		// files is sorted, so the last file seen wins.
		latest[dir] = f
	}
	sort.Strings(dirs)
	out := make([]string, len(dirs))
	for i, d := range dirs {
		out[i] = latest[d]
	}
	return out, nil
}

func isSave(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".json")
}
