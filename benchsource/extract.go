// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsource

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Extract builds a Catalog from Go source files.
//
// Every named type declared in a file becomes a container, described
// by its doc comment. Every method of such a type becomes a member,
// described by its doc comment and spanning the lines of its
// declaration. Units are named by the paths as given, with forward
// slashes.
func Extract(fs afero.Fs, paths ...string) (*Catalog, error) {
	c := &Catalog{Units: make(map[string]*Unit)}
	fset := token.NewFileSet()
	for _, path := range paths {
		src, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, err
		}
		f, err := parser.ParseFile(fset, path, src, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", path, err)
		}
		name := filepath.ToSlash(path)
		c.Units[name] = extractUnit(fset, f)
	}
	return c, nil
}

func extractUnit(fset *token.FileSet, f *ast.File) *Unit {
	u := &Unit{Containers: make(map[string]*Container)}
	container := func(name string) *Container {
		ct := u.Containers[name]
		if ct == nil {
			ct = &Container{Members: make(map[string]*Member)}
			u.Containers[name] = ct
		}
		return ct
	}

	for _, decl := range f.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				continue
			}
			for _, spec := range decl.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(decl.Specs) == 1 {
					// The comment of an unparenthesized
					// declaration is attached to the GenDecl.
					doc = decl.Doc
				}
				container(ts.Name.Name).Description = docText(doc)
			}
		case *ast.FuncDecl:
			recv := receiverName(decl)
			if recv == "" {
				continue
			}
			container(recv).Members[decl.Name.Name] = &Member{
				Description: docText(decl.Doc),
				Start:       fset.Position(decl.Pos()).Line,
				End:         fset.Position(decl.End()).Line,
			}
		}
	}

	// Drop types without methods; they hold no benchmarks.
	for name, ct := range u.Containers {
		if len(ct.Members) == 0 {
			delete(u.Containers, name)
		}
	}
	return u
}

// receiverName returns the base type name of fn's receiver, or "" if
// fn is a plain function.
func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	typ := fn.Recv.List[0].Type
	for {
		switch t := typ.(type) {
		case *ast.StarExpr:
			typ = t.X
		case *ast.IndexExpr:
			typ = t.X
		case *ast.IndexListExpr:
			typ = t.X
		case *ast.ParenExpr:
			typ = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

func docText(g *ast.CommentGroup) string {
	return strings.TrimSpace(g.Text())
}
