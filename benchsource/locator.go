// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsource

import (
	"fmt"
	"strings"
)

// A Resolver supplies human-readable labels for a benchmark's
// container and member.
type Resolver interface {
	Resolve(id ID) (container, member string, err error)
}

// A Linker reports where a member is defined, as a repository path
// and an inclusive line span. ok is false if the location is unknown.
type Linker interface {
	Span(id ID) (path string, start, end int, ok bool)
}

// NameResolver labels containers and members with their own names.
// It never fails.
type NameResolver struct{}

func (NameResolver) Resolve(id ID) (container, member string, err error) {
	return id.Container, id.Member, nil
}

// SourceInfo is the resolved provenance of one benchmark.
type SourceInfo struct {
	ID ID

	// ContainerLabel and MemberLabel are the human-readable
	// labels of the container and member.
	ContainerLabel string
	MemberLabel    string
}

// Key returns the grouping key of the benchmark's container.
func (s SourceInfo) Key() Key {
	return s.ID.Key()
}

// A Locator resolves benchmark identifiers for one reporting run.
type Locator struct {
	resolver Resolver
	linker   Linker
}

// NewLocator returns a Locator that labels benchmarks using r.
// If r also implements Linker, the Locator can produce source links.
func NewLocator(r Resolver) *Locator {
	l := &Locator{resolver: r}
	if linker, ok := r.(Linker); ok {
		l.linker = linker
	}
	return l
}

// Locate parses fullname and resolves its labels.
// It returns an error matching ErrUnresolvable if fullname is not a
// well-formed identifier; Resolver errors are returned as they are.
func (l *Locator) Locate(fullname string) (SourceInfo, error) {
	id, err := ParseID(fullname)
	if err != nil {
		return SourceInfo{}, err
	}
	container, member, err := l.resolver.Resolve(id)
	if err != nil {
		return SourceInfo{}, err
	}
	return SourceInfo{ID: id, ContainerLabel: container, MemberLabel: member}, nil
}

// Link returns a link to the definition of id's member below base,
// in the form base/path#Lstart-Lend. It reports false if the Locator
// has no Linker or the Linker does not know the member.
func (l *Locator) Link(base string, id ID) (string, bool) {
	if l.linker == nil {
		return "", false
	}
	path, start, end, ok := l.linker.Span(id)
	if !ok {
		return "", false
	}
	base = strings.TrimRight(base, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s#L%d-L%d", base, path, start, end), true
}
