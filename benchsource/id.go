// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchsource maps benchmark identifiers back to the test
// code they were measured from.
//
// A benchmark identifier has the form
//
//	unit::container::member[params]
//
// where unit names a source file, container names the test class or
// type declared in it, member names the benchmark function and the
// optional bracketed suffix records parametrization. Benchmarks are
// grouped by their container, and labelled using human-authored
// descriptions looked up through a Resolver, typically a Catalog.
package benchsource

import (
	"errors"
	"fmt"
	"strings"
)

// Separator separates the parts of a benchmark identifier.
const Separator = "::"

// ErrUnresolvable is matched by errors for identifiers that do not
// have the unit::container::member shape.
var ErrUnresolvable = errors.New("unresolvable benchmark identifier")

// An UnresolvableError reports a malformed benchmark identifier.
type UnresolvableError struct {
	Fullname string
	Parts    int // number of ::-separated parts found
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("%v %q: want 3 %q-separated parts, found %d", ErrUnresolvable, e.Fullname, Separator, e.Parts)
}

func (e *UnresolvableError) Is(target error) bool {
	return target == ErrUnresolvable
}

// An ID is a parsed benchmark identifier.
type ID struct {
	Unit      string
	Container string
	Member    string // without the parameter suffix
	Params    string // bracketed suffix including "[" and "]", or ""
}

// ParseID splits a fully-qualified benchmark identifier into its parts.
func ParseID(fullname string) (ID, error) {
	parts := strings.Split(fullname, Separator)
	if len(parts) != 3 {
		return ID{}, &UnresolvableError{Fullname: fullname, Parts: len(parts)}
	}
	id := ID{Unit: parts[0], Container: parts[1], Member: parts[2]}
	if i := strings.Index(id.Member, "["); i >= 0 {
		id.Member, id.Params = id.Member[:i], id.Member[i:]
	}
	return id, nil
}

// String returns the fully-qualified form of id.
func (id ID) String() string {
	return id.Unit + Separator + id.Container + Separator + id.Member + id.Params
}

// Key returns the grouping key of id: the identity of its container.
func (id ID) Key() Key {
	return Key{Unit: id.Unit, Container: id.Container}
}

// A Key identifies one originating container. Benchmarks with equal
// Keys belong to the same group.
type Key struct {
	Unit, Container string
}

func (k Key) String() string {
	return k.Unit + Separator + k.Container
}
