// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsource

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// A Catalog is a precomputed description of test sources: for each
// source unit, the containers it declares and their members, with the
// descriptions their authors attached and the members' line spans.
//
// Catalogs are written by hand or produced by Extract, and stored as
// YAML or JSON. A Catalog is both a Resolver and a Linker.
type Catalog struct {
	Units map[string]*Unit `json:"units"`
}

// A Unit is one source file.
type Unit struct {
	// Path is the repository-relative path used in links. If
	// empty, the unit name is used.
	Path       string                `json:"path,omitempty"`
	Containers map[string]*Container `json:"containers"`
}

// A Container is a test class or type grouping benchmarks.
type Container struct {
	Description string             `json:"description,omitempty"`
	Members     map[string]*Member `json:"members"`
}

// A Member is a single benchmark function.
type Member struct {
	Description string `json:"description,omitempty"`
	// Start and End are the first and last source lines of the
	// member. Zero means unknown.
	Start int `json:"start,omitempty"`
	End   int `json:"end,omitempty"`
}

// A NotFoundError reports an identifier naming a unit, container or
// member that the catalog does not describe.
type NotFoundError struct {
	ID   ID
	What string // "unit", "container" or "member"
}

func (e *NotFoundError) Error() string {
	var name string
	switch e.What {
	case "unit":
		name = e.ID.Unit
	case "container":
		name = e.ID.Container
	default:
		name = e.ID.Member
	}
	return fmt.Sprintf("%s: %s %q not in catalog", e.ID, e.What, name)
}

// ParseCatalog parses a YAML or JSON catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	c := new(Catalog)
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if c.Units == nil {
		c.Units = make(map[string]*Unit)
	}
	return c, nil
}

// LoadCatalog reads the named catalog file from fs.
func LoadCatalog(fs afero.Fs, name string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, err
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Marshal encodes c as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Catalog) lookup(id ID) (*Unit, *Container, *Member, error) {
	u := c.Units[id.Unit]
	if u == nil {
		return nil, nil, nil, &NotFoundError{id, "unit"}
	}
	ct := u.Containers[id.Container]
	if ct == nil {
		return nil, nil, nil, &NotFoundError{id, "container"}
	}
	m := ct.Members[id.Member]
	if m == nil {
		return nil, nil, nil, &NotFoundError{id, "member"}
	}
	return u, ct, m, nil
}

// Resolve returns the descriptions of id's container and member.
// An empty description falls back to the declared name.
func (c *Catalog) Resolve(id ID) (container, member string, err error) {
	_, ct, m, err := c.lookup(id)
	if err != nil {
		return "", "", err
	}
	container, member = ct.Description, m.Description
	if container == "" {
		container = id.Container
	}
	if member == "" {
		member = id.Member
	}
	return container, member, nil
}

// Span returns the path and line span of id's member.
func (c *Catalog) Span(id ID) (path string, start, end int, ok bool) {
	u, _, m, err := c.lookup(id)
	if err != nil || m.Start <= 0 {
		return "", 0, 0, false
	}
	path = u.Path
	if path == "" {
		path = id.Unit
	}
	end = m.End
	if end < m.Start {
		end = m.Start
	}
	return path, m.Start, end, true
}

// Merge adds the units, containers and members of o to c. Entries in
// o replace entries of c with the same name.
func (c *Catalog) Merge(o *Catalog) {
	if c.Units == nil {
		c.Units = make(map[string]*Unit)
	}
	for name, ou := range o.Units {
		u := c.Units[name]
		if u == nil {
			c.Units[name] = ou
			continue
		}
		if ou.Path != "" {
			u.Path = ou.Path
		}
		if u.Containers == nil {
			u.Containers = make(map[string]*Container)
		}
		for cname, oct := range ou.Containers {
			ct := u.Containers[cname]
			if ct == nil {
				u.Containers[cname] = oct
				continue
			}
			if oct.Description != "" {
				ct.Description = oct.Description
			}
			if ct.Members == nil {
				ct.Members = make(map[string]*Member)
			}
			for mname, om := range oct.Members {
				ct.Members[mname] = om
			}
		}
	}
}

// IDs returns the identifiers of every member in c, sorted.
func (c *Catalog) IDs() []ID {
	var ids []ID
	for un, u := range c.Units {
		for cn, ct := range u.Containers {
			for mn := range ct.Members {
				ids = append(ids, ID{Unit: un, Container: cn, Member: mn})
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
