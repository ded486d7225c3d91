// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsave

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const benchmarksSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "fullname", "stats"],
		"properties": {
			"name": {"type": "string"},
			"fullname": {"type": "string"},
			"params": {"type": ["object", "null"]},
			"stats": {
				"type": "object",
				"required": ["min", "max", "mean", "stddev"],
				"properties": {
					"min": {"type": "number"},
					"max": {"type": "number"},
					"mean": {"type": "number"},
					"stddev": {"type": "number"}
				}
			}
		}
	}
}`

const machineInfoSchema = `{
	"type": "object",
	"required": ["python_implementation", "python_version", "system", "release"],
	"properties": {
		"python_implementation": {"type": "string"},
		"python_version": {"type": "string"},
		"system": {"type": "string"},
		"release": {"type": "string"}
	}
}`

const minimalSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["benchmarks"],
	"properties": {
		"benchmarks": ` + benchmarksSchema + `
	}
}`

const extendedSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["benchmarks", "machine_info"],
	"properties": {
		"benchmarks": ` + benchmarksSchema + `,
		"machine_info": ` + machineInfoSchema + `
	}
}`

const schemaBase = "https://golang.org/x/benchreport/schema/"

// A Schema is one version of the save format. Each Schema validates
// documents against exactly that version.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

var (
	// Minimal is the schema of saves that carry only benchmarks.
	Minimal = mustCompile("minimal", minimalSchema)

	// Extended is the schema of saves that also describe the
	// machine the benchmarks ran on.
	Extended = mustCompile("extended", extendedSchema)
)

func mustCompile(name, src string) *Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("benchsave: parsing %s schema: %v", name, err))
	}
	url := schemaBase + name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("benchsave: adding %s schema: %v", name, err))
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("benchsave: compiling %s schema: %v", name, err))
	}
	return &Schema{name: name, schema: s}
}

// Name returns the schema version name, "minimal" or "extended".
func (s *Schema) Name() string {
	return s.name
}

// validate checks the decoded JSON document v against s.
func (s *Schema) validate(v any) error {
	return s.schema.Validate(v)
}
