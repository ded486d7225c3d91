// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchsave

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
)

// ErrMalformed is matched by every error reporting that a document
// does not follow the save format.
var ErrMalformed = errors.New("malformed benchmark save")

// A MalformedError reports a document that could not be loaded
// because it is not valid JSON or does not match a schema.
type MalformedError struct {
	File   string // file name, if known
	Schema string // schema version the document was checked against
	Err    error
}

func (e *MalformedError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	if e.Schema == "" {
		return fmt.Sprintf("%s: %v: %v", file, ErrMalformed, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s schema): %v", file, ErrMalformed, e.Schema, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// Load parses a save, selecting the schema from the document itself:
// documents with a non-null machine_info member are loaded with
// Extended and all others with Minimal.
func Load(data []byte) (*Save, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	s := Minimal
	if obj, ok := doc.(map[string]any); ok {
		if m, ok := obj["machine_info"]; ok && m != nil {
			s = Extended
		}
	}
	return s.load(doc, data)
}

// Load parses a save that must follow schema s.
func (s *Schema) Load(data []byte) (*Save, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return s.load(doc, data)
}

func (s *Schema) load(doc any, data []byte) (*Save, error) {
	if err := s.validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			// The top-level message is just "jsonschema validation
			// failed"; the leaves say which field is wrong.
			err = leafError(verr)
		}
		return nil, &MalformedError{Schema: s.name, Err: err}
	}
	save := new(Save)
	if err := json.Unmarshal(data, save); err != nil {
		return nil, &MalformedError{Schema: s.name, Err: err}
	}
	if s == Minimal {
		save.MachineInfo = nil
	}
	return save, nil
}

func decode(data []byte) (any, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedError{Err: err}
	}
	return doc, nil
}

// leafError returns the first innermost cause of a validation error.
func leafError(err *jsonschema.ValidationError) error {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

// LoadFile reads and loads the save in the named file of fs.
// I/O errors are returned as they are; format errors are
// *MalformedError with File set.
func LoadFile(fs afero.Fs, name string) (*Save, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, err
	}
	save, err := Load(data)
	if err != nil {
		var merr *MalformedError
		if errors.As(err, &merr) {
			merr.File = name
		}
		return nil, err
	}
	return save, nil
}
