// Package specfile loads hand-written structure descriptions.
//
// A spec file lists structures as explicit field sizes and alignments, for
// layouts that do not come from Go source (C headers, wire formats):
//
//	structs:
//	  - name: Foo
//	    fields:
//	      - {name: a, size: 1, align: 1}
//	      - {name: b, size: 4, align: 4, type: uint32_t}
//	  - name: OverAligned
//	    align: 128
//	    fields:
//	      - {name: value, size: 1, align: 1}
//
// JSON documents of the same shape are accepted, since JSON is valid YAML.
package specfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexhholmes/typelayout/internal/layout"
)

// File is the top-level document of a spec file
type File struct {
	Structs []Struct `yaml:"structs"`
}

// Struct is one structure in a spec file
type Struct struct {
	Name   string  `yaml:"name"`
	Align  uint64  `yaml:"align,omitempty"`
	Fields []Field `yaml:"fields"`
}

// Field is one field of a structure in a spec file
type Field struct {
	Name  string  `yaml:"name"`
	Type  string  `yaml:"type,omitempty"`
	Size  *uint64 `yaml:"size"`
	Align *uint64 `yaml:"align"`
}

// Load reads the spec file at path
func Load(path string) ([]layout.StructSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}

	specs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// Decode parses a spec document. Unknown keys, missing names, and fields
// without a size or alignment are errors; alignment values are validated
// later by layout.Compute.
func Decode(r io.Reader) ([]layout.StructSpec, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc File
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty spec file")
		}
		return nil, fmt.Errorf("decode spec file: %w", err)
	}

	if len(doc.Structs) == 0 {
		return nil, fmt.Errorf("spec file declares no structs")
	}

	specs := make([]layout.StructSpec, 0, len(doc.Structs))
	seen := make(map[string]bool)
	for i, s := range doc.Structs {
		spec, err := s.toSpec(i)
		if err != nil {
			return nil, err
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate struct %q", spec.Name)
		}
		seen[spec.Name] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

func (s Struct) toSpec(index int) (layout.StructSpec, error) {
	if s.Name == "" {
		return layout.StructSpec{}, fmt.Errorf("structs[%d]: missing name", index)
	}

	spec := layout.StructSpec{Name: s.Name, Align: s.Align}
	for j, f := range s.Fields {
		if f.Name == "" {
			return layout.StructSpec{}, fmt.Errorf("%s: fields[%d]: missing name", s.Name, j)
		}
		if f.Size == nil {
			return layout.StructSpec{}, fmt.Errorf("%s.%s: missing size", s.Name, f.Name)
		}
		if f.Align == nil {
			return layout.StructSpec{}, fmt.Errorf("%s.%s: missing align", s.Name, f.Name)
		}
		spec.Fields = append(spec.Fields, layout.FieldSpec{
			Name:  f.Name,
			Type:  f.Type,
			Size:  *f.Size,
			Align: *f.Align,
		})
	}
	return spec, nil
}
