package layout

import (
	"fmt"
)

// FieldSpec describes one field by its size and alignment in bytes.
type FieldSpec struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"` // display only
	Size  uint64 `json:"size" yaml:"size"`
	Align uint64 `json:"align" yaml:"align"`
}

// StructSpec is the ordered field list of a structure.
type StructSpec struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`
	Align  uint64      `json:"align,omitempty" yaml:"align,omitempty"` // declared alignment, 0 if none
}

// EntryKind distinguishes fields from padding in a report.
type EntryKind int

const (
	FieldEntry   EntryKind = iota // A declared field
	PaddingEntry                  // Bytes inserted for alignment
)

// PaddingLabel is the name shown for padding rows.
const PaddingLabel = "[padding]"

func (k EntryKind) String() string {
	switch k {
	case FieldEntry:
		return "field"
	case PaddingEntry:
		return "padding"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as "field" or "padding".
func (k EntryKind) MarshalText() ([]byte, error) {
	switch k {
	case FieldEntry, PaddingEntry:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("invalid entry kind: %d", int(k))
}

// UnmarshalText decodes "field" or "padding".
func (k *EntryKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "field":
		*k = FieldEntry
	case "padding":
		*k = PaddingEntry
	default:
		return fmt.Errorf("invalid entry kind: %q", text)
	}
	return nil
}

// Entry is a byte range [Offset, Offset+Size) of a structure.
type Entry struct {
	Kind   EntryKind `json:"kind" yaml:"kind"`
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	Type   string    `json:"type,omitempty" yaml:"type,omitempty"`
	Offset uint64    `json:"offset" yaml:"offset"`
	Size   uint64    `json:"size" yaml:"size"`
	Align  uint64    `json:"align,omitempty" yaml:"align,omitempty"` // 0 for padding
}

// Label returns the field name, or PaddingLabel for padding.
func (e Entry) Label() string {
	if e.Kind == PaddingEntry {
		return PaddingLabel
	}
	return e.Name
}

// End returns the offset one past the entry's last byte.
func (e Entry) End() uint64 {
	return e.Offset + e.Size
}

// Report is the computed layout of one structure.
type Report struct {
	TypeName string  `json:"type_name" yaml:"type_name"`
	Size     uint64  `json:"size" yaml:"size"`
	Align    uint64  `json:"align" yaml:"align"`
	Entries  []Entry `json:"entries" yaml:"entries"`
}

// Fields returns only the field entries, in declaration order.
func (r Report) Fields() []Entry {
	var fields []Entry
	for _, e := range r.Entries {
		if e.Kind == FieldEntry {
			fields = append(fields, e)
		}
	}
	return fields
}

// PaddingBytes returns the total number of padding bytes.
func (r Report) PaddingBytes() uint64 {
	var n uint64
	for _, e := range r.Entries {
		if e.Kind == PaddingEntry {
			n += e.Size
		}
	}
	return n
}

// String renders the report with Format.
func (r Report) String() string {
	return Format(r)
}
