package layout

import (
	"reflect"
)

// SpecOf builds a StructSpec from a Go struct type using the sizes and
// alignments of the running program. Embedded fields are named after their
// type, as Go names them.
func SpecOf(t reflect.Type) (StructSpec, error) {
	if t == nil {
		return StructSpec{}, unsupported("<nil>", "", "nil type")
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	if t.Kind() != reflect.Struct {
		return StructSpec{}, unsupported(name, "", "%s is not a struct", t.Kind())
	}

	spec := StructSpec{Name: name}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		spec.Fields = append(spec.Fields, FieldSpec{
			Name:  f.Name,
			Type:  f.Type.String(),
			Size:  uint64(f.Type.Size()),
			Align: uint64(f.Type.Align()),
		})
	}
	return spec, nil
}

// Of computes the layout of T.
func Of[T any]() (Report, error) {
	spec, err := SpecOf(reflect.TypeFor[T]())
	if err != nil {
		return Report{}, err
	}
	return Compute(spec)
}
