package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec reports a structure that cannot be laid out: a zero or
	// non-power-of-two alignment, or sizes that overflow.
	ErrInvalidSpec = errors.New("invalid spec")

	// ErrUnsupportedShape reports an input outside the supported shapes
	// (non-struct types, generic declarations, unresolvable field types).
	ErrUnsupportedShape = errors.New("unsupported shape")
)

// SpecError describes why a structure was rejected.
type SpecError struct {
	Struct string
	Field  string // empty when the problem is with the structure itself
	Reason string
	Err    error // ErrInvalidSpec or ErrUnsupportedShape
}

func (e *SpecError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: %s.%s: %s", e.Err, e.Struct, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Struct, e.Reason)
}

func (e *SpecError) Unwrap() error {
	return e.Err
}

func invalid(structName, field, format string, args ...any) error {
	return &SpecError{
		Struct: structName,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		Err:    ErrInvalidSpec,
	}
}

func unsupported(structName, field, format string, args ...any) error {
	return &SpecError{
		Struct: structName,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		Err:    ErrUnsupportedShape,
	}
}

// IsPowerOfTwo reports whether n is a nonzero power of two.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}
