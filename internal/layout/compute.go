package layout

import (
	"math/bits"
)

// Compute lays out spec's fields sequentially and returns the resulting
// report. No partial report is returned on error.
func Compute(spec StructSpec) (Report, error) {
	if err := Validate(spec); err != nil {
		return Report{}, err
	}

	r := Report{TypeName: spec.Name}

	cursor := uint64(0)
	maxAlign := uint64(1)

	for _, f := range spec.Fields {
		pad := PadTo(cursor, f.Align)
		if pad > 0 {
			r.Entries = append(r.Entries, Entry{Kind: PaddingEntry, Offset: cursor, Size: pad})
		}

		start, carry := bits.Add64(cursor, pad, 0)
		end, carry2 := bits.Add64(start, f.Size, 0)
		if carry != 0 || carry2 != 0 {
			return Report{}, invalid(spec.Name, f.Name, "layout exceeds addressable size")
		}

		r.Entries = append(r.Entries, Entry{
			Kind:   FieldEntry,
			Name:   f.Name,
			Type:   f.Type,
			Offset: start,
			Size:   f.Size,
			Align:  f.Align,
		})

		cursor = end
		maxAlign = max(maxAlign, f.Align)
	}

	align := max(spec.Align, maxAlign)

	// An over-aligned structure without fields still occupies one alignment unit.
	if len(spec.Fields) == 0 && align > 1 {
		r.Entries = append(r.Entries, Entry{Kind: PaddingEntry, Offset: 0, Size: align})
		cursor = align
	}

	if tail := PadTo(cursor, align); tail > 0 {
		if _, carry := bits.Add64(cursor, tail, 0); carry != 0 {
			return Report{}, invalid(spec.Name, "", "layout exceeds addressable size")
		}
		r.Entries = append(r.Entries, Entry{Kind: PaddingEntry, Offset: cursor, Size: tail})
		cursor += tail
	}

	r.Size = cursor
	r.Align = align
	return r, nil
}

// Validate checks that every alignment in spec is a power of two.
func Validate(spec StructSpec) error {
	if spec.Align != 0 && !IsPowerOfTwo(spec.Align) {
		return invalid(spec.Name, "", "declared alignment %d is not a power of two", spec.Align)
	}
	for _, f := range spec.Fields {
		if f.Align == 0 {
			return invalid(spec.Name, f.Name, "alignment is zero")
		}
		if !IsPowerOfTwo(f.Align) {
			return invalid(spec.Name, f.Name, "alignment %d is not a power of two", f.Align)
		}
	}
	return nil
}

// PadTo returns the number of bytes needed to advance offset to a multiple
// of align. align must be a power of two.
func PadTo(offset, align uint64) uint64 {
	return (align - offset%align) % align
}

// AlignTo rounds offset up to a multiple of align. align must be a power of two.
func AlignTo(offset, align uint64) uint64 {
	return offset + PadTo(offset, align)
}
