package layout

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(name string, size, align uint64) FieldSpec {
	return FieldSpec{Name: name, Size: size, Align: align}
}

func fieldAt(name string, offset, size, align uint64) Entry {
	return Entry{Kind: FieldEntry, Name: name, Offset: offset, Size: size, Align: align}
}

func paddingAt(offset, size uint64) Entry {
	return Entry{Kind: PaddingEntry, Offset: offset, Size: size}
}

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		spec    StructSpec
		entries []Entry
		size    uint64
		align   uint64
	}{
		{
			name: "padding_between_fields",
			spec: StructSpec{Name: "Foo", Fields: []FieldSpec{
				field("a", 1, 1),
				field("b", 4, 4),
			}},
			entries: []Entry{
				fieldAt("a", 0, 1, 1),
				paddingAt(1, 3),
				fieldAt("b", 4, 4, 4),
			},
			size:  8,
			align: 4,
		},
		{
			name: "over_aligned",
			spec: StructSpec{Name: "OverAligned", Align: 128, Fields: []FieldSpec{
				field("value", 1, 1),
			}},
			entries: []Entry{
				fieldAt("value", 0, 1, 1),
				paddingAt(1, 127),
			},
			size:  128,
			align: 128,
		},
		{
			name: "padding_in_middle",
			spec: StructSpec{Name: "Point", Fields: []FieldSpec{
				field("x", 4, 4),
				field("y", 1, 1),
				field("z", 4, 4),
			}},
			entries: []Entry{
				fieldAt("x", 0, 4, 4),
				fieldAt("y", 4, 1, 1),
				paddingAt(5, 3),
				fieldAt("z", 8, 4, 4),
			},
			size:  12,
			align: 4,
		},
		{
			name:  "empty",
			spec:  StructSpec{Name: "Empty"},
			size:  0,
			align: 1,
		},
		{
			name:    "empty_over_aligned",
			spec:    StructSpec{Name: "Empty", Align: 16},
			entries: []Entry{paddingAt(0, 16)},
			size:    16,
			align:   16,
		},
		{
			name: "tail_padding",
			spec: StructSpec{Name: "Tail", Fields: []FieldSpec{
				field("n", 8, 8),
				field("flag", 1, 1),
			}},
			entries: []Entry{
				fieldAt("n", 0, 8, 8),
				fieldAt("flag", 8, 1, 1),
				paddingAt(9, 7),
			},
			size:  16,
			align: 8,
		},
		{
			name: "declared_below_natural",
			spec: StructSpec{Name: "Under", Align: 2, Fields: []FieldSpec{
				field("n", 8, 8),
			}},
			entries: []Entry{fieldAt("n", 0, 8, 8)},
			size:    8,
			align:   8,
		},
		{
			name: "zero_size_field",
			spec: StructSpec{Name: "Marker", Fields: []FieldSpec{
				field("a", 1, 1),
				field("_", 0, 8),
				field("b", 1, 1),
			}},
			entries: []Entry{
				fieldAt("a", 0, 1, 1),
				paddingAt(1, 7),
				fieldAt("_", 8, 0, 8),
				fieldAt("b", 8, 1, 1),
				paddingAt(9, 7),
			},
			size:  16,
			align: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute(tt.spec)
			require.NoError(t, err)

			assert.Equal(t, tt.spec.Name, r.TypeName)
			assert.Equal(t, tt.entries, r.Entries)
			assert.Equal(t, tt.size, r.Size)
			assert.Equal(t, tt.align, r.Align)
		})
	}
}

func TestCompute_InvalidSpec(t *testing.T) {
	tests := []struct {
		name  string
		spec  StructSpec
		field string
	}{
		{
			name:  "alignment_not_power_of_two",
			spec:  StructSpec{Name: "Bad", Fields: []FieldSpec{field("x", 4, 3)}},
			field: "x",
		},
		{
			name:  "alignment_zero",
			spec:  StructSpec{Name: "Bad", Fields: []FieldSpec{field("a", 1, 1), field("x", 4, 0)}},
			field: "x",
		},
		{
			name: "declared_alignment_not_power_of_two",
			spec: StructSpec{Name: "Bad", Align: 48, Fields: []FieldSpec{field("a", 1, 1)}},
		},
		{
			name: "size_overflow",
			spec: StructSpec{Name: "Huge", Fields: []FieldSpec{
				field("a", math.MaxUint64-2, 1),
				field("b", 8, 1),
			}},
			field: "b",
		},
		{
			name: "tail_overflow",
			spec: StructSpec{Name: "Huge", Fields: []FieldSpec{
				field("a", math.MaxUint64-2, 1),
				field("b", 1, 4),
			}},
			field: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute(tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSpec))
			assert.False(t, errors.Is(err, ErrUnsupportedShape))
			assert.Empty(t, r.Entries, "no partial report")

			var specErr *SpecError
			require.True(t, errors.As(err, &specErr))
			assert.Equal(t, tt.spec.Name, specErr.Struct)
			assert.Equal(t, tt.field, specErr.Field)
		})
	}
}

// checkInvariants asserts that r tiles [0, r.Size) and respects alignment
// and declaration order.
func checkInvariants(t *testing.T, spec StructSpec, r Report) {
	t.Helper()

	var cursor uint64
	var sum uint64
	var fieldIdx int
	for i, e := range r.Entries {
		require.Equal(t, cursor, e.Offset, "entry %d not contiguous", i)
		cursor = e.End()
		sum += e.Size

		if e.Kind == FieldEntry {
			require.Less(t, fieldIdx, len(spec.Fields))
			want := spec.Fields[fieldIdx]
			assert.Equal(t, want.Name, e.Name, "field order")
			assert.Equal(t, want.Size, e.Size)
			assert.Zero(t, e.Offset%want.Align, "field %s misaligned", e.Name)
			fieldIdx++
		} else {
			assert.NotZero(t, e.Size, "empty padding entry")
		}
	}

	assert.Equal(t, len(spec.Fields), fieldIdx)
	assert.Equal(t, r.Size, cursor)
	assert.Equal(t, r.Size, sum)
	require.NotZero(t, r.Align)
	assert.Zero(t, r.Size%r.Align)
	assert.GreaterOrEqual(t, r.Align, spec.Align)
}

func randomSpec(rng *rand.Rand) StructSpec {
	spec := StructSpec{Name: "Random"}
	if rng.IntN(4) == 0 {
		spec.Align = 1 << rng.IntN(9)
	}
	n := rng.IntN(12)
	for i := 0; i < n; i++ {
		align := uint64(1) << rng.IntN(5)
		size := align * uint64(rng.IntN(4))
		if rng.IntN(3) == 0 {
			size = uint64(rng.IntN(40))
		}
		spec.Fields = append(spec.Fields, FieldSpec{
			Name:  string(rune('a' + i)),
			Size:  size,
			Align: align,
		})
	}
	return spec
}

func TestCompute_Invariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		spec := randomSpec(rng)
		r, err := Compute(spec)
		require.NoError(t, err)
		checkInvariants(t, spec, r)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 50; i++ {
		spec := randomSpec(rng)
		first, err := Compute(spec)
		require.NoError(t, err)
		second, err := Compute(spec)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

type mixed struct {
	A uint8
	B uint32
	C uint16
	D uint64
	E bool
	F [3]byte
	G string
	H *int
	I []int
	J complex64
}

type nested struct {
	Flag  bool
	Inner mixed
	Tail  int16
}

type embedded struct {
	mixed
	Extra uint8
}

type zeroMiddle struct {
	A uint8
	_ [0]uint64
	B uint8
}

func TestCompute_MatchesCompiler(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeFor[mixed](),
		reflect.TypeFor[nested](),
		reflect.TypeFor[embedded](),
		reflect.TypeFor[zeroMiddle](),
		reflect.TypeFor[struct{}](),
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			spec, err := SpecOf(typ)
			require.NoError(t, err)

			r, err := Compute(spec)
			require.NoError(t, err)
			checkInvariants(t, spec, r)

			assert.Equal(t, uint64(typ.Size()), r.Size)
			assert.Equal(t, uint64(typ.Align()), r.Align)

			fields := r.Fields()
			require.Len(t, fields, typ.NumField())
			for i, f := range fields {
				sf := typ.Field(i)
				assert.Equal(t, uint64(sf.Offset), f.Offset, "offset of %s", sf.Name)
				assert.Equal(t, sf.Type.String(), f.Type)
			}
		})
	}
}

func TestSpecOf(t *testing.T) {
	spec, err := SpecOf(reflect.TypeFor[embedded]())
	require.NoError(t, err)
	assert.Equal(t, "embedded", spec.Name)
	require.Len(t, spec.Fields, 2)
	assert.Equal(t, "mixed", spec.Fields[0].Name)
	assert.Equal(t, "layout.mixed", spec.Fields[0].Type)
	assert.Equal(t, "Extra", spec.Fields[1].Name)

	anon, err := SpecOf(reflect.TypeFor[struct{ X int32 }]())
	require.NoError(t, err)
	assert.Equal(t, "struct { X int32 }", anon.Name)
}

func TestSpecOf_Unsupported(t *testing.T) {
	for _, typ := range []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[*mixed](),
		reflect.TypeFor[[]mixed](),
		nil,
	} {
		_, err := SpecOf(typ)
		assert.ErrorIs(t, err, ErrUnsupportedShape)
	}
}

func TestOf(t *testing.T) {
	r, err := Of[struct {
		A uint8
		B uint32
	}]()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), r.Size)
	assert.Equal(t, uint64(3), r.PaddingBytes())
}

func TestPadTo(t *testing.T) {
	assert.Equal(t, uint64(0), PadTo(0, 8))
	assert.Equal(t, uint64(7), PadTo(1, 8))
	assert.Equal(t, uint64(0), PadTo(16, 8))
	assert.Equal(t, uint64(0), PadTo(5, 1))
	assert.Equal(t, uint64(24), AlignTo(17, 8))
}

func TestEntryKind_Text(t *testing.T) {
	for _, k := range []EntryKind{FieldEntry, PaddingEntry} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got EntryKind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	_, err := EntryKind(9).MarshalText()
	assert.Error(t, err)
	var k EntryKind
	assert.Error(t, k.UnmarshalText([]byte("union")))
}
