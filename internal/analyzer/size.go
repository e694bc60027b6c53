package analyzer

import (
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"math/bits"
	"strconv"

	"go.uber.org/zap"

	"github.com/alexhholmes/typelayout/internal/layout"
	"github.com/alexhholmes/typelayout/internal/parser"
)

// Info is the size and alignment of a type
type Info struct {
	Size  uint64
	Align uint64

	// Inexact is set when gc lays the type out differently from the
	// sequential C rules: structs ending in a zero-size field, declared
	// over-alignment, or a field of such a type.
	Inexact bool
}

// errUnknownType is wrapped for type expressions the registry cannot size
var errUnknownType = errors.New("unknown type")

// TypeRegistry tracks struct sizes, type aliases, and constants for layout
// analysis on one architecture
type TypeRegistry struct {
	arch      Arch
	types     map[string]Info               // type name → layout
	aliases   map[string]string             // alias → underlying type
	consts    map[string]uint64             // constant → value, for array lengths
	pending   map[string]*parser.TypeLayout // same-file structs, sized on first use
	resolving map[string]bool               // cycle detection
}

func NewTypeRegistry(arch Arch) *TypeRegistry {
	r := &TypeRegistry{
		arch:      arch,
		types:     make(map[string]Info),
		aliases:   make(map[string]string),
		consts:    make(map[string]uint64),
		pending:   make(map[string]*parser.TypeLayout),
		resolving: make(map[string]bool),
	}
	r.registerWellKnown()
	return r
}

// Arch returns the registry's target architecture
func (r *TypeRegistry) Arch() Arch {
	return r.arch
}

func (r *TypeRegistry) registerWellKnown() {
	w := r.arch.WordSize
	a64 := r.arch.align64()

	r.Register("unsafe.Pointer", Info{Size: w, Align: w})
	r.Register("structs.HostLayout", Info{Size: 0, Align: 1})

	// sync/atomic typed values; 64-bit ones are 8-aligned on every arch
	r.Register("atomic.Bool", Info{Size: 4, Align: 4})
	r.Register("atomic.Int32", Info{Size: 4, Align: 4})
	r.Register("atomic.Uint32", Info{Size: 4, Align: 4})
	r.Register("atomic.Int64", Info{Size: 8, Align: 8})
	r.Register("atomic.Uint64", Info{Size: 8, Align: 8})
	r.Register("atomic.Uintptr", Info{Size: w, Align: w})
	r.Register("atomic.Value", Info{Size: 2 * w, Align: w})

	r.Register("sync.Mutex", Info{Size: 8, Align: 4})
	r.Register("sync.RWMutex", Info{Size: 24, Align: 4})
	r.Register("sync.WaitGroup", Info{Size: 16, Align: 8})

	// wall uint64, ext int64, loc *Location
	r.Register("time.Time", Info{Size: layout.AlignTo(16+w, a64), Align: a64})
	r.RegisterAlias("time.Duration", "int64")
}

// Register adds a named type with its layout
func (r *TypeRegistry) Register(name string, info Info) {
	r.types[name] = info
}

// RegisterAlias adds a type alias mapping (e.g., type PageID uint64)
func (r *TypeRegistry) RegisterAlias(alias, underlying string) {
	r.aliases[alias] = underlying
}

// RegisterConst adds an integer constant usable as an array length
func (r *TypeRegistry) RegisterConst(name string, value uint64) {
	r.consts[name] = value
}

// RegisterFile makes the aliases, constants, and struct types declared in f
// resolvable. Structs are sized lazily so declaration order does not matter.
func (r *TypeRegistry) RegisterFile(f *parser.File) {
	for alias, underlying := range f.Aliases {
		r.RegisterAlias(alias, underlying)
	}
	for name, value := range f.Consts {
		r.RegisterConst(name, value)
	}
	for _, t := range f.Types {
		r.pending[t.Name] = t
	}
}

// Lookup returns the layout of a registered type
func (r *TypeRegistry) Lookup(name string) (Info, bool) {
	info, ok := r.types[name]
	return info, ok
}

// ResolveType resolves type aliases to their underlying types
// Returns the original type if not an alias
func (r *TypeRegistry) ResolveType(goType string) string {
	seen := make(map[string]bool)
	for {
		underlying, ok := r.aliases[goType]
		if !ok || seen[goType] {
			return goType
		}
		seen[goType] = true
		goType = underlying
	}
}

// SizeOf returns the size and alignment of a Go type expression, such as
// "uint32", "[16]byte", "*Node", "map[string]int" or "struct{X, Y int16}"
func (r *TypeRegistry) SizeOf(goType string) (Info, error) {
	expr, err := goparser.ParseExpr(goType)
	if err != nil {
		return Info{}, fmt.Errorf("invalid type expression %q: %w", goType, err)
	}
	return r.sizeOfExpr(expr)
}

func (r *TypeRegistry) sizeOfExpr(expr ast.Expr) (Info, error) {
	w := r.arch.WordSize

	switch t := expr.(type) {
	case *ast.ParenExpr:
		return r.sizeOfExpr(t.X)

	case *ast.Ident:
		return r.sizeOfName(t.Name)

	case *ast.SelectorExpr:
		return r.sizeOfName(types.ExprString(t))

	case *ast.StarExpr, *ast.MapType, *ast.ChanType, *ast.FuncType:
		return Info{Size: w, Align: w}, nil

	case *ast.InterfaceType:
		return Info{Size: 2 * w, Align: w}, nil

	case *ast.ArrayType:
		if t.Len == nil {
			// Slice: pointer, length, capacity
			return Info{Size: 3 * w, Align: w}, nil
		}
		return r.sizeOfArray(t)

	case *ast.StructType:
		return r.sizeOfStruct(types.ExprString(t), structFields(t), 0)

	case *ast.IndexExpr:
		// atomic.Pointer[T] is a single pointer regardless of T
		if types.ExprString(t.X) == "atomic.Pointer" {
			return Info{Size: w, Align: w}, nil
		}
		return Info{}, fmt.Errorf("%w: generic instantiation %s", layout.ErrUnsupportedShape, types.ExprString(t))

	case *ast.IndexListExpr:
		return Info{}, fmt.Errorf("%w: generic instantiation %s", layout.ErrUnsupportedShape, types.ExprString(t))

	default:
		return Info{}, fmt.Errorf("%w: %s", errUnknownType, types.ExprString(expr))
	}
}

func (r *TypeRegistry) sizeOfName(name string) (Info, error) {
	if info, ok := r.basic(name); ok {
		return info, nil
	}

	if underlying, ok := r.aliases[name]; ok {
		if r.resolving[name] {
			return Info{}, fmt.Errorf("invalid recursive type %s", name)
		}
		r.resolving[name] = true
		defer delete(r.resolving, name)
		return r.SizeOf(underlying)
	}

	if info, ok := r.Lookup(name); ok {
		return info, nil
	}

	if t, ok := r.pending[name]; ok {
		return r.sizeOfPending(t)
	}

	return Info{}, fmt.Errorf("%w: %s (not registered; add a layout:\"size=N,align=M\" tag)", errUnknownType, name)
}

func (r *TypeRegistry) basic(name string) (Info, bool) {
	w := r.arch.WordSize
	a64 := r.arch.align64()

	switch name {
	case "uint8", "int8", "byte", "bool":
		return Info{Size: 1, Align: 1}, true
	case "uint16", "int16":
		return Info{Size: 2, Align: 2}, true
	case "uint32", "int32", "rune", "float32":
		return Info{Size: 4, Align: 4}, true
	case "uint64", "int64", "float64":
		return Info{Size: 8, Align: a64}, true
	case "complex64":
		return Info{Size: 8, Align: 4}, true
	case "complex128":
		return Info{Size: 16, Align: a64}, true
	case "int", "uint", "uintptr":
		return Info{Size: w, Align: w}, true
	case "string":
		return Info{Size: 2 * w, Align: w}, true
	case "any", "error":
		return Info{Size: 2 * w, Align: w}, true
	}
	return Info{}, false
}

func (r *TypeRegistry) sizeOfArray(t *ast.ArrayType) (Info, error) {
	n, err := r.arrayLen(t.Len)
	if err != nil {
		return Info{}, err
	}

	elem, err := r.sizeOfExpr(t.Elt)
	if err != nil {
		return Info{}, fmt.Errorf("array element: %w", err)
	}

	hi, size := bits.Mul64(n, elem.Size)
	if hi != 0 {
		return Info{}, fmt.Errorf("%w: array %s too large", layout.ErrInvalidSpec, types.ExprString(t))
	}

	return Info{Size: size, Align: elem.Align, Inexact: elem.Inexact}, nil
}

func (r *TypeRegistry) arrayLen(expr ast.Expr) (uint64, error) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind == token.INT {
			if n, err := strconv.ParseUint(e.Value, 0, 64); err == nil {
				return n, nil
			}
		}
	case *ast.Ident:
		if n, ok := r.consts[e.Name]; ok {
			return n, nil
		}
	case *ast.ParenExpr:
		return r.arrayLen(e.X)
	case *ast.BinaryExpr:
		x, err := r.arrayLen(e.X)
		if err != nil {
			return 0, err
		}
		y, err := r.arrayLen(e.Y)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case token.ADD:
			return x + y, nil
		case token.SUB:
			if x >= y {
				return x - y, nil
			}
		case token.MUL:
			return x * y, nil
		case token.SHL:
			if y < 64 {
				return x << y, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: array length %s is not a known constant", layout.ErrUnsupportedShape, types.ExprString(expr))
}

func (r *TypeRegistry) sizeOfPending(t *parser.TypeLayout) (Info, error) {
	if r.resolving[t.Name] {
		return Info{}, fmt.Errorf("invalid recursive type %s", t.Name)
	}
	if t.Err != nil {
		return Info{}, t.Err
	}

	r.resolving[t.Name] = true
	defer delete(r.resolving, t.Name)

	var align uint64
	if t.Anno != nil {
		align = t.Anno.Align
	}

	info, err := r.sizeOfStruct(t.Name, t.Fields, align)
	if err != nil {
		return Info{}, err
	}

	r.Register(t.Name, info)
	delete(r.pending, t.Name)
	return info, nil
}

// sizeOfStruct lays out fields sequentially and reports the struct's size
func (r *TypeRegistry) sizeOfStruct(name string, fields []parser.Field, declaredAlign uint64) (Info, error) {
	spec, inexact, err := r.structSpec(name, fields, declaredAlign)
	if err != nil {
		return Info{}, err
	}

	report, err := layout.Compute(spec)
	if err != nil {
		return Info{}, err
	}

	info := Info{Size: report.Size, Align: report.Align, Inexact: inexact}
	if goPadsTrailingZero(spec) || overAligned(spec) {
		info.Inexact = true
	}

	Logger().Debug("sized struct",
		zap.String("type", name),
		zap.Uint64("size", info.Size),
		zap.Uint64("align", info.Align),
		zap.Bool("inexact", info.Inexact))

	return info, nil
}

// structSpec resolves every field and builds the struct's spec. Field
// errors are joined so one pass reports all of them.
func (r *TypeRegistry) structSpec(name string, fields []parser.Field, declaredAlign uint64) (layout.StructSpec, bool, error) {
	spec := layout.StructSpec{Name: name, Align: declaredAlign}
	inexact := false

	var errs []error
	for _, f := range fields {
		info, err := r.fieldInfo(f)
		if err != nil {
			errs = append(errs, &layout.SpecError{
				Struct: name,
				Field:  f.Name,
				Reason: err.Error(),
				Err:    classify(err),
			})
			continue
		}

		inexact = inexact || info.Inexact
		spec.Fields = append(spec.Fields, layout.FieldSpec{
			Name:  f.Name,
			Type:  f.GoType,
			Size:  info.Size,
			Align: info.Align,
		})
	}

	if len(errs) > 0 {
		return layout.StructSpec{}, false, errors.Join(errs...)
	}
	return spec, inexact, nil
}

// fieldInfo resolves a field's layout, applying tag overrides
func (r *TypeRegistry) fieldInfo(f parser.Field) (Info, error) {
	if f.Layout != nil && f.Layout.Complete() {
		Logger().Debug("field layout from tag",
			zap.String("field", f.Name),
			zap.String("go_type", f.GoType))
		return Info{Size: f.Layout.Size, Align: f.Layout.Align}, nil
	}

	info, err := r.SizeOf(f.GoType)
	if err != nil {
		return Info{}, err
	}

	if f.Layout != nil {
		if f.Layout.HasSize {
			info.Size = f.Layout.Size
		}
		if f.Layout.HasAlign {
			info.Align = f.Layout.Align
		}
	}
	return info, nil
}

// classify maps a resolution error onto the layout error taxonomy
func classify(err error) error {
	if errors.Is(err, layout.ErrInvalidSpec) {
		return layout.ErrInvalidSpec
	}
	return layout.ErrUnsupportedShape
}

// structFields converts an anonymous struct type into parser fields
func structFields(t *ast.StructType) []parser.Field {
	var fields []parser.Field
	for _, field := range t.Fields.List {
		goType := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			fields = append(fields, parser.Field{Name: parser.EmbeddedName(field.Type), GoType: goType, Embedded: true})
			continue
		}
		for _, name := range field.Names {
			fields = append(fields, parser.Field{Name: name.Name, GoType: goType})
		}
	}
	return fields
}

// goPadsTrailingZero reports whether gc would add a byte after a trailing
// zero-size field, so a pointer to it cannot point past the struct
func goPadsTrailingZero(spec layout.StructSpec) bool {
	n := len(spec.Fields)
	if n == 0 || spec.Fields[n-1].Size != 0 {
		return false
	}
	for _, f := range spec.Fields {
		if f.Size != 0 {
			return true
		}
	}
	return false
}

// overAligned reports whether the declared alignment exceeds what the
// fields require; gc cannot over-align structs
func overAligned(spec layout.StructSpec) bool {
	if spec.Align == 0 {
		return false
	}
	for _, f := range spec.Fields {
		if f.Align >= spec.Align {
			return false
		}
	}
	return spec.Align > 1
}
