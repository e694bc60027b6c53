package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"github.com/alexhholmes/typelayout/internal/layout"
)

// File is the layout-relevant content of one Go source file
type File struct {
	Path    string
	Package string
	Types   []*TypeLayout     // Every struct type, in declaration order
	Aliases map[string]string // Named non-struct types → underlying type expression
	Consts  map[string]uint64 // Integer constants usable as array lengths
}

// TypeLayout represents a parsed struct declaration
type TypeLayout struct {
	Name   string
	Pos    token.Position
	Anno   *TypeAnnotation // nil when the type has no @layout annotation
	Fields []Field
	Err    error // Malformed annotation/tag or unsupported declaration
}

// Annotated reports whether the type carries a @layout annotation
func (t *TypeLayout) Annotated() bool {
	return t.Anno != nil
}

// ReportName is the name used in the layout report
func (t *TypeLayout) ReportName() string {
	if t.Anno != nil && t.Anno.Name != "" {
		return t.Anno.Name
	}
	return t.Name
}

// Field represents a struct field
type Field struct {
	Name     string
	GoType   string
	Embedded bool
	Layout   *FieldLayout // nil when the field has no layout tag
}

// Annotated returns the types with @layout annotations
func (f *File) Annotated() []*TypeLayout {
	var out []*TypeLayout
	for _, t := range f.Types {
		if t.Annotated() {
			out = append(out, t)
		}
	}
	return out
}

// Lookup returns the struct type with the given Go name
func (f *File) Lookup(name string) (*TypeLayout, bool) {
	for _, t := range f.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// ParseFile parses a Go source file and extracts its struct types
func ParseFile(filename string) (*File, error) {
	return ParseSource(filename, nil)
}

// ParseSource parses Go source from src (or filename when src is nil), as
// go/parser.ParseFile does.
func ParseSource(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	f := &File{
		Path:    filename,
		Package: file.Name.Name,
		Aliases: make(map[string]string),
		Consts:  make(map[string]uint64),
	}
	f.extractDecls(fset, file)
	return f, nil
}

func (f *File) extractDecls(fset *token.FileSet, file *ast.File) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}

		switch genDecl.Tok {
		case token.CONST:
			f.extractConsts(genDecl)
		case token.TYPE:
			for _, spec := range genDecl.Specs {
				f.extractType(fset, genDecl, spec.(*ast.TypeSpec))
			}
		}
	}
}

func (f *File) extractType(fset *token.FileSet, genDecl *ast.GenDecl, typeSpec *ast.TypeSpec) {
	structType, ok := typeSpec.Type.(*ast.StructType)
	if !ok {
		if typeSpec.TypeParams == nil {
			f.Aliases[typeSpec.Name.Name] = typeToString(typeSpec.Type)
		}
		return
	}

	t := &TypeLayout{
		Name: typeSpec.Name.Name,
		Pos:  fset.Position(typeSpec.Pos()),
	}
	f.Types = append(f.Types, t)

	// Doc comment on the TypeSpec, or on the GenDecl for ungrouped types
	doc := typeSpec.Doc
	if doc == nil && !genDecl.Lparen.IsValid() {
		doc = genDecl.Doc
	}
	anno, found, err := extractAnnotation(doc)
	if found {
		t.Anno = anno
		if anno == nil {
			t.Anno = &TypeAnnotation{}
		}
	}
	if err != nil {
		t.Err = fmt.Errorf("%s: @layout: %w", t.Name, err)
		return
	}

	if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
		t.Err = &layout.SpecError{
			Struct: t.Name,
			Reason: "generic struct types have no single layout",
			Err:    layout.ErrUnsupportedShape,
		}
		return
	}

	fields, err := extractFields(structType)
	if err != nil {
		t.Err = fmt.Errorf("%s.%w", t.Name, err)
	}
	t.Fields = fields
}

func extractAnnotation(doc *ast.CommentGroup) (*TypeAnnotation, bool, error) {
	if doc == nil {
		return nil, false, nil
	}

	// Extract comment text lines
	var lines []string
	for _, comment := range doc.List {
		for _, line := range strings.Split(comment.Text, "\n") {
			lines = append(lines, CleanComment(line))
		}
	}

	return FindAnnotation(lines)
}

func extractFields(structType *ast.StructType) ([]Field, error) {
	var fields []Field

	for _, field := range structType.Fields.List {
		goType := typeToString(field.Type)

		var fieldLayout *FieldLayout
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				raw = strings.Trim(field.Tag.Value, "`")
			}
			if layoutTag, ok := reflect.StructTag(raw).Lookup("layout"); ok {
				fl, err := ParseTag(layoutTag)
				if err != nil {
					return fields, fmt.Errorf("%s: %w", fieldName(field), err)
				}
				fieldLayout = fl
			}
		}

		// Embedded field: named after its type
		if len(field.Names) == 0 {
			fields = append(fields, Field{
				Name:     EmbeddedName(field.Type),
				GoType:   goType,
				Embedded: true,
				Layout:   fieldLayout,
			})
			continue
		}

		// "a, b uint8" declares one field per name
		for _, name := range field.Names {
			fields = append(fields, Field{
				Name:   name.Name,
				GoType: goType,
				Layout: fieldLayout,
			})
		}
	}

	return fields, nil
}

func fieldName(field *ast.Field) string {
	if len(field.Names) == 0 {
		return EmbeddedName(field.Type)
	}
	return field.Names[0].Name
}

// EmbeddedName returns the field name Go gives an embedded type
func EmbeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return EmbeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return EmbeddedName(t.X)
	case *ast.IndexListExpr:
		return EmbeddedName(t.X)
	case *ast.ParenExpr:
		return EmbeddedName(t.X)
	default:
		return "?"
	}
}

// typeToString converts AST type expression to its canonical source form,
// e.g. "[16]byte", "map[string]int", "struct{A uint8; B uint32}"
func typeToString(expr ast.Expr) string {
	return types.ExprString(expr)
}

func (f *File) extractConsts(genDecl *ast.GenDecl) {
	for _, spec := range genDecl.Specs {
		valueSpec := spec.(*ast.ValueSpec)
		for i, name := range valueSpec.Names {
			if i >= len(valueSpec.Values) {
				break
			}
			if v, ok := f.evalConst(valueSpec.Values[i]); ok {
				f.Consts[name.Name] = v
			}
		}
	}
}

// evalConst evaluates integer literals, previously declared constants, and
// their sums, differences, and products. Anything else is ignored.
func (f *File) evalConst(expr ast.Expr) (uint64, bool) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind != token.INT {
			return 0, false
		}
		v, err := strconv.ParseUint(strings.ReplaceAll(e.Value, "_", ""), 0, 64)
		return v, err == nil
	case *ast.Ident:
		v, ok := f.Consts[e.Name]
		return v, ok
	case *ast.ParenExpr:
		return f.evalConst(e.X)
	case *ast.BinaryExpr:
		x, ok := f.evalConst(e.X)
		if !ok {
			return 0, false
		}
		y, ok := f.evalConst(e.Y)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case token.ADD:
			return x + y, true
		case token.SUB:
			return x - y, x >= y
		case token.MUL:
			return x * y, true
		case token.SHL:
			return x << y, y < 64
		}
	}
	return 0, false
}
