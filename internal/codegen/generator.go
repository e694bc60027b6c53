package codegen

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alexhholmes/typelayout/internal/analyzer"
	"github.com/alexhholmes/typelayout/internal/layout"
)

// DefaultMethod is the name of the generated report method
const DefaultMethod = "LayoutReport"

// Generator generates layout report methods and compile-time layout
// assertions for analyzed types
type Generator struct {
	pkg     string
	arch    analyzer.Arch
	layouts []*analyzer.AnalyzedLayout
	method  string
	logger  *zap.Logger
}

// NewGenerator creates a new code generator
func NewGenerator(pkg string, arch analyzer.Arch, layouts []*analyzer.AnalyzedLayout, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		pkg:     pkg,
		arch:    arch,
		layouts: layouts,
		method:  DefaultMethod,
		logger:  logger,
	}
}

// SetMethod changes the name of the generated report method
func (g *Generator) SetMethod(name string) {
	if name != "" {
		g.method = name
	}
}

// Generate returns the complete, gofmt-formatted source file
func (g *Generator) Generate() ([]byte, error) {
	var body strings.Builder
	needsUnsafe := false

	for _, a := range g.layouts {
		body.WriteString("\n")
		body.WriteString(g.GenerateReport(a))

		asserts := g.GenerateAssertions(a)
		if asserts != "" {
			body.WriteString("\n")
			body.WriteString(asserts)
			needsUnsafe = true
		}
	}

	var out strings.Builder
	out.WriteString("// Code generated by typelayout. DO NOT EDIT.\n\n")
	out.WriteString(g.buildConstraint())
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("package %s\n", g.pkg))
	if needsUnsafe {
		out.WriteString("\nimport \"unsafe\"\n")
	}
	out.WriteString(body.String())

	src, err := format.Source([]byte(out.String()))
	if err != nil {
		return []byte(out.String()), fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

// buildConstraint restricts the file to architectures with the same layout
func (g *Generator) buildConstraint() string {
	return fmt.Sprintf("//go:build %s\n", strings.Join(g.arch.Family(), " || "))
}

// GenerateReport generates the method returning the formatted report
func (g *Generator) GenerateReport(a *analyzer.AnalyzedLayout) string {
	var code strings.Builder

	lines := layout.Tabulate(a.Report).Lines()

	// Doc comment showing the table
	code.WriteString(fmt.Sprintf("// %s returns the memory layout of %s:\n", g.method, a.TypeName))
	code.WriteString("//\n")
	for _, line := range lines {
		code.WriteString(fmt.Sprintf("//\t%s\n", line))
	}

	code.WriteString(fmt.Sprintf("func (%s) %s() string {\n", a.TypeName, g.method))
	for i, line := range lines {
		quoted := strconv.Quote(line + "\n")
		switch {
		case i == 0 && len(lines) == 1:
			code.WriteString(fmt.Sprintf("\treturn %s\n", quoted))
		case i == 0:
			code.WriteString(fmt.Sprintf("\treturn %s +\n", quoted))
		case i == len(lines)-1:
			code.WriteString(fmt.Sprintf("\t\t%s\n", quoted))
		default:
			code.WriteString(fmt.Sprintf("\t\t%s +\n", quoted))
		}
	}
	code.WriteString("}\n")

	return code.String()
}

// GenerateAssertions generates a function that fails to compile when gc
// lays the type out differently from the report. It returns "" when no
// check applies.
func (g *Generator) GenerateAssertions(a *analyzer.AnalyzedLayout) string {
	var checks []string

	if a.OffsetsExact() {
		for _, e := range a.Report.Fields() {
			if e.Name == "_" {
				continue // Blank fields cannot be selected
			}
			checks = append(checks, fmt.Sprintf("\t_ = x[unsafe.Offsetof(v.%s)-%d]\n", e.Name, e.Offset))
		}
	} else {
		g.logger.Warn("skipping offset assertions: a field type has a different gc layout",
			zap.String("type", a.TypeName))
	}

	sizeNote := ""
	if a.SizeExact() {
		checks = append(checks,
			fmt.Sprintf("\t_ = x[unsafe.Sizeof(v)-%d]\n", a.Report.Size),
			fmt.Sprintf("\t_ = x[unsafe.Alignof(v)-%d]\n", a.Report.Align))
	} else {
		switch {
		case a.OverAligned:
			sizeNote = "\t// Size and alignment are not checked: gc does not over-align structs.\n"
		case a.TrailingZero:
			sizeNote = "\t// Size is not checked: gc pads structs that end in a zero-size field.\n"
		}
		g.logger.Info("skipping size assertions",
			zap.String("type", a.TypeName),
			zap.Bool("over_aligned", a.OverAligned),
			zap.Bool("trailing_zero", a.TrailingZero))
	}

	if len(checks) == 0 {
		return ""
	}

	var code strings.Builder
	code.WriteString("func _() {\n")
	code.WriteString(fmt.Sprintf("\t// An \"invalid array index\" compiler error signifies that the layout of %s has changed.\n", a.TypeName))
	code.WriteString(sizeNote)
	code.WriteString("\tvar x [1]struct{}\n")
	code.WriteString(fmt.Sprintf("\tvar v %s\n", a.TypeName))
	for _, check := range checks {
		code.WriteString(check)
	}
	code.WriteString("}\n")

	return code.String()
}
