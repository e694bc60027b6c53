package analyzer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexhholmes/typelayout/internal/layout"
	"github.com/alexhholmes/typelayout/internal/parser"
)

// AnalyzedLayout contains the analyzed memory layout of one struct
type AnalyzedLayout struct {
	TypeName string // Go type name
	Spec     layout.StructSpec
	Report   layout.Report

	// Reasons gc may lay the type out differently from Report
	NestedInexact bool // A field's type is itself laid out differently by gc
	TrailingZero  bool // Last field is zero-size; gc appends a padding byte
	OverAligned   bool // Declared alignment exceeds the fields'; gc ignores it
}

// OffsetsExact reports whether gc places every field at the reported offset
func (a *AnalyzedLayout) OffsetsExact() bool {
	return !a.NestedInexact
}

// SizeExact reports whether gc gives the type the reported size and alignment
func (a *AnalyzedLayout) SizeExact() bool {
	return !a.NestedInexact && !a.TrailingZero && !a.OverAligned
}

// Analyze performs layout analysis on a parsed type
func Analyze(t *parser.TypeLayout, registry *TypeRegistry) (*AnalyzedLayout, error) {
	if t == nil {
		return nil, fmt.Errorf("layout is nil")
	}
	if t.Err != nil {
		return nil, t.Err
	}

	var declaredAlign uint64
	if t.Anno != nil {
		declaredAlign = t.Anno.Align
	}

	spec, nested, err := registry.structSpec(t.ReportName(), t.Fields, declaredAlign)
	if err != nil {
		return nil, err
	}

	report, err := layout.Compute(spec)
	if err != nil {
		return nil, err
	}

	a := &AnalyzedLayout{
		TypeName:      t.Name,
		Spec:          spec,
		Report:        report,
		NestedInexact: nested,
		TrailingZero:  goPadsTrailingZero(spec),
		OverAligned:   overAligned(spec),
	}

	// Later types in the file may embed this one
	registry.Register(t.Name, Info{Size: report.Size, Align: report.Align, Inexact: !a.SizeExact()})
	delete(registry.pending, t.Name)

	if !a.SizeExact() {
		Logger().Warn("gc layout differs from the C layout",
			zap.String("type", t.Name),
			zap.Bool("nested", a.NestedInexact),
			zap.Bool("trailing_zero", a.TrailingZero),
			zap.Bool("over_aligned", a.OverAligned))
	}

	return a, nil
}

// AnalyzeFile analyzes the @layout annotated types of f, or every struct
// type when all is set. Types that fail are skipped and their errors joined.
func AnalyzeFile(f *parser.File, registry *TypeRegistry, all bool) ([]*AnalyzedLayout, error) {
	registry.RegisterFile(f)

	candidates := f.Annotated()
	if all {
		candidates = f.Types
	}

	var (
		results []*AnalyzedLayout
		errs    []error
	)
	for _, t := range candidates {
		a, err := Analyze(t, registry)
		if err != nil {
			Logger().Debug("skipping type", zap.String("type", t.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", t.Pos, err))
			continue
		}
		results = append(results, a)
	}

	return results, errors.Join(errs...)
}
