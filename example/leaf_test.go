//go:build amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x || sparc64 || wasm

package example

import (
	"testing"

	"github.com/alexhholmes/typelayout/internal/analyzer"
	"github.com/alexhholmes/typelayout/internal/layout"
	"github.com/alexhholmes/typelayout/internal/parser"
)

type reporter interface {
	LayoutReport() string
}

// reflected computes T's report from the layout gc actually chose.
func reflected[T any](t *testing.T, name string) string {
	t.Helper()

	r, err := layout.Of[T]()
	if err != nil {
		t.Fatalf("Of() error: %v", err)
	}
	r.TypeName = name
	return r.String()
}

func TestLayoutReportMatchesReflect(t *testing.T) {
	tests := []struct {
		name string
		got  reporter
		want string
	}{
		{"LeafElement", LeafElement{}, reflected[LeafElement](t, "LeafElement")},
		{"LeafHeader", LeafHeader{}, reflected[LeafHeader](t, "leaf_header")},
		{"LeafNode", LeafNode{}, reflected[LeafNode](t, "LeafNode")},
		{"Page", Page{}, reflected[Page](t, "Page")},
		{"PageRef", PageRef{}, reflected[PageRef](t, "PageRef")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.LayoutReport(); got != tt.want {
				t.Errorf("LayoutReport() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestAlignedPageReport(t *testing.T) {
	// gc ignores the declared alignment, so reflect cannot reproduce it
	want := "AlignedPage (size 64, alignment 64)\n" +
		"| Offset | Name      | Size |\n" +
		"| ------ | --------- | ---- |\n" +
		"| 0      | ID        | 4    |\n" +
		"| 4      | Data      | 20   |\n" +
		"| 24     | [padding] | 40   |\n"

	if got := (AlignedPage{}).LayoutReport(); got != want {
		t.Errorf("LayoutReport() =\n%s\nwant\n%s", got, want)
	}
}

func TestGeneratedReportsUpToDate(t *testing.T) {
	reports := map[string]string{
		"LeafElement": LeafElement{}.LayoutReport(),
		"LeafHeader":  LeafHeader{}.LayoutReport(),
		"LeafNode":    LeafNode{}.LayoutReport(),
		"Page":        Page{}.LayoutReport(),
		"AlignedPage": AlignedPage{}.LayoutReport(),
		"PageRef":     PageRef{}.LayoutReport(),
	}

	arch, err := analyzer.LookupArch("amd64")
	if err != nil {
		t.Fatalf("LookupArch() error: %v", err)
	}

	seen := 0
	for _, file := range []string{"leaf.go", "page.go"} {
		f, err := parser.ParseFile(file)
		if err != nil {
			t.Fatalf("ParseFile(%s) error: %v", file, err)
		}

		layouts, err := analyzer.AnalyzeFile(f, analyzer.NewTypeRegistry(arch), false)
		if err != nil {
			t.Fatalf("AnalyzeFile(%s) error: %v", file, err)
		}

		for _, a := range layouts {
			want, ok := reports[a.TypeName]
			if !ok {
				t.Errorf("%s: no generated report for %s", file, a.TypeName)
				continue
			}
			if got := a.Report.String(); got != want {
				t.Errorf("%s is stale; rerun go generate\ngenerated:\n%s\nanalyzed:\n%s", a.TypeName, want, got)
			}
			seen++
		}
	}

	if seen != len(reports) {
		t.Errorf("analyzed %d types, want %d", seen, len(reports))
	}
}
