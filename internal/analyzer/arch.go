package analyzer

import (
	"fmt"
	"sort"
)

// Arch describes how the gc compiler sizes types on one GOARCH
type Arch struct {
	Name     string
	WordSize uint64 // Size of int, uintptr, and pointers
	MaxAlign uint64 // Largest alignment of any basic type
}

var arches = map[string]Arch{
	"386":      {"386", 4, 4},
	"amd64":    {"amd64", 8, 8},
	"arm":      {"arm", 4, 4},
	"arm64":    {"arm64", 8, 8},
	"loong64":  {"loong64", 8, 8},
	"mips":     {"mips", 4, 4},
	"mipsle":   {"mipsle", 4, 4},
	"mips64":   {"mips64", 8, 8},
	"mips64le": {"mips64le", 8, 8},
	"ppc64":    {"ppc64", 8, 8},
	"ppc64le":  {"ppc64le", 8, 8},
	"riscv64":  {"riscv64", 8, 8},
	"s390x":    {"s390x", 8, 8},
	"sparc64":  {"sparc64", 8, 8},
	"wasm":     {"wasm", 8, 8},
}

// LookupArch returns the Arch for a GOARCH name
func LookupArch(name string) (Arch, error) {
	a, ok := arches[name]
	if !ok {
		return Arch{}, fmt.Errorf("unsupported architecture: %s", name)
	}
	return a, nil
}

// Arches returns every supported architecture, sorted by name
func Arches() []Arch {
	out := make([]Arch, 0, len(arches))
	for _, a := range arches {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Family returns the names of all architectures that lay out types
// identically to a, sorted, including a itself
func (a Arch) Family() []string {
	var names []string
	for _, other := range Arches() {
		if other.WordSize == a.WordSize && other.MaxAlign == a.MaxAlign {
			names = append(names, other.Name)
		}
	}
	return names
}

// align64 is the alignment of 64-bit basic types
func (a Arch) align64() uint64 {
	return min(8, a.MaxAlign)
}
