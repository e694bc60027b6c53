package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldLayout holds explicit size and alignment overrides from a field's
// layout tag.
type FieldLayout struct {
	Size     uint64
	Align    uint64
	HasSize  bool
	HasAlign bool
}

// Complete reports whether the tag gives both size and alignment, so the
// field's Go type need not be resolved.
func (f FieldLayout) Complete() bool {
	return f.HasSize && f.HasAlign
}

// ParseTag parses layout struct tags
//
// Semantics:
//   - "size=N"          : Field occupies N bytes
//   - "align=N"         : Field must start at a multiple of N (power of 2)
//   - "size=N,align=M"  : Both
//
// Overrides are for field types whose size cannot be resolved from the
// source file, such as types imported from other packages:
//
//	Stat C.struct_stat `layout:"size=144,align=8"`
func ParseTag(tag string) (*FieldLayout, error) {
	if tag == "" {
		return nil, fmt.Errorf("empty layout tag")
	}

	f := &FieldLayout{}
	seen := make(map[string]bool)

	for _, part := range strings.Split(tag, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			return nil, fmt.Errorf("invalid layout tag parameter: %q", part)
		}

		key, value := kv[0], kv[1]
		if seen[key] {
			return nil, fmt.Errorf("duplicate layout tag parameter: %s", key)
		}
		seen[key] = true

		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", key, value)
		}

		switch key {
		case "size":
			f.Size = n
			f.HasSize = true
		case "align":
			if n == 0 || (n&(n-1)) != 0 {
				return nil, fmt.Errorf("align must be a power of 2, got: %d", n)
			}
			f.Align = n
			f.HasAlign = true
		default:
			return nil, fmt.Errorf("unknown layout tag parameter: %s", key)
		}
	}

	return f, nil
}
