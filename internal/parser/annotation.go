package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TypeAnnotation holds parsed @layout annotation
type TypeAnnotation struct {
	Align uint64 // Declared alignment in bytes (0 = none)
	Name  string // Report name override (empty = Go type name)
}

var (
	annotationRe = regexp.MustCompile(`^@layout(?:\s+(.*))?$`)
	pairRe       = regexp.MustCompile(`^(\w+)=(\S+)$`)
)

// ErrNoAnnotation is returned by ParseAnnotation for lines without @layout.
var ErrNoAnnotation = fmt.Errorf("no @layout annotation found")

// ParseAnnotation parses @layout annotation from a cleaned comment line
//
// Expected format:
//
//	// @layout
//	// @layout align=128
//	// @layout name=wire_header
//	// @layout align=64 name=CacheLine
//
// Params are space-separated key=value pairs.
func ParseAnnotation(comment string) (*TypeAnnotation, error) {
	matches := annotationRe.FindStringSubmatch(strings.TrimSpace(comment))
	if matches == nil {
		return nil, ErrNoAnnotation
	}

	return parseLayoutParams(matches[1])
}

func parseLayoutParams(params string) (*TypeAnnotation, error) {
	anno := &TypeAnnotation{}

	for _, field := range strings.Fields(params) {
		pair := pairRe.FindStringSubmatch(field)
		if pair == nil {
			return nil, fmt.Errorf("malformed parameter: %s (expected key=value)", field)
		}

		key := pair[1]
		value := pair[2]

		switch key {
		case "align":
			align, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid align value: %s", value)
			}
			if align == 0 || (align&(align-1)) != 0 {
				return nil, fmt.Errorf("align must be a power of 2, got: %d", align)
			}
			anno.Align = align

		case "name":
			anno.Name = value

		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return anno, nil
}

// FindAnnotation searches comment lines for @layout annotation
// Returns the annotation and true if found. A line that starts with @layout
// but fails to parse is reported as found with an error.
func FindAnnotation(comments []string) (*TypeAnnotation, bool, error) {
	for _, comment := range comments {
		anno, err := ParseAnnotation(comment)
		if err == ErrNoAnnotation {
			continue
		}
		if err != nil {
			return nil, true, err
		}
		return anno, true, nil
	}
	return nil, false, nil
}

// CleanComment removes comment markers from a line
// "// @layout align=8" → "@layout align=8"
// "/* @layout align=8 */" → "@layout align=8"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	// Remove // prefix
	if strings.HasPrefix(line, "//") {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimSpace(line)
		return line
	}

	// Remove /* */ wrapper
	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		return line
	}

	return line
}
