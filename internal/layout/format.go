package layout

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Column headers of the report table.
const (
	offsetHeader = "Offset"
	nameHeader   = "Name"
	sizeHeader   = "Size"
)

// Row is one line of the report table, as rendered cell text.
type Row struct {
	Offset string
	Name   string
	Size   string
}

// Table is a report laid out for rendering. Widths are in runes.
type Table struct {
	Title  string
	Header Row
	Rows   []Row
	Widths [3]int
}

// Tabulate computes the cell text and column widths for r. Each column is
// as wide as its longest cell, header included.
func Tabulate(r Report) Table {
	t := Table{
		Title:  fmt.Sprintf("%s (size %d, alignment %d)", r.TypeName, r.Size, r.Align),
		Header: Row{Offset: offsetHeader, Name: nameHeader, Size: sizeHeader},
		Rows:   make([]Row, 0, len(r.Entries)),
	}

	t.widen(t.Header)
	for _, e := range r.Entries {
		row := Row{
			Offset: strconv.FormatUint(e.Offset, 10),
			Name:   e.Label(),
			Size:   strconv.FormatUint(e.Size, 10),
		}
		t.widen(row)
		t.Rows = append(t.Rows, row)
	}

	return t
}

func (t *Table) widen(row Row) {
	for i, cell := range [3]string{row.Offset, row.Name, row.Size} {
		t.Widths[i] = max(t.Widths[i], utf8.RuneCountInString(cell))
	}
}

// Separator returns the dashed row under the header.
func (t Table) Separator() Row {
	return Row{
		Offset: strings.Repeat("-", t.Widths[0]),
		Name:   strings.Repeat("-", t.Widths[1]),
		Size:   strings.Repeat("-", t.Widths[2]),
	}
}

// Line renders row as "| a | b | c |" without a trailing newline.
func (t Table) Line(row Row) string {
	return fmt.Sprintf("| %-*s | %-*s | %-*s |",
		t.Widths[0], row.Offset,
		t.Widths[1], row.Name,
		t.Widths[2], row.Size)
}

// Lines returns the title, header, separator, and one line per entry.
func (t Table) Lines() []string {
	lines := make([]string, 0, len(t.Rows)+3)
	lines = append(lines, t.Title, t.Line(t.Header), t.Line(t.Separator()))
	for _, row := range t.Rows {
		lines = append(lines, t.Line(row))
	}
	return lines
}

// Format renders r as a titled table, one newline-terminated line per row:
//
//	Foo (size 8, alignment 4)
//	| Offset | Name      | Size |
//	| ------ | --------- | ---- |
//	| 0      | a         | 1    |
//	| 1      | [padding] | 3    |
//	| 4      | b         | 4    |
func Format(r Report) string {
	var out strings.Builder
	for _, line := range Tabulate(r).Lines() {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String()
}
