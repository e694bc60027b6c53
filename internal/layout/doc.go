// Package layout computes C-compatible memory layouts for structures and
// renders them as reports.
//
// # Layout Rules
//
// Fields are placed sequentially in declaration order:
//   - Each field starts at the next offset that is a multiple of its alignment
//   - Bytes skipped to reach that offset are reported as padding
//   - The structure's alignment is the largest field alignment, raised to any
//     declared alignment
//   - The total size is rounded up to the structure's alignment (tail padding)
//
// # Usage
//
//	report, err := layout.Compute(spec)
//	fmt.Print(layout.Format(report))
package layout
