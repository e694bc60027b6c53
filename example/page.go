package example

import "unsafe"

//go:generate go run ../cmd/typelayout generate --arch amd64 page.go

// @layout
type Page struct {
	Header uint16
	Body   []byte
	Footer uint64
}

// AlignedPage is padded to a cache line in the C layout. gc does not
// over-align, so only its offsets are checked.
//
// @layout align=64
type AlignedPage struct {
	ID   uint32
	Data [20]byte
}

// PageRef points into a page without copying it.
//
// @layout
type PageRef struct {
	Data unsafe.Pointer
	Len  int32
	End  struct{}
}
