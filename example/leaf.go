package example

//go:generate go run ../cmd/typelayout generate --arch amd64 leaf.go

// @layout
type LeafElement struct {
	Key    uint32
	Flags  uint8
	Offset uint64
}

// @layout name=leaf_header
type LeafHeader struct {
	NumKeys  uint16
	Flags    uint16
	NextPage uint32
	PrevPage uint32
	Checksum [3]byte
}

// @layout
type LeafNode struct {
	Header   LeafHeader
	Count    uint8
	Elements [4]LeafElement
	Footer   uint64
}
