package testdata

// @layout
type Foo struct {
	A uint8
	B uint32
}

// OverAligned pads to a full cache line.
//
// @layout align=128
type OverAligned struct {
	Value uint8
}

// No annotation - reported only with --all
type Plain struct {
	X, Y int32
}
