package testdata

import (
	"sync"
	"time"
)

const (
	KeySize  = 16
	SlotSize = KeySize * 2
	Mask     = 0x0F
)

type PageID uint64

type Checksum = [4]byte

type (
	// @layout name=leaf_header
	LeafHeader struct {
		ID       PageID
		NumKeys  uint16
		Flags    uint8
		Checksum Checksum
	}

	// @layout
	Slot struct {
		Key  [KeySize]byte
		Data [SlotSize]byte
	}
)

// @layout
type Record struct {
	LeafHeader
	*Slot
	mu       sync.Mutex
	Created  time.Time
	Extern   External `layout:"size=24,align=8"`
	a, b     bool
	Nested   struct{ X, Y uint16 }
	Callback func()
}

// @layout
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// @layout size=4096
type BadAnnotation struct {
	X uint8
}

// @layout
type BadTag struct {
	X uint8 `layout:"align=3"`
}
