// Package dedup tracks the unique tiles seen in a single image.
package dedup

import (
	"github.com/bodgit/sneptile/tile"
)

// Capacity is the most tiles an Index will register.
const Capacity = 512

// Index maps tile content onto the slot it was first registered in. Slots
// are handed out in registration order starting from zero.
type Index struct {
	slots map[tile.Fingerprint]int
}

// New returns an empty index.
func New() *Index {
	return &Index{
		slots: make(map[tile.Fingerprint]int),
	}
}

// Reset forgets every registered tile.
func (x *Index) Reset() {
	x.slots = make(map[tile.Fingerprint]int)
}

// Len returns the number of registered tiles.
func (x *Index) Len() int {
	return len(x.slots)
}

// Full reports whether the index has reached Capacity.
func (x *Index) Full() bool {
	return len(x.slots) >= Capacity
}

// Insert returns the slot for t and whether it was already present. A new
// tile is registered in the next free slot unless the index is full, in
// which case slot is -1.
func (x *Index) Insert(t tile.Tile) (slot int, found bool) {
	f := t.Fingerprint()
	if slot, ok := x.slots[f]; ok {
		return slot, true
	}
	if x.Full() {
		return -1, false
	}
	slot = len(x.slots)
	x.slots[f] = slot
	return slot, false
}
