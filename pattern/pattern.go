/*
Package pattern encodes tiles into the pattern formats understood by the
TMS9918 family and the Master System / Game Gear Mode 4 VDP.

Patterns are kept as raw bytes in the order the VDP expects them in VRAM.
Mode 4 uses four bitplanes interleaved per row, 32 bytes per 8 by 8 tile.
The TMS modes use a single plane, 8 bytes per 8 by 8 tile, with 16 by 16
sprites stored as four consecutive 8 by 8 patterns.
*/
package pattern

import (
	"encoding/binary"
	"fmt"
	"image/color"

	"github.com/bodgit/sneptile/tile"
)

// Mode is a VDP display mode, which decides how tiles are encoded.
type Mode int

// The supported modes.
const (
	TMSMode0 Mode = iota
	TMSMode2
	TMSSmallSprites
	TMSLargeSprites
	Mode4
	Mode4Sprites
)

var modeNames = map[Mode]string{
	TMSMode0:        "mode-0",
	TMSMode2:        "mode-2",
	TMSSmallSprites: "tms-small-sprites",
	TMSLargeSprites: "tms-large-sprites",
	Mode4:           "mode-4",
	Mode4Sprites:    "mode-4-sprites",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name such as "mode-4" into a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("pattern: unknown mode %q", s)
}

// Mode4Family reports whether m is one of the palette-based Mode 4 variants.
func (m Mode) Mode4Family() bool {
	return m == Mode4 || m == Mode4Sprites
}

// Pattern is the VRAM representation of a single tile.
type Pattern []byte

// Words packs the pattern into 32-bit words such that storing them
// little-endian reproduces the VRAM byte order. For Mode 4 each word is one
// row laid out as plane3:plane2:plane1:plane0.
func (p Pattern) Words() []uint32 {
	w := make([]uint32, 0, len(p)/4)
	for i := 0; i+4 <= len(p); i += 4 {
		w = append(w, binary.LittleEndian.Uint32(p[i:]))
	}
	return w
}

// Indexer maps a pixel onto a palette index.
type Indexer interface {
	Index(color.NRGBA) uint8
}

// Encoder turns tiles into patterns for one mode.
type Encoder interface {
	// Mode returns the mode the encoder implements.
	Mode() Mode
	// TileSize is the side in pixels of the tiles the encoder accepts.
	TileSize() int
	// Patterns is how many hardware pattern slots one tile occupies.
	Patterns() int
	// Size is the length in bytes of an encoded tile.
	Size() int
	// Encode converts t, which must be TileSize pixels square. Palette
	// based modes resolve colours through idx.
	Encode(t tile.Tile, idx Indexer) Pattern
}

// NewEncoder returns the encoder for m.
func NewEncoder(m Mode) (Encoder, error) {
	switch m {
	case TMSMode0, TMSMode2, TMSSmallSprites:
		return &tmsEncoder{mode: m}, nil
	case TMSLargeSprites:
		return &tmsLargeEncoder{}, nil
	case Mode4, Mode4Sprites:
		return &mode4Encoder{mode: m}, nil
	}
	return nil, fmt.Errorf("pattern: unsupported mode %s", m)
}
