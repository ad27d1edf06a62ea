package pattern

import (
	"github.com/bodgit/sneptile/tile"
)

const tmsPattern = tile.Small

// Quadrant order of a 16 by 16 sprite as the TMS9918 fetches it: top-left,
// bottom-left, top-right, bottom-right.
var largeOrder = [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

type tmsEncoder struct {
	mode Mode
}

func (e *tmsEncoder) Mode() Mode { return e.mode }
func (e *tmsEncoder) TileSize() int { return tile.Small }
func (e *tmsEncoder) Patterns() int { return 1 }
func (e *tmsEncoder) Size() int { return tmsPattern }

func (e *tmsEncoder) Encode(t tile.Tile, _ Indexer) Pattern {
	return visibility(make(Pattern, 0, tmsPattern), t)
}

type tmsLargeEncoder struct{}

func (e *tmsLargeEncoder) Mode() Mode { return TMSLargeSprites }
func (e *tmsLargeEncoder) TileSize() int { return tile.Large }
func (e *tmsLargeEncoder) Patterns() int { return len(largeOrder) }
func (e *tmsLargeEncoder) Size() int { return tmsPattern * len(largeOrder) }

func (e *tmsLargeEncoder) Encode(t tile.Tile, _ Indexer) Pattern {
	p := make(Pattern, 0, e.Size())
	for _, q := range largeOrder {
		p = visibility(p, t.Sub(q[0], q[1]))
	}
	return p
}

// visibility appends one byte per row of an 8 by 8 tile, bit 7-x set when
// column x isn't fully transparent.
func visibility(p Pattern, t tile.Tile) Pattern {
	for y := 0; y < tile.Small; y++ {
		var b byte
		for x := 0; x < tile.Small; x++ {
			if t.At(x, y).A != 0 {
				b |= 1 << (7 - x)
			}
		}
		p = append(p, b)
	}
	return p
}
