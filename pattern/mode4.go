package pattern

import (
	"github.com/bodgit/sneptile/tile"
)

const (
	planes       = 4
	mode4Pattern = tile.Small * planes
)

type mode4Encoder struct {
	mode Mode
}

func (e *mode4Encoder) Mode() Mode { return e.mode }
func (e *mode4Encoder) TileSize() int { return tile.Small }
func (e *mode4Encoder) Patterns() int { return 1 }
func (e *mode4Encoder) Size() int { return mode4Pattern }

// Encode writes each row as four plane bytes, plane 0 first. Bit 7-x of
// plane i holds bit i of the colour index of column x.
func (e *mode4Encoder) Encode(t tile.Tile, idx Indexer) Pattern {
	p := make(Pattern, mode4Pattern)
	for y := 0; y < tile.Small; y++ {
		row := p[y*planes : y*planes+planes]
		for x := 0; x < tile.Small; x++ {
			// This is masking off any bits leaving a 0-15 value
			index := idx.Index(t.At(x, y)) & 0x0f
			for i := 0; i < planes; i++ {
				if index&(1<<i) != 0 {
					row[i] |= 1 << (7 - x)
				}
			}
		}
	}
	return p
}
