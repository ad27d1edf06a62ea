package pattern

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/sneptile/palette"
	"github.com/bodgit/sneptile/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	opaque      = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	transparent = color.NRGBA{}
)

// fixedIndexer returns the red channel as the index, bypassing any palette.
type fixedIndexer struct{}

func (fixedIndexer) Index(c color.NRGBA) uint8 {
	return c.R
}

func firstTile(t *testing.T, m *image.NRGBA, size int) tile.Tile {
	g, err := tile.NewGrid(m, size)
	require.NoError(t, err)
	return g.Tile(0, 0)
}

func TestParseMode(t *testing.T) {
	for m, name := range modeNames {
		got, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.Equal(t, name, m.String())
	}

	_, err := ParseMode("mode-3")
	assert.Error(t, err)

	assert.True(t, Mode4Sprites.Mode4Family())
	assert.False(t, TMSMode2.Mode4Family())
}

func TestNewEncoder(t *testing.T) {
	tables := []struct {
		mode     Mode
		tileSize int
		patterns int
		size     int
	}{
		{TMSMode0, 8, 1, 8},
		{TMSMode2, 8, 1, 8},
		{TMSSmallSprites, 8, 1, 8},
		{TMSLargeSprites, 16, 4, 32},
		{Mode4, 8, 1, 32},
		{Mode4Sprites, 8, 1, 32},
	}

	for _, table := range tables {
		e, err := NewEncoder(table.mode)
		require.NoError(t, err)
		assert.Equal(t, table.mode, e.Mode())
		assert.Equal(t, table.tileSize, e.TileSize())
		assert.Equal(t, table.patterns, e.Patterns())
		assert.Equal(t, table.size, e.Size())
	}

	_, err := NewEncoder(Mode(42))
	assert.Error(t, err)
}

func TestMode4RoundTrip(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	want := [8]uint8{}
	for x := 0; x < 8; x++ {
		want[x] = uint8(15 - x*2)
		m.SetNRGBA(x, 0, color.NRGBA{want[x], 0, 0, 0xff})
	}
	// Row 1 carries the remaining eight indices
	want1 := [8]uint8{}
	for x := 0; x < 8; x++ {
		want1[x] = uint8(x * 2)
		m.SetNRGBA(x, 1, color.NRGBA{want1[x], 0, 0, 0xff})
	}

	e, err := NewEncoder(Mode4)
	require.NoError(t, err)

	p := e.Encode(firstTile(t, m, tile.Small), fixedIndexer{})
	require.Len(t, p, 32)
	assert.Equal(t, want, decodeRow(p, 0))
	assert.Equal(t, want1, decodeRow(p, 1))
}

func TestMode4AllIndicesInRow(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	idx := palette.New(palette.Background)

	// Sixteen distinct colours, registered in order so index i is colour i
	for i := 0; i < 16; i++ {
		idx.Add(palette.Color(i))
	}
	for x := 0; x < 8; x++ {
		m.SetNRGBA(x, 0, palette.Color(x*2+1).NRGBA())
	}

	e, err := NewEncoder(Mode4)
	require.NoError(t, err)
	p := e.Encode(firstTile(t, m, tile.Small), idx)

	assert.Equal(t, [8]uint8{1, 3, 5, 7, 9, 11, 13, 15}, decodeRow(p, 0))
	assert.Equal(t, 16, idx.Len())
}

func TestMode4Planes(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	// Column 0 index 1, column 7 index 8
	m.SetNRGBA(0, 0, color.NRGBA{1, 0, 0, 0xff})
	m.SetNRGBA(7, 0, color.NRGBA{8, 0, 0, 0xff})

	e, err := NewEncoder(Mode4)
	require.NoError(t, err)
	p := e.Encode(firstTile(t, m, tile.Small), fixedIndexer{})

	assert.Equal(t, Pattern{0x80, 0x00, 0x00, 0x01}, p[0:4])
	assert.Equal(t, uint32(0x01000080), p.Words()[0])
}

func TestTMSVisibility(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		if x%2 == 0 {
			m.SetNRGBA(x, 0, opaque)
		} else {
			m.SetNRGBA(x, 0, transparent)
		}
	}
	// Any non-zero alpha counts as visible
	m.SetNRGBA(3, 1, color.NRGBA{0, 0, 0, 1})

	for _, mode := range []Mode{TMSMode0, TMSMode2, TMSSmallSprites} {
		e, err := NewEncoder(mode)
		require.NoError(t, err)

		p := e.Encode(firstTile(t, m, tile.Small), nil)
		require.Len(t, p, 8)
		assert.Equal(t, byte(0b10101010), p[0])
		assert.Equal(t, byte(0b00010000), p[1])
		assert.Equal(t, byte(0), p[2])
	}
}

func TestTMSLargeOrder(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	// Mark the first row of each quadrant differently
	m.SetNRGBA(0, 0, opaque)  // top-left, column 0
	m.SetNRGBA(9, 0, opaque)  // top-right, column 1
	m.SetNRGBA(2, 8, opaque)  // bottom-left, column 2
	m.SetNRGBA(11, 8, opaque) // bottom-right, column 3

	e, err := NewEncoder(TMSLargeSprites)
	require.NoError(t, err)

	p := e.Encode(firstTile(t, m, tile.Large), nil)
	require.Len(t, p, 32)
	assert.Equal(t, byte(0x80), p[0])
	assert.Equal(t, byte(0x20), p[8])
	assert.Equal(t, byte(0x40), p[16])
	assert.Equal(t, byte(0x10), p[24])
}

func TestWords(t *testing.T) {
	p := Pattern{0x01, 0x02, 0x03, 0x04, 0xaa, 0xbb, 0xcc, 0xdd}
	assert.Equal(t, []uint32{0x04030201, 0xddccbbaa}, p.Words())
}

// decodeRow recovers the colour indices of row y of a Mode 4 pattern.
func decodeRow(p Pattern, y int) [tile.Small]uint8 {
	var out [tile.Small]uint8
	row := p[y*planes : y*planes+planes]
	for x := 0; x < tile.Small; x++ {
		for i := 0; i < planes; i++ {
			if row[i]&(1<<(7-x)) != 0 {
				out[x] |= 1 << i
			}
		}
	}
	return out
}
