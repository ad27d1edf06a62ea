package tile

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkerboard(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				m.SetNRGBA(x, y, color.NRGBA{0xff, 0x00, 0x00, 0xff})
			}
		}
	}
	return m
}

func TestNewGrid(t *testing.T) {
	tables := []struct {
		w, h, size int
		cols, rows int
		err        error
	}{
		{16, 8, Small, 2, 1, nil},
		{32, 32, Large, 2, 2, nil},
		{12, 8, Small, 0, 0, ErrGeometry},
		{16, 12, Small, 0, 0, ErrGeometry},
		{24, 16, Large, 0, 0, ErrGeometry},
	}

	for _, table := range tables {
		g, err := NewGrid(image.NewNRGBA(image.Rect(0, 0, table.w, table.h)), table.size)
		if table.err != nil {
			assert.ErrorIs(t, err, table.err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, table.cols, g.Columns)
		assert.Equal(t, table.rows, g.Rows)
		assert.Len(t, g.Tiles(), table.cols*table.rows)
	}

	_, err := NewGrid(image.NewNRGBA(image.Rect(0, 0, 8, 8)), 4)
	assert.Error(t, err)
}

func TestTileOrder(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	g, err := NewGrid(m, Small)
	require.NoError(t, err)

	tiles := g.Tiles()
	assert.Equal(t, image.Rect(0, 0, 8, 8), tiles[0].Bounds())
	assert.Equal(t, image.Rect(8, 0, 16, 8), tiles[1].Bounds())
	assert.Equal(t, image.Rect(0, 8, 8, 16), tiles[2].Bounds())
	assert.Equal(t, image.Rect(8, 8, 16, 16), tiles[3].Bounds())
}

func TestOffsetImage(t *testing.T) {
	m := image.NewNRGBA(image.Rect(8, 8, 24, 16))
	m.SetNRGBA(16, 8, color.NRGBA{1, 2, 3, 4})

	g, err := NewGrid(m, Small)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{1, 2, 3, 4}, g.Tile(1, 0).At(0, 0))
}

func TestFingerprint(t *testing.T) {
	m := checkerboard(24, 8)
	g, err := NewGrid(m, Small)
	require.NoError(t, err)

	a, b, c := g.Tile(0, 0), g.Tile(1, 0), g.Tile(2, 0)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	// Alpha alone is enough to tell tiles apart
	m.SetNRGBA(16, 0, color.NRGBA{0xff, 0x00, 0x00, 0xfe})
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestSub(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	m.SetNRGBA(8, 0, color.NRGBA{0, 0, 0, 0xff})

	g, err := NewGrid(m, Large)
	require.NoError(t, err)

	l := g.Tile(0, 0)
	assert.Equal(t, Large, l.Size())
	assert.Equal(t, image.Rect(8, 0, 16, 8), l.Sub(1, 0).Bounds())
	assert.Equal(t, image.Rect(0, 8, 8, 16), l.Sub(0, 1).Bounds())
	assert.Equal(t, uint8(0xff), l.Sub(1, 0).At(0, 0).A)
}
