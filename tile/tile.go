/*
Package tile slices an image into the square tiles a VDP pattern describes.

Tiles are either 8 by 8 or, for large TMS sprites, 16 by 16 pixels. A Tile is
a view into the source image rather than a copy, so it is only meaningful
while that image is still around and unmodified.
*/
package tile

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"image/color"
)

const (
	// Small is the side of a regular 8 by 8 tile.
	Small = 8
	// Large is the side of a 16 by 16 sprite tile.
	Large = Small * 2
)

// ErrGeometry is returned when an image can't be split into whole tiles.
var ErrGeometry = errors.New("tile: image dimensions are not a multiple of the tile size")

// Fingerprint identifies the pixel content of a tile.
type Fingerprint [sha1.Size]byte

// Tile is a square region of an image.
type Tile struct {
	m *image.NRGBA
	r image.Rectangle
}

// Size returns the side of the tile in pixels.
func (t Tile) Size() int {
	return t.r.Dx()
}

// Bounds returns the region of the source image the tile covers.
func (t Tile) Bounds() image.Rectangle {
	return t.r
}

// At returns the pixel at (x, y) relative to the top-left of the tile.
func (t Tile) At(x, y int) color.NRGBA {
	return t.m.NRGBAAt(t.r.Min.X+x, t.r.Min.Y+y)
}

func (t Tile) row(y int) []byte {
	i := t.m.PixOffset(t.r.Min.X, t.r.Min.Y+y)
	return t.m.Pix[i : i+t.r.Dx()*4]
}

// Sub returns the 8 by 8 quadrant at column qx, row qy of a large tile.
func (t Tile) Sub(qx, qy int) Tile {
	o := t.r.Min.Add(image.Pt(qx*Small, qy*Small))
	return Tile{
		m: t.m,
		r: image.Rectangle{Min: o, Max: o.Add(image.Pt(Small, Small))},
	}
}

// Fingerprint hashes the pixel content of the tile. Two tiles with the same
// pixels, alpha included, have the same fingerprint.
func (t Tile) Fingerprint() Fingerprint {
	h := sha1.New()
	for y := 0; y < t.r.Dy(); y++ {
		h.Write(t.row(y))
	}
	var f Fingerprint
	copy(f[:], h.Sum(nil))
	return f
}

// Grid is the layout of tiles over an image.
type Grid struct {
	m       *image.NRGBA
	size    int
	Columns int
	Rows    int
}

// NewGrid validates that m divides evenly into tiles of the given size.
func NewGrid(m *image.NRGBA, size int) (*Grid, error) {
	if size != Small && size != Large {
		return nil, fmt.Errorf("tile: unsupported tile size %d", size)
	}

	b := m.Bounds()
	if b.Dx()%size != 0 || b.Dy()%size != 0 {
		return nil, fmt.Errorf("%w: %dx%d is not divisible by %d", ErrGeometry, b.Dx(), b.Dy(), size)
	}

	return &Grid{
		m:       m,
		size:    size,
		Columns: b.Dx() / size,
		Rows:    b.Dy() / size,
	}, nil
}

// Len returns the number of tiles in the grid.
func (g *Grid) Len() int {
	return g.Columns * g.Rows
}

// Tile returns the tile at column tx, row ty.
func (g *Grid) Tile(tx, ty int) Tile {
	o := g.m.Rect.Min.Add(image.Pt(tx*g.size, ty*g.size))
	return Tile{
		m: g.m,
		r: image.Rectangle{Min: o, Max: o.Add(image.Pt(g.size, g.size))},
	}
}

// Tiles returns every tile in row-major order.
func (g *Grid) Tiles() []Tile {
	tiles := make([]Tile, 0, g.Len())
	for ty := 0; ty < g.Rows; ty++ {
		for tx := 0; tx < g.Columns; tx++ {
			tiles = append(tiles, g.Tile(tx, ty))
		}
	}
	return tiles
}
