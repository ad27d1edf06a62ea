/*
Package panel groups the tiles of an image into rectangular panels, such as
the frames of an animation laid out side by side, and lists the pattern index
of every tile in each panel.
*/
package panel

import (
	"errors"
	"fmt"
)

// ErrGeometry is returned when the tile grid can't be split into whole panels.
var ErrGeometry = errors.New("panel: image is not a multiple of the panel size")

// Geometry is the size of a panel in tiles and how many panels to list.
type Geometry struct {
	Count  int
	Width  int
	Height int
}

// Tiles returns the number of tiles in one panel.
func (g Geometry) Tiles() int {
	return g.Width * g.Height
}

func (g Geometry) String() string {
	return fmt.Sprintf("%d %dx%d", g.Count, g.Width, g.Height)
}

// Validate checks the geometry is usable at all.
func (g Geometry) Validate() error {
	if g.Count < 1 || g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("panel: invalid geometry %s", g)
	}
	return nil
}

// Table is the list of panels, each a row-major list of pattern indices.
type Table [][]int

// Build scans the columns by rows grid of pattern indices in panel sized
// blocks, left to right then top to bottom, returning at most g.Count panels.
func Build(indices []int, columns, rows int, g Geometry) (Table, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(indices) != columns*rows {
		return nil, fmt.Errorf("panel: have %d indices for a %dx%d grid", len(indices), columns, rows)
	}
	if columns%g.Width != 0 || rows%g.Height != 0 {
		return nil, fmt.Errorf("%w: %dx%d tiles into %dx%d panels", ErrGeometry, columns, rows, g.Width, g.Height)
	}

	table := make(Table, 0, g.Count)
	for py := 0; py < rows; py += g.Height {
		for px := 0; px < columns; px += g.Width {
			if len(table) == g.Count {
				return table, nil
			}
			p := make([]int, 0, g.Tiles())
			for y := py; y < py+g.Height; y++ {
				for x := px; x < px+g.Width; x++ {
					p = append(p, indices[y*columns+x])
				}
			}
			table = append(table, p)
		}
	}
	return table, nil
}
