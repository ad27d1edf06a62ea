/*
Package source decodes image files into the non-premultiplied RGBA buffers
the tile encoder works on.

PNG, GIF and JPEG are supported through the standard library, BMP and TIFF
through golang.org/x/image.
*/
package source

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	"github.com/ericpauley/go-quantize/quantize"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// ErrEmpty is returned for images with no pixels.
var ErrEmpty = errors.New("source: image is empty")

// Decode reads an image from r and converts it to NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return NRGBA(m)
}

// Open decodes the image file name.
func Open(name string) (*image.NRGBA, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// NRGBA returns m as an NRGBA image, converting it if necessary.
func NRGBA(m image.Image) (*image.NRGBA, error) {
	b := m.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}

	if nm, ok := m.(*image.NRGBA); ok {
		return nm, nil
	}

	nm := image.NewNRGBA(b)
	draw.Draw(nm, b, m, b.Min, draw.Src)
	return nm, nil
}

func opaqueOnly(m image.Image, x, y int) uint32 {
	if _, _, _, a := m.At(x, y).RGBA(); a == 0 {
		return 0
	}
	return 1
}

// Reduce returns a copy of m using no more than n distinct colours, chosen
// by median cut. Fully transparent pixels are ignored when choosing colours
// and are copied across unchanged.
func Reduce(m *image.NRGBA, n int) *image.NRGBA {
	q := quantize.MedianCutQuantizer{
		Weighting: opaqueOnly,
	}
	p := q.Quantize(make(color.Palette, 0, n), m)
	if len(p) == 0 {
		return m
	}

	b := m.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.NRGBAAt(x, y)
			if c.A != 0 {
				// Only the colour is replaced, the alpha stays as it was
				r := color.NRGBAModel.Convert(p.Convert(color.NRGBA{c.R, c.G, c.B, 0xff})).(color.NRGBA)
				c.R, c.G, c.B = r.R, r.G, r.B
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
