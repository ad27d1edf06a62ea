/*
Package palette implements the Mode-4 colour palette.

Colours are reduced to the 6-bit Master System format, two bits per channel
packed as 00BBGGRR. A palette holds up to sixteen of them in the order they
were first seen; entries are never reordered or removed.
*/
package palette

import (
	"errors"
	"fmt"
	"image/color"
)

// Size is the number of colours a single palette can hold.
const Size = 16

// Kind selects which of the two Mode-4 palettes is in use.
type Kind int

const (
	// Background palettes may use every index.
	Background Kind = iota
	// Sprite palettes reserve index 0 as transparent.
	Sprite
)

func (k Kind) String() string {
	switch k {
	case Background:
		return "background"
	case Sprite:
		return "sprite"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts "background" or "sprite" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "background", "bg":
		return Background, nil
	case "sprite", "sprites":
		return Sprite, nil
	}
	return Background, fmt.Errorf("palette: unknown palette %q", s)
}

// Color is a 6-bit Master System colour.
type Color uint8

var errColorRange = errors.New("palette: colour out of range")

// NewColor validates a raw 6-bit colour value.
func NewColor(v uint64) (Color, error) {
	if v > 0x3f {
		return 0, errColorRange
	}
	return Color(v), nil
}

// Quantize reduces c to its 6-bit form by keeping the top two bits of each
// channel. Alpha is ignored.
func Quantize(c color.NRGBA) Color {
	return Color(c.R>>6 | c.G>>6<<2 | c.B>>6<<4)
}

func (c Color) channels() (r, g, b uint8) {
	return uint8(c) & 0x03, uint8(c) >> 2 & 0x03, uint8(c) >> 4 & 0x03
}

// GameGear returns the equivalent 12-bit Game Gear colour, packed as
// 0000BBBBGGGGRRRR. Each 2-bit channel v becomes v*5.
func (c Color) GameGear() uint16 {
	r, g, b := c.channels()
	return uint16(r)*5 | uint16(g)*5<<4 | uint16(b)*5<<8
}

// NRGBA expands the Game Gear form of c back to 8 bits per channel.
// Quantizing the result gives c again.
func (c Color) NRGBA() color.NRGBA {
	gg := c.GameGear()
	return color.NRGBA{
		R: uint8(gg&0x0f) * 0x11,
		G: uint8(gg>>4&0x0f) * 0x11,
		B: uint8(gg>>8&0x0f) * 0x11,
		A: 0xff,
	}
}

// Palette is an append-only list of distinct colours.
type Palette struct {
	kind   Kind
	colors []Color
}

// New returns an empty palette of the given kind.
func New(kind Kind) *Palette {
	return &Palette{kind: kind}
}

// Len returns the number of colours registered so far, which may exceed Size.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Colors returns a copy of the registered colours in index order.
func (p *Palette) Colors() []Color {
	return append([]Color(nil), p.colors...)
}

// Overflow reports whether more than Size colours have been registered.
func (p *Palette) Overflow() bool {
	return len(p.colors) > Size
}

// Seed appends c unconditionally, bypassing the lookup. It returns the index
// c was stored at.
func (p *Palette) Seed(c Color) int {
	p.colors = append(p.colors, c)
	return len(p.colors) - 1
}

// Lookup returns the index of c, searching from index 1 for sprite palettes.
func (p *Palette) Lookup(c Color) (int, bool) {
	start := 0
	if p.kind == Sprite {
		start = 1
	}
	for i := start; i < len(p.colors); i++ {
		if p.colors[i] == c {
			return i, true
		}
	}
	return 0, false
}

// Add returns the index of c, appending it if it isn't present yet. Adding
// never fails; use Overflow to find out if the palette grew too large.
func (p *Palette) Add(c Color) int {
	if i, ok := p.Lookup(c); ok {
		return i
	}
	// Index 0 of a sprite palette is the transparent colour
	if p.kind == Sprite && len(p.colors) == 0 {
		p.colors = append(p.colors, 0)
	}
	return p.Seed(c)
}

// Index maps a pixel to its palette index. Fully transparent pixels map to 0
// without registering anything.
func (p *Palette) Index(c color.NRGBA) uint8 {
	if c.A == 0 {
		return 0
	}
	return uint8(p.Add(Quantize(c)))
}
