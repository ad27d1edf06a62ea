package sneptile

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/bodgit/sneptile/palette"
)

// PatternData returns every pattern concatenated in VRAM order, ready to be
// copied to the VDP as is.
func (t *Tables) PatternData() []byte {
	b := new(bytes.Buffer)
	for _, g := range t.Groups {
		for _, p := range g.Patterns {
			b.Write(p)
		}
	}
	return b.Bytes()
}

// MarshalBinary encodes a palette in Master System form, one byte per
// colour, padded to palette.Size entries.
func (p NamedPalette) MarshalBinary() ([]byte, error) {
	b := make([]byte, palette.Size)
	for i, c := range p.Colors {
		b[i] = byte(c)
	}
	return b, nil
}

// GameGear encodes a palette in Game Gear form, a little-endian 16-bit word
// per colour, padded to palette.Size entries.
func (p NamedPalette) GameGear() ([]byte, error) {
	words := make([]uint16, palette.Size)
	for i, c := range p.Colors {
		words[i] = c.GameGear()
	}

	b := new(bytes.Buffer)
	if err := binary.Write(b, binary.LittleEndian, words); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// WriteBinaryDir writes raw binary versions of the tables into dir:
// patterns.bin and, for Mode 4, <palette>.sms.bin and <palette>.gg.bin.
func (t *Tables) WriteBinaryDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "patterns.bin"), t.PatternData(), 0o644); err != nil {
		return err
	}

	if !t.Mode.Mode4Family() {
		return nil
	}

	for _, p := range t.Palettes {
		sms, err := p.MarshalBinary()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, p.Name+".sms.bin"), sms, 0o644); err != nil {
			return err
		}

		gg, err := p.GameGear()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, p.Name+".gg.bin"), gg, 0o644); err != nil {
			return err
		}
	}

	return nil
}
