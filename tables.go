package sneptile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bodgit/sneptile/palette"
	"github.com/bodgit/sneptile/panel"
	"github.com/bodgit/sneptile/pattern"
)

// Filenames used when writing the tables to a directory.
const (
	PatternsFilename     = "patterns.h"
	PatternIndexFilename = "pattern_index.h"
	PaletteFilename      = "palette.h"
)

// Group is the run of patterns generated from one image or reservation.
// Start is the index of the first pattern in the group. Panels is only set
// if panels were requested for the image, each panel being PanelTiles long.
type Group struct {
	Name       string
	Reserved   bool
	Start      int
	Patterns   []pattern.Pattern
	Panels     panel.Table
	PanelTiles int
}

// NamedPalette is a palette as it will appear in the output.
type NamedPalette struct {
	Name   string
	Colors []palette.Color
}

// Tables is the complete output of a run.
type Tables struct {
	Mode     pattern.Mode
	Groups   []Group
	Palettes []NamedPalette
}

// stem returns name up to the first '.', without any directory.
func stem(name string) string {
	name = filepath.Base(name)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

func identifier(name string, mapping func(rune) rune) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return '_'
		}
		return mapping(r)
	}, stem(name))
}

// Symbol returns the name of the #define holding the first pattern index
// for the named file, e.g. "hero-walk.png" becomes "PATTERN_HERO_WALK".
func Symbol(name string) string {
	return "PATTERN_" + identifier(name, unicode.ToUpper)
}

// PanelSymbol returns the name of the panel table for the named file.
func PanelSymbol(name string) string {
	return "panel_" + identifier(name, unicode.ToLower)
}

// WritePatterns writes the pattern array, one tile per line.
func (t *Tables) WritePatterns(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "static const uint32_t patterns [] = {\n")
	for _, g := range t.Groups {
		if g.Reserved {
			fmt.Fprintf(bw, "\n    /* %s (reserved) */\n", g.Name)
		} else {
			fmt.Fprintf(bw, "\n    /* %s */\n", g.Name)
		}
		for _, p := range g.Patterns {
			fmt.Fprintf(bw, "   ")
			for _, word := range p.Words() {
				fmt.Fprintf(bw, " 0x%08x,", word)
			}
			fmt.Fprintf(bw, "\n")
		}
	}
	fmt.Fprintf(bw, "};\n")

	return bw.Flush()
}

// WritePatternIndex writes a #define for the first pattern of each group
// followed by any panel tables.
func (t *Tables) WritePatternIndex(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, g := range t.Groups {
		fmt.Fprintf(bw, "#define %s %d\n", Symbol(g.Name), g.Start)
		if g.Panels == nil {
			continue
		}

		fmt.Fprintf(bw, "uint16_t %s [%d] [%d] = {\n", PanelSymbol(g.Name), len(g.Panels), g.PanelTiles)
		for i, p := range g.Panels {
			fmt.Fprintf(bw, "    {")
			for j, index := range p {
				sep := ", "
				if j == 0 {
					sep = " "
				}
				fmt.Fprintf(bw, "%s%3d", sep, index)
			}
			if i < len(g.Panels)-1 {
				fmt.Fprintf(bw, " },\n")
			} else {
				fmt.Fprintf(bw, " }\n")
			}
		}
		fmt.Fprintf(bw, "};\n")
	}

	return bw.Flush()
}

func writeArray(w io.Writer, typ, name string, values []string) {
	if len(values) == 0 {
		values = []string{"0"}
	}
	fmt.Fprintf(w, "static const %s %s [%d] = { %s };\n", typ, name, palette.Size, strings.Join(values, ", "))
}

// WritePalette writes the palettes in Master System form, and Game Gear
// form for builds defining TARGET_GG.
func (t *Tables) WritePalette(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#ifdef TARGET_SMS\n")
	for _, p := range t.Palettes {
		values := make([]string, len(p.Colors))
		for i, c := range p.Colors {
			values[i] = fmt.Sprintf("0x%02x", uint8(c))
		}
		writeArray(bw, "uint8_t", p.Name, values)
	}

	fmt.Fprintf(bw, "#elif defined (TARGET_GG)\n")
	for _, p := range t.Palettes {
		values := make([]string, len(p.Colors))
		for i, c := range p.Colors {
			values[i] = fmt.Sprintf("0x%04x", c.GameGear())
		}
		writeArray(bw, "uint16_t", p.Name, values)
	}
	fmt.Fprintf(bw, "#endif\n")

	return bw.Flush()
}

func writeFile(name string, fn func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}

	return f.Close()
}

// WriteDir writes the tables into dir, creating it if necessary. The
// palette file is only written for Mode 4.
func (t *Tables) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, PatternsFilename), t.WritePatterns); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, PatternIndexFilename), t.WritePatternIndex); err != nil {
		return err
	}

	if !t.Mode.Mode4Family() {
		return nil
	}

	return writeFile(filepath.Join(dir, PaletteFilename), t.WritePalette)
}
