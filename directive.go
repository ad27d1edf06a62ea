package sneptile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bodgit/sneptile/palette"
	"github.com/bodgit/sneptile/panel"
	"github.com/bodgit/sneptile/pattern"
)

// DirectiveKind says what a Directive does.
type DirectiveKind int

// The directive kinds.
const (
	File DirectiveKind = iota
	SetMode
	SeedPalette
	SelectPalette
	SetPanels
	Reserve
)

// Directive is one step of a run: either an image file to encode or a
// setting that affects the files after it.
type Directive struct {
	Kind    DirectiveKind
	Name    string
	Mode    pattern.Mode
	Colors  []palette.Color
	Palette palette.Kind
	Panels  panel.Geometry
	Count   int
}

// Apply carries out a directive that isn't a File.
func (s *Session) Apply(d Directive) error {
	switch d.Kind {
	case SetMode:
		return s.SetMode(d.Mode)
	case SeedPalette:
		s.SeedPalette(d.Colors...)
		return nil
	case SelectPalette:
		s.SelectPalette(d.Palette)
		return nil
	case SetPanels:
		return s.SetPanels(d.Panels)
	case Reserve:
		return s.Reserve(d.Name, d.Count)
	}
	return fmt.Errorf("sneptile: can't apply directive %d", d.Kind)
}

// ParseColor parses a 6-bit colour such as "0x3f".
func ParseColor(s string) (palette.Color, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("sneptile: invalid colour %q", s)
	}
	return palette.NewColor(v)
}

// ParseGeometry parses a panel size such as "2x1".
func ParseGeometry(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("sneptile: invalid panel size %q", s)
	}
	if width, err = strconv.Atoi(w); err != nil {
		return 0, 0, fmt.Errorf("sneptile: invalid panel size %q", s)
	}
	if height, err = strconv.Atoi(h); err != nil {
		return 0, 0, fmt.Errorf("sneptile: invalid panel size %q", s)
	}
	return width, height, nil
}

func isColor(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "0x")
}

// ParseArgs turns a command line of interleaved directives and file names
// into a list of directives. Recognised directives are:
//
//	--mode-0, --mode-2, --tms-small-sprites, --tms-large-sprites,
//	--mode-4, --mode-4-sprites     select the VDP mode
//	--palette 0xNN [0xNN ...]      seed the palette
//	--panels COUNT WxH             panel table for the next file
//	--background, --sprite         palette for the next file
//	--reserve NAME COUNT           reserve blank patterns
//
// Any other argument is a file name.
func ParseArgs(args []string) ([]Directive, error) {
	var directives []Directive

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !strings.HasPrefix(arg, "--") {
			directives = append(directives, Directive{Kind: File, Name: arg})
			continue
		}

		if m, err := pattern.ParseMode(strings.TrimPrefix(arg, "--")); err == nil {
			directives = append(directives, Directive{Kind: SetMode, Mode: m})
			continue
		}

		switch arg {
		case "--palette":
			d := Directive{Kind: SeedPalette}
			for i+1 < len(args) && isColor(args[i+1]) {
				i++
				c, err := ParseColor(args[i])
				if err != nil {
					return nil, err
				}
				d.Colors = append(d.Colors, c)
			}
			if len(d.Colors) == 0 {
				return nil, fmt.Errorf("sneptile: %s needs at least one colour", arg)
			}
			directives = append(directives, d)
		case "--panels":
			if i+2 >= len(args) {
				return nil, fmt.Errorf("sneptile: %s needs a count and a size", arg)
			}
			count, err := strconv.Atoi(args[i+1])
			if err != nil {
				return nil, fmt.Errorf("sneptile: invalid panel count %q", args[i+1])
			}
			w, h, err := ParseGeometry(args[i+2])
			if err != nil {
				return nil, err
			}
			g := panel.Geometry{Count: count, Width: w, Height: h}
			if err := g.Validate(); err != nil {
				return nil, err
			}
			directives = append(directives, Directive{Kind: SetPanels, Panels: g})
			i += 2
		case "--background", "--sprite":
			k, _ := palette.ParseKind(strings.TrimPrefix(arg, "--"))
			directives = append(directives, Directive{Kind: SelectPalette, Palette: k})
		case "--reserve":
			if i+2 >= len(args) {
				return nil, fmt.Errorf("sneptile: %s needs a name and a count", arg)
			}
			count, err := strconv.Atoi(args[i+2])
			if err != nil || count < 1 {
				return nil, fmt.Errorf("sneptile: invalid reservation count %q", args[i+2])
			}
			directives = append(directives, Directive{Kind: Reserve, Name: args[i+1], Count: count})
			i += 2
		default:
			return nil, fmt.Errorf("sneptile: unknown directive %q", arg)
		}
	}

	return directives, nil
}

// Files returns the file names in the order they will be encoded.
func Files(directives []Directive) []string {
	var files []string
	for _, d := range directives {
		if d.Kind == File {
			files = append(files, d.Name)
		}
	}
	return files
}

// IsDirective reports whether arg is a directive rather than a file name.
func IsDirective(arg string) bool {
	if !strings.HasPrefix(arg, "--") {
		return false
	}
	if _, err := pattern.ParseMode(strings.TrimPrefix(arg, "--")); err == nil {
		return true
	}
	switch arg {
	case "--palette", "--panels", "--background", "--sprite", "--reserve":
		return true
	}
	return false
}
