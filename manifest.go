package sneptile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sneptile/palette"
	"github.com/bodgit/sneptile/panel"
	"github.com/bodgit/sneptile/pattern"
	"gopkg.in/yaml.v3"
)

// Manifest describes a whole run in YAML, as an alternative to passing
// directives on the command line. File names are relative to the manifest.
//
//	mode: mode-4
//	output_dir: build
//	palette: [0x00, 0x3f]
//	items:
//	  - reserve: {name: cursor, count: 4}
//	  - file: hero.png
//	    palette: sprite
//	    panels: {count: 2, width: 2, height: 1}
type Manifest struct {
	Mode      string `yaml:"mode"`
	OutputDir string `yaml:"output_dir"`
	Palette   []int  `yaml:"palette"`
	Items     []Item `yaml:"items"`

	dir string
}

// Item is a single entry of a manifest.
type Item struct {
	File    string          `yaml:"file"`
	Palette string          `yaml:"palette"`
	Seed    []int           `yaml:"seed"`
	Panels  *panel.Geometry `yaml:"panels"`
	Reserve *Reservation    `yaml:"reserve"`
}

// Reservation is a block of blank patterns.
type Reservation struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ParseManifest reads a manifest from r.
func ParseManifest(r io.Reader) (*Manifest, error) {
	m := new(Manifest)
	if err := yaml.NewDecoder(r).Decode(m); err != nil {
		return nil, fmt.Errorf("sneptile: invalid manifest: %w", err)
	}
	return m, nil
}

// LoadManifest reads the manifest in the named file.
func LoadManifest(name string) (*Manifest, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	m.dir = filepath.Dir(name)

	return m, nil
}

func colors(values []int) ([]palette.Color, error) {
	out := make([]palette.Color, 0, len(values))
	for _, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("sneptile: invalid colour %d", v)
		}
		c, err := palette.NewColor(uint64(v))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *Manifest) path(name string) string {
	if m.dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.dir, name)
}

// Directives converts the manifest into the equivalent list of directives.
func (m *Manifest) Directives() ([]Directive, error) {
	var directives []Directive

	if m.Mode != "" {
		mode, err := pattern.ParseMode(m.Mode)
		if err != nil {
			return nil, err
		}
		directives = append(directives, Directive{Kind: SetMode, Mode: mode})
	}

	if len(m.Palette) > 0 {
		c, err := colors(m.Palette)
		if err != nil {
			return nil, err
		}
		directives = append(directives, Directive{Kind: SeedPalette, Colors: c})
	}

	for i, item := range m.Items {
		switch {
		case item.Reserve != nil && item.File != "":
			return nil, fmt.Errorf("sneptile: item %d has both a file and a reservation", i)
		case item.Reserve != nil:
			if item.Reserve.Count < 1 {
				return nil, fmt.Errorf("sneptile: item %d reserves %d tiles", i, item.Reserve.Count)
			}
			directives = append(directives, Directive{Kind: Reserve, Name: item.Reserve.Name, Count: item.Reserve.Count})
			continue
		case item.File == "":
			return nil, fmt.Errorf("sneptile: item %d has no file", i)
		}

		if item.Palette != "" {
			k, err := palette.ParseKind(item.Palette)
			if err != nil {
				return nil, err
			}
			directives = append(directives, Directive{Kind: SelectPalette, Palette: k})
		}

		if len(item.Seed) > 0 {
			c, err := colors(item.Seed)
			if err != nil {
				return nil, err
			}
			directives = append(directives, Directive{Kind: SeedPalette, Colors: c})
		}

		if item.Panels != nil {
			if err := item.Panels.Validate(); err != nil {
				return nil, err
			}
			directives = append(directives, Directive{Kind: SetPanels, Panels: *item.Panels})
		}

		directives = append(directives, Directive{Kind: File, Name: m.path(item.File)})
	}

	return directives, nil
}
