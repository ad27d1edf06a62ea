/*
Package sneptile converts images into the pattern, pattern index and palette
tables used by the TMS9918 family and Sega Master System / Game Gear VDPs.

A Session is fed images one at a time, in order. Patterns are numbered
consecutively across every image of a run and duplicate tiles within an image
are only emitted once. When the run is complete, Finalize returns the tables
ready to be written out as C headers.
*/
package sneptile

import (
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/sneptile/dedup"
	"github.com/bodgit/sneptile/palette"
	"github.com/bodgit/sneptile/panel"
	"github.com/bodgit/sneptile/pattern"
	"github.com/bodgit/sneptile/tile"
	"go.uber.org/zap"
)

var (
	// ErrPaletteOverflow is returned by Finalize when a palette ended up
	// with more than palette.Size colours.
	ErrPaletteOverflow = errors.New("sneptile: palette limit exceeded")

	errModeLocked = errors.New("sneptile: mode can't be changed after patterns have been generated")
	errFinalized  = errors.New("sneptile: session already finalized")
)

// Session holds the state of a single run.
type Session struct {
	log *zap.Logger

	mode    pattern.Mode
	encoder pattern.Encoder
	started bool
	done    bool

	palettes [2]*palette.Palette
	used     [2]bool

	// Only apply to the next image
	nextPalette *palette.Kind
	nextPanels  *panel.Geometry
	seeds       []palette.Color

	index *dedup.Index
	count int

	groups []Group
}

// New returns a Session in Mode 4. A nil logger discards everything.
func New(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	e, _ := pattern.NewEncoder(pattern.Mode4)
	return &Session{
		log:     log,
		mode:    pattern.Mode4,
		encoder: e,
		palettes: [2]*palette.Palette{
			palette.Background: palette.New(palette.Background),
			palette.Sprite:     palette.New(palette.Sprite),
		},
		index: dedup.New(),
	}
}

// Mode returns the current VDP mode.
func (s *Session) Mode() pattern.Mode {
	return s.mode
}

// PatternIndex returns the index the next pattern will be given.
func (s *Session) PatternIndex() int {
	return s.count
}

// SetMode selects the VDP mode. It must happen before any patterns are
// generated.
func (s *Session) SetMode(m pattern.Mode) error {
	if m == s.mode {
		return nil
	}
	if s.started {
		return errModeLocked
	}
	e, err := pattern.NewEncoder(m)
	if err != nil {
		return err
	}
	s.mode, s.encoder = m, e
	return nil
}

func (s *Session) defaultPalette() palette.Kind {
	if s.mode == pattern.Mode4Sprites {
		return palette.Sprite
	}
	return palette.Background
}

func (s *Session) activePalette() palette.Kind {
	if s.nextPalette != nil {
		return *s.nextPalette
	}
	return s.defaultPalette()
}

// SeedPalette appends colours to the palette the next image will use, in
// the order given and without checking for duplicates. The palette is only
// chosen once that image is encoded, so a later mode or palette directive
// still decides where the colours go.
func (s *Session) SeedPalette(colors ...palette.Color) {
	s.seeds = append(s.seeds, colors...)
}

func (s *Session) flushSeeds(k palette.Kind) {
	if len(s.seeds) == 0 {
		return
	}
	for _, c := range s.seeds {
		s.palettes[k].Seed(c)
	}
	s.used[k] = true
	s.log.Debug("seeded palette", zap.Stringer("palette", k), zap.Int("colours", len(s.seeds)))
	s.seeds = nil
}

// SelectPalette chooses the palette for the next image only.
func (s *Session) SelectPalette(k palette.Kind) {
	s.nextPalette = &k
}

// SetPanels requests a panel table for the next image only.
func (s *Session) SetPanels(g panel.Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.nextPanels = &g
	return nil
}

// Reserve sets aside count blank tiles, for example for patterns generated
// at runtime.
func (s *Session) Reserve(name string, count int) error {
	if s.done {
		return errFinalized
	}
	if count < 1 {
		return fmt.Errorf("sneptile: invalid reservation of %d tiles for %s", count, name)
	}
	s.started = true

	g := Group{
		Name:     name,
		Reserved: true,
		Start:    s.count,
	}
	for i := 0; i < count; i++ {
		g.Patterns = append(g.Patterns, make(pattern.Pattern, s.encoder.Size()))
		s.count += s.encoder.Patterns()
	}
	s.groups = append(s.groups, g)

	s.log.Info("reserved patterns", zap.String("name", name), zap.Int("start", g.Start), zap.Int("tiles", count))

	return nil
}

// Encode converts every tile of m, skipping any that repeat an earlier tile
// of the same image. The image dimensions are checked before anything is
// generated.
func (s *Session) Encode(name string, m *image.NRGBA) error {
	if s.done {
		return errFinalized
	}

	grid, err := tile.NewGrid(m, s.encoder.TileSize())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	kind, geometry := s.activePalette(), s.nextPanels
	s.nextPalette, s.nextPanels = nil, nil

	if geometry != nil {
		// Catch a bad panel layout before generating anything
		if _, err := panel.Build(make([]int, grid.Len()), grid.Columns, grid.Rows, *geometry); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	s.started = true
	s.flushSeeds(kind)

	var idx pattern.Indexer
	if s.mode.Mode4Family() {
		idx = s.palettes[kind]
		s.used[kind] = true
	}

	s.index.Reset()

	g := Group{
		Name:  name,
		Start: s.count,
	}

	var duplicates int
	capped := false
	resolved := make([]int, 0, grid.Len())
	for _, t := range grid.Tiles() {
		slot, found := s.index.Insert(t)
		if found {
			resolved = append(resolved, g.Start+slot*s.encoder.Patterns())
			duplicates++
			continue
		}
		if slot < 0 && !capped {
			s.log.Warn("too many unique tiles, duplicates will no longer be removed", zap.String("file", name), zap.Int("limit", dedup.Capacity))
			capped = true
		}
		resolved = append(resolved, s.count)
		g.Patterns = append(g.Patterns, s.encoder.Encode(t, idx))
		s.count += s.encoder.Patterns()
	}

	if geometry != nil {
		g.Panels, err = panel.Build(resolved, grid.Columns, grid.Rows, *geometry)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		g.PanelTiles = geometry.Tiles()
		if len(g.Panels) < geometry.Count {
			s.log.Warn("image has fewer panels than requested", zap.String("file", name), zap.Int("requested", geometry.Count), zap.Int("found", len(g.Panels)))
		}
	}

	s.groups = append(s.groups, g)

	s.log.Info("encoded image",
		zap.String("file", name),
		zap.Int("start", g.Start),
		zap.Int("tiles", grid.Len()),
		zap.Int("unique", len(g.Patterns)),
		zap.Int("duplicates", duplicates),
	)

	return nil
}

// Finalize checks the palettes and returns the generated tables. No further
// images can be encoded afterwards.
func (s *Session) Finalize() (*Tables, error) {
	if s.done {
		return nil, errFinalized
	}
	s.done = true

	t := &Tables{
		Mode:   s.mode,
		Groups: s.groups,
	}

	if !s.mode.Mode4Family() {
		return t, nil
	}

	s.flushSeeds(s.activePalette())

	for _, k := range []palette.Kind{palette.Background, palette.Sprite} {
		if p := s.palettes[k]; s.used[k] && p.Overflow() {
			return nil, fmt.Errorf("%w: %s palette has %d colours", ErrPaletteOverflow, k, p.Len())
		}
	}

	switch {
	case s.used[palette.Background] && s.used[palette.Sprite]:
		t.Palettes = []NamedPalette{
			{Name: "background_palette", Colors: s.palettes[palette.Background].Colors()},
			{Name: "sprite_palette", Colors: s.palettes[palette.Sprite].Colors()},
		}
	case s.used[palette.Sprite]:
		t.Palettes = []NamedPalette{{Name: "palette", Colors: s.palettes[palette.Sprite].Colors()}}
	case s.used[palette.Background]:
		t.Palettes = []NamedPalette{{Name: "palette", Colors: s.palettes[palette.Background].Colors()}}
	default:
		t.Palettes = []NamedPalette{{Name: "palette", Colors: s.palettes[s.defaultPalette()].Colors()}}
	}

	return t, nil
}
