package sneptile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/sneptile/palette"
	"github.com/bodgit/sneptile/panel"
	"github.com/bodgit/sneptile/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	tables := []struct {
		name, symbol, panel string
	}{
		{"hero.png", "PATTERN_HERO", "panel_hero"},
		{"sprites/hero-walk.png", "PATTERN_HERO_WALK", "panel_hero_walk"},
		{"Title Screen.v2.png", "PATTERN_TITLE_SCREEN", "panel_title_screen"},
		{"font8x8", "PATTERN_FONT8X8", "panel_font8x8"},
	}

	for _, table := range tables {
		assert.Equal(t, table.symbol, Symbol(table.name))
		assert.Equal(t, table.panel, PanelSymbol(table.name))
	}
}

func sampleTables() *Tables {
	return &Tables{
		Mode: pattern.Mode4,
		Groups: []Group{
			{
				Name:     "cursor",
				Reserved: true,
				Start:    0,
				Patterns: []pattern.Pattern{make(pattern.Pattern, 32)},
			},
			{
				Name:  "hero.png",
				Start: 1,
				Patterns: []pattern.Pattern{
					{0x01, 0x02, 0x03, 0x04, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff},
				},
				Panels:     panel.Table{{1, 1}, {1, 1}},
				PanelTiles: 2,
			},
		},
		Palettes: []NamedPalette{
			{Name: "palette", Colors: []palette.Color{0x00, 0x3f, 0x24}},
		},
	}
}

func TestWritePatterns(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, sampleTables().WritePatterns(&b))

	want := "static const uint32_t patterns [] = {\n" +
		"\n    /* cursor (reserved) */\n" +
		"    0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000,\n" +
		"\n    /* hero.png */\n" +
		"    0x04030201, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0xff000000,\n" +
		"};\n"
	assert.Equal(t, want, b.String())
}

func TestWritePatternIndex(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, sampleTables().WritePatternIndex(&b))

	want := "#define PATTERN_CURSOR 0\n" +
		"#define PATTERN_HERO 1\n" +
		"uint16_t panel_hero [2] [2] = {\n" +
		"    {   1,   1 },\n" +
		"    {   1,   1 }\n" +
		"};\n"
	assert.Equal(t, want, b.String())
}

func TestWritePalette(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, sampleTables().WritePalette(&b))

	want := "#ifdef TARGET_SMS\n" +
		"static const uint8_t palette [16] = { 0x00, 0x3f, 0x24 };\n" +
		"#elif defined (TARGET_GG)\n" +
		"static const uint16_t palette [16] = { 0x0000, 0x0fff, 0x0a50 };\n" +
		"#endif\n"
	assert.Equal(t, want, b.String())
}

func TestWritePaletteEmpty(t *testing.T) {
	tables := &Tables{Mode: pattern.Mode4, Palettes: []NamedPalette{{Name: "palette"}}}

	var b bytes.Buffer
	require.NoError(t, tables.WritePalette(&b))
	assert.Contains(t, b.String(), "static const uint8_t palette [16] = { 0 };\n")
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, sampleTables().WriteDir(dir))

	for _, name := range []string{PatternsFilename, PatternIndexFilename, PaletteFilename} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestWriteDirTMS(t *testing.T) {
	dir := t.TempDir()
	tables := &Tables{Mode: pattern.TMSMode0}
	require.NoError(t, tables.WriteDir(dir))

	_, err := os.Stat(filepath.Join(dir, PatternsFilename))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, PaletteFilename))
	assert.True(t, os.IsNotExist(err))
}
