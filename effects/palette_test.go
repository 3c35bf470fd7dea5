package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNearestPaletteTieBreak validates that a pixel exactly equidistant
// between two palette entries always resolves to the lower index.
func TestNearestPaletteTieBreak(t *testing.T) {
	palette := [][3]uint8{
		{10, 0, 0},
		{30, 0, 0},
	}
	// (20,0,0) is exactly 10 units from both entries.
	assert.Equal(t, 0, nearestPaletteIndex(20, 0, 0, palette), "tie must resolve to the first entry")

	// Symmetric case along another axis.
	palette = [][3]uint8{
		{0, 100, 0},
		{0, 140, 0},
		{0, 120, 0}, // exact match, but later in iteration order
	}
	assert.Equal(t, 2, nearestPaletteIndex(0, 120, 0, palette), "exact match beats ties")
	assert.Equal(t, 0, nearestPaletteIndex(0, 120, 0, palette[:2]), "without the exact entry, earlier of the tied pair wins")
}

// TestNearestPaletteExactEntries validates that palette colors map to
// themselves.
func TestNearestPaletteExactEntries(t *testing.T) {
	for i, c := range paletteGameboy {
		assert.Equal(t, i, nearestPaletteIndex(c[0], c[1], c[2], paletteGameboy), "entry %d", i)
	}
}

// TestGameboyOutputIsPaletteOnly validates that every output pixel of the
// console effect is one of the palette entries.
func TestGameboyOutputIsPaletteOnly(t *testing.T) {
	out, err := Apply("gameboy", gradientImage(t, 24, 24), Params{"pixelsize": 2})
	require.NoError(t, err)
	buf := decodeOutput(t, out)

	allowed := make(map[[3]uint8]bool, len(paletteGameboy))
	for _, c := range paletteGameboy {
		allowed[c] = true
	}

	for i := 0; i < len(buf.Pix); i += 4 {
		c := [3]uint8{buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]}
		require.True(t, allowed[c], "pixel %v is not a palette color", c)
	}
}

// TestConsoleEffectsDeterministic validates repeat-run byte identity for
// the whole quantization family's palette effects.
func TestConsoleEffectsDeterministic(t *testing.T) {
	src := gradientImage(t, 20, 20)
	for _, id := range []string{"gameboy", "retro8bit", "retro16bit"} {
		first, err := Apply(id, src, nil)
		require.NoError(t, err, id)
		second, err := Apply(id, src, nil)
		require.NoError(t, err, id)
		assert.Equal(t, first.Data, second.Data, id)
	}
}
