package effects

import (
	"math/rand"

	"github.com/glitchlab-io/go-effects/images"
)

// paletteGameboy is the four-shade green LCD palette, darkest first.
var paletteGameboy = [][3]uint8{
	{15, 56, 15},
	{48, 98, 48},
	{139, 172, 15},
	{155, 188, 15},
}

// palette8Bit is a 16-color palette in the spirit of 8-bit consoles.
var palette8Bit = [][3]uint8{
	{0, 0, 0},
	{255, 255, 255},
	{136, 0, 0},
	{170, 255, 238},
	{204, 68, 204},
	{0, 204, 85},
	{0, 0, 170},
	{238, 238, 119},
	{221, 136, 85},
	{102, 68, 0},
	{255, 119, 119},
	{51, 51, 51},
	{119, 119, 119},
	{170, 255, 102},
	{0, 136, 255},
	{187, 187, 187},
}

// palette16Bit is a 32-color palette approximating 16-bit console output.
var palette16Bit = [][3]uint8{
	{0, 0, 0}, {29, 43, 83}, {126, 37, 83}, {0, 135, 81},
	{171, 82, 54}, {95, 87, 79}, {194, 195, 199}, {255, 241, 232},
	{255, 0, 77}, {255, 163, 0}, {255, 236, 39}, {0, 228, 54},
	{41, 173, 255}, {131, 118, 156}, {255, 119, 168}, {255, 204, 170},
	{41, 24, 20}, {17, 29, 53}, {66, 33, 54}, {18, 83, 89},
	{116, 47, 41}, {73, 51, 59}, {162, 136, 121}, {243, 239, 125},
	{190, 18, 80}, {255, 108, 36}, {168, 231, 46}, {0, 181, 67},
	{6, 90, 181}, {117, 70, 101}, {255, 110, 89}, {255, 157, 129},
}

func init() {
	register(&Effect{
		ID:    "gameboy",
		Label: "Handheld LCD",
		Params: []ParameterInfo{
			{Name: "pixelsize", Label: "Pixel Size", Kind: KindNumber, Min: 1, Max: 32, Default: 4.0},
		},
		apply: paletteApply(paletteGameboy),
	})
	register(&Effect{
		ID:    "retro8bit",
		Label: "8-Bit Console",
		Params: []ParameterInfo{
			{Name: "pixelsize", Label: "Pixel Size", Kind: KindNumber, Min: 1, Max: 32, Default: 4.0},
		},
		apply: paletteApply(palette8Bit),
	})
	register(&Effect{
		ID:    "retro16bit",
		Label: "16-Bit Console",
		Params: []ParameterInfo{
			{Name: "pixelsize", Label: "Pixel Size", Kind: KindNumber, Min: 1, Max: 32, Default: 2.0},
		},
		apply: paletteApply(palette16Bit),
	})
}

// paletteApply builds the apply function for one console palette:
// block-average at the scaled pixel size, then snap every pixel to its
// nearest palette entry.
func paletteApply(palette [][3]uint8) applyFunc {
	return func(buf *images.PixelBuffer, p *Resolved, f Factors, _ *rand.Rand, parallel bool) {
		size := int(p.Float("pixelsize")*f.Linear + 0.5)
		if size > 1 {
			blockAverage(buf, size)
		}

		sweep(parallel, buf.H, func(start, end int) {
			for y := start; y < end; y++ {
				for x := 0; x < buf.W; x++ {
					r, g, b, _ := buf.At(x, y)
					c := palette[nearestPaletteIndex(r, g, b, palette)]
					i := buf.Index(x, y)
					buf.Pix[i] = c[0]
					buf.Pix[i+1] = c[1]
					buf.Pix[i+2] = c[2]
				}
			}
		})
	}
}

// nearestPaletteIndex returns the palette entry closest to the pixel by
// Euclidean distance in RGB space. Ties resolve to the first entry at
// minimum distance in iteration order, deterministically.
func nearestPaletteIndex(r, g, b uint8, palette [][3]uint8) int {
	best := 0
	bestDist := -1
	for i, c := range palette {
		dr := int(r) - int(c[0])
		dg := int(g) - int(c[1])
		db := int(b) - int(c[2])
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
