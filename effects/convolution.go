package effects

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/glitchlab-io/go-effects/images"
)

func init() {
	register(&Effect{
		ID:    "sharpen",
		Label: "Sharpen",
		Params: []ParameterInfo{
			{Name: "strength", Label: "Strength", Kind: KindNumber, Min: 0, Max: 100, Default: 50.0},
		},
		apply: applySharpen,
	})
	register(&Effect{
		ID:    "emboss",
		Label: "Emboss",
		Params: []ParameterInfo{
			{Name: "strength", Label: "Strength", Kind: KindNumber, Min: 0, Max: 100, Default: 50.0},
		},
		apply: applyEmboss,
	})
	register(&Effect{
		ID:    "edges",
		Label: "Edge Detect",
		Params: []ParameterInfo{
			{Name: "threshold", Label: "Threshold", Kind: KindNumber, Min: 1, Max: 100, Default: 25.0},
			{Name: "invert", Label: "Invert", Kind: KindSelect, Default: 0, Options: []SelectOption{
				{Value: 0, Label: "White Edges"},
				{Value: 1, Label: "Black Edges"},
			}},
		},
		apply: applyEdges,
	})
}

// The convolution family operates strictly on interior pixels
// (1 <= x < w-1, 1 <= y < h-1); border pixels are left untouched. All three
// effects read an immutable snapshot, so rows are independent and the
// parallel option applies.

// applySharpen runs the 3x3 unsharp-mask kernel
// [[0,-1,0],[-1,5,-1],[0,-1,0]] and blends the result against the original
// per-pixel value by strength.
func applySharpen(buf *images.PixelBuffer, p *Resolved, _ Factors, _ *rand.Rand, parallel bool) {
	w, h := buf.W, buf.H
	if w < 3 || h < 3 {
		return
	}
	strength := p.Float("strength") / 100
	if strength <= 0 {
		return
	}
	snap := buf.Snapshot()

	sweep(parallel, h-2, func(start, end int) {
		for y := start + 1; y <= end; y++ {
			for x := 1; x < w-1; x++ {
				i := snap.Index(x, y)
				var out [3]float64
				for c := 0; c < 3; c++ {
					center := float64(snap.Pix[i+c])
					conv := 5*center -
						float64(snap.Pix[snap.Index(x, y-1)+c]) -
						float64(snap.Pix[snap.Index(x-1, y)+c]) -
						float64(snap.Pix[snap.Index(x+1, y)+c]) -
						float64(snap.Pix[snap.Index(x, y+1)+c])
					out[c] = center + (conv-center)*strength
				}
				buf.Set(x, y, out[0], out[1], out[2])
			}
		}
	})
}

// applyEmboss maps each channel to the diagonal gradient between the
// top-left and bottom-right neighbors, offset by mid-gray and scaled by
// strength. Flat regions settle at 128.
func applyEmboss(buf *images.PixelBuffer, p *Resolved, _ Factors, _ *rand.Rand, parallel bool) {
	w, h := buf.W, buf.H
	if w < 3 || h < 3 {
		return
	}
	strength := p.Float("strength") / 100
	snap := buf.Snapshot()

	sweep(parallel, h-2, func(start, end int) {
		for y := start + 1; y <= end; y++ {
			for x := 1; x < w-1; x++ {
				tl := snap.Index(x-1, y-1)
				br := snap.Index(x+1, y+1)
				var out [3]float64
				for c := 0; c < 3; c++ {
					out[c] = 128 + (float64(snap.Pix[tl+c])-float64(snap.Pix[br+c]))*strength
				}
				buf.Set(x, y, out[0], out[1], out[2])
			}
		}
	})
}

// applyEdges runs a per-channel Sobel operator and thresholds the
// perceptually weighted gradient magnitude to binary black/white. The
// threshold tracks the DPI factor: it is a contrast threshold, not a
// pixel-count one.
func applyEdges(buf *images.PixelBuffer, p *Resolved, f Factors, _ *rand.Rand, parallel bool) {
	w, h := buf.W, buf.H
	if w < 3 || h < 3 {
		return
	}
	threshold := p.Float("threshold") * 2.55 * f.DPI
	invert := p.Int("invert") == 1
	snap := buf.Snapshot()

	sweep(parallel, h-2, func(start, end int) {
		for y := start + 1; y <= end; y++ {
			for x := 1; x < w-1; x++ {
				var mag [3]float32
				for c := 0; c < 3; c++ {
					at := func(dx, dy int) float32 {
						return float32(snap.Pix[snap.Index(x+dx, y+dy)+c])
					}
					gx := -at(-1, -1) + at(1, -1) - 2*at(-1, 0) + 2*at(1, 0) - at(-1, 1) + at(1, 1)
					gy := -at(-1, -1) - 2*at(0, -1) - at(1, -1) + at(-1, 1) + 2*at(0, 1) + at(1, 1)
					mag[c] = math32.Sqrt(gx*gx + gy*gy)
				}

				edge := 0.299*float64(mag[0]) + 0.587*float64(mag[1]) + 0.114*float64(mag[2])
				on := edge > threshold
				if invert {
					on = !on
				}
				if on {
					buf.Set(x, y, 255, 255, 255)
				} else {
					buf.Set(x, y, 0, 0, 0)
				}
			}
		}
	})
}
