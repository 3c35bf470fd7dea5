package effects

import (
	"math"
	"math/rand"

	"github.com/glitchlab-io/go-effects/images"
)

// Dither pattern options.
const (
	// DitherBayer uses the 4x4 Bayer ordered threshold matrix.
	DitherBayer = iota
	// DitherRandom uses a uniform-random threshold per pixel.
	DitherRandom
	// DitherFloyd uses Floyd-Steinberg error diffusion.
	DitherFloyd
)

// bayer4 is the 4x4 Bayer ordered-dithering threshold matrix.
var bayer4 = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

func init() {
	register(&Effect{
		ID:    "posterize",
		Label: "Posterize",
		Params: []ParameterInfo{
			{Name: "levels", Label: "Levels", Kind: KindNumber, Min: 2, Max: 16, Default: 4.0},
		},
		apply: applyPosterize,
	})
	register(&Effect{
		ID:    "dither",
		Label: "Dither",
		Params: []ParameterInfo{
			{Name: "levels", Label: "Levels", Kind: KindNumber, Min: 2, Max: 8, Default: 2.0},
			{Name: "pattern", Label: "Pattern", Kind: KindSelect, Default: DitherBayer, Options: []SelectOption{
				{Value: DitherBayer, Label: "Bayer 4x4"},
				{Value: DitherRandom, Label: "Random"},
				{Value: DitherFloyd, Label: "Floyd-Steinberg"},
			}},
		},
		apply: applyDither,
	})
	register(&Effect{
		ID:    "pixelate",
		Label: "Pixelate",
		Params: []ParameterInfo{
			{Name: "blocksize", Label: "Block Size", Kind: KindNumber, Min: 2, Max: 64, Default: 8.0},
		},
		apply: applyPixelate,
	})
}

// quantize maps a channel value onto one of `levels` evenly spaced values.
func quantize(v float64, levels int) float64 {
	step := 255 / float64(levels-1)
	return math.Round(v*float64(levels-1)/255) * step
}

// applyPosterize reduces each channel to a fixed number of levels with no
// dithering. Purely per-pixel, so the parallel option applies.
func applyPosterize(buf *images.PixelBuffer, p *Resolved, _ Factors, _ *rand.Rand, parallel bool) {
	levels := p.Int("levels")

	sweep(parallel, buf.H, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				buf.Set(x, y,
					quantize(float64(r), levels),
					quantize(float64(g), levels),
					quantize(float64(b), levels))
			}
		}
	})
}

// applyDither quantizes each channel with one of three patterns. The Bayer
// and random patterns are per-pixel threshold offsets; Floyd-Steinberg
// diffuses the quantization error and must run in strict raster order, so
// it ignores the parallel option.
func applyDither(buf *images.PixelBuffer, p *Resolved, _ Factors, rng *rand.Rand, parallel bool) {
	levels := p.Int("levels")
	pattern := p.Int("pattern")

	switch pattern {
	case DitherFloyd:
		floydSteinberg(buf, levels)
	case DitherRandom:
		// Random thresholds consume the seeded generator in raster order;
		// keep the sweep serial so a fixed seed reproduces exactly.
		step := 255 / float64(levels-1)
		for y := 0; y < buf.H; y++ {
			for x := 0; x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				offset := (rng.Float64() - 0.5) * step
				buf.Set(x, y,
					quantize(float64(r)+offset, levels),
					quantize(float64(g)+offset, levels),
					quantize(float64(b)+offset, levels))
			}
		}
	default: // DitherBayer
		step := 255 / float64(levels-1)
		sweep(parallel, buf.H, func(start, end int) {
			for y := start; y < end; y++ {
				for x := 0; x < buf.W; x++ {
					r, g, b, _ := buf.At(x, y)
					t := (float64(bayer4[y%4][x%4]) + 0.5) / 16
					offset := (t - 0.5) * step
					buf.Set(x, y,
						quantize(float64(r)+offset, levels),
						quantize(float64(g)+offset, levels),
						quantize(float64(b)+offset, levels))
				}
			}
		})
	}
}

// floydSteinberg quantizes in raster scan order, propagating each pixel's
// quantization error to the right, below-left, below, and below-right
// neighbors with weights 7/16, 3/16, 5/16, 1/16. Later pixels see already
// diffused error; reordering changes the output.
func floydSteinberg(buf *images.PixelBuffer, levels int) {
	w, h := buf.W, buf.H

	// Working copy in float so diffused error is not clamped away before
	// it reaches a neighbor.
	work := make([]float64, w*h*3)
	for i, n := 0, w*h; i < n; i++ {
		work[i*3] = float64(buf.Pix[i*4])
		work[i*3+1] = float64(buf.Pix[i*4+1])
		work[i*3+2] = float64(buf.Pix[i*4+2])
	}

	diffuse := func(x, y int, c int, err, weight float64) {
		if x < 0 || x >= w || y >= h {
			return
		}
		work[(y*w+x)*3+c] += err * weight
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := (y*w + x) * 3
			var out [3]float64
			for c := 0; c < 3; c++ {
				old := work[idx+c]
				q := quantize(old, levels)
				out[c] = q

				err := old - q
				diffuse(x+1, y, c, err, 7.0/16)
				diffuse(x-1, y+1, c, err, 3.0/16)
				diffuse(x, y+1, c, err, 5.0/16)
				diffuse(x+1, y+1, c, err, 1.0/16)
			}
			buf.Set(x, y, out[0], out[1], out[2])
		}
	}
}

// applyPixelate averages square blocks. Block size is defined in reference
// pixels and scales linearly so the mosaic cell count is resolution
// independent.
func applyPixelate(buf *images.PixelBuffer, p *Resolved, f Factors, _ *rand.Rand, _ bool) {
	size := int(p.Float("blocksize")*f.Linear + 0.5)
	if size < 2 {
		size = 2
	}
	blockAverage(buf, size)
}

// blockAverage replaces every size x size block with its mean color.
// Shared by pixelate and the console-palette effects.
func blockAverage(buf *images.PixelBuffer, size int) {
	w, h := buf.W, buf.H
	for by := 0; by < h; by += size {
		for bx := 0; bx < w; bx += size {
			var r, g, b float64
			count := 0
			for y := by; y < by+size && y < h; y++ {
				for x := bx; x < bx+size && x < w; x++ {
					i := buf.Index(x, y)
					r += float64(buf.Pix[i])
					g += float64(buf.Pix[i+1])
					b += float64(buf.Pix[i+2])
					count++
				}
			}
			r /= float64(count)
			g /= float64(count)
			b /= float64(count)
			for y := by; y < by+size && y < h; y++ {
				for x := bx; x < bx+size && x < w; x++ {
					buf.Set(x, y, r, g, b)
				}
			}
		}
	}
}
