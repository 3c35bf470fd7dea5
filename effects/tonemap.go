package effects

import (
	"math/rand"

	"github.com/glitchlab-io/go-effects/images"
)

func init() {
	register(&Effect{
		ID:    "infrared",
		Label: "False-Color Infrared",
		Params: []ParameterInfo{
			{Name: "redboost", Label: "Red Boost", Kind: KindNumber, Min: 50, Max: 200, Default: 130.0},
		},
		apply: applyInfrared,
	})
	register(&Effect{
		ID:    "thermal",
		Label: "Thermal Camera",
		Params: []ParameterInfo{
			{Name: "intensity", Label: "Intensity", Kind: KindNumber, Min: 0, Max: 100, Default: 100.0},
		},
		apply: applyThermal,
	})
	register(&Effect{
		ID:    "sepia",
		Label: "Sepia",
		Params: []ParameterInfo{
			{Name: "intensity", Label: "Intensity", Kind: KindNumber, Min: 0, Max: 100, Default: 80.0},
		},
		apply: applySepia,
	})
	register(&Effect{
		ID:    "crossprocess",
		Label: "Cross Process",
		Params: []ParameterInfo{
			{Name: "intensity", Label: "Intensity", Kind: KindNumber, Min: 0, Max: 100, Default: 60.0},
		},
		apply: applyCrossProcess,
	})
	register(&Effect{
		ID:    "blackwhite",
		Label: "Black & White",
		Params: []ParameterInfo{
			{Name: "threshold", Label: "Threshold", Kind: KindNumber, Min: 1, Max: 100, Default: 50.0},
		},
		apply: applyBlackWhite,
	})
}

// The tone-mapping family is purely per-pixel: no neighbor reads, no
// snapshot needed, rows parallelize freely.

// applyInfrared remixes channels into a false-color infrared look: new red
// from original green scaled by the boost, new green from original red,
// blue attenuated.
func applyInfrared(buf *images.PixelBuffer, p *Resolved, _ Factors, _ *rand.Rand, parallel bool) {
	boost := p.Float("redboost") / 100

	sweep(parallel, buf.H, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				buf.Set(x, y, float64(g)*boost, float64(r), float64(b)*0.4)
			}
		}
	})
}

// thermalRamp holds the four-band color stops: blue, cyan, yellow, red.
var thermalRamp = [4][3]float64{
	{0, 0, 255},
	{0, 255, 255},
	{255, 255, 0},
	{255, 0, 0},
}

// applyThermal maps normalized luminance through a piecewise-linear
// blue-cyan-yellow-red ramp, one band per brightness quartile, then blends
// with the original by intensity.
func applyThermal(buf *images.PixelBuffer, p *Resolved, _ Factors, _ *rand.Rand, parallel bool) {
	mix := p.Float("intensity") / 100

	sweep(parallel, buf.H, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				l := luma(r, g, b) / 255

				band := int(l * 3)
				if band > 2 {
					band = 2
				}
				t := l*3 - float64(band)

				lo := thermalRamp[band]
				hi := thermalRamp[band+1]
				tr := lo[0] + (hi[0]-lo[0])*t
				tg := lo[1] + (hi[1]-lo[1])*t
				tb := lo[2] + (hi[2]-lo[2])*t

				buf.Set(x, y,
					float64(r)+(tr-float64(r))*mix,
					float64(g)+(tg-float64(g))*mix,
					float64(b)+(tb-float64(b))*mix)
			}
		}
	})
}

// applySepia applies the fixed luminance-preserving sepia matrix blended
// by intensity.
func applySepia(buf *images.PixelBuffer, p *Resolved, _ Factors, _ *rand.Rand, parallel bool) {
	mix := p.Float("intensity") / 100

	sweep(parallel, buf.H, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				fr, fg, fb := float64(r), float64(g), float64(b)

				sr := 0.393*fr + 0.769*fg + 0.189*fb
				sg := 0.349*fr + 0.686*fg + 0.168*fb
				sb := 0.272*fr + 0.534*fg + 0.131*fb

				buf.Set(x, y, fr+(sr-fr)*mix, fg+(sg-fg)*mix, fb+(sb-fb)*mix)
			}
		}
	})
}

// applyCrossProcess pushes highlights and shadows through different channel
// multiplier sets, split at mid-gray on perceptual luminance.
func applyCrossProcess(buf *images.PixelBuffer, p *Resolved, _ Factors, _ *rand.Rand, parallel bool) {
	mix := p.Float("intensity") / 100

	sweep(parallel, buf.H, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				fr, fg, fb := float64(r), float64(g), float64(b)

				var cr, cg, cb float64
				if luma(r, g, b) >= 128 {
					// Highlights push warm and green.
					cr, cg, cb = fr*1.15, fg*1.08, fb*0.85
				} else {
					// Shadows sink cool.
					cr, cg, cb = fr*0.9, fg*0.98, fb*1.2
				}

				buf.Set(x, y, fr+(cr-fr)*mix, fg+(cg-fg)*mix, fb+(cb-fb)*mix)
			}
		}
	})
}

// applyBlackWhite thresholds perceptual luminance to pure black or white.
// The threshold is a contrast decision and tracks the DPI factor only.
func applyBlackWhite(buf *images.PixelBuffer, p *Resolved, f Factors, _ *rand.Rand, parallel bool) {
	threshold := p.Float("threshold") * 2.55 * f.DPI

	sweep(parallel, buf.H, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				if luma(r, g, b) >= threshold {
					buf.Set(x, y, 255, 255, 255)
				} else {
					buf.Set(x, y, 0, 0, 0)
				}
			}
		}
	})
}
