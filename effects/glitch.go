package effects

import (
	"math/rand"

	"github.com/glitchlab-io/go-effects/images"
)

func init() {
	register(&Effect{
		ID:    "glitch",
		Label: "Digital Glitch",
		Params: []ParameterInfo{
			{Name: "lineshift", Label: "Line Shift", Kind: KindNumber, Min: 0, Max: 100, Default: 40.0},
			{Name: "blocks", Label: "Block Corruption", Kind: KindNumber, Min: 0, Max: 100, Default: 30.0},
			{Name: "noise", Label: "Digital Noise", Kind: KindNumber, Min: 0, Max: 100, Default: 20.0},
		},
		apply: applyGlitch,
	})
}

// applyGlitch simulates digital stream corruption: shifted scanline runs,
// corrupted macroblocks, and hot pixels. Line artifacts read a snapshot of
// the pre-pass frame.
func applyGlitch(buf *images.PixelBuffer, p *Resolved, f Factors, rng *rand.Rand, _ bool) {
	w, h := buf.W, buf.H
	snap := buf.Snapshot()

	// Shifted scanlines. Distance is in reference pixels, wrapped at the
	// row edge like a mis-decoded slice.
	if amount := p.Float("lineshift"); amount > 0 {
		prob := amount / 100 * 0.1
		maxShift := amount / 100 * 60 * f.Linear
		for y := 0; y < h; y++ {
			if rng.Float64() >= prob {
				continue
			}
			shift := 1 + int(rng.Float64()*maxShift)
			if rng.Float64() < 0.5 {
				shift = -shift
			}
			for x := 0; x < w; x++ {
				src := images.MapCoord(x-shift, w, images.WrapEdgeMode)
				i := buf.Index(x, y)
				j := snap.Index(src, y)
				copy(buf.Pix[i:i+4], snap.Pix[j:j+4])
			}
		}
	}

	// Corrupted macroblocks: channel rotation, solid fill, or a displaced
	// copy from elsewhere in the frame.
	if amount := p.Float("blocks"); amount > 0 {
		count := int(amount / 100 * 12)
		blockMax := int(96*f.Linear) + 8
		for n := 0; n < count; n++ {
			bw := 8 + rng.Intn(blockMax)
			bh := 4 + rng.Intn(blockMax/2+1)
			x0 := rng.Intn(w)
			y0 := rng.Intn(h)
			corruptBlock(buf, snap, x0, y0, bw, bh, rng)
		}
	}

	// Hot pixels: full-random RGB, density constant across resolutions.
	if amount := p.Float("noise"); amount > 0 {
		prob := amount / 100 * 0.1 / f.Combined
		if prob > 1 {
			prob = 1
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if rng.Float64() >= prob {
					continue
				}
				buf.Set(x, y, float64(rng.Intn(256)), float64(rng.Intn(256)), float64(rng.Intn(256)))
			}
		}
	}
}

// corruptBlock damages one rectangular region, clipped to the frame.
func corruptBlock(buf, snap *images.PixelBuffer, x0, y0, bw, bh int, rng *rand.Rand) {
	w, h := buf.W, buf.H
	mode := rng.Intn(3)

	// Displacement source for mode 2, chosen once per block.
	dx := rng.Intn(w)
	dy := rng.Intn(h)

	// Fill color for mode 1, sampled from inside the block.
	fr, fg, fb, _ := snap.At(images.MapCoord(x0, w, images.ClampEdgeMode), images.MapCoord(y0, h, images.ClampEdgeMode))

	for y := y0; y < y0+bh && y < h; y++ {
		for x := x0; x < x0+bw && x < w; x++ {
			i := buf.Index(x, y)
			switch mode {
			case 0: // rotate channels
				j := snap.Index(x, y)
				buf.Pix[i] = snap.Pix[j+1]
				buf.Pix[i+1] = snap.Pix[j+2]
				buf.Pix[i+2] = snap.Pix[j]
			case 1: // solid fill
				buf.Pix[i] = fr
				buf.Pix[i+1] = fg
				buf.Pix[i+2] = fb
			default: // displaced copy
				sx := (x + dx) % w
				sy := (y + dy) % h
				j := snap.Index(sx, sy)
				copy(buf.Pix[i:i+3], snap.Pix[j:j+3])
			}
		}
	}
}
