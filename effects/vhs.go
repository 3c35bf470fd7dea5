package effects

import (
	"math/rand"

	"github.com/glitchlab-io/go-effects/images"
)

// VHS noise type options.
const (
	// NoiseWhite perturbs every channel independently.
	NoiseWhite = iota
	// NoiseLuma perturbs all channels by one shared delta.
	NoiseLuma
	// NoiseChroma perturbs only the red and blue channels.
	NoiseChroma
	// NoiseSaltPepper slams pixels to full black or full white.
	NoiseSaltPepper
)

func init() {
	register(&Effect{
		ID:    "vhs",
		Label: "VHS Tape",
		Params: []ParameterInfo{
			{Name: "tracking", Label: "Tracking Error", Kind: KindNumber, Min: 0, Max: 100, Default: 40.0},
			{Name: "chroma", Label: "Color Separation", Kind: KindNumber, Min: 0, Max: 100, Default: 30.0},
			{Name: "dropout", Label: "Signal Dropout", Kind: KindNumber, Min: 0, Max: 100, Default: 20.0},
			{Name: "syncloss", Label: "Sync Loss", Kind: KindNumber, Min: 0, Max: 100, Default: 10.0},
			{Name: "scanlines", Label: "Scanlines", Kind: KindNumber, Min: 0, Max: 100, Default: 50.0},
			{Name: "noise", Label: "Noise", Kind: KindNumber, Min: 0, Max: 100, Default: 30.0},
			{Name: "noisetype", Label: "Noise Type", Kind: KindSelect, Default: NoiseWhite, Options: []SelectOption{
				{Value: NoiseWhite, Label: "White"},
				{Value: NoiseLuma, Label: "Luma"},
				{Value: NoiseChroma, Label: "Chroma"},
				{Value: NoiseSaltPepper, Label: "Salt & Pepper"},
			}},
			{Name: "bleed", Label: "Color Bleed", Kind: KindNumber, Min: 0, Max: 100, Default: 25.0},
		},
		apply: applyVHS,
	})
}

// applyVHS simulates analog tape degradation. Each artifact type runs as an
// independent pass of Bernoulli trials per scanline or per pixel. Line-level
// artifacts read a snapshot of the frame taken before this pass so
// overlapping artifacts do not compound. Sequential line logic keeps this
// effect serial regardless of the parallel option.
func applyVHS(buf *images.PixelBuffer, p *Resolved, f Factors, rng *rand.Rand, _ bool) {
	w, h := buf.W, buf.H
	snap := buf.Snapshot()

	trackingLines(buf, snap, p.Float("tracking"), f, rng)
	chromaShift(buf, snap, p.Float("chroma"), f, rng)
	dropoutBlocks(buf, p.Float("dropout"), f, rng)
	syncLossWrap(buf, p.Float("syncloss"), f, rng)

	// Scanline darkening: deterministic, every other reference scanline.
	// Spacing follows the linear factor so the line pitch stays visually
	// constant across resolutions.
	if amount := p.Float("scanlines"); amount > 0 {
		period := int(2*f.Linear + 0.5)
		if period < 2 {
			period = 2
		}
		factor := 1 - amount/100*0.35
		for y := 0; y < h; y += period {
			for x := 0; x < w; x++ {
				r, g, b, _ := buf.At(x, y)
				buf.Set(x, y, float64(r)*factor, float64(g)*factor, float64(b)*factor)
			}
		}
	}

	injectNoise(buf, p.Float("noise"), p.Int("noisetype"), f, rng)

	// Horizontal color bleed: chroma channels smear rightward. Reads the
	// pre-bleed state so the smear does not feed back on itself.
	if amount := p.Float("bleed"); amount > 0 {
		dist := int(amount/100*6*f.Linear + 0.5)
		if dist < 1 {
			dist = 1
		}
		pre := buf.Snapshot()
		for y := 0; y < h; y++ {
			for x := dist; x < w; x++ {
				i := pre.Index(x, y)
				j := pre.Index(x-dist, y)
				r := 0.6*float64(pre.Pix[i]) + 0.4*float64(pre.Pix[j])
				b := 0.6*float64(pre.Pix[i+2]) + 0.4*float64(pre.Pix[j+2])
				buf.Pix[buf.Index(x, y)] = images.ClampUint8(r)
				buf.Pix[buf.Index(x, y)+2] = images.ClampUint8(b)
			}
		}
	}
}

// trackingLines shifts whole scanlines horizontally, the classic tracking
// error band. Shift distance is defined in reference pixels and scales
// linearly; per-line probability is resolution-invariant since line count
// already grows with height.
func trackingLines(buf, snap *images.PixelBuffer, amount float64, f Factors, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	prob := amount / 100 * 0.08
	maxShift := amount / 100 * 24 * f.Linear

	for y := 0; y < buf.H; y++ {
		if rng.Float64() >= prob {
			continue
		}
		shift := int((rng.Float64()*2 - 1) * maxShift)
		if shift == 0 {
			continue
		}
		for x := 0; x < buf.W; x++ {
			src := images.MapCoord(x-shift, buf.W, images.WrapEdgeMode)
			i := buf.Index(x, y)
			j := snap.Index(src, y)
			copy(buf.Pix[i:i+4], snap.Pix[j:j+4])
		}
	}
}

// chromaShift separates the red and blue channels of affected scanlines in
// opposite horizontal directions.
func chromaShift(buf, snap *images.PixelBuffer, amount float64, f Factors, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	prob := amount / 100 * 0.25
	dist := int(amount/100*8*f.Linear + 0.5)
	if dist < 1 {
		dist = 1
	}

	for y := 0; y < buf.H; y++ {
		if rng.Float64() >= prob {
			continue
		}
		for x := 0; x < buf.W; x++ {
			rx := images.MapCoord(x-dist, buf.W, images.ClampEdgeMode)
			bx := images.MapCoord(x+dist, buf.W, images.ClampEdgeMode)
			i := buf.Index(x, y)
			buf.Pix[i] = snap.Pix[snap.Index(rx, y)]
			buf.Pix[i+2] = snap.Pix[snap.Index(bx, y)+2]
		}
	}
}

// dropoutBlocks replaces short runs of a scanline with near-white static,
// simulating oxide loss on the tape surface.
func dropoutBlocks(buf *images.PixelBuffer, amount float64, f Factors, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	prob := amount / 100 * 0.04
	maxLen := 80 * f.Linear
	if maxLen < 4 {
		maxLen = 4
	}

	for y := 0; y < buf.H; y++ {
		if rng.Float64() >= prob {
			continue
		}
		x0 := rng.Intn(buf.W)
		length := 1 + rng.Intn(int(maxLen))
		for x := x0; x < x0+length && x < buf.W; x++ {
			v := 200 + rng.Float64()*55
			buf.Set(x, y, v, v, v)
		}
	}
}

// syncLossWrap rolls a band of scanlines vertically, the picture losing
// vertical hold. The band reads a snapshot taken at band start; rows are
// written top to bottom and the wrap offset is shared across the band, so
// this pass must stay sequential.
func syncLossWrap(buf *images.PixelBuffer, amount float64, f Factors, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	prob := amount / 100 * 0.015
	w, h := buf.W, buf.H
	if h < 2 {
		// A single row has nothing to wrap onto.
		return
	}

	for y := 0; y < h; y++ {
		if rng.Float64() >= prob {
			continue
		}
		band := 8 + rng.Intn(h/4+1)
		offset := 1 + rng.Intn(h-1)
		snap := buf.Snapshot()
		for dy := 0; dy < band && y+dy < h; dy++ {
			srcY := (y + dy + offset) % h
			dst := buf.Index(0, y+dy)
			src := snap.Index(0, srcY)
			copy(buf.Pix[dst:dst+w*4], snap.Pix[src:src+w*4])
		}
		y += band
	}
}

// injectNoise runs per-pixel Bernoulli trials for one of the four noise
// types. The per-pixel probability shrinks with the combined factor so the
// areal density of speckles stays constant across resolutions.
func injectNoise(buf *images.PixelBuffer, amount float64, noiseType int, f Factors, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	prob := amount / 100 * 0.15 / f.Combined
	if prob > 1 {
		prob = 1
	}
	strength := amount / 100 * 90

	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			if rng.Float64() >= prob {
				continue
			}
			i := buf.Index(x, y)
			r := float64(buf.Pix[i])
			g := float64(buf.Pix[i+1])
			b := float64(buf.Pix[i+2])

			switch noiseType {
			case NoiseLuma:
				d := (rng.Float64()*2 - 1) * strength
				buf.Set(x, y, r+d, g+d, b+d)
			case NoiseChroma:
				buf.Set(x, y, r+(rng.Float64()*2-1)*strength, g, b+(rng.Float64()*2-1)*strength)
			case NoiseSaltPepper:
				if rng.Float64() < 0.5 {
					buf.Set(x, y, 0, 0, 0)
				} else {
					buf.Set(x, y, 255, 255, 255)
				}
			default: // NoiseWhite
				buf.Set(x, y,
					r+(rng.Float64()*2-1)*strength,
					g+(rng.Float64()*2-1)*strength,
					b+(rng.Float64()*2-1)*strength)
			}
		}
	}
}
