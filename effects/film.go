package effects

import (
	"math"
	"math/rand"

	"github.com/glitchlab-io/go-effects/images"
)

func init() {
	register(&Effect{
		ID:    "film",
		Label: "Analog Film",
		Params: []ParameterInfo{
			{Name: "fade", Label: "Fade", Kind: KindNumber, Min: 0, Max: 100, Default: 30.0},
			{Name: "warmth", Label: "Warmth", Kind: KindNumber, Min: 0, Max: 100, Default: 25.0},
			{Name: "grain", Label: "Grain", Kind: KindNumber, Min: 0, Max: 100, Default: 35.0},
			{Name: "vignette", Label: "Vignette", Kind: KindNumber, Min: 0, Max: 100, Default: 40.0},
			{Name: "scratches", Label: "Scratches", Kind: KindNumber, Min: 0, Max: 100, Default: 20.0},
			{Name: "dust", Label: "Dust", Kind: KindNumber, Min: 0, Max: 100, Default: 20.0},
		},
		apply: applyFilm,
	})
}

// applyFilm emulates aged color film: radial fade and vignette, a warm
// tint, luminance grain, and decorative scratch/dust artifacts. Scratch and
// dust counts follow the amount parameter only; they are intentionally
// resolution-invariant decorative counts.
func applyFilm(buf *images.PixelBuffer, p *Resolved, f Factors, rng *rand.Rand, _ bool) {
	w, h := buf.W, buf.H
	cx := float64(w) / 2
	cy := float64(h) / 2
	maxDist := math.Hypot(cx, cy)

	fade := p.Float("fade")
	warmth := p.Float("warmth")
	grain := p.Float("grain")
	vignette := p.Float("vignette")

	// Single pixel sweep for the radial and per-pixel passes. Fade washes
	// edges toward paper white, vignette darkens them; both use the same
	// radial falloff factor = max(0, 1 - (d/maxD) * (amount/100)).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.Index(x, y)
			r := float64(buf.Pix[i])
			g := float64(buf.Pix[i+1])
			b := float64(buf.Pix[i+2])

			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist

			if fade > 0 {
				factor := math.Max(0, 1-d*fade/100)
				r = r*factor + 235*(1-factor)
				g = g*factor + 228*(1-factor)
				b = b*factor + 215*(1-factor)
			}

			if warmth > 0 {
				r += warmth / 100 * 30
				b -= warmth / 100 * 30
			}

			if grain > 0 {
				delta := rng.NormFloat64() * grain / 100 * 18
				r += delta
				g += delta
				b += delta
			}

			if vignette > 0 {
				factor := math.Max(0, 1-d*vignette/100)
				r *= factor
				g *= factor
				b *= factor
			}

			buf.Set(x, y, r, g, b)
		}
	}

	drawScratches(buf, p.Float("scratches"), f, rng)
	drawDust(buf, p.Float("dust"), f, rng)
}

// drawScratches draws short vertical strokes of randomized width at uniform
// random positions, alternating light and dark.
func drawScratches(buf *images.PixelBuffer, amount float64, f Factors, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	count := int(amount / 100 * 12)
	width := int(f.Linear + 0.5)
	if width < 1 {
		width = 1
	}

	for n := 0; n < count; n++ {
		x0 := rng.Intn(buf.W)
		y0 := rng.Intn(buf.H)
		length := buf.H/8 + rng.Intn(buf.H/4+1)
		sw := 1 + rng.Intn(width)
		light := rng.Float64() < 0.5

		for y := y0; y < y0+length && y < buf.H; y++ {
			for x := x0; x < x0+sw && x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				if light {
					buf.Set(x, y, float64(r)+70, float64(g)+70, float64(b)+70)
				} else {
					buf.Set(x, y, float64(r)-70, float64(g)-70, float64(b)-70)
				}
			}
		}
	}
}

// drawDust fills small circular blobs at uniform random positions.
func drawDust(buf *images.PixelBuffer, amount float64, f Factors, rng *rand.Rand) {
	if amount <= 0 {
		return
	}
	count := int(amount / 100 * 20)
	maxRadius := 3 * f.Linear
	if maxRadius < 1 {
		maxRadius = 1
	}

	for n := 0; n < count; n++ {
		cx := rng.Intn(buf.W)
		cy := rng.Intn(buf.H)
		radius := 1 + rng.Float64()*maxRadius
		dark := rng.Float64() < 0.7

		ir := int(radius + 1)
		for dy := -ir; dy <= ir; dy++ {
			for dx := -ir; dx <= ir; dx++ {
				x := cx + dx
				y := cy + dy
				if x < 0 || x >= buf.W || y < 0 || y >= buf.H {
					continue
				}
				if float64(dx*dx+dy*dy) > radius*radius {
					continue
				}
				if dark {
					buf.Set(x, y, 25, 22, 20)
				} else {
					buf.Set(x, y, 235, 232, 228)
				}
			}
		}
	}
}
