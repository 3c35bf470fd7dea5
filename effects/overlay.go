package effects

import (
	"math"
	"math/rand"

	"github.com/glitchlab-io/go-effects/images"
)

// Blend mode options for the color overlay effect.
const (
	BlendNormal = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendSoftLight
	BlendHardLight
	BlendColorDodge
	BlendColorBurn
	BlendDarken
	BlendLighten
	BlendDifference
	BlendExclusion
)

func init() {
	register(&Effect{
		ID:    "coloroverlay",
		Label: "Color Overlay",
		Params: []ParameterInfo{
			{Name: "color", Label: "Color", Kind: KindColor, Default: "#FF6A00"},
			{Name: "opacity", Label: "Opacity", Kind: KindNumber, Min: 0, Max: 100, Default: 50.0},
			{Name: "mode", Label: "Blend Mode", Kind: KindSelect, Default: BlendNormal, Options: []SelectOption{
				{Value: BlendNormal, Label: "Normal"},
				{Value: BlendMultiply, Label: "Multiply"},
				{Value: BlendScreen, Label: "Screen"},
				{Value: BlendOverlay, Label: "Overlay"},
				{Value: BlendSoftLight, Label: "Soft Light"},
				{Value: BlendHardLight, Label: "Hard Light"},
				{Value: BlendColorDodge, Label: "Color Dodge"},
				{Value: BlendColorBurn, Label: "Color Burn"},
				{Value: BlendDarken, Label: "Darken"},
				{Value: BlendLighten, Label: "Lighten"},
				{Value: BlendDifference, Label: "Difference"},
				{Value: BlendExclusion, Label: "Exclusion"},
			}},
		},
		apply: applyColorOverlay,
	})
}

// applyColorOverlay blends a flat color over every pixel with the selected
// mode, then linearly interpolates between original and blended result by
// opacity. Per-pixel with no neighbor reads; rows parallelize freely.
func applyColorOverlay(buf *images.PixelBuffer, p *Resolved, _ Factors, _ *rand.Rand, parallel bool) {
	cr, cg, cb := p.Color("color")
	opacity := p.Float("opacity") / 100
	mode := p.Int("mode")

	sr := float64(cr)
	sg := float64(cg)
	sb := float64(cb)

	sweep(parallel, buf.H, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < buf.W; x++ {
				r, g, b, _ := buf.At(x, y)
				fr, fg, fb := float64(r), float64(g), float64(b)

				br := blendChannel(fr, sr, mode)
				bg := blendChannel(fg, sg, mode)
				bb := blendChannel(fb, sb, mode)

				buf.Set(x, y,
					fr+(br-fr)*opacity,
					fg+(bg-fg)*opacity,
					fb+(bb-fb)*opacity)
			}
		}
	})
}

// blendChannel computes one blend mode's standard per-channel formula in
// the [0, 255] domain. The division-by-zero modes (dodge at source 255,
// burn at source 0) saturate to the mode's endpoint instead of dividing.
func blendChannel(base, src float64, mode int) float64 {
	switch mode {
	case BlendMultiply:
		return base * src / 255
	case BlendScreen:
		return 255 - (255-base)*(255-src)/255
	case BlendOverlay:
		if base < 128 {
			return 2 * base * src / 255
		}
		return 255 - 2*(255-base)*(255-src)/255
	case BlendSoftLight:
		return softLight(base/255, src/255) * 255
	case BlendHardLight:
		if src < 128 {
			return 2 * base * src / 255
		}
		return 255 - 2*(255-base)*(255-src)/255
	case BlendColorDodge:
		if src >= 255 {
			return 255
		}
		return math.Min(255, base*255/(255-src))
	case BlendColorBurn:
		if src <= 0 {
			return 0
		}
		return 255 - math.Min(255, (255-base)*255/src)
	case BlendDarken:
		return math.Min(base, src)
	case BlendLighten:
		return math.Max(base, src)
	case BlendDifference:
		return math.Abs(base - src)
	case BlendExclusion:
		return base + src - 2*base*src/255
	default: // BlendNormal
		return src
	}
}

// softLight implements the W3C compositing soft-light formula on
// normalized [0, 1] channels.
func softLight(b, s float64) float64 {
	if s <= 0.5 {
		return b - (1-2*s)*b*(1-b)
	}
	var d float64
	if b <= 0.25 {
		d = ((16*b-12)*b + 4) * b
	} else {
		d = math.Sqrt(b)
	}
	return b + (2*s-1)*(d-b)
}
