// Package upscale - resolution change with selectable resampling quality
// plus a deterministic detail-enhancement pass. The "ai" method is a
// heuristic sharpen/denoise sequence over standard resampling output, not a
// learned model, and callers must not present it as one.
package upscale

import (
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/glitchlab-io/go-effects/images"
)

// Method selects the resampling quality tier.
type Method string

const (
	// MethodLow is nearest-neighbor resampling.
	MethodLow Method = "low"
	// MethodMedium is bicubic resampling.
	MethodMedium Method = "medium"
	// MethodHigh is Lanczos3 resampling.
	MethodHigh Method = "high"
	// MethodAI is Lanczos3 resampling followed by the deterministic
	// two-pass edge-boost and denoise sequence.
	MethodAI Method = "ai"
)

// Enhancement constants for the MethodAI passes.
const (
	// edgeThreshold is the 4-neighbor absolute-difference strength above
	// which a channel is boosted.
	edgeThreshold = 12.0
	// edgeBoost scales the contrast push applied to boosted channels.
	edgeBoost = 0.35
	// denoiseMix is the weight of the 4-neighbor mean in the denoise
	// pass; each pixel keeps 1-denoiseMix of its own value.
	denoiseMix = 0.2
)

// IsUpscaling reports whether a resize enlarges the image: true iff either
// target dimension exceeds the corresponding original dimension.
func IsUpscaling(origW, origH, targetW, targetH int) bool {
	return targetW > origW || targetH > origH
}

// Upscale resizes an encoded image to the target dimensions.
//
// Arguments:
// - img: The encoded source image. Never mutated.
// - width: Target width in pixels. Must be positive.
// - height: Target height in pixels. Must be positive.
// - method: Resampling quality tier. An unknown method degrades to
//   MethodHigh rather than failing, matching the engine's parameter
//   policy.
//
// Returns:
// - A new PNG-encoded image at the target dimensions.
// - error on undecodable input or degenerate target geometry; no buffer is
//   allocated in the degenerate case.
func Upscale(img images.Image, width, height int, method Method) (images.Image, error) {
	if width <= 0 || height <= 0 {
		return images.Image{}, errors.Wrapf(images.ErrInvalidDimensions, "upscale: %dx%d", width, height)
	}

	buf, err := images.Decode(img)
	if err != nil {
		return images.Image{}, errors.Wrap(err, "upscale")
	}

	var filter resize.InterpolationFunction
	switch method {
	case MethodLow:
		filter = resize.NearestNeighbor
	case MethodMedium:
		filter = resize.Bicubic
	default: // MethodHigh, MethodAI, or anything unknown
		filter = resize.Lanczos3
	}

	resized := images.FromImage(resize.Resize(uint(width), uint(height), buf.RGBA(), filter))

	if method == MethodAI {
		enhanceEdges(resized)
		denoise(resized)
	}

	return images.Encode(resized, images.FormatPNG)
}

// enhanceEdges boosts channels whose 4-neighbor absolute difference
// exceeds a fixed threshold, sharpening resampled detail. Reads a snapshot
// so neighbor samples never see boosted values.
func enhanceEdges(buf *images.PixelBuffer) {
	snap := buf.Snapshot()
	w, h := buf.W, buf.H

	images.Parallel(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := snap.Index(x, y)
				var out [3]float64
				for c := 0; c < 3; c++ {
					v := float64(snap.Pix[i+c])
					mean, strength := neighborStats(snap, x, y, c)
					if strength > edgeThreshold {
						out[c] = v + (v-mean)*edgeBoost
					} else {
						out[c] = v
					}
				}
				buf.Set(x, y, out[0], out[1], out[2])
			}
		}
	})
}

// denoise blends each pixel with its 4-neighbor mean, keeping most of the
// original value. Reads a snapshot of the edge-boosted frame.
func denoise(buf *images.PixelBuffer) {
	snap := buf.Snapshot()
	w, h := buf.W, buf.H

	images.Parallel(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := snap.Index(x, y)
				var out [3]float64
				for c := 0; c < 3; c++ {
					v := float64(snap.Pix[i+c])
					mean, _ := neighborStats(snap, x, y, c)
					out[c] = v*(1-denoiseMix) + mean*denoiseMix
				}
				buf.Set(x, y, out[0], out[1], out[2])
			}
		}
	})
}

// neighborStats returns the mean of the four edge-clamped neighbors of one
// channel and the mean absolute difference from the center value.
func neighborStats(buf *images.PixelBuffer, x, y, c int) (mean, strength float64) {
	v := float64(buf.Pix[buf.Index(x, y)+c])

	var sum, diff float64
	neighbors := [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
	for _, n := range neighbors {
		nx := images.MapCoord(n[0], buf.W, images.ClampEdgeMode)
		ny := images.MapCoord(n[1], buf.H, images.ClampEdgeMode)
		nv := float64(buf.Pix[buf.Index(nx, ny)+c])
		sum += nv
		d := v - nv
		if d < 0 {
			d = -d
		}
		diff += d
	}
	return sum / 4, diff / 4
}
