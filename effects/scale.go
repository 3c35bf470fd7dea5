package effects

import "math"

// Reference frame for scaling-factor normalization. Raw parameter values
// are authored against a 1920x1080 canvas at 72 DPI; the factors below
// translate them to the actual image so an effect looks the same on a
// 200x200 thumbnail and a 4000x3000 photo.
const (
	// ReferenceWidth is the width of the reference frame.
	ReferenceWidth = 1920
	// ReferenceHeight is the height of the reference frame.
	ReferenceHeight = 1080
	// DefaultDPI is the nominal pixel density assumed for every image.
	// None of the supported containers carry real density metadata, so
	// the DPI factor stays at 1.0 until a calibration input exists.
	DefaultDPI = 72
)

// Metadata describes the geometry of a decoded image.
type Metadata struct {
	// Width is the image width in pixels.
	Width int
	// Height is the image height in pixels.
	Height int
	// DPI is the nominal pixel density. Zero means DefaultDPI.
	DPI float64
}

// Factors holds the resolution/DPI-normalized multipliers derived from an
// image's metadata. All five are strictly positive and all equal 1.0 at
// the reference resolution and DPI. They are computed fresh per effect
// call and never cached: images vary in size between calls.
type Factors struct {
	// Size scales per-pixel probabilities: sqrt of the pixel-count ratio,
	// so the areal density of stochastic artifacts stays constant.
	Size float64
	// DPI scales perceptual/contrast thresholds that should track print
	// density rather than pixel count.
	DPI float64
	// Combined is Size * DPI.
	Combined float64
	// Linear scales parameters defined in pixel units (block sizes,
	// shift distances): ratio of major dimensions.
	Linear float64
	// Min is the ratio of minor dimensions.
	Min float64
}

// ComputeFactors derives scaling factors from image metadata relative to
// the 1920x1080 @ 72 DPI reference. Pure function; width, height, and DPI
// are positive by construction of a decoded image, so no failure mode
// exists.
//
// Arguments:
// - meta: The image geometry. A zero DPI falls back to DefaultDPI.
//
// Returns:
// - The five scaling factors.
func ComputeFactors(meta Metadata) Factors {
	dpi := meta.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	w := float64(meta.Width)
	h := float64(meta.Height)

	size := math.Sqrt(w * h / (ReferenceWidth * ReferenceHeight))
	dpiScale := dpi / DefaultDPI

	return Factors{
		Size:     size,
		DPI:      dpiScale,
		Combined: size * dpiScale,
		Linear:   math.Max(w, h) / ReferenceWidth,
		Min:      math.Min(w, h) / ReferenceHeight,
	}
}
