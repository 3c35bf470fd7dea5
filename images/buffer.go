package images

// PixelBuffer is a row-major RGBA pixel array, four 8-bit channels per
// pixel. It is the only pixel representation the effect functions operate
// on. A buffer is exclusively owned by the executing effect call for its
// duration; spatial and sequential effects must take a Snapshot before
// mutating so neighbor reads see the original frame.
type PixelBuffer struct {
	// Pix holds the pixel data in R, G, B, A order, length W*H*4.
	Pix []uint8
	// W is the width in pixels.
	W int
	// H is the height in pixels.
	H int
}

// NewPixelBuffer allocates a zeroed pixel buffer.
//
// Arguments:
// - width: Buffer width in pixels. Must be positive.
// - height: Buffer height in pixels. Must be positive.
//
// Returns:
// - The allocated buffer.
// - ErrInvalidDimensions for zero or negative geometry; no allocation is
//   performed in that case.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &PixelBuffer{
		Pix: make([]uint8, width*height*4),
		W:   width,
		H:   height,
	}, nil
}

// Index returns the offset of pixel (x, y) in Pix. Callers are expected to
// stay in bounds; this is the hot-loop accessor and does not range check.
func (p *PixelBuffer) Index(x, y int) int {
	return (y*p.W + x) * 4
}

// At returns the four channels of pixel (x, y).
func (p *PixelBuffer) At(x, y int) (r, g, b, a uint8) {
	i := p.Index(x, y)
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]
}

// Set stores the RGB channels of pixel (x, y), clamping each value to
// [0, 255]. Alpha is left unchanged. Every effect mutation funnels through
// clamped stores so no out-of-range intermediate can escape the buffer.
func (p *PixelBuffer) Set(x, y int, r, g, b float64) {
	i := p.Index(x, y)
	p.Pix[i] = ClampUint8(r)
	p.Pix[i+1] = ClampUint8(g)
	p.Pix[i+2] = ClampUint8(b)
}

// SetRGBA stores all four channels of pixel (x, y) with clamping.
func (p *PixelBuffer) SetRGBA(x, y int, r, g, b, a float64) {
	i := p.Index(x, y)
	p.Pix[i] = ClampUint8(r)
	p.Pix[i+1] = ClampUint8(g)
	p.Pix[i+2] = ClampUint8(b)
	p.Pix[i+3] = ClampUint8(a)
}

// Snapshot returns an immutable copy of the buffer taken before a spatial
// or sequential effect begins writing. Reading neighbors from the live
// buffer while mutating it produces directional smearing; every
// convolution, neighbor-sampling, and line-shift algorithm reads from a
// snapshot and writes into the live buffer.
func (p *PixelBuffer) Snapshot() *PixelBuffer {
	pix := make([]uint8, len(p.Pix))
	copy(pix, p.Pix)
	return &PixelBuffer{Pix: pix, W: p.W, H: p.H}
}
