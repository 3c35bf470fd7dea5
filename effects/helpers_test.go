package effects

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glitchlab-io/go-effects/images"
)

// newBuffer builds a pixel buffer filled with one opaque color.
func newBuffer(t *testing.T, w, h int, r, g, b uint8) *images.PixelBuffer {
	t.Helper()
	buf, err := images.NewPixelBuffer(w, h)
	require.NoError(t, err, "allocating %dx%d buffer", w, h)
	for i := 0; i < w*h; i++ {
		buf.Pix[i*4] = r
		buf.Pix[i*4+1] = g
		buf.Pix[i*4+2] = b
		buf.Pix[i*4+3] = 255
	}
	return buf
}

// encodeTestImage encodes a buffer into the engine's PNG container.
func encodeTestImage(t *testing.T, buf *images.PixelBuffer) images.Image {
	t.Helper()
	img, err := images.Encode(buf, images.FormatPNG)
	require.NoError(t, err, "encoding test image")
	return img
}

// solidImage builds an encoded solid-color test image.
func solidImage(t *testing.T, w, h int, r, g, b uint8) images.Image {
	t.Helper()
	return encodeTestImage(t, newBuffer(t, w, h, r, g, b))
}

// gradientImage builds an encoded image with per-pixel varying content so
// stochastic and spatial effects have structure to work on.
func gradientImage(t *testing.T, w, h int) images.Image {
	t.Helper()
	buf, err := images.NewPixelBuffer(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.Index(x, y)
			buf.Pix[i] = uint8(x * 255 / w)
			buf.Pix[i+1] = uint8(y * 255 / h)
			buf.Pix[i+2] = uint8((x + y) * 255 / (w + h))
			buf.Pix[i+3] = 255
		}
	}
	return encodeTestImage(t, buf)
}

// decodeOutput decodes an engine result back into a pixel buffer.
func decodeOutput(t *testing.T, img images.Image) *images.PixelBuffer {
	t.Helper()
	buf, err := images.Decode(img)
	require.NoError(t, err, "decoding engine output")
	return buf
}

// NewTestSplitBuffer builds a buffer whose left half is red and right half
// is blue, giving block-averaging something to mix.
func NewTestSplitBuffer(w, h int) (*images.PixelBuffer, error) {
	buf, err := images.NewPixelBuffer(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := buf.Index(x, y)
			if x < w/2 {
				buf.Pix[i] = 200
			} else {
				buf.Pix[i+2] = 200
			}
			buf.Pix[i+3] = 255
		}
	}
	return buf, nil
}

// imagesImageFromBytes wraps raw bytes in the encoded-image container.
func imagesImageFromBytes(data []byte) images.Image {
	return images.Image{Data: data}
}

// maxParams builds the most aggressive legal parameter map for an effect:
// numbers at Max, selects at their highest option, colors at white.
func maxParams(e *Effect) Params {
	p := make(Params, len(e.Params))
	for _, info := range e.Params {
		switch info.Kind {
		case KindColor:
			p[info.Name] = "#FFFFFF"
		case KindSelect:
			best := 0
			for _, o := range info.Options {
				if o.Value > best {
					best = o.Value
				}
			}
			p[info.Name] = best
		default:
			p[info.Name] = info.Max
		}
	}
	return p
}
