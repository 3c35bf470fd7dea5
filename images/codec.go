package images

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
)

// jpegQuality is the fixed quality used when re-encoding JPEG output.
// Target-size quality search lives in the export layer, not here.
const jpegQuality = 92

// Decode decodes an encoded image into a freshly allocated pixel buffer.
// The returned buffer never aliases the caller's bytes; mutating it cannot
// affect the input image.
//
// Arguments:
// - img: The encoded image. Format is sniffed from the data, the declared
//   Format field is not trusted.
//
// Returns:
// - The decoded pixel buffer.
// - error: ErrEmptyData, ErrUnknownFormat, or a wrapped decoder error. No
//   partial buffer is ever returned.
func Decode(img Image) (*PixelBuffer, error) {
	if len(img.Data) == 0 {
		return nil, ErrEmptyData
	}

	format, err := SniffFormat(img.Data)
	if err != nil {
		return nil, err
	}

	var decoded image.Image
	switch format {
	case FormatPNG:
		decoded, err = png.Decode(bytes.NewReader(img.Data))
	case FormatJPEG:
		decoded, err = jpeg.Decode(bytes.NewReader(img.Data))
	case FormatWebP:
		decoded, err = webp.Decode(bytes.NewReader(img.Data))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "images: decoding %s", format)
	}

	return FromImage(decoded), nil
}

// Encode encodes a pixel buffer into the given container format.
//
// Arguments:
// - buf: The pixel buffer to encode.
// - format: Target container. FormatPNG is lossless; JPEG and WebP are
//   encoded at a fixed quality.
//
// Returns:
// - The encoded image with dimensions filled in.
// - error: ErrInvalidDimensions for degenerate buffers, or a wrapped
//   encoder error.
func Encode(buf *PixelBuffer, format ImageFormat) (Image, error) {
	if buf == nil || buf.W <= 0 || buf.H <= 0 {
		return Image{}, ErrInvalidDimensions
	}

	rgba := buf.RGBA()

	var out bytes.Buffer
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(&out, rgba)
	case FormatJPEG:
		err = jpeg.Encode(&out, rgba, &jpeg.Options{Quality: jpegQuality})
	case FormatWebP:
		err = webp.Encode(&out, rgba, &webp.Options{Lossless: true})
	default:
		return Image{}, ErrUnknownFormat
	}
	if err != nil {
		return Image{}, errors.Wrapf(err, "images: encoding %s", format)
	}

	return Image{
		Format: format,
		Data:   out.Bytes(),
		Width:  buf.W,
		Height: buf.H,
	}, nil
}

// FromImage copies a Go-native image into a pixel buffer. Non-RGBA color
// models are converted through image/draw.
func FromImage(src image.Image) *PixelBuffer {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	rgba, ok := src.(*image.RGBA)
	if !ok || bounds.Min != image.Pt(0, 0) {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	}

	// Defensive copy: the caller may retain the source image.
	pix := make([]uint8, w*h*4)
	if rgba.Stride == w*4 {
		copy(pix, rgba.Pix)
	} else {
		for y := 0; y < h; y++ {
			copy(pix[y*w*4:(y+1)*w*4], rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
		}
	}

	return &PixelBuffer{Pix: pix, W: w, H: h}
}

// RGBA returns a Go-native view of the buffer for interop with resampling
// and encoding. The returned image shares the buffer's pixel storage.
func (p *PixelBuffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    p.Pix,
		Stride: p.W * 4,
		Rect:   image.Rect(0, 0, p.W, p.H),
	}
}
