// Package images - encoded image container, pixel buffer model, and the
// decode/encode boundary used by every effect in the engine. Effects never
// construct pixel buffers from arbitrary byte layouts; they always go through
// Decode and Encode.
package images

import (
	"bytes"

	"github.com/pkg/errors"
)

// ImageFormat represents supported image formats.
type ImageFormat string

// ImageFormat constants.
const (
	// FormatPNG is the PNG image format. PNG is the engine's lossless
	// container: decode followed by encode preserves the pixel buffer
	// byte for byte.
	FormatPNG ImageFormat = "png"
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatWebP is the WebP image format.
	FormatWebP ImageFormat = "webp"
)

// Image represents an encoded raster with a format, data, width, and height.
type Image struct {
	// The format of the image.
	Format ImageFormat `json:"format" yaml:"format"`
	// The encoded bytes of the image.
	Data []byte `json:"data" yaml:"data"`
	// The width of the image in pixels.
	Width int `json:"width" yaml:"width"`
	// The height of the image in pixels.
	Height int `json:"height" yaml:"height"`
}

// Errors returned by the codec boundary.
var (
	// ErrEmptyData is returned when an image carries no encoded bytes.
	ErrEmptyData = errors.New("images: empty image data")
	// ErrInvalidDimensions is returned for zero or negative geometry.
	ErrInvalidDimensions = errors.New("images: invalid dimensions")
	// ErrUnknownFormat is returned when the encoded bytes match no
	// supported container signature.
	ErrUnknownFormat = errors.New("images: unknown image format")
)

// Magic-byte prefixes used by SniffFormat.
var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xFF, 0xD8}
	riffMagic = []byte("RIFF")
	webpMagic = []byte("WEBP")
)

// SniffFormat detects the container format from the leading bytes of an
// encoded image.
//
// Arguments:
// - data: The encoded image bytes.
//
// Returns:
// - The detected ImageFormat.
// - ErrUnknownFormat if no supported signature matches.
func SniffFormat(data []byte) (ImageFormat, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG, nil
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG, nil
	case bytes.HasPrefix(data, riffMagic) && len(data) >= 12 && bytes.Equal(data[8:12], webpMagic):
		return FormatWebP, nil
	default:
		return "", ErrUnknownFormat
	}
}
