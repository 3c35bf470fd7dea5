package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBlendBoundaryValues validates the division-by-zero modes at their
// saturating endpoints: dodge with a full source channel and burn with a
// zero source channel must clamp, never divide.
func TestBlendBoundaryValues(t *testing.T) {
	for base := 0.0; base <= 255; base += 51 {
		assert.Equal(t, 255.0, blendChannel(base, 255, BlendColorDodge), "dodge at source 255, base %g", base)
		assert.Equal(t, 0.0, blendChannel(base, 0, BlendColorBurn), "burn at source 0, base %g", base)
	}
}

// TestBlendFormulas validates the standard per-channel formulas at easy
// inputs.
func TestBlendFormulas(t *testing.T) {
	assert.Equal(t, 200.0, blendChannel(37, 200, BlendNormal))
	assert.InDelta(t, 100.0, blendChannel(127.5, 200, BlendMultiply), 0.01)
	assert.Equal(t, 255.0, blendChannel(255, 128, BlendScreen))
	assert.Equal(t, 0.0, blendChannel(0, 128, BlendMultiply))
	assert.Equal(t, 40.0, blendChannel(40, 90, BlendDarken))
	assert.Equal(t, 90.0, blendChannel(40, 90, BlendLighten))
	assert.Equal(t, 50.0, blendChannel(40, 90, BlendDifference))
}

// TestColorOverlayDodgeOnWhiteSource validates the boundary end to end:
// a white overlay in dodge mode at full opacity must saturate every
// channel instead of producing NaN garbage.
func TestColorOverlayDodgeOnWhiteSource(t *testing.T) {
	src := gradientImage(t, 16, 16)
	out, err := Apply("coloroverlay", src, Params{
		"color":   "#FFFFFF",
		"mode":    BlendColorDodge,
		"opacity": 100,
	})
	require.NoError(t, err)

	buf := decodeOutput(t, out)
	for i := 0; i < len(buf.Pix); i += 4 {
		require.Equal(t, uint8(255), buf.Pix[i], "red must saturate")
		require.Equal(t, uint8(255), buf.Pix[i+1], "green must saturate")
		require.Equal(t, uint8(255), buf.Pix[i+2], "blue must saturate")
	}
}

// TestColorOverlayBurnOnBlackSource is the twin boundary: black overlay in
// burn mode crushes everything to zero.
func TestColorOverlayBurnOnBlackSource(t *testing.T) {
	src := gradientImage(t, 16, 16)
	out, err := Apply("coloroverlay", src, Params{
		"color":   "#000000",
		"mode":    BlendColorBurn,
		"opacity": 100,
	})
	require.NoError(t, err)

	buf := decodeOutput(t, out)
	for i := 0; i < len(buf.Pix); i += 4 {
		require.Equal(t, uint8(0), buf.Pix[i], "red must crush")
		require.Equal(t, uint8(0), buf.Pix[i+1], "green must crush")
		require.Equal(t, uint8(0), buf.Pix[i+2], "blue must crush")
	}
}

// TestColorOverlayZeroOpacityIdentity validates the opacity lerp at its
// identity endpoint.
func TestColorOverlayZeroOpacityIdentity(t *testing.T) {
	src := gradientImage(t, 12, 12)
	out, err := Apply("coloroverlay", src, Params{
		"color":   "#12AB34",
		"mode":    BlendMultiply,
		"opacity": 0,
	})
	require.NoError(t, err)
	assert.Equal(t, decodeOutput(t, src).Pix, decodeOutput(t, out).Pix)
}

// TestColorOverlayNormalFullOpacity validates the other lerp endpoint: the
// whole frame becomes the overlay color.
func TestColorOverlayNormalFullOpacity(t *testing.T) {
	src := gradientImage(t, 12, 12)
	out, err := Apply("coloroverlay", src, Params{
		"color":   "#4080C0",
		"mode":    BlendNormal,
		"opacity": 100,
	})
	require.NoError(t, err)

	buf := decodeOutput(t, out)
	for i := 0; i < len(buf.Pix); i += 4 {
		require.Equal(t, uint8(0x40), buf.Pix[i])
		require.Equal(t, uint8(0x80), buf.Pix[i+1])
		require.Equal(t, uint8(0xC0), buf.Pix[i+2])
	}
}

// TestSoftLightRange validates the W3C soft-light curve stays in [0,1].
func TestSoftLightRange(t *testing.T) {
	for b := 0.0; b <= 1.0; b += 0.05 {
		for s := 0.0; s <= 1.0; s += 0.05 {
			v := softLight(b, s)
			assert.GreaterOrEqual(t, v, 0.0, "softLight(%g,%g)", b, s)
			assert.LessOrEqual(t, v, 1.0, "softLight(%g,%g)", b, s)
		}
	}
}
