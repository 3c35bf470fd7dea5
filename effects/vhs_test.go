package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroParams returns a parameter map with every numeric artifact amount at
// zero, isolating single passes in the stochastic family.
func zeroParams(e *Effect) Params {
	p := make(Params, len(e.Params))
	for _, info := range e.Params {
		if info.Kind == KindNumber {
			p[info.Name] = 0
		}
	}
	return p
}

// TestVHSScanlinesOnly isolates the deterministic scanline pass: on a
// small frame the line pitch floors at two, darkening even rows by the
// fixed factor and leaving odd rows alone.
func TestVHSScanlinesOnly(t *testing.T) {
	e, err := Lookup("vhs")
	require.NoError(t, err)

	params := zeroParams(e)
	params["scanlines"] = 100

	out, err := ApplyWithOptions("vhs", solidImage(t, 20, 20, 100, 100, 100), params, Options{Seed: 1})
	require.NoError(t, err)
	buf := decodeOutput(t, out)

	for y := 0; y < 20; y++ {
		r, _, _, _ := buf.At(5, y)
		if y%2 == 0 {
			assert.Equal(t, uint8(65), r, "even row %d darkened by the scanline factor", y)
		} else {
			assert.Equal(t, uint8(100), r, "odd row %d untouched", y)
		}
	}
}

// TestStochasticZeroAmountsIdentity validates that every stochastic effect
// with all artifact amounts at zero passes the frame through unchanged.
func TestStochasticZeroAmountsIdentity(t *testing.T) {
	src := gradientImage(t, 24, 24)
	for id := range stochasticIDs {
		e, err := Lookup(id)
		require.NoError(t, err)

		out, err := ApplyWithOptions(id, src, zeroParams(e), Options{Seed: 1})
		require.NoError(t, err, id)
		assert.Equal(t, decodeOutput(t, src).Pix, decodeOutput(t, out).Pix, "%s with zero amounts should be identity", id)
	}
}

// TestFilmVignetteDarkensCorners isolates the radial falloff: the frame
// center keeps its value while corners darken.
func TestFilmVignetteDarkensCorners(t *testing.T) {
	e, err := Lookup("film")
	require.NoError(t, err)

	params := zeroParams(e)
	params["vignette"] = 100

	out, err := ApplyWithOptions("film", solidImage(t, 21, 21, 180, 180, 180), params, Options{Seed: 1})
	require.NoError(t, err)
	buf := decodeOutput(t, out)

	// The geometric center pixel sits half a pixel off the exact center,
	// so it loses a sliver to the falloff.
	center, _, _, _ := buf.At(10, 10)
	corner, _, _, _ := buf.At(0, 0)
	assert.InDelta(t, 180, float64(center), 12, "center keeps most of its value")
	assert.Less(t, corner, uint8(20), "corner darkens toward black")
}

// TestFilmFadeWashesCorners is the falloff's twin: fade pulls corners
// toward paper white while the center stays put.
func TestFilmFadeWashesCorners(t *testing.T) {
	e, err := Lookup("film")
	require.NoError(t, err)

	params := zeroParams(e)
	params["fade"] = 100

	out, err := ApplyWithOptions("film", solidImage(t, 21, 21, 50, 50, 50), params, Options{Seed: 1})
	require.NoError(t, err)
	buf := decodeOutput(t, out)

	center, _, _, _ := buf.At(10, 10)
	cr, cg, cb, _ := buf.At(0, 0)
	assert.InDelta(t, 50, float64(center), 12, "center keeps most of its value")
	assert.Equal(t, [3]uint8{235, 228, 215}, [3]uint8{cr, cg, cb}, "corner fades fully to paper tone")
}

// TestVHSNoiseTypesDiverge validates that the four noise variants actually
// produce different output under one seed.
func TestVHSNoiseTypesDiverge(t *testing.T) {
	e, err := Lookup("vhs")
	require.NoError(t, err)

	src := solidImage(t, 48, 48, 128, 128, 128)
	outputs := make(map[string]bool)
	for _, noiseType := range []int{NoiseWhite, NoiseLuma, NoiseChroma, NoiseSaltPepper} {
		params := zeroParams(e)
		params["noise"] = 100
		params["noisetype"] = noiseType

		out, err := ApplyWithOptions("vhs", src, params, Options{Seed: 99})
		require.NoError(t, err)
		outputs[string(out.Data)] = true
	}
	assert.Len(t, outputs, 4, "each noise type should produce distinct output")
}
