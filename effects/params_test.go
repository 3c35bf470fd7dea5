package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = []ParameterInfo{
	{Name: "amount", Label: "Amount", Kind: KindNumber, Min: 0, Max: 100, Default: 40.0},
	{Name: "mode", Label: "Mode", Kind: KindSelect, Default: 0, Options: []SelectOption{
		{Value: 0, Label: "A"},
		{Value: 1, Label: "B"},
		{Value: 4, Label: "C"},
	}},
	{Name: "tint", Label: "Tint", Kind: KindColor, Default: "#102030"},
}

// TestResolveDefaults validates that a nil parameter map resolves every
// declared parameter to its default, never to zero.
func TestResolveDefaults(t *testing.T) {
	r := ResolveParams(testSchema, nil)

	assert.Equal(t, 40.0, r.Float("amount"), "missing number should default")
	assert.Equal(t, 0, r.Int("mode"), "missing select should default")

	cr, cg, cb := r.Color("tint")
	assert.Equal(t, uint8(0x10), cr)
	assert.Equal(t, uint8(0x20), cg)
	assert.Equal(t, uint8(0x30), cb)
}

// TestResolveClampsOutOfRange validates the silent-correction policy for
// out-of-range numbers.
func TestResolveClampsOutOfRange(t *testing.T) {
	r := ResolveParams(testSchema, Params{"amount": 250.0})
	assert.Equal(t, 100.0, r.Float("amount"), "above max should clamp to max")

	r = ResolveParams(testSchema, Params{"amount": -5})
	assert.Equal(t, 0.0, r.Float("amount"), "below min should clamp to min")
}

// TestResolveSelectSnapsToNearest validates that unknown discrete options
// snap to the nearest declared value, ties to the earlier option.
func TestResolveSelectSnapsToNearest(t *testing.T) {
	r := ResolveParams(testSchema, Params{"mode": 9})
	assert.Equal(t, 4, r.Int("mode"), "9 should snap to 4")

	r = ResolveParams(testSchema, Params{"mode": 3})
	assert.Equal(t, 4, r.Int("mode"), "3 is nearer to 4 than to 1")

	// 2 is equidistant from 1 and 4; earlier declaration wins.
	r = ResolveParams(testSchema, Params{"mode": 2})
	assert.Equal(t, 1, r.Int("mode"), "equidistant value should take the earlier option")
}

// TestResolveAcceptsStringNumbers validates the CLI/query-style string
// input shape.
func TestResolveAcceptsStringNumbers(t *testing.T) {
	r := ResolveParams(testSchema, Params{"amount": "62.5"})
	assert.Equal(t, 62.5, r.Float("amount"))

	r = ResolveParams(testSchema, Params{"amount": "not a number"})
	assert.Equal(t, 40.0, r.Float("amount"), "unparseable string should default")
}

// TestResolveColorFallsBack validates invalid hex input falling back to the
// declared default.
func TestResolveColorFallsBack(t *testing.T) {
	r := ResolveParams(testSchema, Params{"tint": "#XYZZY"})
	cr, cg, cb := r.Color("tint")
	assert.Equal(t, [3]uint8{0x10, 0x20, 0x30}, [3]uint8{cr, cg, cb}, "bad hex should default")
}

// TestParseHexColor validates hex triplet parsing shapes.
func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF6A00")
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{0xFF, 0x6A, 0x00}, c)

	c, err = ParseHexColor("0080ff")
	require.NoError(t, err, "leading # should be optional")
	assert.Equal(t, [3]uint8{0x00, 0x80, 0xFF}, c)

	_, err = ParseHexColor("#FFF")
	assert.Error(t, err, "short form is not supported")

	_, err = ParseHexColor("")
	assert.Error(t, err)
}
