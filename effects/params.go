// Package effects - the effect-processing engine: parameter schemas, the
// dimension/DPI-aware scaling calculator, the effect registry, and the
// algorithm families. Every effect is a pure function of (image, parameters)
// applied to a decoded pixel buffer; no state survives between calls.
package effects

import (
	"strconv"
	"strings"
)

// ParamKind describes the kind of input control for an effect parameter.
type ParamKind string

const (
	// KindNumber is a continuous numeric parameter with a min/max range.
	KindNumber ParamKind = "number"
	// KindSelect is a discrete parameter with enumerated integer options.
	KindSelect ParamKind = "select"
	// KindColor is a hex RGB triplet parameter ("#RRGGBB").
	KindColor ParamKind = "color"
)

// SelectOption is a single choice of a select parameter.
type SelectOption struct {
	// Value is the integer the engine receives.
	Value int `json:"value"`
	// Label is the human-readable name the UI renders.
	Label string `json:"label"`
}

// ParameterInfo describes one adjustable parameter for UI generation and
// boundary validation. Every effect declares its full parameter set; a
// missing caller value falls back to Default, never to zero.
type ParameterInfo struct {
	Name    string         `json:"name"`
	Label   string         `json:"label"`
	Kind    ParamKind      `json:"kind"`
	Min     float64        `json:"min,omitempty"`
	Max     float64        `json:"max,omitempty"`
	Default interface{}    `json:"default"`
	Options []SelectOption `json:"options,omitempty"` // For select kind.
}

// Params is the raw caller-supplied parameter map. Values may be numbers
// (any Go numeric type) or strings; resolution against the schema converts,
// defaults, and clamps them.
type Params map[string]interface{}

// Resolved provides typed, validated access to an effect's parameters.
// Out-of-range values are clamped to the declared range and unknown select
// options snap to the nearest declared option; parameter problems never
// fail an effect call.
type Resolved struct {
	values map[string]float64
	colors map[string][3]uint8
}

// ResolveParams validates a raw parameter map against a schema.
//
// Arguments:
// - schema: The effect's declared parameter set.
// - raw: The caller-supplied values. May be nil.
//
// Returns:
// - A Resolved view with every declared parameter present: supplied values
//   converted and clamped, missing ones at their defaults.
func ResolveParams(schema []ParameterInfo, raw Params) *Resolved {
	r := &Resolved{
		values: make(map[string]float64, len(schema)),
		colors: make(map[string][3]uint8),
	}

	for _, info := range schema {
		switch info.Kind {
		case KindColor:
			r.colors[info.Name] = resolveColor(info, raw[info.Name])
		case KindSelect:
			r.values[info.Name] = resolveSelect(info, raw[info.Name])
		default:
			r.values[info.Name] = resolveNumber(info, raw[info.Name])
		}
	}

	return r
}

// Float returns the resolved value of a numeric or select parameter.
func (r *Resolved) Float(name string) float64 {
	return r.values[name]
}

// Int returns the resolved value of a numeric or select parameter truncated
// to an integer.
func (r *Resolved) Int(name string) int {
	return int(r.values[name])
}

// Color returns the resolved channels of a color parameter.
func (r *Resolved) Color(name string) (cr, cg, cb uint8) {
	c := r.colors[name]
	return c[0], c[1], c[2]
}

// resolveNumber converts and clamps a continuous parameter.
func resolveNumber(info ParameterInfo, v interface{}) float64 {
	f, ok := toFloat(v)
	if !ok {
		f, _ = toFloat(info.Default)
	}
	if f < info.Min {
		f = info.Min
	}
	if f > info.Max {
		f = info.Max
	}
	return f
}

// resolveSelect snaps a discrete parameter to the nearest declared option.
// Ties resolve to the earlier option in declaration order.
func resolveSelect(info ParameterInfo, v interface{}) float64 {
	f, ok := toFloat(v)
	if !ok {
		f, _ = toFloat(info.Default)
	}
	if len(info.Options) == 0 {
		return f
	}

	best := info.Options[0].Value
	bestDist := -1.0
	for _, opt := range info.Options {
		d := f - float64(opt.Value)
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best = opt.Value
			bestDist = d
		}
	}
	return float64(best)
}

// resolveColor parses a hex triplet, falling back to the declared default.
func resolveColor(info ParameterInfo, v interface{}) [3]uint8 {
	if s, ok := v.(string); ok {
		if c, err := ParseHexColor(s); err == nil {
			return c
		}
	}
	def, _ := info.Default.(string)
	c, err := ParseHexColor(def)
	if err != nil {
		return [3]uint8{}
	}
	return c
}

// ParseHexColor parses a "#RRGGBB" hex triplet. The leading "#" is
// optional and parsing is case-insensitive.
//
// Arguments:
// - s: The hex string to parse.
//
// Returns:
// - The RGB channels.
// - error if the string is not a six-digit hex triplet.
func ParseHexColor(s string) ([3]uint8, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return [3]uint8{}, strconv.ErrSyntax
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]uint8{}, err
	}
	return [3]uint8{uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

// toFloat converts the numeric and numeric-string shapes a caller map can
// carry. JSON decoding hands the engine float64, UI sliders may hand int,
// and query-style callers hand strings.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
