package effects

import (
	"math/rand"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/glitchlab-io/go-effects/images"
)

// ErrUnknownEffect is returned when an effect identifier is not registered.
var ErrUnknownEffect = errors.New("effects: unknown effect")

// applyFunc runs one algorithm over a decoded buffer. The buffer is
// exclusively owned by the call; rng is only consulted by stochastic
// families and is nil-safe for the deterministic ones.
type applyFunc func(buf *images.PixelBuffer, p *Resolved, f Factors, rng *rand.Rand, parallel bool)

// Effect is one registered effect definition: identifier, human label, the
// declared parameter schema the UI renders controls from, and the
// implementation.
type Effect struct {
	// ID is the stable effect identifier callers dispatch on.
	ID string `json:"id"`
	// Label is the human-readable effect name.
	Label string `json:"label"`
	// Params is the full declared parameter set.
	Params []ParameterInfo `json:"params"`

	apply applyFunc
}

// Options tunes a single effect invocation.
type Options struct {
	// Seed seeds the random generator for stochastic effects. Zero means
	// time-seeded; any fixed value makes the output deterministic.
	Seed int64
	// Parallel enables row-parallel sweeps for the families that only
	// read a frozen snapshot (convolution, quantization, tone mapping).
	// Sequential algorithms ignore it.
	Parallel bool
}

// registry maps effect identifiers to definitions. Populated by the
// family files' init functions.
var registry = make(map[string]*Effect)

func register(e *Effect) {
	registry[e.ID] = e
}

// Lookup returns the effect registered under the given identifier.
//
// Arguments:
// - id: The effect identifier.
//
// Returns:
// - The effect definition.
// - ErrUnknownEffect if no effect is registered under id.
func Lookup(id string) (*Effect, error) {
	e, ok := registry[id]
	if !ok {
		return nil, errors.Wrap(ErrUnknownEffect, id)
	}
	return e, nil
}

// List returns all registered effect definitions sorted by identifier.
// This is the registry surface the UI layer renders controls from; the
// engine has no opinion on presentation.
func List() []*Effect {
	out := make([]*Effect, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Apply runs a registered effect over an encoded image with default
// options (time-seeded randomness, serial sweeps).
//
// Arguments:
// - id: The effect identifier.
// - img: The encoded source image. Never mutated; the engine decodes into
//   an owned buffer.
// - params: Raw parameter values. Missing parameters use their declared
//   defaults, out-of-range values are clamped.
//
// Returns:
// - A new PNG-encoded image.
// - error on unknown effect, undecodable input, or degenerate geometry.
//   Parameter problems never fail the call.
func Apply(id string, img images.Image, params Params) (images.Image, error) {
	return ApplyWithOptions(id, img, params, Options{})
}

// ApplyWithOptions runs a registered effect with explicit options.
// See Apply for the contract.
func ApplyWithOptions(id string, img images.Image, params Params, opts Options) (images.Image, error) {
	effect, err := Lookup(id)
	if err != nil {
		return images.Image{}, err
	}

	buf, err := images.Decode(img)
	if err != nil {
		return images.Image{}, errors.Wrapf(err, "effects: %s", id)
	}

	resolved := ResolveParams(effect.Params, params)
	factors := ComputeFactors(Metadata{Width: buf.W, Height: buf.H})

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logrus.WithFields(logrus.Fields{
		"effect": id,
		"width":  buf.W,
		"height": buf.H,
	}).Debug("applying effect")

	effect.apply(buf, resolved, factors, rng, opts.Parallel)

	return images.Encode(buf, images.FormatPNG)
}

// sweep runs fn over [0, n) rows, partitioned across cores when the caller
// opted in. Only families that read a frozen snapshot use it.
func sweep(parallel bool, n int, fn func(start, end int)) {
	if parallel {
		images.Parallel(n, fn)
		return
	}
	fn(0, n)
}

// luma returns the perceptual luminance of a pixel using the ITU-R BT.601
// weights 0.299/0.587/0.114. Every effect that branches on brightness uses
// this one weighting; mixing weightings inside an effect produces visible
// banding at the decision boundary.
func luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
