package noise

import (
	"fmt"

	"github.com/gogpu/noise/internal/cellular"
	"github.com/gogpu/noise/internal/fractal"
	"github.com/gogpu/noise/internal/primitive"
	"github.com/gogpu/noise/internal/warp"
)

// kernel evaluates one compiled configuration at an unscaled coordinate.
type kernel func(p primitive.Vec) float32

// supportsDims reports whether family t is defined in dims dimensions.
func supportsDims(t NoiseType, dims int) bool {
	switch t {
	case NoiseSimplex, NoiseWhite:
		return dims >= 2 && dims <= 4
	case NoiseValue, NoiseValueFractal, NoisePerlin, NoisePerlinFractal, NoiseSimplexFractal, NoiseCellular:
		return dims == 2 || dims == 3
	}
	return false
}

// validate rejects enum values outside their declared range.
func (s *Snapshot) validate() error {
	switch {
	case s.Interp > InterpQuintic:
		return fmt.Errorf("%w: interp %d", ErrUnknownEnum, s.Interp)
	case s.NoiseType > NoiseWhite:
		return fmt.Errorf("%w: noise type %d", ErrUnknownEnum, s.NoiseType)
	case s.FractalType > FractalRigidMulti:
		return fmt.Errorf("%w: fractal type %d", ErrUnknownEnum, s.FractalType)
	case s.CellularDistanceFunction > DistanceNatural:
		return fmt.Errorf("%w: cellular distance function %d", ErrUnknownEnum, s.CellularDistanceFunction)
	case s.CellularReturnType > ReturnDistance2Div:
		return fmt.Errorf("%w: cellular return type %d", ErrUnknownEnum, s.CellularReturnType)
	case s.PerturbType > PerturbFractal:
		return fmt.Errorf("%w: perturb type %d", ErrUnknownEnum, s.PerturbType)
	}
	return nil
}

func (s *Snapshot) fractalParams() fractal.Params {
	return fractal.Params{
		Type:       fractal.Type(s.FractalType),
		Octaves:    s.FractalOctaves,
		Lacunarity: s.FractalLacunarity,
		Gain:       s.FractalGain,
		Bounding:   s.FractalBounding,
	}
}

// compile resolves family, dimensionality, fractal type, warp type and
// cellular return type once and returns a kernel that only does arithmetic.
// The kernel scales by the frequency, applies the warp and then samples.
func compile(s *Snapshot, family NoiseType, dims int) (kernel, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if family > NoiseWhite {
		return nil, fmt.Errorf("%w: noise type %d", ErrUnknownEnum, family)
	}
	if !supportsDims(family, dims) {
		return nil, fmt.Errorf("%w: %v in %dD", ErrUnsupportedDims, family, dims)
	}
	sample, err := samplerFor(s, family, dims)
	if err != nil {
		return nil, err
	}
	perturb, err := warp.New(warp.Type(s.PerturbType), dims, primitive.CurveFor(primitive.Interp(s.Interp)), s.PerturbAmp, s.fractalParams())
	if err != nil {
		return nil, err
	}

	seed, freq := s.Seed, s.Frequency
	if perturb == nil {
		return func(p primitive.Vec) float32 {
			return sample(seed, scaled(p, freq))
		}, nil
	}
	return func(p primitive.Vec) float32 {
		return sample(seed, perturb(seed, scaled(p, freq)))
	}, nil
}

func scaled(p primitive.Vec, f float32) primitive.Vec {
	return primitive.Vec{p[0] * f, p[1] * f, p[2] * f, p[3] * f}
}

func samplerFor(s *Snapshot, family NoiseType, dims int) (primitive.Sampler, error) {
	curve := primitive.CurveFor(primitive.Interp(s.Interp))
	switch family {
	case NoiseValue:
		return primitive.Value(dims, curve)
	case NoiseValueFractal:
		return withFractal(s)(primitive.Value(dims, curve))
	case NoisePerlin:
		return primitive.Perlin(dims, curve)
	case NoisePerlinFractal:
		return withFractal(s)(primitive.Perlin(dims, curve))
	case NoiseSimplex:
		return primitive.Simplex(dims)
	case NoiseSimplexFractal:
		return withFractal(s)(primitive.Simplex(dims))
	case NoiseCellular:
		return cellularSampler(s, dims)
	case NoiseWhite:
		return primitive.White(dims)
	}
	return nil, fmt.Errorf("%w: noise type %d", ErrUnknownEnum, family)
}

func withFractal(s *Snapshot) func(primitive.Sampler, error) (primitive.Sampler, error) {
	return func(base primitive.Sampler, err error) (primitive.Sampler, error) {
		if err != nil {
			return nil, err
		}
		return fractal.New(s.fractalParams(), base)
	}
}

// cellularSampler builds the resolver. For ReturnNoiseLookup the lookup
// snapshot is compiled here as its generic family, so the per-point path
// calls straight into it.
func cellularSampler(s *Snapshot, dims int) (primitive.Sampler, error) {
	var lookup cellular.Lookup
	if s.CellularReturnType == ReturnNoiseLookup {
		switch {
		case s.lookupCycle:
			return nil, ErrLookupCycle
		case s.lookup == nil:
			return nil, ErrMissingLookup
		}
		k, err := compile(s.lookup, s.lookup.NoiseType, dims)
		if err != nil {
			return nil, fmt.Errorf("cellular lookup: %w", err)
		}
		lookup = cellular.Lookup(k)
	}
	return cellular.New(dims, cellular.Metric(s.CellularDistanceFunction), cellular.Return(s.CellularReturnType), lookup)
}
