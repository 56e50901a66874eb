package primitive

import (
	"errors"
	"fmt"
)

// ErrDims reports a family asked for a dimensionality it does not define.
var ErrDims = errors.New("primitive: unsupported dimensionality")

// Vec holds up to four coordinates. Axes beyond the sampler's
// dimensionality are ignored.
type Vec [4]float32

// IntVec holds up to four integer lattice coordinates.
type IntVec [4]int32

// Sampler evaluates one noise function at p for a seed.
type Sampler func(seed int32, p Vec) float32

// IntSampler evaluates one noise function at an integer lattice point.
type IntSampler func(seed int32, p IntVec) float32

func dimsError(family string, dims int) error {
	return fmt.Errorf("%w: %s in %dD", ErrDims, family, dims)
}

// Value returns the value-noise sampler for dims (2, 3 or 4).
func Value(dims int, curve Curve) (Sampler, error) {
	switch dims {
	case 2:
		return func(seed int32, p Vec) float32 { return Value2(seed, p[0], p[1], curve) }, nil
	case 3:
		return func(seed int32, p Vec) float32 { return Value3(seed, p[0], p[1], p[2], curve) }, nil
	case 4:
		return func(seed int32, p Vec) float32 { return Value4(seed, p[0], p[1], p[2], p[3], curve) }, nil
	}
	return nil, dimsError("value", dims)
}

// Perlin returns the gradient-noise sampler for dims (2 or 3).
func Perlin(dims int, curve Curve) (Sampler, error) {
	switch dims {
	case 2:
		return func(seed int32, p Vec) float32 { return Perlin2(seed, p[0], p[1], curve) }, nil
	case 3:
		return func(seed int32, p Vec) float32 { return Perlin3(seed, p[0], p[1], p[2], curve) }, nil
	}
	return nil, dimsError("perlin", dims)
}

// Simplex returns the simplex sampler for dims (2, 3 or 4).
func Simplex(dims int) (Sampler, error) {
	switch dims {
	case 2:
		return func(seed int32, p Vec) float32 { return Simplex2(seed, p[0], p[1]) }, nil
	case 3:
		return func(seed int32, p Vec) float32 { return Simplex3(seed, p[0], p[1], p[2]) }, nil
	case 4:
		return func(seed int32, p Vec) float32 { return Simplex4(seed, p[0], p[1], p[2], p[3]) }, nil
	}
	return nil, dimsError("simplex", dims)
}

// White returns the white-noise sampler for dims (2, 3 or 4).
func White(dims int) (Sampler, error) {
	switch dims {
	case 2:
		return func(seed int32, p Vec) float32 { return White2(seed, p[0], p[1]) }, nil
	case 3:
		return func(seed int32, p Vec) float32 { return White3(seed, p[0], p[1], p[2]) }, nil
	case 4:
		return func(seed int32, p Vec) float32 { return White4(seed, p[0], p[1], p[2], p[3]) }, nil
	}
	return nil, dimsError("white", dims)
}

// WhiteInt returns the integer white-noise sampler for dims (2, 3 or 4).
func WhiteInt(dims int) (IntSampler, error) {
	switch dims {
	case 2:
		return func(seed int32, p IntVec) float32 { return WhiteInt2(seed, p[0], p[1]) }, nil
	case 3:
		return func(seed int32, p IntVec) float32 { return WhiteInt3(seed, p[0], p[1], p[2]) }, nil
	case 4:
		return func(seed int32, p IntVec) float32 { return WhiteInt4(seed, p[0], p[1], p[2], p[3]) }, nil
	}
	return nil, dimsError("white int", dims)
}
