// Package fractal combines several octaves of a base noise sampler into
// FBM, billow or ridged multifractal output.
package fractal

import (
	"fmt"

	"github.com/gogpu/noise/internal/primitive"
)

// Type selects how octaves are combined.
type Type uint8

const (
	// FBM sums amp·p per octave.
	FBM Type = iota

	// Billow sums (|p|·2 - 1)·amp per octave.
	Billow

	// RigidMulti sums weighted (1 - |p|)·amp per octave.
	RigidMulti
)

// Params is a fractal recipe. Octaves below one are treated as one.
type Params struct {
	Type       Type
	Octaves    int
	Lacunarity float32
	Gain       float32
	Bounding   float32
}

// Bounding returns the factor that keeps an FBM or billow sum of the given
// recipe inside the range of a single octave.
func Bounding(gain float32, octaves int) float32 {
	amp := gain
	ampFractal := float32(1)
	for i := 1; i < octaves; i++ {
		ampFractal += amp
		amp *= gain
	}
	return 1 / ampFractal
}

// New wraps base in the combinator selected by p.Type. Coordinates passed
// to the returned sampler are already frequency scaled; octave i evaluates
// base at p·lacunarity^i with seed+i.
func New(p Params, base primitive.Sampler) (primitive.Sampler, error) {
	octaves := max(p.Octaves, 1)
	switch p.Type {
	case FBM:
		return fbm(octaves, p.Lacunarity, p.Gain, p.Bounding, base), nil
	case Billow:
		return billow(octaves, p.Lacunarity, p.Gain, p.Bounding, base), nil
	case RigidMulti:
		return rigidMulti(octaves, p.Lacunarity, p.Gain, p.Bounding, base), nil
	}
	return nil, fmt.Errorf("fractal: unknown type %d", p.Type)
}

// scaled returns p with every axis multiplied by f.
func scaled(p primitive.Vec, f float32) primitive.Vec {
	return primitive.Vec{p[0] * f, p[1] * f, p[2] * f, p[3] * f}
}

func fbm(octaves int, lacunarity, gain, bounding float32, base primitive.Sampler) primitive.Sampler {
	return func(seed int32, p primitive.Vec) float32 {
		sum := base(seed, p)
		amp := float32(1)
		freq := float32(1)
		for i := 1; i < octaves; i++ {
			freq *= lacunarity
			amp *= gain
			sum += base(seed+int32(i), scaled(p, freq)) * amp
		}
		return sum * bounding
	}
}

func billow(octaves int, lacunarity, gain, bounding float32, base primitive.Sampler) primitive.Sampler {
	return func(seed int32, p primitive.Vec) float32 {
		sum := float32(0)
		amp := float32(1)
		freq := float32(1)
		for i := 0; i < octaves; i++ {
			v := base(seed+int32(i), scaled(p, freq))
			sum += (abs(v)*2 - 1) * amp
			freq *= lacunarity
			amp *= gain
		}
		return sum * bounding
	}
}

// rigidMulti weights each octave by the previous octave's ridge signal, so
// valleys stay smooth while ridges pick up detail. The sum is mapped from
// [0, 1] onto [-1, 1].
func rigidMulti(octaves int, lacunarity, gain, bounding float32, base primitive.Sampler) primitive.Sampler {
	return func(seed int32, p primitive.Vec) float32 {
		sum := float32(0)
		amp := float32(1)
		freq := float32(1)
		weight := float32(1)
		for i := 0; i < octaves; i++ {
			signal := 1 - abs(base(seed+int32(i), scaled(p, freq)))
			sum += signal * amp * weight
			weight = min(max(signal, 0), 1)
			freq *= lacunarity
			amp *= gain
		}
		return sum*bounding*2 - 1
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
