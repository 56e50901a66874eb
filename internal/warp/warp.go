// Package warp displaces sample coordinates with auxiliary value noise
// before the primary noise function sees them.
package warp

import (
	"fmt"

	"github.com/gogpu/noise/internal/fractal"
	"github.com/gogpu/noise/internal/primitive"
)

// AmpScale is the empirical divisor applied to the configured amplitude so
// that the documented amplitude matches the perceived displacement.
const AmpScale float32 = 0.45

// Type selects the warp recipe.
type Type uint8

const (
	// None leaves coordinates untouched.
	None Type = iota

	// Single displaces with one octave per axis.
	Single

	// Fractal displaces with an FBM sum per axis.
	Fractal
)

// Func returns the displaced coordinate for p.
type Func func(seed int32, p primitive.Vec) primitive.Vec

// New builds the warp for dims axes. amp is the stored amplitude (already
// divided by AmpScale). It returns a nil Func for None.
func New(t Type, dims int, curve primitive.Curve, amp float32, fp fractal.Params) (Func, error) {
	if t == None {
		return nil, nil
	}
	disp, err := primitive.Value(dims, curve)
	if err != nil {
		return nil, fmt.Errorf("warp: %w", err)
	}
	switch t {
	case Single:
	case Fractal:
		fp.Type = fractal.FBM
		if disp, err = fractal.New(fp, disp); err != nil {
			return nil, fmt.Errorf("warp: %w", err)
		}
	default:
		return nil, fmt.Errorf("warp: unknown type %d", t)
	}
	return func(seed int32, p primitive.Vec) primitive.Vec {
		q := p
		for a := 0; a < dims; a++ {
			q[a] = p[a] + disp(AxisSeed(seed, a), p)*amp
		}
		return q
	}, nil
}

// AxisSeed decorrelates the displacement of each axis.
func AxisSeed(seed int32, axis int) int32 {
	return int32(uint32(seed) + uint32(axis+1)*0x9e3779b9)
}
