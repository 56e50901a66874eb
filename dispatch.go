package noise

import (
	"errors"
	"fmt"
)

// Evaluate runs op over g. The typed methods (Value2D, Cellular3D, ...) are
// shorthands for it; Evaluate is useful when the family and dimensionality
// come from data, as in presets.
func (n *Noise) Evaluate(op Op, g Grid) ([]float32, error) {
	return n.dispatch(op.String(), op, false, g)
}

// dispatch snapshots the configuration, compiles the request and runs it on
// the accelerator or the CPU backend. With generic set, the family is taken
// from the snapshot's NoiseType.
func (n *Noise) dispatch(name string, op Op, generic bool, g Grid) ([]float32, error) {
	snap := n.Snapshot()
	if generic {
		op.Family = snap.NoiseType
	}
	req, err := newRequest(snap, op, g)
	if err != nil {
		return nil, &ConfigError{Op: name, Err: err}
	}
	if req.Len() == 0 {
		return []float32{}, nil
	}

	log := Logger()
	if a := Accelerator(); a != nil && !n.cpuOnly && canAccelerate(a, req) {
		out, err := a.Submit(req)
		switch {
		case err == nil:
			return checked(a.Name(), req, out)
		case errors.Is(err, ErrFallbackToCPU):
			log.Debug("noise: accelerator fallback", "accelerator", a.Name(), "op", req.Op(), "grid", g)
		default:
			return nil, &BackendError{Backend: a.Name(), Err: err}
		}
	}

	b := n.backend
	if b == nil {
		b = sharedBackend()
	}
	log.Debug("noise: dispatch", "backend", b.Name(), "op", req.Op(), "grid", g, "points", req.Len())
	out, err := b.Submit(req)
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}
	return checked(b.Name(), req, out)
}

// canAccelerate reports whether a supports every capability req needs.
func canAccelerate(a GPUAccelerator, req *Request) bool {
	if !a.CanAccelerate(req.Op().Accel()) {
		return false
	}
	return !req.Warped() || a.CanAccelerate(AccelPerturb)
}

func checked(backend string, req *Request, out []float32) ([]float32, error) {
	if len(out) != req.Len() {
		return nil, &BackendError{
			Backend: backend,
			Err:     fmt.Errorf("returned %d values for %d points", len(out), req.Len()),
		}
	}
	return out, nil
}

var (
	opValue          = Op{Family: NoiseValue}
	opValueFractal   = Op{Family: NoiseValueFractal}
	opPerlin         = Op{Family: NoisePerlin}
	opPerlinFractal  = Op{Family: NoisePerlinFractal}
	opSimplex        = Op{Family: NoiseSimplex}
	opSimplexFractal = Op{Family: NoiseSimplexFractal}
	opCellular       = Op{Family: NoiseCellular}
	opWhite          = Op{Family: NoiseWhite}
	opWhiteInt       = Op{Family: NoiseWhite, Integer: true}
)

// Value2D evaluates value noise over a 2D grid.
func (n *Noise) Value2D(x, y Range) ([]float32, error) {
	return n.dispatch("Value2D", opValue, false, NewGrid(x, y))
}

// Value3D evaluates value noise over a 3D grid.
func (n *Noise) Value3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("Value3D", opValue, false, NewGrid(x, y, z))
}

// ValueFractal2D evaluates fractal value noise over a 2D grid.
func (n *Noise) ValueFractal2D(x, y Range) ([]float32, error) {
	return n.dispatch("ValueFractal2D", opValueFractal, false, NewGrid(x, y))
}

// ValueFractal3D evaluates fractal value noise over a 3D grid.
func (n *Noise) ValueFractal3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("ValueFractal3D", opValueFractal, false, NewGrid(x, y, z))
}

// Perlin2D evaluates gradient noise over a 2D grid.
func (n *Noise) Perlin2D(x, y Range) ([]float32, error) {
	return n.dispatch("Perlin2D", opPerlin, false, NewGrid(x, y))
}

// Perlin3D evaluates gradient noise over a 3D grid.
func (n *Noise) Perlin3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("Perlin3D", opPerlin, false, NewGrid(x, y, z))
}

// PerlinFractal2D evaluates fractal gradient noise over a 2D grid.
func (n *Noise) PerlinFractal2D(x, y Range) ([]float32, error) {
	return n.dispatch("PerlinFractal2D", opPerlinFractal, false, NewGrid(x, y))
}

// PerlinFractal3D evaluates fractal gradient noise over a 3D grid.
func (n *Noise) PerlinFractal3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("PerlinFractal3D", opPerlinFractal, false, NewGrid(x, y, z))
}

// Simplex2D evaluates simplex noise over a 2D grid.
func (n *Noise) Simplex2D(x, y Range) ([]float32, error) {
	return n.dispatch("Simplex2D", opSimplex, false, NewGrid(x, y))
}

// Simplex3D evaluates simplex noise over a 3D grid.
func (n *Noise) Simplex3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("Simplex3D", opSimplex, false, NewGrid(x, y, z))
}

// Simplex4D evaluates simplex noise over a 4D grid.
func (n *Noise) Simplex4D(x, y, z, w Range) ([]float32, error) {
	return n.dispatch("Simplex4D", opSimplex, false, NewGrid(x, y, z, w))
}

// SimplexFractal2D evaluates fractal simplex noise over a 2D grid.
func (n *Noise) SimplexFractal2D(x, y Range) ([]float32, error) {
	return n.dispatch("SimplexFractal2D", opSimplexFractal, false, NewGrid(x, y))
}

// SimplexFractal3D evaluates fractal simplex noise over a 3D grid.
func (n *Noise) SimplexFractal3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("SimplexFractal3D", opSimplexFractal, false, NewGrid(x, y, z))
}

// Cellular2D evaluates cellular noise over a 2D grid.
func (n *Noise) Cellular2D(x, y Range) ([]float32, error) {
	return n.dispatch("Cellular2D", opCellular, false, NewGrid(x, y))
}

// Cellular3D evaluates cellular noise over a 3D grid.
func (n *Noise) Cellular3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("Cellular3D", opCellular, false, NewGrid(x, y, z))
}

// WhiteNoise2D evaluates white noise over a 2D grid.
func (n *Noise) WhiteNoise2D(x, y Range) ([]float32, error) {
	return n.dispatch("WhiteNoise2D", opWhite, false, NewGrid(x, y))
}

// WhiteNoise3D evaluates white noise over a 3D grid.
func (n *Noise) WhiteNoise3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("WhiteNoise3D", opWhite, false, NewGrid(x, y, z))
}

// WhiteNoise4D evaluates white noise over a 4D grid.
func (n *Noise) WhiteNoise4D(x, y, z, w Range) ([]float32, error) {
	return n.dispatch("WhiteNoise4D", opWhite, false, NewGrid(x, y, z, w))
}

// WhiteNoiseInt2D hashes a 2D integer lattice directly. Frequency and
// perturb are ignored.
func (n *Noise) WhiteNoiseInt2D(x, y RangeInt) ([]float32, error) {
	return n.dispatch("WhiteNoiseInt2D", opWhiteInt, false, NewIntGrid(x, y))
}

// WhiteNoiseInt3D hashes a 3D integer lattice directly.
func (n *Noise) WhiteNoiseInt3D(x, y, z RangeInt) ([]float32, error) {
	return n.dispatch("WhiteNoiseInt3D", opWhiteInt, false, NewIntGrid(x, y, z))
}

// WhiteNoiseInt4D hashes a 4D integer lattice directly.
func (n *Noise) WhiteNoiseInt4D(x, y, z, w RangeInt) ([]float32, error) {
	return n.dispatch("WhiteNoiseInt4D", opWhiteInt, false, NewIntGrid(x, y, z, w))
}

// Noise2D evaluates the family selected by SetNoiseType over a 2D grid.
// The family is read from the same snapshot as the rest of the
// configuration.
func (n *Noise) Noise2D(x, y Range) ([]float32, error) {
	return n.dispatch("Noise2D", Op{}, true, NewGrid(x, y))
}

// Noise3D evaluates the family selected by SetNoiseType over a 3D grid.
func (n *Noise) Noise3D(x, y, z Range) ([]float32, error) {
	return n.dispatch("Noise3D", Op{}, true, NewGrid(x, y, z))
}
