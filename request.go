package noise

import (
	"fmt"

	"github.com/gogpu/noise/internal/primitive"
)

// Op names the noise function a request evaluates.
type Op struct {
	Family NoiseType

	// Integer selects white noise over integer lattice ranges. Family is
	// always NoiseWhite when set.
	Integer bool
}

func (o Op) String() string {
	if o.Integer {
		return "WhiteNoiseInt"
	}
	return o.Family.String()
}

// Accel returns the capability bit an accelerator needs for o.
func (o Op) Accel() AcceleratedOp {
	if o.Integer {
		return AccelWhiteNoiseInt
	}
	switch o.Family {
	case NoiseValue:
		return AccelValue
	case NoiseValueFractal:
		return AccelValueFractal
	case NoisePerlin:
		return AccelPerlin
	case NoisePerlinFractal:
		return AccelPerlinFractal
	case NoiseSimplex:
		return AccelSimplex
	case NoiseSimplexFractal:
		return AccelSimplexFractal
	case NoiseCellular:
		return AccelCellular
	case NoiseWhite:
		return AccelWhiteNoise
	}
	return 0
}

// Request is one validated, compiled evaluation handed to a Backend or
// GPUAccelerator. It is immutable and safe to evaluate from many goroutines.
type Request struct {
	snap Snapshot
	op   Op
	grid Grid
	n    int
	eval func(i int) float32
}

func newRequest(s Snapshot, op Op, g Grid) (*Request, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if g.Integer() != op.Integer || (op.Integer && op.Family != NoiseWhite) {
		return nil, fmt.Errorf("%w: %v over %s", ErrGridKind, op, g)
	}
	r := &Request{snap: s, op: op, grid: g, n: g.Len()}

	if op.Integer {
		sample, err := primitive.WhiteInt(g.Dims())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedDims, err)
		}
		seed := s.Seed
		r.eval = func(i int) float32 {
			return sample(seed, primitive.IntVec(g.IntPoint(i)))
		}
		return r, nil
	}

	k, err := compile(&r.snap, op.Family, g.Dims())
	if err != nil {
		return nil, err
	}
	r.eval = func(i int) float32 {
		return k(primitive.Vec(g.Point(i)))
	}
	return r, nil
}

// Snapshot returns the configuration the request was compiled from.
func (r *Request) Snapshot() Snapshot { return r.snap }

// Op returns the evaluated noise function.
func (r *Request) Op() Op { return r.op }

// Grid returns the sampling grid.
func (r *Request) Grid() Grid { return r.grid }

// Len returns the number of output values.
func (r *Request) Len() int { return r.n }

// Warped reports whether a domain warp runs before the family.
func (r *Request) Warped() bool {
	return !r.op.Integer && r.snap.PerturbType != PerturbNone
}

// Eval returns the value of point i.
func (r *Request) Eval(i int) float32 { return r.eval(i) }

// EvalInto fills dst with the values of points start .. start+len(dst)-1.
func (r *Request) EvalInto(dst []float32, start int) {
	for k := range dst {
		dst[k] = r.eval(start + k)
	}
}
