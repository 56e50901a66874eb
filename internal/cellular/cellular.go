// Package cellular implements Worley-style cellular noise: for every sample
// it finds the nearest and second-nearest jittered feature points and turns
// them into one of eight return values.
package cellular

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/noise/internal/primitive"
)

// ErrMissingLookup reports a NoiseLookup resolver built without a lookup.
var ErrMissingLookup = errors.New("cellular: NoiseLookup requires a lookup function")

// Jitter is how far a feature point may stray from its cell centre, as a
// fraction of the cell size.
const Jitter float32 = 0.45

// Metric measures the distance from a sample to a feature point.
type Metric uint8

const (
	// Euclidean is the straight-line distance.
	Euclidean Metric = iota

	// Manhattan is the L1 distance.
	Manhattan

	// Natural averages the Euclidean and Manhattan distances.
	Natural
)

// Return selects what the resolver reports.
type Return uint8

// Return types. The Distance2* variants combine the nearest (d0) and
// second-nearest (d1) distances.
const (
	CellValue Return = iota
	NoiseLookup
	Distance
	Distance2
	Distance2Add
	Distance2Sub
	Distance2Mul
	Distance2Div
)

// Lookup evaluates another noise configuration at a feature point.
type Lookup func(p primitive.Vec) float32

// Per-axis salts for the feature point jitter.
var jitterSalt = [3]uint32{0x68e31da4, 0xb5297a4d, 0x1b56c4e9}

// nearest is the shared result of one neighbourhood search.
type nearest struct {
	d0, d1 float32 // d0 <= d1
	hash   uint32  // hash of the nearest cell
	point  primitive.Vec
}

func (n *nearest) offer(d float32, h uint32, p primitive.Vec) {
	switch {
	case d < n.d0:
		n.d1 = n.d0
		n.d0 = d
		n.hash = h
		n.point = p
	case d < n.d1:
		n.d1 = d
	}
}

type metricFunc func(dx, dy, dz float32) float32

type combineFunc func(n *nearest) float32

// New builds a cellular sampler for dims (2 or 3). The metric and return
// type are resolved here, once; the per-point path only searches and
// combines. lookup is required for NoiseLookup and ignored otherwise.
func New(dims int, m Metric, ret Return, lookup Lookup) (primitive.Sampler, error) {
	metric, err := metricFor(m)
	if err != nil {
		return nil, err
	}
	combine, err := combinerFor(ret, lookup)
	if err != nil {
		return nil, err
	}
	switch dims {
	case 2:
		return func(seed int32, p primitive.Vec) float32 {
			n := search2(seed, p[0], p[1], metric)
			return combine(&n)
		}, nil
	case 3:
		return func(seed int32, p primitive.Vec) float32 {
			n := search3(seed, p[0], p[1], p[2], metric)
			return combine(&n)
		}, nil
	}
	return nil, fmt.Errorf("%w: cellular in %dD", primitive.ErrDims, dims)
}

func metricFor(m Metric) (metricFunc, error) {
	switch m {
	case Euclidean:
		return euclidean, nil
	case Manhattan:
		return manhattan, nil
	case Natural:
		return func(dx, dy, dz float32) float32 {
			return (euclidean(dx, dy, dz) + manhattan(dx, dy, dz)) * 0.5
		}, nil
	}
	return nil, fmt.Errorf("cellular: unknown distance function %d", m)
}

func euclidean(dx, dy, dz float32) float32 {
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

func manhattan(dx, dy, dz float32) float32 {
	return abs(dx) + abs(dy) + abs(dz)
}

func combinerFor(ret Return, lookup Lookup) (combineFunc, error) {
	switch ret {
	case CellValue:
		return func(n *nearest) float32 { return primitive.Unit(n.hash) }, nil
	case NoiseLookup:
		if lookup == nil {
			return nil, ErrMissingLookup
		}
		return func(n *nearest) float32 { return lookup(n.point) }, nil
	case Distance:
		return func(n *nearest) float32 { return n.d0 }, nil
	case Distance2:
		return func(n *nearest) float32 { return n.d1 }, nil
	case Distance2Add:
		return func(n *nearest) float32 { return n.d0 + n.d1 }, nil
	case Distance2Sub:
		return func(n *nearest) float32 { return n.d1 - n.d0 }, nil
	case Distance2Mul:
		return func(n *nearest) float32 { return n.d0 * n.d1 }, nil
	case Distance2Div:
		return func(n *nearest) float32 {
			if n.d1 == 0 {
				return 0
			}
			return n.d0 / n.d1
		}, nil
	}
	return nil, fmt.Errorf("cellular: unknown return type %d", ret)
}

func feature(h uint32, axis int, cell int32) float32 {
	return float32(cell) + 0.5 + primitive.Unit(primitive.Mix(h^jitterSalt[axis]))*Jitter
}

func search2(seed int32, x, y float32, metric metricFunc) nearest {
	xr, yr := primitive.Floor(x), primitive.Floor(y)
	n := nearest{d0: math.MaxFloat32, d1: math.MaxFloat32}
	for cx := xr - 1; cx <= xr+1; cx++ {
		for cy := yr - 1; cy <= yr+1; cy++ {
			h := primitive.Hash2(seed, cx, cy)
			fp := primitive.Vec{feature(h, 0, cx), feature(h, 1, cy)}
			n.offer(metric(fp[0]-x, fp[1]-y, 0), h, fp)
		}
	}
	return n
}

func search3(seed int32, x, y, z float32, metric metricFunc) nearest {
	xr, yr, zr := primitive.Floor(x), primitive.Floor(y), primitive.Floor(z)
	n := nearest{d0: math.MaxFloat32, d1: math.MaxFloat32}
	for cx := xr - 1; cx <= xr+1; cx++ {
		for cy := yr - 1; cy <= yr+1; cy++ {
			for cz := zr - 1; cz <= zr+1; cz++ {
				h := primitive.Hash3(seed, cx, cy, cz)
				fp := primitive.Vec{feature(h, 0, cx), feature(h, 1, cy), feature(h, 2, cz)}
				n.offer(metric(fp[0]-x, fp[1]-y, fp[2]-z), h, fp)
			}
		}
	}
	return n
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
