package noise

import (
	"fmt"
	"math"
)

// MaxDims is the highest dimensionality any family supports.
const MaxDims = 4

// MaxPoints is the largest number of points one evaluation may produce.
const MaxPoints = math.MaxInt32

// Range describes the samples taken along one axis: Count samples at
// Offset, Offset+Step, Offset+2*Step, ...
type Range struct {
	Count  int
	Offset float32
	Step   float32
}

// At returns the coordinate of sample i.
func (r Range) At(i int) float32 {
	// The conversion keeps the product rounded on its own so CPU and GPU
	// kernels see the same coordinate.
	return r.Offset + float32(float32(i)*r.Step)
}

// RangeInt is a Range over integer lattice coordinates. It feeds only the
// integer white-noise family.
type RangeInt struct {
	Count  int
	Offset int32
	Step   int32
}

// At returns the coordinate of sample i. Overflow wraps.
func (r RangeInt) At(i int) int32 {
	return r.Offset + int32(i)*r.Step
}

// NullRange returns the empty range.
func NullRange() Range { return Range{} }

// NullRangeInt returns the empty integer range.
func NullRangeInt() RangeInt { return RangeInt{} }

// Grid is the Cartesian product of two to four axis ranges. Points are
// numbered x-fastest: index = ix + nx*(iy + ny*(iz + nz*iw)).
type Grid struct {
	dims    int
	integer bool
	axes    [MaxDims]Range
	intAxes [MaxDims]RangeInt
}

// NewGrid returns the grid over the given float axes, x first.
func NewGrid(axes ...Range) Grid {
	g := Grid{dims: len(axes)}
	copy(g.axes[:], axes)
	return g
}

// NewIntGrid returns the grid over the given integer axes, x first.
func NewIntGrid(axes ...RangeInt) Grid {
	g := Grid{dims: len(axes), integer: true}
	copy(g.intAxes[:], axes)
	return g
}

// Dims returns the number of axes.
func (g Grid) Dims() int { return g.dims }

// Integer reports whether the grid was built from RangeInt axes.
func (g Grid) Integer() bool { return g.integer }

// Axis returns float axis a. For integer grids the zero Range is returned.
func (g Grid) Axis(a int) Range { return g.axes[a] }

// IntAxis returns integer axis a. For float grids the zero RangeInt is returned.
func (g Grid) IntAxis(a int) RangeInt { return g.intAxes[a] }

// Count returns the sample count of axis a.
func (g Grid) Count(a int) int {
	if g.integer {
		return g.intAxes[a].Count
	}
	return g.axes[a].Count
}

// Len returns the number of points, the product of all axis counts.
// It is only meaningful for a grid that passes validation.
func (g Grid) Len() int {
	n := 1
	for a := range g.dims {
		n *= g.Count(a)
	}
	return n
}

// validate checks the dimensionality, that no count is negative and that
// the point count does not exceed MaxPoints.
func (g Grid) validate() error {
	if g.dims < 2 || g.dims > MaxDims {
		return fmt.Errorf("%w: %d axes", ErrUnsupportedDims, g.dims)
	}
	empty := false
	for a := range g.dims {
		c := g.Count(a)
		if c < 0 {
			return fmt.Errorf("%w: axis %d has count %d", ErrNegativeCount, a, c)
		}
		empty = empty || c == 0
	}
	if empty {
		return nil
	}
	n := 1
	for a := range g.dims {
		c := g.Count(a)
		if n > MaxPoints/c {
			return fmt.Errorf("%w: more than %d points", ErrGridTooLarge, MaxPoints)
		}
		n *= c
	}
	return nil
}

// Point returns the coordinate of point i. Axes beyond Dims are zero.
func (g Grid) Point(i int) [MaxDims]float32 {
	var p [MaxDims]float32
	for a := range g.dims {
		c := g.axes[a].Count
		p[a] = g.axes[a].At(i % c)
		i /= c
	}
	return p
}

// IntPoint returns the integer coordinate of point i.
func (g Grid) IntPoint(i int) [MaxDims]int32 {
	var p [MaxDims]int32
	for a := range g.dims {
		c := g.intAxes[a].Count
		p[a] = g.intAxes[a].At(i % c)
		i /= c
	}
	return p
}

func (g Grid) String() string {
	counts := make([]int, g.dims)
	for a := range counts {
		counts[a] = g.Count(a)
	}
	return fmt.Sprintf("%dD%v", g.dims, counts)
}
