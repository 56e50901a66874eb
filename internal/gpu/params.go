//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/gogpu/noise"
)

// Kernel family codes. Must match Params.family in noise.wgsl.
const (
	familyValue    uint32 = 0
	familyPerlin   uint32 = 1
	familyWhite    uint32 = 2
	familyWhiteInt uint32 = 3
)

// Octave combine codes. Must match Params.combine in noise.wgsl.
const (
	combineSingle uint32 = 0
	combineFBM    uint32 = 1
	combineBillow uint32 = 2
	combineRigid  uint32 = 3
)

const (
	workgroupSize   = 64
	maxGroupsPerDim = 65535

	// maxPoints caps the output buffer at 128 MiB.
	maxPoints = 128 << 20 / 4
)

// errUnsupported marks requests the kernel cannot reproduce.
var errUnsupported = errors.New("unsupported by noise kernel")

// octaveParams is the uniform block of one compute pass. Layout matches
// the WGSL Params struct (80 bytes, no implicit padding).
type octaveParams struct {
	Counts     [4]uint32
	Bases      [4]uint32
	Dims       uint32
	Family     uint32
	Interp     uint32
	Combine    uint32
	Seed       uint32
	OctaveFreq float32
	Amp        float32
	Bounding   float32
	First      uint32
	Last       uint32
	Total      uint32
	RowStride  uint32
}

const octaveParamsSize = 80

func (p *octaveParams) bytes() []byte {
	b, err := binary.Append(make([]byte, 0, octaveParamsSize), binary.LittleEndian, p)
	if err != nil {
		// Fixed-size struct; cannot fail.
		panic(err)
	}
	return b
}

// plan is the host-side layout of one request: the coordinate upload, the
// per-octave uniforms and the dispatch size.
type plan struct {
	coords  []uint32
	passes  []octaveParams
	total   int
	groupsX uint32
	groupsY uint32
	rigid   bool
}

// newPlan lays out req for the kernel. It returns errUnsupported for
// requests the kernel does not cover.
func newPlan(req *noise.Request) (*plan, error) {
	op := req.Op()
	snap := req.Snapshot()
	g := req.Grid()
	n := req.Len()
	if n <= 0 || n > maxPoints || req.Warped() {
		return nil, errUnsupported
	}

	family, fractal, ok := kernelFamily(op)
	if !ok {
		return nil, errUnsupported
	}

	// Axis samples back to back, then one zero word for unused axes.
	pl := &plan{total: n}
	var counts, bases [4]uint32
	size := 1
	for a := 0; a < g.Dims(); a++ {
		size += g.Count(a)
	}
	pl.coords = make([]uint32, 0, size)
	for a := 0; a < noise.MaxDims; a++ {
		if a >= g.Dims() {
			counts[a] = 1
			continue
		}
		counts[a] = uint32(g.Count(a)) //nolint:gosec // bounded by maxPoints
		bases[a] = uint32(len(pl.coords))
		if op.Integer {
			r := g.IntAxis(a)
			for i := 0; i < r.Count; i++ {
				pl.coords = append(pl.coords, uint32(r.At(i))) //nolint:gosec // raw lattice bits
			}
			continue
		}
		r := g.Axis(a)
		for i := 0; i < r.Count; i++ {
			pl.coords = append(pl.coords, math.Float32bits(r.At(i)*snap.Frequency))
		}
	}
	zero := uint32(len(pl.coords))
	pl.coords = append(pl.coords, 0)
	for a := g.Dims(); a < noise.MaxDims; a++ {
		bases[a] = zero
	}

	groups := (n + workgroupSize - 1) / workgroupSize
	gx := min(groups, maxGroupsPerDim)
	gy := (groups + gx - 1) / gx
	pl.groupsX, pl.groupsY = uint32(gx), uint32(gy) //nolint:gosec // bounded by maxPoints

	base := octaveParams{
		Counts:    counts,
		Bases:     bases,
		Dims:      uint32(g.Dims()), //nolint:gosec // 2..4
		Family:    family,
		Interp:    uint32(snap.Interp),
		Total:     uint32(n),                  //nolint:gosec // bounded by maxPoints
		RowStride: uint32(gx * workgroupSize), //nolint:gosec // at most 65535*64
	}

	if !fractal {
		p := base
		p.Combine = combineSingle
		p.Seed = uint32(snap.Seed) //nolint:gosec // two's complement bits
		p.OctaveFreq, p.Amp, p.Bounding = 1, 1, 1
		p.First, p.Last = 1, 1
		pl.passes = []octaveParams{p}
		return pl, nil
	}

	combine, ok := combineFor(snap.FractalType)
	if !ok {
		return nil, errUnsupported
	}
	pl.rigid = combine == combineRigid
	octaves := max(snap.FractalOctaves, 1)
	pl.passes = make([]octaveParams, octaves)
	freq, amp := float32(1), float32(1)
	for i := range octaves {
		p := base
		p.Combine = combine
		p.Seed = uint32(snap.Seed + int32(i)) //nolint:gosec // octave seeds wrap like the CPU path
		p.OctaveFreq = freq
		p.Amp = amp
		p.Bounding = snap.FractalBounding
		if i == 0 {
			p.First = 1
		}
		if i == octaves-1 {
			p.Last = 1
		}
		pl.passes[i] = p
		freq *= snap.FractalLacunarity
		amp *= snap.FractalGain
	}
	return pl, nil
}

// kernelFamily maps op to a kernel family code and reports whether the
// op is fractal.
func kernelFamily(op noise.Op) (family uint32, fractal, ok bool) {
	if op.Integer {
		return familyWhiteInt, false, true
	}
	switch op.Family {
	case noise.NoiseValue:
		return familyValue, false, true
	case noise.NoiseValueFractal:
		return familyValue, true, true
	case noise.NoisePerlin:
		return familyPerlin, false, true
	case noise.NoisePerlinFractal:
		return familyPerlin, true, true
	case noise.NoiseWhite:
		return familyWhite, false, true
	}
	return 0, false, false
}

func combineFor(t noise.FractalType) (uint32, bool) {
	switch t {
	case noise.FractalFBM:
		return combineFBM, true
	case noise.FractalBillow:
		return combineBillow, true
	case noise.FractalRigidMulti:
		return combineRigid, true
	}
	return 0, false
}

// coordBytes returns the coordinate upload in little-endian order.
func (pl *plan) coordBytes() []byte {
	b := make([]byte, 0, len(pl.coords)*4)
	for _, w := range pl.coords {
		b = binary.LittleEndian.AppendUint32(b, w)
	}
	return b
}

// weightSize is the size of the rigid weight buffer. Other combines bind a
// single word.
func (pl *plan) weightSize() uint64 {
	if pl.rigid {
		return uint64(pl.total) * 4 //nolint:gosec // bounded by maxPoints
	}
	return 4
}

// decode converts the output buffer to values.
func decode(b []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
