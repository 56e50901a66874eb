package noise

import (
	"sync"

	"github.com/gogpu/noise/internal/fractal"
	"github.com/gogpu/noise/internal/warp"
)

// Default configuration values.
const (
	DefaultSeed              int32   = 1337
	DefaultFrequency         float32 = 0.01
	DefaultFractalOctaves            = 3
	DefaultFractalLacunarity float32 = 2
	DefaultFractalGain       float32 = 0.5
	DefaultPerturbAmp        float32 = 1
)

// Noise is a coherent-noise configuration plus the backend used to evaluate
// it. The zero value is not usable; create one with New.
//
// Setters perform no validation. Octave counts below one behave as a single
// octave.
//
// Noise is safe for concurrent use. Every evaluation call works on a
// Snapshot taken when the call starts.
type Noise struct {
	mu     sync.RWMutex
	cfg    Snapshot
	lookup *Noise

	backend Backend
	cpuOnly bool
}

// New creates a Noise with the default configuration: seed 1337, frequency
// 0.01, Quintic interpolation, Simplex, 3 octaves, lacunarity 2, gain 0.5,
// FBM, Euclidean, CellValue and no perturb.
//
// A Noise used only as a cellular lookup needs no options; its backend is
// never consulted.
func New(opts ...Option) *Noise {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	n := &Noise{
		cfg:     defaultSnapshot(),
		backend: o.backend,
		cpuOnly: o.cpuOnly,
	}
	n.cfg.Seed = o.seed
	return n
}

func defaultSnapshot() Snapshot {
	s := Snapshot{
		Seed:              DefaultSeed,
		Frequency:         DefaultFrequency,
		Interp:            InterpQuintic,
		NoiseType:         NoiseSimplex,
		FractalOctaves:    DefaultFractalOctaves,
		FractalLacunarity: DefaultFractalLacunarity,
		FractalGain:       DefaultFractalGain,
		FractalType:       FractalFBM,
		PerturbAmp:        DefaultPerturbAmp / warp.AmpScale,
		PerturbType:       PerturbNone,
	}
	s.FractalBounding = fractal.Bounding(s.FractalGain, s.FractalOctaves)
	return s
}

// SetSeed sets the seed used by all noise families.
func (n *Noise) SetSeed(seed int32) {
	n.mu.Lock()
	n.cfg.Seed = seed
	n.mu.Unlock()
}

// Seed returns the seed.
func (n *Noise) Seed() int32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.Seed
}

// SetFrequency sets the factor applied to every coordinate before evaluation.
func (n *Noise) SetFrequency(frequency float32) {
	n.mu.Lock()
	n.cfg.Frequency = frequency
	n.mu.Unlock()
}

// Frequency returns the coordinate scale factor.
func (n *Noise) Frequency() float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.Frequency
}

// SetInterp sets the interpolation curve used by value and Perlin noise and
// by domain warp.
func (n *Noise) SetInterp(interp Interp) {
	n.mu.Lock()
	n.cfg.Interp = interp
	n.mu.Unlock()
}

// Interp returns the interpolation curve.
func (n *Noise) Interp() Interp {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.Interp
}

// SetNoiseType sets the family evaluated by Noise2D and Noise3D.
func (n *Noise) SetNoiseType(t NoiseType) {
	n.mu.Lock()
	n.cfg.NoiseType = t
	n.mu.Unlock()
}

// NoiseType returns the family evaluated by Noise2D and Noise3D.
func (n *Noise) NoiseType() NoiseType {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.NoiseType
}

// SetFractalOctaves sets the octave count and recomputes the fractal bounding.
func (n *Noise) SetFractalOctaves(octaves int) {
	n.mu.Lock()
	n.cfg.FractalOctaves = octaves
	n.cfg.FractalBounding = fractal.Bounding(n.cfg.FractalGain, octaves)
	n.mu.Unlock()
}

// FractalOctaves returns the octave count.
func (n *Noise) FractalOctaves() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.FractalOctaves
}

// SetFractalLacunarity sets the per-octave frequency multiplier.
func (n *Noise) SetFractalLacunarity(lacunarity float32) {
	n.mu.Lock()
	n.cfg.FractalLacunarity = lacunarity
	n.mu.Unlock()
}

// FractalLacunarity returns the per-octave frequency multiplier.
func (n *Noise) FractalLacunarity() float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.FractalLacunarity
}

// SetFractalGain sets the per-octave amplitude multiplier and recomputes
// the fractal bounding.
func (n *Noise) SetFractalGain(gain float32) {
	n.mu.Lock()
	n.cfg.FractalGain = gain
	n.cfg.FractalBounding = fractal.Bounding(gain, n.cfg.FractalOctaves)
	n.mu.Unlock()
}

// FractalGain returns the per-octave amplitude multiplier.
func (n *Noise) FractalGain() float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.FractalGain
}

// SetFractalType sets how octaves are combined.
func (n *Noise) SetFractalType(t FractalType) {
	n.mu.Lock()
	n.cfg.FractalType = t
	n.mu.Unlock()
}

// FractalType returns how octaves are combined.
func (n *Noise) FractalType() FractalType {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.FractalType
}

// FractalBounding returns 1 / (1 + gain + gain^2 + ... + gain^(octaves-1)),
// the factor that keeps a fractal sum in the range of a single octave.
func (n *Noise) FractalBounding() float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.FractalBounding
}

// SetCellularDistanceFunction sets the cellular metric.
func (n *Noise) SetCellularDistanceFunction(d CellularDistanceFunction) {
	n.mu.Lock()
	n.cfg.CellularDistanceFunction = d
	n.mu.Unlock()
}

// CellularDistanceFunction returns the cellular metric.
func (n *Noise) CellularDistanceFunction() CellularDistanceFunction {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.CellularDistanceFunction
}

// SetCellularReturnType sets what cellular noise reports.
// ReturnNoiseLookup also needs SetCellularNoiseLookup.
func (n *Noise) SetCellularReturnType(r CellularReturnType) {
	n.mu.Lock()
	n.cfg.CellularReturnType = r
	n.mu.Unlock()
}

// CellularReturnType returns what cellular noise reports.
func (n *Noise) CellularReturnType() CellularReturnType {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.CellularReturnType
}

// SetCellularNoiseLookup sets the Noise evaluated at the nearest feature
// point when the return type is ReturnNoiseLookup. The lookup is evaluated
// through its own NoiseType, frequency and seed, so a value, Perlin or
// simplex family is recommended.
//
// The reference is not owned: n never closes or modifies lookup. Pass nil
// to clear it.
func (n *Noise) SetCellularNoiseLookup(lookup *Noise) {
	n.mu.Lock()
	n.lookup = lookup
	n.mu.Unlock()
}

// CellularNoiseLookup returns the lookup Noise, or nil.
func (n *Noise) CellularNoiseLookup() *Noise {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.lookup
}

// SetPerturbAmp sets the maximum warp distance. The value is stored divided
// by 0.45 so the documented amplitude matches the visible displacement.
func (n *Noise) SetPerturbAmp(amp float32) {
	n.mu.Lock()
	n.cfg.PerturbAmp = amp / warp.AmpScale
	n.mu.Unlock()
}

// PerturbAmp returns the stored warp amplitude (the value passed to
// SetPerturbAmp divided by 0.45).
func (n *Noise) PerturbAmp() float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.PerturbAmp
}

// SetPerturbType sets the domain warp applied before evaluation.
func (n *Noise) SetPerturbType(t PerturbType) {
	n.mu.Lock()
	n.cfg.PerturbType = t
	n.mu.Unlock()
}

// PerturbType returns the domain warp type.
func (n *Noise) PerturbType() PerturbType {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.PerturbType
}
