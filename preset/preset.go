// Package preset loads noise configurations from YAML.
//
// A preset describes one noise configuration, an optional cellular lookup
// configuration, the sampling grid and the CPU backend. Files are merged
// over the embedded defaults, which match the noise package defaults, so a
// preset only needs the fields it changes:
//
//	noise:
//	  noise_type: Cellular
//	  cellular:
//	    return_type: NoiseLookup
//	lookup:
//	  noise_type: PerlinFractal
//	grid:
//	  axes:
//	    - {count: 512, step: 0.5}
//	    - {count: 512, step: 0.5}
package preset

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/internal/warp"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// OpWhiteNoiseInt selects white noise over integer lattice axes.
const OpWhiteNoiseInt = "WhiteNoiseInt"

// ErrAxisNotIntegral is returned when an integer grid axis has a
// fractional offset or step.
var ErrAxisNotIntegral = errors.New("preset: integer grid axis has fractional offset or step")

// Preset is a complete noise generation recipe.
type Preset struct {
	Noise   NoiseConfig   `yaml:"noise"`
	Lookup  *LookupConfig `yaml:"lookup,omitempty"`
	Grid    GridConfig    `yaml:"grid"`
	Backend BackendConfig `yaml:"backend"`
}

// NoiseConfig mirrors the settable fields of a noise.Noise.
type NoiseConfig struct {
	Seed      int32           `yaml:"seed"`
	Frequency float32         `yaml:"frequency"`
	Interp    noise.Interp    `yaml:"interp"`
	NoiseType noise.NoiseType `yaml:"noise_type"`
	Fractal   FractalConfig   `yaml:"fractal"`
	Cellular  CellularConfig  `yaml:"cellular"`
	Perturb   PerturbConfig   `yaml:"perturb"`
}

type FractalConfig struct {
	Type       noise.FractalType `yaml:"type"`
	Octaves    int               `yaml:"octaves"`
	Lacunarity float32           `yaml:"lacunarity"`
	Gain       float32           `yaml:"gain"`
}

type CellularConfig struct {
	DistanceFunction noise.CellularDistanceFunction `yaml:"distance_function"`
	ReturnType       noise.CellularReturnType       `yaml:"return_type"`
}

type PerturbConfig struct {
	Type noise.PerturbType `yaml:"type"`
	Amp  float32           `yaml:"amp"` // Displacement in frequency-scaled units.
}

// LookupConfig is the cellular lookup noise. Fields missing from the file
// take the embedded noise defaults rather than zero values.
type LookupConfig struct {
	NoiseConfig `yaml:",inline"`
}

// UnmarshalYAML starts from the embedded noise defaults before decoding.
func (c *LookupConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain LookupConfig
	var defaults struct {
		Noise NoiseConfig `yaml:"noise"`
	}
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		return fmt.Errorf("parsing embedded defaults: %w", err)
	}
	p := plain{NoiseConfig: defaults.Noise}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = LookupConfig(p)
	return nil
}

// GridConfig is the sampling grid and the operation evaluated over it.
type GridConfig struct {
	// Op is empty for the generic Noise2D/Noise3D, a noise type name, or
	// OpWhiteNoiseInt.
	Op   string       `yaml:"op"`
	Axes []AxisConfig `yaml:"axes"`
}

type AxisConfig struct {
	Count  int     `yaml:"count"`
	Offset float32 `yaml:"offset"`
	Step   float32 `yaml:"step"`
}

type BackendConfig struct {
	Workers int  `yaml:"workers"` // 0 uses GOMAXPROCS.
	CPUOnly bool `yaml:"cpu_only"`
}

// Default returns the embedded defaults.
func Default() *Preset {
	p, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("preset: embedded defaults: %v", err))
	}
	return p
}

// Load loads a preset from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Preset, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}
	return Parse(data)
}

// Parse merges data over the embedded defaults and validates the result.
func Parse(data []byte) (*Preset, error) {
	p := &Preset{}
	if err := yaml.Unmarshal(defaultsYAML, p); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	// Only overwrites fields present in data. Lists are replaced whole.
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing preset: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the parts of a preset the noise package cannot: the op
// name and, for integer grids, integral axes.
func (p *Preset) Validate() error {
	if _, _, err := p.op(); err != nil {
		return err
	}
	if p.Grid.Op == OpWhiteNoiseInt {
		for i, a := range p.Grid.Axes {
			if a.Offset != float32(math.Trunc(float64(a.Offset))) || a.Step != float32(math.Trunc(float64(a.Step))) {
				return fmt.Errorf("axis %d: %w", i, ErrAxisNotIntegral)
			}
		}
	}
	return nil
}

// op resolves Grid.Op. generic reports the Noise2D/Noise3D path.
func (p *Preset) op() (op noise.Op, generic bool, err error) {
	switch p.Grid.Op {
	case "":
		return noise.Op{}, true, nil
	case OpWhiteNoiseInt:
		return noise.Op{Family: noise.NoiseWhite, Integer: true}, false, nil
	}
	var t noise.NoiseType
	if err := t.UnmarshalText([]byte(p.Grid.Op)); err != nil {
		return noise.Op{}, false, fmt.Errorf("preset: grid op: %w", err)
	}
	return noise.Op{Family: t}, false, nil
}

// Build returns a configured Noise. The lookup, when set, is built as a
// separate Noise and attached with SetCellularNoiseLookup.
func (p *Preset) Build(opts ...noise.Option) *noise.Noise {
	n := noise.New(opts...)
	p.Noise.Apply(n)
	if p.Lookup != nil {
		lookup := noise.New()
		p.Lookup.Apply(lookup)
		n.SetCellularNoiseLookup(lookup)
	}
	return n
}

// Apply copies c onto n.
func (c NoiseConfig) Apply(n *noise.Noise) {
	n.SetSeed(c.Seed)
	n.SetFrequency(c.Frequency)
	n.SetInterp(c.Interp)
	n.SetNoiseType(c.NoiseType)
	n.SetFractalType(c.Fractal.Type)
	n.SetFractalOctaves(c.Fractal.Octaves)
	n.SetFractalLacunarity(c.Fractal.Lacunarity)
	n.SetFractalGain(c.Fractal.Gain)
	n.SetCellularDistanceFunction(c.Cellular.DistanceFunction)
	n.SetCellularReturnType(c.Cellular.ReturnType)
	n.SetPerturbType(c.Perturb.Type)
	n.SetPerturbAmp(c.Perturb.Amp)
}

// Capture returns the configuration of n. The lookup is not included.
func Capture(n *noise.Noise) NoiseConfig {
	return NoiseConfig{
		Seed:      n.Seed(),
		Frequency: n.Frequency(),
		Interp:    n.Interp(),
		NoiseType: n.NoiseType(),
		Fractal: FractalConfig{
			Type:       n.FractalType(),
			Octaves:    n.FractalOctaves(),
			Lacunarity: n.FractalLacunarity(),
			Gain:       n.FractalGain(),
		},
		Cellular: CellularConfig{
			DistanceFunction: n.CellularDistanceFunction(),
			ReturnType:       n.CellularReturnType(),
		},
		Perturb: PerturbConfig{
			Type: n.PerturbType(),
			Amp:  n.PerturbAmp() * warp.AmpScale,
		},
	}
}

// Ranges returns the float axes of the grid.
func (g GridConfig) Ranges() []noise.Range {
	rs := make([]noise.Range, len(g.Axes))
	for i, a := range g.Axes {
		rs[i] = noise.Range{Count: a.Count, Offset: a.Offset, Step: a.Step}
	}
	return rs
}

// IntRanges returns the axes as integer lattice ranges.
func (g GridConfig) IntRanges() []noise.RangeInt {
	rs := make([]noise.RangeInt, len(g.Axes))
	for i, a := range g.Axes {
		rs[i] = noise.RangeInt{Count: a.Count, Offset: int32(a.Offset), Step: int32(a.Step)}
	}
	return rs
}

// Evaluate runs the preset's op over its grid with n.
func (p *Preset) Evaluate(n *noise.Noise) ([]float32, error) {
	op, generic, err := p.op()
	if err != nil {
		return nil, err
	}
	if generic {
		rs := p.Grid.Ranges()
		switch len(rs) {
		case 2:
			return n.Noise2D(rs[0], rs[1])
		case 3:
			return n.Noise3D(rs[0], rs[1], rs[2])
		}
		return nil, fmt.Errorf("preset: generic noise needs 2 or 3 axes, have %d", len(rs))
	}
	return n.Evaluate(op, p.NoiseGrid())
}

// NoiseGrid returns the grid the preset samples.
func (p *Preset) NoiseGrid() noise.Grid {
	if p.Grid.Op == OpWhiteNoiseInt {
		return noise.NewIntGrid(p.Grid.IntRanges()...)
	}
	return noise.NewGrid(p.Grid.Ranges()...)
}

// WriteYAML writes the preset to a YAML file.
func (p *Preset) WriteYAML(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing preset file: %w", err)
	}
	return nil
}
