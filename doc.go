// Package noise evaluates coherent noise over dense sampling grids.
//
// # Overview
//
// A [Noise] holds a mutable configuration: seed, frequency, interpolation
// curve, noise family, fractal recipe, cellular metric and return type, and
// domain warp (perturb) settings. Each evaluation call takes one [Range] per
// axis and returns one float32 per grid point.
//
// # Quick Start
//
//	import "github.com/gogpu/noise"
//
//	n := noise.New(noise.WithSeed(42))
//	n.SetNoiseType(noise.NoisePerlinFractal)
//	n.SetFractalOctaves(5)
//
//	// 256x256 heightmap, one sample per unit.
//	heights, err := n.Noise2D(noise.Range{Count: 256, Step: 1}, noise.Range{Count: 256, Step: 1})
//
// # Grid Layout
//
// Output is flattened x-fastest: the value for sample (ix, iy, iz, iw) is at
// index ix + nx*(iy + ny*(iz + nz*iw)). A zero count on any axis yields an
// empty, non-nil slice.
//
// # Families
//
//   - Value, Perlin and Cellular: 2D and 3D
//   - Simplex and WhiteNoise: 2D, 3D and 4D
//   - ValueFractal, PerlinFractal and SimplexFractal: 2D and 3D
//   - WhiteNoiseInt: 2D, 3D and 4D over integer lattice ranges
//
// Value, Perlin, Simplex and White noise return values in [-1, 1].
// Cellular distance return types report raw distances in lattice units
// (frequency-scaled space).
//
// # Backends
//
// Every call snapshots the configuration, compiles a per-point kernel once
// and hands it to a [Backend]. The default backend spreads the grid across
// all CPU cores. A GPU accelerator can be enabled with a blank import:
//
//	import _ "github.com/gogpu/noise/gpu"
//
// Operations the accelerator cannot run return [ErrFallbackToCPU] and are
// evaluated on the CPU transparently.
//
// # Concurrency
//
// Configuration setters and evaluation calls may be used from multiple
// goroutines. An in-flight evaluation works on its own snapshot and never
// observes later configuration changes.
package noise

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
