package noise

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// NoiseType selects the family evaluated by Noise2D and Noise3D.
type NoiseType uint8

const (
	// NoiseValue interpolates random lattice values.
	NoiseValue NoiseType = iota

	// NoiseValueFractal is value noise combined over octaves.
	NoiseValueFractal

	// NoisePerlin interpolates gradient dot products.
	NoisePerlin

	// NoisePerlinFractal is Perlin noise combined over octaves.
	NoisePerlinFractal

	// NoiseSimplex is OpenSimplex noise.
	NoiseSimplex

	// NoiseSimplexFractal is simplex noise combined over octaves.
	NoiseSimplexFractal

	// NoiseCellular is Worley noise; see CellularReturnType.
	NoiseCellular

	// NoiseWhite hashes the coordinate itself, with no smoothing.
	NoiseWhite
)

// Interp is the curve used to smooth between lattice corners in value and
// Perlin noise and in domain warp.
type Interp uint8

const (
	// InterpLinear blends linearly. Fastest, with visible creases.
	InterpLinear Interp = iota

	// InterpHermite uses 3t²-2t³.
	InterpHermite

	// InterpQuintic uses 6t⁵-15t⁴+10t³ (the default).
	InterpQuintic
)

// FractalType selects how octaves are combined.
type FractalType uint8

const (
	// FractalFBM sums octaves weighted by gain.
	FractalFBM FractalType = iota

	// FractalBillow sums folded octaves, |n|*2-1.
	FractalBillow

	// FractalRigidMulti sums inverted ridges, each weighted by the previous one.
	FractalRigidMulti
)

// CellularDistanceFunction is the metric used by cellular noise.
type CellularDistanceFunction uint8

const (
	// DistanceEuclidean is the straight-line distance.
	DistanceEuclidean CellularDistanceFunction = iota

	// DistanceManhattan is the L1 distance.
	DistanceManhattan

	// DistanceNatural is the mean of the Euclidean and Manhattan distances.
	DistanceNatural
)

// CellularReturnType selects what cellular noise reports per sample.
type CellularReturnType uint8

const (
	// ReturnCellValue is a random value per cell in [-1, 1).
	ReturnCellValue CellularReturnType = iota

	// ReturnNoiseLookup evaluates the lookup Noise at the nearest feature point.
	ReturnNoiseLookup

	// ReturnDistance is the distance to the nearest feature point.
	ReturnDistance

	// ReturnDistance2 is the distance to the second-nearest feature point.
	ReturnDistance2

	// ReturnDistance2Add is Distance + Distance2.
	ReturnDistance2Add

	// ReturnDistance2Sub is Distance2 - Distance.
	ReturnDistance2Sub

	// ReturnDistance2Mul is Distance * Distance2.
	ReturnDistance2Mul

	// ReturnDistance2Div is Distance / Distance2.
	ReturnDistance2Div
)

// PerturbType selects the domain warp applied before evaluation.
type PerturbType uint8

const (
	// PerturbNone evaluates coordinates as given.
	PerturbNone PerturbType = iota

	// PerturbSingle displaces each axis by one octave of value noise.
	PerturbSingle

	// PerturbFractal displaces each axis by fractal value noise.
	PerturbFractal
)

var (
	noiseTypeNames   = []string{"Value", "ValueFractal", "Perlin", "PerlinFractal", "Simplex", "SimplexFractal", "Cellular", "WhiteNoise"}
	interpNames      = []string{"Linear", "Hermite", "Quintic"}
	fractalTypeNames = []string{"FBM", "Billow", "RigidMulti"}
	distanceNames    = []string{"Euclidean", "Manhattan", "Natural"}
	returnTypeNames  = []string{"CellValue", "NoiseLookup", "Distance", "Distance2", "Distance2Add", "Distance2Sub", "Distance2Mul", "Distance2Div"}
	perturbTypeNames = []string{"None", "Single", "Fractal"}
)

func enumString(kind string, names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", kind, v)
}

// parseEnum matches s against names, ignoring case.
// cases.Caser is stateful, so a fresh one is made per call.
func parseEnum(kind string, names []string, s string) (uint8, error) {
	want := cases.Fold().String(strings.TrimSpace(s))
	for i, name := range names {
		if cases.Fold().String(name) == want {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("noise: unknown %s %q", kind, s)
}

func (t NoiseType) String() string { return enumString("NoiseType", noiseTypeNames, uint8(t)) }

// MarshalText implements encoding.TextMarshaler.
func (t NoiseType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (t *NoiseType) UnmarshalText(b []byte) error {
	v, err := parseEnum("noise type", noiseTypeNames, string(b))
	if err != nil {
		return err
	}
	*t = NoiseType(v)
	return nil
}

func (i Interp) String() string { return enumString("Interp", interpNames, uint8(i)) }

// MarshalText implements encoding.TextMarshaler.
func (i Interp) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interp) UnmarshalText(b []byte) error {
	v, err := parseEnum("interpolation", interpNames, string(b))
	if err != nil {
		return err
	}
	*i = Interp(v)
	return nil
}

func (t FractalType) String() string { return enumString("FractalType", fractalTypeNames, uint8(t)) }

// MarshalText implements encoding.TextMarshaler.
func (t FractalType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *FractalType) UnmarshalText(b []byte) error {
	v, err := parseEnum("fractal type", fractalTypeNames, string(b))
	if err != nil {
		return err
	}
	*t = FractalType(v)
	return nil
}

func (d CellularDistanceFunction) String() string {
	return enumString("CellularDistanceFunction", distanceNames, uint8(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d CellularDistanceFunction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *CellularDistanceFunction) UnmarshalText(b []byte) error {
	v, err := parseEnum("cellular distance function", distanceNames, string(b))
	if err != nil {
		return err
	}
	*d = CellularDistanceFunction(v)
	return nil
}

func (r CellularReturnType) String() string {
	return enumString("CellularReturnType", returnTypeNames, uint8(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r CellularReturnType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *CellularReturnType) UnmarshalText(b []byte) error {
	v, err := parseEnum("cellular return type", returnTypeNames, string(b))
	if err != nil {
		return err
	}
	*r = CellularReturnType(v)
	return nil
}

func (p PerturbType) String() string { return enumString("PerturbType", perturbTypeNames, uint8(p)) }

// MarshalText implements encoding.TextMarshaler.
func (p PerturbType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PerturbType) UnmarshalText(b []byte) error {
	v, err := parseEnum("perturb type", perturbTypeNames, string(b))
	if err != nil {
		return err
	}
	*p = PerturbType(v)
	return nil
}
