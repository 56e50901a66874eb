package primitive

// Interp selects the curve used to smooth between lattice corners.
type Interp uint8

const (
	// Linear interpolates without smoothing.
	Linear Interp = iota

	// Hermite uses 3t^2 - 2t^3.
	Hermite

	// Quintic uses 6t^5 - 15t^4 + 10t^3.
	Quintic
)

// Curve maps a fractional cell offset in [0, 1) to an interpolation weight.
type Curve func(t float32) float32

// CurveFor returns the curve for in. Unknown modes use Quintic.
func CurveFor(in Interp) Curve {
	switch in {
	case Linear:
		return linearCurve
	case Hermite:
		return hermiteCurve
	default:
		return quinticCurve
	}
}

func linearCurve(t float32) float32 { return t }

func hermiteCurve(t float32) float32 { return t * t * (3 - 2*t) }

func quinticCurve(t float32) float32 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(a, b, t float32) float32 { return a + t*(b-a) }
