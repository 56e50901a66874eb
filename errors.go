package noise

import "errors"

// Configuration errors. They are detected before any backend work starts and
// are returned wrapped in a *ConfigError.
var (
	// ErrMissingLookup is returned when the NoiseLookup return type is used
	// without a lookup set via SetCellularNoiseLookup.
	ErrMissingLookup = errors.New("noise: NoiseLookup return type requires a lookup noise")

	// ErrLookupCycle is returned when a NoiseLookup chain leads back to a
	// Noise already in the chain.
	ErrLookupCycle = errors.New("noise: cellular lookup chain is cyclic")

	// ErrGridTooLarge is returned when the point count exceeds MaxPoints.
	ErrGridTooLarge = errors.New("noise: grid has too many points")

	// ErrNegativeCount is returned for a Range with Count < 0.
	ErrNegativeCount = errors.New("noise: negative range count")

	// ErrUnsupportedDims is returned when a family is asked for a
	// dimensionality it does not define.
	ErrUnsupportedDims = errors.New("noise: unsupported dimensionality")

	// ErrGridKind is returned when integer ranges are used for a float family
	// or the other way round.
	ErrGridKind = errors.New("noise: grid kind does not match noise family")

	// ErrUnknownEnum is returned for an out-of-range enum value.
	ErrUnknownEnum = errors.New("noise: unknown enum value")
)

// ConfigError reports an evaluation call rejected because of its
// configuration or grid. No output was produced.
type ConfigError struct {
	Op  string // evaluation call, e.g. "Cellular2D"
	Err error
}

func (e *ConfigError) Error() string { return "noise: " + e.Op + ": " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// BackendError reports a failure inside the backend or accelerator that ran
// an evaluation. Nothing is retried; the caller decides whether to try again
// on another backend.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string { return "noise: backend " + e.Backend + ": " + e.Err.Error() }

func (e *BackendError) Unwrap() error { return e.Err }
