package noise

// Option configures a Noise during creation.
//
// Example:
//
//	// Default parallel CPU backend, GPU if registered
//	n := noise.New()
//
//	// Reference backend, never the GPU
//	n := noise.New(noise.WithBackend(noise.SequentialBackend{}), noise.WithCPUOnly())
type Option func(*options)

// options holds optional configuration for Noise creation.
type options struct {
	seed    int32
	backend Backend
	cpuOnly bool
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		seed:    DefaultSeed,
		backend: nil, // shared ParallelBackend
	}
}

// WithSeed sets the initial seed.
func WithSeed(seed int32) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithBackend sets the CPU backend used when no accelerator handles a call.
// A nil backend selects the shared parallel backend.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithCPUOnly disables the registered GPU accelerator for this Noise.
func WithCPUOnly() Option {
	return func(o *options) {
		o.cpuOnly = true
	}
}
