package noise

import (
	"errors"
	"sync"

	"github.com/gogpu/gpucontext"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot handle this request.
// The caller transparently falls back to the CPU backend.
var ErrFallbackToCPU = errors.New("noise: falling back to CPU evaluation")

// AcceleratedOp describes operation types for GPU capability checking.
type AcceleratedOp uint32

const (
	// AccelValue represents single-octave value noise.
	AccelValue AcceleratedOp = 1 << iota

	// AccelValueFractal represents fractal value noise.
	AccelValueFractal

	// AccelPerlin represents single-octave gradient noise.
	AccelPerlin

	// AccelPerlinFractal represents fractal gradient noise.
	AccelPerlinFractal

	// AccelSimplex represents single-octave simplex noise.
	AccelSimplex

	// AccelSimplexFractal represents fractal simplex noise.
	AccelSimplexFractal

	// AccelCellular represents cellular noise.
	AccelCellular

	// AccelWhiteNoise represents white noise over float coordinates.
	AccelWhiteNoise

	// AccelWhiteNoiseInt represents white noise over integer lattice ranges.
	AccelWhiteNoiseInt

	// AccelPerturb represents domain warp applied before the family.
	// A warped request needs both its family bit and this bit.
	AccelPerturb
)

// GPUAccelerator is an optional GPU evaluation provider.
//
// When registered via RegisterAccelerator, every evaluation call tries the
// accelerator first if CanAccelerate reports support. ErrFallbackToCPU sends
// the request to the CPU backend; any other error is returned to the caller
// as a *BackendError.
//
// Users opt in to GPU evaluation via blank import:
//
//	import _ "github.com/gogpu/noise/gpu"
type GPUAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanAccelerate reports whether the accelerator supports the given operation.
	// This is a fast check used to skip the GPU entirely for unsupported requests.
	CanAccelerate(op AcceleratedOp) bool

	// Submit evaluates every point of req and returns the values in grid order.
	// Returns ErrFallbackToCPU if the request cannot be GPU-accelerated.
	Submit(req *Request) ([]float32, error)
}

// DeviceProviderAware is an optional interface for accelerators that can share
// a GPU device with an external provider (e.g., a gogpu window).
// When SetDeviceProvider is called, the accelerator reuses the provided device
// instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider gpucontext.DeviceProvider) error
}

var (
	accelMu sync.RWMutex
	accel   GPUAccelerator
)

// RegisterAccelerator registers a GPU accelerator for optional GPU evaluation.
//
// Only one accelerator can be registered. Subsequent calls replace the previous one.
// The accelerator's Init() method is called during registration.
// If Init() fails, the accelerator is not registered and the error is returned.
//
// Typical usage via blank import in GPU backend packages:
//
//	func init() {
//	    noise.RegisterAccelerator(gpu.NewNoiseAccelerator())
//	}
func RegisterAccelerator(a GPUAccelerator) error {
	if a == nil {
		return errors.New("noise: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Accelerator returns the currently registered GPU accelerator, or nil if none.
func Accelerator() GPUAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator, enabling GPU device sharing. If no accelerator is registered
// or it doesn't support device sharing, this is a no-op.
//
// The provider should also implement HalDevice() any and HalQueue() any
// returning wgpu/hal types; other providers are rejected by the accelerator.
func SetAcceleratorDeviceProvider(provider gpucontext.DeviceProvider) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
