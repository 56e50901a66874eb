//go:build !nogpu

// Package gpu registers the wgpu compute accelerator for noise evaluation.
//
// Import this package to evaluate value, Perlin and white noise grids on the
// GPU. Other families, and any request with domain warp, keep running on the
// CPU backend.
//
// If GPU initialization fails (no Vulkan adapter available), the accelerator
// stays registered and every request falls back to the CPU.
//
// Usage:
//
//	import _ "github.com/gogpu/noise/gpu" // enable GPU evaluation
package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/noise"
	gpuimpl "github.com/gogpu/noise/internal/gpu"
)

func init() {
	if err := noise.RegisterAccelerator(&gpuimpl.NoiseAccelerator{}); err != nil {
		noise.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider configures the GPU accelerator to use a shared GPU device
// from an external provider (e.g., gogpu) instead of opening its own.
//
// The provider must also implement HalDevice() any and HalQueue() any for
// direct HAL access.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	return noise.SetAcceleratorDeviceProvider(provider)
}
