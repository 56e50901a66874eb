//go:build !nogpu

// Package gpu evaluates noise grids on the GPU through wgpu/hal compute
// shaders.
//
// This is an internal package. It is registered with the noise package by
// a blank import of github.com/gogpu/noise/gpu.
//
// # Kernel
//
// A single WGSL kernel (shaders/noise.wgsl) is compiled to SPIR-V with naga
// and covers value, gradient (Perlin) and white noise in two to four
// dimensions. The host uploads the frequency-scaled sample coordinates of
// each axis once; every invocation decodes its flattened grid index
// x-fastest and samples one point.
//
// Fractal variants run one compute pass per octave in a single command
// encoder. Each pass reads the running sum from the output buffer and
// writes it back, so the last pass leaves the bounded result in place.
// Kernels avoid shader loops entirely.
//
// # Fallback
//
// Requests the kernel cannot reproduce (simplex, cellular, domain warp,
// oversized grids) return noise.ErrFallbackToCPU and are evaluated by the
// CPU backend. When no Vulkan adapter is available the accelerator stays
// registered but falls back for every request.
package gpu
