//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/noise"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// NoiseAccelerator evaluates noise grids with a wgpu/hal compute kernel.
// It implements the noise.GPUAccelerator interface.
//
// Every Submit uploads the grid axes once, encodes one compute pass per
// octave and waits for the queue once before mapping the values back.
type NoiseAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	gpuReady       bool
	externalDevice bool // true when using shared device (don't destroy on Close)

	logger atomic.Pointer[slog.Logger]
}

var discardLogger = slog.New(slog.DiscardHandler)

var (
	_ noise.GPUAccelerator      = (*NoiseAccelerator)(nil)
	_ noise.DeviceProviderAware = (*NoiseAccelerator)(nil)
)

const supportedOps = noise.AccelValue | noise.AccelValueFractal |
	noise.AccelPerlin | noise.AccelPerlinFractal |
	noise.AccelWhiteNoise | noise.AccelWhiteNoiseInt

func (a *NoiseAccelerator) Name() string { return "wgpu" }

func (a *NoiseAccelerator) CanAccelerate(op noise.AcceleratedOp) bool {
	return op != 0 && op&^supportedOps == 0
}

// SetLogger sets the logger used by the accelerator. Called when
// noise.SetLogger propagates; nil silences it.
func (a *NoiseAccelerator) SetLogger(l *slog.Logger) { a.logger.Store(l) }

func (a *NoiseAccelerator) log() *slog.Logger {
	if l := a.logger.Load(); l != nil {
		return l
	}
	return discardLogger
}

// Init opens a Vulkan device. A missing adapter is not an error: the
// accelerator stays registered and falls back to the CPU.
func (a *NoiseAccelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.initGPU(); err != nil {
		a.log().Warn("noise-gpu: GPU init failed, using CPU fallback", "err", err)
		a.releaseLocked()
	}
	return nil
}

// Ready reports whether a device and pipeline are available.
func (a *NoiseAccelerator) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gpuReady
}

func (a *NoiseAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
}

func (a *NoiseAccelerator) releaseLocked() {
	a.destroyPipeline()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
		}
		if a.instance != nil {
			a.instance.Destroy()
		}
	}
	a.device = nil
	a.instance = nil
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
}

// SetDeviceProvider switches the accelerator to a shared GPU device from
// an external provider (e.g., gogpu). The provider must also implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (a *NoiseAccelerator) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return errors.New("noise-gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return errors.New("noise-gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return errors.New("noise-gpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	a.device = device
	a.queue = queue
	a.externalDevice = true

	if err := a.createPipeline(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("noise-gpu: create pipeline with shared device: %w", err)
	}
	a.gpuReady = true
	a.log().Info("noise-gpu: switched to shared GPU device")
	return nil
}

// Submit evaluates req on the GPU. Requests the kernel does not cover, or
// any request while no device is open, return noise.ErrFallbackToCPU.
func (a *NoiseAccelerator) Submit(req *noise.Request) ([]float32, error) {
	pl, err := newPlan(req)
	if err != nil {
		return nil, noise.ErrFallbackToCPU
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return nil, noise.ErrFallbackToCPU
	}

	out, err := a.run(pl)
	if err != nil {
		a.log().Warn("noise-gpu: dispatch failed", "op", req.Op(), "grid", req.Grid(), "err", err)
		return nil, err
	}
	a.log().Debug("noise-gpu: dispatch", "op", req.Op(), "grid", req.Grid(), "passes", len(pl.passes))
	return out, nil
}

// run executes pl. The caller holds a.mu.
func (a *NoiseAccelerator) run(pl *plan) ([]float32, error) {
	coordBytes := pl.coordBytes()
	outSize := uint64(pl.total) * 4 //nolint:gosec // bounded by maxPoints
	weightSize := pl.weightSize()

	coordBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "noise_coords", Size: uint64(len(coordBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageMapWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("create coords buffer: %w", err)
	}
	defer a.device.DestroyBuffer(coordBuf)

	outBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "noise_out", Size: outSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create output buffer: %w", err)
	}
	defer a.device.DestroyBuffer(outBuf)

	weightBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "noise_weight", Size: weightSize,
		Usage: gputypes.BufferUsageStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("create weight buffer: %w", err)
	}
	defer a.device.DestroyBuffer(weightBuf)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "noise_staging", Size: outSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	if err := a.queue.WriteBuffer(coordBuf, 0, coordBytes); err != nil {
		return nil, fmt.Errorf("upload coords: %w", err)
	}

	uniformBufs, bindGroups, err := a.createPassBindings(pl, coordBuf, uint64(len(coordBytes)), outBuf, outSize, weightBuf, weightSize)
	defer a.cleanupBindings(uniformBufs, bindGroups)
	if err != nil {
		return nil, err
	}

	readback, err := a.encodePasses(pl, bindGroups, outBuf, stagingBuf, outSize)
	if err != nil {
		return nil, err
	}
	return decode(readback, pl.total), nil
}

// createPassBindings creates one uniform buffer and bind group per octave.
// Every bind group shares the coordinate, output and weight buffers.
func (a *NoiseAccelerator) createPassBindings(
	pl *plan,
	coordBuf hal.Buffer, coordSize uint64,
	outBuf hal.Buffer, outSize uint64,
	weightBuf hal.Buffer, weightSize uint64,
) ([]hal.Buffer, []hal.BindGroup, error) {
	uniformBufs := make([]hal.Buffer, 0, len(pl.passes))
	bindGroups := make([]hal.BindGroup, 0, len(pl.passes))

	for i := range pl.passes {
		ub, err := a.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "noise_params", Size: octaveParamsSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageMapWrite,
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create uniform buffer %d: %w", i, err)
		}
		uniformBufs = append(uniformBufs, ub)
		if err := a.queue.WriteBuffer(ub, 0, pl.passes[i].bytes()); err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("upload params %d: %w", i, err)
		}

		bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label: "noise_bind", Layout: a.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: octaveParamsSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: coordBuf.NativeHandle(), Offset: 0, Size: coordSize}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: outBuf.NativeHandle(), Offset: 0, Size: outSize}},
				{Binding: 3, Resource: gputypes.BufferBinding{Buffer: weightBuf.NativeHandle(), Offset: 0, Size: weightSize}},
			},
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create bind group %d: %w", i, err)
		}
		bindGroups = append(bindGroups, bg)
	}
	return uniformBufs, bindGroups, nil
}

func (a *NoiseAccelerator) cleanupBindings(uniformBufs []hal.Buffer, bindGroups []hal.BindGroup) {
	for _, bg := range bindGroups {
		if bg != nil {
			a.device.DestroyBindGroup(bg)
		}
	}
	for _, ub := range uniformBufs {
		if ub != nil {
			a.device.DestroyBuffer(ub)
		}
	}
}

// encodePasses records one compute pass per octave in a single encoder,
// copies the output to the staging buffer, waits for the GPU and maps the
// staging buffer back. Storage buffer barriers between passes order the
// accumulation.
func (a *NoiseAccelerator) encodePasses(
	pl *plan, bindGroups []hal.BindGroup,
	outBuf, stagingBuf hal.Buffer, outSize uint64,
) ([]byte, error) {
	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "noise_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("noise"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	for _, bg := range bindGroups {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "noise_octave"})
		pass.SetPipeline(a.pipeline)
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch(pl.groupsX, pl.groupsY, 1)
		pass.End()
	}

	encoder.CopyBufferToBuffer(outBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: outSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	subIdx, err := a.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	if err := a.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wait for GPU: %w", err)
	}
	if done := a.queue.PollCompleted(); done < subIdx {
		return nil, fmt.Errorf("wait for GPU: submission %d not complete (last %d)", subIdx, done)
	}

	mapping, err := a.device.MapBuffer(stagingBuf, 0, outSize)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	readback := make([]byte, outSize)
	copy(readback, unsafe.Slice((*byte)(mapping.Ptr), outSize))
	if err := a.device.UnmapBuffer(stagingBuf); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return readback, nil
}

func (a *NoiseAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return errors.New("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return errors.New("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipeline(); err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	a.gpuReady = true
	a.log().Info("noise-gpu: GPU accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *NoiseAccelerator) createPipeline() error {
	spirv, err := compileSPIRV(noiseShaderSource)
	if err != nil {
		return err
	}
	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "noise",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create noise shader module: %w", err)
	}
	a.shader = shader

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "noise_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create noise bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "noise_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create noise pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "noise_pipeline", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create noise compute pipeline: %w", err)
	}
	a.pipeline = pipeline
	return nil
}

func (a *NoiseAccelerator) destroyPipeline() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyComputePipeline(a.pipeline)
		a.pipeline = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}
