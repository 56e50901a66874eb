package noise

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// funcBackend adapts a function to Backend.
type funcBackend struct {
	name   string
	submit func(req *Request) ([]float32, error)
}

func (b funcBackend) Name() string { return b.name }

func (b funcBackend) Submit(req *Request) ([]float32, error) { return b.submit(req) }

func TestSequentialAndParallelAgree(t *testing.T) {
	pb := NewParallelBackend(3)
	defer pb.Close()
	pb.chunk = 5

	seq := New(WithBackend(SequentialBackend{}), WithCPUOnly())
	par := New(WithBackend(pb), WithCPUOnly())
	for _, n := range []*Noise{seq, par} {
		n.SetNoiseType(NoiseCellular)
		n.SetCellularReturnType(ReturnDistance2Sub)
		n.SetFrequency(0.3)
	}
	x, y, z := Range{Count: 17, Step: 1}, Range{Count: 9, Step: 1}, Range{Count: 3, Step: 2}
	want, err := seq.Noise3D(x, y, z)
	if err != nil {
		t.Fatal(err)
	}
	got, err := par.Noise3D(x, y, z)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parallel differs from sequential:\n%s", diff)
	}
}

func TestParallelBackendClosed(t *testing.T) {
	pb := NewParallelBackend(2)
	pb.Close()

	n := New(WithBackend(pb), WithCPUOnly())
	out, err := n.Value2D(Range{Count: 4, Step: 1}, Range{Count: 4, Step: 1})
	if out != nil {
		t.Error("expected no output from a closed backend")
	}
	var be *BackendError
	if !errors.As(err, &be) || be.Backend != "parallel" {
		t.Fatalf("err = %v, want *BackendError from parallel", err)
	}
	if !errors.Is(err, ErrBackendClosed) {
		t.Errorf("err = %v, want ErrBackendClosed", err)
	}
}

func TestParallelBackendCloseWhileSubmitting(t *testing.T) {
	for range 20 {
		pb := &ParallelBackend{pool: NewParallelBackend(2).pool, chunk: 16}
		n := New(WithBackend(pb), WithCPUOnly())

		done := make(chan error, 1)
		go func() {
			_, err := n.WhiteNoise2D(Range{Count: 256, Step: 1}, Range{Count: 64, Step: 1})
			done <- err
		}()
		pb.Close()

		select {
		case err := <-done:
			if err != nil && !errors.Is(err, ErrBackendClosed) {
				t.Fatalf("err = %v, want nil or ErrBackendClosed", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("evaluation hung after Close")
		}
	}
}

func TestSharedBackendUsedByDefault(t *testing.T) {
	n := New(WithCPUOnly())
	out, err := n.Simplex2D(Range{Count: 100, Step: 1}, Range{Count: 100, Step: 1})
	if err != nil {
		t.Fatal(err)
	}
	ref, _ := newTestNoise().Simplex2D(Range{Count: 100, Step: 1}, Range{Count: 100, Step: 1})
	if diff := cmp.Diff(ref, out); diff != "" {
		t.Errorf("shared backend differs from sequential:\n%s", diff)
	}
	if sharedBackend() != sharedBackend() {
		t.Error("sharedBackend() is not a singleton")
	}
}

func TestBackendErrorWrapped(t *testing.T) {
	boom := errors.New("device lost")
	n := New(WithCPUOnly(), WithBackend(funcBackend{
		name:   "broken",
		submit: func(*Request) ([]float32, error) { return nil, boom },
	}))

	out, err := n.Perlin2D(Range{Count: 2}, Range{Count: 2})
	if out != nil {
		t.Error("expected no output")
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
	var be *BackendError
	if !errors.As(err, &be) || be.Backend != "broken" {
		t.Errorf("err = %#v, want *BackendError{Backend: broken}", err)
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		t.Error("backend failure reported as a configuration error")
	}
}

func TestBackendShortResult(t *testing.T) {
	n := New(WithCPUOnly(), WithBackend(funcBackend{
		name:   "short",
		submit: func(req *Request) ([]float32, error) { return make([]float32, req.Len()-1), nil },
	}))
	var be *BackendError
	if _, err := n.Perlin2D(Range{Count: 3}, Range{Count: 3}); !errors.As(err, &be) {
		t.Errorf("err = %v, want *BackendError", err)
	}
}

func TestBackendNotCalledOnConfigError(t *testing.T) {
	called := false
	n := New(WithCPUOnly(), WithBackend(funcBackend{
		name: "spy",
		submit: func(req *Request) ([]float32, error) {
			called = true
			return make([]float32, req.Len()), nil
		},
	}))
	n.SetCellularReturnType(ReturnNoiseLookup)
	if _, err := n.Cellular2D(Range{Count: 2}, Range{Count: 2}); err == nil {
		t.Fatal("expected configuration error")
	}
	if called {
		t.Error("backend was called for an invalid configuration")
	}
}

func TestSnapshotIsolationDuringSubmit(t *testing.T) {
	var n *Noise
	n = New(WithCPUOnly(), WithBackend(funcBackend{
		name: "mutating",
		submit: func(req *Request) ([]float32, error) {
			// Reconfigure while the call is in flight.
			n.SetSeed(1)
			n.SetFrequency(9)
			n.SetNoiseType(NoiseWhite)
			return SequentialBackend{}.Submit(req)
		},
	}))
	n.SetNoiseType(NoisePerlin)
	n.SetFrequency(0.1)
	x, y := Range{Count: 6, Step: 1}, Range{Count: 6, Step: 1}
	got, err := n.Noise2D(x, y)
	if err != nil {
		t.Fatal(err)
	}

	ref := newTestNoise()
	ref.SetFrequency(0.1)
	want, _ := ref.Perlin2D(x, y)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("in-flight call observed later configuration:\n%s", diff)
	}
	if n.Seed() != 1 {
		t.Error("mutation inside Submit was lost")
	}
}

func TestRequestAccessors(t *testing.T) {
	n := newTestNoise()
	n.SetPerturbType(PerturbSingle)
	var got *Request
	n.backend = funcBackend{name: "capture", submit: func(req *Request) ([]float32, error) {
		got = req
		return SequentialBackend{}.Submit(req)
	}}

	if _, err := n.Value3D(Range{Count: 2}, Range{Count: 3}, Range{Count: 4}); err != nil {
		t.Fatal(err)
	}
	if got.Len() != 24 || got.Grid().Dims() != 3 || got.Op() != (Op{Family: NoiseValue}) {
		t.Errorf("request = len %d, grid %v, op %v", got.Len(), got.Grid(), got.Op())
	}
	if !got.Warped() {
		t.Error("Warped() = false with PerturbSingle")
	}
	if got.Snapshot().Seed != n.Seed() {
		t.Error("request snapshot lost the seed")
	}

	if _, err := n.WhiteNoiseInt2D(RangeInt{Count: 2}, RangeInt{Count: 2}); err != nil {
		t.Fatal(err)
	}
	if got.Warped() {
		t.Error("integer white noise reported as warped")
	}
}

func TestAcceleratorDispatch(t *testing.T) {
	t.Cleanup(resetAccelerator)
	x, y := Range{Count: 4, Step: 1}, Range{Count: 4, Step: 1}
	cpu, _ := newTestNoise().Perlin2D(x, y)

	t.Run("used when capable", func(t *testing.T) {
		resetAccelerator()
		mock := &mockAccelerator{
			name:     "gpu",
			canAccel: AccelPerlin,
			submit: func(req *Request) ([]float32, error) {
				out := make([]float32, req.Len())
				for i := range out {
					out[i] = 0.5
				}
				return out, nil
			},
		}
		if err := RegisterAccelerator(mock); err != nil {
			t.Fatal(err)
		}
		out, err := New(WithBackend(SequentialBackend{})).Perlin2D(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if out[0] != 0.5 || mock.submitCalls() != 1 {
			t.Errorf("accelerator result not used: out[0]=%v calls=%d", out[0], mock.submitCalls())
		}
	})

	t.Run("fallback", func(t *testing.T) {
		resetAccelerator()
		mock := &mockAccelerator{name: "gpu", canAccel: AccelPerlin}
		if err := RegisterAccelerator(mock); err != nil {
			t.Fatal(err)
		}
		out, err := New(WithBackend(SequentialBackend{})).Perlin2D(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if mock.submitCalls() != 1 {
			t.Errorf("accelerator calls = %d, want 1", mock.submitCalls())
		}
		if diff := cmp.Diff(cpu, out); diff != "" {
			t.Errorf("fallback result differs from CPU:\n%s", diff)
		}
	})

	t.Run("error", func(t *testing.T) {
		resetAccelerator()
		boom := errors.New("out of memory")
		mock := &mockAccelerator{
			name:     "gpu",
			canAccel: AccelPerlin,
			submit:   func(*Request) ([]float32, error) { return nil, boom },
		}
		if err := RegisterAccelerator(mock); err != nil {
			t.Fatal(err)
		}
		_, err := New(WithBackend(SequentialBackend{})).Perlin2D(x, y)
		var be *BackendError
		if !errors.As(err, &be) || be.Backend != "gpu" || !errors.Is(err, boom) {
			t.Errorf("err = %v, want *BackendError wrapping %v", err, boom)
		}
	})

	t.Run("skipped", func(t *testing.T) {
		resetAccelerator()
		mock := &mockAccelerator{name: "gpu", canAccel: AccelPerlin, submit: func(*Request) ([]float32, error) {
			return nil, errors.New("must not be called")
		}}
		if err := RegisterAccelerator(mock); err != nil {
			t.Fatal(err)
		}

		// Unsupported family.
		if _, err := New(WithBackend(SequentialBackend{})).Value2D(x, y); err != nil {
			t.Error(err)
		}
		// CPU-only Noise.
		if _, err := newTestNoise().Perlin2D(x, y); err != nil {
			t.Error(err)
		}
		// Warp without AccelPerturb.
		warped := New(WithBackend(SequentialBackend{}))
		warped.SetPerturbType(PerturbSingle)
		if _, err := warped.Perlin2D(x, y); err != nil {
			t.Error(err)
		}
		if mock.submitCalls() != 0 {
			t.Errorf("accelerator called %d times", mock.submitCalls())
		}
	})
}

func BenchmarkParallelBackend(b *testing.B) {
	pb := NewParallelBackend(0)
	defer pb.Close()
	n := New(WithBackend(pb), WithCPUOnly())
	n.SetNoiseType(NoisePerlinFractal)
	x, y := Range{Count: 256, Step: 1}, Range{Count: 256, Step: 1}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := n.Noise2D(x, y); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSequentialBackend(b *testing.B) {
	n := newTestNoise()
	n.SetNoiseType(NoisePerlinFractal)
	x, y := Range{Count: 256, Step: 1}, Range{Count: 256, Step: 1}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := n.Noise2D(x, y); err != nil {
			b.Fatal(err)
		}
	}
}
