package noise

import (
	"errors"
	"sync"

	"github.com/gogpu/noise/internal/parallel"
)

// Backend evaluates compiled requests on the CPU.
//
// Submit must return exactly req.Len() values in grid order, or an error.
// Point evaluations are independent, so an implementation may run them in
// any order and on any number of goroutines.
type Backend interface {
	Name() string
	Submit(req *Request) ([]float32, error)
}

// SequentialBackend evaluates every point in order on the calling goroutine.
// It is the reference backend for tests.
type SequentialBackend struct{}

// Name returns "sequential".
func (SequentialBackend) Name() string { return "sequential" }

// Submit evaluates req point by point.
func (SequentialBackend) Submit(req *Request) ([]float32, error) {
	out := make([]float32, req.Len())
	req.EvalInto(out, 0)
	return out, nil
}

// DefaultChunkSize is the number of points per work item in ParallelBackend.
const DefaultChunkSize = 4096

// ParallelBackend spreads the flattened grid over a work-stealing worker
// pool in fixed-size chunks. Each chunk writes its own slice of the output.
type ParallelBackend struct {
	pool  *parallel.WorkerPool
	chunk int
}

// NewParallelBackend creates a backend with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewParallelBackend(workers int) *ParallelBackend {
	return &ParallelBackend{
		pool:  parallel.NewWorkerPool(workers),
		chunk: DefaultChunkSize,
	}
}

// Name returns "parallel".
func (b *ParallelBackend) Name() string { return "parallel" }

// Workers returns the number of pool workers.
func (b *ParallelBackend) Workers() int { return b.pool.Workers() }

// Submit evaluates req across the pool.
func (b *ParallelBackend) Submit(req *Request) ([]float32, error) {
	out := make([]float32, req.Len())
	err := b.pool.ForEachChunk(len(out), b.chunk, func(start, end int) {
		req.EvalInto(out[start:end], start)
	})
	if errors.Is(err, parallel.ErrClosed) {
		return nil, ErrBackendClosed
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close stops the pool. Later submissions fail with ErrBackendClosed.
func (b *ParallelBackend) Close() {
	b.pool.Close()
}

// ErrBackendClosed is returned by a ParallelBackend after Close.
var ErrBackendClosed = errors.New("noise: backend closed")

var (
	defaultBackendOnce sync.Once
	defaultBackend     *ParallelBackend
)

// sharedBackend returns the process-wide ParallelBackend used by every
// Noise created without WithBackend. It is created on first use and never
// closed.
func sharedBackend() *ParallelBackend {
	defaultBackendOnce.Do(func() {
		defaultBackend = NewParallelBackend(0)
	})
	return defaultBackend
}
