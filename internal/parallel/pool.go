// Package parallel provides the work-stealing goroutine pool that spreads a
// flattened sample grid across CPU cores.
package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is handed to a pool that is shutting down.
var ErrClosed = errors.New("parallel: worker pool closed")

// WorkerPool is a pool of goroutines for parallel evaluation.
//
// The pool distributes work items across multiple workers, each with their own
// queue. Workers can steal work from other workers when their own queue is empty.
// This helps balance load when some chunks are slower than others (cellular
// lookups, deep fractals).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	// Each worker primarily pulls from its own queue but can steal from others.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// queueMu is held for reading while work is queued and for writing
	// while Close stops the workers, so no item is queued after its worker
	// has drained and exited.
	queueMu sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffer size: 2-4x workers helps hide latency
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}

	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			// Drain remaining work before exiting
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			if work != nil {
				work()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				// No work available anywhere, block on own queue
				select {
				case <-p.done:
					p.drainQueue(myQueue)
					return
				case work := <-myQueue:
					if work != nil {
						work()
					}
				}
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}

		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for all of it to
// complete. It returns ErrClosed without running anything if the pool is
// closed. A Close that races with ExecuteAll waits until every item is
// queued, and the workers drain their queues before exiting.
func (p *WorkerPool) ExecuteAll(work []func()) error {
	if len(work) == 0 {
		return nil
	}

	p.queueMu.RLock()
	if !p.running.Load() {
		p.queueMu.RUnlock()
		return ErrClosed
	}

	var completionWG sync.WaitGroup
	completionWG.Add(len(work))
	for i, fn := range work {
		// May block while the queue is full; workers keep running until
		// Close gets the write lock.
		p.workQueues[i%p.workers] <- func() {
			defer completionWG.Done()
			fn()
		}
	}
	p.queueMu.RUnlock()

	completionWG.Wait()
	return nil
}

// ForEachChunk splits [0, n) into chunks of at most size indices and runs
// fn on each chunk in parallel. Chunks never overlap, so fn may write to
// disjoint parts of a shared slice without locking.
func (p *WorkerPool) ForEachChunk(n, size int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}
	size = max(size, 1)
	chunks := (n + size - 1) / size
	work := make([]func(), chunks)
	for c := range chunks {
		start := c * size
		end := min(start+size, n)
		work[c] = func() { fn(start, end) }
	}
	return p.ExecuteAll(work)
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.queueMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.queueMu.Unlock()
		return
	}
	close(p.done)
	p.queueMu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
