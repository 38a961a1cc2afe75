package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned for jobs submitted after Close.
var ErrPoolClosed = errors.New("worker pool closed")

// Job is a unit of work for the WorkerPool.
type Job struct {
	ID  int
	Run func() error
}

type submission struct {
	job    Job
	result chan error
}

// PoolStats is a snapshot of the pool counters.
type PoolStats struct {
	Workers   int
	Active    int64
	Completed int64
	Failed    int64
}

// WorkerPool runs jobs on a fixed set of goroutines. A job that panics is
// reported as a failed job instead of killing the process.
type WorkerPool struct {
	workers int
	queue   chan submission
	wg      sync.WaitGroup
	quit    chan struct{}
	once    sync.Once

	active    atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

func NewWorkerPool(workers int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	wp := &WorkerPool{
		workers: workers,
		queue:   make(chan submission, workers*8),
		quit:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case s := <-wp.queue:
			wp.active.Add(1)
			err := runJob(s.job)
			wp.active.Add(-1)
			wp.completed.Add(1)
			if err != nil {
				wp.failed.Add(1)
			}
			// Buffered, never blocks.
			s.result <- err
		case <-wp.quit:
			return
		}
	}
}

func runJob(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %d panicked: %v\n%s", job.ID, r, debug.Stack())
		}
	}()
	return job.Run()
}

// Submit queues job and returns a channel that receives its result. The
// channel receives ctx.Err() or ErrPoolClosed if the job could not be queued.
func (wp *WorkerPool) Submit(ctx context.Context, job Job) <-chan error {
	result := make(chan error, 1)
	select {
	case <-wp.quit:
		result <- ErrPoolClosed
		return result
	default:
	}
	select {
	case wp.queue <- submission{job: job, result: result}:
	case <-ctx.Done():
		result <- ctx.Err()
	case <-wp.quit:
		result <- ErrPoolClosed
	}
	return result
}

func (wp *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Workers:   wp.workers,
		Active:    wp.active.Load(),
		Completed: wp.completed.Load(),
		Failed:    wp.failed.Load(),
	}
}

// Close stops the workers. Jobs still queued are dropped; their result
// channels never receive.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		close(wp.quit)
		wp.wg.Wait()
	})
}
