package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Batch describes a set of independent simulations stepped with a fixed dt.
type Batch struct {
	Runs   int
	Frames int
	DT     float64
	// Build creates the simulation for one run. Each run owns its Stepper;
	// nothing is shared between runs.
	Build func(run int) (Stepper, error)
}

// RunResult reports one finished run.
type RunResult struct {
	Run     int
	Frames  int
	Elapsed time.Duration
	Stepper Stepper
}

// FramesPerSecond is the stepping throughput of the run.
func (r RunResult) FramesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// RunBatch executes every run of b on pool and returns the results in run
// order. The first failing run cancels the others.
func RunBatch(ctx context.Context, pool *WorkerPool, b Batch) ([]RunResult, error) {
	if b.Runs <= 0 || b.Frames <= 0 || b.DT <= 0 {
		return nil, fmt.Errorf("invalid batch: runs=%d frames=%d dt=%v", b.Runs, b.Frames, b.DT)
	}
	if b.Build == nil {
		return nil, fmt.Errorf("invalid batch: nil Build")
	}

	results := make([]RunResult, b.Runs)
	g, ctx := errgroup.WithContext(ctx)

	for run := 0; run < b.Runs; run++ {
		g.Go(func() error {
			job := Job{ID: run, Run: func() error {
				res, err := runOne(ctx, b, run)
				if err != nil {
					return err
				}
				results[run] = res
				return nil
			}}
			select {
			case err := <-pool.Submit(ctx, job):
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(ctx context.Context, b Batch, run int) (RunResult, error) {
	stepper, err := b.Build(run)
	if err != nil {
		return RunResult{}, fmt.Errorf("run %d: build: %w", run, err)
	}

	start := time.Now()
	frames := 0
	for ; frames < b.Frames; frames++ {
		if frames%64 == 0 && ctx.Err() != nil {
			return RunResult{}, ctx.Err()
		}
		if err := stepper.Step(b.DT); err != nil {
			if errors.Is(err, ErrStop) {
				break
			}
			return RunResult{}, fmt.Errorf("run %d: frame %d: %w", run, frames, err)
		}
	}
	return RunResult{
		Run:     run,
		Frames:  frames,
		Elapsed: time.Since(start),
		Stepper: stepper,
	}, nil
}
