package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/0x5844/arcade-physics/internal/config"
	"github.com/0x5844/arcade-physics/internal/engine"
	"github.com/0x5844/arcade-physics/internal/scenario"
)

// benchSummary aggregates a batch of runs.
type benchSummary struct {
	Runs       int
	Frames     int
	Wall       time.Duration
	MinFPS     float64
	MaxFPS     float64
	MeanFPS    float64
	Contacts   uint64
	Removed    uint64
	Throughput float64
}

func summarize(results []engine.RunResult, wall time.Duration) benchSummary {
	s := benchSummary{Runs: len(results), Wall: wall}
	for i, r := range results {
		fps := r.FramesPerSecond()
		if i == 0 || fps < s.MinFPS {
			s.MinFPS = fps
		}
		if fps > s.MaxFPS {
			s.MaxFPS = fps
		}
		s.MeanFPS += fps
		s.Frames += r.Frames
		if sim, ok := r.Stepper.(*scenario.Simulation); ok {
			st := sim.Scene.Stats()
			s.Contacts += st.Contacts
			s.Removed += st.Removed
		}
	}
	if len(results) > 0 {
		s.MeanFPS /= float64(len(results))
	}
	if wall > 0 {
		s.Throughput = float64(s.Frames) / wall.Seconds()
	}
	return s
}

// runBench steps cfg.Runs independent scenes for cfg.Frames frames each on
// a pool of cfg.Workers goroutines. Run i uses seed cfg.Seed+i.
func runBench(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	pool := engine.NewWorkerPool(cfg.Workers)
	defer pool.Close()

	batch := engine.Batch{
		Runs:   cfg.Runs,
		Frames: cfg.Frames,
		DT:     1 / float64(cfg.FPS),
		Build: func(run int) (engine.Stepper, error) {
			return buildSimulation(cfg, rand.New(rand.NewSource(cfg.Seed+int64(run))))
		},
	}

	logger.Printf("Benchmark: %d runs x %d frames of %q on %d workers",
		cfg.Runs, cfg.Frames, cfg.SceneType, cfg.Workers)

	start := time.Now()
	results, err := engine.RunBatch(ctx, pool, batch)
	if err != nil {
		return fmt.Errorf("benchmark: %w", err)
	}
	defer func() {
		for _, r := range results {
			if sim, ok := r.Stepper.(*scenario.Simulation); ok {
				sim.Close()
			}
		}
	}()

	s := summarize(results, time.Since(start))
	ps := pool.Stats()
	logger.Printf("Benchmark completed in %v:", s.Wall.Round(time.Millisecond))
	logger.Printf("  Frames: %d (%.0f frames/s overall)", s.Frames, s.Throughput)
	logger.Printf("  Per run FPS: min %.0f / mean %.0f / max %.0f", s.MinFPS, s.MeanFPS, s.MaxFPS)
	logger.Printf("  Contacts: %d, Removed: %d", s.Contacts, s.Removed)
	logger.Printf("  Jobs: %d completed, %d failed", ps.Completed, ps.Failed)
	return nil
}
