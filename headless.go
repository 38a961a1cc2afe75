package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/0x5844/arcade-physics/internal/config"
	"github.com/0x5844/arcade-physics/internal/engine"
	"github.com/0x5844/arcade-physics/internal/scenario"
	"github.com/0x5844/arcade-physics/physics"
)

// observed steps a Simulation and keeps a copy of the scene statistics that
// other goroutines may read.
type observed struct {
	*scenario.Simulation

	mu    sync.Mutex
	stats physics.SceneStats
}

func (o *observed) Step(dt float64) error {
	err := o.Simulation.Step(dt)
	st := o.Scene.Stats()
	o.mu.Lock()
	o.stats = st
	o.mu.Unlock()
	return err
}

func (o *observed) SceneStats() physics.SceneStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// buildSimulation loads cfg.SceneFile or generates cfg.SceneType. rng is
// only used for generated scenes.
func buildSimulation(cfg *config.Config, rng *rand.Rand) (*scenario.Simulation, error) {
	if cfg.SceneFile == "" {
		return scenario.Generate(cfg.SceneType, cfg.Bodies, rng)
	}
	file, err := scenario.LoadFile(cfg.SceneFile)
	if err != nil {
		return nil, err
	}
	return file.Build()
}

func runHeadless(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	sim, err := buildSimulation(cfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	defer sim.Close()

	if sim.Duration == 0 {
		sim.Duration = cfg.Duration
	}
	if cfg.SceneFile != "" {
		logger.Printf("Loaded scene %q from %s", sim.Name, cfg.SceneFile)
	} else {
		logger.Printf("Generated %s scene with %d bodies", sim.Name, sim.Scene.BodyCount())
	}
	if sim.Duration > 0 {
		logger.Printf("Simulation duration: %.2f seconds", sim.Duration)
	} else {
		logger.Println("Press Ctrl+C to stop")
	}

	if cfg.Verbose {
		logRemovals(sim.Scene, logger)
	}

	obs := &observed{Simulation: sim}
	eng := engine.New(obs, engine.Options{TargetFPS: cfg.FPS, MaxStep: cfg.MaxStep, Logger: logger})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go reportStats(ctx, logger, eng, obs, cfg.StatsInterval, cfg.Verbose)

	runErr := eng.Run(ctx)

	st := eng.Stats()
	sc := sim.Scene.Stats()
	logger.Printf("Simulation completed:")
	logger.Printf("  Simulated: %.2fs in %d frames (%.1f FPS)", sim.Elapsed(), st.Frames, st.FPS)
	logger.Printf("  Bodies: %d, Bindings: %d", sc.Bodies, sc.Bindings)
	logger.Printf("  Contacts: %d, Removed: %d, Events: %d", sc.Contacts, sc.Removed, len(sim.Events()))
	logger.Printf("  Momentum: %v, Kinetic energy: %.1f", sim.Momentum(), sim.KineticEnergy())
	if st.Clamped > 0 {
		logger.Printf("  Clamped frames: %d", st.Clamped)
	}
	return runErr
}

// logRemovals logs every body the scene frees.
func logRemovals(scene *physics.Scene, logger *log.Logger) {
	scene.OnRemove(func(b *physics.Body) {
		c := b.Centroid()
		logger.Printf("Removed %s body %s at (%.1f, %.1f)", scenario.KindName(b.Kind()), b.ID(), c.X, c.Y)
	})
}

// reportStats logs engine and scene statistics every interval seconds.
func reportStats(ctx context.Context, logger *log.Logger, eng *engine.Engine, obs *observed, interval float64, verbose bool) {
	ticker := time.NewTicker(time.Duration(interval * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st := eng.Stats()
			sc := obs.SceneStats()
			if verbose {
				logger.Printf("FPS: %.1f | Bodies: %d | Bindings: %d | Contacts: %d | "+
					"Frame: %.2f/%.2f/%.2f ms | Recent: %.2f ms",
					st.FPS, sc.Bodies, sc.Bindings, sc.Contacts,
					st.AvgFrameTime, st.MinFrameTime, st.MaxFrameTime, st.RecentAvg)
			} else {
				logger.Printf("FPS: %.1f | Bodies: %d | Contacts: %d", st.FPS, sc.Bodies, sc.Contacts)
			}

		case <-ctx.Done():
			return
		}
	}
}
