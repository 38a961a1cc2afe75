// Package engine drives a simulation at a target frame rate and keeps frame
// timing statistics. It also runs independent simulations in batches on a
// worker pool.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStop can be returned by a Stepper to end Run without an error.
var ErrStop = errors.New("engine: stop")

// Stepper advances a simulation by dt seconds.
type Stepper interface {
	Step(dt float64) error
}

// StepFunc adapts a function to Stepper.
type StepFunc func(dt float64) error

func (f StepFunc) Step(dt float64) error {
	return f(dt)
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	TargetFPS int
	// MaxStep clamps the measured frame delta, in seconds. 0 disables it.
	MaxStep     float64
	HistorySize int
	Logger      *log.Logger
}

const (
	defaultFPS         = 60
	defaultHistorySize = 100
)

// Stats is a snapshot of frame timing. Frame times are in milliseconds and
// measure the work done inside Step.
type Stats struct {
	FPS          float64
	AvgFrameTime float64
	MinFrameTime float64
	MaxFrameTime float64
	RecentAvg    float64
	Frames       int64
	Clamped      int64
	SimTime      float64
}

// Engine calls a Stepper once per tick with the wall-clock time between the
// starts of consecutive frames, so time spent inside Step is not lost.
type Engine struct {
	stepper   Stepper
	targetFPS int
	maxStep   float64
	logger    *log.Logger
	running   int32

	mu           sync.Mutex
	stats        Stats
	lastFrame    time.Time
	frameTimeSum float64
	frameHistory []float64
	historySize  int
}

func New(stepper Stepper, opts Options) *Engine {
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = defaultFPS
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = defaultHistorySize
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		stepper:      stepper,
		targetFPS:    opts.TargetFPS,
		maxStep:      opts.MaxStep,
		logger:       opts.Logger,
		historySize:  opts.HistorySize,
		frameHistory: make([]float64, 0, opts.HistorySize),
	}
}

// Run steps the simulation until ctx is done or the Stepper fails. A Stepper
// returning ErrStop ends the loop with a nil error.
func (e *Engine) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&e.running, 0, 1) {
		return fmt.Errorf("engine already running")
	}
	defer atomic.StoreInt32(&e.running, 0)

	ticker := time.NewTicker(time.Second / time.Duration(e.targetFPS))
	defer ticker.Stop()

	prevStart := time.Now()
	e.mu.Lock()
	e.lastFrame = prevStart
	e.mu.Unlock()

	e.logger.Printf("engine: running at %d fps (max step %.3fs)", e.targetFPS, e.maxStep)

	for {
		select {
		case <-ticker.C:
			start := time.Now()
			dt := start.Sub(prevStart).Seconds()
			prevStart = start

			dt, clamped := ClampStep(dt, e.maxStep)
			if err := e.stepper.Step(dt); err != nil {
				if errors.Is(err, ErrStop) {
					e.logger.Printf("engine: stopped after %d frames", e.Stats().Frames)
					return nil
				}
				return fmt.Errorf("frame %d: %w", e.Stats().Frames+1, err)
			}
			e.updateStats(start, dt, clamped)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ClampStep limits dt to maxStep when maxStep is positive.
func ClampStep(dt, maxStep float64) (float64, bool) {
	if maxStep > 0 && dt > maxStep {
		return maxStep, true
	}
	return dt, false
}

func (e *Engine) updateStats(frameStart time.Time, dt float64, clamped bool) {
	now := time.Now()
	frameTime := now.Sub(frameStart).Seconds()

	e.mu.Lock()
	defer e.mu.Unlock()

	if interval := now.Sub(e.lastFrame).Seconds(); interval > 0 {
		e.stats.FPS = 1.0 / interval
	}
	e.lastFrame = now
	e.stats.Frames++
	e.stats.SimTime += dt
	if clamped {
		e.stats.Clamped++
	}

	e.frameTimeSum += frameTime
	e.stats.AvgFrameTime = e.frameTimeSum / float64(e.stats.Frames) * 1000

	ms := frameTime * 1000
	if e.stats.Frames == 1 || ms < e.stats.MinFrameTime {
		e.stats.MinFrameTime = ms
	}
	if ms > e.stats.MaxFrameTime {
		e.stats.MaxFrameTime = ms
	}

	e.frameHistory = append(e.frameHistory, ms)
	if len(e.frameHistory) > e.historySize {
		e.frameHistory = e.frameHistory[1:]
	}
	var sum float64
	for _, v := range e.frameHistory {
		sum += v
	}
	e.stats.RecentAvg = sum / float64(len(e.frameHistory))
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Running reports whether Run is active.
func (e *Engine) Running() bool {
	return atomic.LoadInt32(&e.running) == 1
}
