package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestClampStep(t *testing.T) {
	tests := []struct {
		name        string
		dt, max     float64
		want        float64
		wantClamped bool
	}{
		{"disabled", 0.5, 0, 0.5, false},
		{"under limit", 0.01, 0.05, 0.01, false},
		{"over limit", 0.2, 0.05, 0.05, true},
		{"at limit", 0.05, 0.05, 0.05, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := ClampStep(tt.dt, tt.max)
			if got != tt.want || clamped != tt.wantClamped {
				t.Errorf("ClampStep(%v, %v) = %v, %v; want %v, %v", tt.dt, tt.max, got, clamped, tt.want, tt.wantClamped)
			}
		})
	}
}

func TestRunStopsOnContext(t *testing.T) {
	var steps atomic.Int64
	eng := New(StepFunc(func(dt float64) error {
		if dt < 0 {
			t.Errorf("negative dt %v", dt)
		}
		steps.Add(1)
		return nil
	}), Options{TargetFPS: 200})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := eng.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run returned %v, want deadline exceeded", err)
	}
	if steps.Load() == 0 {
		t.Fatal("stepper never called")
	}

	stats := eng.Stats()
	if stats.Frames != steps.Load() {
		t.Errorf("Frames = %d, steps = %d", stats.Frames, steps.Load())
	}
	if stats.MinFrameTime > stats.MaxFrameTime {
		t.Errorf("min frame time %v > max %v", stats.MinFrameTime, stats.MaxFrameTime)
	}
	if stats.SimTime <= 0 {
		t.Errorf("SimTime = %v, want > 0", stats.SimTime)
	}
	if eng.Running() {
		t.Error("engine still marked running")
	}
}

func TestRunStepperStop(t *testing.T) {
	n := 0
	eng := New(StepFunc(func(float64) error {
		n++
		if n == 3 {
			return ErrStop
		}
		return nil
	}), Options{TargetFPS: 500})

	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v, want nil", err)
	}
	if got := eng.Stats().Frames; got != 2 {
		t.Errorf("Frames = %d, want 2", got)
	}
}

func TestRunStepperError(t *testing.T) {
	boom := errors.New("boom")
	eng := New(StepFunc(func(float64) error { return boom }), Options{TargetFPS: 500})

	err := eng.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run returned %v, want wrapped boom", err)
	}
}

func TestRunClampsStep(t *testing.T) {
	var maxDT float64
	eng := New(StepFunc(func(dt float64) error {
		if dt > maxDT {
			maxDT = dt
		}
		time.Sleep(5 * time.Millisecond)
		return nil
	}), Options{TargetFPS: 500, MaxStep: 0.001})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_ = eng.Run(ctx)

	if maxDT > 0.001 {
		t.Errorf("stepper saw dt %v above MaxStep", maxDT)
	}
	if eng.Stats().Clamped == 0 {
		t.Error("no frame reported as clamped")
	}
}

func TestRunDeltaCoversStepTime(t *testing.T) {
	var sum float64
	n := 0
	eng := New(StepFunc(func(dt float64) error {
		sum += dt
		n++
		if n == 30 {
			return ErrStop
		}
		time.Sleep(12 * time.Millisecond)
		return nil
	}), Options{TargetFPS: 50})

	begin := time.Now()
	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	wall := time.Since(begin).Seconds()

	// The deltas tile the time from Run's start to the last frame's start.
	if sum < 0.8*wall || sum > wall {
		t.Errorf("sum of dt = %.3fs, wall = %.3fs", sum, wall)
	}
	if st := eng.Stats(); st.SimTime < 0.8*wall {
		t.Errorf("SimTime = %.3fs, wall = %.3fs", st.SimTime, wall)
	}
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	started := make(chan struct{})
	var once atomic.Bool
	eng := New(StepFunc(func(float64) error {
		if once.CompareAndSwap(false, true) {
			close(started)
		}
		return nil
	}), Options{TargetFPS: 200})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	<-started
	if err := eng.Run(ctx); err == nil {
		t.Error("second Run succeeded")
	}
	cancel()
	<-done
}
