package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/0x5844/arcade-physics/internal/config"
	"github.com/0x5844/arcade-physics/internal/engine"
	"github.com/0x5844/arcade-physics/internal/game"
	"github.com/0x5844/arcade-physics/internal/scenario"
	"github.com/0x5844/arcade-physics/physics"
)

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"version", []string{"-version"}, 0, "arcade2d dev", ""},
		{"help", []string{"-h"}, 0, "", "Usage:"},
		{"bad flag", []string{"-bogus"}, 2, "", "bogus"},
		{"invalid config", []string{"-fps", "0"}, 2, "", "fps must be between"},
		{"missing scene", []string{"-mode", "headless", "-quiet", "-scene", "does-not-exist.yaml"}, 1, "", "build scene"},
		{"headless", []string{"-mode", "headless", "-quiet", "-scene-type", "billiards", "-duration", "0.2", "-fps", "200"}, 0, "", ""},
		{"bench", []string{"-mode", "bench", "-quiet", "-runs", "3", "-frames", "30", "-workers", "2", "-seed", "5"}, 0, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run("arcade2d", tt.args, &stdout, &stderr)
			if code != tt.code {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tt.code, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.stdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.stdout)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.stderr)
			}
		})
	}
}

func TestSetupLogging(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name    string
		cfg     config.Config
		console bool
		file    bool
	}{
		{"default", config.Config{Mode: config.ModeHeadless}, true, false},
		{"quiet", config.Config{Mode: config.ModeHeadless, Quiet: true}, false, false},
		{"play keeps the terminal clean", config.Config{Mode: config.ModePlay}, false, false},
		{"debug headless", config.Config{Mode: config.ModeHeadless, Debug: true}, true, true},
		{"debug play", config.Config{Mode: config.ModePlay, Debug: true}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.LogDir = filepath.Join(t.TempDir(), "logs")
			var console bytes.Buffer
			logger, closeLog, err := setupLogging(&tt.cfg, &console, now)
			if err != nil {
				t.Fatalf("setupLogging: %v", err)
			}
			logger.Print("hello")
			if err := closeLog(); err != nil {
				t.Fatalf("close: %v", err)
			}

			if got := strings.Contains(console.String(), "hello"); got != tt.console {
				t.Errorf("console got log = %v, want %v", got, tt.console)
			}
			data, err := os.ReadFile(filepath.Join(tt.cfg.LogDir, "arcade2d-20240301-123000.log"))
			if tt.file {
				if err != nil {
					t.Fatalf("read log file: %v", err)
				}
				if !strings.Contains(string(data), "hello") {
					t.Errorf("log file = %q", data)
				}
			} else if err == nil {
				t.Error("log file written without -debug")
			}
		})
	}
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		in   input
		ok   bool
		quit bool
	}{
		{"p1 forward", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), input{0, game.CmdForward}, true, false},
		{"p1 shifted", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModNone), input{0, game.CmdLeft}, true, false},
		{"p1 fire", tcell.NewEventKey(tcell.KeyRune, 'v', tcell.ModNone), input{0, game.CmdFire}, true, false},
		{"p2 right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input{1, game.CmdRight}, true, false},
		{"p2 back", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), input{1, game.CmdBack}, true, false},
		{"p2 fire", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), input{1, game.CmdFire}, true, false},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), input{}, false, false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), input{}, false, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input{}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ok, quit := decodeKey(tt.ev)
			if in != tt.in || ok != tt.ok || quit != tt.quit {
				t.Errorf("decodeKey = %+v %v %v, want %+v %v %v", in, ok, quit, tt.in, tt.ok, tt.quit)
			}
		})
	}
}

func TestLogRemovals(t *testing.T) {
	sim, err := scenario.Generate("demolition", 4, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer sim.Close()

	var buf bytes.Buffer
	logRemovals(sim.Scene, log.New(&buf, "", 0))

	var target *physics.Body
	for _, b := range sim.Scene.Bodies() {
		if b.Kind() == scenario.KindTarget {
			target = b
			break
		}
	}
	if target == nil {
		t.Fatal("no target in demolition scene")
	}
	target.Remove()
	if err := sim.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Removed target body "+target.ID().String()) {
		t.Errorf("log = %q, want removal of %s", out, target.ID())
	}
	if n := strings.Count(out, "Removed "); n != 1 {
		t.Errorf("logged %d removals, want 1", n)
	}
}

func TestSummarize(t *testing.T) {
	sim, err := scenario.Generate("billiards", 6, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer sim.Close()

	results := []engine.RunResult{
		{Run: 0, Frames: 100, Elapsed: time.Second, Stepper: sim},
		{Run: 1, Frames: 100, Elapsed: 500 * time.Millisecond},
	}
	s := summarize(results, time.Second)
	if s.Runs != 2 || s.Frames != 200 {
		t.Errorf("runs %d frames %d", s.Runs, s.Frames)
	}
	if s.MinFPS != 100 || s.MaxFPS != 200 || s.MeanFPS != 150 {
		t.Errorf("fps min %v mean %v max %v", s.MinFPS, s.MeanFPS, s.MaxFPS)
	}
	if s.Throughput != 200 {
		t.Errorf("throughput = %v", s.Throughput)
	}
}
