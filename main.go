package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/0x5844/arcade-physics/internal/config"
)

// Build information (set by build script)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}

func run(name string, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(name, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "arcade2d %s\n", Version)
		fmt.Fprintf(stdout, "Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "Go version: %s\n", GoVersion)
		return 0
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger, closeLog, err := setupLogging(cfg, stderr, time.Now())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	if cfg.ProfileCPU != "" {
		f, err := os.Create(cfg.ProfileCPU)
		if err != nil {
			logger.Printf("Could not create CPU profile: %v", err)
			return 1
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Printf("Could not start CPU profile: %v", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger.Printf("Starting arcade2d v%s (mode: %s, seed: %d)", Version, cfg.Mode, cfg.Seed)
	logger.Printf("CPU Cores: %d, Workers: %d", runtime.NumCPU(), cfg.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModePlay:
		err = runPlay(ctx, cfg, logger)
	case config.ModeHeadless:
		err = runHeadless(ctx, cfg, logger)
	case config.ModeBench:
		err = runBench(ctx, cfg, logger)
	}

	if cfg.ProfileMem != "" {
		writeHeapProfile(cfg.ProfileMem, logger)
	}

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		logger.Printf("Error: %v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func writeHeapProfile(path string, logger *log.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.Printf("Could not create memory profile: %v", err)
		return
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		logger.Printf("Could not write memory profile: %v", err)
	}
}

// withDuration bounds ctx by the configured wall-clock duration.
func withDuration(ctx context.Context, seconds float64) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds*float64(time.Second)))
}
