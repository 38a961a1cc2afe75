package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/0x5844/arcade-physics/internal/config"
)

// setupLogging builds the process logger. Quiet discards console output,
// verbose adds file:line, and debug tees everything into a timestamped file
// under cfg.LogDir. The returned func closes the log file.
func setupLogging(cfg *config.Config, console io.Writer, now time.Time) (*log.Logger, func() error, error) {
	flags := log.LstdFlags
	if cfg.Verbose || cfg.Debug {
		flags |= log.Lshortfile
	}

	out := console
	if cfg.Quiet {
		out = io.Discard
	}
	// Play mode owns the terminal, so the console only gets output before
	// and after the game.
	if cfg.Mode == config.ModePlay && !cfg.Debug {
		out = io.Discard
	}

	if !cfg.Debug {
		return log.New(out, "", flags), func() error { return nil }, nil
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	name := filepath.Join(cfg.LogDir, fmt.Sprintf("arcade2d-%s.log", now.Format("20060102-150405")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	w := io.Writer(f)
	if out != io.Discard && cfg.Mode != config.ModePlay {
		w = io.MultiWriter(out, f)
	}
	return log.New(w, "", flags), f.Close, nil
}
