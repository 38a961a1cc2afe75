// Package config holds the command line configuration. Values come from
// defaults, then an optional YAML file, then explicitly set flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"github.com/0x5844/arcade-physics/internal/scenario"
)

const (
	ModePlay     = "play"
	ModeHeadless = "headless"
	ModeBench    = "bench"
)

type Config struct {
	Mode string `yaml:"mode"`

	// Simulation parameters
	Duration float64 `yaml:"duration"`
	FPS      int     `yaml:"fps"`
	MaxStep  float64 `yaml:"max_step"`
	Seed     int64   `yaml:"seed"`

	// Scene settings
	SceneFile string `yaml:"scene"`
	SceneType string `yaml:"scene_type"`
	Bodies    int    `yaml:"bodies"`

	// Benchmark settings
	Workers int `yaml:"workers"`
	Runs    int `yaml:"runs"`
	Frames  int `yaml:"frames"`

	// Audio
	Mute   bool    `yaml:"mute"`
	Volume float64 `yaml:"volume"`

	// Output settings
	Verbose       bool    `yaml:"verbose"`
	Quiet         bool    `yaml:"quiet"`
	Debug         bool    `yaml:"debug"`
	LogDir        string  `yaml:"log_dir"`
	StatsInterval float64 `yaml:"stats_interval"`
	ProfileCPU    string  `yaml:"-"`
	ProfileMem    string  `yaml:"-"`

	ConfigFile  string `yaml:"-"`
	ShowVersion bool   `yaml:"-"`
}

func Default() Config {
	return Config{
		Mode:          ModePlay,
		FPS:           60,
		SceneType:     "default",
		Bodies:        20,
		Workers:       runtime.NumCPU(),
		Runs:          8,
		Frames:        600,
		LogDir:        "logs",
		StatsInterval: 2.0,
	}
}

// Register binds every flag to a field of c.
func (c *Config) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.Mode, "mode", c.Mode, "run mode (play, headless, bench)")

	// Simulation parameters
	fs.Float64Var(&c.Duration, "duration", c.Duration, "run duration in seconds (0 = until interrupted)")
	fs.IntVar(&c.FPS, "fps", c.FPS, "target frames per second")
	fs.Float64Var(&c.MaxStep, "max-step", c.MaxStep, "clamp frame delta to this many seconds (0 = off)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = time based)")

	// Scene settings
	fs.StringVar(&c.SceneFile, "scene", c.SceneFile, "YAML or JSON scene file (headless)")
	fs.StringVar(&c.SceneType, "scene-type", c.SceneType, "generated scene (default, orbits, springs, billiards, demolition)")
	fs.IntVar(&c.Bodies, "bodies", c.Bodies, "number of bodies for generated scenes")

	// Benchmark settings
	fs.IntVar(&c.Workers, "workers", c.Workers, "bench worker goroutines")
	fs.IntVar(&c.Runs, "runs", c.Runs, "bench scenes to simulate")
	fs.IntVar(&c.Frames, "frames", c.Frames, "bench frames per scene")

	// Audio
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable sound")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "volume offset in powers of two (0 = unchanged)")

	// Output settings
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "verbose output")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "minimal output")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write a debug log file")
	fs.StringVar(&c.LogDir, "log-dir", c.LogDir, "directory for debug logs")
	fs.Float64Var(&c.StatsInterval, "stats-interval", c.StatsInterval, "statistics reporting interval in seconds")
	fs.StringVar(&c.ProfileCPU, "profile-cpu", c.ProfileCPU, "CPU profile output file")
	fs.StringVar(&c.ProfileMem, "profile-mem", c.ProfileMem, "memory profile output file")

	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML config file; flags override it")
	fs.BoolVar(&c.ShowVersion, "version", c.ShowVersion, "show version information")
}

// Parse reads args into a Config. When -config names a file its values
// replace the defaults and the flags are applied again on top.
func Parse(name string, args []string, output io.Writer) (*Config, error) {
	cfg := Default()
	fs := newFlagSet(name, &cfg, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ConfigFile == "" || cfg.ShowVersion {
		return &cfg, nil
	}

	file, err := LoadFile(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	merged := Default()
	if err := copier.CopyWithOption(&merged, file, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("merge config: %w", err)
	}
	if err := newFlagSet(name, &merged, io.Discard).Parse(args); err != nil {
		return nil, err
	}
	return &merged, nil
}

func newFlagSet(name string, cfg *Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	cfg.Register(fs)
	fs.Usage = func() { usage(fs, name) }
	return fs
}

func usage(fs *flag.FlagSet, name string) {
	w := fs.Output()
	fmt.Fprintf(w, "arcade2d - 2D rigid-body arcade physics\n\n")
	fmt.Fprintf(w, "Usage: %s [OPTIONS]\n\n", name)
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s                                  play in the terminal\n", name)
	fmt.Fprintf(w, "  %s -mode headless -scene-type orbits -duration 10\n", name)
	fmt.Fprintf(w, "  %s -mode headless -scene scene.yaml -verbose\n", name)
	fmt.Fprintf(w, "  %s -mode bench -runs 16 -frames 1000 -profile-cpu cpu.prof\n", name)
}

// LoadFile decodes a YAML config file. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModePlay, ModeHeadless, ModeBench:
	default:
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}
	if c.FPS < 1 || c.FPS > 1000 {
		return fmt.Errorf("fps must be between 1 and 1000")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if c.MaxStep < 0 {
		return fmt.Errorf("max-step cannot be negative")
	}
	if c.Bodies < 1 {
		return fmt.Errorf("bodies count must be at least 1")
	}
	if c.SceneFile == "" && !slices.Contains(scenario.Types(), c.SceneType) {
		return fmt.Errorf("invalid scene type: %s (want one of %v)", c.SceneType, scenario.Types())
	}
	if c.Mode == ModeBench {
		if c.Workers < 1 {
			return fmt.Errorf("workers must be at least 1")
		}
		if c.Runs < 1 || c.Frames < 1 {
			return fmt.Errorf("runs and frames must be at least 1")
		}
	}
	if c.StatsInterval <= 0 {
		return fmt.Errorf("stats-interval must be positive")
	}
	if c.Verbose && c.Quiet {
		return fmt.Errorf("verbose and quiet are mutually exclusive")
	}
	return nil
}
