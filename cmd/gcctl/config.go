package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/joshuapare/shadowgc/gc"
	"github.com/joshuapare/shadowgc/internal/logger"
)

// fileConfig is the layout of the --config file:
//
//	[heap]
//	strategy = "recursive"
//	depth_limit = 4096
//	growth_threshold = 0.3
//	max_pages = 0
//	root_capacity = 512
//
//	[log]
//	level = "debug"
//	format = "json"
type fileConfig struct {
	Heap heapConfig `toml:"heap"`
	Log  logConfig  `toml:"log"`
}

type heapConfig struct {
	Strategy        string  `toml:"strategy"`
	DepthLimit      int     `toml:"depth_limit"`
	GrowthThreshold float64 `toml:"growth_threshold"`
	MaxPages        int     `toml:"max_pages"`
	RootCapacity    int     `toml:"root_capacity"`
}

type logConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error; empty disables logging
	Format string `toml:"format"` // text (default) or json
}

// loadConfig reads path. An empty path yields the zero config. Keys the
// config does not define are an error.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// applyFlags copies explicitly set heap flags over the file values.
func (c *fileConfig) applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		c.Heap.Strategy = strategyName
	}
	if flags.Changed("depth-limit") {
		c.Heap.DepthLimit = depthLimit
	}
	if flags.Changed("max-pages") {
		c.Heap.MaxPages = maxPages
	}
}

// heapOptions converts the [heap] table. Range checks are left to gc.NewHeap.
func (c fileConfig) heapOptions(log *slog.Logger) (*gc.Options, error) {
	strategy, err := gc.ParseStrategy(c.Heap.Strategy)
	if err != nil {
		return nil, err
	}
	return &gc.Options{
		Strategy:        strategy,
		DepthLimit:      c.Heap.DepthLimit,
		GrowthThreshold: c.Heap.GrowthThreshold,
		MaxPages:        c.Heap.MaxPages,
		RootCapacity:    c.Heap.RootCapacity,
		Logger:          log,
	}, nil
}

// logOptions converts the [log] table. --verbose forces debug output and
// --quiet silences everything below errors.
func (c fileConfig) logOptions() (logger.Options, error) {
	opts := logger.Options{Enabled: c.Log.Level != "" || verbose}
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return opts, fmt.Errorf("config: log level: %w", err)
	}
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	opts.Level = level

	switch c.Log.Format {
	case "", "text":
	case "json":
		opts.JSON = true
	default:
		return opts, fmt.Errorf("config: log format %q: want text or json", c.Log.Format)
	}
	return opts, nil
}

// configure resolves heapOpts and the global logger for cmd.
func configure(cmd *cobra.Command) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.applyFlags(cmd)

	lo, err := cfg.logOptions()
	if err != nil {
		return err
	}
	logger.Init(lo)

	opts, err := cfg.heapOptions(logger.L)
	if err != nil {
		return err
	}
	heapOpts = opts
	logger.Debug("heap configured",
		"config", configPath,
		"strategy", opts.Strategy,
		"depth_limit", opts.DepthLimit,
		"max_pages", opts.MaxPages,
	)
	return nil
}
