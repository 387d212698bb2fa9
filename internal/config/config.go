// Package config holds host-facing configuration for the periodic watcher.
// The library itself reads no files and no environment; these knobs are
// consumed only by the CLI layer that embeds it.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// WatchConfig configures a periodic integrity watcher.
type WatchConfig struct {
	// IntervalSeconds is the time between integrity sweeps.
	// Default: 30, Range: 1-3600
	IntervalSeconds int `yaml:"interval_seconds"`

	// Checks names the probes each sweep runs: "debugger", "timing",
	// "memory". An empty list runs all checks.
	Checks []string `yaml:"checks"`

	// EventsPerMinute caps repeated unchanged-verdict notifications so a
	// steady state does not flood the host. Set to 0 for unlimited.
	// Default: 6, Range: 0-600
	EventsPerMinute int `yaml:"events_per_minute"`

	// HardenOnStart applies best-effort process hardening (non-dumpable)
	// before the first sweep.
	// Default: false
	HardenOnStart bool `yaml:"harden_on_start"`
}

// DefaultWatchConfig returns the default watcher configuration.
//
// The defaults favor quiet steady-state operation: sweeps every 30 seconds
// and at most six unchanged-verdict notifications per minute.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		IntervalSeconds: 30,
		EventsPerMinute: 6,
	}
}

// Validate checks that all fields are within range.
func (c *WatchConfig) Validate() error {
	if c.IntervalSeconds < 1 || c.IntervalSeconds > 3600 {
		return fmt.Errorf("interval_seconds must be in [1, 3600], got %d", c.IntervalSeconds)
	}
	if c.EventsPerMinute < 0 || c.EventsPerMinute > 600 {
		return fmt.Errorf("events_per_minute must be in [0, 600], got %d", c.EventsPerMinute)
	}
	for _, name := range c.Checks {
		switch name {
		case "debugger", "timing", "memory", "stack", "all":
		default:
			return fmt.Errorf("unknown check %q", name)
		}
	}
	return nil
}

// LoadWatchConfig reads a YAML watcher config from path, fills unset fields
// with defaults, applies environment overrides, and validates the result.
// A missing file is not an error: defaults plus environment apply.
func LoadWatchConfig(path string) (WatchConfig, error) {
	cfg := DefaultWatchConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config: %w", err)
			}
		} else {
			// Decoding over the defaults keeps them for absent keys while
			// an explicit value, including events_per_minute: 0, is kept.
			loaded := cfg
			if err := yaml.Unmarshal(data, &loaded); err != nil {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
			cfg = loaded
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from SELFGUARD_* environment variables.
// Invalid values are ignored in favor of the configured ones.
func applyEnv(cfg *WatchConfig) {
	if v := os.Getenv("SELFGUARD_WATCH_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.IntervalSeconds = n
		}
	}
	if v := os.Getenv("SELFGUARD_WATCH_EVENTS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EventsPerMinute = n
		}
	}
	if v := os.Getenv("SELFGUARD_WATCH_HARDEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.HardenOnStart = b
		}
	}
}
