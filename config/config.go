// Package config loads and provides toolkit configuration.
//
// On first run, a default YAML config is written to ~/.vtcore.yaml.
// Subsequent runs read and merge that file with built-in defaults; every
// field has a programmatic default, so the file itself is optional.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every user-tunable knob named in §4.5/§4.6/§6.
type Config struct {
	// ClickWindowMs is the max gap between two mouse-downs still counted
	// as the same click-count sequence (§4.6). Default: 500.
	ClickWindowMs int `yaml:"click_window_ms"`

	// ClickDistanceCells is the max Chebyshev cell distance between two
	// downs still counted as the same spot (§4.6). Default: 0.
	ClickDistanceCells int `yaml:"click_distance_cells"`

	// InputCoalesceMinMs/MaxMs bound the adaptive coalescing window the
	// event loop scales by output-queue depth (§4.5/§5).
	InputCoalesceMinMs int `yaml:"input_coalesce_min_ms"`
	InputCoalesceMaxMs int `yaml:"input_coalesce_max_ms"`

	// MaxExtraRendersPerTick caps how many additional renders a single
	// wakeup may trigger while draining coalesced invalidations (§4.5).
	MaxExtraRendersPerTick int `yaml:"max_extra_renders_per_tick"`

	// Capabilities lets an operator override what would otherwise be
	// auto-detected from the presentation adapter (§6), e.g. forcing
	// true-color off for a constrained terminal.
	Capabilities CapabilityOverrides `yaml:"capabilities"`
}

// CapabilityOverrides mirrors mediator.Capabilities' boolean fields other
// than NativeAltScreen, which has no override here; nil
// pointers mean "use the adapter's own detection," an explicit true/false
// forces the value.
type CapabilityOverrides struct {
	Mouse           *bool `yaml:"mouse,omitempty"`
	Color256        *bool `yaml:"color256,omitempty"`
	TrueColor       *bool `yaml:"true_color,omitempty"`
	AlternateScreen *bool `yaml:"alternate_screen,omitempty"`
	BracketedPaste  *bool `yaml:"bracketed_paste,omitempty"`
	Sixel           *bool `yaml:"sixel,omitempty"`
}

// Default returns the built-in defaults, used whenever a field is absent
// from an on-disk file (or no file exists at all).
func Default() Config {
	return Config{
		ClickWindowMs:          500,
		ClickDistanceCells:     0,
		InputCoalesceMinMs:     4,
		InputCoalesceMaxMs:     32,
		MaxExtraRendersPerTick: 3,
	}
}

func path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vtcore.yaml")
}

// Load reads ~/.vtcore.yaml, falling back to Default() for any field the
// file doesn't set (or if the file doesn't exist, in which case a fresh
// default file is written for future editing). Bounds are re-applied
// after unmarshalling so a malformed or hand-edited file can't produce a
// pathological loop configuration.
func Load() Config {
	cfg := Default()

	p := path()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)
	return clamp(cfg)
}

func clamp(cfg Config) Config {
	if cfg.ClickWindowMs <= 0 {
		cfg.ClickWindowMs = 500
	}
	if cfg.ClickDistanceCells < 0 {
		cfg.ClickDistanceCells = 0
	}
	if cfg.InputCoalesceMinMs <= 0 {
		cfg.InputCoalesceMinMs = 4
	}
	if cfg.InputCoalesceMaxMs < cfg.InputCoalesceMinMs {
		cfg.InputCoalesceMaxMs = cfg.InputCoalesceMinMs
	}
	if cfg.MaxExtraRendersPerTick < 0 {
		cfg.MaxExtraRendersPerTick = 0
	}
	return cfg
}

func writeDefaults(p string, cfg Config) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	header := []byte("# vtcore configuration\n# Edit this file to customize defaults.\n\n")
	_ = os.WriteFile(p, append(header, data...), 0644)
}
