// Package config loads phigrid configuration from TOML.
//
// Configuration is optional: every field has a reference default, and a
// missing file is not an error. The file is looked up at the path given
// on the command line, or at ~/.config/phigrid/config.toml.
//
// Example:
//
//	[generation]
//	elements = 16
//	grid_width = 4
//	architecture = "integrated"
//
//	[metric]
//	integrated = 74.5
//	modular = 3.2
//	random = 12.8
//
//	[metric.bands]
//	high = 50.0
//	medium = 10.0
//
//	[modules]
//	language = true
//	self_model = false
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/mwessel/phigrid/pkg/errors"
	"github.com/mwessel/phigrid/pkg/metric"
	"github.com/mwessel/phigrid/pkg/system"
	"github.com/mwessel/phigrid/pkg/topology"
)

// appName is used for the config directory under the user config dir.
const appName = "phigrid"

// Config holds all tunable simulator settings.
type Config struct {
	Generation Generation `toml:"generation"`
	Metric     Metric     `toml:"metric"`
	Modules    Modules    `toml:"modules"`
}

// Generation controls the generator defaults.
type Generation struct {
	Elements     int    `toml:"elements"`
	GridWidth    int    `toml:"grid_width"`
	Architecture string `toml:"architecture"`
}

// Metric overrides the per-architecture Φ constants and band thresholds.
type Metric struct {
	Integrated float64 `toml:"integrated"`
	Modular    float64 `toml:"modular"`
	Random     float64 `toml:"random"`
	Bands      Bands   `toml:"bands"`
}

// Bands holds the color-band thresholds for the Φ readout.
type Bands struct {
	High   float64 `toml:"high"`
	Medium float64 `toml:"medium"`
}

// Modules are the presentational annotation toggles. The core never
// consumes them; they are rendered alongside the graph and have no
// effect on generation or metric.
type Modules struct {
	Language  bool `toml:"language"`
	SelfModel bool `toml:"self_model"`
}

// Default returns the reference configuration.
func Default() Config {
	scale := metric.DefaultScale()
	bands := metric.DefaultThresholds()
	return Config{
		Generation: Generation{
			Elements:     topology.DefaultElementCount,
			GridWidth:    topology.DefaultGridWidth,
			Architecture: system.ArchIntegrated.String(),
		},
		Metric: Metric{
			Integrated: scale[system.ArchIntegrated],
			Modular:    scale[system.ArchModular],
			Random:     scale[system.ArchRandom],
			Bands:      Bands{High: bands.High, Medium: bands.Medium},
		},
	}
}

// Load reads configuration from path, layered over the defaults.
// An empty path falls back to [DefaultPath]; a missing file yields the
// defaults without error. Any present file must validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns ~/.config/phigrid/config.toml (per-OS user config
// dir), or "" if the user config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}

// Validate checks structural constraints: positive element count and grid
// width, a known architecture label, and a metric scale that preserves
// the reference ordering.
func (c Config) Validate() error {
	if c.Generation.Elements < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidCount, "generation.elements must be at least 1, got %d", c.Generation.Elements)
	}
	if c.Generation.GridWidth < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "generation.grid_width must be at least 1, got %d", c.Generation.GridWidth)
	}
	if _, err := system.ParseArchitecture(c.Generation.Architecture); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidArchitecture, err, "generation.architecture")
	}
	if err := c.Scale().Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "metric")
	}
	if c.Metric.Bands.High <= c.Metric.Bands.Medium {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "metric.bands.high (%v) must exceed metric.bands.medium (%v)", c.Metric.Bands.High, c.Metric.Bands.Medium)
	}
	return nil
}

// Scale returns the configured metric scale.
func (c Config) Scale() metric.Scale {
	return metric.Scale{
		system.ArchIntegrated: c.Metric.Integrated,
		system.ArchModular:    c.Metric.Modular,
		system.ArchRandom:     c.Metric.Random,
	}
}

// Thresholds returns the configured band thresholds.
func (c Config) Thresholds() metric.Thresholds {
	return metric.Thresholds{High: c.Metric.Bands.High, Medium: c.Metric.Bands.Medium}
}

// Architecture returns the configured default architecture.
// Call Validate first; unknown labels fall back to integrated.
func (c Config) Architecture() system.Architecture {
	arch, err := system.ParseArchitecture(c.Generation.Architecture)
	if err != nil {
		return system.ArchIntegrated
	}
	return arch
}
