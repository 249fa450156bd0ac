package mandel

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the fixed parameters of a viewer.
type Config struct {
	Screen Screen `toml:"screen"`

	// MaxDepth is the iteration limit of the escape-time evaluation.
	MaxDepth int `toml:"max_depth"`

	// Precision is the relative error accepted when compacting coordinates.
	Precision        float64 `toml:"precision"`
	MaxDecimalPlaces int     `toml:"max_decimal_places"`

	MinWidth float64 `toml:"min_width"`
	MaxWidth float64 `toml:"max_width"`

	// LowFraction and HighFraction are the shares of pixels ignored at either end
	// of the depth histogram when balancing the palette.
	LowFraction  float64 `toml:"low_fraction"`
	HighFraction float64 `toml:"high_fraction"`

	// Workers is the number of column ranges evaluated concurrently.
	Workers int `toml:"workers"`
}

// DefaultConfig returns the stock 600x400 viewer.
func DefaultConfig() Config {
	return Config{
		Screen:           Screen{Width: 600, Height: 400},
		MaxDepth:         256,
		Precision:        0.01,
		MaxDecimalPlaces: 16,
		MinWidth:         1e-15,
		MaxWidth:         4.5,
		LowFraction:      0.01,
		HighFraction:     0.01,
		Workers:          1,
	}
}

// LoadConfig decodes a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config for values the core cannot work with.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen %s must have positive size", cfg.Screen))
	}
	if cfg.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max_depth %d must be at least 1", cfg.MaxDepth))
	}
	if cfg.Precision <= 0 {
		errs = append(errs, fmt.Errorf("precision %g must be positive", cfg.Precision))
	}
	if cfg.MaxDecimalPlaces < 0 {
		errs = append(errs, fmt.Errorf("max_decimal_places %d must not be negative", cfg.MaxDecimalPlaces))
	}
	if cfg.MinWidth <= 0 || cfg.MinWidth >= cfg.MaxWidth {
		errs = append(errs, fmt.Errorf("width bounds [%g, %g] are invalid", cfg.MinWidth, cfg.MaxWidth))
	}
	if cfg.LowFraction < 0 || cfg.HighFraction < 0 || cfg.LowFraction+cfg.HighFraction > 1 {
		errs = append(errs, fmt.Errorf("palette fractions %g/%g must be non-negative and sum to at most 1", cfg.LowFraction, cfg.HighFraction))
	}
	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d must be at least 1", cfg.Workers))
	}
	return errors.Join(errs...)
}
