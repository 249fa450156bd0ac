package mandel

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed presets.toml
var presetsTOML string

// Preset is a named point of interest in the Mandelbrot set.
type Preset struct {
	Key   string   `toml:"key"`
	Label string   `toml:"label"`
	View  ViewRect `toml:"view"`
}

// Catalog is an ordered list of presets.
type Catalog []Preset

// Lookup finds the preset with the given key, ignoring case.
func (c Catalog) Lookup(key string) (Preset, bool) {
	for _, p := range c {
		if strings.EqualFold(p.Key, key) {
			return p, true
		}
	}
	return Preset{}, false
}

// ParseCatalog decodes presets from TOML.
func ParseCatalog(data string) (Catalog, error) {
	var doc struct {
		Preset Catalog `toml:"preset"`
	}
	if _, err := toml.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding presets: %w", err)
	}
	for i, p := range doc.Preset {
		if p.Key == "" || p.View.Width <= 0 || p.View.Height <= 0 {
			return nil, fmt.Errorf("preset %d (%q) is incomplete", i, p.Label)
		}
	}
	return doc.Preset, nil
}

var presets = mustParseCatalog(presetsTOML)

func mustParseCatalog(data string) Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Presets returns the built-in points of interest.
func Presets() Catalog {
	return append(Catalog(nil), presets...)
}
