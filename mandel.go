package mandel

import (
	"errors"
	"fmt"
	"math"
)

// Reference point of the world view: the whole set fits around it.
const (
	RefX = -0.75
	RefY = 0.0
)

// ErrOutOfRange is returned for views or coordinates outside the legal input domain.
var ErrOutOfRange = errors.New("value out of range")

// Screen is the fixed pixel resolution the complex plane is mapped onto.
type Screen struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// AspectRatio is Width/Height.
func (s Screen) AspectRatio() float64 {
	return float64(s.Width) / float64(s.Height)
}

// Pixels is the number of pixels on the screen.
func (s Screen) Pixels() int {
	return s.Width * s.Height
}

func (s Screen) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ViewRect is the rectangle of the complex plane currently mapped onto the screen.
// X grows to the right and Y grows towards the top, unlike screen coordinates.
// A ViewRect is always replaced as a whole.
type ViewRect struct {
	CenterX float64 `toml:"center_x"`
	CenterY float64 `toml:"center_y"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
}

// NewViewRect builds a view whose height follows from width and the screen aspect ratio.
func NewViewRect(cx, cy, width float64, screen Screen) ViewRect {
	return ViewRect{
		CenterX: cx,
		CenterY: cy,
		Width:   width,
		Height:  width / screen.AspectRatio(),
	}
}

// Left is the real part of the left screen edge.
func (v ViewRect) Left() float64 { return v.CenterX - v.Width/2 }

// Top is the imaginary part of the top screen edge.
func (v ViewRect) Top() float64 { return v.CenterY + v.Height/2 }

// Validate reports whether v lies within the width bounds of cfg.
func (v ViewRect) Validate(cfg Config) error {
	if v.Width < cfg.MinWidth || v.Width > cfg.MaxWidth {
		return fmt.Errorf("view width %g not in [%g, %g]: %w", v.Width, cfg.MinWidth, cfg.MaxWidth, ErrOutOfRange)
	}
	if !(v.Height > 0) {
		return fmt.Errorf("view height %g must be positive: %w", v.Height, ErrOutOfRange)
	}
	return nil
}

func (v ViewRect) String() string {
	return fmt.Sprintf("(%g, %g) %gx%g", v.CenterX, v.CenterY, v.Width, v.Height)
}

// WorldView is the widest view allowed by cfg, centred on the reference point.
func WorldView(cfg Config) ViewRect {
	return NewViewRect(RefX, RefY, cfg.MaxWidth, cfg.Screen)
}

// Bounds are the legal ranges for custom coordinates.
type Bounds struct {
	MinX, MaxX         float64
	MinY, MaxY         float64
	MinWidth, MaxWidth float64
}

// Bounds derives the custom coordinate ranges from the world view.
func (cfg Config) Bounds() Bounds {
	w := WorldView(cfg)
	return Bounds{
		MinX:     RefX - w.Width/2,
		MaxX:     RefX + w.Width/2,
		MinY:     RefY - w.Height/2,
		MaxY:     RefY + w.Height/2,
		MinWidth: cfg.MinWidth,
		MaxWidth: cfg.MaxWidth,
	}
}

// CustomView checks user supplied coordinates against cfg.Bounds and snaps them to
// display-stable values. The height is derived from the compacted width.
func CustomView(x, y, width float64, cfg Config) (ViewRect, error) {
	b := cfg.Bounds()
	check := func(name string, v, lo, hi float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s %g is not a number: %w", name, v, ErrOutOfRange)
		}
		lo, _ = Compact(lo, cfg.Precision, cfg.MaxDecimalPlaces)
		hi, _ = Compact(hi, cfg.Precision, cfg.MaxDecimalPlaces)
		if v < lo || v > hi {
			return fmt.Errorf("%s %g not in [%g, %g]: %w", name, v, lo, hi, ErrOutOfRange)
		}
		return nil
	}
	if err := check("center x", x, b.MinX, b.MaxX); err != nil {
		return ViewRect{}, err
	}
	if err := check("center y", y, b.MinY, b.MaxY); err != nil {
		return ViewRect{}, err
	}
	if err := check("width", width, b.MinWidth, b.MaxWidth); err != nil {
		return ViewRect{}, err
	}
	x, _ = Compact(x, cfg.Precision, cfg.MaxDecimalPlaces)
	y, _ = Compact(y, cfg.Precision, cfg.MaxDecimalPlaces)
	width, _ = Compact(width, cfg.Precision, cfg.MaxDecimalPlaces)
	height, _ := Compact(width/cfg.Screen.AspectRatio(), cfg.Precision, cfg.MaxDecimalPlaces)
	return ViewRect{CenterX: x, CenterY: y, Width: width, Height: height}, nil
}
