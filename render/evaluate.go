// Package render evaluates escape-time depths for a view and turns them into
// a balanced greyscale image.
package render

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/mandelzoom"
)

// ErrCancelled is returned when a CancelCheck aborted an evaluation.
var ErrCancelled = errors.New("evaluation cancelled")

// CancelCheck is polled once per screen column. Returning true aborts the pass.
type CancelCheck func() bool

// NeverCancel runs every pass to completion.
func NeverCancel() bool { return false }

// ContextCheck cancels when ctx is done.
func ContextCheck(ctx context.Context) CancelCheck {
	return func() bool { return ctx.Err() != nil }
}

// Options controls a single evaluation pass.
type Options struct {
	Screen   mandel.Screen
	MaxDepth int

	// Workers splits the screen into that many column ranges evaluated concurrently.
	Workers int

	// Progress, if set, is called after every finished column, possibly from
	// several goroutines at once.
	Progress func(done, total int)
}

// OptionsFromConfig copies the evaluation parameters out of cfg.
func OptionsFromConfig(cfg mandel.Config) Options {
	return Options{
		Screen:   cfg.Screen,
		MaxDepth: cfg.MaxDepth,
		Workers:  cfg.Workers,
	}
}

// DepthMap stores one depth per pixel, column by column.
type DepthMap struct {
	width, height int
	depths        []int
}

func newDepthMap(width, height int) *DepthMap {
	return &DepthMap{
		width:  width,
		height: height,
		depths: make([]int, width*height),
	}
}

// At returns the depth of the pixel at x, y.
func (d *DepthMap) At(x, y int) int {
	return d.depths[x*d.height+y]
}

func (d *DepthMap) set(x, y, m int) {
	d.depths[x*d.height+y] = m
}

// Size returns the screen width and height the map was computed for.
func (d *DepthMap) Size() (int, int) {
	return d.width, d.height
}

// Frame is the complete result of one evaluation pass.
type Frame struct {
	View     mandel.ViewRect
	MaxDepth int
	Depths   *DepthMap

	// Histogram counts pixels per depth, index 0..MaxDepth.
	Histogram []int
}

// Pixels returns the number of evaluated pixels.
func (f *Frame) Pixels() int {
	w, h := f.Depths.Size()
	return w * h
}

// EscapeDepth iterates z = z*z + c starting at z = c and returns the index of
// the iteration at which |z| reached 2, or maxDepth if it never did.
func EscapeDepth(c complex128, maxDepth int) int {
	z := c
	for m := 0; m < maxDepth; m++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) >= 4 {
			return m
		}
	}
	return maxDepth
}

// Evaluate computes the depth of every screen pixel for view.
// cancelled is polled before each column; once it reports true the pass stops
// and ErrCancelled is returned without a frame.
func Evaluate(view mandel.ViewRect, opts Options, cancelled CancelCheck) (*Frame, error) {
	if cancelled == nil {
		cancelled = NeverCancel
	}
	sw, sh := opts.Screen.Width, opts.Screen.Height
	start := time.Now()

	frame := &Frame{
		View:     view,
		MaxDepth: opts.MaxDepth,
		Depths:   newDepthMap(sw, sh),
	}

	var (
		aborted atomic.Bool
		done    atomic.Int64
	)
	ranges := splitColumns(sw, max(opts.Workers, 1))
	partials := make([][]int, len(ranges))

	work := func(i int) error {
		r := ranges[i]
		hist := make([]int, opts.MaxDepth+1)
		for sx := r.from; sx < r.to; sx++ {
			if aborted.Load() || cancelled() {
				aborted.Store(true)
				return ErrCancelled
			}
			evaluateColumn(frame.Depths, hist, view, opts, sx)
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), sw)
			}
		}
		partials[i] = hist
		return nil
	}

	if len(ranges) == 1 {
		if err := work(0); err != nil {
			return nil, err
		}
	} else {
		var g errgroup.Group
		for i := range ranges {
			g.Go(func() error { return work(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	frame.Histogram = make([]int, opts.MaxDepth+1)
	for _, hist := range partials {
		for m, n := range hist {
			frame.Histogram[m] += n
		}
	}

	slog.Debug("evaluated view", "view", view, "screen", opts.Screen, "workers", len(ranges), "took", time.Since(start))
	return frame, nil
}

func evaluateColumn(depths *DepthMap, hist []int, view mandel.ViewRect, opts Options, sx int) {
	sw, sh := float64(opts.Screen.Width), float64(opts.Screen.Height)
	left, top := view.Left(), view.Top()
	re := left + view.Width*(float64(sx)/sw)
	for sy := 0; sy < opts.Screen.Height; sy++ {
		im := top - view.Height*(float64(sy)/sh)
		m := EscapeDepth(complex(re, im), opts.MaxDepth)
		depths.set(sx, sy, m)
		hist[m]++
	}
}
