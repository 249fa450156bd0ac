package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	mandel "github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/render"
	"github.com/marben/mandelzoom/session"
)

type renderOptions struct {
	out     string
	caption bool
	drag    string

	centerX, centerY, width float64
}

func renderCmd(o *options) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "Render a view to a PNG file",
		Long: `Render evaluates one view and writes it to a PNG file.

The view is the world view, a preset key (see "mandelzoom presets") or custom
coordinates given with --center-x, --center-y and --width. With --drag the
rectangle is dragged across the rendered frame and zoomed into, exactly as in
the viewer.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			custom := cmd.Flags().Changed("center-x") || cmd.Flags().Changed("center-y") || cmd.Flags().Changed("width")
			view, err := pickView(o.cfg, ro, args, custom)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), o.cfg, ro, view)
		},
	}

	cmd.Flags().StringVarP(&ro.out, "out", "o", "mandel.png", "Output PNG file")
	cmd.Flags().BoolVar(&ro.caption, "caption", false, "Print the view coordinates into the image")
	cmd.Flags().StringVar(&ro.drag, "drag", "", "Zoom once into the rectangle dragged from x1,y1 to x2,y2")
	cmd.Flags().Float64Var(&ro.centerX, "center-x", mandel.RefX, "Custom view centre, real part")
	cmd.Flags().Float64Var(&ro.centerY, "center-y", mandel.RefY, "Custom view centre, imaginary part")
	cmd.Flags().Float64Var(&ro.width, "width", 0, "Custom view width (default world width)")
	return cmd
}

// pickView resolves the view to render from the preset argument or the
// custom coordinate flags. W selects the world view.
func pickView(cfg mandel.Config, ro *renderOptions, args []string, custom bool) (mandel.ViewRect, error) {
	if len(args) == 1 && custom {
		return mandel.ViewRect{}, errors.New("a preset and custom coordinates are mutually exclusive")
	}
	if custom {
		width := ro.width
		if width == 0 {
			width = cfg.MaxWidth
		}
		return mandel.CustomView(ro.centerX, ro.centerY, width, cfg)
	}
	if len(args) == 0 || strings.EqualFold(args[0], "w") {
		return mandel.WorldView(cfg), nil
	}
	p, ok := mandel.Presets().Lookup(args[0])
	if !ok {
		return mandel.ViewRect{}, fmt.Errorf("unknown preset %q", args[0])
	}
	return p.View, nil
}

func runRender(ctx context.Context, cfg mandel.Config, ro *renderOptions, view mandel.ViewRect) error {
	s := session.New(cfg, session.WithProgress(progressLogger(slog.Default())))
	if err := s.SetViewport(ctx, view); err != nil {
		return err
	}

	if ro.drag != "" {
		r, err := parseDrag(ro.drag, cfg.Screen)
		if err != nil {
			return err
		}
		out, err := zoomInto(ctx, s, r)
		if err != nil {
			return err
		}
		if out != mandel.ZoomApplied {
			return fmt.Errorf("drag %s: %s", r, out)
		}
	}

	img := s.Overlay()
	if ro.caption {
		render.Caption(img, render.ViewCaption(s.View(), cfg.Precision, cfg.MaxDecimalPlaces))
	}

	f, err := os.Create(ro.out)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", ro.out, err)
	}

	c := mandel.CompactView(s.View(), cfg.Precision, cfg.MaxDecimalPlaces)
	slog.Info("saved", "file", ro.out, "x", c[0], "y", c[1], "w", c[2], "h", c[3])
	return nil
}

// zoomInto replays a drag from r's first to its second corner and clicks the
// centre of the resulting rectangle.
func zoomInto(ctx context.Context, s *session.Session, r mandel.ZoomRect) (mandel.PressOutcome, error) {
	if _, err := s.Press(ctx, r.X1, r.Y1); err != nil {
		return mandel.PressIgnored, err
	}
	s.Motion(r.X2, r.Y2)
	s.Release()

	marked, ok := s.ZoomRect()
	if !ok {
		return mandel.PressIgnored, errors.New("no zoom rectangle")
	}
	n := marked.Norm()
	return s.Press(ctx, (n.X1+n.X2)/2, (n.Y1+n.Y2)/2)
}

// parseDrag parses "x1,y1,x2,y2". The start corner has to be on screen.
func parseDrag(s string, screen mandel.Screen) (mandel.ZoomRect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return mandel.ZoomRect{}, fmt.Errorf("drag %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return mandel.ZoomRect{}, fmt.Errorf("drag %q: %w", s, err)
		}
		v[i] = n
	}
	r := mandel.ZoomRect{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
	if r.X1 < 0 || r.X1 >= screen.Width || r.Y1 < 0 || r.Y1 >= screen.Height {
		return mandel.ZoomRect{}, fmt.Errorf("drag start (%d,%d) outside %s screen: %w", r.X1, r.Y1, screen, mandel.ErrOutOfRange)
	}
	return r, nil
}
