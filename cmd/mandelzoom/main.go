// mandelzoom renders and explores the Mandelbrot set.
//
// The render command writes a single view to a PNG file, serve starts a web
// viewer in which a dragged rectangle zooms recursively.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	mandel "github.com/marben/mandelzoom"
)

// options are shared by all subcommands.
type options struct {
	debug      bool
	configPath string
	workers    int
	maxDepth   int

	cfg mandel.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(),
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "mandelzoom",
		Short: "Greyscale Mandelbrot set explorer",
		Long: `mandelzoom evaluates the Mandelbrot escape-time function for a view of the
complex plane, balances a greyscale palette against the depth histogram and
renders the result. Drag a rectangle in the web viewer to zoom in.`,
		Example: `  # Render the world view
  mandelzoom render

  # Render "Sea Horses" with its coordinates burned in
  mandelzoom render 3 --caption --out seahorses.png

  # Render custom coordinates and zoom once into a dragged rectangle
  mandelzoom render --center-x -0.77 --center-y 0.11 --width 0.0042 --drag 100,100,250,200

  # Serve the interactive viewer
  mandelzoom serve --addr :8080`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), o.debug))
			return o.load()
		},
	}

	root.PersistentFlags().BoolVarP(&o.debug, "debug", "d", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().IntVar(&o.workers, "workers", 0, "Column ranges evaluated concurrently (default from config)")
	root.PersistentFlags().IntVar(&o.maxDepth, "max-depth", 0, "Maximum iterations per pixel (default from config)")

	root.AddCommand(renderCmd(o), presetsCmd(o), serveCmd(o))
	return root
}

// load resolves the configuration: defaults, then the config file, then flags.
func (o *options) load() error {
	cfg := mandel.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = mandel.LoadConfig(o.configPath); err != nil {
			return err
		}
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if o.maxDepth > 0 {
		cfg.MaxDepth = o.maxDepth
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	o.cfg = cfg
	slog.Debug("configuration", "screen", cfg.Screen, "max_depth", cfg.MaxDepth, "workers", cfg.Workers)
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

// progressLogger logs evaluation progress in steps of ten percent.
func progressLogger(log *slog.Logger) func(done, total int) {
	var (
		mu   sync.Mutex
		last = -1
	)
	return func(done, total int) {
		pct := done * 100 / total
		mu.Lock()
		defer mu.Unlock()
		if pct/10 == last/10 && last >= 0 {
			return
		}
		last = pct
		log.Debug(fmt.Sprintf("calculating %d%%", pct))
	}
}
