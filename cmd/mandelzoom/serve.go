package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/marben/mandelzoom"
)

func serveCmd(o *options) *cobra.Command {
	var (
		addr    string
		origins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive viewer",
		Long: `Serve starts a web server with the interactive viewer. Every browser tab
gets its own session: drag a rectangle, release, then click inside it to zoom.
A click outside discards the rectangle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), o.cfg, addr, origins)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "Extra origin patterns allowed to open the websocket")
	return cmd
}

func runServe(ctx context.Context, cfg mandel.Config, addr string, origins []string) error {
	l, srv := webServer(ctx, addr, origins)
	defer l.Close()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	go func() {
		if err := serveViewers(ctx, l, cfg); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Error("viewer listener", "err", err)
		}
	}()
	slog.Info("listening", "addr", addr, "viewer", l.Addr())

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	l.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// serveViewers runs one viewer session per accepted connection until l is closed.
func serveViewers(ctx context.Context, l *WebsocketListener, cfg mandel.Config) error {
	for id := 1; ; id++ {
		c, err := l.Accept()
		if err != nil {
			return err
		}
		go func() {
			log := slog.With("viewer", id)
			log.Info("viewer connected")
			if err := serveViewer(ctx, c, cfg, log); err != nil {
				log.Warn("viewer closed", "err", err)
				return
			}
			log.Info("viewer disconnected")
		}()
	}
}
