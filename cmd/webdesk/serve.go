package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"webdesk/pkg/config"
	"webdesk/pkg/server"
	"webdesk/pkg/session"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the desktop page and its session websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
			}
			return serve(ctx, cfg, a.log, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

// serve runs the server on ln until ctx is cancelled, then closes the
// sessions and shuts the server down within the configured timeout.
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger, ln net.Listener) error {
	d := cfg.Desktop
	hub := session.NewHub(session.HubConfig{
		Session: session.Options{
			ReservedTop: d.ReservedTop,
			Bounds:      d.Bounds(),
			DefaultSize: d.DefaultSize,
			Timings:     d.Timings(),
			Icons:       d.Icons,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	var (
		static       fs.FS
		cacheControl string
	)
	if cfg.Server.StaticDir != "" {
		static = os.DirFS(cfg.Server.StaticDir)
		cacheControl = "no-cache"
	}

	var srv *server.Server
	handler, err := server.NewHandler(server.HandlerConfig{
		Hub:            hub,
		Static:         static,
		CacheControl:   cacheControl,
		Ready:          func() bool { return srv.Ready() },
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})
	if err != nil {
		ln.Close()
		return err
	}
	for _, route := range handler.Routes() {
		logger.Debug("route", "method", route.Method, "pattern", route.Pattern)
	}
	srv, err = server.New(server.Config{
		Addr:         ln.Addr().String(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLS:          server.TLSConfig{CertFile: cfg.Server.CertFile, KeyFile: cfg.Server.KeyFile},
	})
	if err != nil {
		ln.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", ln.Addr().String(), "tls", cfg.Server.CertFile != "")
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		// Sessions first: Shutdown does not wait for hijacked connections.
		hubErr := hub.Close(shutdownCtx)
		return errors.Join(srv.Shutdown(shutdownCtx), hubErr)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
