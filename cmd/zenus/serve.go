package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/zenus"
	"github.com/aretw0/zenus/pkg/api"
)

const shutdownTimeout = 10 * time.Second

var (
	serveHost     string
	servePort     int
	serveReadOnly bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local notes over HTTP",
	Long: `serve exposes the local data directory through the zenus REST API.
With --auth, every request must carry the token verbatim in its Authorization header.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		if flags.Changed("host") {
			cfg.Host = serveHost
		}
		if flags.Changed("port") {
			cfg.Port = servePort
		}
		if flags.Changed("read-only") {
			cfg.ReadOnly = serveReadOnly
		}
		if err := cfg.Validate(true); err != nil {
			fatal("Invalid configuration", err)
		}

		repo, err := zenus.Init(
			zenus.WithPath(cfg.Path),
			zenus.WithReadOnly(cfg.ReadOnly),
			zenus.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize storage", err)
		}

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           api.New(repo, api.WithLogger(slog.Default()), api.WithToken(cfg.Auth)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		slog.Info("serving notes", "addr", srv.Addr, "auth", cfg.Auth != "", "read_only", cfg.ReadOnly)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				fatal("Server failed", err)
			}
		case <-ctx.Done():
			slog.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fatal("Shutdown failed", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Address to bind")
	serveCmd.Flags().IntVar(&servePort, "port", 8888, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveReadOnly, "read-only", false, "Reject every write with an error")
}
