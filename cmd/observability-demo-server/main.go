package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func newRootCmd() *cobra.Command {
	var (
		port      string
		logLevel  string
		logFormat string
		profile   string
		seed      int64
	)

	rootCmd := &cobra.Command{
		Use:   "observability-demo-server",
		Short: "Synthetic traffic generator with Prometheus instrumentation",
		Run: func(cmd *cobra.Command, args []string) {
			// Flags override environment variables
			if cmd.Flags().Changed("port") {
				os.Setenv("PORT", port)
			}
			if cmd.Flags().Changed("log-level") {
				os.Setenv("LOG_LEVEL", logLevel)
			}
			if cmd.Flags().Changed("log-format") {
				os.Setenv("LOG_FORMAT", logFormat)
			}
			if cmd.Flags().Changed("profile") {
				os.Setenv("SIM_PROFILE_FILE", profile)
			}
			if cmd.Flags().Changed("seed") {
				os.Setenv("SIM_SEED", fmt.Sprintf("%d", seed))
			}
			runServer()
		},
	}

	rootCmd.Flags().StringVar(&port, "port", "8080", "listen port")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "log format (text|json)")
	rootCmd.Flags().StringVar(&profile, "profile", "simulation.yaml", "simulation profile file")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "PRNG seed, 0 seeds from the clock")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(serviceVersion)
		},
	})

	return rootCmd
}

func runServer() {
	initializeServer()

	router := setupRoutes()

	// Wrap the router with h2c to support HTTP/2 over cleartext.
	handler := h2c.NewHandler(router, &http2.Server{})

	server := &http.Server{
		Addr:        ":" + config.Port,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		// No write timeout: /live and /ws are long-lived streams.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- startServer(server)
	}()

	logger.WithField("port", config.Port).Info("Observability Demo Server starting")

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithField("error", err).Error("Graceful shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
