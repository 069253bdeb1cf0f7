package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/formwise"
	httpAdapter "github.com/aretw0/formwise/internal/adapters/http"
	"github.com/aretw0/formwise/internal/adapters/options"
	redisAdapter "github.com/aretw0/formwise/internal/adapters/redis"
	"github.com/aretw0/formwise/internal/logging"
	"github.com/aretw0/formwise/pkg/adapters/memory"
	"github.com/aretw0/formwise/pkg/observability"
	"github.com/aretw0/formwise/pkg/persistence/middleware"
	"github.com/aretw0/formwise/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard HTTP server",
	Long:  `Starts the Formwise engine in server mode, serving every form definition in the directory over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		levelStr, _ := cmd.Flags().GetString("log-level")
		sessionTTL, _ := cmd.Flags().GetDuration("session-ttl")

		var level slog.Level
		if err := level.UnmarshalText([]byte(levelStr)); err != nil {
			level = slog.LevelInfo
		}
		logger := logging.New(level)

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		engineOpts := []formwise.Option{
			formwise.WithLogger(logger),
			formwise.WithMetrics(metrics),
			formwise.WithOptionSource(options.NewSource(nil)),
		}

		var store ports.SessionStore
		if redisAddr != "" {
			redisStore := redisAdapter.New(redisAddr, "", 0, redisAdapter.WithTTL(sessionTTL))
			store = redisStore
			engineOpts = append(engineOpts, formwise.WithLocker(redisStore.Locker()))
			logger.Info("using redis session store", "addr", redisAddr, "ttl", sessionTTL)
		} else {
			store = memory.NewStore()
		}

		// FORMWISE_ENCRYPTION_KEY holds a base64 32-byte AES key.
		// When present, stored answers are encrypted at rest.
		if encoded := os.Getenv("FORMWISE_ENCRYPTION_KEY"); encoded != "" {
			key, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil || len(key) != 32 {
				fmt.Println("FORMWISE_ENCRYPTION_KEY must be a base64-encoded 32-byte key")
				os.Exit(1)
			}
			store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
			logger.Info("session encryption enabled")
		}
		engineOpts = append(engineOpts, formwise.WithSessionStore(store))

		engine, err := formwise.New(dir, engineOpts...)
		if err != nil {
			fmt.Printf("Error initializing formwise: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsGatherer(registry),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting formwise server", "addr", srv.Addr, "definitions", dir)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("formwise server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the session store (empty: in-memory)")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "Session expiry when using redis")
}
