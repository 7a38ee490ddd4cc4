package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/adamjmurray/producer-pal/internal/adapters/http"
	"github.com/adamjmurray/producer-pal/internal/logging"
	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API server",
	Long:  `Starts the duplication engine in server mode, exposing a JSON API over HTTP with Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}

		logger := logging.New(cfg.Level())

		duplications := prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "producer_pal_duplications_total",
				Help: "Total number of duplication operations",
			},
			[]string{"type", "outcome"},
		)
		duration := prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "producer_pal_duplication_duration_seconds",
				Help: "Duration of duplication operations",
			},
			[]string{"type"},
		)
		prometheus.MustRegister(duplications, duration)

		logHooks := domain.LifecycleHooks{
			OnDuplicateStart: func(ctx context.Context, e *domain.DuplicateEvent) {
				logger.Info("duplicate_start", "type", e.Type, "source", e.SourceID, "count", e.Count)
			},
			OnDuplicateEnd: func(ctx context.Context, e *domain.DuplicateEvent) {
				logger.Info("duplicate_end", "type", e.Type, "source", e.SourceID, "ok", e.Err == nil)
			},
		}
		metricHooks := domain.LifecycleHooks{
			OnDuplicateEnd: func(ctx context.Context, e *domain.DuplicateEvent) {
				outcome := "ok"
				if e.Err != nil {
					outcome = "error"
				}
				duplications.WithLabelValues(e.Type, outcome).Inc()
				duration.WithLabelValues(e.Type).Observe(e.Duration.Seconds())
			},
		}
		hooks := observability.Combine(logHooks, metricHooks)

		engine, err := buildEngine(cfg, logger, hooks)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		if cfg.MetricsPort > 0 {
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				logger.Info("metrics server listening", "port", cfg.MetricsPort)
				if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.MetricsPort), mux); err != nil {
					logger.Error("metrics server failed", "error", err)
				}
			}()
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: httpAdapter.NewHandler(engine),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Producer Pal Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Producer Pal Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
