// Command idv-simulator serves an in-memory stand-in for the identity
// verification GraphQL service. Tokens are checked against a shared signing
// key; `idv token` mints matching ones.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"secureid/internal/platform/config"
	"secureid/internal/platform/httpserver"
	"secureid/internal/platform/logger"
	"secureid/internal/platform/metrics"
	"secureid/internal/session"
	"secureid/internal/simulator"
)

func main() {
	cfg := config.SimulatorFromEnv()
	log := logger.New(os.Getenv("SECUREID_LOG_LEVEL"))

	log.Info("initializing identity verification simulator",
		"addr", cfg.Addr,
		"supported_countries", cfg.SupportedCountries,
		"face_image_required", cfg.FaceImageRequired,
		"max_attempts", cfg.MaxAttempts,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	issuer := session.NewIssuer(cfg.JWTSigningKey, cfg.TokenIssuer, cfg.TokenAudience, cfg.TokenTTL)
	sim := simulator.New(simulator.ConfigFrom(cfg), simulator.WithLogger(log))
	handler := simulator.NewHandler(sim, log, simulator.WithMetrics(metrics.New(reg)))

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount("/", simulator.NewRouter(handler, issuer, log))

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
