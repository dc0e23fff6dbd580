package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"tippy-tappy/internal/config"
	"tippy-tappy/internal/db"
	"tippy-tappy/internal/logging"
	"tippy-tappy/internal/metrics"
	"tippy-tappy/internal/server"
	"tippy-tappy/internal/tipping"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		bootLog := logging.New("info", false)
		bootLog.Warn().Err(err).Msg("failed to load .env")
	}
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info", false)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone")
	}

	backend, err := db.OpenBackend(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("snapshot backend unavailable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := tipping.NewStore(ctx, tipping.Options{
		Backend:  backend,
		Clock:    clockwork.NewRealClock(),
		Location: loc,
		Points:   cfg.Points(),
		Logger:   log.With().Str("component", "store").Logger(),
	})

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsAddr, func(ctx context.Context) error {
		return store.With(ctx, func(*tipping.Session) error { return nil })
	})

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(store, cfg, log.With().Str("component", "http").Logger())
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("metrics_addr", cfg.MetricsAddr).Msg("tippy-tappy listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	_ = metricsSrv.Shutdown(shutdownCtx)
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("final snapshot failed")
	}
}
