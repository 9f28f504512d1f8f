package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Sonu99kr/Assignment/broadcast"
	"github.com/Sonu99kr/Assignment/cliparse"
	"github.com/Sonu99kr/Assignment/handlers"
	"github.com/Sonu99kr/Assignment/janitor"
	"github.com/Sonu99kr/Assignment/metrics"
	"github.com/Sonu99kr/Assignment/middleware"
	"github.com/Sonu99kr/Assignment/poll"
	"github.com/Sonu99kr/Assignment/router"
	"github.com/Sonu99kr/Assignment/store/memory"
	"github.com/Sonu99kr/Assignment/store/postgres"
	"github.com/Sonu99kr/Assignment/store/sqlite"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	startupTimeout    = 30 * time.Second
)

// pollStore is a poll.Store that owns resources
type pollStore interface {
	poll.Store
	Close() error
}

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogFormat)

	// Open storage and create schema
	startCtx, cancelStart := context.WithTimeout(context.Background(), startupTimeout)
	store, err := openStore(startCtx, cfg)
	cancelStart()
	if err != nil {
		slog.Error("storage setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	slog.Info("Storage ready", "type", cfg.DatabaseType)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Live broadcast hub and vote coordinator
	hub := broadcast.NewHub(broadcast.Options{
		EventBuffer:      cfg.EventBuffer,
		SubscriberBuffer: cfg.SubscriberBuffer,
		Encode:           handlers.NewLiveEncoder(poll.SystemClock),
		Metrics:          m,
	})
	coord := poll.NewCoordinator(store, hub, m)
	limiter := middleware.NewRateLimiter(cfg.VoteRateLimit, cfg.VoteRateBurst, cfg.IPHashSalt)

	// Create router
	mux := router.NewRouter(router.Deps{
		Coordinator: coord,
		Hub:         hub,
		Limiter:     limiter,
		Clock:       poll.SystemClock,
		Gatherer:    reg,
	}, cfg)

	// Retention janitor
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitorDone := make(chan struct{})
	go func() {
		janitor.New(store, limiter, poll.SystemClock, cfg.PollRetention, cfg.JanitorInterval, m).Run(janitorCtx)
		close(janitorDone)
	}()

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(cfg.AllowedOrigin)(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		sig := <-ctrlc
		slog.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown incomplete", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}

	stopJanitor()
	<-janitorDone
	hub.Close()
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

func setupLogging(format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func openStore(ctx context.Context, cfg cliparse.Config) (pollStore, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		return postgres.Open(ctx, cfg.DatabaseURL)
	case cliparse.DatabaseSQLite:
		return sqlite.Open(ctx, cfg.DatabaseURL)
	case cliparse.DatabaseMemory:
		return memory.New()
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}
}
