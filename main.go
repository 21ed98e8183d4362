package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (default: ./horde.yaml if present)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	clientDir := flag.String("client", "", "Path to client directory (overrides config)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *clientDir != "" {
		cfg.Server.ClientDir = *clientDir
	}

	logFile := SetupLogging(cfg.Log)
	defer logFile.Close()

	db, err := OpenDB(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("open database")
	}
	defer db.Close()

	analytics := NewAnalytics(db)
	metrics := NewMetrics()

	hub := NewHub(HubOptions{
		Sessions: SessionOptions{
			MaxSessions: cfg.Server.MaxSessions,
			IdleTimeout: cfg.Server.IdleTimeout,
			Game: GameOptions{
				World:         cfg.Sim.World(),
				TickRate:      cfg.Server.TickRate,
				BroadcastRate: cfg.Server.BroadcastRate,
				MaxSpectators: cfg.Server.MaxSpectators,
			},
			DB:        db,
			Analytics: analytics,
			Metrics:   metrics,
		},
		Tickets:      NewTickets(cfg.Tickets, db),
		PublicURL:    cfg.Server.PublicURL,
		MessageRate:  cfg.Server.MessageRate,
		MessageBurst: cfg.Server.MessageBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           SetupRoutes(hub, cfg.Server.ClientDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// analytics stops only after sessions have recorded their end events
	actx, stopAnalytics := context.WithCancel(context.Background())
	defer stopAnalytics()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx.Done())
		return nil
	})
	g.Go(func() error {
		return analytics.Run(actx)
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Str("client", cfg.Server.ClientDir).Msg("server starting")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		hub.sessions.Shutdown()
		stopAnalytics()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
