package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pitchside/pitchside/internal/match/outbox"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Connect to database
	database, dbCfg, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	// Wire services
	services, err := setupServices(database, cfg, clockwork.NewRealClock())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup services")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Outbox relay: committed rows flow to JetStream, either via
	// LISTEN/NOTIFY with a polling fallback or a plain polling worker.
	// Without a NATS URL the relay publishes to the log instead.
	var publisher outbox.Publisher
	if cfg.NATS.URL == "" {
		publisher = outbox.NewLogPublisher(slog.Default())
	} else {
		jsPublisher, err := outbox.NewJetStreamPublisher(jetStreamConfig(cfg))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create JetStream publisher")
		}
		defer jsPublisher.Close()
		publisher = jsPublisher
	}

	switch cfg.Outbox.Mode {
	case "worker":
		workerCfg := outbox.DefaultConfig()
		workerCfg.PollInterval = time.Duration(cfg.Outbox.PollInterval)
		workerCfg.BatchSize = cfg.Outbox.BatchSize
		worker := outbox.NewWorker(database, publisher, workerCfg, slog.Default())
		if err := worker.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to start outbox worker")
		}
		defer worker.Stop()
	default:
		listenerCfg := outbox.DefaultListenerConfig()
		listenerCfg.DatabaseURL = dbCfg.DSN()
		listenerCfg.FallbackInterval = time.Duration(cfg.Outbox.FallbackInterval)
		listenerCfg.BatchSize = cfg.Outbox.BatchSize
		listener, err := outbox.NewListener(database, publisher, listenerCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create outbox listener")
		}
		go func() {
			if err := listener.Start(ctx); err != nil {
				log.Error().Err(err).Msg("outbox listener failed")
			}
		}()
	}

	// Start gateway (screen hub + JetStream consumer)
	go func() {
		if err := services.Gateway.Start(ctx); err != nil {
			log.Error().Err(err).Msg("gateway service failed")
		}
	}()

	// Start HTTP server
	server := setupServer(cfg, services)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	cancel()

	// Give services time to clean up
	time.Sleep(1 * time.Second)

	log.Info().Msg("shutdown complete")
}

func jetStreamConfig(cfg *Config) outbox.JetStreamConfig {
	jsCfg := outbox.DefaultJetStreamConfig()
	jsCfg.URL = cfg.NATS.URL
	jsCfg.StreamName = cfg.NATS.StreamName
	return jsCfg
}
