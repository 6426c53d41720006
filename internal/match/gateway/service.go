package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pitchside/pitchside/internal/match/fanout"
)

// Service bundles the gateway: the hub screens attach to, the JetStream
// consumer feeding it, and the read-side state endpoints.
type Service struct {
	hub           *Hub
	wsHandler     *WebSocketHandler
	eventConsumer *EventConsumer
	stateHandler  *StateHandler
}

// Config holds configuration for the gateway service.
type Config struct {
	HubConfig       HubConfig
	JetStreamConfig JetStreamConsumerConfig
}

// DefaultConfig returns the gateway defaults.
func DefaultConfig() Config {
	return Config{
		HubConfig:       DefaultHubConfig(),
		JetStreamConfig: DefaultJetStreamConsumerConfig(),
	}
}

// NewService wires the gateway together.
func NewService(config Config, stateProvider StateProvider, updates *fanout.Channel) (*Service, error) {
	hub := NewHub(config.HubConfig)

	eventConsumer, err := NewEventConsumer(hub, updates, config.JetStreamConfig)
	if err != nil {
		return nil, fmt.Errorf("create event consumer: %w", err)
	}

	return &Service{
		hub:           hub,
		wsHandler:     NewWebSocketHandler(hub),
		eventConsumer: eventConsumer,
		stateHandler:  NewStateHandler(stateProvider),
	}, nil
}

// Start runs the hub and consumer until the context ends.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting match gateway")

	go s.hub.Run(ctx)
	go func() {
		if err := s.eventConsumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer failed")
		}
	}()

	<-ctx.Done()
	return s.Stop()
}

// Stop shuts the consumer down; the hub stops with its context.
func (s *Service) Stop() error {
	if err := s.eventConsumer.Stop(); err != nil {
		log.Error().Err(err).Msg("failed to stop event consumer")
	}
	log.Info().Msg("match gateway stopped")
	return nil
}

// RegisterRoutes registers the socket and state endpoints.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	s.stateHandler.RegisterStateRoutes(mux)
	log.Info().Msg("match gateway routes registered")
}
