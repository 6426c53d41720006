package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"

	"github.com/pitchside/pitchside/internal/match/control"
	matchdb "github.com/pitchside/pitchside/internal/match/db"
	"github.com/pitchside/pitchside/internal/match/eventlog"
	"github.com/pitchside/pitchside/internal/match/fanout"
	"github.com/pitchside/pitchside/internal/match/gateway"
	"github.com/pitchside/pitchside/internal/match/match"
)

type Services struct {
	Match    *match.App
	EventLog *eventlog.App
	Control  *control.Handler
	Updates  *fanout.Channel
	Gateway  *gateway.Service
}

func setupServices(database *sql.DB, cfg *Config, clk clockwork.Clock) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → HTTP layer

	queries := matchdb.New(database)

	// Match phase controller
	matchRepo := match.NewRepository(queries)
	matchApp := match.NewApp(matchRepo, database, clk)

	// Event log
	eventRepo := eventlog.NewRepository(queries)
	eventApp := eventlog.NewApp(eventRepo, database, matchApp, clk)

	// Operator control surface
	controlHandler := control.NewHandler(matchApp, eventApp)

	// In-process fanout bridging the event consumer to server-side viewers
	updates := fanout.NewChannel()

	// Gateway: WebSocket broadcast + snapshot endpoints, fed by JetStream
	gatewayConfig := gateway.DefaultConfig()
	gatewayConfig.JetStreamConfig.URL = cfg.NATS.URL
	gatewayConfig.JetStreamConfig.StreamName = cfg.NATS.StreamName

	stateProvider := gateway.NewLiveStateProvider(matchApp, clk)
	gatewayService, err := gateway.NewService(gatewayConfig, stateProvider, updates)
	if err != nil {
		return nil, err
	}

	return &Services{
		Match:    matchApp,
		EventLog: eventApp,
		Control:  controlHandler,
		Updates:  updates,
		Gateway:  gatewayService,
	}, nil
}
