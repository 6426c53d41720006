package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub fans match events out to every open screen. Screens attach to exactly
// one match; the hub keeps a pool per match and pushes marshalled frames
// through per-screen send buffers so one stalled socket cannot hold up the
// rest.
type Hub struct {
	mu      sync.RWMutex
	screens map[uuid.UUID]map[*screen]struct{}

	upgrader websocket.Upgrader
	cfg      HubConfig
	outbound chan frame
}

// HubConfig tunes socket timeouts and buffers.
type HubConfig struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	BufferSize     int
	CheckOrigin    func(r *http.Request) bool
}

// DefaultHubConfig returns the timeouts the hub ships with.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout:   10 * time.Second,
		PongTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 1024,
		BufferSize:     1024,
		// Origins are enforced by the CORS layer in front of the mux.
		CheckOrigin: func(r *http.Request) bool { return true },
	}
}

// frame is one marshalled event bound for every screen of a match.
type frame struct {
	matchID uuid.UUID
	data    []byte
}

// screen is one attached WebSocket viewer.
type screen struct {
	id      uuid.UUID
	matchID uuid.UUID
	sock    *websocket.Conn
	send    chan []byte
	hub     *Hub
}

// HubStats is a point-in-time count of attached screens.
type HubStats struct {
	TotalScreens  int            `json:"total_screens"`
	ActiveMatches int            `json:"active_matches"`
	PerMatch      map[string]int `json:"per_match"`
}

// NewHub creates a hub with the given config.
func NewHub(cfg HubConfig) *Hub {
	return &Hub{
		screens: make(map[uuid.UUID]map[*screen]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.BufferSize,
			WriteBufferSize: cfg.BufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
		cfg:      cfg,
		outbound: make(chan frame, 1000),
	}
}

// Run drains the outbound queue until the context ends.
func (h *Hub) Run(ctx context.Context) {
	log.Info().Msg("gateway hub started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("gateway hub shutting down")
			return
		case f := <-h.outbound:
			h.deliver(f)
		}
	}
}

// Attach upgrades the request to a WebSocket and registers the screen on the
// match's pool. The screen lives until its socket errors, times out, or the
// hub drops it for falling behind.
func (h *Hub) Attach(w http.ResponseWriter, r *http.Request, matchID uuid.UUID) error {
	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade connection: %w", err)
	}

	s := &screen{
		id:      uuid.New(),
		matchID: matchID,
		sock:    sock,
		send:    make(chan []byte, 256),
		hub:     h,
	}

	h.mu.Lock()
	pool := h.screens[matchID]
	if pool == nil {
		pool = make(map[*screen]struct{})
		h.screens[matchID] = pool
	}
	pool[s] = struct{}{}
	h.mu.Unlock()

	go s.writePump()
	go s.readPump()

	log.Info().
		Str("screen_id", s.id.String()).
		Str("match_id", matchID.String()).
		Msg("screen attached")
	return nil
}

// Broadcast marshals the event once and queues it for every screen of the
// match. A full queue drops the frame; the periodic snapshot refresh is the
// backstop for anything dropped here.
func (h *Hub) Broadcast(matchID uuid.UUID, event *MatchEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	select {
	case h.outbound <- frame{matchID: matchID, data: data}:
	default:
		log.Warn().Str("match_id", matchID.String()).Msg("outbound queue full, dropping frame")
	}
}

// Stats reports attached screen counts.
func (h *Hub) Stats() HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := HubStats{PerMatch: make(map[string]int, len(h.screens))}
	for matchID, pool := range h.screens {
		stats.TotalScreens += len(pool)
		stats.PerMatch[matchID.String()] = len(pool)
	}
	stats.ActiveMatches = len(h.screens)
	return stats
}

func (h *Hub) deliver(f frame) {
	h.mu.RLock()
	targets := make([]*screen, 0, len(h.screens[f.matchID]))
	for s := range h.screens[f.matchID] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		select {
		case s.send <- f.data:
		default:
			// The screen stopped draining; cut it loose.
			log.Warn().Str("screen_id", s.id.String()).Msg("screen send buffer full, detaching")
			h.detach(s)
			s.sock.Close()
		}
	}
}

func (h *Hub) detach(s *screen) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pool, ok := h.screens[s.matchID]
	if !ok {
		return
	}
	if _, ok := pool[s]; !ok {
		return
	}
	delete(pool, s)
	if len(pool) == 0 {
		delete(h.screens, s.matchID)
	}

	log.Info().
		Str("screen_id", s.id.String()).
		Str("match_id", s.matchID.String()).
		Msg("screen detached")
}

func (s *screen) writePump() {
	ping := time.NewTicker(s.hub.cfg.PingInterval)
	defer func() {
		ping.Stop()
		s.sock.Close()
		s.hub.detach(s)
	}()

	for {
		select {
		case data := <-s.send:
			s.sock.SetWriteDeadline(time.Now().Add(s.hub.cfg.WriteTimeout))
			if err := s.sock.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("screen_id", s.id.String()).Msg("write failed")
				return
			}
		case <-ping.C:
			s.sock.SetWriteDeadline(time.Now().Add(s.hub.cfg.WriteTimeout))
			if err := s.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump exists to service pongs and detect a dead peer. Screens are
// read-only viewers; anything they send is discarded.
func (s *screen) readPump() {
	defer func() {
		s.hub.detach(s)
		s.sock.Close()
	}()

	s.sock.SetReadLimit(s.hub.cfg.MaxMessageSize)
	s.sock.SetReadDeadline(time.Now().Add(s.hub.cfg.PongTimeout))
	s.sock.SetPongHandler(func(string) error {
		s.sock.SetReadDeadline(time.Now().Add(s.hub.cfg.PongTimeout))
		return nil
	})

	for {
		if _, _, err := s.sock.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("screen_id", s.id.String()).Msg("unexpected close")
			}
			return
		}
		s.sock.SetReadDeadline(time.Now().Add(s.hub.cfg.PongTimeout))
	}
}
