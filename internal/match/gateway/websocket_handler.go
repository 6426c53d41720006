package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler serves the screen-facing socket endpoints.
type WebSocketHandler struct {
	hub *Hub
}

// NewWebSocketHandler creates a handler over the hub.
func NewWebSocketHandler(hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleMatchSocket attaches a screen to a match's broadcast pool.
func (h *WebSocketHandler) HandleMatchSocket(w http.ResponseWriter, r *http.Request) {
	matchIDStr := r.URL.Query().Get("match_id")
	if matchIDStr == "" {
		http.Error(w, "match_id is required", http.StatusBadRequest)
		return
	}

	matchID, err := uuid.Parse(matchIDStr)
	if err != nil {
		http.Error(w, "invalid match_id format", http.StatusBadRequest)
		return
	}

	if err := h.hub.Attach(w, r, matchID); err != nil {
		log.Error().Err(err).Str("match_id", matchID.String()).Msg("failed to attach screen")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
	}
}

// HandleStats reports attached screen counts.
func (h *WebSocketHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.hub.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to encode hub stats")
	}
}

// RegisterRoutes registers the socket endpoints with an HTTP mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/match", h.HandleMatchSocket)
	mux.HandleFunc("/api/gateway/stats", h.HandleStats)
}
