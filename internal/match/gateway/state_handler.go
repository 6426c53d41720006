package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pitchside/pitchside/internal/match/clock"
	"github.com/pitchside/pitchside/internal/models"
)

// StateProvider interface defines methods for retrieving match state
type StateProvider interface {
	GetMatchState(ctx context.Context, matchID uuid.UUID) (*MatchStateResponse, error)
	GetCompetitionMatches(ctx context.Context, competitionID uuid.UUID) ([]MatchSummary, error)
}

// MatchStateResponse represents the complete snapshot of a match
type MatchStateResponse struct {
	MatchID         string              `json:"match_id"`
	Status          string              `json:"status"`
	HomeTeam        string              `json:"home_team"`
	AwayTeam        string              `json:"away_team"`
	HomeScore       int                 `json:"home_score"`
	AwayScore       int                 `json:"away_score"`
	Minute          clock.Minute        `json:"minute"`
	MinuteDisplay   string              `json:"minute_display"`
	StoppageMinutes int                 `json:"stoppage_minutes"`
	Anchor          models.Anchor       `json:"anchor"`
	Countdown       *clock.Countdown    `json:"countdown,omitempty"`
	KickoffAt       *time.Time          `json:"kickoff_at,omitempty"`
	Events          []models.MatchEvent `json:"events"`
	Lineups         *models.Lineups     `json:"lineups,omitempty"`
	ServerTime      time.Time           `json:"server_time"`
}

// MatchSummary represents a summary of a match in a competition listing
type MatchSummary struct {
	MatchID       string     `json:"match_id"`
	Status        string     `json:"status"`
	HomeTeam      string     `json:"home_team"`
	AwayTeam      string     `json:"away_team"`
	HomeScore     int        `json:"home_score"`
	AwayScore     int        `json:"away_score"`
	MinuteDisplay string     `json:"minute_display"`
	KickoffAt     *time.Time `json:"kickoff_at,omitempty"`
}

// StateHandler handles HTTP requests for match state
type StateHandler struct {
	stateProvider StateProvider
}

// NewStateHandler creates a new state handler
func NewStateHandler(provider StateProvider) *StateHandler {
	return &StateHandler{
		stateProvider: provider,
	}
}

// HandleGetMatchState handles GET /api/matches/{id}/state
func (h *StateHandler) HandleGetMatchState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matchIDStr := extractIDFromPath(r.URL.Path, "/api/matches/", "/state")
	if matchIDStr == "" {
		http.Error(w, "Match ID is required", http.StatusBadRequest)
		return
	}

	matchID, err := uuid.Parse(matchIDStr)
	if err != nil {
		http.Error(w, "Invalid match ID format", http.StatusBadRequest)
		return
	}

	state, err := h.stateProvider.GetMatchState(r.Context(), matchID)
	if err != nil {
		log.Error().Err(err).Str("match_id", matchID.String()).Msg("failed to get match state")
		http.Error(w, "Failed to get match state", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		log.Error().Err(err).Msg("failed to encode match state response")
	}
}

// HandleGetCompetitionMatches handles GET /api/competitions/{id}/matches
func (h *StateHandler) HandleGetCompetitionMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	competitionIDStr := extractIDFromPath(r.URL.Path, "/api/competitions/", "/matches")
	if competitionIDStr == "" {
		http.Error(w, "Competition ID is required", http.StatusBadRequest)
		return
	}

	competitionID, err := uuid.Parse(competitionIDStr)
	if err != nil {
		http.Error(w, "Invalid competition ID format", http.StatusBadRequest)
		return
	}

	matches, err := h.stateProvider.GetCompetitionMatches(r.Context(), competitionID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get competition matches")
		http.Error(w, "Failed to get competition matches", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(matches); err != nil {
		log.Error().Err(err).Msg("failed to encode competition matches response")
	}
}

// RegisterStateRoutes registers state-related HTTP routes
func (h *StateHandler) RegisterStateRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/matches/", func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("path", r.URL.Path).Msg("state handler received request")

		if strings.HasSuffix(r.URL.Path, "/state") {
			h.HandleGetMatchState(w, r)
		} else {
			http.NotFound(w, r)
		}
	})

	mux.HandleFunc("/api/competitions/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/matches") {
			h.HandleGetCompetitionMatches(w, r)
		} else {
			http.NotFound(w, r)
		}
	})
}

// extractIDFromPath extracts an ID from a path like {prefix}{id}{suffix}
func extractIDFromPath(path, prefix, suffix string) string {
	if len(path) <= len(prefix)+len(suffix) {
		return ""
	}
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return ""
	}
	return path[len(prefix) : len(path)-len(suffix)]
}
