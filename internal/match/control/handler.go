// Package control exposes the operator surface: the HTTP endpoints a match
// operator uses to drive the phase machine, the event log, scores and
// lineups. Viewers never call these; they read through the gateway.
package control

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pitchside/pitchside/internal/match/eventlog"
	"github.com/pitchside/pitchside/internal/match/match"
	"github.com/pitchside/pitchside/internal/models"
)

// MatchService is the slice of the match app the control surface drives.
type MatchService interface {
	CreateMatch(ctx context.Context, req match.CreateMatchRequest) (*models.Match, error)
	ApplyTransition(ctx context.Context, req match.TransitionRequest) (*models.Match, error)
	SetStoppage(ctx context.Context, req match.SetStoppageRequest) (*models.Match, error)
	UpdateScore(ctx context.Context, req match.UpdateScoreRequest) (*models.Match, error)
	SubmitLineup(ctx context.Context, req match.SubmitLineupRequest) (*models.Match, error)
}

// EventService is the slice of the event log app the control surface drives.
type EventService interface {
	Record(ctx context.Context, req eventlog.RecordEventRequest) (*models.MatchEvent, error)
	Delete(ctx context.Context, matchID, eventID uuid.UUID) error
}

// Handler serves the operator control endpoints.
type Handler struct {
	matches MatchService
	events  EventService
}

// NewHandler creates a new control handler.
func NewHandler(matches MatchService, events EventService) *Handler {
	return &Handler{matches: matches, events: events}
}

// RegisterRoutes registers the control endpoints with an HTTP mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/control/matches", h.handleCreateMatch)
	mux.HandleFunc("/api/control/transition", h.handleTransition)
	mux.HandleFunc("/api/control/stoppage", h.handleStoppage)
	mux.HandleFunc("/api/control/score", h.handleScore)
	mux.HandleFunc("/api/control/lineup", h.handleLineup)
	mux.HandleFunc("/api/control/events", h.handleEvents)
	log.Info().Msg("match control routes registered")
}

type createMatchRequest struct {
	CompetitionID string              `json:"competition_id"`
	HomeTeamID    string              `json:"home_team_id"`
	AwayTeamID    string              `json:"away_team_id"`
	HomeTeamName  string              `json:"home_team_name"`
	AwayTeamName  string              `json:"away_team_name"`
	KickoffAt     *int64              `json:"kickoff_at,omitempty"`
	Config        *models.MatchConfig `json:"config,omitempty"`
}

func (h *Handler) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	competitionID, err := uuid.Parse(req.CompetitionID)
	if err != nil {
		http.Error(w, "invalid competition_id", http.StatusBadRequest)
		return
	}
	homeID, err := uuid.Parse(req.HomeTeamID)
	if err != nil {
		http.Error(w, "invalid home_team_id", http.StatusBadRequest)
		return
	}
	awayID, err := uuid.Parse(req.AwayTeamID)
	if err != nil {
		http.Error(w, "invalid away_team_id", http.StatusBadRequest)
		return
	}

	m, err := h.matches.CreateMatch(r.Context(), match.CreateMatchRequest{
		CompetitionID: competitionID,
		HomeTeamID:    homeID,
		AwayTeamID:    awayID,
		HomeTeamName:  req.HomeTeamName,
		AwayTeamName:  req.AwayTeamName,
		KickoffAt:     req.KickoffAt,
		Config:        req.Config,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

type transitionRequest struct {
	MatchID    string `json:"match_id"`
	Transition string `json:"transition"`
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		http.Error(w, "invalid match_id", http.StatusBadRequest)
		return
	}

	m, err := h.matches.ApplyTransition(r.Context(), match.TransitionRequest{
		MatchID:    matchID,
		Transition: match.Transition(req.Transition),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type stoppageRequest struct {
	MatchID string `json:"match_id"`
	Minutes int    `json:"minutes"`
}

func (h *Handler) handleStoppage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req stoppageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		http.Error(w, "invalid match_id", http.StatusBadRequest)
		return
	}

	m, err := h.matches.SetStoppage(r.Context(), match.SetStoppageRequest{
		MatchID: matchID,
		Minutes: req.Minutes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type scoreRequest struct {
	MatchID   string `json:"match_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		http.Error(w, "invalid match_id", http.StatusBadRequest)
		return
	}

	m, err := h.matches.UpdateScore(r.Context(), match.UpdateScoreRequest{
		MatchID:   matchID,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type lineupRequest struct {
	MatchID string         `json:"match_id"`
	Lineups models.Lineups `json:"lineups"`
}

func (h *Handler) handleLineup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req lineupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		http.Error(w, "invalid match_id", http.StatusBadRequest)
		return
	}

	m, err := h.matches.SubmitLineup(r.Context(), match.SubmitLineupRequest{
		MatchID: matchID,
		Lineups: req.Lineups,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type recordEventRequest struct {
	MatchID     string  `json:"match_id"`
	Minute      int     `json:"minute"`
	Type        string  `json:"type"`
	TeamID      string  `json:"team_id"`
	PlayerID    *string `json:"player_id,omitempty"`
	Description string  `json:"description,omitempty"`
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRecordEvent(w, r)
	case http.MethodDelete:
		h.handleDeleteEvent(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var req recordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		http.Error(w, "invalid match_id", http.StatusBadRequest)
		return
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		http.Error(w, "invalid team_id", http.StatusBadRequest)
		return
	}

	var playerID *uuid.UUID
	if req.PlayerID != nil {
		id, err := uuid.Parse(*req.PlayerID)
		if err != nil {
			http.Error(w, "invalid player_id", http.StatusBadRequest)
			return
		}
		playerID = &id
	}

	ev, err := h.events.Record(r.Context(), eventlog.RecordEventRequest{
		MatchID:     matchID,
		Minute:      req.Minute,
		Type:        models.EventType(req.Type),
		TeamID:      teamID,
		PlayerID:    playerID,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(r.URL.Query().Get("match_id"))
	if err != nil {
		http.Error(w, "invalid match_id", http.StatusBadRequest)
		return
	}
	eventID, err := uuid.Parse(r.URL.Query().Get("event_id"))
	if err != nil {
		http.Error(w, "invalid event_id", http.StatusBadRequest)
		return
	}

	if err := h.events.Delete(r.Context(), matchID, eventID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes. A lost transition
// race is a 409 the operator retries after re-reading; an illegal edge or a
// bad record is a 422 the operator must correct.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, match.ErrNotFound), errors.Is(err, eventlog.ErrEventNotFound):
		status = http.StatusNotFound
	case errors.Is(err, match.ErrConflict), errors.Is(err, match.ErrLineupLocked):
		status = http.StatusConflict
	case errors.Is(err, match.ErrInvalidTransition), errors.Is(err, eventlog.ErrInvalidEvent):
		status = http.StatusUnprocessableEntity
	}

	if status >= 500 {
		log.Error().Err(err).Msg("control request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
