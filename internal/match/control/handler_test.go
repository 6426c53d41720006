package control

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pitchside/pitchside/internal/match/eventlog"
	"github.com/pitchside/pitchside/internal/match/match"
	"github.com/pitchside/pitchside/internal/models"
)

type stubMatchService struct {
	match *models.Match
	err   error
}

func (s *stubMatchService) CreateMatch(ctx context.Context, req match.CreateMatchRequest) (*models.Match, error) {
	return s.match, s.err
}

func (s *stubMatchService) ApplyTransition(ctx context.Context, req match.TransitionRequest) (*models.Match, error) {
	return s.match, s.err
}

func (s *stubMatchService) SetStoppage(ctx context.Context, req match.SetStoppageRequest) (*models.Match, error) {
	return s.match, s.err
}

func (s *stubMatchService) UpdateScore(ctx context.Context, req match.UpdateScoreRequest) (*models.Match, error) {
	return s.match, s.err
}

func (s *stubMatchService) SubmitLineup(ctx context.Context, req match.SubmitLineupRequest) (*models.Match, error) {
	return s.match, s.err
}

type stubEventService struct {
	event *models.MatchEvent
	err   error
}

func (s *stubEventService) Record(ctx context.Context, req eventlog.RecordEventRequest) (*models.MatchEvent, error) {
	return s.event, s.err
}

func (s *stubEventService) Delete(ctx context.Context, matchID, eventID uuid.UUID) error {
	return s.err
}

func serve(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestTransitionSuccess(t *testing.T) {
	m := &models.Match{ID: uuid.New(), Status: models.MatchStatusLive}
	h := NewHandler(&stubMatchService{match: m}, &stubEventService{})

	body := `{"match_id":"` + m.ID.String() + `","transition":"start"}`
	w := serve(h, http.MethodPost, "/api/control/transition", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"LIVE"`)
}

func TestTransitionErrorMapping(t *testing.T) {
	matchID := uuid.New().String()
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", match.ErrNotFound, http.StatusNotFound},
		{"lost race", match.ErrConflict, http.StatusConflict},
		{"illegal edge", match.ErrInvalidTransition, http.StatusUnprocessableEntity},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHandler(&stubMatchService{err: c.err}, &stubEventService{})
			body := `{"match_id":"` + matchID + `","transition":"start"}`
			w := serve(h, http.MethodPost, "/api/control/transition", body)
			assert.Equal(t, c.code, w.Code)
		})
	}
}

func TestTransitionRejectsBadInput(t *testing.T) {
	h := NewHandler(&stubMatchService{}, &stubEventService{})

	w := serve(h, http.MethodPost, "/api/control/transition", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(h, http.MethodPost, "/api/control/transition", `{"match_id":"nope","transition":"start"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(h, http.MethodGet, "/api/control/transition", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCreateMatchReturnsCreated(t *testing.T) {
	m := &models.Match{ID: uuid.New(), Status: models.MatchStatusScheduled}
	h := NewHandler(&stubMatchService{match: m}, &stubEventService{})

	body := `{"competition_id":"` + uuid.New().String() + `","home_team_id":"` + uuid.New().String() +
		`","away_team_id":"` + uuid.New().String() + `","home_team_name":"Rovers","away_team_name":"Athletic"}`
	w := serve(h, http.MethodPost, "/api/control/matches", body)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRecordEventReturnsCreated(t *testing.T) {
	ev := &models.MatchEvent{ID: uuid.New(), Type: models.EventTypeGoal}
	h := NewHandler(&stubMatchService{}, &stubEventService{event: ev})

	body := `{"match_id":"` + uuid.New().String() + `","minute":12,"type":"GOAL","team_id":"` + uuid.New().String() + `"}`
	w := serve(h, http.MethodPost, "/api/control/events", body)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRecordEventInvalidIsUnprocessable(t *testing.T) {
	h := NewHandler(&stubMatchService{}, &stubEventService{err: eventlog.ErrInvalidEvent})

	body := `{"match_id":"` + uuid.New().String() + `","minute":12,"type":"GOAL","team_id":"` + uuid.New().String() + `"}`
	w := serve(h, http.MethodPost, "/api/control/events", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteEventReturnsNoContent(t *testing.T) {
	h := NewHandler(&stubMatchService{}, &stubEventService{})

	target := "/api/control/events?match_id=" + uuid.New().String() + "&event_id=" + uuid.New().String()
	w := serve(h, http.MethodDelete, target, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteEventRejectsMissingIDs(t *testing.T) {
	h := NewHandler(&stubMatchService{}, &stubEventService{})

	w := serve(h, http.MethodDelete, "/api/control/events", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoppageLocked(t *testing.T) {
	h := NewHandler(&stubMatchService{err: match.ErrInvalidTransition}, &stubEventService{})

	body := `{"match_id":"` + uuid.New().String() + `","minutes":4}`
	w := serve(h, http.MethodPost, "/api/control/stoppage", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLineupLockedIsConflict(t *testing.T) {
	h := NewHandler(&stubMatchService{err: match.ErrLineupLocked}, &stubEventService{})

	body := `{"match_id":"` + uuid.New().String() + `","lineups":{}}`
	w := serve(h, http.MethodPost, "/api/control/lineup", body)

	assert.Equal(t, http.StatusConflict, w.Code)
}
