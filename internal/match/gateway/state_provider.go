package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/pitchside/pitchside/internal/match/clock"
	"github.com/pitchside/pitchside/internal/models"
)

// MatchApp is the slice of the match service the gateway needs to build
// snapshots.
type MatchApp interface {
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatchesByCompetition(ctx context.Context, competitionID uuid.UUID) ([]*models.Match, error)
}

// LiveStateProvider implements StateProvider directly over the match app.
type LiveStateProvider struct {
	matches MatchApp
	clk     clockwork.Clock
}

// NewLiveStateProvider creates a new state provider backed by the match app.
func NewLiveStateProvider(matches MatchApp, clk clockwork.Clock) *LiveStateProvider {
	return &LiveStateProvider{matches: matches, clk: clk}
}

// GetMatchState retrieves the complete snapshot of a match, including the
// derived clock face and the server time the client anchors its own clock to.
func (p *LiveStateProvider) GetMatchState(ctx context.Context, matchID uuid.UUID) (*MatchStateResponse, error) {
	m, err := p.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	now := p.clk.Now().UTC()
	minute := clock.DisplayMinute(m.Status, m.Anchor, m.Config, now)

	response := &MatchStateResponse{
		MatchID:         m.ID.String(),
		Status:          string(m.Status),
		HomeTeam:        m.HomeTeamName,
		AwayTeam:        m.AwayTeamName,
		HomeScore:       m.HomeScore,
		AwayScore:       m.AwayScore,
		Minute:          minute,
		MinuteDisplay:   minute.String(),
		StoppageMinutes: m.Anchor.StoppageMinutes,
		Anchor:          m.Anchor,
		KickoffAt:       m.KickoffAt,
		Events:          m.Events,
		Lineups:         m.Lineups,
		ServerTime:      now,
	}

	if m.Status == models.MatchStatusScheduled && m.KickoffAt != nil {
		cd := clock.CountdownTo(*m.KickoffAt, now)
		response.Countdown = &cd
	}

	return response, nil
}

// GetCompetitionMatches retrieves summaries of all matches in a competition.
func (p *LiveStateProvider) GetCompetitionMatches(ctx context.Context, competitionID uuid.UUID) ([]MatchSummary, error) {
	matches, err := p.matches.ListMatchesByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	now := p.clk.Now().UTC()
	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		minute := clock.DisplayMinute(m.Status, m.Anchor, m.Config, now)
		summaries = append(summaries, MatchSummary{
			MatchID:       m.ID.String(),
			Status:        string(m.Status),
			HomeTeam:      m.HomeTeamName,
			AwayTeam:      m.AwayTeamName,
			HomeScore:     m.HomeScore,
			AwayScore:     m.AwayScore,
			MinuteDisplay: minute.String(),
			KickoffAt:     m.KickoffAt,
		})
	}
	return summaries, nil
}
