package match

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside/internal/match/db"
	"github.com/pitchside/pitchside/internal/models"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewRepository(db.New(database)), mock
}

func TestTransitionMatchConflict(t *testing.T) {
	repo, mock := newMockRepository(t)

	// The guard on the current phase matches no rows when another writer
	// already moved the match on.
	mock.ExpectQuery("UPDATE matches").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	anchor := models.Anchor{
		ReferenceWallClock:   time.Date(2026, 9, 12, 15, 0, 0, 0, time.UTC),
		ReferenceMatchMinute: 0,
	}
	_, err := repo.TransitionMatch(context.Background(), uuid.New(),
		models.MatchStatusScheduled, models.MatchStatusLive, anchor)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAnchorConflict(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE matches").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	anchor := models.Anchor{ReferenceMatchMinute: 45, StoppageMinutes: 3}
	_, err := repo.UpdateAnchor(context.Background(), uuid.New(),
		models.MatchStatusLive, anchor)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
