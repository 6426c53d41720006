package eventlog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside/internal/match/db"
	"github.com/pitchside/pitchside/internal/match/events"
)

func newMockApp(t *testing.T) (*App, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	repo := NewRepository(db.New(database))
	return NewApp(repo, database, nil, clockwork.NewFakeClock()), mock
}

func TestDeleteRemovedEventPublishes(t *testing.T) {
	app, mock := newMockApp(t)
	matchID := uuid.New()
	eventID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM match_events").
		WithArgs(eventID, matchID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO match_outbox").
		WithArgs(sqlmock.AnyArg(), matchID, events.TypeEventDeleted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := app.Delete(context.Background(), matchID, eventID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingEventIsNoOp(t *testing.T) {
	app, mock := newMockApp(t)
	matchID := uuid.New()
	eventID := uuid.New()

	// Zero rows removed commits without writing an outbox row; any insert
	// here would show up as an unexpected call and fail the delete.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM match_events").
		WithArgs(eventID, matchID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := app.Delete(context.Background(), matchID, eventID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
