package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	published []OutboxEvent
	failures  int
}

func (p *recordingPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	if p.failures > 0 {
		p.failures--
		return errors.New("bus unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func unsentRows(ids ...uuid.UUID) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "match_id", "event_type", "payload", "created_at", "sent_at"})
	for _, id := range ids {
		rows.AddRow(id.String(), uuid.NewString(), "ScoreUpdated", []byte(`{}`), time.Now(), nil)
	}
	return rows
}

func TestSweepPublishesAndMarksSent(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	first, second := uuid.New(), uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, match_id, event_type").
		WillReturnRows(unsentRows(first, second))
	mock.ExpectExec("UPDATE match_outbox").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	pub := &recordingPublisher{}
	n, err := sweepUnsent(context.Background(), database, pub, 100, 3, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, pub.published, 2)
	assert.Equal(t, first, pub.published[0].ID)
	assert.Equal(t, second, pub.published[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepWithNothingUnsentDoesNotWrite(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, match_id, event_type").
		WillReturnRows(unsentRows())
	mock.ExpectRollback()

	pub := &recordingPublisher{}
	n, err := sweepUnsent(context.Background(), database, pub, 100, 3, time.Millisecond)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, pub.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepLeavesUnpublishableRowsUnsent(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, match_id, event_type").
		WillReturnRows(unsentRows(id))
	mock.ExpectRollback()

	// Every attempt fails; the row stays unsent for the next sweep.
	pub := &recordingPublisher{failures: 3}
	n, err := sweepUnsent(context.Background(), database, pub, 100, 3, time.Millisecond)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishRetriesTransientFailure(t *testing.T) {
	pub := &recordingPublisher{failures: 2}
	ev := OutboxEvent{ID: uuid.New(), EventType: "PhaseChanged"}

	err := publishWithRetry(context.Background(), pub, ev, 3, time.Millisecond)

	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	assert.Equal(t, ev.ID, pub.published[0].ID)
}

func TestPublishGivesUpAfterMaxAttempts(t *testing.T) {
	pub := &recordingPublisher{failures: 5}

	err := publishWithRetry(context.Background(), pub, OutboxEvent{ID: uuid.New()}, 3, time.Millisecond)

	assert.Error(t, err)
	assert.Empty(t, pub.published)
}
