package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoTest(t *testing.T) (Repository, sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewRepository(sqlxDB), mock, sqlxDB
}

func TestInsertMembership(t *testing.T) {
	repo, mock, db := newRepoTest(t)

	m := &Membership{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		MemberID:  7,
		Status:    MembershipConfirmed,
	}
	bookedAt := time.Now()

	mock.ExpectQuery("INSERT INTO session_members").
		WithArgs(m.ID, m.SessionID, m.MemberID, m.Status).
		WillReturnRows(sqlmock.NewRows([]string{"booked_at"}).AddRow(bookedAt))

	err := repo.InsertMembership(context.Background(), db, m)

	require.NoError(t, err)
	assert.Equal(t, bookedAt, m.BookedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMembership(t *testing.T) {
	repo, mock, _ := newRepoTest(t)

	id := uuid.New()
	sessionID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "session_id", "member_id", "status", "booked_at"}).
		AddRow(id, sessionID, int64(7), "confirmed", time.Now())

	mock.ExpectQuery("SELECT id, session_id, member_id, status, booked_at").
		WithArgs(id).
		WillReturnRows(rows)

	m, err := repo.GetMembership(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, sessionID, m.SessionID)
	assert.Equal(t, MembershipConfirmed, m.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySession(t *testing.T) {
	repo, mock, _ := newRepoTest(t)

	sessionID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "session_id", "member_id", "status", "booked_at"}).
		AddRow(uuid.New(), sessionID, int64(7), "confirmed", time.Now()).
		AddRow(uuid.New(), sessionID, int64(8), "cancelled", time.Now())

	mock.ExpectQuery("FROM session_members").
		WithArgs(sessionID).
		WillReturnRows(rows)

	memberships, err := repo.ListBySession(context.Background(), sessionID)

	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, int64(7), memberships[0].MemberID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMembershipStatusRepo(t *testing.T) {
	repo, mock, db := newRepoTest(t)

	id := uuid.New()
	mock.ExpectExec("UPDATE session_members").
		WithArgs(id, MembershipAttended).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateMembershipStatus(context.Background(), db, id, MembershipAttended)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMembershipStatusRepoNotFound(t *testing.T) {
	repo, mock, db := newRepoTest(t)

	id := uuid.New()
	mock.ExpectExec("UPDATE session_members").
		WithArgs(id, MembershipCancelled).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateMembershipStatus(context.Background(), db, id, MembershipCancelled)

	assert.ErrorIs(t, err, ErrMembershipNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBySession(t *testing.T) {
	repo, mock, db := newRepoTest(t)

	sessionID := uuid.New()
	mock.ExpectExec("UPDATE session_members").
		WithArgs(sessionID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.CancelBySession(context.Background(), db, sessionID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecountParticipants(t *testing.T) {
	repo, mock, db := newRepoTest(t)

	sessionID := uuid.New()
	mock.ExpectQuery("UPDATE sessions").
		WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"current_participants"}).AddRow(2))

	count, err := repo.RecountParticipants(context.Background(), db, sessionID)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
