package session

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsByDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAnalyticsRepository(sqlx.NewDb(db, "sqlmock"))

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	rows := sqlmock.NewRows([]string{"bucket", "booked", "cancelled"}).
		AddRow("2026-03-02", 4, 1).
		AddRow("2026-03-03", 2, 0)

	mock.ExpectQuery("FROM sessions").
		WithArgs(from, to).
		WillReturnRows(rows)

	stats, err := repo.StatsByDay(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "2026-03-02", stats[0].Bucket)
	assert.Equal(t, 4, stats[0].Booked)
	assert.Equal(t, 1, stats[0].Cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsByMachine(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAnalyticsRepository(sqlx.NewDb(db, "sqlmock"))

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	rows := sqlmock.NewRows([]string{"machine_id", "machine_number", "machine_name", "booked", "cancelled"}).
		AddRow(int64(1), 1, "Rack A", 6, 2).
		AddRow(int64(2), 2, "Rack B", 0, 0)

	mock.ExpectQuery("FROM machines m").
		WithArgs(from, to).
		WillReturnRows(rows)

	stats, err := repo.StatsByMachine(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Rack A", stats[0].MachineName)
	assert.Equal(t, 6, stats[0].Booked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
