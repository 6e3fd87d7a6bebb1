package machine

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT id, number, name, status, created_at\s+FROM machines\s+WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "name", "status", "created_at"}).
			AddRow(3, 3, "Tower 3", "active", time.Now()))

	m, err := repo.GetByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), m.ID)
	assert.Equal(t, "Tower 3", m.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT id, number, name, status, created_at\s+FROM machines`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "name", "status", "created_at"}).
			AddRow(1, 1, "Tower 1", "active", time.Now()).
			AddRow(2, 2, "Tower 2", "active", time.Now()))

	machines, err := repo.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, machines, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbx := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(dbx)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM machines WHERE id = \$1\)`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.Exists(context.Background(), 99)
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
