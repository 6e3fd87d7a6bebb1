package machine

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Machine, error) {
	query := `
		SELECT id, number, name, status, created_at
		FROM machines
		WHERE id = $1
	`

	var m Machine
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Machine, error) {
	query := `
		SELECT id, number, name, status, created_at
		FROM machines
		ORDER BY number ASC
	`

	var machines []Machine
	err := r.db.SelectContext(ctx, &machines, query)
	if err != nil {
		return nil, err
	}

	return machines, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM machines WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	if err != nil {
		return false, err
	}

	return exists, nil
}
