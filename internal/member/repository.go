package member

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

func (r *repository) GetByID(ctx context.Context, id int64) (*Member, error) {
	query := `
		SELECT id, name, email, created_at
		FROM members
		WHERE id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []int64) ([]Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, name, email, created_at
		FROM members
		WHERE id IN (?)
		ORDER BY id ASC
	`, ids)
	if err != nil {
		return nil, err
	}

	var members []Member
	err = r.db.SelectContext(ctx, &members, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return members, nil
}
