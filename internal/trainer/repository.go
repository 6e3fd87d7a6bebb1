package trainer

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

func (r *repository) GetByID(ctx context.Context, id int64) (*Trainer, error) {
	query := `
		SELECT id, name, max_clients_per_session, created_at
		FROM trainers
		WHERE id = $1
	`

	var tr Trainer
	err := r.db.GetContext(ctx, &tr, query, id)
	if err != nil {
		return nil, err
	}

	return &tr, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Trainer, error) {
	query := `
		SELECT id, name, max_clients_per_session, created_at
		FROM trainers
		ORDER BY name ASC
	`

	var trainers []Trainer
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}
