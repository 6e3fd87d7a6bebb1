package settings

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

func (r *repository) Current(ctx context.Context) (*StudioSettings, error) {
	query := `
		SELECT id, version, weekly_session_cap, member_weekly_session_cap, min_session_minutes, created_at
		FROM studio_settings
		ORDER BY version DESC
		LIMIT 1
	`

	var s StudioSettings
	err := r.db.GetContext(ctx, &s, query)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
