package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrMembershipNotFound = errors.New("membership not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertMembership(ctx context.Context, ext sqlx.ExtContext, m *Membership) error {
	query := `
		INSERT INTO session_members (id, session_id, member_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING booked_at
	`

	row := ext.QueryRowxContext(ctx, query, m.ID, m.SessionID, m.MemberID, m.Status)
	return row.Scan(&m.BookedAt)
}

func (r *repository) GetMembership(ctx context.Context, id uuid.UUID) (*Membership, error) {
	query := `
		SELECT id, session_id, member_id, status, booked_at
		FROM session_members
		WHERE id = $1
	`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Membership, error) {
	query := `
		SELECT id, session_id, member_id, status, booked_at
		FROM session_members
		WHERE session_id = $1
		ORDER BY booked_at ASC
	`

	var memberships []Membership
	err := r.db.SelectContext(ctx, &memberships, query, sessionID)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *repository) UpdateMembershipStatus(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, status MembershipStatus) error {
	query := `
		UPDATE session_members
		SET status = $2
		WHERE id = $1
	`

	result, err := ext.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

func (r *repository) CancelBySession(ctx context.Context, ext sqlx.ExtContext, sessionID uuid.UUID) error {
	query := `
		UPDATE session_members
		SET status = 'cancelled'
		WHERE session_id = $1 AND status <> 'cancelled'
	`

	_, err := ext.ExecContext(ctx, query, sessionID)
	return err
}

func (r *repository) RecountParticipants(ctx context.Context, ext sqlx.ExtContext, sessionID uuid.UUID) (int, error) {
	query := `
		UPDATE sessions
		SET current_participants = (
			SELECT COUNT(*)
			FROM session_members
			WHERE session_id = $1 AND status = 'confirmed'
		)
		WHERE id = $1
		RETURNING current_participants
	`

	var count int
	row := ext.QueryRowxContext(ctx, query, sessionID)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
