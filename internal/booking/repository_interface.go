package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository is the membership store. Mutating methods run against ext
// so the coordinator can place them inside its transaction; only the
// coordinator and the occupancy maintainer write membership rows.
type Repository interface {
	InsertMembership(ctx context.Context, ext sqlx.ExtContext, m *Membership) error
	GetMembership(ctx context.Context, id uuid.UUID) (*Membership, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Membership, error)
	UpdateMembershipStatus(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, status MembershipStatus) error
	CancelBySession(ctx context.Context, ext sqlx.ExtContext, sessionID uuid.UUID) error
	// RecountParticipants recomputes the owning session's derived
	// participant counter from confirmed memberships.
	RecountParticipants(ctx context.Context, ext sqlx.ExtContext, sessionID uuid.UUID) (int, error)
}
