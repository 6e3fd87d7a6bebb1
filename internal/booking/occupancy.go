package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Maintainer keeps the derived current_participants counter of a
// session consistent with its confirmed memberships. Every membership
// mutation must call Refresh within the same transaction as the write;
// no code path sets the counter directly.
type Maintainer struct {
	memberships Repository
}

func NewMaintainer(memberships Repository) *Maintainer {
	return &Maintainer{memberships: memberships}
}

func (m *Maintainer) Refresh(ctx context.Context, ext sqlx.ExtContext, sessionID uuid.UUID) (int, error) {
	return m.memberships.RecountParticipants(ctx, ext, sessionID)
}
