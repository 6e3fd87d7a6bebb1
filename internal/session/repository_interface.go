package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iSamBa/gym-manager-sub000/internal/interval"
)

type Repository interface {
	// Insert runs against ext so the coordinator can place it inside
	// its transaction.
	Insert(ctx context.Context, ext sqlx.ExtContext, s *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	// UpdateStatus refuses transitions out of terminal states and
	// reports ErrNotTransitionable when no row was changed.
	UpdateStatus(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, status Status) error

	// Conflict scans. All of them ignore cancelled sessions, return
	// results ordered by start time and optionally exclude one session
	// (re-validating an existing session being edited).
	ListMachineConflicts(ctx context.Context, machineID int64, iv interval.Interval, excludeID *uuid.UUID) ([]Summary, error)
	ListTrainerConflicts(ctx context.Context, trainerID int64, iv interval.Interval, excludeID *uuid.UUID) ([]Summary, error)
	ListMemberConflicts(ctx context.Context, memberIDs []int64, iv interval.Interval, excludeID *uuid.UUID) ([]MemberConflict, error)

	// Weekly-quota lookups, always live, never cached.
	MembersWithWeeklyMemberSession(ctx context.Context, memberIDs []int64, week interval.Interval, excludeID *uuid.UUID) ([]int64, error)
	CountSessionsInWeek(ctx context.Context, week interval.Interval) (int, error)

	// Read surface.
	ListRange(ctx context.Context, from, to time.Time) ([]CalendarEntry, error)
	GetCalendarEntry(ctx context.Context, id uuid.UUID) (*CalendarEntry, error)
}
