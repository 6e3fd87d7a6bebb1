package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iSamBa/gym-manager-sub000/internal/interval"
)

var ErrNotTransitionable = errors.New("session not found or already in a terminal state")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, ext sqlx.ExtContext, s *Session) error {
	query := `
		INSERT INTO sessions (id, machine_id, trainer_id, start_time, end_time, status, kind, location, max_participants, current_participants, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	row := ext.QueryRowxContext(ctx, query,
		s.ID, s.MachineID, s.TrainerID, s.StartTime, s.EndTime,
		s.Status, s.Kind, s.Location, s.MaxParticipants, s.CurrentParticipants, s.Notes,
	)
	return row.Scan(&s.CreatedAt)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	query := `
		SELECT id, machine_id, trainer_id, start_time, end_time, status, kind, location, max_participants, current_participants, notes, created_at
		FROM sessions
		WHERE id = $1
	`

	var s Session
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) UpdateStatus(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, status Status) error {
	query := `
		UPDATE sessions
		SET status = $2
		WHERE id = $1 AND status NOT IN ('completed', 'cancelled')
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
		return ErrNotTransitionable
	}

	return nil
}

func (r *repository) ListMachineConflicts(ctx context.Context, machineID int64, iv interval.Interval, excludeID *uuid.UUID) ([]Summary, error) {
	query := `
		SELECT id, machine_id, start_time, end_time, kind, status
		FROM sessions
		WHERE machine_id = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		  AND ($4::uuid IS NULL OR id <> $4)
		ORDER BY start_time ASC
	`

	var conflicts []Summary
	err := r.db.SelectContext(ctx, &conflicts, query, machineID, iv.Start, iv.End, excludeID)
	if err != nil {
		return nil, err
	}

	return conflicts, nil
}

func (r *repository) ListTrainerConflicts(ctx context.Context, trainerID int64, iv interval.Interval, excludeID *uuid.UUID) ([]Summary, error) {
	query := `
		SELECT id, machine_id, start_time, end_time, kind, status
		FROM sessions
		WHERE trainer_id = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		  AND ($4::uuid IS NULL OR id <> $4)
		ORDER BY start_time ASC
	`

	var conflicts []Summary
	err := r.db.SelectContext(ctx, &conflicts, query, trainerID, iv.Start, iv.End, excludeID)
	if err != nil {
		return nil, err
	}

	return conflicts, nil
}

func (r *repository) ListMemberConflicts(ctx context.Context, memberIDs []int64, iv interval.Interval, excludeID *uuid.UUID) ([]MemberConflict, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	// Only confirmed memberships block a member; cancelled and no_show
	// bookings free the slot.
	query, args, err := sqlx.In(`
		SELECT s.id, s.machine_id, s.start_time, s.end_time, s.kind, s.status,
		       sm.member_id, t.name AS trainer_name
		FROM session_members sm
		JOIN sessions s ON s.id = sm.session_id
		LEFT JOIN trainers t ON t.id = s.trainer_id
		WHERE sm.member_id IN (?)
		  AND sm.status = 'confirmed'
		  AND s.status <> 'cancelled'
		  AND s.start_time < ?
		  AND s.end_time > ?
		  AND (? OR s.id <> ?)
		ORDER BY s.start_time ASC
	`, memberIDs, iv.End, iv.Start, excludeID == nil, excludeVal(excludeID))
	if err != nil {
		return nil, err
	}

	var conflicts []MemberConflict
	err = r.db.SelectContext(ctx, &conflicts, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return conflicts, nil
}

func (r *repository) MembersWithWeeklyMemberSession(ctx context.Context, memberIDs []int64, week interval.Interval, excludeID *uuid.UUID) ([]int64, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT DISTINCT sm.member_id
		FROM session_members sm
		JOIN sessions s ON s.id = sm.session_id
		WHERE sm.member_id IN (?)
		  AND sm.status <> 'cancelled'
		  AND s.status <> 'cancelled'
		  AND s.kind = 'member'
		  AND s.start_time >= ?
		  AND s.start_time < ?
		  AND (? OR s.id <> ?)
		ORDER BY sm.member_id ASC
	`, memberIDs, week.Start, week.End, excludeID == nil, excludeVal(excludeID))
	if err != nil {
		return nil, err
	}

	var ids []int64
	err = r.db.SelectContext(ctx, &ids, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *repository) CountSessionsInWeek(ctx context.Context, week interval.Interval) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE status <> 'cancelled'
		  AND start_time >= $1
		  AND start_time < $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, week.Start, week.End)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) ListRange(ctx context.Context, from, to time.Time) ([]CalendarEntry, error) {
	query := `
		SELECT s.id, s.machine_id, s.trainer_id, s.start_time, s.end_time, s.status, s.kind,
		       s.location, s.max_participants, s.current_participants, s.notes, s.created_at,
		       m.number AS machine_number, m.name AS machine_name, t.name AS trainer_name
		FROM sessions s
		JOIN machines m ON m.id = s.machine_id
		LEFT JOIN trainers t ON t.id = s.trainer_id
		WHERE s.start_time < $2 AND s.end_time > $1
		ORDER BY s.start_time ASC
	`

	var entries []CalendarEntry
	err := r.db.SelectContext(ctx, &entries, query, from, to)
	if err != nil {
		return nil, err
	}

	if err := r.attachMembers(ctx, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *repository) GetCalendarEntry(ctx context.Context, id uuid.UUID) (*CalendarEntry, error) {
	query := `
		SELECT s.id, s.machine_id, s.trainer_id, s.start_time, s.end_time, s.status, s.kind,
		       s.location, s.max_participants, s.current_participants, s.notes, s.created_at,
		       m.number AS machine_number, m.name AS machine_name, t.name AS trainer_name
		FROM sessions s
		JOIN machines m ON m.id = s.machine_id
		LEFT JOIN trainers t ON t.id = s.trainer_id
		WHERE s.id = $1
	`

	var entry CalendarEntry
	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		return nil, err
	}

	entries := []CalendarEntry{entry}
	if err := r.attachMembers(ctx, entries); err != nil {
		return nil, err
	}

	return &entries[0], nil
}

func (r *repository) attachMembers(ctx context.Context, entries []CalendarEntry) error {
	if len(entries) == 0 {
		return nil
	}

	sessionIDs := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		sessionIDs = append(sessionIDs, e.ID)
	}

	query, args, err := sqlx.In(`
		SELECT sm.id AS membership_id, sm.session_id, sm.member_id, sm.status,
		       mb.name AS member_name
		FROM session_members sm
		JOIN members mb ON mb.id = sm.member_id
		WHERE sm.session_id IN (?)
		ORDER BY sm.booked_at ASC
	`, sessionIDs)
	if err != nil {
		return err
	}

	var members []CalendarMember
	if err := r.db.SelectContext(ctx, &members, r.db.Rebind(query), args...); err != nil {
		return err
	}

	bySession := make(map[uuid.UUID][]CalendarMember, len(entries))
	for _, m := range members {
		bySession[m.SessionID] = append(bySession[m.SessionID], m)
	}

	for i := range entries {
		entries[i].Members = bySession[entries[i].ID]
	}

	return nil
}

// excludeVal flattens the optional exclusion into a value sqlx.In can
// bind; the paired boolean disables the comparison when nil.
func excludeVal(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
