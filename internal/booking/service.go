package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/iSamBa/gym-manager-sub000/internal/logger"
	"github.com/iSamBa/gym-manager-sub000/internal/machine"
	"github.com/iSamBa/gym-manager-sub000/internal/member"
	"github.com/iSamBa/gym-manager-sub000/internal/metrics"
	"github.com/iSamBa/gym-manager-sub000/internal/notify"
	"github.com/iSamBa/gym-manager-sub000/internal/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrNotCancellable is returned when the session is already in a
	// terminal state.
	ErrNotCancellable = errors.New("session cannot be cancelled")
)

// SessionStore is the slice of session.Repository the coordinator
// writes through.
type SessionStore interface {
	Insert(ctx context.Context, ext sqlx.ExtContext, s *session.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*session.Session, error)
	UpdateStatus(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, status session.Status) error
}

type MachineDirectory interface {
	GetByID(ctx context.Context, id int64) (*machine.Machine, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type MemberDirectory interface {
	GetByIDs(ctx context.Context, ids []int64) ([]member.Member, error)
}

// Notifier enqueues notifications; delivery is asynchronous and must
// never block or fail a booking.
type Notifier interface {
	Enqueue(ctx context.Context, job notify.Job) error
}

// Service is the booking transaction coordinator. A booking attempt
// moves through normalize -> validate -> persist; persistence is one
// transaction inserting the session row, one membership row per member
// and the occupancy recount. Any failure rolls the whole unit back:
// partial bookings corrupt the exclusivity invariant and the counters,
// so the contract is all-or-nothing.
type Service interface {
	Create(ctx context.Context, req *CreateSessionRequest) (*CreateResult, error)
	Validate(ctx context.Context, req *ValidateSessionRequest) (*ValidationResult, error)
	CancelSession(ctx context.Context, sessionID uuid.UUID) error
	UpdateMembershipStatus(ctx context.Context, membershipID uuid.UUID, status MembershipStatus) error
}

type service struct {
	db          *sqlx.DB
	sessions    SessionStore
	memberships Repository
	occupancy   *Maintainer
	validator   *Validator
	machines    MachineDirectory
	members     MemberDirectory
	notifier    Notifier
	loc         *time.Location
	timeout     time.Duration
}

func NewService(
	db *sqlx.DB,
	sessions SessionStore,
	memberships Repository,
	occupancy *Maintainer,
	validator *Validator,
	machines MachineDirectory,
	members MemberDirectory,
	notifier Notifier,
	loc *time.Location,
	timeout time.Duration,
) Service {
	return &service{
		db:          db,
		sessions:    sessions,
		memberships: memberships,
		occupancy:   occupancy,
		validator:   validator,
		machines:    machines,
		members:     members,
		notifier:    notifier,
		loc:         loc,
		timeout:     timeout,
	}
}

func (s *service) Create(ctx context.Context, req *CreateSessionRequest) (*CreateResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	normalized, err := req.Normalize(s.loc)
	if err != nil {
		return nil, err
	}

	members, err := s.preflight(ctx, normalized)
	if err != nil {
		return nil, err
	}

	violation, err := s.validator.Validate(ctx, normalized, nil)
	if err != nil {
		return nil, err
	}
	if violation != nil {
		metrics.RecordBookingRejection(violation.Code)
		return &CreateResult{Violation: violation}, nil
	}

	sess := &session.Session{
		ID:              uuid.New(),
		MachineID:       normalized.MachineID,
		TrainerID:       normalized.TrainerID,
		StartTime:       normalized.Interval.Start,
		EndTime:         normalized.Interval.End,
		Status:          session.StatusScheduled,
		Kind:            normalized.Kind,
		Location:        normalized.Location,
		MaxParticipants: normalized.MaxParticipants,
		Notes:           normalized.Notes,
	}

	if err := s.persist(ctx, sess, normalized.MemberIDs); err != nil {
		if isPersistenceConflict(err) {
			// A concurrent booking won the slot between validation and
			// commit. Same outcome as a validation conflict: reject,
			// nothing committed, caller may re-validate and resubmit.
			metrics.RecordPersistenceConflict()
			metrics.RecordBookingRejection(CodePersistenceConflict)
			return &CreateResult{Violation: &Violation{
				Code:    CodePersistenceConflict,
				Message: "the slot was taken by a concurrent booking, please re-validate and retry",
			}}, nil
		}
		return nil, err
	}

	metrics.RecordSessionBooked(string(sess.Kind))
	s.notifyMembers(members, sess, notify.TypeBookingConfirmation)

	return &CreateResult{SessionID: sess.ID}, nil
}

func (s *service) persist(ctx context.Context, sess *session.Session, memberIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.sessions.Insert(ctx, tx, sess); err != nil {
		return err
	}

	for _, memberID := range memberIDs {
		m := &Membership{
			ID:        uuid.New(),
			SessionID: sess.ID,
			MemberID:  memberID,
			Status:    MembershipConfirmed,
		}
		if err := s.memberships.InsertMembership(ctx, tx, m); err != nil {
			return err
		}
	}

	count, err := s.occupancy.Refresh(ctx, tx, sess.ID)
	if err != nil {
		return err
	}
	sess.CurrentParticipants = count

	return tx.Commit()
}

func (s *service) Validate(ctx context.Context, req *ValidateSessionRequest) (*ValidationResult, error) {
	normalized, err := req.asCreate().Normalize(s.loc)
	if err != nil {
		return nil, err
	}

	if _, err := s.preflight(ctx, normalized); err != nil {
		return nil, err
	}

	violation, err := s.validator.Validate(ctx, normalized, nil)
	if err != nil {
		return nil, err
	}

	return &ValidationResult{Valid: violation == nil, Violation: violation}, nil
}

func (s *service) CancelSession(ctx context.Context, sessionID uuid.UUID) error {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}

	memberships, err := s.memberships.ListBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.sessions.UpdateStatus(ctx, tx, sessionID, session.StatusCancelled); err != nil {
		if errors.Is(err, session.ErrNotTransitionable) {
			return ErrNotCancellable
		}
		return err
	}

	if err := s.memberships.CancelBySession(ctx, tx, sessionID); err != nil {
		return err
	}

	if _, err := s.occupancy.Refresh(ctx, tx, sessionID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	metrics.RecordSessionCancellation()

	confirmed := make([]int64, 0, len(memberships))
	for _, m := range memberships {
		if m.Status == MembershipConfirmed {
			confirmed = append(confirmed, m.MemberID)
		}
	}
	if len(confirmed) > 0 {
		if members, err := s.members.GetByIDs(ctx, confirmed); err == nil {
			s.notifyMembers(members, sess, notify.TypeCancellation)
		}
	}

	return nil
}

func (s *service) UpdateMembershipStatus(ctx context.Context, membershipID uuid.UUID, status MembershipStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown membership status %q", ErrMalformed, status)
	}

	membership, err := s.memberships.GetMembership(ctx, membershipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMembershipNotFound
		}
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.memberships.UpdateMembershipStatus(ctx, tx, membershipID, status); err != nil {
		return err
	}

	// Derived counter follows every membership mutation.
	if _, err := s.occupancy.Refresh(ctx, tx, membership.SessionID); err != nil {
		return err
	}

	return tx.Commit()
}

// preflight rejects unknown identifiers before business validation
// begins; these are malformed requests, not rule violations.
func (s *service) preflight(ctx context.Context, req *Request) ([]member.Member, error) {
	exists, err := s.machines.Exists(ctx, req.MachineID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: unknown machine %d", ErrMalformed, req.MachineID)
	}

	members, err := s.members.GetByIDs(ctx, req.MemberIDs)
	if err != nil {
		return nil, err
	}
	if len(members) != len(req.MemberIDs) {
		return nil, fmt.Errorf("%w: one or more member ids are unknown", ErrMalformed)
	}

	return members, nil
}

func (s *service) notifyMembers(members []member.Member, sess *session.Session, notificationType string) {
	if s.notifier == nil {
		return
	}

	machineName := ""
	if m, err := s.machines.GetByID(context.Background(), sess.MachineID); err == nil {
		machineName = m.Name
	}

	for _, mb := range members {
		job := notify.Job{
			Type:         notificationType,
			To:           mb.Email,
			Name:         mb.Name,
			SessionStart: sess.StartTime,
			Location:     sess.Location,
			MachineName:  machineName,
		}
		if err := s.notifier.Enqueue(context.Background(), job); err != nil {
			logger.Errorf("Failed to queue %s notification for member %d: %v", notificationType, mb.ID, err)
		}
	}
}

// isPersistenceConflict detects a commit that lost a race: the machine
// exclusion constraint (23P01), the unique (session, member) pair
// (23505) or a serialization failure (40001).
func isPersistenceConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23P01", "23505", "40001":
			return true
		}
	}
	return false
}
