package session

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Kind string

const (
	KindMember        Kind = "member"
	KindTrial         Kind = "trial"
	KindContractual   Kind = "contractual"
	KindMultiSite     Kind = "multi_site"
	KindCollaboration Kind = "collaboration"
	KindMakeup        Kind = "makeup"
	KindNonBookable   Kind = "non_bookable"
)

func (k Kind) Valid() bool {
	switch k {
	case KindMember, KindTrial, KindContractual, KindMultiSite, KindCollaboration, KindMakeup, KindNonBookable:
		return true
	}
	return false
}

// CountsTowardWeeklyQuota reports whether the kind is subject to the
// one-member-kind-session-per-week rule. All other kinds bypass it.
func (k Kind) CountsTowardWeeklyQuota() bool {
	return k == KindMember
}

// Session is a scheduled reservation of one machine for a half-open
// interval [StartTime, EndTime). Non-cancelled sessions on the same
// machine never overlap; postgres enforces this at commit time.
type Session struct {
	ID              uuid.UUID `db:"id" json:"id"`
	MachineID       int64     `db:"machine_id" json:"machine_id"`
	TrainerID       *int64    `db:"trainer_id" json:"trainer_id,omitempty"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
	EndTime         time.Time `db:"end_time" json:"end_time"`
	Status          Status    `db:"status" json:"status"`
	Kind            Kind      `db:"kind" json:"kind"`
	Location        string    `db:"location" json:"location"`
	MaxParticipants int       `db:"max_participants" json:"max_participants"`
	// CurrentParticipants is derived state, recomputed from confirmed
	// memberships inside every membership-mutating transaction. Never
	// written directly by callers.
	CurrentParticipants int       `db:"current_participants" json:"current_participants"`
	Notes               *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// Summary is the conflict-reporting shape returned by availability
// checks.
type Summary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	MachineID int64     `db:"machine_id" json:"machine_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Kind      Kind      `db:"kind" json:"kind"`
	Status    Status    `db:"status" json:"status"`
}

// MemberConflict is a Summary enriched with the member it blocks and
// the conflicting session's trainer name, so callers can render a
// human-readable explanation.
type MemberConflict struct {
	Summary
	MemberID    int64   `db:"member_id" json:"member_id"`
	TrainerName *string `db:"trainer_name" json:"trainer_name,omitempty"`
}

type AvailabilityResult struct {
	Available bool      `json:"available"`
	Conflicts []Summary `json:"conflicts"`
}

type MemberAvailability struct {
	Available bool             `json:"available"`
	Conflicts []MemberConflict `json:"conflicts"`
}

// CalendarEntry is the read-surface shape: a session enriched with
// machine, trainer and member fields sufficient to render a calendar
// without re-implementing the overlap algorithm.
type CalendarEntry struct {
	Session
	MachineNumber int             `db:"machine_number" json:"machine_number"`
	MachineName   string          `db:"machine_name" json:"machine_name"`
	TrainerName   *string         `db:"trainer_name" json:"trainer_name,omitempty"`
	Members       []CalendarMember `json:"members"`
}

type CalendarMember struct {
	MembershipID uuid.UUID `db:"membership_id" json:"membership_id"`
	SessionID    uuid.UUID `db:"session_id" json:"-"`
	MemberID     int64     `db:"member_id" json:"member_id"`
	MemberName   string    `db:"member_name" json:"member_name"`
	Status       string    `db:"status" json:"status"`
}
