package booking

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iSamBa/gym-manager-sub000/internal/interval"
	"github.com/iSamBa/gym-manager-sub000/internal/session"
)

type MembershipStatus string

const (
	MembershipConfirmed  MembershipStatus = "confirmed"
	MembershipWaitlisted MembershipStatus = "waitlisted"
	MembershipCancelled  MembershipStatus = "cancelled"
	MembershipNoShow     MembershipStatus = "no_show"
	MembershipAttended   MembershipStatus = "attended"
)

func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipConfirmed, MembershipWaitlisted, MembershipCancelled, MembershipNoShow, MembershipAttended:
		return true
	}
	return false
}

// Membership links one member to one session. The (session, member)
// pair is unique; postgres enforces it.
type Membership struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	SessionID uuid.UUID        `db:"session_id" json:"session_id"`
	MemberID  int64            `db:"member_id" json:"member_id"`
	Status    MembershipStatus `db:"status" json:"status"`
	BookedAt  time.Time        `db:"booked_at" json:"booked_at"`
}

// ErrMalformed marks input-malformation failures: missing fields,
// non-positive intervals, unknown identifiers. They are rejected before
// business validation begins and map to a generic bad-request response,
// never to a validator code.
var ErrMalformed = errors.New("malformed booking request")

// CreateSessionRequest is the wire shape of a booking attempt. Location
// is deliberately not bind-required: an empty location is a business
// rule (LOCATION_REQUIRED), not a malformed request.
type CreateSessionRequest struct {
	MachineID       int64     `json:"machine_id" binding:"required"`
	TrainerID       *int64    `json:"trainer_id"`
	MemberIDs       []int64   `json:"member_ids" binding:"required,min=1"`
	Kind            string    `json:"kind" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	End             time.Time `json:"end" binding:"required"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"max_participants" binding:"required,min=1"`
	Notes           *string   `json:"notes"`
}

// Request is the normalized form the validator and coordinator work
// with: instants in the studio timezone, member ids deduplicated.
type Request struct {
	MachineID       int64
	TrainerID       *int64
	MemberIDs       []int64
	Kind            session.Kind
	Interval        interval.Interval
	Location        string
	MaxParticipants int
	Notes           *string
}

func (r *CreateSessionRequest) Normalize(loc *time.Location) (*Request, error) {
	kind := session.Kind(r.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown session kind %q", ErrMalformed, r.Kind)
	}

	iv, err := interval.New(r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[int64]struct{}, len(r.MemberIDs))
	memberIDs := make([]int64, 0, len(r.MemberIDs))
	for _, id := range r.MemberIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: invalid member id %d", ErrMalformed, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		memberIDs = append(memberIDs, id)
	}
	sort.Slice(memberIDs, func(i, j int) bool { return memberIDs[i] < memberIDs[j] })

	return &Request{
		MachineID:       r.MachineID,
		TrainerID:       r.TrainerID,
		MemberIDs:       memberIDs,
		Kind:            kind,
		Interval:        iv.In(loc),
		Location:        r.Location,
		MaxParticipants: r.MaxParticipants,
		Notes:           r.Notes,
	}, nil
}

// ValidateSessionRequest is the dry-run input: the create shape minus
// notes.
type ValidateSessionRequest struct {
	MachineID       int64     `json:"machine_id" binding:"required"`
	TrainerID       *int64    `json:"trainer_id"`
	MemberIDs       []int64   `json:"member_ids" binding:"required,min=1"`
	Kind            string    `json:"kind" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	End             time.Time `json:"end" binding:"required"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"max_participants" binding:"required,min=1"`
}

func (r *ValidateSessionRequest) asCreate() *CreateSessionRequest {
	return &CreateSessionRequest{
		MachineID:       r.MachineID,
		TrainerID:       r.TrainerID,
		MemberIDs:       r.MemberIDs,
		Kind:            r.Kind,
		Start:           r.Start,
		End:             r.End,
		Location:        r.Location,
		MaxParticipants: r.MaxParticipants,
	}
}

type CreateResult struct {
	SessionID uuid.UUID
	Violation *Violation
}

func (r *CreateResult) Accepted() bool {
	return r.Violation == nil
}

type ValidationResult struct {
	Valid     bool
	Violation *Violation
}

type UpdateMembershipStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
