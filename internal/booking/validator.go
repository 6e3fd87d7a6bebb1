package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iSamBa/gym-manager-sub000/internal/interval"
	"github.com/iSamBa/gym-manager-sub000/internal/session"
	"github.com/iSamBa/gym-manager-sub000/internal/settings"
	"github.com/iSamBa/gym-manager-sub000/internal/trainer"
)

// Validation codes, in pipeline order. PERSISTENCE_CONFLICT is not part
// of the pipeline; the coordinator attaches it when a commit loses a
// race.
const (
	CodePastBooking            = "PAST_BOOKING"
	CodeInvalidDuration        = "INVALID_DURATION"
	CodeLocationRequired       = "LOCATION_REQUIRED"
	CodeExceedsTrainerCapacity = "EXCEEDS_TRAINER_CAPACITY"
	CodeExceedsSessionCapacity = "EXCEEDS_SESSION_CAPACITY"
	CodeTrainerNotAvailable    = "TRAINER_NOT_AVAILABLE"
	CodeMembersNotAvailable    = "MEMBERS_NOT_AVAILABLE"
	CodeWeeklyLimitExceeded    = "WEEKLY_LIMIT_EXCEEDED"
	CodeStudioCapacityExceeded = "STUDIO_CAPACITY_EXCEEDED"
	CodePersistenceConflict    = "PERSISTENCE_CONFLICT"
)

// Violation is a business-rule failure. It is a value, not an error:
// an unbookable request is a normal outcome.
type Violation struct {
	Code    string                 `json:"error_code"`
	Message string                 `json:"error_message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// AvailabilityChecker is the slice of session.Service the validator
// needs.
type AvailabilityChecker interface {
	CheckTrainerAvailability(ctx context.Context, trainerID int64, iv interval.Interval, excludeID *uuid.UUID) (*session.AvailabilityResult, error)
	CheckMemberAvailability(ctx context.Context, memberIDs []int64, iv interval.Interval, excludeID *uuid.UUID) (map[int64]*session.MemberAvailability, error)
}

// ScheduleStore provides the live weekly-quota lookups.
type ScheduleStore interface {
	MembersWithWeeklyMemberSession(ctx context.Context, memberIDs []int64, week interval.Interval, excludeID *uuid.UUID) ([]int64, error)
	CountSessionsInWeek(ctx context.Context, week interval.Interval) (int, error)
}

type TrainerDirectory interface {
	GetByID(ctx context.Context, id int64) (*trainer.Trainer, error)
}

type SettingsProvider interface {
	Current(ctx context.Context) (*settings.StudioSettings, error)
}

// Validator runs the ordered business checks against a normalized
// request. The pipeline short-circuits at the first failure: once an
// earlier invariant fails, later checks (and their queries) are
// meaningless.
type Validator struct {
	availability AvailabilityChecker
	schedule     ScheduleStore
	trainers     TrainerDirectory
	settings     SettingsProvider
	loc          *time.Location
	now          func() time.Time
}

func NewValidator(
	availability AvailabilityChecker,
	schedule ScheduleStore,
	trainers TrainerDirectory,
	settingsProvider SettingsProvider,
	loc *time.Location,
) *Validator {
	return &Validator{
		availability: availability,
		schedule:     schedule,
		trainers:     trainers,
		settings:     settingsProvider,
		loc:          loc,
		now:          time.Now,
	}
}

type checkFunc func(ctx context.Context, req *Request, excludeID *uuid.UUID) (*Violation, error)

// Validate returns the first violation, or nil when the request passes
// every check. A non-nil error means a check could not run at all
// (infrastructure fault), never "not bookable".
func (v *Validator) Validate(ctx context.Context, req *Request, excludeID *uuid.UUID) (*Violation, error) {
	checks := []checkFunc{
		v.checkPastBooking,
		v.checkDuration,
		v.checkLocation,
		v.checkTrainerCapacity,
		v.checkSessionCapacity,
		v.checkTrainerAvailability,
		v.checkMembersAvailability,
		v.checkWeeklyLimit,
		v.checkStudioCapacity,
	}

	for _, check := range checks {
		violation, err := check(ctx, req, excludeID)
		if err != nil {
			return nil, err
		}
		if violation != nil {
			return violation, nil
		}
	}

	return nil, nil
}

func (v *Validator) checkPastBooking(_ context.Context, req *Request, _ *uuid.UUID) (*Violation, error) {
	now := v.now()
	if !req.Interval.Start.After(now) {
		return &Violation{
			Code:    CodePastBooking,
			Message: "session must start in the future",
			Details: map[string]interface{}{
				"start": req.Interval.Start,
				"now":   now,
			},
		}, nil
	}
	return nil, nil
}

func (v *Validator) checkDuration(ctx context.Context, req *Request, _ *uuid.UUID) (*Violation, error) {
	cfg, err := v.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	min := time.Duration(cfg.MinSessionMinutes) * time.Minute
	if req.Interval.Duration() < min {
		return &Violation{
			Code:    CodeInvalidDuration,
			Message: fmt.Sprintf("session must last at least %d minutes", cfg.MinSessionMinutes),
			Details: map[string]interface{}{
				"min_minutes":    cfg.MinSessionMinutes,
				"actual_minutes": int(req.Interval.Duration().Minutes()),
			},
		}, nil
	}
	return nil, nil
}

func (v *Validator) checkLocation(_ context.Context, req *Request, _ *uuid.UUID) (*Violation, error) {
	if isBlank(req.Location) {
		return &Violation{
			Code:    CodeLocationRequired,
			Message: "location must not be empty",
		}, nil
	}
	return nil, nil
}

func (v *Validator) checkTrainerCapacity(ctx context.Context, req *Request, _ *uuid.UUID) (*Violation, error) {
	if req.TrainerID == nil {
		return nil, nil
	}

	tr, err := v.trainers.GetByID(ctx, *req.TrainerID)
	if err != nil {
		// An unknown trainer is a malformed request, same class as an
		// unknown machine or member, never a rule violation or a fault.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: unknown trainer %d", ErrMalformed, *req.TrainerID)
		}
		return nil, err
	}

	if len(req.MemberIDs) > tr.MaxClientsPerSession {
		return &Violation{
			Code:    CodeExceedsTrainerCapacity,
			Message: fmt.Sprintf("trainer %s takes at most %d clients per session", tr.Name, tr.MaxClientsPerSession),
			Details: map[string]interface{}{
				"trainer_id":   tr.ID,
				"max_clients":  tr.MaxClientsPerSession,
				"member_count": len(req.MemberIDs),
			},
		}, nil
	}
	return nil, nil
}

func (v *Validator) checkSessionCapacity(_ context.Context, req *Request, _ *uuid.UUID) (*Violation, error) {
	if len(req.MemberIDs) > req.MaxParticipants {
		return &Violation{
			Code:    CodeExceedsSessionCapacity,
			Message: fmt.Sprintf("session takes at most %d participants", req.MaxParticipants),
			Details: map[string]interface{}{
				"max_participants": req.MaxParticipants,
				"member_count":     len(req.MemberIDs),
			},
		}, nil
	}
	return nil, nil
}

func (v *Validator) checkTrainerAvailability(ctx context.Context, req *Request, excludeID *uuid.UUID) (*Violation, error) {
	if req.TrainerID == nil {
		return nil, nil
	}

	res, err := v.availability.CheckTrainerAvailability(ctx, *req.TrainerID, req.Interval, excludeID)
	if err != nil {
		return nil, err
	}

	if !res.Available {
		return &Violation{
			Code:    CodeTrainerNotAvailable,
			Message: "trainer already has a session in this interval",
			Details: map[string]interface{}{
				"trainer_id": *req.TrainerID,
				"conflicts":  res.Conflicts,
			},
		}, nil
	}
	return nil, nil
}

func (v *Validator) checkMembersAvailability(ctx context.Context, req *Request, excludeID *uuid.UUID) (*Violation, error) {
	results, err := v.availability.CheckMemberAvailability(ctx, req.MemberIDs, req.Interval, excludeID)
	if err != nil {
		return nil, err
	}

	conflicts := make(map[string]interface{})
	for _, id := range req.MemberIDs {
		if res, ok := results[id]; ok && !res.Available {
			conflicts[fmt.Sprintf("%d", id)] = res.Conflicts
		}
	}

	if len(conflicts) > 0 {
		return &Violation{
			Code:    CodeMembersNotAvailable,
			Message: "one or more members already have a session in this interval",
			Details: map[string]interface{}{
				"members": conflicts,
			},
		}, nil
	}
	return nil, nil
}

func (v *Validator) checkWeeklyLimit(ctx context.Context, req *Request, excludeID *uuid.UUID) (*Violation, error) {
	if !req.Kind.CountsTowardWeeklyQuota() {
		return nil, nil
	}

	week := interval.WeekOf(req.Interval.Start, v.loc)
	blocked, err := v.schedule.MembersWithWeeklyMemberSession(ctx, req.MemberIDs, week, excludeID)
	if err != nil {
		return nil, err
	}

	if len(blocked) > 0 {
		return &Violation{
			Code:    CodeWeeklyLimitExceeded,
			Message: "member already has a member session this calendar week",
			Details: map[string]interface{}{
				"member_ids": blocked,
				"week_start": week.Start,
				"week_end":   week.End,
			},
		}, nil
	}
	return nil, nil
}

func (v *Validator) checkStudioCapacity(ctx context.Context, req *Request, _ *uuid.UUID) (*Violation, error) {
	cfg, err := v.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	week := interval.WeekOf(req.Interval.Start, v.loc)
	booked, err := v.schedule.CountSessionsInWeek(ctx, week)
	if err != nil {
		return nil, err
	}

	if booked >= cfg.WeeklySessionCap {
		return &Violation{
			Code:    CodeStudioCapacityExceeded,
			Message: "the studio-wide weekly session cap is reached",
			Details: map[string]interface{}{
				"booked":     booked,
				"weekly_cap": cfg.WeeklySessionCap,
				"week_start": week.Start,
			},
		}, nil
	}
	return nil, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
