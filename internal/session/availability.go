package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iSamBa/gym-manager-sub000/internal/interval"
)

// Service is the availability checker and read surface. Checks never
// mutate state and never fail for "unavailable": unavailability is a
// normal result, not an error. Only infrastructure faults surface as
// errors.
type Service interface {
	CheckMachineAvailability(ctx context.Context, machineID int64, iv interval.Interval, excludeID *uuid.UUID) (*AvailabilityResult, error)
	CheckTrainerAvailability(ctx context.Context, trainerID int64, iv interval.Interval, excludeID *uuid.UUID) (*AvailabilityResult, error)
	CheckMemberAvailability(ctx context.Context, memberIDs []int64, iv interval.Interval, excludeID *uuid.UUID) (map[int64]*MemberAvailability, error)

	ListCalendar(ctx context.Context, from, to time.Time) ([]CalendarEntry, error)
	GetCalendarEntry(ctx context.Context, id uuid.UUID) (*CalendarEntry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CheckMachineAvailability(ctx context.Context, machineID int64, iv interval.Interval, excludeID *uuid.UUID) (*AvailabilityResult, error) {
	conflicts, err := s.repo.ListMachineConflicts(ctx, machineID, iv, excludeID)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *service) CheckTrainerAvailability(ctx context.Context, trainerID int64, iv interval.Interval, excludeID *uuid.UUID) (*AvailabilityResult, error) {
	conflicts, err := s.repo.ListTrainerConflicts(ctx, trainerID, iv, excludeID)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *service) CheckMemberAvailability(ctx context.Context, memberIDs []int64, iv interval.Interval, excludeID *uuid.UUID) (map[int64]*MemberAvailability, error) {
	conflicts, err := s.repo.ListMemberConflicts(ctx, memberIDs, iv, excludeID)
	if err != nil {
		return nil, err
	}

	results := make(map[int64]*MemberAvailability, len(memberIDs))
	for _, id := range memberIDs {
		results[id] = &MemberAvailability{Available: true}
	}

	for _, c := range conflicts {
		res, ok := results[c.MemberID]
		if !ok {
			continue
		}
		res.Available = false
		res.Conflicts = append(res.Conflicts, c)
	}

	return results, nil
}

func (s *service) ListCalendar(ctx context.Context, from, to time.Time) ([]CalendarEntry, error) {
	return s.repo.ListRange(ctx, from, to)
}

func (s *service) GetCalendarEntry(ctx context.Context, id uuid.UUID) (*CalendarEntry, error) {
	return s.repo.GetCalendarEntry(ctx, id)
}
