package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/iSamBa/gym-manager-sub000/internal/interval"
	"github.com/iSamBa/gym-manager-sub000/internal/machine"
	"github.com/iSamBa/gym-manager-sub000/internal/member"
	"github.com/iSamBa/gym-manager-sub000/internal/notify"
	"github.com/iSamBa/gym-manager-sub000/internal/session"
	"github.com/iSamBa/gym-manager-sub000/internal/settings"
	"github.com/iSamBa/gym-manager-sub000/internal/trainer"
)

type MockAvailability struct{ mock.Mock }

func (m *MockAvailability) CheckTrainerAvailability(ctx context.Context, trainerID int64, iv interval.Interval, excludeID *uuid.UUID) (*session.AvailabilityResult, error) {
	args := m.Called(ctx, trainerID, iv, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.AvailabilityResult), args.Error(1)
}

func (m *MockAvailability) CheckMemberAvailability(ctx context.Context, memberIDs []int64, iv interval.Interval, excludeID *uuid.UUID) (map[int64]*session.MemberAvailability, error) {
	args := m.Called(ctx, memberIDs, iv, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*session.MemberAvailability), args.Error(1)
}

type MockSchedule struct{ mock.Mock }

func (m *MockSchedule) MembersWithWeeklyMemberSession(ctx context.Context, memberIDs []int64, week interval.Interval, excludeID *uuid.UUID) ([]int64, error) {
	args := m.Called(ctx, memberIDs, week, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockSchedule) CountSessionsInWeek(ctx context.Context, week interval.Interval) (int, error) {
	args := m.Called(ctx, week)
	return args.Int(0), args.Error(1)
}

type MockTrainers struct{ mock.Mock }

func (m *MockTrainers) GetByID(ctx context.Context, id int64) (*trainer.Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trainer.Trainer), args.Error(1)
}

type MockSettings struct{ mock.Mock }

func (m *MockSettings) Current(ctx context.Context) (*settings.StudioSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.StudioSettings), args.Error(1)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Insert(ctx context.Context, ext sqlx.ExtContext, s *session.Session) error {
	return m.Called(ctx, ext, s).Error(0)
}

func (m *MockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionStore) UpdateStatus(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, status session.Status) error {
	return m.Called(ctx, ext, id, status).Error(0)
}

type MockMembershipRepo struct{ mock.Mock }

func (m *MockMembershipRepo) InsertMembership(ctx context.Context, ext sqlx.ExtContext, mb *Membership) error {
	return m.Called(ctx, ext, mb).Error(0)
}

func (m *MockMembershipRepo) GetMembership(ctx context.Context, id uuid.UUID) (*Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Membership), args.Error(1)
}

func (m *MockMembershipRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Membership, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Membership), args.Error(1)
}

func (m *MockMembershipRepo) UpdateMembershipStatus(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, status MembershipStatus) error {
	return m.Called(ctx, ext, id, status).Error(0)
}

func (m *MockMembershipRepo) CancelBySession(ctx context.Context, ext sqlx.ExtContext, sessionID uuid.UUID) error {
	return m.Called(ctx, ext, sessionID).Error(0)
}

func (m *MockMembershipRepo) RecountParticipants(ctx context.Context, ext sqlx.ExtContext, sessionID uuid.UUID) (int, error) {
	args := m.Called(ctx, ext, sessionID)
	return args.Int(0), args.Error(1)
}

type MockMachines struct{ mock.Mock }

func (m *MockMachines) GetByID(ctx context.Context, id int64) (*machine.Machine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*machine.Machine), args.Error(1)
}

func (m *MockMachines) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockMembers struct{ mock.Mock }

func (m *MockMembers) GetByIDs(ctx context.Context, ids []int64) ([]member.Member, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]member.Member), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Enqueue(ctx context.Context, job notify.Job) error {
	return m.Called(ctx, job).Error(0)
}
