package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSettingsRepo struct{ mock.Mock }

func (m *MockSettingsRepo) Current(ctx context.Context) (*StudioSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StudioSettings), args.Error(1)
}

func TestCurrentCachesRepositoryResult(t *testing.T) {
	repo := new(MockSettingsRepo)
	svc := NewService(repo, time.Minute)

	repo.On("Current", mock.Anything).Return(&StudioSettings{
		ID:                     1,
		Version:                3,
		WeeklySessionCap:       120,
		MemberWeeklySessionCap: 1,
		MinSessionMinutes:      15,
	}, nil).Once()

	first, err := svc.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 120, first.WeeklySessionCap)

	// Second call must hit the cache, not the repository.
	second, err := svc.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	repo.AssertExpectations(t)
}

func TestInvalidateForcesReload(t *testing.T) {
	repo := new(MockSettingsRepo)
	svc := NewService(repo, time.Minute)

	repo.On("Current", mock.Anything).Return(&StudioSettings{Version: 3, WeeklySessionCap: 120}, nil).Once()
	repo.On("Current", mock.Anything).Return(&StudioSettings{Version: 4, WeeklySessionCap: 150}, nil).Once()

	first, err := svc.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, first.Version)

	svc.Invalidate()

	second, err := svc.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 4, second.Version)

	repo.AssertExpectations(t)
}

func TestCurrentPropagatesRepositoryError(t *testing.T) {
	repo := new(MockSettingsRepo)
	svc := NewService(repo, time.Minute)

	repo.On("Current", mock.Anything).Return(nil, assert.AnError)

	_, err := svc.Current(context.Background())
	assert.Error(t, err)
}
