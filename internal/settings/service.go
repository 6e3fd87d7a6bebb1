package settings

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const currentKey = "settings:current"

// Service caches the current settings row for a short TTL. Caps change
// rarely; weekly-quota usage itself is never cached and is always
// queried live by the validator.
type Service struct {
	repo  Repository
	cache *gocache.Cache
}

func NewService(repo Repository, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *Service) Current(ctx context.Context) (*StudioSettings, error) {
	if cached, found := s.cache.Get(currentKey); found {
		return cached.(*StudioSettings), nil
	}

	current, err := s.repo.Current(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(currentKey, current, gocache.DefaultExpiration)
	return current, nil
}

// Invalidate drops the cached row; used after external settings writes.
func (s *Service) Invalidate() {
	s.cache.Delete(currentKey)
}
