package service

import (
	"context"
	"time"

	"saaskit/internal/cache"
	"saaskit/internal/cms"
	"saaskit/internal/model"
)

const defaultProfileCacheTTL = 5 * time.Minute

// ProfileService exposes the CMS profile of the signed-in user.
type ProfileService interface {
	GetProfile(ctx context.Context, clerkID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, clerkID string, update model.ProfileUpdate) (*model.Profile, error)
}

type profileService struct {
	cms   cms.Client
	cache *cache.Client
	ttl   time.Duration
}

// NewProfileService builds a ProfileService with CMS client and cache.
func NewProfileService(client cms.Client, cache *cache.Client, ttl time.Duration) ProfileService {
	if ttl <= 0 {
		ttl = defaultProfileCacheTTL
	}
	return &profileService{cms: client, cache: cache, ttl: ttl}
}

func (s *profileService) cacheKey(clerkID string) string {
	return "profile:" + clerkID
}

func (s *profileService) GetProfile(ctx context.Context, clerkID string) (*model.Profile, error) {
	var cached model.Profile
	if s.cache.GetJSON(ctx, s.cacheKey(clerkID), &cached) {
		return &cached, nil
	}

	profile, err := s.cms.FetchProfile(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, s.cacheKey(clerkID), profile, s.ttl)
	return profile, nil
}

// UpdateProfile resolves the CMS record for clerkID and applies update to it.
// An empty update returns the current profile unchanged.
func (s *profileService) UpdateProfile(ctx context.Context, clerkID string, update model.ProfileUpdate) (*model.Profile, error) {
	current, err := s.GetProfile(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return current, nil
	}

	_ = s.cache.Delete(ctx, s.cacheKey(clerkID))
	updated, err := s.cms.UpdateProfile(ctx, current.ID, update)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, s.cacheKey(clerkID), updated, s.ttl)
	return updated, nil
}
