package service

import (
	"context"

	"saaskit/internal/model"
	"saaskit/internal/preferences"
	"saaskit/internal/repository"
)

// PreferencesService loads and saves visitor preferences.
type PreferencesService interface {
	Load(ctx context.Context, authID, cookieValue string) (*preferences.Store, error)
	Save(ctx context.Context, authID string, store *preferences.Store) error
}

type preferencesService struct {
	repo repository.PreferencesRepository
}

var _ preferences.Loader = (*preferencesService)(nil)

// NewPreferencesService builds a PreferencesService. A nil repository keeps
// preferences in the cookie only.
func NewPreferencesService(repo repository.PreferencesRepository) PreferencesService {
	return &preferencesService{repo: repo}
}

// Load prefers the cookie, then the signed-in user's stored copy, then defaults.
// The returned Store is never nil.
func (s *preferencesService) Load(ctx context.Context, authID, cookieValue string) (*preferences.Store, error) {
	if cookieValue != "" {
		if p, ok := preferences.Decode(cookieValue); ok {
			return preferences.Restore(p), nil
		}
	}
	if authID == "" || s.repo == nil {
		return preferences.New(), nil
	}

	stored, err := s.repo.FindByAuthID(ctx, authID)
	if err != nil {
		return preferences.New(), err
	}
	if stored == nil {
		return preferences.New(), nil
	}
	return preferences.Restore(stored.ToPreferences()), nil
}

// Save writes the server-side copy for signed-in users. Anonymous visitors
// only keep the cookie.
func (s *preferencesService) Save(ctx context.Context, authID string, store *preferences.Store) error {
	if authID == "" || s.repo == nil {
		return nil
	}
	p := store.Preferences()
	return s.repo.Upsert(ctx, &model.UserPreferences{
		AuthID:           authID,
		Theme:            string(p.Theme),
		Locale:           p.Locale,
		SidebarCollapsed: p.SidebarCollapsed,
	})
}
