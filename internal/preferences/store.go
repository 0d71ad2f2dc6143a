// Package preferences holds the per-visitor preference state (theme, locale,
// sidebar) and the user snapshot, and its cookie encoding.
package preferences

import (
	apperrors "saaskit/internal/errors"
	"saaskit/internal/i18n"
	"saaskit/internal/model"
)

// Store is the preference state for a single request. It is not safe for
// concurrent use; each request owns its own Store.
type Store struct {
	prefs    model.Preferences
	user     *model.User
	restored bool
	dirty    bool
}

// New returns a Store holding the default preferences and no user.
func New() *Store {
	return &Store{prefs: model.DefaultPreferences()}
}

// Restore returns a Store seeded from previously persisted preferences.
// Fields outside their allowed values fall back to the defaults.
func Restore(p model.Preferences) *Store {
	return &Store{prefs: sanitize(p), restored: true}
}

func sanitize(p model.Preferences) model.Preferences {
	def := model.DefaultPreferences()
	if !p.Theme.Valid() {
		p.Theme = def.Theme
	}
	if !i18n.IsValid(p.Locale) {
		p.Locale = def.Locale
	}
	return p
}

// Preferences returns the persisted subset of the state.
func (s *Store) Preferences() model.Preferences {
	return s.prefs
}

// Theme returns the current theme.
func (s *Store) Theme() model.Theme { return s.prefs.Theme }

// Locale returns the current locale.
func (s *Store) Locale() string { return s.prefs.Locale }

// SidebarCollapsed reports whether the dashboard sidebar is collapsed.
func (s *Store) SidebarCollapsed() bool { return s.prefs.SidebarCollapsed }

// User returns the mirrored user snapshot, nil when signed out.
func (s *Store) User() *model.User {
	return s.user
}

// Restored reports whether the state was loaded from a persisted copy
// rather than initialised from defaults.
func (s *Store) Restored() bool {
	return s.restored
}

// Dirty reports whether the persisted subset changed since the Store was created.
func (s *Store) Dirty() bool {
	return s.dirty
}

func (s *Store) update(p model.Preferences) {
	if p != s.prefs {
		s.prefs = p
		s.dirty = true
	}
}

// SetTheme sets the colour scheme.
func (s *Store) SetTheme(theme model.Theme) error {
	if !theme.Valid() {
		return apperrors.ErrInvalidTheme
	}
	p := s.prefs
	p.Theme = theme
	s.update(p)
	return nil
}

// CycleTheme advances light -> dark -> system -> light and returns the new theme.
func (s *Store) CycleTheme() model.Theme {
	next := s.prefs.Theme.Next()
	_ = s.SetTheme(next)
	return next
}

// SetLocale sets the UI locale.
func (s *Store) SetLocale(locale string) error {
	if !i18n.IsValid(locale) {
		return apperrors.ErrInvalidLocale
	}
	p := s.prefs
	p.Locale = locale
	s.update(p)
	return nil
}

func (s *Store) SetSidebarCollapsed(collapsed bool) {
	p := s.prefs
	p.SidebarCollapsed = collapsed
	s.update(p)
}

func (s *Store) ToggleSidebar() {
	s.SetSidebarCollapsed(!s.prefs.SidebarCollapsed)
}

// SetUser mirrors the signed-in user. The snapshot is never persisted.
func (s *Store) SetUser(u *model.User) {
	s.user = u
}

func (s *Store) ClearUser() {
	s.user = nil
}

// Reset restores the default preferences. The user snapshot is kept.
func (s *Store) Reset() {
	s.update(model.DefaultPreferences())
}
