package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"saaskit/internal/model"
)

// PreferencesRepository persists the server-side copy of a user's preferences.
type PreferencesRepository interface {
	FindByAuthID(ctx context.Context, authID string) (*model.UserPreferences, error)
	Upsert(ctx context.Context, prefs *model.UserPreferences) error
	Delete(ctx context.Context, authID string) error
}

type preferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository builds a GORM-backed repository.
func NewPreferencesRepository(db *gorm.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

// FindByAuthID returns nil without error when the user has no stored preferences.
func (r *preferencesRepository) FindByAuthID(ctx context.Context, authID string) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	err := r.db.WithContext(ctx).Where("auth_id = ?", authID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, prefs *model.UserPreferences) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "auth_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "locale", "sidebar_collapsed", "updated_at"}),
	}).Create(prefs).Error
}

func (r *preferencesRepository) Delete(ctx context.Context, authID string) error {
	return r.db.WithContext(ctx).Where("auth_id = ?", authID).Delete(&model.UserPreferences{}).Error
}
