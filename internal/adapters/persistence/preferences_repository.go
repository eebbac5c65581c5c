package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// GormPreferencesRepository implements PreferencesRepository using GORM
type GormPreferencesRepository struct {
	db *gorm.DB
}

// NewGormPreferencesRepository creates a new GORM preferences repository
func NewGormPreferencesRepository(db *gorm.DB) *GormPreferencesRepository {
	return &GormPreferencesRepository{db: db}
}

// Load returns the stored preferences, or the zero value when none are stored
func (r *GormPreferencesRepository) Load(ctx context.Context) (common.Preferences, error) {
	var model PreferencesModel
	result := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return common.Preferences{}, nil
		}
		return common.Preferences{}, fmt.Errorf("failed to load preferences: %w", result.Error)
	}

	return common.Preferences{Shopping: shopping.UnpackOptions(model.Shopping)}, nil
}

// Save upserts the preferences row
func (r *GormPreferencesRepository) Save(ctx context.Context, prefs common.Preferences) error {
	model := &PreferencesModel{ID: settingsRowID, Shopping: prefs.Shopping.Pack()}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
