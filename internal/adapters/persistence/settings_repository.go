package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

// GormSettingsRepository implements SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load returns the stored settings, or the defaults when the row does not exist
func (r *GormSettingsRepository) Load(ctx context.Context) (production.ProductionSettings, error) {
	var model SettingsModel
	result := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return production.DefaultProductionSettings(), nil
		}
		return production.ProductionSettings{}, fmt.Errorf("failed to load settings: %w", result.Error)
	}

	return r.modelToSettings(&model)
}

// Save upserts the settings row
func (r *GormSettingsRepository) Save(ctx context.Context, settings production.ProductionSettings) error {
	model, err := r.settingsToModel(settings)
	if err != nil {
		return fmt.Errorf("failed to convert settings to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (r *GormSettingsRepository) modelToSettings(model *SettingsModel) (production.ProductionSettings, error) {
	levels := map[string]int{}
	if model.TechnologyLevels != "" {
		if err := json.Unmarshal([]byte(model.TechnologyLevels), &levels); err != nil {
			return production.ProductionSettings{}, fmt.Errorf("invalid technology levels in database: %w", err)
		}
	}

	return production.ProductionSettings{
		MiningProductivity:           model.MiningProductivity,
		ResearchProductivity:         model.ResearchProductivity,
		ProductivityTechnologyLevels: levels,
		ReactorSizeX:                 model.ReactorSizeX,
		ReactorSizeY:                 model.ReactorSizeY,
	}, nil
}

func (r *GormSettingsRepository) settingsToModel(settings production.ProductionSettings) (*SettingsModel, error) {
	levels := settings.ProductivityTechnologyLevels
	if levels == nil {
		levels = map[string]int{}
	}
	bytes, err := json.Marshal(levels)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal technology levels: %w", err)
	}

	return &SettingsModel{
		ID:                   settingsRowID,
		MiningProductivity:   settings.MiningProductivity,
		ResearchProductivity: settings.ResearchProductivity,
		TechnologyLevels:     string(bytes),
		ReactorSizeX:         settings.ReactorSizeX,
		ReactorSizeY:         settings.ReactorSizeY,
	}, nil
}
