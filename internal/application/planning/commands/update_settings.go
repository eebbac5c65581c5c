package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shared"
)

// UpdateSettingsCommand replaces the stored production settings
type UpdateSettingsCommand struct {
	Settings production.ProductionSettings
}

type UpdateSettingsResponse struct {
	Settings production.ProductionSettings
}

// UpdateSettingsHandler handles the UpdateSettings command
type UpdateSettingsHandler struct {
	settingsRepo common.SettingsRepository
}

func NewUpdateSettingsHandler(settingsRepo common.SettingsRepository) *UpdateSettingsHandler {
	return &UpdateSettingsHandler{settingsRepo: settingsRepo}
}

// Handle executes the UpdateSettings command
func (h *UpdateSettingsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UpdateSettingsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateSettingsCommand")
	}

	if err := validateSettings(cmd.Settings); err != nil {
		return nil, err
	}

	settings := cmd.Settings.Snapshot()
	if err := h.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return &UpdateSettingsResponse{Settings: settings}, nil
}

func validateSettings(s production.ProductionSettings) error {
	if s.MiningProductivity < 0 {
		return shared.NewValidationError("mining_productivity", "must not be negative")
	}
	if s.ResearchProductivity < 0 {
		return shared.NewValidationError("research_productivity", "must not be negative")
	}
	if s.ReactorSizeX < 1 || s.ReactorSizeY < 1 {
		return shared.NewValidationError("reactor_size", "both dimensions must be at least 1")
	}
	for technology, level := range s.ProductivityTechnologyLevels {
		if level < 0 {
			return shared.NewValidationError("technology_levels", fmt.Sprintf("%s: level must not be negative", technology))
		}
	}
	return nil
}

// UpdatePreferencesCommand replaces the stored user preferences
type UpdatePreferencesCommand struct {
	Preferences common.Preferences
}

type UpdatePreferencesResponse struct {
	Preferences common.Preferences
}

// UpdatePreferencesHandler handles the UpdatePreferences command
type UpdatePreferencesHandler struct {
	preferencesRepo common.PreferencesRepository
}

func NewUpdatePreferencesHandler(preferencesRepo common.PreferencesRepository) *UpdatePreferencesHandler {
	return &UpdatePreferencesHandler{preferencesRepo: preferencesRepo}
}

// Handle executes the UpdatePreferences command
func (h *UpdatePreferencesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UpdatePreferencesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdatePreferencesCommand")
	}

	if err := h.preferencesRepo.Save(ctx, cmd.Preferences); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return &UpdatePreferencesResponse{Preferences: cmd.Preferences}, nil
}
