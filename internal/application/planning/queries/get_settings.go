package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

// GetSettingsQuery reads the stored production settings
type GetSettingsQuery struct{}

type GetSettingsResponse struct {
	Settings production.ProductionSettings
}

type GetSettingsHandler struct {
	settingsRepo common.SettingsRepository
}

func NewGetSettingsHandler(settingsRepo common.SettingsRepository) *GetSettingsHandler {
	return &GetSettingsHandler{settingsRepo: settingsRepo}
}

// Handle executes the GetSettings query
func (h *GetSettingsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetSettingsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSettingsQuery")
	}

	settings, err := h.settingsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &GetSettingsResponse{Settings: settings.Snapshot()}, nil
}

// GetPreferencesQuery reads the stored user preferences
type GetPreferencesQuery struct{}

type GetPreferencesResponse struct {
	Preferences common.Preferences
}

type GetPreferencesHandler struct {
	preferencesRepo common.PreferencesRepository
}

func NewGetPreferencesHandler(preferencesRepo common.PreferencesRepository) *GetPreferencesHandler {
	return &GetPreferencesHandler{preferencesRepo: preferencesRepo}
}

// Handle executes the GetPreferences query
func (h *GetPreferencesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetPreferencesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPreferencesQuery")
	}

	prefs, err := h.preferencesRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return &GetPreferencesResponse{Preferences: prefs}, nil
}
