package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

// MockSettingsRepository is a test double for SettingsRepository
type MockSettingsRepository struct {
	mu       sync.RWMutex
	settings *production.ProductionSettings
	loads    int

	// Error injection
	LoadErr error
	SaveErr error
}

// NewMockSettingsRepository creates an empty mock settings repository
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

// Load returns the stored settings, or the defaults when none are stored
func (m *MockSettingsRepository) Load(ctx context.Context) (production.ProductionSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.LoadErr != nil {
		return production.ProductionSettings{}, m.LoadErr
	}
	if m.settings == nil {
		return production.DefaultProductionSettings(), nil
	}
	return m.settings.Snapshot(), nil
}

// Save stores settings
func (m *MockSettingsRepository) Save(ctx context.Context, settings production.ProductionSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	stored := settings.Snapshot()
	m.settings = &stored
	return nil
}

// Loads returns how many times Load was called
func (m *MockSettingsRepository) Loads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads
}

// Stored returns the saved settings, if any
func (m *MockSettingsRepository) Stored() (production.ProductionSettings, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return production.ProductionSettings{}, false
	}
	return m.settings.Snapshot(), true
}

// MockPreferencesRepository is a test double for PreferencesRepository
type MockPreferencesRepository struct {
	mu    sync.RWMutex
	prefs common.Preferences
}

// NewMockPreferencesRepository creates a mock holding prefs
func NewMockPreferencesRepository(prefs common.Preferences) *MockPreferencesRepository {
	return &MockPreferencesRepository{prefs: prefs}
}

// Load returns the stored preferences
func (m *MockPreferencesRepository) Load(ctx context.Context) (common.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs, nil
}

// Save stores preferences
func (m *MockPreferencesRepository) Save(ctx context.Context, prefs common.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = prefs
	return nil
}
