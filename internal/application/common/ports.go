package common

import (
	"context"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// Preferences are the persisted user choices of the shopping list view
type Preferences struct {
	Shopping shopping.Options
}

// SettingsRepository persists the global production settings
type SettingsRepository interface {
	// Load returns the stored settings, or the defaults when none are stored
	Load(ctx context.Context) (production.ProductionSettings, error)
	Save(ctx context.Context, settings production.ProductionSettings) error
}

// PreferencesRepository persists user preferences
type PreferencesRepository interface {
	// Load returns the stored preferences, or the zero value when none are stored
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, prefs Preferences) error
}

// ShoppingListRepository persists shopping list snapshots
type ShoppingListRepository interface {
	Save(ctx context.Context, snapshot *shopping.Snapshot) error
	FindByID(ctx context.Context, id string) (*shopping.Snapshot, error)
	List(ctx context.Context) ([]*shopping.Snapshot, error)
}

// RegistryProvider supplies the loaded static game data
type RegistryProvider interface {
	Registry(ctx context.Context) (*gamedata.Registry, error)
}
