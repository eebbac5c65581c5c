package planning

import (
	"fmt"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/application/planning/commands"
	"github.com/andrescamacho/factory-planner/internal/application/planning/queries"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shared"
)

// Dependencies are the collaborators the planning handlers need
type Dependencies struct {
	Calculator            *production.Calculator
	Settings              common.SettingsRepository
	Preferences           common.PreferencesRepository
	ShoppingLists         common.ShoppingListRepository
	Registry              common.RegistryProvider
	Clock                 shared.Clock
	Workers               int
	MaxDecompositionSteps int
}

// RegisterHandlers registers every planning command and query on m
func RegisterHandlers(m common.Mediator, deps Dependencies) error {
	registrations := []func() error{
		func() error {
			return common.RegisterHandler[*queries.CalculateParametersQuery](m,
				queries.NewCalculateParametersHandler(deps.Calculator, deps.Settings, deps.Workers))
		},
		func() error {
			return common.RegisterHandler[*queries.BuildShoppingListQuery](m,
				queries.NewBuildShoppingListHandler(deps.Preferences))
		},
		func() error {
			return common.RegisterHandler[*queries.ListMissingItemsQuery](m, queries.NewListMissingItemsHandler())
		},
		func() error {
			return common.RegisterHandler[*queries.GetShoppingListQuery](m,
				queries.NewGetShoppingListHandler(deps.ShoppingLists, deps.Registry))
		},
		func() error {
			return common.RegisterHandler[*queries.ListShoppingListsQuery](m,
				queries.NewListShoppingListsHandler(deps.ShoppingLists))
		},
		func() error {
			return common.RegisterHandler[*queries.GetSettingsQuery](m, queries.NewGetSettingsHandler(deps.Settings))
		},
		func() error {
			return common.RegisterHandler[*queries.GetPreferencesQuery](m, queries.NewGetPreferencesHandler(deps.Preferences))
		},
		func() error {
			return common.RegisterHandler[*commands.DecomposeShoppingListCommand](m,
				commands.NewDecomposeShoppingListHandler(deps.MaxDecompositionSteps))
		},
		func() error {
			return common.RegisterHandler[*commands.SaveShoppingListCommand](m,
				commands.NewSaveShoppingListHandler(deps.ShoppingLists, deps.Clock))
		},
		func() error {
			return common.RegisterHandler[*commands.UpdateSettingsCommand](m, commands.NewUpdateSettingsHandler(deps.Settings))
		},
		func() error {
			return common.RegisterHandler[*commands.UpdatePreferencesCommand](m,
				commands.NewUpdatePreferencesHandler(deps.Preferences))
		},
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register planning handler: %w", err)
		}
	}
	return nil
}
