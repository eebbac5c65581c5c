package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/factory-planner/internal/adapters/gamedata"
	"github.com/andrescamacho/factory-planner/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/application/planning"
	"github.com/andrescamacho/factory-planner/internal/application/planning/commands"
	"github.com/andrescamacho/factory-planner/internal/application/planning/queries"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shared"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
	"github.com/andrescamacho/factory-planner/test/helpers"
)

// settingsContext drives the planning handlers against the shared database
type settingsContext struct {
	ctx      context.Context
	mediator common.Mediator
	plan     *gamedata.Plan
	settings production.ProductionSettings
	params   []production.RecipeParameters
	list     shopping.ShoppingList
	saved    *shopping.Snapshot
	restored shopping.ShoppingList
	listed   []*shopping.Snapshot
	err      error
}

func (sc *settingsContext) reset() error {
	*sc = settingsContext{ctx: context.Background()}

	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	registry, err := loadSampleRegistry()
	if err != nil {
		return err
	}
	plan, err := gamedata.LoadPlan(strings.NewReader(helpers.SamplePlan), registry)
	if err != nil {
		return err
	}
	sc.plan = plan

	db := helpers.SharedTestDB
	sc.mediator = common.NewMediator()
	return planning.RegisterHandlers(sc.mediator, planning.Dependencies{
		Calculator:            production.NewCalculator(production.DefaultEffectLimits),
		Settings:              persistence.NewGormSettingsRepository(db),
		Preferences:           persistence.NewGormPreferencesRepository(db),
		ShoppingLists:         persistence.NewGormShoppingListRepository(db),
		Registry:              helpers.NewStaticRegistryProvider(registry),
		Clock:                 shared.NewFixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
		Workers:               2,
		MaxDecompositionSteps: shopping.DefaultMaxSteps,
	})
}

// Given steps

func (sc *settingsContext) storedSettingsWithLevel(technology string, level int) error {
	settings := production.DefaultProductionSettings()
	settings.ProductivityTechnologyLevels[technology] = level
	_, err := sc.mediator.Send(sc.ctx, &commands.UpdateSettingsCommand{Settings: settings})
	return err
}

func (sc *settingsContext) storedShoppingPreferences(display string, assumeAdequate string) error {
	state, err := shopping.ParseDisplayState(display)
	if err != nil {
		return err
	}
	prefs := common.Preferences{Shopping: shopping.Options{Display: state, AssumeAdequate: assumeAdequate == "true"}}
	_, err = sc.mediator.Send(sc.ctx, &commands.UpdatePreferencesCommand{Preferences: prefs})
	return err
}

// When steps

func (sc *settingsContext) iLoadTheSettings() error {
	response, err := sc.mediator.Send(sc.ctx, &queries.GetSettingsQuery{})
	if err != nil {
		return err
	}
	sc.settings = response.(*queries.GetSettingsResponse).Settings
	return nil
}

func (sc *settingsContext) iUpdateTheReactorGridTo(x, y float64) error {
	settings := production.DefaultProductionSettings()
	settings.ReactorSizeX = x
	settings.ReactorSizeY = y
	_, sc.err = sc.mediator.Send(sc.ctx, &commands.UpdateSettingsCommand{Settings: settings})
	return nil
}

func (sc *settingsContext) iCalculateThePlanWithStoredSettings() error {
	response, err := sc.mediator.Send(sc.ctx, &queries.CalculateParametersQuery{Nodes: sc.plan.Nodes})
	if err != nil {
		return err
	}
	sc.params = response.(*queries.CalculateParametersResponse).Parameters
	return nil
}

func (sc *settingsContext) iBuildTheShoppingListWithStoredPreferences() error {
	if err := sc.iCalculateThePlanWithStoredSettings(); err != nil {
		return err
	}
	response, err := sc.mediator.Send(sc.ctx, &queries.BuildShoppingListQuery{Nodes: sc.plan.Nodes})
	if err != nil {
		return err
	}
	sc.list = response.(*queries.BuildShoppingListResponse).List
	return nil
}

func (sc *settingsContext) iSaveTheShoppingListAs(name string) error {
	if sc.list.IsEmpty() {
		return fmt.Errorf("no shopping list built")
	}
	response, err := sc.mediator.Send(sc.ctx, &commands.SaveShoppingListCommand{Name: name, List: sc.list})
	if err != nil {
		return err
	}
	sc.saved = response.(*commands.SaveShoppingListResponse).Snapshot
	return nil
}

func (sc *settingsContext) iReopenTheSavedShoppingList() error {
	if sc.saved == nil {
		return fmt.Errorf("no shopping list saved")
	}
	response, err := sc.mediator.Send(sc.ctx, &queries.GetShoppingListQuery{ID: sc.saved.ID})
	if err != nil {
		return err
	}
	sc.restored = response.(*queries.GetShoppingListResponse).List
	return nil
}

func (sc *settingsContext) iListTheSavedShoppingLists() error {
	response, err := sc.mediator.Send(sc.ctx, &queries.ListShoppingListsQuery{})
	if err != nil {
		return err
	}
	sc.listed = response.(*queries.ListShoppingListsResponse).Snapshots
	return nil
}

func (sc *settingsContext) iOpenTheShoppingList(id string) error {
	_, sc.err = sc.mediator.Send(sc.ctx, &queries.GetShoppingListQuery{ID: id})
	return nil
}

// Then steps

func (sc *settingsContext) theReactorGridShouldBe(x, y float64) error {
	if sc.settings.ReactorSizeX != x || sc.settings.ReactorSizeY != y {
		return fmt.Errorf("expected reactor grid %vx%v, got %vx%v", x, y, sc.settings.ReactorSizeX, sc.settings.ReactorSizeY)
	}
	return nil
}

func (sc *settingsContext) theMiningProductivityShouldBe(expected float64) error {
	if !approxEqual(expected, sc.settings.MiningProductivity) {
		return fmt.Errorf("expected mining productivity %v, got %v", expected, sc.settings.MiningProductivity)
	}
	return nil
}

func (sc *settingsContext) theNodeProductivityShouldBe(recipe string, expected float64) error {
	for i, node := range sc.plan.Nodes {
		if node.Recipe.Name() != recipe {
			continue
		}
		if actual := sc.params[i].Productivity(); !approxEqual(expected, actual) {
			return fmt.Errorf("expected %s productivity %v, got %v", recipe, expected, actual)
		}
		return nil
	}
	return fmt.Errorf("no node crafts %s", recipe)
}

func (sc *settingsContext) theUpdateShouldBeRejectedFor(field string) error {
	var validationErr *shared.ValidationError
	if !errors.As(sc.err, &validationErr) {
		return fmt.Errorf("expected a validation error, got %v", sc.err)
	}
	if validationErr.Field != field {
		return fmt.Errorf("expected validation error for %s, got %s", field, validationErr.Field)
	}
	return nil
}

func (sc *settingsContext) theStoredShoppingListShouldContain(table *godog.Table) error {
	return sc.compareList(sc.list, table)
}

func (sc *settingsContext) theReopenedListShouldContain(table *godog.Table) error {
	return sc.compareList(sc.restored, table)
}

func (sc *settingsContext) compareList(list shopping.ShoppingList, table *godog.Table) error {
	expected, err := tableAmounts(table, "count")
	if err != nil {
		return err
	}
	actual := make(map[string]float64, len(list.Entries))
	for _, entry := range list.Entries {
		actual[entry.Object.String()] += entry.Count
	}
	return compareAmounts(expected, actual)
}

func (sc *settingsContext) thereShouldBeSavedShoppingListNamed(count int, name string) error {
	if len(sc.listed) != count {
		return fmt.Errorf("expected %d saved lists, got %d", count, len(sc.listed))
	}
	for _, snapshot := range sc.listed {
		if snapshot.Name == name {
			return nil
		}
	}
	return fmt.Errorf("no saved list named %s", name)
}

func (sc *settingsContext) theListShouldNotBeFound() error {
	var notFound *shared.NotFoundError
	if !errors.As(sc.err, &notFound) {
		return fmt.Errorf("expected a not found error, got %v", sc.err)
	}
	return nil
}

func InitializeSettingsScenario(ctx *godog.ScenarioContext) {
	sc := &settingsContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, sc.reset()
	})

	// Given steps
	ctx.Step(`^stored settings with "([^"]*)" at level (\d+)$`, sc.storedSettingsWithLevel)
	ctx.Step(`^stored shopping preferences showing "([^"]*)" with assume adequate (true|false)$`, sc.storedShoppingPreferences)

	// When steps
	ctx.Step(`^I load the settings$`, sc.iLoadTheSettings)
	ctx.Step(`^I update the reactor grid to ([0-9.]+) by ([0-9.]+)$`, sc.iUpdateTheReactorGridTo)
	ctx.Step(`^I calculate the plan with the stored settings$`, sc.iCalculateThePlanWithStoredSettings)
	ctx.Step(`^I build the shopping list with the stored preferences$`, sc.iBuildTheShoppingListWithStoredPreferences)
	ctx.Step(`^I save the shopping list as "([^"]*)"$`, sc.iSaveTheShoppingListAs)
	ctx.Step(`^I reopen the saved shopping list$`, sc.iReopenTheSavedShoppingList)
	ctx.Step(`^I list the saved shopping lists$`, sc.iListTheSavedShoppingLists)
	ctx.Step(`^I open the shopping list "([^"]*)"$`, sc.iOpenTheShoppingList)

	// Then steps
	ctx.Step(`^the reactor grid should be ([0-9.]+) by ([0-9.]+)$`, sc.theReactorGridShouldBe)
	ctx.Step(`^the mining productivity should be ([0-9.]+)$`, sc.theMiningProductivityShouldBe)
	ctx.Step(`^the "([^"]*)" node productivity should be ([0-9.]+)$`, sc.theNodeProductivityShouldBe)
	ctx.Step(`^the update should be rejected for "([^"]*)"$`, sc.theUpdateShouldBeRejectedFor)
	ctx.Step(`^the built shopping list should contain:$`, sc.theStoredShoppingListShouldContain)
	ctx.Step(`^the reopened list should contain:$`, sc.theReopenedListShouldContain)
	ctx.Step(`^there should be (\d+) saved shopping lists? named "([^"]*)"$`, sc.thereShouldBeSavedShoppingListNamed)
	ctx.Step(`^the list should not be found$`, sc.theListShouldNotBeFound)
}
