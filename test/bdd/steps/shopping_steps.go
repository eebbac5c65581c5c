package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/factory-planner/internal/adapters/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

type shoppingContext struct {
	plan     *gamedata.Plan
	params   []production.RecipeParameters
	list     shopping.ShoppingList
	exported []shopping.ExportedGoods
	missing  []shopping.MissingItem
	err      error
}

func (sc *shoppingContext) reset() {
	sc.plan = nil
	sc.params = nil
	sc.list = shopping.ShoppingList{}
	sc.exported = nil
	sc.missing = nil
	sc.err = nil
}

// Given steps

func (sc *shoppingContext) theCalculatedSamplePlan() error {
	registry, err := loadSampleRegistry()
	if err != nil {
		return err
	}
	plan, params, err := loadSamplePlan(registry, production.DefaultProductionSettings())
	if err != nil {
		return err
	}
	sc.plan = plan
	sc.params = params
	return nil
}

func (sc *shoppingContext) noNodeReportsBuiltBuildings() error {
	for _, node := range sc.plan.Nodes {
		node.BuiltBuildings = nil
	}
	return nil
}

// When steps

func (sc *shoppingContext) iBuildTheShoppingListShowing(display string) error {
	return sc.buildShoppingList(display, false)
}

func (sc *shoppingContext) iBuildTheShoppingListShowingAssumingAdequate(display string) error {
	return sc.buildShoppingList(display, true)
}

func (sc *shoppingContext) buildShoppingList(display string, assumeAdequate bool) error {
	state, err := shopping.ParseDisplayState(display)
	if err != nil {
		sc.err = err
		return nil
	}
	sc.list = shopping.Aggregate(sc.plan.Nodes, shopping.Options{Display: state, AssumeAdequate: assumeAdequate})
	return nil
}

func (sc *shoppingContext) iExportTheShoppingList() error {
	sc.exported = shopping.ExportGoods(sc.list)
	return nil
}

func (sc *shoppingContext) iListTheMissingItems() error {
	balances := shopping.NodeBalances(sc.plan.Nodes, sc.params, sc.plan.Demands)
	sc.missing = shopping.MissingItems(balances)
	return nil
}

// Then steps

func (sc *shoppingContext) theShoppingListShouldContain(table *godog.Table) error {
	expected, err := tableAmounts(table, "count")
	if err != nil {
		return err
	}
	actual := make(map[string]float64, len(sc.list.Entries))
	for _, entry := range sc.list.Entries {
		actual[entry.Object.String()] += entry.Count
	}
	return compareAmounts(expected, actual)
}

func (sc *shoppingContext) theShoppingListShouldHaveEntries(count int) error {
	if len(sc.list.Entries) != count {
		return fmt.Errorf("expected %d entries, got %d", count, len(sc.list.Entries))
	}
	return nil
}

func (sc *shoppingContext) theShoppingListShouldTotal(buildings, modules, cost float64) error {
	if !approxEqual(buildings, sc.list.Buildings) {
		return fmt.Errorf("expected %v buildings, got %v", buildings, sc.list.Buildings)
	}
	if !approxEqual(modules, sc.list.Modules) {
		return fmt.Errorf("expected %v modules, got %v", modules, sc.list.Modules)
	}
	if !approxEqual(cost, sc.list.Cost) {
		return fmt.Errorf("expected cost %v, got %v", cost, sc.list.Cost)
	}
	return nil
}

func (sc *shoppingContext) theFirstEntryShouldBe(name string) error {
	if len(sc.list.Entries) == 0 {
		return fmt.Errorf("shopping list is empty")
	}
	if actual := sc.list.Entries[0].Object.String(); actual != name {
		return fmt.Errorf("expected first entry %s, got %s", name, actual)
	}
	return nil
}

func (sc *shoppingContext) theExportShouldContain(table *godog.Table) error {
	expected, err := tableAmounts(table, "count")
	if err != nil {
		return err
	}
	actual := make(map[string]float64, len(sc.exported))
	for _, line := range sc.exported {
		actual[line.Goods.Name()] += float64(line.Count)
	}
	return compareAmounts(expected, actual)
}

func (sc *shoppingContext) theMissingItemsShouldBe(table *godog.Table) error {
	expected, err := tableAmounts(table, "deficit")
	if err != nil {
		return err
	}
	actual := make(map[string]float64, len(sc.missing))
	for _, item := range sc.missing {
		actual[item.Goods] = item.Deficit
	}
	return compareAmounts(expected, actual)
}

func (sc *shoppingContext) theMostMissingItemShouldBe(name string) error {
	if len(sc.missing) == 0 {
		return fmt.Errorf("nothing is missing")
	}
	if sc.missing[0].Goods != name {
		return fmt.Errorf("expected %s first, got %s", name, sc.missing[0].Goods)
	}
	return nil
}

func (sc *shoppingContext) buildingTheListShouldFailWith(message string) error {
	if sc.err == nil {
		return fmt.Errorf("expected an error containing '%s', got none", message)
	}
	if !strings.Contains(sc.err.Error(), message) {
		return fmt.Errorf("expected error containing '%s', got '%s'", message, sc.err.Error())
	}
	return nil
}

func InitializeShoppingScenario(ctx *godog.ScenarioContext) {
	sc := &shoppingContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the calculated sample plan$`, sc.theCalculatedSamplePlan)
	ctx.Step(`^no node reports built buildings$`, sc.noNodeReportsBuiltBuildings)

	// When steps
	ctx.Step(`^I build the shopping list showing "([^"]*)"$`, sc.iBuildTheShoppingListShowing)
	ctx.Step(`^I build the shopping list showing "([^"]*)" assuming adequate$`, sc.iBuildTheShoppingListShowingAssumingAdequate)
	ctx.Step(`^I export the shopping list$`, sc.iExportTheShoppingList)
	ctx.Step(`^I list the missing items$`, sc.iListTheMissingItems)

	// Then steps
	ctx.Step(`^the shopping list should contain:$`, sc.theShoppingListShouldContain)
	ctx.Step(`^the shopping list should have (\d+) entries$`, sc.theShoppingListShouldHaveEntries)
	ctx.Step(`^the shopping list should total ([0-9.]+) buildings, ([0-9.]+) modules and cost ([0-9.]+)$`, sc.theShoppingListShouldTotal)
	ctx.Step(`^the first entry should be "([^"]*)"$`, sc.theFirstEntryShouldBe)
	ctx.Step(`^the export should contain:$`, sc.theExportShouldContain)
	ctx.Step(`^the missing items should be:$`, sc.theMissingItemsShouldBe)
	ctx.Step(`^the most missing item should be "([^"]*)"$`, sc.theMostMissingItemShouldBe)
	ctx.Step(`^building the list should fail with "([^"]*)"$`, sc.buildingTheListShouldFailWith)
}
