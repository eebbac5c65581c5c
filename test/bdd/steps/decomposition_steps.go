package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

type decompositionContext struct {
	registry *domain.Registry
	list     shopping.ShoppingList
	result   shopping.DecompositionResult
}

func (dc *decompositionContext) reset() {
	dc.registry = nil
	dc.list = shopping.ShoppingList{}
	dc.result = shopping.DecompositionResult{}
}

// Given steps

func (dc *decompositionContext) theTotalShoppingListOfTheSamplePlan() error {
	registry, err := loadSampleRegistry()
	if err != nil {
		return err
	}
	plan, _, err := loadSamplePlan(registry, production.DefaultProductionSettings())
	if err != nil {
		return err
	}
	dc.registry = registry
	dc.list = shopping.Aggregate(plan.Nodes, shopping.Options{Display: shopping.DisplayTotal})
	return nil
}

func (dc *decompositionContext) aShoppingListOf(table *godog.Table) error {
	registry, err := loadSampleRegistry()
	if err != nil {
		return err
	}
	dc.registry = registry

	amounts := make(map[domain.ObjectWithQuality]float64)
	for _, row := range table.Rows[1:] {
		kind := getCellValue(table, row, "kind")
		name := getCellValue(table, row, "name")
		count, err := parseCount(getCellValue(table, row, "count"))
		if err != nil {
			return err
		}
		obj, err := registry.Lookup(kind, name)
		if err != nil {
			return err
		}
		amounts[domain.With(obj, nil)] += count
	}
	dc.list = shopping.FromAmounts(amounts)
	return nil
}

// When steps

func (dc *decompositionContext) iDecomposeTheList() error {
	dc.result = shopping.NewDecomposer(shopping.DefaultMaxSteps).Decompose(dc.list)
	return nil
}

func (dc *decompositionContext) iDecomposeTheListWithABudgetOfSteps(steps int) error {
	dc.result = shopping.NewDecomposer(steps).Decompose(dc.list)
	return nil
}

// Then steps

func (dc *decompositionContext) theDecomposedListShouldContain(table *godog.Table) error {
	expected, err := tableAmounts(table, "count")
	if err != nil {
		return err
	}
	actual := make(map[string]float64, len(dc.result.List.Entries))
	for _, entry := range dc.result.List.Entries {
		actual[entry.Object.String()] += entry.Count
	}
	return compareAmounts(expected, actual)
}

func (dc *decompositionContext) theDecompositionShouldTakeSteps(expected int) error {
	if dc.result.Steps != expected {
		return fmt.Errorf("expected %d steps, got %d", expected, dc.result.Steps)
	}
	return nil
}

func (dc *decompositionContext) theDecompositionShouldBeComplete() error {
	if dc.result.Truncated {
		return fmt.Errorf("expected a complete decomposition, but it stopped after %d steps", dc.result.Steps)
	}
	return nil
}

func (dc *decompositionContext) theDecompositionShouldBeTruncated() error {
	if !dc.result.Truncated {
		return fmt.Errorf("expected the decomposition to stop at its step budget")
	}
	return nil
}

func (dc *decompositionContext) theDecomposedListShouldCost(cost float64) error {
	if !approxEqual(cost, dc.result.List.Cost) {
		return fmt.Errorf("expected cost %v, got %v", cost, dc.result.List.Cost)
	}
	return nil
}

func InitializeDecompositionScenario(ctx *godog.ScenarioContext) {
	dc := &decompositionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		dc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the total shopping list of the sample plan$`, dc.theTotalShoppingListOfTheSamplePlan)
	ctx.Step(`^a shopping list of:$`, dc.aShoppingListOf)

	// When steps
	ctx.Step(`^I decompose the list$`, dc.iDecomposeTheList)
	ctx.Step(`^I decompose the list with a budget of (\d+) steps?$`, dc.iDecomposeTheListWithABudgetOfSteps)

	// Then steps
	ctx.Step(`^the decomposed list should contain:$`, dc.theDecomposedListShouldContain)
	ctx.Step(`^the decomposition should take (\d+) steps$`, dc.theDecompositionShouldTakeSteps)
	ctx.Step(`^the decomposition should be complete$`, dc.theDecompositionShouldBeComplete)
	ctx.Step(`^the decomposition should be truncated$`, dc.theDecompositionShouldBeTruncated)
	ctx.Step(`^the decomposed list should cost ([0-9.]+)$`, dc.theDecomposedListShouldCost)
}
