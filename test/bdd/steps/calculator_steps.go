package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

type calculatorContext struct {
	registry *domain.Registry
	node     *production.Node
	template *production.ModuleTemplate
	settings production.ProductionSettings
	limits   production.EffectLimits
	params   production.RecipeParameters
}

func (cc *calculatorContext) reset() {
	cc.registry = nil
	cc.node = nil
	cc.template = nil
	cc.settings = production.DefaultProductionSettings()
	cc.limits = production.DefaultEffectLimits
	cc.params = production.RecipeParameters{}
}

// Given steps

func (cc *calculatorContext) theSampleGameData() error {
	registry, err := loadSampleRegistry()
	if err != nil {
		return err
	}
	cc.registry = registry
	return nil
}

func (cc *calculatorContext) aNodeCraftingIn(recipeName, machineName string) error {
	recipe, err := cc.registry.RecipeOrTechnology(recipeName)
	if err != nil {
		return err
	}
	machine, err := cc.registry.Crafter(machineName)
	if err != nil {
		return err
	}
	cc.node = &production.Node{Recipe: recipe, Machine: machine, BuildingCount: 1}
	return nil
}

func (cc *calculatorContext) aNodeCraftingWithoutMachine(recipeName string) error {
	recipe, err := cc.registry.RecipeOrTechnology(recipeName)
	if err != nil {
		return err
	}
	cc.node = &production.Node{Recipe: recipe}
	return nil
}

func (cc *calculatorContext) theNodeBurns(fuelName string) error {
	if cc.node == nil {
		return fmt.Errorf("no node defined")
	}
	fuel, err := cc.registry.Goods(fuelName)
	if err != nil {
		return err
	}
	cc.node.Fuel = fuel
	return nil
}

func (cc *calculatorContext) moduleTemplate() *production.ModuleTemplate {
	if cc.template == nil {
		cc.template = &production.ModuleTemplate{}
		cc.node.Modules = cc.template
	}
	return cc.template
}

func (cc *calculatorContext) theNodeHasModules(count int, moduleName string) error {
	return cc.theNodeHasQualityModules(count, "", moduleName)
}

func (cc *calculatorContext) theNodeHasQualityModules(count int, qualityName, moduleName string) error {
	if cc.node == nil {
		return fmt.Errorf("no node defined")
	}
	module, err := cc.registry.Module(moduleName)
	if err != nil {
		return err
	}
	quality, err := cc.registry.Quality(qualityName)
	if err != nil {
		return err
	}
	template := cc.moduleTemplate()
	template.Modules = append(template.Modules, production.ModuleSlot{Module: module, Quality: quality, FixedCount: count})
	return nil
}

func (cc *calculatorContext) theNodeIsServedByBeaconsHolding(beaconName string, count int, moduleName string) error {
	if cc.node == nil {
		return fmt.Errorf("no node defined")
	}
	beacon, err := cc.registry.Beacon(beaconName)
	if err != nil {
		return err
	}
	module, err := cc.registry.Module(moduleName)
	if err != nil {
		return err
	}
	template := cc.moduleTemplate()
	template.Beacon = beacon
	template.BeaconModules = append(template.BeaconModules, production.ModuleSlot{Module: module, FixedCount: count})
	return nil
}

func (cc *calculatorContext) technologyIsResearchedToLevel(technology string, level int) error {
	cc.settings.ProductivityTechnologyLevels[technology] = level
	return nil
}

func (cc *calculatorContext) miningProductivityIs(value float64) error {
	cc.settings.MiningProductivity = value
	return nil
}

func (cc *calculatorContext) theSpeedFloorIs(value float64) error {
	cc.limits.MinSpeed = value
	return nil
}

// When steps

func (cc *calculatorContext) iCalculateTheNodeParameters() error {
	if cc.node == nil {
		return fmt.Errorf("no node defined")
	}
	cc.params = production.NewCalculator(cc.limits).Calculate(cc.node, cc.settings.Snapshot())
	cc.node.ApplyParameters(cc.params)
	return nil
}

// Then steps

func (cc *calculatorContext) theRecipeTimeShouldBe(expected float64) error {
	if !approxEqual(expected, cc.params.RecipeTime()) {
		return fmt.Errorf("expected recipe time %f, got %f", expected, cc.params.RecipeTime())
	}
	return nil
}

func (cc *calculatorContext) theProductivityShouldBe(expected float64) error {
	if !approxEqual(expected, cc.params.Productivity()) {
		return fmt.Errorf("expected productivity %f, got %f", expected, cc.params.Productivity())
	}
	return nil
}

func (cc *calculatorContext) theFuelUsagePerBuildingShouldBe(expected float64) error {
	actual := cc.params.FuelUsagePerSecondPerBuilding()
	if !approxEqual(expected, actual) {
		return fmt.Errorf("expected fuel usage %f per second per building, got %f", expected, actual)
	}
	return nil
}

func (cc *calculatorContext) theWarningsShouldBe(expected string) error {
	if actual := cc.params.Warnings().String(); actual != expected {
		return fmt.Errorf("expected warnings '%s', got '%s'", expected, actual)
	}
	return nil
}

func (cc *calculatorContext) theNodeShouldHaveAConfigurationError() error {
	if !cc.params.Warnings().HasCategory(production.CategoryStaticError) {
		return fmt.Errorf("expected a configuration error, got '%s'", cc.params.Warnings())
	}
	return nil
}

func (cc *calculatorContext) theNodeShouldUseModulesInTheMachine(expected int) error {
	if actual := cc.node.UsedModules.InternalCount(); actual != expected {
		return fmt.Errorf("expected %d modules in the machine, got %d", expected, actual)
	}
	return nil
}

func (cc *calculatorContext) theNodeShouldUseBeacons(expected int) error {
	if actual := cc.node.UsedModules.BeaconCount; actual != expected {
		return fmt.Errorf("expected %d beacons, got %d", expected, actual)
	}
	return nil
}

func InitializeCalculatorScenario(ctx *godog.ScenarioContext) {
	cc := &calculatorContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the sample game data$`, cc.theSampleGameData)
	ctx.Step(`^a node crafting "([^"]*)" in "([^"]*)"$`, cc.aNodeCraftingIn)
	ctx.Step(`^a node crafting "([^"]*)" without a machine$`, cc.aNodeCraftingWithoutMachine)
	ctx.Step(`^the node burns "([^"]*)"$`, cc.theNodeBurns)
	ctx.Step(`^the node has (\d+) "([^"]*)" modules?$`, cc.theNodeHasModules)
	ctx.Step(`^the node has (\d+) "([^"]*)" quality "([^"]*)" modules?$`, cc.theNodeHasQualityModules)
	ctx.Step(`^the node is served by "([^"]*)" holding (\d+) "([^"]*)" modules?$`, cc.theNodeIsServedByBeaconsHolding)
	ctx.Step(`^technology "([^"]*)" is researched to level (\d+)$`, cc.technologyIsResearchedToLevel)
	ctx.Step(`^mining productivity is ([0-9.]+)$`, cc.miningProductivityIs)
	ctx.Step(`^the speed floor is ([0-9.]+)$`, cc.theSpeedFloorIs)

	// When steps
	ctx.Step(`^I calculate the node parameters$`, cc.iCalculateTheNodeParameters)

	// Then steps
	ctx.Step(`^the recipe time should be ([0-9.]+)$`, cc.theRecipeTimeShouldBe)
	ctx.Step(`^the productivity should be ([0-9.]+)$`, cc.theProductivityShouldBe)
	ctx.Step(`^the fuel usage per building should be ([0-9.]+)$`, cc.theFuelUsagePerBuildingShouldBe)
	ctx.Step(`^the warnings should be "([^"]*)"$`, cc.theWarningsShouldBe)
	ctx.Step(`^the node should have a configuration error$`, cc.theNodeShouldHaveAConfigurationError)
	ctx.Step(`^the node should use (\d+) modules? in the machine$`, cc.theNodeShouldUseModulesInTheMachine)
	ctx.Step(`^the node should use (\d+) beacons?$`, cc.theNodeShouldUseBeacons)
}
