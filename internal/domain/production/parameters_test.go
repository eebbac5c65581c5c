package production_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

func newCoal() *gamedata.Item {
	coal := gamedata.NewItem("coal")
	coal.SetFuelValue(4)
	return coal
}

func newBurnerMachine(power float64) *gamedata.Crafter {
	machine := gamedata.NewCrafter("stone-furnace")
	machine.CraftingSpeed = 2
	machine.Power = power
	machine.Energy = gamedata.NewEnergy(gamedata.EnergyGeneric)
	return machine
}

func calculate(node *production.Node) production.RecipeParameters {
	calc := production.NewCalculator(production.DefaultEffectLimits)
	return calc.Calculate(node, production.DefaultProductionSettings())
}

func TestCalculate_NoMachine(t *testing.T) {
	// Arrange
	recipe := gamedata.NewRecipe("iron-plate", 3.2)
	node := &production.Node{Recipe: recipe, Fuel: newCoal()}

	// Act
	params := calculate(node)

	// Assert
	assert.True(t, params.Warnings().Has(production.EntityNotSpecified))
	assert.Equal(t, 3.2, params.RecipeTime())
	assert.Zero(t, params.Productivity())
	assert.Zero(t, params.FuelUsagePerSecondPerBuilding())
	assert.True(t, params.Modules().IsEmpty())
}

func TestCalculate_BurnerFuelDraw(t *testing.T) {
	// Arrange
	machine := newBurnerMachine(0.09)
	machine.BaseProductivity = 0.5
	node := &production.Node{Recipe: gamedata.NewRecipe("iron-plate", 3.2), Machine: machine, Fuel: newCoal()}

	// Act
	params := calculate(node)

	// Assert
	assert.InDelta(t, 1.6, params.RecipeTime(), 1e-9)
	assert.InDelta(t, 0.0225, params.FuelUsagePerSecondPerBuilding(), 1e-9)
	assert.InDelta(t, 0.036, params.FuelUsagePerSecondPerRecipe(), 1e-9)
	assert.Equal(t, 0.5, params.Productivity())
	assert.Zero(t, params.Warnings())
}

func TestCalculate_ElectricMachineWithoutFuel(t *testing.T) {
	// Arrange
	machine := gamedata.NewCrafter("assembler")
	machine.Power = 0.15

	// Act
	params := calculate(&production.Node{Recipe: gamedata.NewRecipe("gear", 0.5), Machine: machine})

	// Assert
	assert.True(t, params.Warnings().Has(production.FuelNotSpecified))
	assert.Equal(t, 0.15, params.FuelUsagePerSecondPerBuilding())
}

func TestCalculate_FuelWithoutEnergyValue(t *testing.T) {
	// Arrange
	node := &production.Node{
		Recipe:  gamedata.NewRecipe("iron-plate", 3.2),
		Machine: newBurnerMachine(0.09),
		Fuel:    gamedata.NewItem("iron-ore"),
	}

	// Act
	params := calculate(node)

	// Assert
	assert.True(t, params.Warnings().Has(production.FuelDoesNotProvideEnergy))
	assert.Zero(t, params.FuelUsagePerSecondPerBuilding())
}

func TestCalculate_IdleDrainWithoutFuelContributesNothing(t *testing.T) {
	// Arrange
	machine := gamedata.NewCrafter("assembler")
	machine.Power = 0.15
	machine.Energy = gamedata.NewEnergy(gamedata.EnergyGeneric)
	machine.Energy.Drain = 0.005

	// Act
	params := calculate(&production.Node{Recipe: gamedata.NewRecipe("gear", 0.5), Machine: machine})

	// Assert
	assert.Equal(t, 0.15, params.FuelUsagePerSecondPerBuilding())
	assert.False(t, math.IsNaN(params.FuelUsagePerSecondPerBuilding()))
	assert.False(t, math.IsInf(params.FuelUsagePerSecondPerBuilding(), 0))
}

func TestCalculate_IdleDrainWithFuel(t *testing.T) {
	// Arrange
	machine := newBurnerMachine(0.09)
	machine.Energy.Drain = 0.01
	node := &production.Node{Recipe: gamedata.NewRecipe("iron-plate", 3.2), Machine: machine, Fuel: newCoal()}

	// Act
	params := calculate(node)

	// Assert
	assert.InDelta(t, 0.0225+0.0025, params.FuelUsagePerSecondPerBuilding(), 1e-9)
}

func TestCalculate_ConsumptionCapPreservesEnergyBalance(t *testing.T) {
	// Arrange
	machine := newBurnerMachine(10)
	machine.CraftingSpeed = 1
	machine.Energy.FuelConsumptionLimit = 1
	node := &production.Node{Recipe: gamedata.NewRecipe("smelt", 2), Machine: machine, Fuel: newCoal()}
	drawBefore := 10.0 / 4
	timeBefore := 2.0

	// Act
	params := calculate(node)

	// Assert
	require.True(t, params.Warnings().Has(production.FuelUsageInputLimited))
	assert.Equal(t, 1.0, params.FuelUsagePerSecondPerBuilding())
	assert.InDelta(t, drawBefore/params.FuelUsagePerSecondPerBuilding(), params.RecipeTime()/timeBefore, 1e-9)
}

func TestCalculate_ConsumptionBelowCapIsUntouched(t *testing.T) {
	// Arrange
	machine := newBurnerMachine(0.09)
	machine.Energy.FuelConsumptionLimit = 1
	node := &production.Node{Recipe: gamedata.NewRecipe("iron-plate", 3.2), Machine: machine, Fuel: newCoal()}

	// Act
	params := calculate(node)

	// Assert
	assert.False(t, params.Warnings().Has(production.FuelUsageInputLimited))
	assert.LessOrEqual(t, params.FuelUsagePerSecondPerBuilding(), machine.Energy.FuelConsumptionLimit)
}

func newSteamTurbine() *gamedata.Crafter {
	turbine := gamedata.NewCrafter("steam-turbine")
	turbine.Power = 5.82
	turbine.Energy = gamedata.NewEnergy(gamedata.EnergyFluidHeat)
	turbine.Energy.WorkingTemperature = gamedata.TemperatureRange{Min: 15, Max: 500}
	turbine.Energy.AcceptedTemperature = gamedata.TemperatureRange{Min: 15, Max: 1000}
	return turbine
}

func TestCalculate_FluidHeat(t *testing.T) {
	tests := []struct {
		name         string
		temperature  int
		wantDraw     float64
		wantWarnings production.WarningFlags
	}{
		{"within working range", 165, 5.82 / (150 * 0.0002), 0},
		{"clamped to maximum", 1000, 5.82 / (485 * 0.0002), production.FuelTemperatureExceedsMaximum},
		{"outside accepted range", 1200, 5.82 / (485 * 0.0002),
			production.FuelTemperatureExceedsMaximum | production.FuelDoesNotProvideEnergy},
		{"at minimum provides nothing", 15, 0, production.FuelDoesNotProvideEnergy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			steam := gamedata.NewFluid("steam", tt.temperature, 0.0002)
			node := &production.Node{Recipe: gamedata.NewRecipe("generate", 1), Machine: newSteamTurbine(), Fuel: steam}

			// Act
			params := calculate(node)

			// Assert
			assert.InDelta(t, tt.wantDraw, params.FuelUsagePerSecondPerBuilding(), 1e-9)
			assert.Equal(t, tt.wantWarnings, params.Warnings())
		})
	}
}

func TestCalculate_FluidHeatWithoutLinkedFluid(t *testing.T) {
	// Arrange
	node := &production.Node{
		Recipe:  gamedata.NewRecipe("generate", 1),
		Machine: newSteamTurbine(),
		Fuel:    gamedata.NewSpecial("heat", 1),
	}

	// Act
	params := calculate(node)

	// Assert
	assert.True(t, params.Warnings().Has(production.FuelWithTemperatureNotLinked))
	assert.True(t, params.Warnings().Has(production.FuelDoesNotProvideEnergy))
	assert.Zero(t, params.FuelUsagePerSecondPerBuilding())
}

// Steam generation: boilers burn coal, heat exchangers consume heat, and both
// turn water into steam. One craft yields one MJ of steam.
func TestCalculate_SteamGenerationGolden(t *testing.T) {
	const waterHeatCapacity = 0.0002

	boiler := gamedata.NewCrafter("boiler")
	boiler.Power = 1.8
	boiler.Energy = gamedata.NewEnergy(gamedata.EnergyGeneric)

	exchanger := gamedata.NewCrafter("heat-exchanger")
	exchanger.Power = 10
	exchanger.Energy = gamedata.NewEnergy(gamedata.EnergyGeneric)

	machines := []struct {
		machine  *gamedata.Crafter
		fuel     gamedata.Goods
		outlet   int
		wantDraw float64
	}{
		{boiler, newCoal(), 165, 0.45},
		{exchanger, gamedata.NewSpecial("heat", 1), 500, 10},
	}

	for _, m := range machines {
		for _, inlet := range []int{15, 50, 90} {
			// Arrange
			water := gamedata.NewFluid("water", inlet, waterHeatCapacity)
			recipe := gamedata.NewRecipe("boil-water", 1)
			recipe.Flags = gamedata.FlagScaleProductionWithPower
			recipe.Ingredients = []gamedata.Ingredient{{
				Goods:  water,
				Amount: 1 / (waterHeatCapacity * float64(m.outlet-inlet)),
			}}
			node := &production.Node{Recipe: recipe, Machine: m.machine, Fuel: m.fuel}

			// Act
			params := calculate(node)

			// Assert
			wantFlow := m.machine.Power * 1000 / 0.2 / float64(m.outlet-inlet)
			flow := recipe.Ingredients[0].Amount / params.RecipeTime()
			assert.InEpsilon(t, wantFlow, flow, 1e-4, "%s water flow at %d", m.machine.Name(), inlet)
			assert.InEpsilon(t, m.wantDraw, params.FuelUsagePerSecondPerBuilding(), 1e-4, "%s fuel draw", m.machine.Name())
		}
	}
}

func TestCalculate_PowerScaledWithZeroPowerUsesConsumptionLimit(t *testing.T) {
	// Arrange
	generator := gamedata.NewCrafter("burner-generator")
	generator.Energy = gamedata.NewEnergy(gamedata.EnergyGeneric)
	generator.Energy.FuelConsumptionLimit = 0.5
	generator.Energy.Effectivity = 0.5
	recipe := gamedata.NewRecipe("generate", 1)
	recipe.Flags = gamedata.FlagScaleProductionWithPower

	// Act
	params := calculate(&production.Node{Recipe: recipe, Machine: generator, Fuel: newCoal()})

	// Assert
	assert.Equal(t, 0.5, params.FuelUsagePerSecondPerBuilding())
	assert.InDelta(t, 1/(0.5*4*0.5), params.RecipeTime(), 1e-9)
}

func TestCalculate_ProductivitySources(t *testing.T) {
	settings := production.DefaultProductionSettings()
	settings.MiningProductivity = 0.3
	settings.ResearchProductivity = 0.2
	settings.ProductivityTechnologyLevels = map[string]int{"steel-productivity": 3}

	machine := gamedata.NewCrafter("machine")
	calc := production.NewCalculator(production.DefaultEffectLimits)

	t.Run("mining wins over technology levels", func(t *testing.T) {
		recipe := gamedata.NewRecipe("mine-iron", 1)
		recipe.Flags = gamedata.FlagUsesMiningProductivity
		recipe.TechnologyProductivity = map[string]float64{"steel-productivity": 0.1}

		params := calc.Calculate(&production.Node{Recipe: recipe, Machine: machine}, settings)

		assert.InDelta(t, 0.3, params.Productivity(), 1e-9)
	})

	t.Run("technology uses research productivity", func(t *testing.T) {
		params := calc.Calculate(&production.Node{Recipe: gamedata.NewTechnology("automation", 10), Machine: machine}, settings)

		assert.InDelta(t, 0.2, params.Productivity(), 1e-9)
	})

	t.Run("recipe sums known technology levels", func(t *testing.T) {
		recipe := gamedata.NewRecipe("steel-plate", 16)
		recipe.TechnologyProductivity = map[string]float64{"steel-productivity": 0.1, "unknown": 5}

		params := calc.Calculate(&production.Node{Recipe: recipe, Machine: machine}, settings)

		assert.InDelta(t, 0.3, params.Productivity(), 1e-9)
	})
}

func TestCalculate_MachineKindWarnings(t *testing.T) {
	// Arrange
	reactor := gamedata.NewCrafter("nuclear-reactor")
	reactor.Kind = gamedata.MachineReactor
	reactor.ReactorNeighborBonus = 1
	solar := gamedata.NewCrafter("solar-panel")
	solar.Kind = gamedata.MachineSolarPanel
	recipe := gamedata.NewRecipe("generate", 1)

	// Act
	reactorParams := calculate(&production.Node{Recipe: recipe, Machine: reactor})
	solarParams := calculate(&production.Node{Recipe: recipe, Machine: solar})

	// Assert
	assert.True(t, reactorParams.Warnings().Has(production.ReactorsNeighborsFromPrefs))
	assert.InDelta(t, 2.0, reactorParams.Productivity(), 1e-9)
	assert.True(t, solarParams.Warnings().Has(production.AssumesNauvisSolarRatio))
	assert.False(t, solarParams.Warnings().Has(production.ReactorsNeighborsFromPrefs))
}

func TestCalculate_ModulesApplyEffects(t *testing.T) {
	// Arrange
	speed := gamedata.NewModule("speed-module", "speed", gamedata.ModuleEffect{Speed: 0.5, Consumption: 0.7})
	prod := gamedata.NewModule("productivity-module", "productivity",
		gamedata.ModuleEffect{Productivity: 0.1, Speed: -0.15, Consumption: 0.8})

	machine := newBurnerMachine(0.09)
	machine.CraftingSpeed = 1
	machine.ModuleSlots = 4
	machine.AllowedEffects = gamedata.AllowAll
	machine.AllowedModuleCategories = []string{"speed", "productivity"}

	template := &production.ModuleTemplate{Modules: []production.ModuleSlot{
		{Module: prod, FixedCount: 2},
		{Module: speed},
	}}
	node := &production.Node{Recipe: gamedata.NewRecipe("gear", 1), Machine: machine, Fuel: newCoal(), Modules: template}

	// Act
	params := calculate(node)

	// Assert
	effects := params.ActiveEffects()
	assert.InDelta(t, 0.2, effects.Productivity, 1e-9)
	assert.InDelta(t, 0.7, effects.Speed, 1e-9)
	assert.InDelta(t, 3.0, effects.Consumption, 1e-9)
	assert.InDelta(t, 0.2, params.Productivity(), 1e-9)
	assert.InDelta(t, 1/1.7, params.RecipeTime(), 1e-9)
	assert.InDelta(t, 0.0225*4, params.FuelUsagePerSecondPerBuilding(), 1e-9)
	assert.Equal(t, 4, params.Modules().InternalCount())
}

func TestCalculate_ModulesIgnoredWhenMachineRejectsThem(t *testing.T) {
	// Arrange
	called := false
	selector := production.ModuleSelectorFunc(func(production.ModuleContext) (production.ModuleEffects, production.UsedModules) {
		called = true
		return production.ModuleEffects{Speed: 1}, production.UsedModules{}
	})
	node := &production.Node{Recipe: gamedata.NewRecipe("gear", 1), Machine: newBurnerMachine(0.09), Fuel: newCoal(), Modules: selector}

	// Act
	params := calculate(node)

	// Assert
	assert.False(t, called)
	assert.Equal(t, production.ModuleEffects{}, params.ActiveEffects())
}

func TestCalculate_SelectorReceivesPreModuleContext(t *testing.T) {
	// Arrange
	machine := newBurnerMachine(0.09)
	machine.ModuleSlots = 2
	machine.AllowedEffects = gamedata.AllowSpeed
	machine.AllowedModuleCategories = []string{"speed"}

	var got production.ModuleContext
	selector := production.ModuleSelectorFunc(func(ctx production.ModuleContext) (production.ModuleEffects, production.UsedModules) {
		got = ctx
		return production.ModuleEffects{}, production.UsedModules{}
	})
	node := &production.Node{Recipe: gamedata.NewRecipe("iron-plate", 3.2), Machine: machine, Fuel: newCoal(), Modules: selector}

	// Act
	calculate(node)

	// Assert
	assert.Same(t, machine, got.Machine)
	assert.Equal(t, 2, got.Slots)
	assert.InDelta(t, 1.6, got.RecipeTime, 1e-9)
	assert.InDelta(t, 0.0225, got.FuelUsagePerSecond, 1e-9)
}

func TestRecipeParameters_ModulesReturnsCopy(t *testing.T) {
	// Arrange
	module := gamedata.NewModule("speed-module", "speed", gamedata.ModuleEffect{Speed: 0.5})
	machine := gamedata.NewCrafter("assembler")
	machine.ModuleSlots = 2
	machine.AllowedEffects = gamedata.AllowAll
	machine.AllowedModuleCategories = []string{"speed"}
	template := &production.ModuleTemplate{Modules: []production.ModuleSlot{{Module: module}}}
	params := calculate(&production.Node{Recipe: gamedata.NewRecipe("gear", 1), Machine: machine, Modules: template})

	// Act
	first := params.Modules()
	first.Modules[0].Count = 99

	// Assert
	assert.Equal(t, 2, params.Modules().Modules[0].Count)
}

func TestRecipeParameters_WithSolutionWarningsKeepsRange(t *testing.T) {
	// Arrange
	params := calculate(&production.Node{Recipe: gamedata.NewRecipe("gear", 1)})

	// Act
	updated := params.WithSolutionWarnings(production.DeadlockCandidate | production.FuelNotSpecified)

	// Assert
	assert.True(t, updated.Warnings().Has(production.DeadlockCandidate))
	assert.False(t, updated.Warnings().Has(production.FuelNotSpecified))
	assert.False(t, params.Warnings().Has(production.DeadlockCandidate))
}

func TestNode_BuildingsForRate(t *testing.T) {
	// Arrange
	plate := gamedata.NewItem("iron-plate")
	recipe := gamedata.NewRecipe("iron-plate", 3.2)
	recipe.Products = []gamedata.Product{{Goods: plate, Amount: 1}}
	node := &production.Node{Recipe: recipe, Machine: newBurnerMachine(0.09), Fuel: newCoal()}
	params := calculate(node)

	// Act
	buildings := node.BuildingsForRate(params, plate, 15)

	// Assert
	assert.InDelta(t, 24.0, buildings, 1e-9)
	assert.Zero(t, node.BuildingsForRate(params, gamedata.NewItem("copper-plate"), 15))
}
