package production

import (
	"sort"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
)

// RecipeParameters is the immutable result of one parameter calculation.
// A new value is produced on every recalculation and replaces the old one.
type RecipeParameters struct {
	recipeTime                    float64
	fuelUsagePerSecondPerBuilding float64
	productivity                  float64
	warnings                      WarningFlags
	activeEffects                 ModuleEffects
	modules                       UsedModules
}

// RecipeTime is the effective time of one craft on one machine (seconds)
func (p RecipeParameters) RecipeTime() float64 { return p.recipeTime }

// FuelUsagePerSecondPerBuilding is the fuel or energy draw of one machine
func (p RecipeParameters) FuelUsagePerSecondPerBuilding() float64 {
	return p.fuelUsagePerSecondPerBuilding
}

// FuelUsagePerSecondPerRecipe is the fuel consumed by one craft
func (p RecipeParameters) FuelUsagePerSecondPerRecipe() float64 {
	return p.recipeTime * p.fuelUsagePerSecondPerBuilding
}

// Productivity is the total productivity bonus as a fraction
func (p RecipeParameters) Productivity() float64 { return p.productivity }

// Warnings are the flags raised while calculating
func (p RecipeParameters) Warnings() WarningFlags { return p.warnings }

// ActiveEffects is the module and beacon effect set applied to the node
func (p RecipeParameters) ActiveEffects() ModuleEffects { return p.activeEffects }

// Modules returns a copy of the used-module record
func (p RecipeParameters) Modules() UsedModules { return p.modules.clone() }

// WithSolutionWarnings returns a copy with additional flags. It is meant for
// the external solver, which owns the solution-error range.
func (p RecipeParameters) WithSolutionWarnings(flags WarningFlags) RecipeParameters {
	p.warnings |= flags & CategorySolutionError.Mask()
	p.modules = p.modules.clone()
	return p
}

// Calculator derives recipe parameters for production nodes. It holds no
// mutable state and may be shared between goroutines.
type Calculator struct {
	limits EffectLimits
}

// NewCalculator creates a calculator with the given multiplier limits
func NewCalculator(limits EffectLimits) *Calculator {
	return &Calculator{limits: limits}
}

// Calculate derives effective timing, fuel draw, productivity and warnings for
// one node. Misconfiguration never fails the calculation: each problem is
// recorded as a warning and a safe value is used instead.
func (c *Calculator) Calculate(node *Node, settings ProductionSettings) RecipeParameters {
	var warnings WarningFlags
	recipe := node.Recipe
	machine := node.Machine

	if machine == nil {
		return RecipeParameters{
			recipeTime: recipe.CraftingTime(),
			warnings:   EntityNotSpecified,
		}
	}

	recipeTime := recipe.CraftingTime() / machine.CraftingSpeed
	productivity := machine.BaseProductivity
	energy := machine.Energy
	energyUsage := machine.Power
	energyPerUnitOfFuel := 0.0
	var fuelUsage float64

	if energy != nil && node.Fuel != nil {
		fluid := node.Fuel.AsFluid()
		energyPerUnitOfFuel = node.Fuel.FuelValue()

		if energy.Type == gamedata.EnergyFluidHeat {
			if fluid == nil {
				warnings |= FuelWithTemperatureNotLinked
				energyPerUnitOfFuel = 0
			} else {
				temperature := fluid.Temperature
				if temperature > energy.WorkingTemperature.Max {
					temperature = energy.WorkingTemperature.Max
					warnings |= FuelTemperatureExceedsMaximum
				}
				energyPerUnitOfFuel = float64(temperature-energy.WorkingTemperature.Min) * fluid.HeatCapacity
			}
		}

		if fluid != nil && !energy.AcceptedTemperature.Contains(fluid.Temperature) {
			warnings |= FuelDoesNotProvideEnergy
		}

		if energyPerUnitOfFuel > 0 {
			if energyUsage > 0 {
				fuelUsage = energyUsage / (energyPerUnitOfFuel * energy.Effectivity)
			}
		} else {
			fuelUsage = 0
			warnings |= FuelDoesNotProvideEnergy
		}
	} else {
		fuelUsage = energyUsage
		warnings |= FuelNotSpecified
		if energy == nil {
			energy = gamedata.NewEnergy(gamedata.EnergyVoid)
		}
	}

	// Generator-like recipes measure one craft as one unit of energy
	if recipe.HasFlag(gamedata.FlagScaleProductionWithPower) && energyPerUnitOfFuel > 0 && energy.Type != gamedata.EnergyVoid {
		if energyUsage == 0 {
			fuelUsage = energy.FuelConsumptionLimit
			recipeTime = 1 / (energy.FuelConsumptionLimit * energyPerUnitOfFuel * energy.Effectivity)
		} else {
			recipeTime = 1 / energyUsage
		}
	}

	productivity += recipeProductivity(recipe, settings)

	switch machine.Kind {
	case gamedata.MachineReactor:
		if machine.ReactorNeighborBonus > 0 {
			productivity += machine.ReactorNeighborBonus * settings.ReactorBonusMultiplier()
			warnings |= ReactorsNeighborsFromPrefs
		}
	case gamedata.MachineSolarPanel:
		warnings |= AssumesNauvisSolarRatio
	case gamedata.MachineGeneric:
	}

	var activeEffects ModuleEffects
	var modules UsedModules
	if machine.AcceptsModules() {
		selector := node.Modules
		if selector == nil {
			selector = NoModules
		}
		activeEffects, modules = selector.SelectModules(ModuleContext{
			Machine:            machine,
			MachineQuality:     node.MachineQuality,
			Recipe:             recipe,
			RecipeTime:         recipeTime,
			FuelUsagePerSecond: fuelUsage,
			Slots:              machine.ModuleSlots,
		})
		productivity += activeEffects.Productivity
		recipeTime /= c.limits.SpeedMultiplier(activeEffects)
		fuelUsage *= c.limits.EnergyUsageMultiplier(activeEffects)
	}

	// Without a fuel energy value the drain cannot be expressed in fuel units
	if energy.Drain > 0 && energyPerUnitOfFuel > 0 {
		fuelUsage += energy.Drain / energyPerUnitOfFuel
	}

	if fuelUsage > energy.FuelConsumptionLimit {
		recipeTime *= fuelUsage / energy.FuelConsumptionLimit
		fuelUsage = energy.FuelConsumptionLimit
		warnings |= FuelUsageInputLimited
	}

	return RecipeParameters{
		recipeTime:                    recipeTime,
		fuelUsagePerSecondPerBuilding: fuelUsage,
		productivity:                  productivity,
		warnings:                      warnings,
		activeEffects:                 activeEffects,
		modules:                       modules,
	}
}

// recipeProductivity returns the research-driven productivity bonus. Mining
// productivity wins over the other two sources.
func recipeProductivity(recipe gamedata.RecipeOrTechnology, settings ProductionSettings) float64 {
	if recipe.HasFlag(gamedata.FlagUsesMiningProductivity) {
		return settings.MiningProductivity
	}

	switch r := recipe.(type) {
	case *gamedata.Technology:
		return settings.ResearchProductivity
	case *gamedata.Recipe:
		technologies := make([]string, 0, len(r.TechnologyProductivity))
		for technology := range r.TechnologyProductivity {
			technologies = append(technologies, technology)
		}
		sort.Strings(technologies)

		bonus := 0.0
		for _, technology := range technologies {
			level, ok := settings.TechnologyLevel(technology)
			if !ok {
				continue
			}
			bonus += r.TechnologyProductivity[technology] * float64(level)
		}
		return bonus
	default:
		return 0
	}
}
