package production

import "github.com/andrescamacho/factory-planner/internal/domain/gamedata"

// ModuleContext is what a module selector knows about the node it serves
type ModuleContext struct {
	Machine        *gamedata.Crafter
	MachineQuality *gamedata.Quality
	Recipe         gamedata.RecipeOrTechnology
	// RecipeTime and FuelUsagePerSecond are the values before module effects
	RecipeTime         float64
	FuelUsagePerSecond float64
	Slots              int
}

// ModuleSelector decides which modules and beacons a node uses. The
// calculator depends only on this contract; selection heuristics live behind it.
type ModuleSelector interface {
	SelectModules(ctx ModuleContext) (ModuleEffects, UsedModules)
}

// ModuleSelectorFunc adapts a function to ModuleSelector
type ModuleSelectorFunc func(ctx ModuleContext) (ModuleEffects, UsedModules)

func (f ModuleSelectorFunc) SelectModules(ctx ModuleContext) (ModuleEffects, UsedModules) {
	return f(ctx)
}

// NoModules selects nothing
var NoModules ModuleSelector = ModuleSelectorFunc(func(ModuleContext) (ModuleEffects, UsedModules) {
	return ModuleEffects{}, UsedModules{}
})

// ModuleSlot is a user-fixed module entry. FixedCount 0 fills the remaining slots.
type ModuleSlot struct {
	Module     *gamedata.Module
	Quality    *gamedata.Quality
	FixedCount int
}

// ModuleTemplate is an explicit module configuration chosen by the user.
// BeaconModules counts modules, not beacons; the beacon count is derived from
// the beacon's slot count.
type ModuleTemplate struct {
	Modules       []ModuleSlot
	Beacon        *gamedata.Beacon
	BeaconQuality *gamedata.Quality
	BeaconModules []ModuleSlot
}

// SelectModules fills the machine's slots in template order, then adds the
// beacon modules.
func (t *ModuleTemplate) SelectModules(ctx ModuleContext) (ModuleEffects, UsedModules) {
	var contributions []ModuleContribution
	used := UsedModules{}

	remaining := ctx.Slots
	for _, slot := range t.Modules {
		if slot.Module == nil || remaining <= 0 {
			continue
		}
		if ctx.Machine != nil && !ctx.Machine.AcceptsModule(slot.Module) {
			continue
		}
		count := remaining
		if slot.FixedCount > 0 {
			count = min(remaining, slot.FixedCount)
		}
		remaining -= count
		contributions = append(contributions, InternalModules(slot.Module, slot.Quality, count))
		used.Modules = append(used.Modules, UsedModule{Module: slot.Module, Quality: slot.Quality, Count: count})
	}

	if beaconCount := t.beaconCount(); beaconCount > 0 {
		used.Beacon = t.Beacon
		used.BeaconQuality = t.BeaconQuality
		used.BeaconCount = beaconCount
		for _, slot := range t.BeaconModules {
			if slot.Module == nil || slot.FixedCount <= 0 {
				continue
			}
			contributions = append(contributions,
				BeaconModules(slot.Module, slot.Quality, slot.FixedCount, t.Beacon, t.BeaconQuality, beaconCount))
			used.Modules = append(used.Modules, UsedModule{
				Module: slot.Module, Quality: slot.Quality, Count: slot.FixedCount, Beacon: true,
			})
		}
	}

	allowed := gamedata.AllowAll
	if ctx.Machine != nil {
		allowed = ctx.Machine.AllowedEffects
	}
	return Accumulate(ModuleEffects{}, allowed, contributions...), used
}

// beaconCount is the number of beacons needed to hold every beacon module
func (t *ModuleTemplate) beaconCount() int {
	if t.Beacon == nil || t.Beacon.ModuleSlots <= 0 {
		return 0
	}
	total := 0
	for _, slot := range t.BeaconModules {
		if slot.Module != nil && slot.FixedCount > 0 {
			total += slot.FixedCount
		}
	}
	if total == 0 {
		return 0
	}
	return (total-1)/t.Beacon.ModuleSlots + 1
}
