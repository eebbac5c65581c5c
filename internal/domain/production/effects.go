package production

import (
	"math"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
)

// ModuleEffects is the additive sum of module and beacon bonuses.
// Values are combined with Add and never mutated through references.
type ModuleEffects struct {
	Productivity float64
	Speed        float64
	Consumption  float64
	Quality      float64
}

// Add returns the component-wise sum of two effect sets
func (e ModuleEffects) Add(other ModuleEffects) ModuleEffects {
	return ModuleEffects{
		Productivity: e.Productivity + other.Productivity,
		Speed:        e.Speed + other.Speed,
		Consumption:  e.Consumption + other.Consumption,
		Quality:      e.Quality + other.Quality,
	}
}

// Scale multiplies every component by factor
func (e ModuleEffects) Scale(factor float64) ModuleEffects {
	return ModuleEffects{
		Productivity: e.Productivity * factor,
		Speed:        e.Speed * factor,
		Consumption:  e.Consumption * factor,
		Quality:      e.Quality * factor,
	}
}

// Filter zeroes the components the receiving machine does not allow
func (e ModuleEffects) Filter(allowed gamedata.AllowedEffects) ModuleEffects {
	if !allowed.Has(gamedata.AllowProductivity) {
		e.Productivity = 0
	}
	if !allowed.Has(gamedata.AllowSpeed) {
		e.Speed = 0
	}
	if !allowed.Has(gamedata.AllowConsumption) {
		e.Consumption = 0
	}
	if !allowed.Has(gamedata.AllowQuality) {
		e.Quality = 0
	}
	return e
}

// SpeedMultiplier uses DefaultEffectLimits
func (e ModuleEffects) SpeedMultiplier() float64 { return DefaultEffectLimits.SpeedMultiplier(e) }

// EnergyUsageMultiplier uses DefaultEffectLimits
func (e ModuleEffects) EnergyUsageMultiplier() float64 {
	return DefaultEffectLimits.EnergyUsageMultiplier(e)
}

// QualityMultiplier uses DefaultEffectLimits
func (e ModuleEffects) QualityMultiplier() float64 { return DefaultEffectLimits.QualityMultiplier(e) }

// EffectLimits holds the lower bounds applied to derived multipliers. They are
// balance constants supplied by configuration; MinSpeed and MinEnergyUsage
// must be strictly positive.
type EffectLimits struct {
	MinSpeed       float64
	MinEnergyUsage float64
	MinQuality     float64
}

// DefaultEffectLimits floors speed and energy usage at 20% and quality at zero
var DefaultEffectLimits = EffectLimits{
	MinSpeed:       0.2,
	MinEnergyUsage: 0.2,
	MinQuality:     0,
}

// SpeedMultiplier returns 1 + speed, never below MinSpeed
func (l EffectLimits) SpeedMultiplier(e ModuleEffects) float64 {
	return math.Max(1+e.Speed, l.MinSpeed)
}

// EnergyUsageMultiplier returns 1 + consumption, never below MinEnergyUsage
func (l EffectLimits) EnergyUsageMultiplier(e ModuleEffects) float64 {
	return math.Max(1+e.Consumption, l.MinEnergyUsage)
}

// QualityMultiplier returns the quality bonus, never below MinQuality.
// It multiplies the machine's base quality upgrade chance.
func (l EffectLimits) QualityMultiplier(e ModuleEffects) float64 {
	return math.Max(e.Quality, l.MinQuality)
}

// ModuleContribution is one (module, count) entry of an accumulation.
// Beacon-carried modules additionally carry the beacon efficiency and the
// profile factor for the number of beacons.
type ModuleContribution struct {
	Module           *gamedata.Module
	Quality          *gamedata.Quality
	Count            float64
	BeaconEfficiency float64
	BeaconProfile    float64
}

// InternalModules describes count modules inserted into the machine itself
func InternalModules(module *gamedata.Module, quality *gamedata.Quality, count int) ModuleContribution {
	return ModuleContribution{
		Module:           module,
		Quality:          quality,
		Count:            float64(count),
		BeaconEfficiency: 1,
		BeaconProfile:    1,
	}
}

// BeaconModules describes count modules spread over beaconCount beacons
func BeaconModules(module *gamedata.Module, quality *gamedata.Quality, count int,
	beacon *gamedata.Beacon, beaconQuality *gamedata.Quality, beaconCount int) ModuleContribution {
	return ModuleContribution{
		Module:           module,
		Quality:          quality,
		Count:            float64(count),
		BeaconEfficiency: beacon.Efficiency(beaconQuality),
		BeaconProfile:    beacon.ProfileFor(beaconCount),
	}
}

// Weight is the effective number of modules the contribution counts for
func (c ModuleContribution) Weight() float64 {
	return c.Count * c.BeaconEfficiency * c.BeaconProfile
}

// Effects returns the contribution's effect set
func (c ModuleContribution) Effects() ModuleEffects {
	if c.Module == nil {
		return ModuleEffects{}
	}
	effect := c.Module.EffectFor(c.Quality)
	return ModuleEffects{
		Productivity: effect.Productivity,
		Speed:        effect.Speed,
		Consumption:  effect.Consumption,
		Quality:      effect.Quality,
	}.Scale(c.Weight())
}

// Accumulate sums the contributions into start, keeping only the effects the
// machine allows. The result does not depend on contribution order.
func Accumulate(start ModuleEffects, allowed gamedata.AllowedEffects, contributions ...ModuleContribution) ModuleEffects {
	total := start
	for _, contribution := range contributions {
		total = total.Add(contribution.Effects().Filter(allowed))
	}
	return total
}
