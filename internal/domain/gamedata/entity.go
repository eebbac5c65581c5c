package gamedata

import "math"

// EnergyType classifies how a machine is powered
type EnergyType int

const (
	// EnergyNone means the energy source is unspecified
	EnergyNone EnergyType = iota
	// EnergyGeneric covers burner, electric and heat sources
	EnergyGeneric
	// EnergyFluidHeat consumes a hot fluid and extracts its heat
	EnergyFluidHeat
	// EnergyVoid needs no input energy
	EnergyVoid
)

func (t EnergyType) String() string {
	switch t {
	case EnergyNone:
		return "none"
	case EnergyGeneric:
		return "generic"
	case EnergyFluidHeat:
		return "fluid-heat"
	case EnergyVoid:
		return "void"
	default:
		return "unknown"
	}
}

// ParseEnergyType converts a data-file name into an EnergyType
func ParseEnergyType(s string) (EnergyType, bool) {
	switch s {
	case "", "none":
		return EnergyNone, true
	case "generic", "electric", "burner", "heat":
		return EnergyGeneric, true
	case "fluid-heat":
		return EnergyFluidHeat, true
	case "void":
		return EnergyVoid, true
	}
	return EnergyNone, false
}

// TemperatureRange is an inclusive range of integer temperatures
type TemperatureRange struct {
	Min int
	Max int
}

// AnyTemperature accepts every temperature
var AnyTemperature = TemperatureRange{Min: math.MinInt32, Max: math.MaxInt32}

// Contains reports whether t lies inside the range
func (r TemperatureRange) Contains(t int) bool {
	return t >= r.Min && t <= r.Max
}

// Energy describes a machine's energy source
type Energy struct {
	Type                EnergyType
	WorkingTemperature  TemperatureRange
	AcceptedTemperature TemperatureRange
	Effectivity         float64
	// Drain is the idle power draw (MW) independent of activity
	Drain float64
	// FuelConsumptionLimit caps fuel units consumed per second
	FuelConsumptionLimit float64
}

// NewEnergy creates an energy source with neutral defaults: full effectivity,
// unlimited consumption, every temperature accepted.
func NewEnergy(energyType EnergyType) *Energy {
	return &Energy{
		Type:                 energyType,
		WorkingTemperature:   AnyTemperature,
		AcceptedTemperature:  AnyTemperature,
		Effectivity:          1,
		FuelConsumptionLimit: math.Inf(1),
	}
}

// AllowedEffects is the set of module effect categories a machine accepts
type AllowedEffects uint8

const (
	AllowSpeed AllowedEffects = 1 << iota
	AllowProductivity
	AllowConsumption
	AllowPollution
	AllowQuality

	AllowNone AllowedEffects = 0
	AllowAll                 = AllowSpeed | AllowProductivity | AllowConsumption | AllowPollution | AllowQuality
)

// Has reports whether every effect in other is allowed
func (a AllowedEffects) Has(other AllowedEffects) bool {
	return a&other == other
}

// ParseAllowedEffect converts a data-file effect name
func ParseAllowedEffect(s string) (AllowedEffects, bool) {
	switch s {
	case "speed":
		return AllowSpeed, true
	case "productivity":
		return AllowProductivity, true
	case "consumption":
		return AllowConsumption, true
	case "pollution":
		return AllowPollution, true
	case "quality":
		return AllowQuality, true
	}
	return AllowNone, false
}

// MachineKind distinguishes machine variants that carry special rules
type MachineKind int

const (
	MachineGeneric MachineKind = iota
	MachineReactor
	MachineSolarPanel
)

func (k MachineKind) String() string {
	switch k {
	case MachineGeneric:
		return "generic"
	case MachineReactor:
		return "reactor"
	case MachineSolarPanel:
		return "solar-panel"
	default:
		return "unknown"
	}
}

// ParseMachineKind converts a data-file kind name
func ParseMachineKind(s string) (MachineKind, bool) {
	switch s {
	case "", "generic", "assembling-machine", "furnace", "mining-drill", "lab", "boiler", "generator":
		return MachineGeneric, true
	case "reactor":
		return MachineReactor, true
	case "solar-panel":
		return MachineSolarPanel, true
	}
	return MachineGeneric, false
}

// Crafter is a machine that performs recipes
type Crafter struct {
	base
	Kind          MachineKind
	CraftingSpeed float64
	// Power is the rated energy usage (MW)
	Power float64
	// Energy is nil when the machine has no energy concept at all
	Energy *Energy
	// BaseProductivity is the machine's inherent productivity bonus
	BaseProductivity        float64
	AllowedEffects          AllowedEffects
	AllowedModuleCategories []string
	ModuleSlots             int
	// ReactorNeighborBonus only applies to MachineReactor
	ReactorNeighborBonus float64
	ItemsToPlace         []*Item
}

// NewCrafter creates a generic machine with crafting speed 1
func NewCrafter(name string) *Crafter {
	return &Crafter{base: base{name: name}, CraftingSpeed: 1}
}

func (c *Crafter) PlacementItems() []*Item { return c.ItemsToPlace }

// AcceptsModules reports whether module effects can apply to this machine
func (c *Crafter) AcceptsModules() bool {
	return c.AllowedEffects != AllowNone && len(c.AllowedModuleCategories) > 0
}

// AcceptsModule reports whether the module's category is allowed
func (c *Crafter) AcceptsModule(m *Module) bool {
	for _, category := range c.AllowedModuleCategories {
		if category == m.Category {
			return true
		}
	}
	return false
}

// Beacon is a building that broadcasts module effects to nearby machines
type Beacon struct {
	base
	ModuleSlots             int
	DistributionEffectivity float64
	// EffectivityPerQuality is added to DistributionEffectivity per quality level
	EffectivityPerQuality float64
	// Profile[n-1] scales the effect when n beacons affect one machine
	Profile      []float64
	ItemsToPlace []*Item
}

// NewBeacon creates a beacon
func NewBeacon(name string, slots int, effectivity float64) *Beacon {
	return &Beacon{base: base{name: name}, ModuleSlots: slots, DistributionEffectivity: effectivity}
}

func (b *Beacon) PlacementItems() []*Item { return b.ItemsToPlace }

// Efficiency returns the distribution effectivity at the given quality
func (b *Beacon) Efficiency(quality *Quality) float64 {
	if quality == nil {
		return b.DistributionEffectivity
	}
	return b.DistributionEffectivity + b.EffectivityPerQuality*float64(quality.Level)
}

// ProfileFor returns the profile multiplier for count beacons
func (b *Beacon) ProfileFor(count int) float64 {
	if count <= 0 || len(b.Profile) == 0 {
		return 1
	}
	if count > len(b.Profile) {
		return b.Profile[len(b.Profile)-1]
	}
	return b.Profile[count-1]
}
