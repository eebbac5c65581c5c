package gamedata

// Document is the on-disk shape of a game-data file
type Document struct {
	Qualities    []QualityDoc    `yaml:"qualities" validate:"dive"`
	Items        []ItemDoc       `yaml:"items" validate:"dive"`
	Fluids       []FluidDoc      `yaml:"fluids" validate:"dive"`
	Specials     []SpecialDoc    `yaml:"specials" validate:"dive"`
	Modules      []ModuleDoc     `yaml:"modules" validate:"dive"`
	Machines     []MachineDoc    `yaml:"machines" validate:"dive"`
	Beacons      []BeaconDoc     `yaml:"beacons" validate:"dive"`
	Recipes      []RecipeDoc     `yaml:"recipes" validate:"dive"`
	Technologies []TechnologyDoc `yaml:"technologies" validate:"dive"`
}

type QualityDoc struct {
	Name  string `yaml:"name" validate:"required"`
	Level int    `yaml:"level" validate:"min=1"`
}

type ItemDoc struct {
	Name      string  `yaml:"name" validate:"required"`
	Type      string  `yaml:"type"`
	Cost      float64 `yaml:"cost" validate:"min=0"`
	FuelValue float64 `yaml:"fuel_value" validate:"min=0"`
	// PlaceResult names the machine or beacon this item places
	PlaceResult string `yaml:"place_result"`
}

// FluidDoc declares a fluid and every temperature it exists at. Each
// temperature becomes its own registry entry named "<name>@<temperature>".
type FluidDoc struct {
	Name         string  `yaml:"name" validate:"required"`
	Temperatures []int   `yaml:"temperatures" validate:"required,min=1"`
	HeatCapacity float64 `yaml:"heat_capacity" validate:"min=0"`
	Cost         float64 `yaml:"cost" validate:"min=0"`
}

type SpecialDoc struct {
	Name      string  `yaml:"name" validate:"required"`
	FuelValue float64 `yaml:"fuel_value" validate:"min=0"`
}

type ModuleDoc struct {
	Name     string    `yaml:"name" validate:"required"`
	Category string    `yaml:"category" validate:"required"`
	Cost     float64   `yaml:"cost" validate:"min=0"`
	Effect   EffectDoc `yaml:"effect"`
}

type EffectDoc struct {
	Productivity float64 `yaml:"productivity"`
	Speed        float64 `yaml:"speed"`
	Consumption  float64 `yaml:"consumption"`
	Quality      float64 `yaml:"quality"`
}

type MachineDoc struct {
	Name                 string     `yaml:"name" validate:"required"`
	Kind                 string     `yaml:"kind"`
	CraftingSpeed        float64    `yaml:"crafting_speed" validate:"gt=0"`
	Power                float64    `yaml:"power" validate:"min=0"`
	BaseProductivity     float64    `yaml:"base_productivity"`
	AllowedEffects       []string   `yaml:"allowed_effects"`
	ModuleCategories     []string   `yaml:"module_categories"`
	ModuleSlots          int        `yaml:"module_slots" validate:"min=0"`
	ReactorNeighborBonus float64    `yaml:"reactor_neighbor_bonus" validate:"min=0"`
	Cost                 float64    `yaml:"cost" validate:"min=0"`
	Energy               *EnergyDoc `yaml:"energy"`
}

type EnergyDoc struct {
	Type                 string          `yaml:"type"`
	WorkingTemperature   *TemperatureDoc `yaml:"working_temperature"`
	AcceptedTemperature  *TemperatureDoc `yaml:"accepted_temperature"`
	Effectivity          *float64        `yaml:"effectivity" validate:"omitempty,gt=0"`
	Drain                float64         `yaml:"drain" validate:"min=0"`
	FuelConsumptionLimit float64         `yaml:"fuel_consumption_limit" validate:"min=0"`
}

type TemperatureDoc struct {
	Min int `yaml:"min"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

type BeaconDoc struct {
	Name                    string    `yaml:"name" validate:"required"`
	ModuleSlots             int       `yaml:"module_slots" validate:"min=1"`
	DistributionEffectivity float64   `yaml:"distribution_effectivity" validate:"gt=0"`
	EffectivityPerQuality   float64   `yaml:"effectivity_per_quality" validate:"min=0"`
	Profile                 []float64 `yaml:"profile"`
	Cost                    float64   `yaml:"cost" validate:"min=0"`
}

type RecipeDoc struct {
	Name                   string             `yaml:"name" validate:"required"`
	Time                   float64            `yaml:"time" validate:"gt=0"`
	Flags                  []string           `yaml:"flags"`
	Accessible             *bool              `yaml:"accessible"`
	Ingredients            []IngredientDoc    `yaml:"ingredients" validate:"dive"`
	Products               []ProductDoc       `yaml:"products" validate:"dive"`
	TechnologyProductivity map[string]float64 `yaml:"technology_productivity"`
}

type IngredientDoc struct {
	Goods    string   `yaml:"goods" validate:"required"`
	Amount   float64  `yaml:"amount" validate:"gt=0"`
	Variants []string `yaml:"variants"`
}

type ProductDoc struct {
	Goods       string  `yaml:"goods" validate:"required"`
	Amount      float64 `yaml:"amount" validate:"gt=0"`
	Probability float64 `yaml:"probability" validate:"min=0,max=1"`
}

type TechnologyDoc struct {
	Name        string          `yaml:"name" validate:"required"`
	Time        float64         `yaml:"time" validate:"gt=0"`
	Flags       []string        `yaml:"flags"`
	Ingredients []IngredientDoc `yaml:"ingredients" validate:"dive"`
}
