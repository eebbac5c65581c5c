package config

// PlannerConfig holds the calculation engine tuning values
type PlannerConfig struct {
	// DecompositionMaxSteps bounds the expansions of one decomposition
	DecompositionMaxSteps int `mapstructure:"decomposition_max_steps" validate:"min=1"`

	// SpeedFloor and EnergyFloor are the lower bounds of the module speed and
	// energy usage multipliers; both must stay positive
	SpeedFloor  float64 `mapstructure:"speed_floor" validate:"gt=0"`
	EnergyFloor float64 `mapstructure:"energy_floor" validate:"gt=0"`

	// QualityFloor is the lower bound of the module quality multiplier
	QualityFloor float64 `mapstructure:"quality_floor" validate:"min=0"`

	// RegistryCacheSize is the number of loaded game-data files kept in memory
	RegistryCacheSize int `mapstructure:"registry_cache_size" validate:"min=1"`

	// CalculationWorkers bounds concurrent parameter calculations
	CalculationWorkers int `mapstructure:"calculation_workers" validate:"min=1,max=256"`
}

// GameDataConfig points at the game data and plan files
type GameDataConfig struct {
	// Path of the YAML game-data registry
	Path string `mapstructure:"path"`

	// PlanPath is the default plan file
	PlanPath string `mapstructure:"plan_path"`
}
