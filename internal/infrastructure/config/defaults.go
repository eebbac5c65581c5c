package config

import "time"

// Planner defaults
const (
	DefaultDecompositionMaxSteps = 1000
	DefaultSpeedFloor            = 0.2
	DefaultEnergyFloor           = 0.2
	DefaultRegistryCacheSize     = 16
	DefaultCalculationWorkers    = 4
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "factory-planner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "factory_planner"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "factory_planner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "silent"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Planner defaults
	if cfg.Planner.DecompositionMaxSteps == 0 {
		cfg.Planner.DecompositionMaxSteps = DefaultDecompositionMaxSteps
	}
	if cfg.Planner.SpeedFloor == 0 {
		cfg.Planner.SpeedFloor = DefaultSpeedFloor
	}
	if cfg.Planner.EnergyFloor == 0 {
		cfg.Planner.EnergyFloor = DefaultEnergyFloor
	}
	if cfg.Planner.RegistryCacheSize == 0 {
		cfg.Planner.RegistryCacheSize = DefaultRegistryCacheSize
	}
	if cfg.Planner.CalculationWorkers == 0 {
		cfg.Planner.CalculationWorkers = DefaultCalculationWorkers
	}
}
