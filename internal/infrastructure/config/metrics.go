package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Print writes the gathered samples after every command, like --metrics
	Print bool `mapstructure:"print"`
}
