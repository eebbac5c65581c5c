package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

const (
	// Namespace for all metrics
	namespace = "factory_planner"
	// Subsystem for planner metrics
	subsystem = "planner"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlannerCollector is the singleton planner metrics collector
	// Set by SetGlobalPlannerCollector() when metrics are enabled
	globalPlannerCollector PlannerMetricsRecorder
)

// PlannerMetricsRecorder defines the interface for recording planner events
// This interface is used by application code to record metrics
type PlannerMetricsRecorder interface {
	RecordCalculation(warnings production.WarningFlags)
	RecordDecomposition(steps int, truncated bool)
	RecordShoppingList(display string, entries int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and the global collector
func Reset() {
	Registry = nil
	globalPlannerCollector = nil
}

// SetGlobalPlannerCollector sets the global planner metrics collector
func SetGlobalPlannerCollector(collector PlannerMetricsRecorder) {
	globalPlannerCollector = collector
}

// RecordCalculation records one parameter calculation globally
func RecordCalculation(warnings production.WarningFlags) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordCalculation(warnings)
	}
}

// RecordDecomposition records one decomposition globally
func RecordDecomposition(steps int, truncated bool) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordDecomposition(steps, truncated)
	}
}

// RecordShoppingList records one shopping list build globally
func RecordShoppingList(display string, entries int) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordShoppingList(display, entries)
	}
}
