package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

// PlannerMetricsCollector handles calculation, shopping list and decomposition metrics
type PlannerMetricsCollector struct {
	// Calculation metrics
	calculationsTotal *prometheus.CounterVec
	warningsTotal     *prometheus.CounterVec

	// Decomposition metrics
	decompositionsTotal *prometheus.CounterVec
	decompositionSteps  prometheus.Histogram

	// Shopping list metrics
	shoppingListsTotal  *prometheus.CounterVec
	shoppingListEntries prometheus.Histogram
}

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector() *PlannerMetricsCollector {
	return &PlannerMetricsCollector{
		calculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "calculations_total",
				Help:      "Total number of parameter calculations by worst warning category",
			},
			[]string{"category"},
		),

		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "warnings_total",
				Help:      "Total number of warning flags raised by calculations",
			},
			[]string{"warning", "category"},
		),

		decompositionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "decompositions_total",
				Help:      "Total number of shopping list decompositions by result",
			},
			[]string{"result"},
		),

		decompositionSteps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "decomposition_steps",
				Help:      "Expansion steps performed per decomposition",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),

		shoppingListsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "shopping_lists_total",
				Help:      "Total number of shopping lists built by display state",
			},
			[]string{"display"},
		),

		shoppingListEntries: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "shopping_list_entries",
				Help:      "Number of entries per shopping list",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.calculationsTotal,
		c.warningsTotal,
		c.decompositionsTotal,
		c.decompositionSteps,
		c.shoppingListsTotal,
		c.shoppingListEntries,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordCalculation records a calculation under its most severe warning
// category, or "clean" when no warning was raised
func (c *PlannerMetricsCollector) RecordCalculation(warnings production.WarningFlags) {
	category := "clean"
	for _, cat := range production.Categories() {
		if warnings.HasCategory(cat) {
			category = cat.String()
		}
	}
	c.calculationsTotal.WithLabelValues(category).Inc()

	for _, flag := range warnings.Split() {
		c.warningsTotal.WithLabelValues(flag.String(), flag.Category().String()).Inc()
	}
}

// RecordDecomposition records a decomposition and its step count
func (c *PlannerMetricsCollector) RecordDecomposition(steps int, truncated bool) {
	result := "complete"
	if truncated {
		result = "truncated"
	}
	c.decompositionsTotal.WithLabelValues(result).Inc()
	c.decompositionSteps.Observe(float64(steps))
}

// RecordShoppingList records a shopping list build
func (c *PlannerMetricsCollector) RecordShoppingList(display string, entries int) {
	c.shoppingListsTotal.WithLabelValues(display).Inc()
	c.shoppingListEntries.Observe(float64(entries))
}
