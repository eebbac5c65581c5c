package metrics_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

func setupRegistry(t *testing.T) *metrics.PlannerMetricsCollector {
	t.Helper()
	metrics.InitRegistry()
	t.Cleanup(metrics.Reset)

	collector := metrics.NewPlannerMetricsCollector()
	require.NoError(t, collector.Register())
	metrics.SetGlobalPlannerCollector(collector)
	return collector
}

func TestPlannerMetrics_RecordCalculationByWorstCategory(t *testing.T) {
	// Arrange
	setupRegistry(t)

	// Act
	metrics.RecordCalculation(0)
	metrics.RecordCalculation(production.AssumesNauvisSolarRatio)
	metrics.RecordCalculation(production.FuelNotSpecified | production.AssumesNauvisSolarRatio)

	// Assert
	samples, err := metrics.Gather(metrics.GetRegistry())
	require.NoError(t, err)

	byCategory := map[string]float64{}
	warnings := 0.0
	for _, s := range samples {
		switch s.Name {
		case "factory_planner_planner_calculations_total":
			byCategory[s.Labels["category"]] = s.Value
		case "factory_planner_planner_warnings_total":
			warnings += s.Value
		}
	}
	assert.Equal(t, map[string]float64{"clean": 1, "informational": 1, "static-error": 1}, byCategory)
	assert.Equal(t, 3.0, warnings)
}

func TestPlannerMetrics_RecordDecomposition(t *testing.T) {
	// Arrange
	setupRegistry(t)

	// Act
	metrics.RecordDecomposition(12, false)
	metrics.RecordDecomposition(1000, true)

	// Assert
	count, err := testutil.GatherAndCount(metrics.GetRegistry(), "factory_planner_planner_decompositions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf, metrics.GetRegistry()))
	assert.Contains(t, buf.String(), `factory_planner_planner_decompositions_total{result="truncated"} 1`)
	assert.Contains(t, buf.String(), "factory_planner_planner_decomposition_steps_sum 1012")
}

func TestPlannerMetrics_DisabledIsNoOp(t *testing.T) {
	metrics.Reset()

	assert.False(t, metrics.IsEnabled())
	assert.NotPanics(t, func() {
		metrics.RecordCalculation(production.EntityNotSpecified)
		metrics.RecordShoppingList("total", 3)
	})
}

func TestPrometheusMiddleware_RecordsRequests(t *testing.T) {
	// Arrange
	setupRegistry(t)
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	middleware := metrics.PrometheusMiddleware(collector)
	failing := func(ctx context.Context, request common.Request) (common.Response, error) {
		return nil, errors.New("boom")
	}

	// Act
	_, err := middleware(context.Background(), &struct{}{}, failing)

	// Assert
	assert.Error(t, err)
	count, gatherErr := testutil.GatherAndCount(metrics.GetRegistry(), "factory_planner_planner_requests_total")
	require.NoError(t, gatherErr)
	assert.Equal(t, 1, count)
}
