package queries

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/factory-planner/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

// CalculateParametersQuery calculates recipe parameters for a batch of nodes
type CalculateParametersQuery struct {
	Nodes []*production.Node
	// Settings overrides the stored production settings when set
	Settings *production.ProductionSettings
}

// CalculateParametersResponse holds one parameter set per node, in node order
type CalculateParametersResponse struct {
	Parameters []production.RecipeParameters
}

// CalculateParametersHandler runs the calculator over nodes concurrently
type CalculateParametersHandler struct {
	calculator   *production.Calculator
	settingsRepo common.SettingsRepository
	workers      int
}

// NewCalculateParametersHandler creates a handler using at most workers
// concurrent calculations
func NewCalculateParametersHandler(
	calculator *production.Calculator,
	settingsRepo common.SettingsRepository,
	workers int,
) *CalculateParametersHandler {
	if workers < 1 {
		workers = 1
	}
	return &CalculateParametersHandler{
		calculator:   calculator,
		settingsRepo: settingsRepo,
		workers:      workers,
	}
}

// Handle executes the CalculateParameters query
func (h *CalculateParametersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*CalculateParametersQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CalculateParametersQuery")
	}

	for i, node := range query.Nodes {
		if node == nil || node.Recipe == nil {
			return nil, fmt.Errorf("node %d has no recipe", i)
		}
	}

	settings, err := h.resolveSettings(ctx, query.Settings)
	if err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	results := make([]production.RecipeParameters, len(query.Nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)
	for i, node := range query.Nodes {
		i, node := i, node
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = h.calculator.Calculate(node, settings)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("calculation cancelled: %w", err)
	}

	// Materialize on the nodes only once every calculation succeeded
	for i, node := range query.Nodes {
		params := results[i]
		node.ApplyParameters(params)
		metrics.RecordCalculation(params.Warnings())

		metadata := map[string]interface{}{
			"recipe":      node.Recipe.Name(),
			"recipe_time": params.RecipeTime(),
			"fuel_usage":  params.FuelUsagePerSecondPerBuilding(),
		}
		if params.Warnings().HasCategory(production.CategoryStaticError) {
			metadata["warnings"] = params.Warnings().String()
			logger.Log(common.LevelWarn, "node has configuration errors", metadata)
			continue
		}
		logger.Log(common.LevelDebug, "node calculated", metadata)
	}

	return &CalculateParametersResponse{Parameters: results}, nil
}

func (h *CalculateParametersHandler) resolveSettings(ctx context.Context, override *production.ProductionSettings) (production.ProductionSettings, error) {
	if override != nil {
		return override.Snapshot(), nil
	}
	settings, err := h.settingsRepo.Load(ctx)
	if err != nil {
		return production.ProductionSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.Snapshot(), nil
}
