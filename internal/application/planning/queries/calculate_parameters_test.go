package queries_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/andrescamacho/factory-planner/internal/application/planning/queries"
	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/test/helpers"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func manyNodes(count int) []*production.Node {
	machine := gamedata.NewCrafter("assembler")
	nodes := make([]*production.Node, count)
	for i := range nodes {
		// Distinct recipe times make the output order observable
		recipe := gamedata.NewRecipe(fmt.Sprintf("recipe-%d", i), float64(i+1))
		nodes[i] = &production.Node{Recipe: recipe, Machine: machine}
	}
	return nodes
}

func TestCalculateParameters_PreservesOrder(t *testing.T) {
	// Arrange
	handler := queries.NewCalculateParametersHandler(
		production.NewCalculator(production.DefaultEffectLimits), helpers.NewMockSettingsRepository(), 4)
	nodes := manyNodes(50)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.CalculateParametersQuery{Nodes: nodes})

	// Assert
	require.NoError(t, err)
	params := resp.(*queries.CalculateParametersResponse).Parameters
	require.Len(t, params, 50)
	for i, p := range params {
		assert.Equal(t, float64(i+1), p.RecipeTime())
	}
}

func TestCalculateParameters_SettingsOverrideSkipsRepository(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSettingsRepository()
	repo.LoadErr = errors.New("database offline")
	handler := queries.NewCalculateParametersHandler(production.NewCalculator(production.DefaultEffectLimits), repo, 1)

	mining := gamedata.NewRecipe("mine", 1)
	mining.Flags = gamedata.FlagUsesMiningProductivity
	settings := production.DefaultProductionSettings()
	settings.MiningProductivity = 0.4

	// Act
	resp, err := handler.Handle(context.Background(), &queries.CalculateParametersQuery{
		Nodes:    []*production.Node{{Recipe: mining, Machine: gamedata.NewCrafter("drill")}},
		Settings: &settings,
	})

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 0.4, resp.(*queries.CalculateParametersResponse).Parameters[0].Productivity(), 1e-9)
	assert.Zero(t, repo.Loads())
}

func TestCalculateParameters_RepositoryError(t *testing.T) {
	repo := helpers.NewMockSettingsRepository()
	repo.LoadErr = errors.New("database offline")
	handler := queries.NewCalculateParametersHandler(production.NewCalculator(production.DefaultEffectLimits), repo, 2)

	_, err := handler.Handle(context.Background(), &queries.CalculateParametersQuery{Nodes: manyNodes(3)})

	assert.ErrorContains(t, err, "database offline")
}

func TestCalculateParameters_CancelledContext(t *testing.T) {
	// Arrange
	handler := queries.NewCalculateParametersHandler(
		production.NewCalculator(production.DefaultEffectLimits), helpers.NewMockSettingsRepository(), 2)
	nodes := manyNodes(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := handler.Handle(ctx, &queries.CalculateParametersQuery{Nodes: nodes})

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
	for _, node := range nodes {
		assert.True(t, node.UsedModules.IsEmpty())
	}
}

func TestCalculateParameters_RejectsNodeWithoutRecipe(t *testing.T) {
	handler := queries.NewCalculateParametersHandler(
		production.NewCalculator(production.DefaultEffectLimits), helpers.NewMockSettingsRepository(), 2)

	_, err := handler.Handle(context.Background(), &queries.CalculateParametersQuery{Nodes: []*production.Node{{}}})

	assert.Error(t, err)
}

func TestCalculateParameters_InvalidRequestType(t *testing.T) {
	handler := queries.NewCalculateParametersHandler(
		production.NewCalculator(production.DefaultEffectLimits), helpers.NewMockSettingsRepository(), 2)

	_, err := handler.Handle(context.Background(), &queries.GetSettingsQuery{})

	assert.EqualError(t, err, "invalid request type: expected *CalculateParametersQuery")
}
