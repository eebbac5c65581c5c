package shopping_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

func TestMissingItems_SortedByDeficit(t *testing.T) {
	// Arrange
	balances := map[string]shopping.GoodsBalance{
		"iron-plate":  {Provided: -4},
		"copper-ore":  {Provided: 2, Needed: 3},
		"coal":        {Provided: 5, Needed: 5},
		"stone":       {Provided: -1, Extra: 1},
		"electricity": {Provided: 10},
	}

	// Act
	missing := shopping.MissingItems(balances)

	// Assert
	want := []shopping.MissingItem{
		{Goods: "iron-plate", Deficit: 4},
		{Goods: "copper-ore", Deficit: 1},
	}
	if diff := cmp.Diff(want, missing); diff != "" {
		t.Errorf("MissingItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeBalances_FromCalculatedNodes(t *testing.T) {
	// Arrange
	s := newSmelting(t)
	calc := production.NewCalculator(production.DefaultEffectLimits)
	settings := production.DefaultProductionSettings()
	nodes := []*production.Node{
		{Recipe: s.plateRecipe, Machine: s.assembler, BuildingCount: 2},
		{Recipe: s.gearRecipe, Machine: s.assembler, BuildingCount: 1},
	}
	params := make([]production.RecipeParameters, len(nodes))
	for i, node := range nodes {
		params[i] = calc.Calculate(node, settings)
	}

	// Act
	balances := shopping.NodeBalances(nodes, params, map[string]float64{"iron-gear-wheel": 3})
	missing := shopping.MissingItems(balances)

	// Assert
	assert.InDelta(t, 2/3.2, balances["iron-plate"].Provided+4, 1e-9)
	assert.InDelta(t, 2.0, balances["iron-gear-wheel"].Provided, 1e-9)
	assert.Equal(t, 3.0, balances["iron-gear-wheel"].Needed)
	require.NotEmpty(t, missing)
	assert.Equal(t, "water", missing[0].Goods)
	assert.InDelta(t, 10.0, missing[0].Deficit, 1e-9)
}
