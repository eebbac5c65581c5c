package shopping_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestDecompose_AcyclicChainConverges(t *testing.T) {
	// Arrange
	s := newSmelting(t)
	decomposer := shopping.NewDecomposer(shopping.DefaultMaxSteps)
	list := listOf(map[gamedata.Object]float64{s.plate: 10})

	// Act
	first := decomposer.Decompose(list)
	second := decomposer.Decompose(first.List)

	// Assert
	want := map[string]float64{"iron-ore": 20}
	if diff := cmp.Diff(want, byName(first.List), approx); diff != "" {
		t.Errorf("first pass mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(byName(first.List), byName(second.List), approx); diff != "" {
		t.Errorf("second pass is not idempotent (-first +second):\n%s", diff)
	}
	assert.False(t, first.Truncated)
	assert.Equal(t, 2, first.Steps)
	assert.Zero(t, second.Steps)
}

func TestDecompose_BuildingBecomesItemThenIngredients(t *testing.T) {
	// Arrange
	s := newSmelting(t)
	machineRecipe := gamedata.NewRecipe("assembling-machine", 0.5)
	machineRecipe.Ingredients = []gamedata.Ingredient{{Goods: s.gear, Amount: 5}}
	machineRecipe.Products = []gamedata.Product{{Goods: s.assemblerItem, Amount: 1}}
	require.NoError(t, s.registry.AddRecipe(machineRecipe))
	s.registry.Link()

	rare := gamedata.NewQuality("rare", 2)
	list := shopping.FromAmounts(map[gamedata.ObjectWithQuality]float64{gamedata.With(s.assembler, rare): 2})

	// Act
	result := shopping.NewDecomposer(0).Decompose(list)

	// Assert
	want := map[string]float64{
		"iron-ore (rare)": 40,
		"water":           50,
	}
	if diff := cmp.Diff(want, byName(result.List), approx); diff != "" {
		t.Errorf("Decompose() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecompose_CyclicGraphTerminates(t *testing.T) {
	// Arrange
	registry := gamedata.NewRegistry()
	a := gamedata.NewItem("a")
	b := gamedata.NewItem("b")
	makeA := gamedata.NewRecipe("make-a", 1)
	makeA.Ingredients = []gamedata.Ingredient{{Goods: b, Amount: 2}}
	makeA.Products = []gamedata.Product{{Goods: a, Amount: 1}}
	makeB := gamedata.NewRecipe("make-b", 1)
	makeB.Ingredients = []gamedata.Ingredient{{Goods: a, Amount: 1}}
	makeB.Products = []gamedata.Product{{Goods: b, Amount: 1}}
	require.NoError(t, registry.AddGoods(a))
	require.NoError(t, registry.AddGoods(b))
	require.NoError(t, registry.AddRecipe(makeA))
	require.NoError(t, registry.AddRecipe(makeB))
	registry.Link()

	// Act
	result := shopping.NewDecomposer(shopping.DefaultMaxSteps).Decompose(listOf(map[gamedata.Object]float64{a: 1}))

	// Assert
	require.False(t, result.List.IsEmpty())
	assert.LessOrEqual(t, result.Steps, shopping.DefaultMaxSteps)
	for _, entry := range result.List.Entries {
		assert.False(t, math.IsInf(entry.Count, 0) || math.IsNaN(entry.Count), entry.Object.String())
	}
}

func TestDecompose_StepBudgetTruncates(t *testing.T) {
	// Arrange: a chain item-0 <- item-1 <- ... <- item-9
	registry := gamedata.NewRegistry()
	items := make([]*gamedata.Item, 10)
	for i := range items {
		items[i] = gamedata.NewItem(fmt.Sprintf("item-%d", i))
		require.NoError(t, registry.AddGoods(items[i]))
	}
	for i := 0; i < len(items)-1; i++ {
		recipe := gamedata.NewRecipe(fmt.Sprintf("make-%d", i), 1)
		recipe.Ingredients = []gamedata.Ingredient{{Goods: items[i+1], Amount: 1}}
		recipe.Products = []gamedata.Product{{Goods: items[i], Amount: 1}}
		require.NoError(t, registry.AddRecipe(recipe))
	}
	registry.Link()
	decomposer := shopping.NewDecomposer(3)

	// Act
	result := decomposer.Decompose(listOf(map[gamedata.Object]float64{items[0]: 1}))

	// Assert
	assert.True(t, result.Truncated)
	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, map[string]float64{"make-1": 1}, byName(result.List))
}

func TestDecompose_MergeIntoExpandedKeyIsNotReprocessed(t *testing.T) {
	// Arrange
	s := newSmelting(t)
	list := listOf(map[gamedata.Object]float64{s.plate: 10, s.gear: 5})

	// Act
	result := shopping.NewDecomposer(shopping.DefaultMaxSteps).Decompose(list)

	// Assert: plates requested by gears arrive after plates were expanded
	want := map[string]float64{
		"iron-ore":   20,
		"iron-plate": 10,
		"water":      25,
	}
	if diff := cmp.Diff(want, byName(result.List), approx); diff != "" {
		t.Errorf("Decompose() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecompose_LeavesAmbiguousProducersInPlace(t *testing.T) {
	// Arrange
	s := newSmelting(t)
	alternative := gamedata.NewRecipe("iron-plate-alt", 1)
	alternative.Products = []gamedata.Product{{Goods: s.plate, Amount: 2}}
	require.NoError(t, s.registry.AddRecipe(alternative))
	s.registry.Link()

	// Act
	result := shopping.NewDecomposer(0).Decompose(listOf(map[gamedata.Object]float64{s.plate: 3}))

	// Assert
	assert.Equal(t, map[string]float64{"iron-plate": 3}, byName(result.List))
	assert.Zero(t, result.Steps)
}

func TestDecompose_RecipeWithIngredientVariantsIsTerminal(t *testing.T) {
	// Arrange
	s := newSmelting(t)
	hot := gamedata.NewFluid("water@90", 90, 0.0002)
	s.gearRecipe.Ingredients[1].Variants = []gamedata.Goods{s.water, hot}

	// Act
	result := shopping.NewDecomposer(0).Decompose(listOf(map[gamedata.Object]float64{s.gearRecipe: 4}))

	// Assert
	assert.Equal(t, map[string]float64{"iron-gear-wheel": 4}, byName(result.List))
}

func TestDecompose_ConsumerThreshold(t *testing.T) {
	plainItem := func(name string) gamedata.Goods { return gamedata.NewItem(name) }
	toolItem := func(name string) gamedata.Goods {
		item := gamedata.NewItem(name)
		item.Kind = gamedata.ItemKindTool
		return item
	}
	placingItem := func(name string) gamedata.Goods {
		item := gamedata.NewItem(name)
		item.PlaceResult = gamedata.NewCrafter(name + "-building")
		return item
	}
	module := func(name string) gamedata.Goods {
		return gamedata.NewModule(name, "speed", gamedata.ModuleEffect{Speed: 0.2})
	}

	tests := []struct {
		name      string
		goods     func(name string) gamedata.Goods
		consumers int
		want      map[string]float64
		wantSteps int
	}{
		{name: "five consumers expand", goods: plainItem, consumers: 5, want: map[string]float64{"ore": 3}, wantSteps: 2},
		{name: "six consumers stay terminal", goods: plainItem, consumers: 6, want: map[string]float64{"x": 1}, wantSteps: 0},
		{name: "special kind item expands", goods: toolItem, consumers: 6, want: map[string]float64{"ore": 3}, wantSteps: 2},
		{name: "placing item expands", goods: placingItem, consumers: 6, want: map[string]float64{"ore": 3}, wantSteps: 2},
		{name: "module expands", goods: module, consumers: 6, want: map[string]float64{"ore": 3}, wantSteps: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			registry := gamedata.NewRegistry()
			ore := gamedata.NewItem("ore")
			x := tt.goods("x")
			require.NoError(t, registry.AddGoods(ore))
			require.NoError(t, registry.AddGoods(x))

			producer := gamedata.NewRecipe("make-x", 1)
			producer.Ingredients = []gamedata.Ingredient{{Goods: ore, Amount: 3}}
			producer.Products = []gamedata.Product{{Goods: x, Amount: 1}}
			require.NoError(t, registry.AddRecipe(producer))
			for i := 0; i < tt.consumers; i++ {
				consumer := gamedata.NewRecipe(fmt.Sprintf("use-x-%d", i), 1)
				consumer.Ingredients = []gamedata.Ingredient{{Goods: x, Amount: 1}}
				require.NoError(t, registry.AddRecipe(consumer))
			}
			registry.Link()
			require.Len(t, x.Usages(), tt.consumers)

			// Act
			result := shopping.NewDecomposer(0).Decompose(listOf(map[gamedata.Object]float64{x: 1}))

			// Assert
			if diff := cmp.Diff(tt.want, byName(result.List), approx); diff != "" {
				t.Errorf("decomposition mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantSteps, result.Steps)
		})
	}
}
