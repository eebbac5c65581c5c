package shopping_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// smelting is a small linked registry: ore -> plate -> gear, plus an
// assembler placed by its own item.
type smelting struct {
	registry      *gamedata.Registry
	ore           *gamedata.Item
	plate         *gamedata.Item
	gear          *gamedata.Item
	water         *gamedata.Fluid
	assemblerItem *gamedata.Item
	assembler     *gamedata.Crafter
	plateRecipe   *gamedata.Recipe
	gearRecipe    *gamedata.Recipe
}

func newSmelting(t *testing.T) *smelting {
	t.Helper()
	s := &smelting{
		registry:      gamedata.NewRegistry(),
		ore:           gamedata.NewItem("iron-ore"),
		plate:         gamedata.NewItem("iron-plate"),
		gear:          gamedata.NewItem("iron-gear-wheel"),
		water:         gamedata.NewFluid("water", 15, 0.0002),
		assemblerItem: gamedata.NewItem("assembling-machine"),
		assembler:     gamedata.NewCrafter("assembling-machine"),
	}
	s.ore.SetCost(1)
	s.plate.SetCost(2)
	s.assemblerItem.SetCost(50)
	s.assemblerItem.PlaceResult = s.assembler
	s.assembler.ItemsToPlace = []*gamedata.Item{s.assemblerItem}

	s.plateRecipe = gamedata.NewRecipe("iron-plate", 3.2)
	s.plateRecipe.Ingredients = []gamedata.Ingredient{{Goods: s.ore, Amount: 2}}
	s.plateRecipe.Products = []gamedata.Product{{Goods: s.plate, Amount: 1}}

	s.gearRecipe = gamedata.NewRecipe("iron-gear-wheel", 0.5)
	s.gearRecipe.Ingredients = []gamedata.Ingredient{{Goods: s.plate, Amount: 2}, {Goods: s.water, Amount: 5}}
	s.gearRecipe.Products = []gamedata.Product{{Goods: s.gear, Amount: 1}}

	for _, g := range []gamedata.Goods{s.ore, s.plate, s.gear, s.water, s.assemblerItem} {
		require.NoError(t, s.registry.AddGoods(g))
	}
	require.NoError(t, s.registry.AddCrafter(s.assembler))
	require.NoError(t, s.registry.AddRecipe(s.plateRecipe))
	require.NoError(t, s.registry.AddRecipe(s.gearRecipe))
	s.registry.Link()
	return s
}

func listOf(entries map[gamedata.Object]float64) shopping.ShoppingList {
	amounts := make(map[gamedata.ObjectWithQuality]float64, len(entries))
	for obj, count := range entries {
		amounts[gamedata.With(obj, nil)] = count
	}
	return shopping.FromAmounts(amounts)
}

// byName flattens a list for comparison; quality is appended when not normal
func byName(list shopping.ShoppingList) map[string]float64 {
	result := make(map[string]float64, len(list.Entries))
	for _, entry := range list.Entries {
		result[entry.Object.String()] += entry.Count
	}
	return result
}
