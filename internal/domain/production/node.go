package production

import "github.com/andrescamacho/factory-planner/internal/domain/gamedata"

// Node is one production step: a recipe bound to a machine, fuel and module
// configuration. BuildingCount is materialized by the external solver and
// UsedModules by the last parameter calculation.
type Node struct {
	Recipe         gamedata.RecipeOrTechnology
	RecipeQuality  *gamedata.Quality
	Machine        *gamedata.Crafter
	MachineQuality *gamedata.Quality
	Fuel           gamedata.Goods
	// Modules is nil when the node uses no modules
	Modules ModuleSelector

	BuildingCount float64
	// BuiltBuildings is the user-entered number of buildings already placed
	BuiltBuildings *int
	UsedModules    UsedModules
}

// IsTechnology reports whether the node researches a technology
func (n *Node) IsTechnology() bool {
	_, ok := n.Recipe.(*gamedata.Technology)
	return ok
}

// ApplyParameters materializes the calculation output that later stages read
func (n *Node) ApplyParameters(params RecipeParameters) {
	n.UsedModules = params.Modules()
}

// BuildingsForRate returns the number of machines needed to output rate units
// per second of goods with the given parameters. It returns 0 when the recipe
// does not produce the goods.
func (n *Node) BuildingsForRate(params RecipeParameters, goods gamedata.Goods, rate float64) float64 {
	recipe, ok := n.Recipe.(*gamedata.Recipe)
	if !ok || rate <= 0 {
		return 0
	}
	perCraft := recipe.ProductionPerRecipe(goods) * (1 + params.Productivity())
	if perCraft <= 0 {
		return 0
	}
	return rate * params.RecipeTime() / perCraft
}
