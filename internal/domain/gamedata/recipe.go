package gamedata

// RecipeFlags is a bit set of recipe behaviours
type RecipeFlags uint8

const (
	// FlagUsesMiningProductivity means the mining productivity research applies
	FlagUsesMiningProductivity RecipeFlags = 1 << iota
	// FlagUsesFluidTemperature means ingredient temperature affects the recipe
	FlagUsesFluidTemperature
	// FlagScaleProductionWithPower marks generator-like recipes whose crafts
	// are measured in energy rather than time
	FlagScaleProductionWithPower
)

// Has reports whether every flag in other is set
func (f RecipeFlags) Has(other RecipeFlags) bool {
	return f&other == other
}

// ParseRecipeFlag converts a data-file flag name
func ParseRecipeFlag(s string) (RecipeFlags, bool) {
	switch s {
	case "uses-mining-productivity":
		return FlagUsesMiningProductivity, true
	case "uses-fluid-temperature":
		return FlagUsesFluidTemperature, true
	case "scale-production-with-power":
		return FlagScaleProductionWithPower, true
	}
	return 0, false
}

// RecipeOrTechnology is the closed set of things a production node can run:
// *Recipe or *Technology.
type RecipeOrTechnology interface {
	Object
	CraftingTime() float64
	HasFlag(flag RecipeFlags) bool
	recipeOrTechnology()
}

// Ingredient is one input of a recipe. Variants lists interchangeable goods
// (typically temperature variants of a fluid).
type Ingredient struct {
	Goods    Goods
	Amount   float64
	Variants []Goods
}

// Product is one output of a recipe
type Product struct {
	Goods       Goods
	Amount      float64
	Probability float64
}

// Expected returns the average amount produced per craft
func (p Product) Expected() float64 {
	if p.Probability <= 0 {
		return p.Amount
	}
	return p.Amount * p.Probability
}

// Recipe is an ordinary crafting recipe
type Recipe struct {
	base
	Time        float64
	Flags       RecipeFlags
	Ingredients []Ingredient
	Products    []Product
	// TechnologyProductivity maps a technology name to the productivity
	// increment granted per researched level
	TechnologyProductivity map[string]float64
	// Accessible is false for recipes that cannot be unlocked
	Accessible bool
}

// NewRecipe creates an accessible recipe
func NewRecipe(name string, time float64) *Recipe {
	return &Recipe{base: base{name: name}, Time: time, Accessible: true}
}

func (r *Recipe) CraftingTime() float64         { return r.Time }
func (r *Recipe) HasFlag(flag RecipeFlags) bool { return r.Flags.Has(flag) }
func (r *Recipe) recipeOrTechnology()           {}

// HasIngredientVariants reports whether any ingredient can be satisfied by
// more than one goods.
func (r *Recipe) HasIngredientVariants() bool {
	for _, ingredient := range r.Ingredients {
		if len(ingredient.Variants) > 1 {
			return true
		}
	}
	return false
}

// ProductionPerRecipe returns how much of goods one craft yields
func (r *Recipe) ProductionPerRecipe(goods Goods) float64 {
	total := 0.0
	for _, product := range r.Products {
		if product.Goods == goods {
			total += product.Expected()
		}
	}
	return total
}

// Technology is a research node. It is processed by labs like a recipe.
type Technology struct {
	base
	Time        float64
	Flags       RecipeFlags
	Ingredients []Ingredient
}

// NewTechnology creates a technology with the given research time per unit
func NewTechnology(name string, time float64) *Technology {
	return &Technology{base: base{name: name}, Time: time}
}

func (t *Technology) CraftingTime() float64         { return t.Time }
func (t *Technology) HasFlag(flag RecipeFlags) bool { return t.Flags.Has(flag) }
func (t *Technology) recipeOrTechnology()           {}
