package shopping

import "github.com/andrescamacho/factory-planner/internal/domain/gamedata"

// DefaultMaxSteps bounds the number of expansions of one decomposition
const DefaultMaxSteps = 1000

// maxConsumersForExpansion is the usage count above which an intermediate is
// considered too widely used to be replaced by its producing recipe
const maxConsumersForExpansion = 5

// DecompositionResult is the outcome of one Decompose call
type DecompositionResult struct {
	List ShoppingList
	// Steps is the number of expansions performed
	Steps int
	// Truncated is true when the step budget ran out with work still queued
	Truncated bool
}

// Decomposer expands a shopping list towards raw ingredients. A Decomposer is
// stateless between calls; each call owns its queue and amounts.
type Decomposer struct {
	maxSteps int
}

// NewDecomposer creates a decomposer. A non-positive maxSteps uses DefaultMaxSteps.
func NewDecomposer(maxSteps int) *Decomposer {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Decomposer{maxSteps: maxSteps}
}

// MaxSteps returns the expansion budget
func (d *Decomposer) MaxSteps() int { return d.maxSteps }

type decomposition struct {
	queue   []gamedata.ObjectWithQuality
	amounts map[gamedata.ObjectWithQuality]float64
	seen    map[gamedata.ObjectWithQuality]bool
}

// add merges amount into key. Keys are queued the first time they are seen
// only, so amounts merged into an already expanded key stay unexpanded.
func (w *decomposition) add(obj gamedata.Object, quality *gamedata.Quality, amount float64) {
	key := gamedata.With(obj, quality)
	if !w.seen[key] {
		w.seen[key] = true
		w.queue = append(w.queue, key)
	}
	w.amounts[key] += amount
}

// Decompose repeatedly replaces each entry with its upstream requirements
// until nothing can be expanded or the step budget is spent. It never fails:
// entries that cannot be expanded are left in place.
func (d *Decomposer) Decompose(list ShoppingList) DecompositionResult {
	work := &decomposition{
		amounts: make(map[gamedata.ObjectWithQuality]float64, len(list.Entries)),
		seen:    make(map[gamedata.ObjectWithQuality]bool, len(list.Entries)),
	}
	for _, entry := range list.Entries {
		work.add(entry.Object.Object, entry.Object.Quality, entry.Count)
	}

	steps := 0
	truncated := false
	for len(work.queue) > 0 {
		if steps >= d.maxSteps {
			truncated = true
			break
		}
		key := work.queue[0]
		work.queue = work.queue[1:]

		if !expand(work, key, work.amounts[key]) {
			continue
		}
		delete(work.amounts, key)
		steps++
	}

	return DecompositionResult{List: FromAmounts(work.amounts), Steps: steps, Truncated: truncated}
}

// expand applies the first matching rule to key and reports whether key was
// replaced. A false result marks key as terminal.
func expand(work *decomposition, key gamedata.ObjectWithQuality, amount float64) bool {
	switch obj := key.Object.(type) {
	case gamedata.Entity:
		items := obj.PlacementItems()
		if len(items) != 1 {
			return false
		}
		work.add(items[0], key.Quality, amount)
		return true

	case *gamedata.Recipe:
		if obj.HasIngredientVariants() {
			return false
		}
		for _, ingredient := range obj.Ingredients {
			quality := key.Quality
			if ingredient.Goods.AsFluid() != nil {
				quality = gamedata.Normal
			}
			work.add(ingredient.Goods, quality, ingredient.Amount*amount)
		}
		return true

	case gamedata.Goods:
		if !expandableGoods(obj) {
			return false
		}
		recipe := gamedata.FindSingleAccessibleProducer(obj)
		if recipe == nil {
			return false
		}
		perCraft := recipe.ProductionPerRecipe(obj)
		if perCraft <= 0 {
			return false
		}
		work.add(recipe, key.Quality, amount/perCraft)
		return true

	default:
		return false
	}
}

func expandableGoods(g gamedata.Goods) bool {
	if len(g.Usages()) <= maxConsumersForExpansion {
		return true
	}
	switch item := g.(type) {
	case *gamedata.Item:
		return item.IsBuildingItem()
	case *gamedata.Module:
		return true
	default:
		return false
	}
}
