package shopping

import (
	"sort"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

// GoodsBalance is the per-goods flow summary of a plan (units per second).
// Provided is the net flow: negative when the plan consumes more than it makes.
type GoodsBalance struct {
	Provided float64
	Needed   float64
	Extra    float64
}

// Available is the amount the plan makes available
func (b GoodsBalance) Available() float64 {
	return positive(b.Provided) + b.Extra
}

// Required is the amount the plan requires
func (b GoodsBalance) Required() float64 {
	return positive(-b.Provided) + b.Needed
}

func positive(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

// MissingItem is one goods the plan lacks
type MissingItem struct {
	Goods   string
	Deficit float64
}

// MissingItems lists the goods whose requirement exceeds availability,
// largest deficit first.
func MissingItems(balances map[string]GoodsBalance) []MissingItem {
	var missing []MissingItem
	for name, balance := range balances {
		needed, available := balance.Required(), balance.Available()
		if needed > available && needed > 0 {
			missing = append(missing, MissingItem{Goods: name, Deficit: needed - available})
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Deficit != missing[j].Deficit {
			return missing[i].Deficit > missing[j].Deficit
		}
		return missing[i].Goods < missing[j].Goods
	})
	return missing
}

// NodeBalances derives per-goods balances from calculated nodes. params[i]
// must belong to nodes[i]. demands lists external needs by goods name.
func NodeBalances(nodes []*production.Node, params []production.RecipeParameters, demands map[string]float64) map[string]GoodsBalance {
	balances := make(map[string]GoodsBalance)
	flow := func(g gamedata.Goods, amount float64) {
		if g == nil || amount == 0 {
			return
		}
		b := balances[g.Name()]
		b.Provided += amount
		balances[g.Name()] = b
	}

	for i, node := range nodes {
		if i >= len(params) || node == nil || node.BuildingCount <= 0 {
			continue
		}
		p := params[i]
		if p.RecipeTime() <= 0 {
			continue
		}
		craftsPerSecond := node.BuildingCount / p.RecipeTime()

		switch recipe := node.Recipe.(type) {
		case *gamedata.Recipe:
			for _, product := range recipe.Products {
				flow(product.Goods, product.Expected()*(1+p.Productivity())*craftsPerSecond)
			}
			for _, ingredient := range recipe.Ingredients {
				flow(ingredient.Goods, -ingredient.Amount*craftsPerSecond)
			}
		case *gamedata.Technology:
			for _, ingredient := range recipe.Ingredients {
				flow(ingredient.Goods, -ingredient.Amount*craftsPerSecond)
			}
		}

		if node.Fuel != nil && node.Machine != nil {
			flow(node.Fuel, -p.FuelUsagePerSecondPerBuilding()*node.BuildingCount)
		}
	}

	for name, amount := range demands {
		b := balances[name]
		b.Needed += amount
		balances[name] = b
	}
	return balances
}
