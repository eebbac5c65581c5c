package shopping

import (
	"math"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
)

// ExportedGoods is one rounded line of an exported shopping list
type ExportedGoods struct {
	Goods gamedata.Goods
	Count int
}

// ExportGoods rounds every entry to a whole count, skips zero counts and maps
// buildings to their first placement item. Entries that are neither goods nor
// placeable are skipped.
func ExportGoods(list ShoppingList) []ExportedGoods {
	return export(list, func(gamedata.Goods) bool { return true })
}

// ExportItems is ExportGoods restricted to solid items, as accepted by
// item-only containers.
func ExportItems(list ShoppingList) []ExportedGoods {
	return export(list, func(g gamedata.Goods) bool {
		switch g.(type) {
		case *gamedata.Item, *gamedata.Module:
			return true
		default:
			return false
		}
	})
}

func export(list ShoppingList, accept func(gamedata.Goods) bool) []ExportedGoods {
	var exported []ExportedGoods
	for _, entry := range list.Entries {
		rounded := int(math.Round(entry.Count))
		if rounded == 0 {
			continue
		}

		var goods gamedata.Goods
		switch obj := entry.Object.Object.(type) {
		case gamedata.Goods:
			goods = obj
		case gamedata.Entity:
			if items := obj.PlacementItems(); len(items) > 0 {
				goods = items[0]
			}
		}
		if goods == nil || !accept(goods) {
			continue
		}
		exported = append(exported, ExportedGoods{Goods: goods, Count: rounded})
	}
	return exported
}
