package shopping

import (
	"math"
	"sort"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
)

// Entry is one line of a shopping list
type Entry struct {
	Object gamedata.ObjectWithQuality
	Count  float64
}

// ShoppingList is an aggregated per-object count with derived totals.
// Entries are sorted by count, highest first.
type ShoppingList struct {
	Entries   []Entry
	Cost      float64
	Buildings float64
	Modules   float64
}

// Amounts returns the list as a map keyed by object and quality
func (l ShoppingList) Amounts() map[gamedata.ObjectWithQuality]float64 {
	amounts := make(map[gamedata.ObjectWithQuality]float64, len(l.Entries))
	for _, entry := range l.Entries {
		amounts[entry.Object] += entry.Count
	}
	return amounts
}

// IsEmpty reports whether the list has no entries
func (l ShoppingList) IsEmpty() bool { return len(l.Entries) == 0 }

// FromAmounts builds a sorted list with totals, dropping non-positive counts
func FromAmounts(amounts map[gamedata.ObjectWithQuality]float64) ShoppingList {
	var list ShoppingList
	for key, count := range amounts {
		if count > 0 {
			list.Entries = append(list.Entries, Entry{Object: key, Count: count})
		}
	}
	sortEntries(list.Entries)

	for _, entry := range list.Entries {
		switch entry.Object.Object.(type) {
		case *gamedata.Module:
			list.Modules += entry.Count
		case gamedata.Entity, *gamedata.Item:
			list.Buildings += entry.Count
		}
		list.Cost += entry.Object.Object.Cost() * entry.Count
	}
	return list
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Object.String() < entries[j].Object.String()
	})
}

// Aggregate tallies the buildings and modules required by the nodes. Each node
// must already carry its solver-materialized BuildingCount and the UsedModules
// of its last parameter calculation.
func Aggregate(nodes []*production.Node, opts Options) ShoppingList {
	counts := make(map[gamedata.ObjectWithQuality]float64)
	for _, node := range nodes {
		if node == nil || node.Machine == nil {
			continue
		}
		displayCount := displayCount(node, opts)
		if displayCount == 0 {
			continue
		}

		if items := node.Machine.PlacementItems(); len(items) > 0 {
			counts[gamedata.With(items[0], node.MachineQuality)] += float64(displayCount)
		}

		for _, used := range node.UsedModules.Modules {
			if used.Beacon || used.Module == nil {
				continue
			}
			counts[gamedata.With(used.Module, used.Quality)] += float64(displayCount * used.Count)
		}
	}
	return FromAmounts(counts)
}

// displayCount is the whole number of buildings shown for a node under opts
func displayCount(node *production.Node, opts Options) int {
	required := ceil(node.BuildingCount)
	built := 0
	switch {
	case node.BuiltBuildings != nil:
		built = *node.BuiltBuildings
	case opts.AssumeAdequate:
		built = required
	}

	switch opts.Display {
	case DisplayBuilt:
		return built
	case DisplayMissing:
		return ceil(math.Max(node.BuildingCount-float64(built), 0))
	default:
		return required
	}
}

func ceil(value float64) int {
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	return int(math.Ceil(value))
}
