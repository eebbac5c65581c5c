package shopping

import (
	"fmt"
	"time"

	"github.com/andrescamacho/factory-planner/internal/domain/gamedata"
)

// SnapshotLine is one shopping-list entry addressed by name
type SnapshotLine struct {
	Kind    string
	Name    string
	Quality string
	Count   float64
}

// Snapshot is a shopping list detached from the registry so it can be stored
type Snapshot struct {
	ID         string
	Name       string
	Decomposed bool
	Options    Options
	CreatedAt  time.Time
	Lines      []SnapshotLine
}

// NewSnapshot captures list under the given identity
func NewSnapshot(id, name string, list ShoppingList, opts Options, decomposed bool, createdAt time.Time) *Snapshot {
	snapshot := &Snapshot{
		ID:         id,
		Name:       name,
		Decomposed: decomposed,
		Options:    opts,
		CreatedAt:  createdAt,
		Lines:      make([]SnapshotLine, 0, len(list.Entries)),
	}
	for _, entry := range list.Entries {
		snapshot.Lines = append(snapshot.Lines, SnapshotLine{
			Kind:    gamedata.KindOf(entry.Object.Object),
			Name:    entry.Object.Object.Name(),
			Quality: entry.Object.Quality.Name(),
			Count:   entry.Count,
		})
	}
	return snapshot
}

// ObjectResolver finds registry objects for snapshot lines
type ObjectResolver interface {
	Lookup(kind, name string) (gamedata.Object, error)
	Quality(name string) (*gamedata.Quality, error)
}

// Restore rebuilds the shopping list against a registry
func (s *Snapshot) Restore(resolver ObjectResolver) (ShoppingList, error) {
	amounts := make(map[gamedata.ObjectWithQuality]float64, len(s.Lines))
	for _, line := range s.Lines {
		obj, err := resolver.Lookup(line.Kind, line.Name)
		if err != nil {
			return ShoppingList{}, fmt.Errorf("restore shopping list %s: %w", s.ID, err)
		}
		quality, err := resolver.Quality(line.Quality)
		if err != nil {
			return ShoppingList{}, fmt.Errorf("restore shopping list %s: %w", s.ID, err)
		}
		amounts[gamedata.With(obj, quality)] += line.Count
	}
	return FromAmounts(amounts), nil
}
