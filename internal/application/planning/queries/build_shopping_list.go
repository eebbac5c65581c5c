package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// BuildShoppingListQuery aggregates the buildings and modules of a set of nodes
type BuildShoppingListQuery struct {
	Nodes []*production.Node
	// Options overrides the stored shopping preferences when set
	Options *shopping.Options
}

// BuildShoppingListResponse is the aggregated list and the options it was built with
type BuildShoppingListResponse struct {
	List    shopping.ShoppingList
	Options shopping.Options
}

// BuildShoppingListHandler handles the BuildShoppingList query
type BuildShoppingListHandler struct {
	preferencesRepo common.PreferencesRepository
}

// NewBuildShoppingListHandler creates a new BuildShoppingListHandler
func NewBuildShoppingListHandler(preferencesRepo common.PreferencesRepository) *BuildShoppingListHandler {
	return &BuildShoppingListHandler{preferencesRepo: preferencesRepo}
}

// Handle executes the BuildShoppingList query
func (h *BuildShoppingListHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*BuildShoppingListQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildShoppingListQuery")
	}

	var opts shopping.Options
	if query.Options != nil {
		opts = *query.Options
	} else {
		prefs, err := h.preferencesRepo.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load preferences: %w", err)
		}
		opts = prefs.Shopping
	}

	list := shopping.Aggregate(query.Nodes, opts)
	metrics.RecordShoppingList(opts.Display.String(), len(list.Entries))

	common.LoggerFromContext(ctx).Log(common.LevelDebug, "shopping list built", map[string]interface{}{
		"display":   opts.Display.String(),
		"entries":   len(list.Entries),
		"buildings": list.Buildings,
		"modules":   list.Modules,
	})

	return &BuildShoppingListResponse{List: list, Options: opts}, nil
}
