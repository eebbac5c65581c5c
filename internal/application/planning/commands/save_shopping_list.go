package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/shared"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// SaveShoppingListCommand stores a shopping list under a new ID
type SaveShoppingListCommand struct {
	Name       string
	List       shopping.ShoppingList
	Options    shopping.Options
	Decomposed bool
}

// SaveShoppingListResponse is the stored snapshot
type SaveShoppingListResponse struct {
	Snapshot *shopping.Snapshot
}

// SaveShoppingListHandler handles the SaveShoppingList command
type SaveShoppingListHandler struct {
	repo  common.ShoppingListRepository
	clock shared.Clock
}

// NewSaveShoppingListHandler creates a new SaveShoppingListHandler. A nil
// clock uses the system time.
func NewSaveShoppingListHandler(repo common.ShoppingListRepository, clock shared.Clock) *SaveShoppingListHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SaveShoppingListHandler{repo: repo, clock: clock}
}

// Handle executes the SaveShoppingList command
func (h *SaveShoppingListHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SaveShoppingListCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveShoppingListCommand")
	}

	if cmd.List.IsEmpty() {
		return nil, shared.NewValidationError("list", "shopping list is empty")
	}

	snapshot := shopping.NewSnapshot(uuid.NewString(), cmd.Name, cmd.List, cmd.Options, cmd.Decomposed, h.clock.Now())
	if err := h.repo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "shopping list saved", map[string]interface{}{
		"id":      snapshot.ID,
		"name":    snapshot.Name,
		"entries": len(snapshot.Lines),
	})

	return &SaveShoppingListResponse{Snapshot: snapshot}, nil
}
