package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// DecomposeShoppingListCommand expands a shopping list into upstream
// ingredients
type DecomposeShoppingListCommand struct {
	List shopping.ShoppingList
	// MaxSteps overrides the configured step budget when positive
	MaxSteps int
}

// DecomposeShoppingListResponse is the decomposed list with its step count
type DecomposeShoppingListResponse struct {
	Result shopping.DecompositionResult
}

// DecomposeShoppingListHandler handles the DecomposeShoppingList command
type DecomposeShoppingListHandler struct {
	defaultMaxSteps int
}

// NewDecomposeShoppingListHandler creates a handler with the configured step budget
func NewDecomposeShoppingListHandler(defaultMaxSteps int) *DecomposeShoppingListHandler {
	return &DecomposeShoppingListHandler{defaultMaxSteps: defaultMaxSteps}
}

// Handle executes the DecomposeShoppingList command
func (h *DecomposeShoppingListHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DecomposeShoppingListCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DecomposeShoppingListCommand")
	}

	maxSteps := h.defaultMaxSteps
	if cmd.MaxSteps > 0 {
		maxSteps = cmd.MaxSteps
	}
	decomposer := shopping.NewDecomposer(maxSteps)
	result := decomposer.Decompose(cmd.List)
	metrics.RecordDecomposition(result.Steps, result.Truncated)

	metadata := map[string]interface{}{
		"steps":     result.Steps,
		"max_steps": decomposer.MaxSteps(),
		"entries":   len(result.List.Entries),
	}
	logger := common.LoggerFromContext(ctx)
	if result.Truncated {
		logger.Log(common.LevelWarn, "decomposition stopped at step budget", metadata)
	} else {
		logger.Log(common.LevelDebug, "shopping list decomposed", metadata)
	}

	return &DecomposeShoppingListResponse{Result: result}, nil
}
