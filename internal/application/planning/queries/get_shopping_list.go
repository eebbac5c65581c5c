package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// GetShoppingListQuery loads a saved shopping list
type GetShoppingListQuery struct {
	ID string
}

// GetShoppingListResponse is the stored snapshot and the list restored from it
type GetShoppingListResponse struct {
	Snapshot *shopping.Snapshot
	List     shopping.ShoppingList
}

// GetShoppingListHandler handles the GetShoppingList query
type GetShoppingListHandler struct {
	repo     common.ShoppingListRepository
	registry common.RegistryProvider
}

// NewGetShoppingListHandler creates a new GetShoppingListHandler
func NewGetShoppingListHandler(repo common.ShoppingListRepository, registry common.RegistryProvider) *GetShoppingListHandler {
	return &GetShoppingListHandler{repo: repo, registry: registry}
}

// Handle executes the GetShoppingList query
func (h *GetShoppingListHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetShoppingListQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetShoppingListQuery")
	}

	snapshot, err := h.repo.FindByID(ctx, query.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find shopping list: %w", err)
	}

	registry, err := h.registry.Registry(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game data: %w", err)
	}

	list, err := snapshot.Restore(registry)
	if err != nil {
		return nil, err
	}

	return &GetShoppingListResponse{Snapshot: snapshot, List: list}, nil
}

// ListShoppingListsQuery lists every saved shopping list
type ListShoppingListsQuery struct{}

// ListShoppingListsResponse holds the saved snapshots, newest first
type ListShoppingListsResponse struct {
	Snapshots []*shopping.Snapshot
}

// ListShoppingListsHandler handles the ListShoppingLists query
type ListShoppingListsHandler struct {
	repo common.ShoppingListRepository
}

// NewListShoppingListsHandler creates a new ListShoppingListsHandler
func NewListShoppingListsHandler(repo common.ShoppingListRepository) *ListShoppingListsHandler {
	return &ListShoppingListsHandler{repo: repo}
}

// Handle executes the ListShoppingLists query
func (h *ListShoppingListsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListShoppingListsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListShoppingListsQuery")
	}

	snapshots, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	return &ListShoppingListsResponse{Snapshots: snapshots}, nil
}
