package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/domain/production"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// ListMissingItemsQuery lists the goods a plan lacks. Balances are used as
// given; when nil they are derived from Nodes, Parameters and Demands.
type ListMissingItemsQuery struct {
	Balances map[string]shopping.GoodsBalance

	Nodes      []*production.Node
	Parameters []production.RecipeParameters
	Demands    map[string]float64
}

// ListMissingItemsResponse holds the deficits, largest first
type ListMissingItemsResponse struct {
	Items []shopping.MissingItem
}

// ListMissingItemsHandler handles the ListMissingItems query
type ListMissingItemsHandler struct{}

// NewListMissingItemsHandler creates a new ListMissingItemsHandler
func NewListMissingItemsHandler() *ListMissingItemsHandler {
	return &ListMissingItemsHandler{}
}

// Handle executes the ListMissingItems query
func (h *ListMissingItemsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListMissingItemsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListMissingItemsQuery")
	}

	balances := query.Balances
	if balances == nil {
		if len(query.Parameters) != len(query.Nodes) {
			return nil, fmt.Errorf("got %d parameter sets for %d nodes", len(query.Parameters), len(query.Nodes))
		}
		balances = shopping.NodeBalances(query.Nodes, query.Parameters, query.Demands)
	}

	return &ListMissingItemsResponse{Items: shopping.MissingItems(balances)}, nil
}
