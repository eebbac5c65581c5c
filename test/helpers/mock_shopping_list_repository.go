package helpers

import (
	"context"
	"sort"
	"sync"

	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
	"github.com/andrescamacho/factory-planner/internal/domain/shared"
	"github.com/andrescamacho/factory-planner/internal/domain/shopping"
)

// MockShoppingListRepository is an in-memory ShoppingListRepository
type MockShoppingListRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*shopping.Snapshot
}

// NewMockShoppingListRepository creates an empty mock repository
func NewMockShoppingListRepository() *MockShoppingListRepository {
	return &MockShoppingListRepository{snapshots: make(map[string]*shopping.Snapshot)}
}

// Save stores the snapshot
func (m *MockShoppingListRepository) Save(ctx context.Context, snapshot *shopping.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snapshot.ID] = snapshot
	return nil
}

// FindByID retrieves a snapshot
func (m *MockShoppingListRepository) FindByID(ctx context.Context, id string) (*shopping.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot, ok := m.snapshots[id]
	if !ok {
		return nil, shared.NewNotFoundError("shopping list", id)
	}
	return snapshot, nil
}

// List returns every snapshot, newest first
func (m *MockShoppingListRepository) List(ctx context.Context) ([]*shopping.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshots := make([]*shopping.Snapshot, 0, len(m.snapshots))
	for _, snapshot := range m.snapshots {
		snapshots = append(snapshots, snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
		}
		return snapshots[i].ID < snapshots[j].ID
	})
	return snapshots, nil
}

// StaticRegistryProvider serves a fixed registry
type StaticRegistryProvider struct {
	registry *domain.Registry
}

// NewStaticRegistryProvider creates a provider for registry
func NewStaticRegistryProvider(registry *domain.Registry) *StaticRegistryProvider {
	return &StaticRegistryProvider{registry: registry}
}

// Registry returns the fixed registry
func (p *StaticRegistryProvider) Registry(ctx context.Context) (*domain.Registry, error) {
	return p.registry, nil
}
