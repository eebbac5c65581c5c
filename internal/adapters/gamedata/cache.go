package gamedata

import (
	"context"
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	domain "github.com/andrescamacho/factory-planner/internal/domain/gamedata"
)

// LoaderFunc loads a registry from a path
type LoaderFunc func(path string) (*domain.Registry, error)

// RegistryCache keeps recently loaded registries keyed by absolute path.
// Registries are read-only once linked, so cached values are shared.
type RegistryCache struct {
	cache  *lru.Cache[string, *domain.Registry]
	loads  singleflight.Group
	loader LoaderFunc
}

// NewRegistryCache creates a cache holding at most size registries
func NewRegistryCache(size int) (*RegistryCache, error) {
	return NewRegistryCacheWithLoader(size, LoadFile)
}

// NewRegistryCacheWithLoader creates a cache that loads through loader
func NewRegistryCacheWithLoader(size int, loader LoaderFunc) (*RegistryCache, error) {
	cache, err := lru.New[string, *domain.Registry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry cache: %w", err)
	}
	return &RegistryCache{cache: cache, loader: loader}, nil
}

// Get returns the registry at path, loading it on a miss. Concurrent misses
// for the same path share one load.
func (c *RegistryCache) Get(path string) (*domain.Registry, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}

	if registry, ok := c.cache.Get(key); ok {
		return registry, nil
	}

	value, err, _ := c.loads.Do(key, func() (interface{}, error) {
		if registry, ok := c.cache.Get(key); ok {
			return registry, nil
		}
		registry, err := c.loader(path)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, registry)
		return registry, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.Registry), nil
}

// Len returns the number of cached registries
func (c *RegistryCache) Len() int {
	return c.cache.Len()
}

// FileRegistryProvider serves the registry of one data file through a cache
type FileRegistryProvider struct {
	cache *RegistryCache
	path  string
}

// NewFileRegistryProvider creates a provider for the data file at path
func NewFileRegistryProvider(cache *RegistryCache, path string) *FileRegistryProvider {
	return &FileRegistryProvider{cache: cache, path: path}
}

var _ common.RegistryProvider = (*FileRegistryProvider)(nil)

// Registry returns the linked registry of the configured data file
func (p *FileRegistryProvider) Registry(ctx context.Context) (*domain.Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.path == "" {
		return nil, fmt.Errorf("no game data file configured")
	}
	return p.cache.Get(p.path)
}
