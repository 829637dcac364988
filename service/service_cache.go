package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	gocache "github.com/patrickmn/go-cache"
)

// DefaultServiceCacheTTL is how long a router keeps a service's registry view without an invalidation.
const DefaultServiceCacheTTL = time.Minute

// ServiceCache implements interfaces.ServiceCatalog: a read-through cache of registry applications
// that the registry's invalidation broadcast clears.
type ServiceCache struct {
	registry interfaces.RegistryClient
	cache    *gocache.Cache
	logger   log.Logger

	// mu orders fills against evictions; a fill is dropped when an eviction for its key
	// (or EvictAll) happened while the registry was being read.
	mu          sync.Mutex
	generations map[string]uint64
	flushes     uint64
}

// NewServiceCache creates a cache in front of registry whose entries live for ttl (DefaultServiceCacheTTL when not positive).
func NewServiceCache(registry interfaces.RegistryClient, ttl time.Duration, logger log.Logger) *ServiceCache {
	if ttl <= 0 {
		ttl = DefaultServiceCacheTTL
	}
	return &ServiceCache{
		registry: helpers.NilPanic(registry, "service.service_cache.go: registry is required"),
		cache:       gocache.New(ttl, 2*ttl),
		generations: make(map[string]uint64),
		logger:   log.With(helpers.NilPanic(logger, "service.service_cache.go: logger is required"), "component", "service_cache"),
	}
}

// Get returns the cached application or reads it from the registry. Unknown services are not cached.
func (c *ServiceCache) Get(ctx context.Context, serviceID string) (*domain.Application, error) {
	key := strings.ToLower(serviceID)
	if v, found := c.cache.Get(key); found {
		if app, ok := v.(*domain.Application); ok {
			return app, nil
		}
	}

	c.mu.Lock()
	generation, flushes := c.generations[key], c.flushes
	c.mu.Unlock()

	app, err := c.registry.GetApplication(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, NewEntityNotFoundError(fmt.Sprintf("service '%s' is not registered", serviceID), nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != generation || c.flushes != flushes {
		level.Debug(c.logger).Log("msg", "service evicted during read, not cached", "service_id", serviceID)
		return app, nil
	}
	c.cache.SetDefault(key, app)
	return app, nil
}

// Evict drops the entry for serviceID.
func (c *ServiceCache) Evict(serviceID string) {
	key := strings.ToLower(serviceID)
	c.mu.Lock()
	c.generations[key]++
	c.cache.Delete(key)
	c.mu.Unlock()
	level.Debug(c.logger).Log("msg", "service evicted", "service_id", serviceID)
}

// EvictAll drops every entry.
func (c *ServiceCache) EvictAll() {
	c.mu.Lock()
	c.flushes++
	clear(c.generations)
	c.cache.Flush()
	c.mu.Unlock()
	level.Debug(c.logger).Log("msg", "all services evicted")
}
