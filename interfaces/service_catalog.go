package interfaces

import (
	"context"

	"mymesh/domain"
)

// ServiceCatalog is the router's read-through view of registered services.
//
// Implemented by service.ServiceCache. Called from handlers.GatewayServer.
//
//go:generate moq -stub -out mock/service_catalog.go -pkg mock . ServiceCatalog
type ServiceCatalog interface {
	// Get returns the application, entity_not_found when the registry does not know it.
	Get(ctx context.Context, serviceID string) (*domain.Application, error)
	// Evict drops the cached entry for serviceID.
	Evict(serviceID string)
	// EvictAll drops every cached entry.
	EvictAll()
}
