package interfaces

import (
	"context"

	"mymesh/domain"
)

// RouterSource enumerates the edge routers currently registered.
//
// Implemented by service.RegistryRouterSource and adapters/dnsrouters.Source.
// Called from service.Broadcaster.NotifyAll.
//
//go:generate moq -stub -out mock/router_source.go -pkg mock . RouterSource
type RouterSource interface {
	// Routers returns the known router instances; an empty slice when none are registered.
	Routers(ctx context.Context) ([]domain.Instance, error)
}
