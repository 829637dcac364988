package service

import (
	"context"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"
)

// RegistryRouterSource implements interfaces.RouterSource by reading the router application from the registry.
type RegistryRouterSource struct {
	registry interfaces.RegistryClient
	app      string
}

// NewRegistryRouterSource returns a source listing the instances of app (domain.GatewayApp in production).
func NewRegistryRouterSource(registry interfaces.RegistryClient, app string) *RegistryRouterSource {
	return &RegistryRouterSource{
		registry: helpers.NilPanic(registry, "service.router_source.go: registry is required"),
		app:      helpers.StrPanic(app, "service.router_source.go: app is required"),
	}
}

// Routers returns the registered router instances, empty when the router application is unknown.
func (s *RegistryRouterSource) Routers(ctx context.Context) ([]domain.Instance, error) {
	app, err := s.registry.GetApplication(ctx, s.app)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return []domain.Instance{}, nil
	}
	return app.Instances, nil
}
