package interfaces

import (
	"context"

	"mymesh/domain"
)

// RegistryClient is the read side of the service registry.
//
// Implemented by service.Registry (in-process) and adapters/registryhttp.Client (remote).
//
//go:generate moq -stub -out mock/registry_client.go -pkg mock . RegistryClient
type RegistryClient interface {
	// GetApplication returns the application registered under serviceID.
	// Returns (nil, nil) when the registry does not know the application and an Application with
	// an empty Instances slice when it is known but has nothing registered.
	// Errors coded registry_unavailable mean the registry could not be reached.
	GetApplication(ctx context.Context, serviceID string) (*domain.Application, error)

	// GetInstancesByID returns the instances of serviceID; empty when unknown.
	GetInstancesByID(ctx context.Context, serviceID string) ([]domain.Instance, error)

	// GetInstancesByAddress returns all instances whose host or host:port equals address.
	GetInstancesByAddress(ctx context.Context, address string) ([]domain.Instance, error)
}

// RegistryAccessor hands out the current registry client. Client may return nil while the registry is not configured.
type RegistryAccessor interface {
	Client() RegistryClient
}

// Registry is the full registry: reads plus lifecycle mutations.
//
// Implemented by service.Registry. Called from handlers.DiscoveryServer.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	RegistryClient

	// Instances returns every registered instance in registry order.
	Instances(ctx context.Context) ([]domain.Instance, error)
	// Register stores the instance with its TTL and notifies listeners.
	Register(ctx context.Context, instance domain.Instance) error
	// Renew extends the lease of a registered instance. entity_not_found when it is not registered.
	Renew(ctx context.Context, instanceID string) error
	// Unregister removes the instance and notifies listeners. entity_not_found when it is not registered.
	Unregister(ctx context.Context, instanceID string) error
	// SetStatus changes the lifecycle status and notifies listeners when it actually changed.
	SetStatus(ctx context.Context, instanceID string, status domain.InstanceStatus) error
}

// RegistryListener is told about every change of the registry's view of a service.
// OnRegistryChange runs synchronously on the mutating goroutine; implementations must not block for long.
//
//go:generate moq -stub -out mock/registry_listener.go -pkg mock . RegistryListener
type RegistryListener interface {
	OnRegistryChange(ctx context.Context, event domain.RegistryEvent)
}

// RegistrationClient lets an instance manage its own registration.
//
// Implemented by adapters/registryhttp.Client. Called from service.SelfRegistration.
//
//go:generate moq -stub -out mock/registration_client.go -pkg mock . RegistrationClient
type RegistrationClient interface {
	Register(ctx context.Context, instance domain.Instance) error
	Heartbeat(ctx context.Context, instanceID string) error
	Unregister(ctx context.Context, instanceID string) error
}
