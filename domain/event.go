package domain

// RegistryEventType names what happened to a registry entry.
type RegistryEventType string

const (
	EventRegistered    RegistryEventType = "registered"
	EventUnregistered  RegistryEventType = "unregistered"
	EventStatusChanged RegistryEventType = "status_changed"
	EventExpired       RegistryEventType = "expired"
)

// RegistryEvent is emitted after the registry's view of a service has changed.
type RegistryEvent struct {
	Type       RegistryEventType
	ServiceID  string
	InstanceID string
}
