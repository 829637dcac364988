package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Registry implements interfaces.Registry on top of a TTL store.
// Mutations and expiry sweeps are serialized; listeners are notified after the store has been updated,
// outside the lock, on the mutating goroutine.
type Registry struct {
	store   interfaces.Cache[domain.Instance]
	clock   interfaces.TimeProvider
	logger  log.Logger
	metrics *Metrics

	mu sync.Mutex
	// apps maps the upper-cased application name to the name it was first registered with.
	// Applications stay known after their last instance is gone.
	apps map[string]string
	// known holds the instances seen by this registry, used to detect lease expiry.
	known map[string]domain.Instance

	listenersMu sync.RWMutex
	listeners   []interfaces.RegistryListener
}

// NewRegistry creates a registry over store. Panics on nil store, clock or logger; metrics may be nil.
func NewRegistry(store interfaces.Cache[domain.Instance], clock interfaces.TimeProvider, logger log.Logger, metrics *Metrics) *Registry {
	return &Registry{
		store:   helpers.NilPanic(store, "service.registry.go: store is required"),
		clock:   helpers.NilPanic(clock, "service.registry.go: clock is required"),
		logger:  log.With(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "registry"),
		metrics: metrics,
		apps:    make(map[string]string),
		known:   make(map[string]domain.Instance),
	}
}

// AddListener subscribes l to registry change events.
func (r *Registry) AddListener(l interfaces.RegistryListener) {
	r.listenersMu.Lock()
	defer r.listenersMu.Unlock()
	r.listeners = append(r.listeners, helpers.NilPanic(l, "service.registry.go: listener is required"))
}

// Register stores instance under its lease. A re-registration keeps the original registration timestamp.
// Returns bad_parameter when a required field is missing.
func (r *Registry) Register(ctx context.Context, instance domain.Instance) error {
	if err := validateInstance(instance); err != nil {
		return err
	}
	if instance.Status == "" {
		instance.Status = domain.StatusUp
	}

	r.mu.Lock()
	if prev, ok := r.known[instance.InstanceID]; ok && !prev.Timestamp.IsZero() {
		instance.Timestamp = prev.Timestamp
	} else {
		instance.Timestamp = r.clock.Now()
	}
	if err := r.store.WriteValue(ctx, instance.InstanceID, instance, instance.TTLMs); err != nil {
		r.mu.Unlock()
		return err
	}
	r.rememberLocked(instance)
	r.mu.Unlock()

	level.Info(r.logger).Log("msg", "instance registered", "app", instance.App, "instance_id", instance.InstanceID, "address", instance.Address())
	r.notify(ctx, domain.RegistryEvent{Type: domain.EventRegistered, ServiceID: instance.App, InstanceID: instance.InstanceID})
	return nil
}

// Renew restarts the lease of a registered instance. Renewal does not notify listeners.
func (r *Registry) Renew(ctx context.Context, instanceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	instance, err := r.store.ReadValue(ctx, instanceID)
	if err != nil {
		return err
	}
	if err := r.store.WriteValue(ctx, instanceID, instance, instance.TTLMs); err != nil {
		return err
	}
	r.rememberLocked(instance)
	return nil
}

// Unregister removes a registered instance.
func (r *Registry) Unregister(ctx context.Context, instanceID string) error {
	r.mu.Lock()
	instance, err := r.store.ReadValue(ctx, instanceID)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if err := r.store.DeleteValue(ctx, instanceID); err != nil {
		r.mu.Unlock()
		return err
	}
	delete(r.known, instanceID)
	r.mu.Unlock()

	level.Info(r.logger).Log("msg", "instance unregistered", "app", instance.App, "instance_id", instanceID)
	r.notify(ctx, domain.RegistryEvent{Type: domain.EventUnregistered, ServiceID: instance.App, InstanceID: instanceID})
	return nil
}

// SetStatus changes the status of a registered instance and restarts its lease.
// Setting the current status again is a no-op without notification.
func (r *Registry) SetStatus(ctx context.Context, instanceID string, status domain.InstanceStatus) error {
	r.mu.Lock()
	instance, err := r.store.ReadValue(ctx, instanceID)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if instance.Status == status {
		r.mu.Unlock()
		return nil
	}
	previous := instance.Status
	instance.Status = status
	if err := r.store.WriteValue(ctx, instanceID, instance, instance.TTLMs); err != nil {
		r.mu.Unlock()
		return err
	}
	r.rememberLocked(instance)
	r.mu.Unlock()

	level.Info(r.logger).Log("msg", "instance status changed", "app", instance.App, "instance_id", instanceID, "from", previous, "to", status)
	r.notify(ctx, domain.RegistryEvent{Type: domain.EventStatusChanged, ServiceID: instance.App, InstanceID: instanceID})
	return nil
}

// GetApplication returns the instances of serviceID ordered by registration time, then instance id.
// The application name matches case-insensitively.
func (r *Registry) GetApplication(ctx context.Context, serviceID string) (*domain.Application, error) {
	all, err := r.Instances(ctx)
	if err != nil {
		return nil, err
	}
	instances := make([]domain.Instance, 0)
	for _, inst := range all {
		if strings.EqualFold(inst.App, serviceID) {
			instances = append(instances, inst)
		}
	}
	if len(instances) > 0 {
		return &domain.Application{Name: instances[0].App, Instances: instances}, nil
	}

	r.mu.Lock()
	name, ok := r.apps[strings.ToUpper(serviceID)]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return &domain.Application{Name: name, Instances: instances}, nil
}

// GetInstancesByID returns the instances of serviceID, empty when unknown.
func (r *Registry) GetInstancesByID(ctx context.Context, serviceID string) ([]domain.Instance, error) {
	app, err := r.GetApplication(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return []domain.Instance{}, nil
	}
	return app.Instances, nil
}

// GetInstancesByAddress returns the instances whose host or host:port equals address.
func (r *Registry) GetInstancesByAddress(ctx context.Context, address string) ([]domain.Instance, error) {
	all, err := r.Instances(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Instance, 0)
	for _, inst := range all {
		if inst.Host == address || inst.Address() == address {
			out = append(out, inst)
		}
	}
	return out, nil
}

// Instances returns every live instance ordered by registration time, then instance id.
func (r *Registry) Instances(ctx context.Context) ([]domain.Instance, error) {
	all, err := r.listStore(ctx)
	if err != nil {
		return nil, err
	}
	sortInstances(all)
	return all, nil
}

func (r *Registry) listStore(ctx context.Context) ([]domain.Instance, error) {
	all, err := r.store.ListAllValues(ctx)
	if err != nil {
		if IsEntityNotFoundError(err) {
			return []domain.Instance{}, nil
		}
		return nil, NewMyError(ErrRegistryUnavailable, "registry storage is unavailable", err)
	}
	return all, nil
}

func (r *Registry) rememberLocked(instance domain.Instance) {
	key := strings.ToUpper(instance.App)
	if _, ok := r.apps[key]; !ok {
		r.apps[key] = instance.App
	}
	r.known[instance.InstanceID] = instance
}

func (r *Registry) notify(ctx context.Context, event domain.RegistryEvent) {
	r.metrics.registryEvent(string(event.Type))

	r.listenersMu.RLock()
	listeners := append([]interfaces.RegistryListener(nil), r.listeners...)
	r.listenersMu.RUnlock()

	for _, l := range listeners {
		l.OnRegistryChange(ctx, event)
	}
}

func validateInstance(instance domain.Instance) error {
	switch {
	case instance.InstanceID == "":
		return NewBadParameterError("instance_id is required", nil)
	case instance.App == "":
		return NewBadParameterError("app is required", nil)
	case instance.Host == "":
		return NewBadParameterError("host is required", nil)
	case instance.Port <= 0 || instance.Port > 65535:
		return NewBadParameterError("port must be between 1 and 65535", nil)
	case instance.TTLMs <= 0:
		return NewBadParameterError("ttl_ms is required", nil)
	}
	return nil
}

func sortInstances(instances []domain.Instance) {
	sort.SliceStable(instances, func(i, j int) bool {
		a, b := instances[i], instances[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.InstanceID < b.InstanceID
	})
}
