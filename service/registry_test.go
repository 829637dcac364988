package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-memory interfaces.Cache without real TTL handling; expire simulates a lapsed lease.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]domain.Instance
	ttls  map[string]int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]domain.Instance{}, ttls: map[string]int{}}
}

func (c *memoryCache) WriteValue(ctx context.Context, key string, item domain.Instance, ttlMs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item
	c.ttls[key] = ttlMs
	return nil
}

func (c *memoryCache) ReadValue(ctx context.Context, key string) (domain.Instance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return domain.Instance{}, NewEntityNotFoundError("no value", nil)
	}
	return item, nil
}

func (c *memoryCache) ListAllValues(ctx context.Context) ([]domain.Instance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return nil, NewEntityNotFoundError("no values", nil)
	}
	out := make([]domain.Instance, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	return out, nil
}

func (c *memoryCache) DeleteValue(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	delete(c.ttls, key)
	return nil
}

func (c *memoryCache) expire(key string) {
	_ = c.DeleteValue(context.Background(), key)
}

// tickingClock advances one second per call.
func tickingClock() *mock.TimeProviderMock {
	var mu sync.Mutex
	now := helpers.TestNow()
	return &mock.TimeProviderMock{
		NowFunc: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			now = now.Add(time.Second)
			return now
		},
	}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []domain.RegistryEvent
}

func (r *eventRecorder) listener() *mock.RegistryListenerMock {
	return &mock.RegistryListenerMock{
		OnRegistryChangeFunc: func(ctx context.Context, event domain.RegistryEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, event)
		},
	}
}

func (r *eventRecorder) all() []domain.RegistryEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.RegistryEvent(nil), r.events...)
}

func newTestRegistry(store *memoryCache) (*Registry, *eventRecorder) {
	reg := NewRegistry(store, tickingClock(), log.NewNopLogger(), nil)
	rec := &eventRecorder{}
	reg.AddListener(rec.listener())
	return reg, rec
}

func instance(id, app string) domain.Instance {
	return domain.Instance{InstanceID: id, App: app, Host: id + ".host", Port: 8080, TTLMs: 30000}
}

func TestNewRegistry_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.registry.go: store is required", func() {
		NewRegistry(nil, tickingClock(), log.NewNopLogger(), nil)
	})
	assert.PanicsWithValue(t, "service.registry.go: clock is required", func() {
		NewRegistry(newMemoryCache(), nil, log.NewNopLogger(), nil)
	})
	assert.PanicsWithValue(t, "service.registry.go: logger is required", func() {
		NewRegistry(newMemoryCache(), tickingClock(), nil, nil)
	})
}

func TestRegistry_Register_Validation(t *testing.T) {
	reg, rec := newTestRegistry(newMemoryCache())
	tests := map[string]func(*domain.Instance){
		"instance_id": func(i *domain.Instance) { i.InstanceID = "" },
		"app":         func(i *domain.Instance) { i.App = "" },
		"host":        func(i *domain.Instance) { i.Host = "" },
		"port":        func(i *domain.Instance) { i.Port = 0 },
		"port range":  func(i *domain.Instance) { i.Port = 70000 },
		"ttl":         func(i *domain.Instance) { i.TTLMs = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			inst := instance("svc-1", "svc")
			mutate(&inst)
			err := reg.Register(context.Background(), inst)
			assert.True(t, IsBadParameterError(err))
		})
	}
	assert.Empty(t, rec.all())
}

func TestRegistry_Lifecycle(t *testing.T) {
	store := newMemoryCache()
	reg, rec := newTestRegistry(store)
	ctx := context.Background()

	require.NoError(t, reg.Register(ctx, instance("svc-b", "SVC")))
	require.NoError(t, reg.Register(ctx, instance("svc-a", "SVC")))
	assert.Equal(t, 30000, store.ttls["svc-a"])

	app, err := reg.GetApplication(ctx, "svc")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, "SVC", app.Name)
	require.Len(t, app.Instances, 2)
	assert.Equal(t, "svc-b", app.Instances[0].InstanceID, "earlier registration first")
	assert.Equal(t, domain.StatusUp, app.Instances[0].Status)

	require.NoError(t, reg.SetStatus(ctx, "svc-b", domain.StatusOutOfService))
	require.NoError(t, reg.SetStatus(ctx, "svc-b", domain.StatusOutOfService))
	require.NoError(t, reg.Renew(ctx, "svc-a"))
	require.NoError(t, reg.Unregister(ctx, "svc-b"))
	require.NoError(t, reg.Unregister(ctx, "svc-a"))

	assert.Equal(t, []domain.RegistryEvent{
		{Type: domain.EventRegistered, ServiceID: "SVC", InstanceID: "svc-b"},
		{Type: domain.EventRegistered, ServiceID: "SVC", InstanceID: "svc-a"},
		{Type: domain.EventStatusChanged, ServiceID: "SVC", InstanceID: "svc-b"},
		{Type: domain.EventUnregistered, ServiceID: "SVC", InstanceID: "svc-b"},
		{Type: domain.EventUnregistered, ServiceID: "SVC", InstanceID: "svc-a"},
	}, rec.all())

	app, err = reg.GetApplication(ctx, "svc")
	require.NoError(t, err)
	require.NotNil(t, app, "application stays known")
	assert.Empty(t, app.Instances)

	app, err = reg.GetApplication(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestRegistry_Register_KeepsTimestampOnReRegistration(t *testing.T) {
	reg, _ := newTestRegistry(newMemoryCache())
	ctx := context.Background()

	require.NoError(t, reg.Register(ctx, instance("svc-1", "svc")))
	require.NoError(t, reg.Register(ctx, instance("svc-2", "svc")))
	require.NoError(t, reg.Register(ctx, instance("svc-1", "svc")))

	all, err := reg.GetInstancesByID(ctx, "svc")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "svc-1", all[0].InstanceID)
	assert.Equal(t, helpers.TestNow().Add(time.Second), all[0].Timestamp)
}

func TestRegistry_Ordering_TieBreaksOnInstanceID(t *testing.T) {
	store := newMemoryCache()
	fixed := &mock.TimeProviderMock{NowFunc: helpers.TestNow}
	reg := NewRegistry(store, fixed, log.NewNopLogger(), nil)
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, reg.Register(ctx, instance(id, "svc")))
	}

	all, err := reg.Instances(ctx)
	require.NoError(t, err)
	ids := []string{all[0].InstanceID, all[1].InstanceID, all[2].InstanceID}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRegistry_MissingInstance(t *testing.T) {
	reg, rec := newTestRegistry(newMemoryCache())
	ctx := context.Background()

	assert.True(t, IsEntityNotFoundError(reg.Renew(ctx, "nope")))
	assert.True(t, IsEntityNotFoundError(reg.Unregister(ctx, "nope")))
	assert.True(t, IsEntityNotFoundError(reg.SetStatus(ctx, "nope", domain.StatusDown)))
	assert.Empty(t, rec.all())

	ids, err := reg.GetInstancesByID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRegistry_GetInstancesByAddress(t *testing.T) {
	reg, _ := newTestRegistry(newMemoryCache())
	ctx := context.Background()
	require.NoError(t, reg.Register(ctx, instance("svc-1", "svc")))
	other := instance("svc-2", "svc")
	other.Port = 9090
	other.Host = "svc-1.host"
	require.NoError(t, reg.Register(ctx, other))
	require.NoError(t, reg.Register(ctx, instance("svc-3", "svc")))

	byHost, err := reg.GetInstancesByAddress(ctx, "svc-1.host")
	require.NoError(t, err)
	assert.Len(t, byHost, 2)

	byHostPort, err := reg.GetInstancesByAddress(ctx, "svc-1.host:9090")
	require.NoError(t, err)
	require.Len(t, byHostPort, 1)
	assert.Equal(t, "svc-2", byHostPort[0].InstanceID)
}

func TestRegistry_StoreFailure(t *testing.T) {
	store := &mock.CacheMock[domain.Instance]{
		ListAllValuesFunc: func(ctx context.Context) ([]domain.Instance, error) {
			return nil, NewInternalServerError("redis down", assert.AnError)
		},
		WriteValueFunc: func(ctx context.Context, key string, item domain.Instance, ttlMs int) error {
			return NewInternalServerError("redis down", assert.AnError)
		},
	}
	reg := NewRegistry(store, tickingClock(), log.NewNopLogger(), nil)
	rec := &eventRecorder{}
	reg.AddListener(rec.listener())

	_, err := reg.GetApplication(context.Background(), "svc")
	assert.True(t, IsRegistryUnavailableError(err))

	err = reg.Register(context.Background(), instance("svc-1", "svc"))
	assert.True(t, IsInternalServerError(err))
	assert.Empty(t, rec.all())
}

func TestRegistry_Sweep(t *testing.T) {
	store := newMemoryCache()
	reg, rec := newTestRegistry(store)
	ctx := context.Background()

	require.NoError(t, reg.Register(ctx, instance("svc-1", "svc")))
	require.NoError(t, reg.Register(ctx, instance("svc-2", "svc")))
	require.NoError(t, reg.Register(ctx, instance("gw-1", domain.GatewayApp)))
	require.NoError(t, reg.Unregister(ctx, "gw-1"))

	// Registered by another replica sharing the store.
	foreign := instance("svc-3", "svc")
	require.NoError(t, store.WriteValue(ctx, foreign.InstanceID, foreign, foreign.TTLMs))

	store.expire("svc-2")
	require.NoError(t, reg.Sweep(ctx))

	store.expire("svc-3")
	require.NoError(t, reg.Sweep(ctx))
	require.NoError(t, reg.Sweep(ctx))

	events := rec.all()
	require.Len(t, events, 6)
	assert.Equal(t, domain.RegistryEvent{Type: domain.EventExpired, ServiceID: "svc", InstanceID: "svc-2"}, events[4])
	assert.Equal(t, domain.RegistryEvent{Type: domain.EventExpired, ServiceID: "svc", InstanceID: "svc-3"}, events[5])
}

func TestRegistry_RunExpirySweeper(t *testing.T) {
	store := newMemoryCache()
	reg, rec := newTestRegistry(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, reg.Register(ctx, instance("svc-1", "svc")))
	store.expire("svc-1")

	done := make(chan struct{})
	go func() {
		reg.RunExpirySweeper(ctx, 5*time.Millisecond)
		close(done)
	}()
	require.Eventually(t, func() bool { return len(rec.all()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, domain.EventExpired, rec.all()[1].Type)
}
