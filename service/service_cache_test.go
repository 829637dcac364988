package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mymesh/domain"
	"mymesh/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCache(t *testing.T) {
	client := &mock.RegistryClientMock{
		GetApplicationFunc: func(ctx context.Context, serviceID string) (*domain.Application, error) {
			switch serviceID {
			case "svc", "other":
				return &domain.Application{Name: serviceID, Instances: []domain.Instance{instance(serviceID+"-1", serviceID)}}, nil
			case "broken":
				return nil, NewRegistryUnavailableError("down", nil)
			default:
				return nil, nil
			}
		},
	}
	c := NewServiceCache(client, time.Hour, log.NewNopLogger())
	ctx := context.Background()

	app, err := c.Get(ctx, "svc")
	require.NoError(t, err)
	assert.Equal(t, "svc", app.Name)
	_, err = c.Get(ctx, "SVC")
	require.NoError(t, err)
	assert.Len(t, client.GetApplicationCalls(), 1, "second read is served from cache")

	_, err = c.Get(ctx, "other")
	require.NoError(t, err)
	c.Evict("svc")
	_, err = c.Get(ctx, "svc")
	require.NoError(t, err)
	_, err = c.Get(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, client.GetApplicationCalls(), 3, "only the evicted service is read again")

	c.EvictAll()
	_, _ = c.Get(ctx, "svc")
	_, _ = c.Get(ctx, "other")
	assert.Len(t, client.GetApplicationCalls(), 5)

	_, err = c.Get(ctx, "missing")
	assert.True(t, IsEntityNotFoundError(err))
	_, err = c.Get(ctx, "missing")
	assert.True(t, IsEntityNotFoundError(err))
	assert.Len(t, client.GetApplicationCalls(), 7, "unknown services are not cached")

	_, err = c.Get(ctx, "broken")
	assert.True(t, IsRegistryUnavailableError(err))
}

func TestServiceCache_EvictionDuringRead(t *testing.T) {
	tests := []struct {
		name  string
		evict func(c *ServiceCache)
	}{
		{name: "evict service", evict: func(c *ServiceCache) { c.Evict("svc") }},
		{name: "evict all", evict: func(c *ServiceCache) { c.EvictAll() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c *ServiceCache
			version := 0
			client := &mock.RegistryClientMock{
				GetApplicationFunc: func(ctx context.Context, serviceID string) (*domain.Application, error) {
					version++
					app := &domain.Application{Name: fmt.Sprintf("v%d", version)}
					if version == 1 {
						// the invalidation arrives while the stale view is in flight
						tt.evict(c)
					}
					return app, nil
				},
			}
			c = NewServiceCache(client, time.Hour, log.NewNopLogger())
			ctx := context.Background()

			app, err := c.Get(ctx, "svc")
			require.NoError(t, err)
			assert.Equal(t, "v1", app.Name)

			app, err = c.Get(ctx, "svc")
			require.NoError(t, err)
			assert.Equal(t, "v2", app.Name, "stale read was not cached")

			app, err = c.Get(ctx, "svc")
			require.NoError(t, err)
			assert.Equal(t, "v2", app.Name)
			assert.Len(t, client.GetApplicationCalls(), 2)
		})
	}
}

func TestNewServiceCache_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.service_cache.go: registry is required", func() {
		NewServiceCache(nil, time.Minute, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.service_cache.go: logger is required", func() {
		NewServiceCache(&mock.RegistryClientMock{}, time.Minute, nil)
	})
}
