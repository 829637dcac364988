package registryhttp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Panics(t *testing.T) {
	t.Run("baseURL_empty", func(t *testing.T) {
		assert.PanicsWithValue(t, "adapters.registryhttp.client.go: baseURL is required", func() {
			NewClient("", &http.Client{})
		})
	})
	t.Run("client_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "adapters.registryhttp.client.go: http client is required", func() {
			NewClient("http://localhost:8080", nil)
		})
	})
}

func TestClient_GetApplication(t *testing.T) {
	ts := helpers.TestNow()
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       *domain.Application
		wantCode   string
	}{
		{
			name:       "success",
			statusCode: http.StatusOK,
			body:       `{"name":"ORDERS","instances":[{"instance_id":"i1","app":"ORDERS","host":"10.0.0.1","port":9000,"status":"UP","metadata":{"base-url":"http://10.0.0.1:9000/"},"timestamp":"2026-02-11T12:00:00Z","ttl_ms":30000}]}`,
			want: &domain.Application{Name: "ORDERS", Instances: []domain.Instance{{
				InstanceID: "i1",
				App:        "ORDERS",
				Host:       "10.0.0.1",
				Port:       9000,
				Status:     domain.StatusUp,
				Metadata:   map[string]string{domain.MetadataBaseURL: "http://10.0.0.1:9000/"},
				Timestamp:  ts,
				TTLMs:      30000,
			}}},
		},
		{
			name:       "known_without_instances",
			statusCode: http.StatusOK,
			body:       `{"name":"ORDERS","instances":[]}`,
			want:       &domain.Application{Name: "ORDERS", Instances: []domain.Instance{}},
		},
		{
			name:       "unknown_status_kept_as_unknown",
			statusCode: http.StatusOK,
			body:       `{"name":"ORDERS","instances":[{"instance_id":"i1","app":"ORDERS","host":"h","port":1,"status":"WEIRD","timestamp":"2026-02-11T12:00:00Z","ttl_ms":1}]}`,
			want: &domain.Application{Name: "ORDERS", Instances: []domain.Instance{{
				InstanceID: "i1", App: "ORDERS", Host: "h", Port: 1, Status: domain.StatusUnknown, Timestamp: ts, TTLMs: 1,
			}}},
		},
		{name: "404_is_unknown", statusCode: http.StatusNotFound, body: `{"error":{"code":"entity_not_found","message":"x"}}`},
		{name: "500_is_registry_unavailable", statusCode: http.StatusInternalServerError, body: `{}`, wantCode: service.ErrRegistryUnavailable},
		{name: "503_is_registry_unavailable", statusCode: http.StatusServiceUnavailable, body: `{}`, wantCode: service.ErrRegistryUnavailable},
		{name: "invalid_json", statusCode: http.StatusOK, body: `not json`, wantCode: service.ErrRegistryUnavailable},
		{name: "missing_instances", statusCode: http.StatusOK, body: `{}`, wantCode: service.ErrRegistryUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				gotPath = r.URL.Path
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got, err := NewClient(server.URL, server.Client()).GetApplication(context.Background(), "orders")
			assert.Equal(t, "/v1/apps/orders", gotPath)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, service.ToMyErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GetInstancesByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/apps/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"name":"ORDERS","instances":[{"instance_id":"i1","app":"ORDERS","host":"h","port":1,"timestamp":"2026-02-11T12:00:00Z","ttl_ms":1}]}`))
	}))
	defer server.Close()
	c := NewClient(server.URL, server.Client())

	got, err := c.GetInstancesByID(context.Background(), "orders")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].InstanceID)

	got, err = c.GetInstancesByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_GetInstancesByAddress(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/instances", r.URL.Path)
		gotQuery = r.URL.Query().Get("address")
		_, _ = w.Write([]byte(`{"instances":[{"instance_id":"gw-1","app":"GATEWAY","host":"gw","port":10010,"status":"UP","timestamp":"2026-02-11T12:00:00Z","ttl_ms":1}]}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL+"/", server.Client()).GetInstancesByAddress(context.Background(), "gw:10010")
	require.NoError(t, err)
	assert.Equal(t, "gw:10010", gotQuery)
	require.Len(t, got, 1)
	assert.Equal(t, "gw-1", got[0].InstanceID)
}

func TestClient_Register(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get(helpers.HeaderRequestID))
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx := helpers.WithRequestID(context.Background(), "req-1")
	err := NewClient(server.URL, server.Client()).Register(ctx, domain.Instance{
		InstanceID: "gw-1",
		App:        domain.GatewayApp,
		Host:       "gw",
		Port:       10010,
		Metadata:   map[string]string{domain.MetadataBaseURL: "http://gw:10010"},
		TTLMs:      90000,
	})
	require.NoError(t, err)
	assert.Equal(t, "gw-1", got["instance_id"])
	assert.Equal(t, "GATEWAY", got["app"])
	assert.Equal(t, float64(10010), got["port"])
	assert.Equal(t, float64(90000), got["ttl_ms"])
	assert.NotContains(t, got, "status")
	assert.NotContains(t, got, "timestamp")
}

func TestClient_Register_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"bad_parameter","message":"port is required"}}`))
	}))
	defer server.Close()

	err := NewClient(server.URL, server.Client()).Register(context.Background(), domain.Instance{InstanceID: "x"})
	require.Error(t, err)
	assert.True(t, service.IsBadParameterError(err))
	assert.Equal(t, "port is required", service.ToMyError(err).Message)
}

func TestClient_HeartbeatUnregister(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client) error
		statusCode int
		wantPath   string
		wantCode   string
	}{
		{name: "heartbeat_ok", call: func(c *Client) error { return c.Heartbeat(context.Background(), "gw-1") }, statusCode: http.StatusOK, wantPath: "/v1/heartbeat/gw-1"},
		{name: "heartbeat_unknown", call: func(c *Client) error { return c.Heartbeat(context.Background(), "gw-1") }, statusCode: http.StatusNotFound, wantPath: "/v1/heartbeat/gw-1", wantCode: service.ErrEntityNotFound},
		{name: "heartbeat_5xx", call: func(c *Client) error { return c.Heartbeat(context.Background(), "gw-1") }, statusCode: http.StatusBadGateway, wantPath: "/v1/heartbeat/gw-1", wantCode: service.ErrRegistryUnavailable},
		{name: "unregister_ok", call: func(c *Client) error { return c.Unregister(context.Background(), "gw-1") }, statusCode: http.StatusOK, wantPath: "/v1/unregister/gw-1"},
		{name: "unregister_unknown_ok", call: func(c *Client) error { return c.Unregister(context.Background(), "gw-1") }, statusCode: http.StatusNotFound, wantPath: "/v1/unregister/gw-1"},
		{name: "unregister_path_escaped", call: func(c *Client) error { return c.Unregister(context.Background(), "gw/1") }, statusCode: http.StatusOK, wantPath: "/v1/unregister/gw%2F1"},
		{name: "unregister_conflict", call: func(c *Client) error { return c.Unregister(context.Background(), "gw-1") }, statusCode: http.StatusConflict, wantPath: "/v1/unregister/gw-1", wantCode: service.ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				gotPath = r.URL.RawPath
				if gotPath == "" {
					gotPath = r.URL.Path
				}
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			err := tt.call(NewClient(server.URL, server.Client()))
			assert.Equal(t, tt.wantPath, gotPath)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, service.ToMyErrorCode(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c := NewClient(addr, &http.Client{Timeout: time.Second})
	_, err := c.GetApplication(context.Background(), "orders")
	assert.True(t, service.IsRegistryUnavailableError(err))
	assert.True(t, service.IsTransient(err))
}
