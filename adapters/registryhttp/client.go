// Package registryhttp talks to the discovery service over its HTTP API.
package registryhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/service"
)

// DefaultTimeout bounds every call to the discovery service.
const DefaultTimeout = 5 * time.Second

// Client implements interfaces.RegistryClient and interfaces.RegistrationClient against the discovery service:
// GET /v1/apps/{app_id}, GET /v1/instances, POST /v1/register, POST /v1/heartbeat/{instance_id} and
// POST /v1/unregister/{instance_id}. Transport failures and 5xx answers are coded registry_unavailable.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewClient creates a Client for baseURL (e.g. http://mydiscoverer:8080). Panics on empty baseURL or nil client.
func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(helpers.StrPanic(baseURL, "adapters.registryhttp.client.go: baseURL is required"), "/"),
		client:  helpers.NilPanic(client, "adapters.registryhttp.client.go: http client is required"),
		timeout: DefaultTimeout,
	}
}

type instanceInfo struct {
	InstanceID string            `json:"instance_id"`
	App        string            `json:"app"`
	Host       string            `json:"host"`
	Port       int               `json:"port"`
	Status     string            `json:"status,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Timestamp  *time.Time        `json:"timestamp,omitempty"`
	TTLMs      int               `json:"ttl_ms"`
}

type applicationResponse struct {
	Name      string         `json:"name"`
	Instances []instanceInfo `json:"instances"`
}

type instancesResponse struct {
	Instances []instanceInfo `json:"instances"`
}

// GetApplication performs GET /v1/apps/{app_id}. 404 means the application is unknown and yields (nil, nil).
func (c *Client) GetApplication(ctx context.Context, serviceID string) (*domain.Application, error) {
	var raw applicationResponse
	status, err := c.do(ctx, http.MethodGet, "/v1/apps/"+url.PathEscape(serviceID), nil, &raw)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if raw.Instances == nil {
		return nil, service.NewRegistryUnavailableError("discovery response missing instances field", nil)
	}
	return &domain.Application{Name: raw.Name, Instances: toInstances(raw.Instances)}, nil
}

// GetInstancesByID returns the instances of serviceID; empty when the application is unknown.
func (c *Client) GetInstancesByID(ctx context.Context, serviceID string) ([]domain.Instance, error) {
	app, err := c.GetApplication(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return []domain.Instance{}, nil
	}
	return app.Instances, nil
}

// GetInstancesByAddress performs GET /v1/instances?address=.
func (c *Client) GetInstancesByAddress(ctx context.Context, address string) ([]domain.Instance, error) {
	var raw instancesResponse
	status, err := c.do(ctx, http.MethodGet, "/v1/instances?address="+url.QueryEscape(address), nil, &raw)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || raw.Instances == nil {
		return []domain.Instance{}, nil
	}
	return toInstances(raw.Instances), nil
}

// Register performs POST /v1/register.
func (c *Client) Register(ctx context.Context, instance domain.Instance) error {
	body := instanceInfo{
		InstanceID: instance.InstanceID,
		App:        instance.App,
		Host:       instance.Host,
		Port:       instance.Port,
		Status:     string(instance.Status),
		Metadata:   instance.Metadata,
		TTLMs:      instance.TTLMs,
	}
	status, err := c.do(ctx, http.MethodPost, "/v1/register", body, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return service.NewRegistryUnavailableError("discovery register endpoint not found", nil)
	}
	return nil
}

// Heartbeat performs POST /v1/heartbeat/{instance_id}. entity_not_found when the registry does not know the instance.
func (c *Client) Heartbeat(ctx context.Context, instanceID string) error {
	status, err := c.do(ctx, http.MethodPost, "/v1/heartbeat/"+url.PathEscape(instanceID), nil, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return service.NewEntityNotFoundError("instance is not registered", nil)
	}
	return nil
}

// Unregister performs POST /v1/unregister/{instance_id}. An instance the registry does not know counts as unregistered.
func (c *Client) Unregister(ctx context.Context, instanceID string) error {
	_, err := c.do(ctx, http.MethodPost, "/v1/unregister/"+url.PathEscape(instanceID), nil, nil)
	return err
}

// do sends the request and decodes a 2xx body into out when out is not nil.
// Returns the status for 2xx and 404; everything else is an error.
func (c *Client) do(ctx context.Context, method, path string, in any, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, service.NewInternalServerError("marshal request", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, service.NewInternalServerError("build request", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := helpers.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(helpers.HeaderRequestID, id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, service.NewRegistryUnavailableError("discovery service is not reachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	case resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, service.NewRegistryUnavailableError(fmt.Sprintf("discovery returned %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusBadRequest:
		return 0, service.NewBadParameterError(readMessage(resp.Body, "discovery rejected the request"), nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, service.NewInternalServerError(fmt.Sprintf("discovery returned %d", resp.StatusCode), nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, service.NewRegistryUnavailableError("decode discovery response", err)
	}
	return resp.StatusCode, nil
}

// readMessage extracts the message of an ErrResponse body, falling back to def.
func readMessage(r io.Reader, def string) string {
	var raw struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil || raw.Error == nil || raw.Error.Message == "" {
		return def
	}
	return raw.Error.Message
}

func toInstances(raw []instanceInfo) []domain.Instance {
	out := make([]domain.Instance, 0, len(raw))
	for _, r := range raw {
		status, ok := domain.ParseInstanceStatus(r.Status)
		if !ok {
			status = domain.StatusUnknown
		}
		inst := domain.Instance{
			InstanceID: r.InstanceID,
			App:        r.App,
			Host:       r.Host,
			Port:       r.Port,
			Status:     status,
			Metadata:   r.Metadata,
			TTLMs:      r.TTLMs,
		}
		if r.Timestamp != nil {
			inst.Timestamp = *r.Timestamp
		}
		out = append(out, inst)
	}
	return out
}
