// Package handlers contains the HTTP handlers of mydiscoverer and mygateway.
package handlers

import (
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

// InstanceStatus mirrors the InstanceStatus schema of api/discovery.openapi.yaml.
type InstanceStatus string

// RegisterRequest is the body of POST /v1/register.
type RegisterRequest struct {
	InstanceId string             `json:"instance_id"`
	App        string             `json:"app"`
	Host       string             `json:"host"`
	Port       int                `json:"port"`
	Status     *InstanceStatus    `json:"status,omitempty"`
	Metadata   *map[string]string `json:"metadata,omitempty"`
	TtlMs      int                `json:"ttl_ms"`
}

// StatusRequest is the body of PUT /v1/instances/{instance_id}/status.
type StatusRequest struct {
	Status InstanceStatus `json:"status"`
}

// InstanceInfo is one instance in discovery responses.
type InstanceInfo struct {
	InstanceId string             `json:"instance_id"`
	App        string             `json:"app"`
	Host       string             `json:"host"`
	Port       int                `json:"port"`
	Status     InstanceStatus     `json:"status"`
	Metadata   *map[string]string `json:"metadata,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	TtlMs      int                `json:"ttl_ms"`
}

// ApplicationResponse is the body of GET /v1/apps/{app_id}.
type ApplicationResponse struct {
	Name      string         `json:"name"`
	Instances []InstanceInfo `json:"instances"`
}

// InstancesResponse is the body of GET /v1/instances.
type InstancesResponse struct {
	Instances []InstanceInfo `json:"instances"`
}

// GetInstancesParams are the query parameters of GET /v1/instances.
type GetInstancesParams struct {
	Address *string `query:"address"`
}

// DiscoveryServerInterface is the discovery API.
type DiscoveryServerInterface interface {
	// (POST /v1/register)
	RegisterInstance(ctx echo.Context) error
	// (POST /v1/heartbeat/{instance_id})
	RenewInstance(ctx echo.Context, instanceId string) error
	// (POST /v1/unregister/{instance_id})
	UnregisterInstance(ctx echo.Context, instanceId string) error
	// (PUT /v1/instances/{instance_id}/status)
	SetInstanceStatus(ctx echo.Context, instanceId string) error
	// (GET /v1/apps/{app_id})
	GetApplication(ctx echo.Context, appId string) error
	// (GET /v1/instances)
	GetInstances(ctx echo.Context, params GetInstancesParams) error
}

// RegisterDiscoveryHandlers adds the discovery routes to router.
func RegisterDiscoveryHandlers(router *echo.Echo, si DiscoveryServerInterface) {
	router.POST("/v1/register", si.RegisterInstance)
	router.POST("/v1/heartbeat/:instance_id", func(c echo.Context) error {
		return si.RenewInstance(c, pathParam(c, "instance_id"))
	})
	router.POST("/v1/unregister/:instance_id", func(c echo.Context) error {
		return si.UnregisterInstance(c, pathParam(c, "instance_id"))
	})
	router.PUT("/v1/instances/:instance_id/status", func(c echo.Context) error {
		return si.SetInstanceStatus(c, pathParam(c, "instance_id"))
	})
	router.GET("/v1/apps/:app_id", func(c echo.Context) error {
		return si.GetApplication(c, pathParam(c, "app_id"))
	})
	router.GET("/v1/instances", func(c echo.Context) error {
		var params GetInstancesParams
		if v := c.QueryParam("address"); v != "" {
			params.Address = &v
		}
		return si.GetInstances(c, params)
	})
}

// pathParam returns the unescaped path parameter; echo keeps escapes when the request has a raw path.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
