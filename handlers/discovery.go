package handlers

import (
	"fmt"
	"net/http"

	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// DiscoveryServer implements DiscoveryServerInterface over the registry.
type DiscoveryServer struct {
	registry interfaces.Registry
	logger   log.Logger
}

// NewDiscoveryServer creates a new DiscoveryServer. Panics on nil registry or logger.
func NewDiscoveryServer(registry interfaces.Registry, logger log.Logger) *DiscoveryServer {
	logger = log.WithPrefix(helpers.NilPanic(logger, "handlers.discovery.go: logger is required"), "component", "DiscoveryServer")
	return &DiscoveryServer{
		registry: helpers.NilPanic(registry, "handlers.discovery.go: registry is required"),
		logger:   logger,
	}
}

// RegisterInstance (POST /v1/register) registers the instance in the body. 200 on success, 400 on parse/validation error.
func (h *DiscoveryServer) RegisterInstance(ectx echo.Context) error {
	var req RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	instance, err := fromRegisterRequest(req)
	if err != nil {
		return fmt.Errorf("registerInstance failed to convert request to instance, err: %w", err)
	}

	if err := h.registry.Register(ectx.Request().Context(), instance); err != nil {
		return fmt.Errorf("registerInstance failed to register instance, err: %w", err)
	}

	return ectx.NoContent(http.StatusOK)
}

// RenewInstance (POST /v1/heartbeat/{instance_id}) extends the instance lease. 404 when the instance is unknown.
func (h *DiscoveryServer) RenewInstance(ectx echo.Context, instanceId string) error {
	if err := h.registry.Renew(ectx.Request().Context(), instanceId); err != nil {
		return fmt.Errorf("renewInstance failed, err: %w", err)
	}
	return ectx.NoContent(http.StatusOK)
}

// UnregisterInstance (POST /v1/unregister/{instance_id}) removes the instance. 404 when the instance is unknown.
func (h *DiscoveryServer) UnregisterInstance(ectx echo.Context, instanceId string) error {
	if err := h.registry.Unregister(ectx.Request().Context(), instanceId); err != nil {
		return fmt.Errorf("unregisterInstance failed, err: %w", err)
	}
	return ectx.NoContent(http.StatusOK)
}

// SetInstanceStatus (PUT /v1/instances/{instance_id}/status) changes the instance status.
func (h *DiscoveryServer) SetInstanceStatus(ectx echo.Context, instanceId string) error {
	var req StatusRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	if req.Status == "" {
		return service.NewBadParameterError("status is required", nil)
	}
	status, err := fromInstanceStatus(string(req.Status))
	if err != nil {
		return err
	}

	if err := h.registry.SetStatus(ectx.Request().Context(), instanceId, status); err != nil {
		return fmt.Errorf("setInstanceStatus failed, err: %w", err)
	}
	return ectx.NoContent(http.StatusOK)
}

// GetApplication (GET /v1/apps/{app_id}) returns the application with its instances. 404 when it is unknown.
func (h *DiscoveryServer) GetApplication(ectx echo.Context, appId string) error {
	app, err := h.registry.GetApplication(ectx.Request().Context(), appId)
	if err != nil {
		return fmt.Errorf("getApplication failed, err: %w", err)
	}
	if app == nil {
		return service.NewEntityNotFoundError("application "+appId+" is not registered", nil)
	}
	return ectx.JSON(http.StatusOK, toApplicationResponse(*app))
}

// GetInstances (GET /v1/instances) returns all instances, or those at the given address.
func (h *DiscoveryServer) GetInstances(ectx echo.Context, params GetInstancesParams) error {
	ctx := ectx.Request().Context()
	if params.Address != nil {
		instances, err := h.registry.GetInstancesByAddress(ctx, *params.Address)
		if err != nil {
			return fmt.Errorf("getInstances failed to look up address, err: %w", err)
		}
		return ectx.JSON(http.StatusOK, toInstancesResponse(instances))
	}

	instances, err := h.registry.Instances(ctx)
	if err != nil {
		return fmt.Errorf("getInstances failed to list instances, err: %w", err)
	}
	return ectx.JSON(http.StatusOK, toInstancesResponse(instances))
}
