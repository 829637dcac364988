package handlers

import (
	"mymesh/domain"
	"mymesh/service"
)

// fromRegisterRequest converts RegisterRequest to domain.Instance.
// Returns service.BadParameterError on validation failure.
func fromRegisterRequest(req RegisterRequest) (domain.Instance, error) {
	if req.InstanceId == "" {
		return domain.Instance{}, service.NewBadParameterError("instance_id is required", nil)
	}
	if req.App == "" {
		return domain.Instance{}, service.NewBadParameterError("app is required", nil)
	}
	if req.Host == "" {
		return domain.Instance{}, service.NewBadParameterError("host is required", nil)
	}
	if req.Port == 0 {
		return domain.Instance{}, service.NewBadParameterError("port is required", nil)
	}
	if req.TtlMs <= 0 {
		return domain.Instance{}, service.NewBadParameterError("ttl_ms is required", nil)
	}

	var statusValue string
	if req.Status != nil {
		statusValue = string(*req.Status)
	}
	status, err := fromInstanceStatus(statusValue)
	if err != nil {
		return domain.Instance{}, err
	}

	var metadata map[string]string
	if req.Metadata != nil {
		metadata = *req.Metadata
	}

	return domain.Instance{
		InstanceID: req.InstanceId,
		App:        req.App,
		Host:       req.Host,
		Port:       req.Port,
		Status:     status,
		Metadata:   metadata,
		TTLMs:      req.TtlMs,
	}, nil
}

// fromInstanceStatus parses a status; empty means UP.
func fromInstanceStatus(s string) (domain.InstanceStatus, error) {
	status, ok := domain.ParseInstanceStatus(s)
	if !ok {
		return "", service.NewBadParameterError("unknown status "+s, nil)
	}
	return status, nil
}
