package service

import (
	"context"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// AuthManager dispatches credentials to the bridges that support them. Implements interfaces.AuthenticationBridge.
type AuthManager struct {
	bridges []interfaces.AuthenticationBridge
	logger  log.Logger
	metrics *Metrics
}

// NewAuthManager creates an AuthManager trying bridges in the given order. metrics may be nil.
// Panics on nil logger or a nil bridge.
func NewAuthManager(logger log.Logger, metrics *Metrics, bridges ...interfaces.AuthenticationBridge) *AuthManager {
	for _, b := range bridges {
		helpers.NilPanic(b, "service.auth_manager.go: bridge is required")
	}
	return &AuthManager{
		bridges: bridges,
		logger:  log.With(helpers.NilPanic(logger, "service.auth_manager.go: logger is required"), "component", "auth_manager"),
		metrics: metrics,
	}
}

// Supports reports whether any bridge accepts kind.
func (m *AuthManager) Supports(kind domain.CredentialKind) bool {
	for _, b := range m.bridges {
		if b.Supports(kind) {
			return true
		}
	}
	return false
}

// Authenticate tries every bridge supporting creds.Kind and returns the first success, otherwise the last error.
// bad_parameter when no bridge supports the kind.
func (m *AuthManager) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Principal, error) {
	p, err := m.authenticate(ctx, creds)
	m.metrics.authentication(string(creds.Kind), err)
	if err != nil {
		level.Info(m.logger).Log("msg", "authentication rejected", "kind", creds.Kind, "code", ToMyErrorCode(err), "request_id", helpers.RequestIDFromContext(ctx))
	}
	return p, err
}

func (m *AuthManager) authenticate(ctx context.Context, creds domain.Credentials) (domain.Principal, error) {
	var lastErr error
	for _, b := range m.bridges {
		if !b.Supports(creds.Kind) {
			continue
		}
		p, err := b.Authenticate(ctx, creds)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		return domain.Principal{}, NewBadParameterError(MsgUnsupportedCredentials, nil)
	}
	return domain.Principal{}, lastErr
}
