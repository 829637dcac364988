package interfaces

import (
	"context"
	"time"

	"mymesh/domain"
)

// AuthenticationBridge turns credentials into an authenticated principal.
//
// Implemented by service.SecurityServiceBridge, service.TokenBridge and service.AuthManager.
//
//go:generate moq -stub -out mock/authentication_bridge.go -pkg mock . AuthenticationBridge
type AuthenticationBridge interface {
	// Authenticate validates creds. Errors are coded: invalid_credentials, service_unreachable,
	// authentication_infrastructure_error, configuration_error or bad_parameter.
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.Principal, error)
	// Supports reports whether the bridge accepts credentials of kind.
	Supports(kind domain.CredentialKind) bool
}

// TokenIssuer mints and verifies the router's own session token.
//
// Implemented by service.TokenIssuer. Called from handlers.GatewayServer (Issue) and service.TokenBridge (Parse).
//
//go:generate moq -stub -out mock/token_issuer.go -pkg mock . TokenIssuer
type TokenIssuer interface {
	// Issue signs a token for p and returns it with its expiry.
	Issue(p domain.Principal) (string, time.Time, error)
	// Parse verifies token and returns the principal it carries.
	Parse(token string) (domain.Principal, error)
}
