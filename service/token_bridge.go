package service

import (
	"context"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"
)

// TokenBridge authenticates bearer tokens previously issued by the router. Implements interfaces.AuthenticationBridge.
type TokenBridge struct {
	issuer interfaces.TokenIssuer
}

// NewTokenBridge creates a TokenBridge over issuer. Panics on nil issuer.
func NewTokenBridge(issuer interfaces.TokenIssuer) *TokenBridge {
	return &TokenBridge{issuer: helpers.NilPanic(issuer, "service.token_bridge.go: issuer is required")}
}

// Supports reports whether kind is a bearer token.
func (b *TokenBridge) Supports(kind domain.CredentialKind) bool {
	return kind == domain.CredentialBearerToken
}

// Authenticate verifies the token and returns the principal it carries.
// invalid_credentials for an empty or unverifiable token.
func (b *TokenBridge) Authenticate(_ context.Context, creds domain.Credentials) (domain.Principal, error) {
	if !b.Supports(creds.Kind) {
		return domain.Principal{}, NewBadParameterError(MsgUnsupportedCredentials, nil)
	}
	if creds.Token == "" {
		return domain.Principal{}, NewInvalidCredentialsError(MsgInvalidToken, nil)
	}
	p, err := b.issuer.Parse(creds.Token)
	if err != nil {
		if IsInvalidCredentialsError(err) {
			return domain.Principal{}, err
		}
		return domain.Principal{}, NewInvalidCredentialsError(MsgInvalidToken, err)
	}
	return p, nil
}
