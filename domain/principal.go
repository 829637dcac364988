package domain

import "errors"

// ErrIncompletePrincipal is returned when a principal would be built without both tokens or without a realm.
var ErrIncompletePrincipal = errors.New("principal requires both tokens and a realm")

// CredentialKind identifies the shape of a credential presented for authentication.
type CredentialKind string

const (
	CredentialUsernamePassword CredentialKind = "username_password"
	CredentialBearerToken      CredentialKind = "bearer_token"
)

// Credentials is a credential presented by a client.
type Credentials struct {
	Kind     CredentialKind
	Username string
	Password string
	Token    string
}

// UsernamePassword builds a username/password credential.
func UsernamePassword(username, password string) Credentials {
	return Credentials{Kind: CredentialUsernamePassword, Username: username, Password: password}
}

// BearerToken builds a bearer token credential.
func BearerToken(token string) Credentials {
	return Credentials{Kind: CredentialBearerToken, Token: token}
}

// TokenPair holds the two session tokens issued by the security service.
type TokenPair struct {
	Primary   string
	Secondary string
}

// Complete reports whether both tokens are present.
func (p TokenPair) Complete() bool {
	return p.Primary != "" && p.Secondary != ""
}

// Principal is an authenticated user.
type Principal struct {
	Username      string
	Tokens        TokenPair
	Realm         string
	Authenticated bool
}

// NewAuthenticatedPrincipal builds an authenticated principal.
// Returns ErrIncompletePrincipal unless both tokens and the realm are present.
func NewAuthenticatedPrincipal(username string, tokens TokenPair, realm string) (Principal, error) {
	if !tokens.Complete() || realm == "" {
		return Principal{}, ErrIncompletePrincipal
	}
	return Principal{
		Username:      username,
		Tokens:        tokens,
		Realm:         realm,
		Authenticated: true,
	}, nil
}
