package service

import (
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// DefaultTokenTTL is the lifetime of a router session token when none is configured.
const DefaultTokenTTL = 8 * time.Hour

// MsgInvalidToken is returned when a session token cannot be verified.
const MsgInvalidToken = "The token is invalid or expired."

// Private claims carried by the session token.
const (
	claimRealm          = "realm"
	claimPrimaryToken   = "primary_token"
	claimSecondaryToken = "secondary_token"
)

// TokenIssuer signs router session tokens (HS256 JWT) that carry the principal's realm and token pair.
// Implements interfaces.TokenIssuer.
type TokenIssuer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	clock  interfaces.TimeProvider
}

// NewTokenIssuer creates a TokenIssuer. ttl <= 0 means DefaultTokenTTL.
// Panics on an empty key, an empty issuer or a nil clock.
func NewTokenIssuer(key []byte, issuer string, ttl time.Duration, clock interfaces.TimeProvider) *TokenIssuer {
	if len(key) == 0 {
		panic("service.token_issuer.go: key is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		key:    key,
		issuer: helpers.StrPanic(issuer, "service.token_issuer.go: issuer is required"),
		ttl:    ttl,
		clock:  helpers.NilPanic(clock, "service.token_issuer.go: clock is required"),
	}
}

// Issue signs a token for an authenticated principal and returns it with its expiry.
// bad_parameter when p is not authenticated.
func (i *TokenIssuer) Issue(p domain.Principal) (string, time.Time, error) {
	if !p.Authenticated {
		return "", time.Time{}, NewBadParameterError("principal is not authenticated", nil)
	}
	// JWT timestamps have second precision.
	now := i.clock.Now().UTC().Truncate(time.Second)
	expires := now.Add(i.ttl)

	tok, err := jwt.NewBuilder().
		Issuer(i.issuer).
		Subject(p.Username).
		IssuedAt(now).
		Expiration(expires).
		JwtID(uuid.NewString()).
		Claim(claimRealm, p.Realm).
		Claim(claimPrimaryToken, p.Tokens.Primary).
		Claim(claimSecondaryToken, p.Tokens.Secondary).
		Build()
	if err != nil {
		return "", time.Time{}, NewInternalServerError("build token", err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, i.key))
	if err != nil {
		return "", time.Time{}, NewInternalServerError("sign token", err)
	}
	return string(signed), expires, nil
}

// Parse verifies the signature, issuer and lifetime of token and rebuilds the principal from its claims.
// invalid_credentials for anything that does not verify.
func (i *TokenIssuer) Parse(token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, NewInvalidCredentialsError(MsgInvalidToken, nil)
	}
	tok, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, i.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(i.issuer),
		jwt.WithClock(jwt.ClockFunc(i.clock.Now)),
	)
	if err != nil {
		return domain.Principal{}, NewInvalidCredentialsError(MsgInvalidToken, err)
	}

	tokens := domain.TokenPair{
		Primary:   stringClaim(tok, claimPrimaryToken),
		Secondary: stringClaim(tok, claimSecondaryToken),
	}
	principal, err := domain.NewAuthenticatedPrincipal(tok.Subject(), tokens, stringClaim(tok, claimRealm))
	if err != nil {
		return domain.Principal{}, NewInvalidCredentialsError(MsgInvalidToken, err)
	}
	return principal, nil
}

func stringClaim(tok jwt.Token, name string) string {
	v, ok := tok.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
