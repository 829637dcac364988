package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenBridge_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.token_bridge.go: issuer is required", func() {
		NewTokenBridge(nil)
	})
}

func TestTokenBridge_Supports(t *testing.T) {
	b := NewTokenBridge(&mock.TokenIssuerMock{})
	assert.True(t, b.Supports(domain.CredentialBearerToken))
	assert.False(t, b.Supports(domain.CredentialUsernamePassword))
}

func TestTokenBridge_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), "mymesh", time.Hour, fixedClock(helpers.TestNow()))
	p := testPrincipal(t)
	token, _, err := issuer.Issue(p)
	require.NoError(t, err)

	got, err := NewTokenBridge(issuer).Authenticate(context.Background(), domain.BearerToken(token))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestTokenBridge_Authenticate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		creds    domain.Credentials
		parseErr error
		check    func(error) bool
	}{
		{name: "wrong kind", creds: domain.UsernamePassword("user", "password"), check: IsBadParameterError},
		{name: "empty token", creds: domain.BearerToken(""), check: IsInvalidCredentialsError},
		{name: "invalid token", creds: domain.BearerToken("x"), parseErr: NewInvalidCredentialsError(MsgInvalidToken, nil), check: IsInvalidCredentialsError},
		{name: "uncoded parse failure", creds: domain.BearerToken("x"), parseErr: errors.New("boom"), check: IsInvalidCredentialsError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := &mock.TokenIssuerMock{
				ParseFunc: func(token string) (domain.Principal, error) {
					return domain.Principal{}, tt.parseErr
				},
			}
			_, err := NewTokenBridge(issuer).Authenticate(context.Background(), tt.creds)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
}
