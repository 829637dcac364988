package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"mymesh/domain"
	"mymesh/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func registryWith(app *domain.Application) *RegistryHolder {
	return NewRegistryHolder(&mock.RegistryClientMock{
		GetApplicationFunc: func(ctx context.Context, serviceID string) (*domain.Application, error) {
			return app, nil
		},
	})
}

func securityInstanceAt(baseURL string) *domain.Application {
	return &domain.Application{Name: "zosmf", Instances: []domain.Instance{{
		InstanceID: "zosmf-1",
		App:        "zosmf",
		Host:       "localhost",
		Port:       443,
		Metadata:   map[string]string{domain.MetadataBaseURL: baseURL},
	}}}
}

func newBridge(t *testing.T, registry *RegistryHolder, client *http.Client) *SecurityServiceBridge {
	t.Helper()
	resolver := NewInstanceResolver(registry, log.NewNopLogger())
	return NewSecurityServiceBridge(DefaultSecurityServiceConfig("zosmf"), resolver, client, log.NewNopLogger())
}

func securityServer(t *testing.T, status int, body string, cookies ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/zosmf/info", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user", user)
		assert.Equal(t, "password", pass)
		_, hasCSRF := r.Header["X-Csrf-Zosmf-Header"]
		assert.True(t, hasCSRF)
		for _, c := range cookies {
			w.Header().Add("Set-Cookie", c)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const realmResponse = `{"zosmf_saf_realm": "realm"}`

func TestSecurityServiceBridge_Authenticate(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		cookies     []string
		wantCode    string
		wantMessage string
	}{
		{
			name:    "login with existing user",
			status:  http.StatusOK,
			body:    realmResponse,
			cookies: []string{"JwtToken=test", "LtpaToken2=test"},
		},
		{
			name:    "cookies with attributes",
			status:  http.StatusOK,
			body:    realmResponse,
			cookies: []string{"JwtToken=test; Path=/; Secure", "LtpaToken2=test;"},
		},
		{
			name:        "no cookies",
			status:      http.StatusOK,
			body:        realmResponse,
			wantCode:    ErrInvalidCredentials,
			wantMessage: MsgInvalidCredentials,
		},
		{
			name:        "invalid cookie name",
			status:      http.StatusOK,
			body:        realmResponse,
			cookies:     []string{"LtpaToken=test"},
			wantCode:    ErrInvalidCredentials,
			wantMessage: MsgInvalidCredentials,
		},
		{
			name:        "only secondary token",
			status:      http.StatusOK,
			body:        realmResponse,
			cookies:     []string{"LtpaToken2=test;"},
			wantCode:    ErrInvalidCredentials,
			wantMessage: MsgInvalidCredentials,
		},
		{
			name:        "empty body",
			status:      http.StatusOK,
			cookies:     []string{"JwtToken=test", "LtpaToken2=test"},
			wantCode:    ErrAuthenticationInfrastructure,
			wantMessage: MsgDomainUnreadable,
		},
		{
			name:        "no realm in response",
			status:      http.StatusOK,
			body:        `{"saf_realm": "realm"}`,
			cookies:     []string{"JwtToken=test", "LtpaToken2=test"},
			wantCode:    ErrAuthenticationInfrastructure,
			wantMessage: MsgDomainUnreadable,
		},
		{
			name:        "body is not json",
			status:      http.StatusOK,
			body:        `<html>`,
			cookies:     []string{"JwtToken=test", "LtpaToken2=test"},
			wantCode:    ErrAuthenticationInfrastructure,
			wantMessage: MsgDomainUnreadable,
		},
		{
			name:        "error status",
			status:      http.StatusInternalServerError,
			body:        realmResponse,
			wantCode:    ErrAuthenticationInfrastructure,
			wantMessage: MsgDomainUnreadable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := securityServer(t, tt.status, tt.body, tt.cookies...)
			bridge := newBridge(t, registryWith(securityInstanceAt(srv.URL)), srv.Client())

			principal, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, ToMyErrorCode(err))
				assert.Equal(t, tt.wantMessage, ToMyError(err).Message)
				assert.False(t, principal.Authenticated)
				return
			}
			require.NoError(t, err)
			assert.True(t, principal.Authenticated)
			assert.Equal(t, "user", principal.Username)
			assert.Equal(t, "realm", principal.Realm)
			assert.Equal(t, domain.TokenPair{Primary: "test", Secondary: "test"}, principal.Tokens)
		})
	}
}

// countingClient counts every outbound request and answers none of them.
func countingClient(calls *atomic.Int32) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("unexpected call")
	})}
}

func TestSecurityServiceBridge_Authenticate_Configuration(t *testing.T) {
	t.Run("no service id", func(t *testing.T) {
		var calls atomic.Int32
		registry := &mock.RegistryClientMock{}
		resolver := NewInstanceResolver(NewRegistryHolder(registry), log.NewNopLogger())
		bridge := NewSecurityServiceBridge(DefaultSecurityServiceConfig(""), resolver, countingClient(&calls), log.NewNopLogger())

		_, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))
		assert.True(t, IsConfigurationError(err))
		assert.Equal(t, MsgServiceIDNotConfigured, ToMyError(err).Message)
		assert.Empty(t, registry.GetApplicationCalls())
		assert.Zero(t, calls.Load())
	})
	t.Run("placeholder instance", func(t *testing.T) {
		var calls atomic.Int32
		app := &domain.Application{Name: "zosmf", Instances: []domain.Instance{{}}}
		bridge := newBridge(t, registryWith(app), countingClient(&calls))

		_, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))
		assert.True(t, IsServiceUnreachableError(err))
		assert.Equal(t, MsgInstanceNotFound, ToMyError(err).Message)
		assert.Zero(t, calls.Load())
	})
	t.Run("service not registered", func(t *testing.T) {
		var calls atomic.Int32
		bridge := newBridge(t, registryWith(nil), countingClient(&calls))

		_, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))
		assert.True(t, IsServiceUnreachableError(err))
		assert.Equal(t, MsgInstanceNotFound, ToMyError(err).Message)
		assert.Zero(t, calls.Load())
	})
	t.Run("registry not configured", func(t *testing.T) {
		bridge := newBridge(t, NewRegistryHolder(nil), http.DefaultClient)

		_, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))
		assert.True(t, IsServiceUnreachableError(err))
	})
	t.Run("unsupported credentials", func(t *testing.T) {
		bridge := newBridge(t, registryWith(nil), http.DefaultClient)

		_, err := bridge.Authenticate(context.Background(), domain.BearerToken("abc"))
		assert.True(t, IsBadParameterError(err))
	})
}

func TestSecurityServiceBridge_Authenticate_TransportFailures(t *testing.T) {
	t.Run("service not accessible", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		bridge := newBridge(t, registryWith(securityInstanceAt(url)), &http.Client{})

		_, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))
		assert.True(t, IsServiceUnreachableError(err))
		assert.Equal(t, MsgServiceNotAccessible, ToMyError(err).Message)
	})
	t.Run("other client failure", func(t *testing.T) {
		client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("unexpected client failure")
		})}
		bridge := newBridge(t, registryWith(securityInstanceAt("http://zosmf.local")), client)

		_, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))
		assert.True(t, IsAuthenticationInfrastructureError(err))
		assert.Equal(t, MsgAuthenticationFailure, ToMyError(err).Message)
	})
	t.Run("circuit opens after consecutive transport failures", func(t *testing.T) {
		var dials atomic.Int32
		client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			dials.Add(1)
			return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		})}
		cfg := DefaultSecurityServiceConfig("zosmf")
		cfg.BreakerThreshold = 2
		resolver := NewInstanceResolver(registryWith(securityInstanceAt("http://zosmf.local")), log.NewNopLogger())
		bridge := NewSecurityServiceBridge(cfg, resolver, client, log.NewNopLogger())

		for i := 0; i < 3; i++ {
			_, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))
			assert.True(t, IsServiceUnreachableError(err))
		}
		assert.Equal(t, int32(2), dials.Load(), "third call is rejected by the open circuit")
	})
	t.Run("bad credentials do not open the circuit", func(t *testing.T) {
		srv := securityServer(t, http.StatusOK, realmResponse)
		cfg := DefaultSecurityServiceConfig("zosmf")
		cfg.BreakerThreshold = 1
		resolver := NewInstanceResolver(registryWith(securityInstanceAt(srv.URL)), log.NewNopLogger())
		bridge := NewSecurityServiceBridge(cfg, resolver, srv.Client(), log.NewNopLogger())

		for i := 0; i < 3; i++ {
			_, err := bridge.Authenticate(context.Background(), domain.UsernamePassword("user", "password"))
			assert.True(t, IsInvalidCredentialsError(err))
		}
	})
}

func TestSecurityServiceBridge_Supports(t *testing.T) {
	bridge := newBridge(t, registryWith(nil), http.DefaultClient)
	assert.True(t, bridge.Supports(domain.CredentialUsernamePassword))
	assert.False(t, bridge.Supports(domain.CredentialBearerToken))
}

func TestIsTransportError(t *testing.T) {
	assert.True(t, isTransportError(context.DeadlineExceeded))
	assert.True(t, isTransportError(&net.DNSError{Err: "no such host", Name: "zosmf"}))
	assert.True(t, isTransportError(&net.OpError{Op: "read", Err: errors.New("reset")}))
	assert.False(t, isTransportError(errors.New("boom")))
	assert.False(t, isTransportError(nil))
}
