package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"mymesh/domain"
	"mymesh/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Messages returned by SecurityServiceBridge.
const (
	MsgServiceIDNotConfigured = "The parameter 'securityServiceId' is not configured."
	MsgInstanceNotFound       = "Security service instance not found or incorrectly configured."
	MsgServiceNotAccessible   = "Could not get an access to the security service."
	MsgAuthenticationFailure  = "A failure occurred when authenticating."
	MsgDomainUnreadable       = "The security service domain cannot be read."
	MsgInvalidCredentials     = "Username or password are invalid."
	MsgUnsupportedCredentials = "Credentials of this kind are not supported."
)

const maxExchangeBodyBytes = 1 << 20

// SecurityServiceConfig describes the security service exchange.
type SecurityServiceConfig struct {
	// ServiceID is the registry id of the security service.
	ServiceID string
	// ExchangePath is requested with GET and basic auth on the resolved instance.
	ExchangePath string
	// RealmField names the JSON body field holding the security realm.
	RealmField string
	// PrimaryToken and SecondaryToken name the Set-Cookie entries carrying the session tokens.
	PrimaryToken   string
	SecondaryToken string
	// Headers are added to every exchange request.
	Headers map[string]string
	// BreakerThreshold consecutive transport failures open the circuit for BreakerTimeout.
	BreakerThreshold uint32
	BreakerTimeout   time.Duration
}

// DefaultSecurityServiceConfig returns the settings of a z/OSMF-compatible security service.
func DefaultSecurityServiceConfig(serviceID string) SecurityServiceConfig {
	return SecurityServiceConfig{
		ServiceID:        serviceID,
		ExchangePath:     "/zosmf/info",
		RealmField:       "zosmf_saf_realm",
		PrimaryToken:     "JwtToken",
		SecondaryToken:   "LtpaToken2",
		Headers:          map[string]string{"X-CSRF-ZOSMF-HEADER": ""},
		BreakerThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// SecurityServiceBridge authenticates username/password credentials against the external security service
// found through the registry. Implements interfaces.AuthenticationBridge.
type SecurityServiceBridge struct {
	cfg      SecurityServiceConfig
	resolver *InstanceResolver
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	logger   log.Logger
	tracer   trace.Tracer
}

// exchangeResult is the part of the security service answer the bridge needs.
type exchangeResult struct {
	status     int
	setCookies []string
	body       []byte
}

// NewSecurityServiceBridge creates the bridge. An empty cfg.ServiceID is accepted and reported on every Authenticate call.
// Panics on nil resolver, client or logger.
func NewSecurityServiceBridge(cfg SecurityServiceConfig, resolver *InstanceResolver, client *http.Client, logger log.Logger) *SecurityServiceBridge {
	b := &SecurityServiceBridge{
		cfg:      cfg,
		resolver: helpers.NilPanic(resolver, "service.security_service_bridge.go: resolver is required"),
		client:   helpers.NilPanic(client, "service.security_service_bridge.go: client is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.security_service_bridge.go: logger is required"), "component", "security_service_bridge"),
		tracer:   otel.Tracer("mymesh/service"),
	}
	threshold := cfg.BreakerThreshold
	if threshold == 0 {
		threshold = 5
	}
	b.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "security-service",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			level.Warn(b.logger).Log("msg", "circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
		// Only transport failures count against the security service.
		IsSuccessful: func(err error) bool {
			return err == nil || !isTransportError(err)
		},
	})
	return b
}

// Supports reports whether kind is username/password.
func (b *SecurityServiceBridge) Supports(kind domain.CredentialKind) bool {
	return kind == domain.CredentialUsernamePassword
}

// Authenticate resolves the security service, exchanges the credentials and builds the principal.
//
// Errors:
// configuration_error when the service id is not configured;
// service_unreachable when no viable instance is registered, the service cannot be contacted or the circuit is open;
// authentication_infrastructure_error when the exchange fails otherwise, or the realm cannot be read from the answer;
// invalid_credentials when the answer does not carry both session tokens.
func (b *SecurityServiceBridge) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Principal, error) {
	ctx, span := b.tracer.Start(ctx, "SecurityServiceBridge.Authenticate", trace.WithAttributes(attribute.String("security.service_id", b.cfg.ServiceID)))
	defer span.End()

	principal, err := b.authenticate(ctx, creds)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ToMyErrorCode(err))
		level.Debug(b.logger).Log("msg", "authentication failed", "username", creds.Username, "err", err)
	}
	return principal, err
}

func (b *SecurityServiceBridge) authenticate(ctx context.Context, creds domain.Credentials) (domain.Principal, error) {
	if !b.Supports(creds.Kind) {
		return domain.Principal{}, NewBadParameterError(MsgUnsupportedCredentials, nil)
	}
	if b.cfg.ServiceID == "" {
		return domain.Principal{}, NewConfigurationError(MsgServiceIDNotConfigured, nil)
	}

	outcome := b.resolver.Lookup(ctx, b.cfg.ServiceID)
	if outcome.Err != nil {
		return domain.Principal{}, NewServiceUnreachableError(MsgInstanceNotFound, outcome.Err)
	}
	if !outcome.Instance.Viable() {
		return domain.Principal{}, NewServiceUnreachableError(MsgInstanceNotFound, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, outcome.Instance.BaseURL()+b.cfg.ExchangePath, nil)
	if err != nil {
		return domain.Principal{}, NewAuthenticationInfrastructureError(MsgAuthenticationFailure, err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	for k, v := range b.cfg.Headers {
		req.Header.Set(k, v)
	}

	v, err := b.breaker.Execute(func() (interface{}, error) {
		return b.exchange(req)
	})
	if err != nil {
		if isTransportError(err) || errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.Principal{}, NewServiceUnreachableError(MsgServiceNotAccessible, err)
		}
		return domain.Principal{}, NewAuthenticationInfrastructureError(MsgAuthenticationFailure, err)
	}
	res := v.(*exchangeResult)

	realm, err := b.readRealm(res)
	if err != nil {
		return domain.Principal{}, err
	}

	tokens := helpers.ParseCookieTokens(res.setCookies, b.cfg.PrimaryToken, b.cfg.SecondaryToken)
	principal, err := domain.NewAuthenticatedPrincipal(creds.Username, tokens, realm)
	if err != nil {
		return domain.Principal{}, NewInvalidCredentialsError(MsgInvalidCredentials, nil)
	}
	return principal, nil
}

func (b *SecurityServiceBridge) exchange(req *http.Request) (*exchangeResult, error) {
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExchangeBodyBytes))
	if err != nil {
		return nil, err
	}
	return &exchangeResult{
		status:     resp.StatusCode,
		setCookies: resp.Header.Values("Set-Cookie"),
		body:       body,
	}, nil
}

func (b *SecurityServiceBridge) readRealm(res *exchangeResult) (string, error) {
	if res.status < 200 || res.status > 299 || len(res.body) == 0 {
		return "", NewAuthenticationInfrastructureError(MsgDomainUnreadable, nil)
	}
	var payload map[string]any
	if err := json.Unmarshal(res.body, &payload); err != nil {
		return "", NewAuthenticationInfrastructureError(MsgDomainUnreadable, err)
	}
	realm, _ := payload[b.cfg.RealmField].(string)
	if realm == "" {
		return "", NewAuthenticationInfrastructureError(MsgDomainUnreadable, nil)
	}
	return realm, nil
}

// isTransportError reports whether err means the peer could not be reached or stopped answering:
// dial and network operation failures, DNS failures, timeouts and connections closed mid-response.
func isTransportError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
