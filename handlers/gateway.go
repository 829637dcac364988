package handlers

import (
	"net/http"
	"strings"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// AuthCookieName is the cookie carrying the router session token.
const AuthCookieName = "apimlAuthenticationToken"

// LoginRequest is the JSON body accepted by POST /api/v1/auth/login when no basic auth header is sent.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PrincipalResponse describes an authenticated principal. The security service tokens are never returned.
type PrincipalResponse struct {
	Username  string     `json:"username"`
	Realm     string     `json:"realm"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// GatewayServerInterface is the router API.
type GatewayServerInterface interface {
	// (DELETE /cache/services)
	EvictAllServices(ctx echo.Context) error
	// (DELETE /cache/services/{service_id})
	EvictService(ctx echo.Context, serviceId string) error
	// (GET /api/v1/services/{service_id})
	GetService(ctx echo.Context, serviceId string) error
	// (POST /api/v1/auth/login)
	Login(ctx echo.Context) error
	// (GET /api/v1/auth/query)
	QueryToken(ctx echo.Context) error
}

// RegisterGatewayHandlers adds the router routes to router.
func RegisterGatewayHandlers(router *echo.Echo, si GatewayServerInterface) {
	router.DELETE(service.CacheServicesPath, si.EvictAllServices)
	router.DELETE(service.CacheServicesPath+"/:service_id", func(c echo.Context) error {
		return si.EvictService(c, pathParam(c, "service_id"))
	})
	router.GET("/api/v1/services/:service_id", func(c echo.Context) error {
		return si.GetService(c, pathParam(c, "service_id"))
	})
	router.POST("/api/v1/auth/login", si.Login)
	router.GET("/api/v1/auth/query", si.QueryToken)
}

// GatewayServer implements GatewayServerInterface.
type GatewayServer struct {
	catalog interfaces.ServiceCatalog
	auth    interfaces.AuthenticationBridge
	issuer  interfaces.TokenIssuer
	logger  log.Logger
}

// NewGatewayServer creates a new GatewayServer. Panics on any nil argument.
func NewGatewayServer(catalog interfaces.ServiceCatalog, auth interfaces.AuthenticationBridge, issuer interfaces.TokenIssuer, logger log.Logger) *GatewayServer {
	logger = log.WithPrefix(helpers.NilPanic(logger, "handlers.gateway.go: logger is required"), "component", "GatewayServer")
	return &GatewayServer{
		catalog: helpers.NilPanic(catalog, "handlers.gateway.go: catalog is required"),
		auth:    helpers.NilPanic(auth, "handlers.gateway.go: auth is required"),
		issuer:  helpers.NilPanic(issuer, "handlers.gateway.go: issuer is required"),
		logger:  logger,
	}
}

// EvictAllServices (DELETE /cache/services) clears the service cache.
func (h *GatewayServer) EvictAllServices(ectx echo.Context) error {
	h.catalog.EvictAll()
	level.Info(h.logger).Log("msg", "service cache cleared", "request_id", helpers.RequestIDFromContext(ectx.Request().Context()))
	return ectx.NoContent(http.StatusOK)
}

// EvictService (DELETE /cache/services/{service_id}) drops one service from the cache.
func (h *GatewayServer) EvictService(ectx echo.Context, serviceId string) error {
	h.catalog.Evict(serviceId)
	level.Info(h.logger).Log("msg", "service evicted", "service_id", serviceId, "request_id", helpers.RequestIDFromContext(ectx.Request().Context()))
	return ectx.NoContent(http.StatusOK)
}

// GetService (GET /api/v1/services/{service_id}) returns the router's view of a service. 404 when it is not registered.
func (h *GatewayServer) GetService(ectx echo.Context, serviceId string) error {
	app, err := h.catalog.Get(ectx.Request().Context(), serviceId)
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, toApplicationResponse(*app))
}

// Login (POST /api/v1/auth/login) authenticates basic auth or JSON credentials, sets the session cookie and
// returns the principal.
func (h *GatewayServer) Login(ectx echo.Context) error {
	creds, err := loginCredentials(ectx)
	if err != nil {
		return err
	}

	ctx := ectx.Request().Context()
	principal, err := h.auth.Authenticate(ctx, creds)
	if err != nil {
		return err
	}
	token, expires, err := h.issuer.Issue(principal)
	if err != nil {
		return err
	}

	ectx.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return ectx.JSON(http.StatusOK, PrincipalResponse{Username: principal.Username, Realm: principal.Realm, ExpiresAt: &expires})
}

// QueryToken (GET /api/v1/auth/query) validates the bearer token or session cookie and returns its principal.
func (h *GatewayServer) QueryToken(ectx echo.Context) error {
	token := bearerToken(ectx.Request())
	if token == "" {
		if c, err := ectx.Cookie(AuthCookieName); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return service.NewInvalidCredentialsError("no token provided", nil)
	}

	principal, err := h.auth.Authenticate(ectx.Request().Context(), domain.BearerToken(token))
	if err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, PrincipalResponse{Username: principal.Username, Realm: principal.Realm})
}

func loginCredentials(ectx echo.Context) (domain.Credentials, error) {
	if user, pass, ok := ectx.Request().BasicAuth(); ok {
		return domain.UsernamePassword(user, pass), nil
	}
	var req LoginRequest
	if err := ectx.Bind(&req); err != nil {
		return domain.Credentials{}, service.NewBadParameterError("invalid request body", err)
	}
	if req.Username == "" || req.Password == "" {
		return domain.Credentials{}, service.NewBadParameterError("username and password are required", nil)
	}
	return domain.UsernamePassword(req.Username, req.Password), nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
