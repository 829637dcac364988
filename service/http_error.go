package service

import (
	"errors"
	"net/http"

	"mymesh/helpers"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler register custom error handler.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrEntityNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[ErrInternalServerError] = http.StatusInternalServerError
	errorCodeToStatusCodeMaps[ErrNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[ErrNoInstances] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[ErrRegistryUnavailable] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[ErrServiceUnreachable] = http.StatusServiceUnavailable
	errorCodeToStatusCodeMaps[ErrConfiguration] = http.StatusInternalServerError
	errorCodeToStatusCodeMaps[ErrAuthenticationInfrastructure] = http.StatusInternalServerError
	errorCodeToStatusCodeMaps[ErrInvalidCredentials] = http.StatusUnauthorized

	return errorCodeToStatusCodeMaps
}

// httpStatusToErrorCode codes echo's own errors (unknown route, wrong method, bad auth header).
var httpStatusToErrorCode = map[int]string{
	http.StatusBadRequest:       ErrBadParameter,
	http.StatusUnauthorized:     ErrInvalidCredentials,
	http.StatusNotFound:         ErrEntityNotFound,
	http.StatusMethodNotAllowed: ErrBadParameter,
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler handles error returned by echo Handlers.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	myErr := ToMyError(err)
	if myErr == nil {
		myErr = NewMyError(ErrInternalServerError, "an internal server error has occurred", err)
	}

	var statusCode int
	var he *echo.HTTPError
	if he, _ = err.(*echo.HTTPError); he != nil {
		codeStr, ok := httpStatusToErrorCode[he.Code]
		if !ok {
			codeStr = ErrInternalServerError
		}
		if he.Internal != nil {
			if herr, ok := he.Internal.(*echo.HTTPError); ok {
				he = herr
			}
			var requestError *openapi3filter.RequestError
			if errors.As(he.Internal, &requestError) {
				codeStr = ErrBadParameter
			}
		}

		m, _ := he.Message.(string)
		myErr = NewMyError(codeStr, m, err)
		statusCode = he.Code
	} else {
		statusCode = h.getStatusCode(myErr.Code)
	}

	logLevel := level.Warn
	if statusCode >= http.StatusInternalServerError {
		logLevel = level.Error
	}
	req := c.Request()
	logLevel(h.logger).Log(
		"msg", "HTTP request error",
		"method", req.Method,
		"path", req.URL.Path,
		"status", statusCode,
		"request_id", helpers.RequestIDFromContext(req.Context()),
		"err", err,
	)

	if !c.Response().Committed {
		if req.Method == http.MethodHead && he != nil {
			_ = c.NoContent(he.Code)
		} else {
			_ = c.JSON(statusCode, ErrResponse{Error: myErr})
		}
	}
}

// ErrResponse from server.
type ErrResponse struct {
	Error *MyError `json:"error,omitempty"`
}
