package handlers

import (
	"mymesh/helpers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestID reads X-Request-ID (generating one when absent), echoes it in the response and stores it
// in the request context for helpers.RequestIDFromContext.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: helpers.HeaderRequestID,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(helpers.WithRequestID(req.Context(), id)))
		},
	})
}
