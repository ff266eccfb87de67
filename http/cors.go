package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const corsAllowedHeaders = "Content-Type, Correlation-ID"

// corsHeaders sets the headers browsers need to call the API from another
// origin. Preflights are answered by preflight with 200 and no body.
func corsHeaders(allowOrigin string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set(echo.HeaderAccessControlAllowOrigin, allowOrigin)
			header.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
			header.Set(echo.HeaderAccessControlAllowHeaders, corsAllowedHeaders)
			return next(c)
		}
	}
}

func preflight(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
