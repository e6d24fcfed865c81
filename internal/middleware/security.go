package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	apiContentSecurityPolicy       = "default-src 'none'; frame-ancestors 'none'"
	dashboardContentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"
)

// SecurityHeaders adds security headers to responses
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

			// The dashboard page carries its stylesheet inline
			if strings.HasPrefix(c.Path(), "/dashboard") {
				h.Set("Content-Security-Policy", dashboardContentSecurityPolicy)
			} else {
				h.Set("Content-Security-Policy", apiContentSecurityPolicy)
			}

			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

			// Holdings and balances are private to the user
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")

			return next(c)
		}
	}
}
