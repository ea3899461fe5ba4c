package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/utils"
)

const (
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	// Last-Event-ID is sent by EventSource on reconnect.
	corsAllowHeaders  = "Authorization, Content-Type, Accept, Cache-Control, Last-Event-ID, X-Request-ID"
	corsExposeHeaders = "X-Request-ID"
	corsMaxAge        = "600"
)

// CORS lets the console front-end call the API from the configured origins.
// "*" admits any origin but never with credentials. Preflights from other
// origins are refused with a forbidden envelope; simple requests from them
// pass without CORS headers and the browser blocks the response.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	wildcard := slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		c.Writer.Header().Add("Vary", "Origin")

		listed := slices.ContainsFunc(allowedOrigins, func(o string) bool {
			return strings.EqualFold(strings.TrimRight(o, "/"), origin)
		})
		switch {
		case listed:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		case wildcard:
			c.Header("Access-Control-Allow-Origin", "*")
		case c.Request.Method == http.MethodOptions:
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("origin not allowed", origin))
			c.Abort()
			return
		default:
			c.Next()
			return
		}
		c.Header("Access-Control-Expose-Headers", corsExposeHeaders)

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Access-Control-Max-Age", corsMaxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// SecurityHeaders sets response hardening headers. API responses are JSON
// and get a deny-all CSP; the swagger UI needs its own scripts and styles,
// so paths under skipCSP keep the browser default.
func SecurityHeaders(skipCSP ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		path := c.Request.URL.Path
		if !slices.ContainsFunc(skipCSP, func(p string) bool { return strings.HasPrefix(path, p) }) {
			c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}
		c.Next()
	}
}
