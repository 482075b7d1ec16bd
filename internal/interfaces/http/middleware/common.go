// Package middleware provides the gin middleware chain of the HTTP API.
package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key holding the request ID
	RequestIDKey = "request_id"
	// RequestIDHeader carries the request ID in and out
	RequestIDHeader = "X-Request-ID"
	// MaxRequestIDLength bounds client supplied request IDs
	MaxRequestIDLength = 128
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns the CORS configuration for a read-only public API.
// AllowOrigins is empty, so cross-origin requests get no CORS headers until
// origins are configured.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-Request-ID", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
}

// CORS returns a middleware that handles CORS with default configuration
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig returns a CORS middleware with custom configuration
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowWildcard := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowWildcard = true
			break
		}
	}

	allowedOrigin := func(origin string) string {
		if allowWildcard {
			return "*"
		}
		for _, o := range cfg.AllowOrigins {
			if o == origin {
				return origin
			}
		}
		return ""
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowed := allowedOrigin(origin); origin != "" && allowed != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
			if cfg.AllowCredentials && allowed != "*" {
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if allowed != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
			setCORSHeaders(c, cfg)
		}

		// Preflight always answers 204, with headers only for allowed origins
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// setCORSHeaders sets common CORS headers (methods, headers, expose, max-age)
func setCORSHeaders(c *gin.Context, cfg CORSConfig) {
	c.Writer.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
	c.Writer.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))

	if len(cfg.ExposeHeaders) > 0 {
		c.Writer.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}

	if cfg.MaxAge > 0 {
		c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}
}

// RequestID adds a request ID to each request. A client supplied
// X-Request-ID is kept when it is printable and at most MaxRequestIDLength long.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the request ID set by RequestID, falling back to the header
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDHeader); validRequestID(id) {
		return id
	}
	return ""
}

// SecurityConfig holds configuration for security headers
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool

	CSPEnabled   bool
	CSPDirective string
}

// DefaultSecurityConfig returns defaults for a JSON-only API. HSTS is off
// since it requires HTTPS termination in front of the service.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSEnabled:           false,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		CSPEnabled:            true,
		CSPDirective:          "default-src 'none'; frame-ancestors 'none'",
	}
}

// Secure adds security headers to responses using default configuration
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig adds security headers to responses with custom configuration
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	var hstsValue string
	if cfg.HSTSEnabled {
		hstsValue = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hstsValue += "; includeSubDomains"
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if cfg.CSPEnabled && cfg.CSPDirective != "" {
			h.Set("Content-Security-Policy", cfg.CSPDirective)
		}
		if hstsValue != "" {
			h.Set("Strict-Transport-Security", hstsValue)
		}

		c.Next()
	}
}
