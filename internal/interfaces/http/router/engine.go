package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nsnodes/backend/internal/infrastructure/config"
	"github.com/nsnodes/backend/internal/infrastructure/logger"
	"github.com/nsnodes/backend/internal/interfaces/http/handler"
	"github.com/nsnodes/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	System       *handler.SystemHandler
	Events       *handler.EventHandler
	Societies    *handler.SocietyHandler
	NetworkState *handler.NetworkStateHandler
}

// EngineConfig configures the middleware chain built by NewEngine
type EngineConfig struct {
	HTTP    config.HTTPConfig
	Tracing middleware.TracingConfig
	Logger  *zap.Logger
}

// Engine is the configured gin engine plus the resources its middleware own
type Engine struct {
	*gin.Engine
	limiter *middleware.RateLimiter
}

// Close releases the rate limiter's cleanup goroutine
func (e *Engine) Close() {
	if e.limiter != nil {
		e.limiter.Stop()
	}
}

// NewEngine builds the gin engine with the middleware chain in order
// (request ID, recovery, request logging, security headers, CORS, body limit,
// rate limit, tracing) and mounts every route.
func NewEngine(cfg EngineConfig, h Handlers) *Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	e := &Engine{Engine: engine}

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		e.limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(e.limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if cfg.Tracing.Enabled {
		engine.Use(middleware.TracingWithConfig(cfg.Tracing))
		engine.Use(middleware.SpanAnnotator())
	}

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, group := range apiGroups(h) {
		r.Register(group)
	}
	r.Setup()

	return e
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

// apiGroups returns the route groups mounted under /api/v1.
// /societies/match is registered ahead of /societies/:id.
func apiGroups(h Handlers) []*DomainGroup {
	var groups []*DomainGroup

	if h.System != nil {
		groups = append(groups, NewDomainGroup("system", "/system").
			GET("/ping", h.System.Ping).
			GET("/info", h.System.GetSystemInfo))
	}

	if h.Events != nil {
		groups = append(groups, NewDomainGroup("events", "/events").
			GET("", h.Events.ListEvents).
			GET("/popup-cities", h.Events.ListPopupCities))
	}

	if h.Societies != nil {
		groups = append(groups, NewDomainGroup("societies", "/societies").
			GET("", h.Societies.List).
			GET("/match", h.Societies.Match).
			GET("/:id", h.Societies.Get))
	}

	if h.NetworkState != nil {
		groups = append(groups, NewDomainGroup("network-state", "/network-state").
			GET("/resolve", h.NetworkState.Resolve))
	}

	return groups
}
