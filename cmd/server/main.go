package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	eventapp "github.com/nsnodes/backend/internal/application/event"
	societyapp "github.com/nsnodes/backend/internal/application/society"
	"github.com/nsnodes/backend/internal/infrastructure/cache"
	"github.com/nsnodes/backend/internal/infrastructure/config"
	"github.com/nsnodes/backend/internal/infrastructure/logger"
	"github.com/nsnodes/backend/internal/infrastructure/persistence"
	"github.com/nsnodes/backend/internal/infrastructure/telemetry"
	"github.com/nsnodes/backend/internal/interfaces/http/handler"
	"github.com/nsnodes/backend/internal/interfaces/http/middleware"
	"github.com/nsnodes/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting nsnodes backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.ConfigFrom(cfg.Telemetry, version), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfigFrom(cfg), log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	nameCache, closeCache := cache.NewSocietyNameCache(cfg, log)
	defer func() {
		if err := closeCache(); err != nil {
			log.Error("Error closing society name cache", zap.Error(err))
		}
	}()

	eventRepo := persistence.NewGormEventRepository(db.DB)
	societyRepo := persistence.NewGormSocietyRepository(db.DB)

	societyService := societyapp.NewSocietyService(societyRepo, nameCache, cfg.Events.DefaultPageSize, cfg.Events.MaxPageSize,
		societyapp.WithLogger(log))
	eventService := eventapp.NewEventService(eventRepo, societyService, eventOptions(cfg, log), log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tracing := middleware.DefaultTracingConfig()
	tracing.Enabled = tp.IsEnabled()
	tracing.ServiceName = tp.GetConfig().ServiceName

	engine := router.NewEngine(router.EngineConfig{
		HTTP:    cfg.HTTP,
		Tracing: tracing,
		Logger:  log,
	}, router.Handlers{
		System:       handler.NewSystemHandler(cfg.App.Name, version, db),
		Events:       handler.NewEventHandler(eventService),
		Societies:    handler.NewSocietyHandler(societyService),
		NetworkState: handler.NewNetworkStateHandler(eventService),
	})
	defer engine.Close()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// eventOptions maps the events config section onto service options
func eventOptions(cfg *config.Config, log *zap.Logger) eventapp.Options {
	opts := eventapp.DefaultOptions()
	if cfg.Events.DefaultPageSize > 0 {
		opts.DefaultPageSize = cfg.Events.DefaultPageSize
	}
	if cfg.Events.MaxPageSize > 0 {
		opts.MaxPageSize = cfg.Events.MaxPageSize
	}
	if cfg.Events.PopupCityTag != "" {
		opts.PopupCityTag = cfg.Events.PopupCityTag
	}
	if cfg.Events.DefaultTimezone != "" {
		loc, err := time.LoadLocation(cfg.Events.DefaultTimezone)
		if err != nil {
			log.Warn("Unknown default timezone, using UTC",
				zap.String("timezone", cfg.Events.DefaultTimezone),
				zap.Error(err),
			)
		} else {
			opts.DefaultLocation = loc
		}
	}
	opts.ReconcileNetworkState = cfg.Events.ReconcileNetworkState
	return opts
}
