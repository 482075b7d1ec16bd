package telemetry

import (
	"fmt"

	"github.com/nsnodes/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled    bool   // Register the otelgorm plugin
	LogFullSQL bool   // Keep bound variables in recorded statements (dev only)
	DBName     string // Value for the db.name attribute
}

// DBTracingConfigFrom builds the database tracing settings from application config.
func DBTracingConfigFrom(cfg *config.Config) DBTracingConfig {
	return DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}
}

// RegisterDBTracing installs the otelgorm plugin on db when tracing is enabled.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{}
	if cfg.DBName != "" {
		opts = append(opts, otelgorm.WithDBName(cfg.DBName))
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm plugin: %w", err)
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.String("db_name", cfg.DBName),
	)
	return nil
}
