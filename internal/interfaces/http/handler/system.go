package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsnodes/backend/internal/infrastructure/logger"
	"github.com/nsnodes/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger checks that a backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. db may be nil, in which case
// Health reports the database as unchecked.
func NewSystemHandler(name, version string, db Pinger) *SystemHandler {
	if version == "" {
		version = "dev"
	}
	return &SystemHandler{
		name:      name,
		version:   version,
		db:        db,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	h.Success(c, info)
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping is a liveness probe. It touches no dependency.
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	h.Success(c, response)
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Database string `json:"database"`
}

// Health reports whether the database answers a ping
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Database: "ok",
	}

	if h.db == nil {
		resp.Database = "unchecked"
		c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
		return
	}

	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "error"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp})
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
