package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsnodes/backend/internal/domain/shared"
	"github.com/nsnodes/backend/internal/infrastructure/logger"
	"github.com/nsnodes/backend/internal/interfaces/http/dto"
	"github.com/nsnodes/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode sends an error response, deriving the status code from the error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindQuery binds and validates query parameters. On failure it writes the
// validation envelope and returns false.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// HandleError writes err as an error envelope. Domain errors keep their code;
// anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, domainErr.Code, domainErr.Message)
		return
	}

	logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}
