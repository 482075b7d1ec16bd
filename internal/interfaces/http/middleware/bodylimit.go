package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nsnodes/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose declared body exceeds maxBytes and caps
// the reader for the rest. A non-positive maxBytes disables the limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodePayloadTooLarge,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
