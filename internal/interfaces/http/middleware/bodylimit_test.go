package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nsnodes/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodyRouter(limit int64) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), BodyLimit(limit))
	router.POST("/test", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestBodyLimit_WithinLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte("small body")))
	w := httptest.NewRecorder()
	bodyRouter(1024).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimit_DeclaredLengthTooLarge(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(strings.Repeat("x", 200))))
	req.Header.Set(RequestIDHeader, "req-body")
	w := httptest.NewRecorder()
	bodyRouter(100).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodePayloadTooLarge, resp.Error.Code)
	assert.Equal(t, "req-body", resp.Error.RequestID)
}

func TestBodyLimit_StreamingBodyCapped(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", io.NopCloser(strings.NewReader(strings.Repeat("x", 200))))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	bodyRouter(100).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "too large", w.Body.String())
}

func TestBodyLimit_Disabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(strings.Repeat("x", 200))))
	w := httptest.NewRecorder()
	bodyRouter(0).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
