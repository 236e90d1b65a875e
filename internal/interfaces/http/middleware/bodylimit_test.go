package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBodyLimitRouter(limit int64, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.POST("/catalog/templates", handler)
	return router
}

func TestBodyLimit(t *testing.T) {
	okHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	}

	t.Run("passes a body within the limit", func(t *testing.T) {
		router := newBodyLimitRouter(1024, okHandler)

		req := httptest.NewRequest("POST", "/catalog/templates", strings.NewReader(`{"code":"LAPTOP"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects an oversized declared length", func(t *testing.T) {
		router := newBodyLimitRouter(100, okHandler)

		req := httptest.NewRequest("POST", "/catalog/templates", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = 200
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
	})

	t.Run("caps chunked uploads while reading", func(t *testing.T) {
		router := newBodyLimitRouter(50, func(c *gin.Context) {
			buf := make([]byte, 200)
			if _, err := c.Request.Body.Read(buf); err != nil {
				c.String(http.StatusBadRequest, "body too large")
				return
			}
			c.String(http.StatusOK, "ok")
		})

		// No declared length, the reader has to enforce the cap
		req := httptest.NewRequest("POST", "/catalog/templates", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero limit disables the check", func(t *testing.T) {
		router := newBodyLimitRouter(0, okHandler)

		req := httptest.NewRequest("POST", "/catalog/templates", strings.NewReader(strings.Repeat("x", 10000)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
