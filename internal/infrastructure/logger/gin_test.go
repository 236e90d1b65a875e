package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func requestLogEntry(t *testing.T, recorded *observer.ObservedLogs) *observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP Request" {
			e := entry
			return &e
		}
	}
	t.Fatal("no HTTP Request entry logged")
	return nil
}

func fieldByKey(entry *observer.LoggedEntry, key string) (zapcore.Field, bool) {
	for _, field := range entry.Context {
		if field.Key == key {
			return field, true
		}
	}
	return zapcore.Field{}, false
}

func TestGinMiddleware_LogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/api/v1/customs/tariff-codes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []any{}})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/customs/tariff-codes?pattern=84&page=2", nil)
	req.Header.Set("User-Agent", "customs-client/1.0")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	entry := requestLogEntry(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	for _, key := range []string{"method", "path", "status", "latency", "client_ip", "user_agent"} {
		_, ok := fieldByKey(entry, key)
		assert.True(t, ok, "field %q missing", key)
	}
	query, ok := fieldByKey(entry, "query")
	require.True(t, ok)
	assert.Contains(t, query.String, "pattern=84")
}

func TestGinMiddleware_PropagatesRequestAndTenantIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.Use(func(c *gin.Context) {
		// Tenant middleware runs inside the API group, after logging.
		c.Set("tenant_id", "11111111-1111-1111-1111-111111111111")
		c.Next()
	})
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ok", nil)
	router.ServeHTTP(w, req)

	entry := requestLogEntry(t, recorded)

	requestID, ok := fieldByKey(entry, "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-123", requestID.String)

	tenantID, ok := fieldByKey(entry, "tenant_id")
	require.True(t, ok)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", tenantID.String)
}

func TestGinMiddleware_StatusLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{name: "2xx logs info", status: http.StatusOK, level: zapcore.InfoLevel},
		{name: "4xx logs warn", status: http.StatusUnprocessableEntity, level: zapcore.WarnLevel},
		{name: "5xx logs error", status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.InfoLevel)

			router := gin.New()
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/status", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/status", nil)
			router.ServeHTTP(w, req)

			entry := requestLogEntry(t, recorded)
			assert.Equal(t, tt.level, entry.Level)
		})
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("resolver blew up")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Panic recovered", logs[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, _ := observer.New(zapcore.InfoLevel)

	var fromContext *zap.Logger
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) {
		fromContext = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ok", nil)
	router.ServeHTTP(w, req)

	assert.NotNil(t, fromContext)
}

func TestGetGinLogger_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromContext *zap.Logger
	router := gin.New()
	router.GET("/ok", func(c *gin.Context) {
		fromContext = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ok", nil)
	router.ServeHTTP(w, req)

	require.NotNil(t, fromContext)
	assert.NotPanics(t, func() {
		fromContext.Info("noop")
	})
}
