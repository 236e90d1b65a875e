package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsRouter(cfg CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/customs/tariff-codes", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func doCORS(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/customs/tariff-codes", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Empty(t, cfg.AllowOrigins, "no origins allowed until configured")
	assert.Contains(t, cfg.AllowMethods, "GET")
	assert.Contains(t, cfg.AllowMethods, "DELETE")
	assert.Contains(t, cfg.AllowHeaders, "X-Tenant-ID")
	assert.Contains(t, cfg.ExposeHeaders, "X-Request-ID")
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestCORS_EmptyWhitelist(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/customs/tariff-codes", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("cross-origin request gets no CORS headers", func(t *testing.T) {
		w := doCORS(router, "GET", "http://somewhere.example")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("same-origin request passes", func(t *testing.T) {
		w := doCORS(router, "GET", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("preflight still answered with 204", func(t *testing.T) {
		w := doCORS(router, "OPTIONS", "http://somewhere.example")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("listed origin is granted", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000", "http://erp.example"},
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		})

		for _, origin := range []string{"http://localhost:3000", "http://erp.example"} {
			w := doCORS(router, "GET", origin)
			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		}
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		router := corsRouter(CORSConfig{AllowOrigins: []string{"http://erp.example"}})

		w := doCORS(router, "GET", "http://other.example")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("wildcard grants any origin without credentials", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET"},
			// Browsers reject credentials on a * grant, the header
			// must stay off even when configured
			AllowCredentials: true,
		})

		w := doCORS(router, "GET", "http://any.example")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight from allowed origin carries the full grant", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:  []string{"http://erp.example"},
			AllowMethods:  []string{"GET", "POST", "PUT"},
			AllowHeaders:  []string{"Content-Type", "X-Tenant-ID"},
			ExposeHeaders: []string{"X-Request-ID"},
			MaxAge:        12 * time.Hour,
		})

		w := doCORS(router, "OPTIONS", "http://erp.example")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://erp.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, X-Tenant-ID", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight from unknown origin is 204 without headers", func(t *testing.T) {
		router := corsRouter(CORSConfig{AllowOrigins: []string{"http://erp.example"}})

		w := doCORS(router, "OPTIONS", "http://other.example")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("max age renders in seconds", func(t *testing.T) {
		tests := []struct {
			duration time.Duration
			expected string
		}{
			{time.Hour, "3600"},
			{24 * time.Hour, "86400"},
			{30 * time.Second, "30"},
		}
		for _, tt := range tests {
			router := corsRouter(CORSConfig{
				AllowOrigins: []string{"http://erp.example"},
				MaxAge:       tt.duration,
			})
			w := doCORS(router, "GET", "http://erp.example")
			assert.Equal(t, tt.expected, w.Header().Get("Access-Control-Max-Age"))
		}
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/customs/tariff-codes", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates a UUID when none supplied", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/customs/tariff-codes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		id := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps a caller supplied ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/customs/tariff-codes", nil)
		req.Header.Set("X-Request-ID", "upstream-id-7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "upstream-id-7", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "upstream-id-7", w.Body.String())
	})

	t.Run("IDs differ between requests", func(t *testing.T) {
		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest("GET", "/customs/tariff-codes", nil))
		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest("GET", "/customs/tariff-codes", nil))

		assert.NotEqual(t, first.Header().Get("X-Request-ID"), second.Header().Get("X-Request-ID"))
	})
}

func secureRouter(cfg SecurityConfig) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(SecureWithConfig(cfg))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	return w
}

func TestSecure_Defaults(t *testing.T) {
	w := secureRouter(DefaultSecurityConfig())

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))

	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "frame-ancestors 'none'")

	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "HSTS off until TLS is terminated here")

	permPolicy := w.Header().Get("Permissions-Policy")
	assert.Contains(t, permPolicy, "camera=()")
	assert.Contains(t, permPolicy, "microphone=()")
}

func TestSecureWithConfig(t *testing.T) {
	t.Run("HSTS with all flags", func(t *testing.T) {
		w := secureRouter(SecurityConfig{
			HSTSEnabled:           true,
			HSTSMaxAge:            63072000,
			HSTSIncludeSubdomains: true,
			HSTSPreload:           true,
		})
		assert.Equal(t, "max-age=63072000; includeSubDomains; preload",
			w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("HSTS max-age only", func(t *testing.T) {
		w := secureRouter(SecurityConfig{
			HSTSEnabled: true,
			HSTSMaxAge:  31536000,
		})
		assert.Equal(t, "max-age=31536000", w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("custom CSP and Permissions-Policy", func(t *testing.T) {
		w := secureRouter(SecurityConfig{
			CSPEnabled:                 true,
			CSPDirective:               "default-src 'none'; script-src 'self'",
			PermissionsPolicyEnabled:   true,
			PermissionsPolicyDirective: "geolocation=(self), microphone=()",
		})
		assert.Equal(t, "default-src 'none'; script-src 'self'", w.Header().Get("Content-Security-Policy"))
		assert.Equal(t, "geolocation=(self), microphone=()", w.Header().Get("Permissions-Policy"))
	})

	t.Run("optional headers disabled leaves the always-on set", func(t *testing.T) {
		w := secureRouter(SecurityConfig{})

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
	})
}
