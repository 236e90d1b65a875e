package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/erp/customs/internal/application/catalog"
	customsapp "github.com/erp/customs/internal/application/customs"
	"github.com/erp/customs/internal/infrastructure/config"
	"github.com/erp/customs/internal/infrastructure/logger"
	"github.com/erp/customs/internal/infrastructure/migration"
	"github.com/erp/customs/internal/infrastructure/persistence"
	"github.com/erp/customs/internal/interfaces/http/handler"
	"github.com/erp/customs/internal/interfaces/http/middleware"
	"github.com/erp/customs/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting Customs Catalog Service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with zap-backed GORM logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Backfill customs flags for category trees created before the
	// customs columns existed
	if err := migration.MigrateLegacyCustomsCategory(context.Background(), db.DB, log); err != nil {
		log.Fatal("Legacy customs category migration failed", zap.Error(err))
	}

	// Initialize repositories
	tariffCodeRepo := persistence.NewGormTariffCodeRepository(db.DB)
	linkRepo := persistence.NewGormTariffCodeLinkRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	// Initialize application services
	tariffCodeService := customsapp.NewTariffCodeService(tariffCodeRepo, linkRepo)
	resolutionService := customsapp.NewResolutionService(templateRepo, productRepo, categoryRepo, linkRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, templateRepo, linkRepo, tariffCodeRepo)
	templateService := catalogapp.NewTemplateService(templateRepo, productRepo, categoryRepo, linkRepo, tariffCodeRepo)

	// Initialize handlers
	tariffCodeHandler := handler.NewTariffCodeHandler(tariffCodeService)
	resolutionHandler := handler.NewResolutionHandler(resolutionService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	templateHandler := handler.NewTemplateHandler(templateService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply tenant resolution middleware to API routes
	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.SkipPaths = append(tenantConfig.SkipPaths,
		"/api/v1/ping",
		"/api/v1/system/ping",
		"/api/v1/system/info",
	)
	tenantConfig.Logger = log
	r.Use(middleware.TenantMiddlewareWithConfig(tenantConfig))

	// Customs domain (tariff codes, classification resolution)
	customsRoutes := router.NewDomainGroup("customs", "/customs")
	customsRoutes.POST("/tariff-codes", tariffCodeHandler.Create)
	customsRoutes.GET("/tariff-codes", tariffCodeHandler.List)
	customsRoutes.GET("/tariff-codes/:id", tariffCodeHandler.GetByID)
	customsRoutes.PUT("/tariff-codes/:id", tariffCodeHandler.Update)
	customsRoutes.GET("/tariff-codes/:id/usage", tariffCodeHandler.Usage)
	customsRoutes.DELETE("/tariff-codes/:id", tariffCodeHandler.Delete)

	// Catalog domain (categories, templates, product variants)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/categories", categoryHandler.Create)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.GET("/categories/roots", categoryHandler.GetRoots)
	catalogRoutes.GET("/categories/:id", categoryHandler.GetByID)
	catalogRoutes.GET("/categories/:id/children", categoryHandler.GetChildren)
	catalogRoutes.PUT("/categories/:id", categoryHandler.Update)
	catalogRoutes.PUT("/categories/:id/customs", categoryHandler.UpdateCustoms)
	catalogRoutes.POST("/categories/:id/move", categoryHandler.Move)
	catalogRoutes.GET("/categories/:id/tariff-codes", categoryHandler.ListTariffCodes)
	catalogRoutes.PUT("/categories/:id/tariff-codes", categoryHandler.ReplaceTariffCodes)
	catalogRoutes.GET("/categories/:id/tariff-codes/resolve", resolutionHandler.ResolveForCategory)
	catalogRoutes.DELETE("/categories/:id", categoryHandler.Delete)

	catalogRoutes.POST("/templates", templateHandler.Create)
	catalogRoutes.GET("/templates", templateHandler.List)
	catalogRoutes.GET("/templates/:id", templateHandler.GetByID)
	catalogRoutes.PUT("/templates/:id", templateHandler.Update)
	catalogRoutes.PUT("/templates/:id/customs", templateHandler.UpdateCustoms)
	catalogRoutes.GET("/templates/:id/tariff-codes", templateHandler.ListTariffCodes)
	catalogRoutes.PUT("/templates/:id/tariff-codes", templateHandler.ReplaceTariffCodes)
	catalogRoutes.GET("/templates/:id/tariff-codes/resolve", resolutionHandler.ResolveForTemplate)
	catalogRoutes.DELETE("/templates/:id", templateHandler.Delete)
	catalogRoutes.POST("/templates/:id/products", templateHandler.CreateProduct)
	catalogRoutes.GET("/templates/:id/products", templateHandler.ListProducts)
	catalogRoutes.GET("/products/:id", templateHandler.GetProduct)
	catalogRoutes.GET("/products/:id/tariff-codes/resolve", resolutionHandler.ResolveForProduct)
	catalogRoutes.DELETE("/products/:id", templateHandler.DeleteProduct)

	// Register all domain groups
	r.Register(customsRoutes).
		Register(catalogRoutes)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness plus database connectivity
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
