package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	arregloapp "github.com/salon/backend/internal/application/arreglo"
	billingapp "github.com/salon/backend/internal/application/billing"
	expenseapp "github.com/salon/backend/internal/application/expense"
	exportapp "github.com/salon/backend/internal/application/export"
	giftcardapp "github.com/salon/backend/internal/application/giftcard"
	identityapp "github.com/salon/backend/internal/application/identity"
	inventoryapp "github.com/salon/backend/internal/application/inventory"
	payrollapp "github.com/salon/backend/internal/application/payroll"
	reportapp "github.com/salon/backend/internal/application/report"
	staffapp "github.com/salon/backend/internal/application/staff"
	"github.com/salon/backend/internal/infrastructure/auth"
	"github.com/salon/backend/internal/infrastructure/cache"
	"github.com/salon/backend/internal/infrastructure/config"
	"github.com/salon/backend/internal/infrastructure/event"
	"github.com/salon/backend/internal/infrastructure/logger"
	"github.com/salon/backend/internal/infrastructure/persistence"
	"github.com/salon/backend/internal/infrastructure/telemetry"
	"github.com/salon/backend/internal/interfaces/http/handler"
	"github.com/salon/backend/internal/interfaces/http/middleware"
	"github.com/salon/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "github.com/salon/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Salon Backend API
//	@version		1.0
//	@description	Business management API for the salon: payroll, gift cards, expenses, repairs, invoicing and reporting.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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
		_ = log.Sync()
	}()

	log.Info("Starting salon backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	dbOpts := []persistence.Option{persistence.WithLogger(gormLog)}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbOpts = append(dbOpts, persistence.WithTracing())
	}
	db, err := persistence.NewDatabase(&cfg.Database, dbOpts...)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist and report cache share the Redis instance when it
	// is enabled; otherwise both fall back to in-process stores.
	var (
		blacklist   auth.TokenBlacklist
		reportCache cache.ReportCache
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		reportCache = cache.NewRedisReportCache(redisClient, log)
		log.Info("Redis connected", zap.String("host", cfg.Redis.Host))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		reportCache = cache.NewInMemoryReportCache()
		log.Info("Redis disabled, using in-memory token blacklist and report cache")
	}

	// Repositories
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	salaryRecordRepo := persistence.NewGormSalaryRecordRepository(db.DB)
	giftCardRepo := persistence.NewGormGiftCardRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRecordRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	arregloRepo := persistence.NewGormArregloRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Event bus with the report cache invalidation subscriber
	eventBus := event.NewInMemoryBus(log)
	cacheInvalidation := reportapp.NewCacheInvalidationHandler(reportCache, log)
	eventBus.Subscribe(cacheInvalidation, cacheInvalidation.EventTypes()...)

	// Business constants
	insuredMinimum := decimal.NewFromFloat(cfg.Business.InsuredMinimum)
	taxRate := decimal.NewFromFloat(cfg.Business.InvoiceTaxRate)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	roleResolver := persistence.NewRoleResolver(userRepo)
	authService := identityapp.NewAuthService(userRepo, roleResolver, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, authService, log)
	employeeService := staffapp.NewService(employeeRepo, log)
	payrollService := payrollapp.NewService(salaryRecordRepo, employeeRepo, insuredMinimum, log)
	giftCardService := giftcardapp.NewService(giftCardRepo, eventBus, cfg.Business.GiftCardValidityDays, log)
	expenseService := expenseapp.NewService(expenseRepo, log)
	stockService := inventoryapp.NewService(stockItemRepo, log)
	arregloService := arregloapp.NewService(arregloRepo, log)
	invoiceService := billingapp.NewService(invoiceRepo, eventBus, taxRate, log)
	reportService := reportapp.NewService(invoiceRepo, giftCardRepo, arregloRepo, expenseRepo,
		salaryRecordRepo, insuredMinimum, reportCache, log)
	exportService := exportapp.NewService(salaryRecordRepo, invoiceRepo, giftCardRepo, expenseRepo,
		insuredMinimum, log)

	// HTTP handlers
	systemHandler := handler.NewSystemHandler()
	authHandler := handler.NewAuthHandler(authService, userService)
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authHandler.SetLoginRateLimit(middleware.AuthRateLimit(authLimiter))
	}
	userHandler := handler.NewUserHandler(userService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	payrollHandler := handler.NewPayrollHandler(payrollService)
	giftCardHandler := handler.NewGiftCardHandler(giftCardService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	stockHandler := handler.NewStockHandler(stockService)
	arregloHandler := handler.NewArregloHandler(arregloService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	reportHandler := handler.NewReportHandler(reportService)
	exportHandler := handler.NewExportHandler(exportService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Liveness endpoint outside API versioning
	engine.GET("/health", healthHandler(db))

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Versioned API behind JWT auth
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
		},
		SkipPathPrefixes: []string{
			"/swagger",
		},
		Logger: log,
	}))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(
			systemHandler,
			authHandler,
			userHandler,
			employeeHandler,
			payrollHandler,
			giftCardHandler,
			expenseHandler,
			stockHandler,
			arregloHandler,
			invoiceHandler,
			reportHandler,
			exportHandler,
		).
		Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
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
