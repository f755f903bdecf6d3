package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcampaign "github.com/promoflow/backend/internal/application/campaign"
	"github.com/promoflow/backend/internal/application/catalog"
	appcontent "github.com/promoflow/backend/internal/application/content"
	"github.com/promoflow/backend/internal/application/identity"
	appsocial "github.com/promoflow/backend/internal/application/social"
	"github.com/promoflow/backend/internal/infrastructure/auth"
	"github.com/promoflow/backend/internal/infrastructure/config"
	"github.com/promoflow/backend/internal/infrastructure/generation"
	"github.com/promoflow/backend/internal/infrastructure/logger"
	"github.com/promoflow/backend/internal/infrastructure/persistence"
	"github.com/promoflow/backend/internal/infrastructure/scheduler"
	infrasocial "github.com/promoflow/backend/internal/infrastructure/social"
	"github.com/promoflow/backend/internal/interfaces/http/handler"
	"github.com/promoflow/backend/internal/interfaces/http/middleware"
	"github.com/promoflow/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PromoFlow server",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database with the zap-backed gorm logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Redis backs the token blacklist; the server still starts if Redis is
	// down because blacklist lookups fail open.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client", zap.Error(err))
		}
	}()
	blacklist := auth.NewRedisTokenBlacklist(redisClient)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	accountRepo := persistence.NewGormSocialAccountRepository(db.DB)
	campaignRepo := persistence.NewGormCampaignRepository(db.DB)
	postRepo := persistence.NewGormScheduledPostRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identity.NewAuthService(userRepo, jwtService, blacklist, log)
	productService := catalog.NewProductService(productRepo)
	accountService := appsocial.NewAccountService(accountRepo, log)

	generator := generation.NewLimiter(generation.NewGeminiClient(&cfg.Generation), &cfg.Generation, log)
	contentService := appcontent.NewContentService(postRepo, productRepo, generator, log)

	campaignService := appcampaign.NewCampaignService(
		txScope, campaignRepo, postRepo, productRepo, contentService, log)
	dispatchService := appcampaign.NewDispatchService(
		postRepo, campaignRepo, productRepo, accountRepo, infrasocial.NewRegistry(), log, cfg.Dispatch.BatchLimit)

	// Periodic dispatch sweep
	var trigger *scheduler.DispatchTrigger
	if cfg.Scheduler.Enabled {
		trigger = scheduler.NewDispatchTrigger(&cfg.Scheduler, dispatchService, log)
		if err := trigger.Start(); err != nil {
			log.Fatal("Failed to start dispatch trigger", zap.Error(err))
		}
		defer trigger.Stop()
	}

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", healthHandler(db, log))

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	campaignHandler := handler.NewCampaignHandler(campaignService, dispatchService, cfg.Dispatch.Budget)
	accountHandler := handler.NewSocialAccountHandler(accountService)
	contentHandler := handler.NewContentHandler(contentService)
	systemHandler := handler.NewSystemHandler()

	// Versioned API with JWT auth; register/login/refresh stay public
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	authGroup := router.NewDomainGroup("auth", "/auth").
		POST("/register", authHandler.Register).
		POST("/login", authHandler.Login).
		POST("/refresh", authHandler.Refresh).
		POST("/logout", authHandler.Logout).
		GET("/me", authHandler.Me)
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGroup.Use(middleware.RateLimit(authLimiter))
	}

	productGroup := router.NewDomainGroup("products", "/products").
		POST("", productHandler.Create).
		GET("", productHandler.List).
		GET("/:id", productHandler.GetByID).
		PUT("/:id", productHandler.Update).
		DELETE("/:id", productHandler.Delete)

	campaignGroup := router.NewDomainGroup("campaigns", "/campaigns").
		POST("", campaignHandler.Create).
		GET("", campaignHandler.List).
		POST("/dispatch", campaignHandler.Dispatch).
		GET("/:id", campaignHandler.GetByID).
		POST("/:id/pause", campaignHandler.Pause).
		POST("/:id/resume", campaignHandler.Resume).
		DELETE("/:id", campaignHandler.Delete).
		GET("/:id/posts", campaignHandler.ListPosts)

	postGroup := router.NewDomainGroup("posts", "/posts").
		DELETE("/:id", campaignHandler.DeletePost).
		POST("/:id/generate", contentHandler.GenerateForPost)

	accountGroup := router.NewDomainGroup("social-accounts", "/social-accounts").
		POST("", accountHandler.Connect).
		GET("", accountHandler.List).
		DELETE("/:id", accountHandler.Disconnect)

	systemGroup := router.NewDomainGroup("system", "/system").
		GET("/info", systemHandler.GetSystemInfo).
		GET("/ping", systemHandler.Ping)

	r.Register(authGroup).
		Register(productGroup).
		Register(campaignGroup).
		Register(postGroup).
		Register(accountGroup).
		Register(systemGroup)
	r.Setup()

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}
