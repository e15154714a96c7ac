// File: oneq/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oneq/config"
	"oneq/cron"
	"oneq/database"
	vendorRepoPkg "oneq/database/repository/vendor"
	"oneq/handlers"
	"oneq/middleware"
	"oneq/routes"
	"oneq/services/chat"
	"oneq/services/intelligence"
	"oneq/services/scoring"
	"oneq/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	vendorRepo := vendorRepoPkg.NewMongoVendorRepo()

	// services.
	engine := scoring.NewEngine(scoring.FromAppConfig())
	matcherService := &scoring.DefaultMatcherService{
		VendorRepo:  vendorRepo,
		CacheClient: utils.GetCacheClient(),
		Engine:      engine,
	}

	extractor, err := intelligence.NewGeminiExtractor(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize the extraction client: %v", err)
	}

	sessionStore := chat.NewRedisSessionStore(utils.GetSessionCacheClient(), config.SessionTTL())
	orchestrator := chat.NewSessionOrchestrator(
		sessionStore,
		extractor,
		matcherService,
		config.ExtractTimeout(),
		config.AppConfig.RecommendLimit,
		logger,
	)

	cron.InitSessionSweeper(orchestrator)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Score:  handlers.NewScoreHandler(matcherService, logger),
		Chat:   handlers.NewChatHandler(orchestrator, logger),
		Vendor: handlers.NewVendorHandler(vendorRepo, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
