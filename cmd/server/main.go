package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flatrock-dev/quotequiz-service/internal/cache"
	"github.com/flatrock-dev/quotequiz-service/internal/config"
	"github.com/flatrock-dev/quotequiz-service/internal/database"
	"github.com/flatrock-dev/quotequiz-service/internal/handlers"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories/postgres"
	"github.com/flatrock-dev/quotequiz-service/internal/services"
	"github.com/flatrock-dev/quotequiz-service/internal/utils"
	"github.com/flatrock-dev/quotequiz-service/internal/validator"
	"github.com/flatrock-dev/quotequiz-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.IsDevelopment() {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	repo := postgres.NewRepository(db)

	ctx := context.Background()
	if cfg.SeedOnBoot {
		if err := database.Seed(ctx, repo, slogLogger); err != nil {
			logger.Error("Failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	var cacheService cache.CacheService = cache.NoopCache{}
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, author cache disabled", "error", err)
	} else {
		cacheService = cache.NewRedisCache(redisClient, slogLogger)
		defer redisClient.Close()
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(services.ManagerConfig{
		Repo:      repo,
		Cache:     cacheService,
		Publisher: publisher,
		Logger:    slogLogger,
		Validator: validator.New(),
		JWTSecret: cfg.JWTSecret,
		JWTIssuer: cfg.JWTIssuer,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(gin.Recovery())

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
