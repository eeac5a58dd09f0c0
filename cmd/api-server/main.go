package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"comichub/database"
	"comichub/internal/api/handler"
	"comichub/internal/api/middleware"
	"comichub/internal/api/repository"
	"comichub/internal/api/service"
	"comichub/internal/cache"
	"comichub/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it comic reads just skip the cache.
	var comicCache *cache.ComicCache
	if rdb, err := cache.NewRedisClient(cfg); err != nil {
		logger.Warn("redis disabled", "error", err)
	} else {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, caching disabled", "error", err)
		} else {
			comicCache = cache.NewComicCache(rdb, cfg.CacheTTL)
		}
		cancel()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	permRepo := repository.NewPermissionRepository(db)
	comicRepo := repository.NewComicRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	tagRepo := repository.NewTagRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, refreshTokenRepo, permRepo, cfg)
	permSvc := service.NewPermissionService(userRepo, permRepo)
	userSvc := service.NewUserService(userRepo, permSvc)
	comicSvc := service.NewComicService(comicRepo, tagRepo, comicCache)
	chapterSvc := service.NewChapterService(chapterRepo, comicRepo)
	tagSvc := service.NewTagService(tagRepo)
	resourceSvc := service.NewResourceService(resourceRepo, permSvc, cfg.UploadDir, cfg.UploadMaxSize)

	// Handlers
	userHandler := handler.NewUserHandler(authSvc, userSvc, cfg.AccessTokenTTL)
	comicHandler := handler.NewComicHandler(comicSvc, cfg.PublicOrigin)
	chapterHandler := handler.NewChapterHandler(chapterSvc)
	tagHandler := handler.NewTagHandler(tagSvc)
	resourceHandler := handler.NewResourceHandler(resourceSvc, cfg.PublicOrigin, cfg.UploadMaxSize)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/uploads", cfg.UploadDir)

	v1 := r.Group("/v1")
	comics := v1.Group("/comics")
	chapters := v1.Group("/chapters")
	userHandler.RegisterRoutes(v1.Group("/users"), permSvc)
	comicHandler.RegisterRoutes(comics, authSvc, permSvc)
	chapterHandler.RegisterRoutes(comics, chapters, authSvc, permSvc)
	tagHandler.RegisterRoutes(v1.Group("/tags"), authSvc, permSvc)
	resourceHandler.RegisterRoutes(v1.Group("/resources"), authSvc, permSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
