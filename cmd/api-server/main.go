package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"medialog/database"
	"medialog/internal/config"
	"medialog/internal/http-api/handler"
	"medialog/internal/http-api/middleware"
	"medialog/internal/http-api/repository"
	"medialog/internal/http-api/service"
	"medialog/internal/ingestion/bangumi"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("could not get database handle: %v", err)
	}
	defer sqlDB.Close()

	itemRepo := repository.NewItemRepository(db)
	itemService := service.NewItemService(itemRepo)
	bangumiClient := bangumi.NewClient(cfg.BangumiAPIURL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})
	r.GET("/docs", handler.Docs)

	authHandler := handler.NewAuthHandler(cfg.AdminToken)
	r.GET("/auth/verify", authHandler.Verify)

	itemHandler := handler.NewItemHandler(itemService, logger)
	itemHandler.RegisterRoutes(
		r.Group("/items"),
		middleware.AdminAuth(cfg.AdminToken),
		middleware.BangumiAuth(bangumiClient, cfg.BangumiUsername),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
