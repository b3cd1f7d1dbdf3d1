package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"medialog/database"
	"medialog/internal/config"
	"medialog/internal/http-api/repository"
	"medialog/internal/http-api/service"
	"medialog/internal/ingestion/bangumi"
)

// bangumi-sync replays the configured user's full Bangumi collection into
// the media log. Safe to re-run: every entry is an upsert keyed on its
// subject id.
func main() {
	log.Println("=== Bangumi Sync ===")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if cfg.BangumiUsername == "" {
		log.Fatal("BANGUMI_USERNAME must be set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("could not get database handle: %v", err)
	}
	defer sqlDB.Close()

	itemService := service.NewItemService(repository.NewItemRepository(db))
	syncService := bangumi.NewSyncService(bangumi.SyncConfig{
		BangumiAPIURL: cfg.BangumiAPIURL,
		Username:      cfg.BangumiUsername,
		WorkerCount:   cfg.SyncWorkers,
		PageSize:      cfg.SyncPageSize,
	}, itemService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received, stopping sync...")
		cancel()
	}()

	stats, err := syncService.Run(ctx)
	if err != nil {
		if err == context.Canceled {
			log.Println("Sync cancelled")
		} else {
			log.Fatalf("Sync failed: %v", err)
		}
	}
	if stats != nil {
		stats.LogSummary()
	}
}
