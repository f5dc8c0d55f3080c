package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realestate-server/cache"
	"realestate-server/cms"
	"realestate-server/confs"
	"realestate-server/db"
	"realestate-server/logger"
	"realestate-server/server"
	"realestate-server/services"
	"realestate-server/storage"

	"github.com/gin-gonic/gin"
)

const janitorInterval = time.Minute

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger.Init("realestate-server", cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to DB: %v", err)
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Log.Fatalf("Failed to open media storage: %v", err)
	}

	galleries := cache.NewTTLCache[[]cms.Image](cfg.CMS.CacheTTL)
	srv, err := server.NewServer(cfg, database, store, galleries)
	if err != nil {
		logger.Log.Fatalf("Failed to build server: %v", err)
	}

	services.NewCacheJanitor(janitorInterval, srv.Evictors()).Start(ctx)

	if err := srv.Start(ctx); err != nil {
		logger.Log.Fatalf("Server stopped: %v", err)
	}
	logger.Log.Info("Server stopped")
}
