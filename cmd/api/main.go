package main

// @title Places Microservice API
// @version 1.0.0
// @description Поиск кафе, библиотек и коворкингов рядом с точкой через OpenStreetMap (Overpass) или Google Places.
// @description
// @description Основные возможности:
// @description - Поиск мест по категориям в радиусе с кешированием последнего снимка
// @description - Фильтрация по категориям без повторного запроса к провайдеру
// @description - Изображения брендов через Wikidata
// @description - Прокси фотографий Google Places

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/places-microservice/docs"
	"github.com/places-microservice/internal/app"
	"github.com/places-microservice/internal/config"
	httpDelivery "github.com/places-microservice/internal/delivery/http"
	"github.com/places-microservice/internal/delivery/http/handler"
	"github.com/places-microservice/internal/pkg/logger"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "places-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Places Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("default_provider", string(cfg.Places.Provider)),
		zap.Duration("snapshot_ttl", cfg.Cache.SnapshotTTL),
	)

	// 3. Storage, providers and use cases
	deps, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	// 4. Health check
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := deps.Store.Health(ctx); err != nil {
		cancel()
		log.Fatal("Storage health check failed", zap.Error(err))
	}
	cancel()
	log.Info("Storage healthy")

	// 5. Initialize HTTP Handlers
	placesHandler := handler.NewPlacesHandler(deps.Places, deps.Photos, log)
	brandHandler := handler.NewBrandHandler(deps.Brands, log)
	healthHandler := handler.NewHealthHandler(cfg.Storage.Backend, deps.Store, log)

	// 6. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, placesHandler, brandHandler, healthHandler)

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
