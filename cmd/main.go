package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"coffee-chat-backend/internal/api"
	"coffee-chat-backend/internal/api/routes"
	"coffee-chat-backend/internal/config"
	"coffee-chat-backend/internal/logger"
)

func main() {
	// Load settings for APP_ENV (reads .env when present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLogger := logger.NewZapLogger(cfg.Log.FilePath, cfg.IsProduction())
	defer appLogger.Sync()

	for _, warning := range cfg.Warnings() {
		appLogger.Warn("config", warning, nil)
	}

	// Connect to database
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := config.MigrateAllModels(db, cfg.Database.AutoMigrate); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Create and configure Fiber app
	app := api.NewServer(cfg, appLogger)

	// Register routes
	routes.Register(app, db)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := api.Serve(app, cfg, appLogger, quit); err != nil {
		appLogger.Error("api", "server stopped with error", map[string]interface{}{"error": err})
	}

	if err := config.CloseDB(db); err != nil {
		appLogger.Error("database", "failed to close database", map[string]interface{}{"error": err})
	}
	appLogger.Info("api", "Server stopped", nil)
}
