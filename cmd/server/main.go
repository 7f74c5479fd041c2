package main

import (
	"os"

	"todo-list-api/internal/auth"
	"todo-list-api/internal/config"
	"todo-list-api/internal/database"
	"todo-list-api/internal/logging"
	"todo-list-api/internal/realtime"
	"todo-list-api/internal/routes"
	"todo-list-api/internal/storage"
	"todo-list-api/internal/todo"

	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger", "err", err)
	}

	var store todo.Storage
	switch cfg.Storage {
	case config.StorageMemory:
		store = storage.NewMemoryStore(cfg.StorageKey)
		logger.Warn("Using in-memory storage, changes are lost on exit")
	default:
		// Init database
		db, err := database.Open(cfg.DBPath, logging.GormLevel(logger))
		if err != nil {
			logger.Fatal("Failed to open database", "path", cfg.DBPath, "err", err)
		}
		sqlStore := storage.NewSQLiteStore(db, cfg.StorageKey)
		logger.Info("Using SQLite storage", "path", cfg.DBPath, "key", sqlStore.Key())
		store = sqlStore
	}

	hub := realtime.NewHub(logger)
	registry := todo.New(store, todo.Options{
		Logger:       logger,
		Notifier:     hub,
		ResetCorrupt: cfg.ResetCorrupt,
	})
	if err := registry.Init(); err != nil {
		logger.Fatal("Failed to initialize registry", "key", cfg.StorageKey, "err", err)
	}

	var authenticator *auth.Authenticator
	if cfg.Auth.Enabled() {
		if authenticator, err = auth.New(cfg.Auth); err != nil {
			logger.Fatal("Failed to configure auth", "err", err)
		}
	}

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes(routes.Deps{
		Registry: registry,
		Hub:      hub,
		Auth:     authenticator,
		Logger:   logger,
	})

	logger.Info("Server starting", "addr", cfg.Addr, "storage", cfg.Storage, "auth", cfg.Auth.Enabled())
	if err := ginRoutes.Run(cfg.Addr); err != nil {
		logger.Fatal("Failed to start server", "err", err)
	}
}
