package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eldermoor/menagerie/menagerie"
	"github.com/eldermoor/menagerie/menagerie/database"
	"github.com/eldermoor/menagerie/menagerie/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Menagerie economy engine",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := menagerie.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	customHandler.SetLevel(cfg.Log.Level)
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		db.Close()
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	app := menagerie.New(*cfg, version, commit)
	app.DB = db
	app.SetupRealms()

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 5*time.Minute)
	if err := app.LoadState(loadCtx); err != nil {
		loadCancel()
		slog.Error("Failed to restore realm state",
			slog.String("type", "db"),
			slog.Any("error", err))
		db.Close()
		os.Exit(-1)
	}
	loadCancel()

	app.StartFlushers()

	slog.Info("Menagerie is running. Press CTRL-C to exit.",
		slog.String("realms", app.Farm.Engine.Realm()+", "+app.Academy.Engine.Realm()))

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s

	slog.Info("Shutting down...")
	if err := app.Shutdown(30 * time.Second); err != nil {
		slog.Error("Shutdown did not complete cleanly", slog.Any("error", err))
		os.Exit(-1)
	}
}
