// Package main implements the entry point for the task management API server,
// which serves JWT-authenticated task CRUD and public task statistics backed
// by a MongoDB document store.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/mongodb"
	"github.com/phrazzld/task-api/internal/redact"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("server exited with error: %v", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration, connects to the document store, seeds bootstrap
// data and serves HTTP until ctx is canceled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"allowed_origins", cfg.CORS.AllowedOrigins)
	if cfg.Auth.UsesDefaultSecret() {
		l.Warn("JWT_SECRET is not set; using the development signing secret")
	}

	client, db, err := mongodb.Connect(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			l.Error("error disconnecting from document store", "error", redact.Error(err))
		}
	}()

	userStore := mongodb.NewMongoUserStore(db, l)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	taskStore := mongodb.NewMongoTaskStore(db, l)

	app, err := newApplication(ctx, cfg, l, userStore, taskStore)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	slog.Info("application initialized", "database", db.Name())
	return app.Run(ctx)
}
