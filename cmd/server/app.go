package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds the shared dependencies the HTTP layer is built from.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService    auth.JWTService
	authenticator *auth.Authenticator
	taskService   service.TaskService
}

// newApplication wires services over the given stores and seeds bootstrap
// data. A seeding failure aborts startup.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	users store.UserStore,
	tasks store.TaskStore,
) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &application{
		config:    cfg,
		logger:    logger,
		userStore: users,
		taskStore: tasks,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_hours", cfg.Auth.TokenLifetimeHours)

	app.authenticator, err = auth.NewAuthenticator(users, app.jwtService, auth.NewBcryptVerifier(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	app.taskService, err = service.NewTaskService(tasks, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	if err := service.NewSeeder(users, tasks, logger).Seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed bootstrap data: %w", err)
	}

	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
