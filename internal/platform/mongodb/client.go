package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Collection names
const (
	TasksCollection = "tasks"
	UsersCollection = "users"
)

// DatabaseName picks the database to use: override when set, otherwise the
// path segment of uri, otherwise config.DefaultDatabaseName.
func DatabaseName(uri, override string) string {
	if override != "" {
		return override
	}
	cs, err := connstring.ParseAndValidate(uri)
	if err == nil && cs.Database != "" {
		return cs.Database
	}
	return config.DefaultDatabaseName
}

// Connect opens a client for cfg.URI, verifies it with a ping, and returns
// the client together with the resolved database handle. The caller owns the
// client and must Disconnect it.
func Connect(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (*mongo.Client, *mongo.Database, error) {
	timeout := time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Best effort; the ping failure is the error worth reporting.
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	name := DatabaseName(cfg.URI, cfg.Name)
	logger.Info("document store connection established", "database", name)

	return client, client.Database(name), nil
}
