package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultMaxPoolSize    = 50

	// defaultTimeout bounds every per-call repository operation.
	defaultTimeout = 10 * time.Second
)

// Config holds the settings for the MongoDB connection.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the initial connect and ping. Zero means the default.
	Timeout time.Duration
}

// Connect dials MongoDB, verifies the connection with a ping against the
// primary, and returns the client together with the configured database
// handle.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("aicv").
		SetMaxPoolSize(defaultMaxPoolSize)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
