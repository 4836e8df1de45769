// Package database opens the MongoDB connection behind the mongo store
// backend.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/technova/portfolio-api/internal/config"
	"github.com/technova/portfolio-api/pkg/logger"
)

// Retry controls how often ConnectMongo tries before giving up. The wait
// doubles after every failed attempt.
type Retry struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetry tolerates a database container that starts after the API.
var DefaultRetry = Retry{Attempts: 5, Backoff: time.Second}

// ConnectMongo connects and pings cfg.URI, retrying per r. Each attempt is
// bounded by cfg.Timeout. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, cfg config.MongoDBConfig, r Retry) (*mongo.Client, error) {
	if r.Attempts <= 0 {
		r.Attempts = 1
	}
	backoff := r.Backoff
	var lastErr error
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		client, err := connectOnce(ctx, cfg.URI, cfg.Timeout)
		if err == nil {
			if attempt > 1 {
				logger.Infof("mongo: connected on attempt %d/%d", attempt, r.Attempts)
			}
			return client, nil
		}
		lastErr = err
		logger.Warnf("mongo: attempt %d/%d failed: %v", attempt, r.Attempts, err)
		if attempt == r.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("mongo connect: %w (last error: %v)", ctx.Err(), lastErr)
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("mongo connect failed after %d attempts: %w", r.Attempts, lastErr)
}

func connectOnce(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
