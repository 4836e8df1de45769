package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores the JSON document under a single key. SET replaces
// the value atomically.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend creates a Redis-based backend. Key may be empty.
func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = "portfolio:db"
	}
	return &RedisBackend{client: client, key: key}
}

func (r *RedisBackend) Name() string { return "redis" }

func (r *RedisBackend) Read(ctx context.Context) (*Document, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return &doc, nil
}

func (r *RedisBackend) Write(ctx context.Context, doc *Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, b, 0).Err()
}
