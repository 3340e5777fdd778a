package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis commands that run storage and the repair
// script issue. Any go-redis client, including one pointed at miniredis,
// satisfies it.
type Client interface {
	// Get loads one serialized run
	Get(ctx context.Context, key string) *redis.StringCmd
	// SetNX stores a new run without overwriting an existing id
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	// SetArgs carries the XX flag used to update a run only if it exists
	SetArgs(ctx context.Context, key string, value interface{}, a redis.SetArgs) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	// Scan walks run keys for the repair script
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var _ Client = (*redis.Client)(nil)
