package runs

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-dungeon/internal/redis"
)

// Key pattern: dungeon_run:{id}
const runKeyPrefix = "dungeon_run:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis repository for runs
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new run with the given TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Run == nil {
		return nil, errors.InvalidArgument(errRunNil)
	}
	if input.Run.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(input.Run)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run")
	}

	created, err := r.client.SetNX(ctx, buildKey(input.Run.ID), data, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store run in Redis")
	}
	if !created {
		return nil, errors.AlreadyExistsf("run %s already exists", input.Run.ID)
	}

	return &CreateOutput{Run: input.Run}, nil
}

// Get retrieves a run by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	data, err := r.client.Get(ctx, buildKey(input.ID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("run %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get run from Redis")
	}

	var run entities.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal run")
	}

	return &GetOutput{Run: &run}, nil
}

// Update replaces an existing run without touching its TTL
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Run == nil {
		return nil, errors.InvalidArgument(errRunNil)
	}
	if input.Run.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	data, err := json.Marshal(input.Run)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run")
	}

	err = r.client.SetArgs(ctx, buildKey(input.Run.ID), data, redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Err()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("run %s not found", input.Run.ID)
		}
		return nil, errors.Wrapf(err, "failed to update run in Redis")
	}

	return &UpdateOutput{Run: input.Run}, nil
}

// Delete removes a run
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	deleted, err := r.client.Del(ctx, buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete run from Redis")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("run %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

func buildKey(id string) string {
	return runKeyPrefix + id
}
