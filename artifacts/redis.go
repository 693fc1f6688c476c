package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tubenotes/types"
)

const redisKeyPrefix = "tubenotes:artifact:"

// RedisStore keeps artifacts as JSON values that expire after ttl
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(runID string) string {
	return redisKeyPrefix + runID
}

func (r *RedisStore) Save(ctx context.Context, runID string, a types.Artifact) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, redisKey(runID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store artifact in redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, runID string) (types.Artifact, error) {
	raw, err := r.rdb.Get(ctx, redisKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.Artifact{}, ErrNotFound
	}
	if err != nil {
		return types.Artifact{}, fmt.Errorf("failed to read artifact from redis: %w", err)
	}

	var a types.Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return types.Artifact{}, fmt.Errorf("decode artifact: %w", err)
	}
	return a, nil
}

// Ping checks the connection
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
