// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/jmcomic-api/internal/jm"
	"github.com/taibuivan/jmcomic-api/internal/platform/constants"
)

// RedisStore is the part of a Redis client the detail cache uses.
// [*redis.Client] satisfies it.
type RedisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisDetailCache implements [DetailCache] using Redis.
//
// Views are stored as JSON under jm:detail:<kind>:<album_id>, so html and
// api results of the same album never mix.
type RedisDetailCache struct {
	client RedisStore
	ttl    time.Duration
}

// NewRedisDetailCache creates a Redis-backed [DetailCache].
func NewRedisDetailCache(client RedisStore, ttl time.Duration) *RedisDetailCache {
	return &RedisDetailCache{client: client, ttl: ttl}
}

// detailKey builds jm:detail:<kind>:<album_id>.
func detailKey(kind jm.ClientKind, albumID string) string {
	return fmt.Sprintf("%s%s:%s", constants.RedisPrefixDetail, kind, albumID)
}

/*
Get retrieves a cached detail view.

Returns:
  - *DetailView: The cached view, nil on a miss
  - bool: Whether the key was present
  - error: Connectivity or decoding errors
*/
func (cache *RedisDetailCache) Get(context context.Context, kind jm.ClientKind, albumID string) (*DetailView, bool, error) {
	payload, err := cache.client.Get(context, detailKey(kind, albumID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_detail_get_failed: %w", err)
	}

	var view DetailView
	if err := json.Unmarshal(payload, &view); err != nil {
		return nil, false, fmt.Errorf("redis_detail_decode_failed: %w", err)
	}

	return &view, true, nil
}

/*
Set stores a detail view with the cache TTL.
*/
func (cache *RedisDetailCache) Set(context context.Context, kind jm.ClientKind, albumID string, view *DetailView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("redis_detail_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, detailKey(kind, albumID), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_detail_set_failed: %w", err)
	}

	return nil
}
