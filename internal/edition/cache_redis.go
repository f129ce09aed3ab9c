// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package edition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/constants"
)

// RedisCache implements [Cache] over Redis.
//
// Hydrated editions (page roster included) are stored as JSON under
// "epaper:edition:{id}" with a bounded TTL, so the morning traffic spike
// reads each edition from Postgres once per node, not once per reader.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed edition cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

/*
Get returns the cached edition, or (nil, nil) on a miss.

Description: Decode failures count as misses and the stale key is dropped,
so a payload shape change after a deploy self-heals.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Edition: Hydrated edition, nil on miss
  - error: Connectivity errors only
*/
func (cache *RedisCache) Get(context context.Context, id string) (*Edition, error) {
	key := constants.RedisPrefixEdition + id

	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_edition_get_failed: %w", err)
	}

	var edition Edition
	if err := json.Unmarshal(payload, &edition); err != nil {
		cache.client.Del(context, key)
		return nil, nil
	}

	return &edition, nil
}

/*
Set stores a hydrated edition under its ID with [constants.EditionCacheTTL].
*/
func (cache *RedisCache) Set(context context.Context, edition *Edition) error {
	payload, err := json.Marshal(edition)
	if err != nil {
		return fmt.Errorf("redis_edition_encode_failed: %w", err)
	}

	key := constants.RedisPrefixEdition + edition.ID
	if err := cache.client.Set(context, key, payload, constants.EditionCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_edition_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached copy after any editorial mutation.
*/
func (cache *RedisCache) Invalidate(context context.Context, id string) error {
	key := constants.RedisPrefixEdition + id
	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_edition_invalidate_failed: %w", err)
	}
	return nil
}
