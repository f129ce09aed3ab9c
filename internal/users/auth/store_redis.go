// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/apperr"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/constants"
)

// # Refresh Token Repository

// RedisRefreshTokenRepository implements RefreshTokenRepository using Redis.
//
// Keys carry the platform refresh TTL, so expiry is enforced by Redis and
// the repository never has to reason about timestamps.
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

// NewRefreshTokenRepository creates a new Redis-backed RefreshTokenRepository.
func NewRefreshTokenRepository(client *redis.Client) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{client: client}
}

/*
Set stores a refresh token digest with its associated userID and TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisRefreshTokenRepository) Set(context context.Context, tokenHash, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixRefreshToken + tokenHash

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID for a given refresh token digest.

Description: Returns apperr.NotFound if the digest is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisRefreshTokenRepository) Get(context context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixRefreshToken + tokenHash

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Refresh token")
		}
		return "", fmt.Errorf("redis_refresh_token_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes the refresh token digest from Redis.

Description: Idempotent; deleting an absent digest is not an error.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisRefreshTokenRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixRefreshToken + tokenHash

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_delete_failed: %w", err)
	}

	return nil
}
