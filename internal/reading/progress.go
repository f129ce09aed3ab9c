// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
Package reading exposes the e-paper viewer over HTTP: clients open a
session against an edition, stream their touch and scroll events, and read
back the resulting page/zoom state.

Every session wraps one [viewer.Session]; the server applies each event
batch synchronously, in arrival order, behind the viewer's own mutex.
Sessions are held in an in-memory TTL store and evicted after idle
timeout, closing the underlying viewer.

Authenticated readers additionally get cross-device resume: confirmed page
changes are written to Redis and the next session on the same edition
opens at the saved page.
*/
package reading

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/constants"
)

// # Reading Progress

// ProgressStore persists per-user resume points.
type ProgressStore interface {

	/*
		Save records the reader's last confirmed page for an edition.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - editionID: string (UUID)
		  - pageIndex: int

		Returns:
		  - error: Storage failures
	*/
	Save(context context.Context, userID, editionID string, pageIndex int) error

	/*
		Load returns the saved page index for a user/edition pair.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - editionID: string (UUID)

		Returns:
		  - int: Saved page index
		  - bool: Whether a resume point exists
		  - error: Storage failures
	*/
	Load(context context.Context, userID, editionID string) (int, bool, error)
}

// RedisProgressStore implements [ProgressStore] over Redis.
//
// Keys follow "reading:progress:{userID}:{editionID}" and carry a long
// idle TTL so resume points for abandoned editions eventually clear out.
type RedisProgressStore struct {
	client *redis.Client
}

// NewRedisProgressStore creates a Redis-backed progress store.
func NewRedisProgressStore(client *redis.Client) *RedisProgressStore {
	return &RedisProgressStore{client: client}
}

// progressKey builds the Redis key for a user/edition pair.
func progressKey(userID, editionID string) string {
	return fmt.Sprintf("%s%s:%s", constants.RedisPrefixProgress, userID, editionID)
}

// Save records the resume point with [constants.ProgressTTL].
func (store *RedisProgressStore) Save(context context.Context, userID, editionID string, pageIndex int) error {
	key := progressKey(userID, editionID)
	if err := store.client.Set(context, key, pageIndex, constants.ProgressTTL).Err(); err != nil {
		return fmt.Errorf("redis_progress_save_failed: %w", err)
	}
	return nil
}

// Load returns the saved page index, reporting absence without error.
func (store *RedisProgressStore) Load(context context.Context, userID, editionID string) (int, bool, error) {
	key := progressKey(userID, editionID)

	raw, err := store.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis_progress_load_failed: %w", err)
	}

	pageIndex, err := strconv.Atoi(raw)
	if err != nil {
		// Corrupted value; treat as absent rather than failing the open.
		return 0, false, nil
	}

	return pageIndex, true, nil
}
