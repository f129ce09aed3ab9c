// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package reading

import (
	"log/slog"

	"github.com/patrickmn/go-cache"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/apperr"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/constants"
	"github.com/atshybrid/kaburlu-epaper/internal/viewer"
)

// LiveSession binds one open viewer to its addressable session ID.
type LiveSession struct {
	ID        string
	EditionID string

	// UserID is empty for anonymous readers; progress sync is skipped.
	UserID string

	Viewer *viewer.Session
}

// # Session Hub

// Hub holds the live viewer sessions in an in-memory TTL store.
//
// Each interaction refreshes the session's idle TTL; a session untouched
// for [constants.SessionIdleTTL] is evicted by the sweeper and its viewer
// closed, releasing all per-page transform state. Phones that vanish
// mid-read therefore cannot leak sessions.
type Hub struct {
	store  *cache.Cache
	logger *slog.Logger
}

// NewHub creates a session hub with the platform idle TTL and sweep cadence.
func NewHub(logger *slog.Logger) *Hub {
	store := cache.New(constants.SessionIdleTTL, constants.SessionSweepInterval)

	hub := &Hub{store: store, logger: logger}
	store.OnEvicted(func(id string, value interface{}) {
		session, ok := value.(*LiveSession)
		if !ok {
			return
		}
		session.Viewer.Close()
		logger.Info("reading_session_evicted",
			slog.String("session_id", id),
			slog.String("edition_id", session.EditionID),
		)
	})

	return hub
}

// Put stores a session under its ID with a fresh idle TTL.
func (hub *Hub) Put(session *LiveSession) {
	hub.store.Set(session.ID, session, cache.DefaultExpiration)
}

// Get returns the live session, refreshing its idle TTL.
//
// Returns apperr.NotFound for unknown or already-evicted IDs; to the
// client an expired session and a bogus ID look the same.
func (hub *Hub) Get(id string) (*LiveSession, error) {
	value, found := hub.store.Get(id)
	if !found {
		return nil, apperr.NotFound("session")
	}

	session := value.(*LiveSession)

	// Sliding expiry: every access restarts the idle window.
	hub.store.Set(id, session, cache.DefaultExpiration)

	return session, nil
}

// Remove deletes a session. The eviction hook fires and closes the
// viewer; closing an already-closed viewer is a no-op.
func (hub *Hub) Remove(id string) {
	hub.store.Delete(id)
}

// Len reports the number of live sessions (readiness metrics).
func (hub *Hub) Len() int {
	return hub.store.ItemCount()
}
