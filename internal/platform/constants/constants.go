// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and cookie configuration.
  - Viewer: TTLs and cache taxonomy for live reading sessions.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kaburlu-epaper-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	//
	// Gesture event batches from the viewer arrive at up to a few requests
	// per second per device, so the ceiling is deliberately generous.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	// HeaderXRequestID is the correlation header echoed on every response.
	HeaderXRequestID = "X-Request-ID"

	// HeaderOrigin is the CORS origin header.
	HeaderOrigin = "Origin"

	// HeaderXRealIP carries the client IP set by the reverse proxy.
	HeaderXRealIP = "X-Real-IP"

	// HeaderXForwardedFor carries the proxy chain of client IPs.
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "epaper.kaburlu.media"

	// AccessTokenTTL is the validity window of a JWT access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the validity window of a refresh token in Redis.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "refresh_token"

	// RefreshTokenCookiePath is the scoped path for the refresh token cookie.
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # Viewer Sessions

const (
	// SessionIdleTTL is how long a viewer session may sit untouched before
	// the in-memory store evicts it and tears down its transform state.
	SessionIdleTTL = 30 * time.Minute

	// SessionSweepInterval is how often expired sessions are purged.
	SessionSweepInterval = 5 * time.Minute
)

// # Database Schemas

const (
	SchemaEpaper = "epaper"
	SchemaUsers  = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRefreshToken = "auth:refresh_token:"
	RedisPrefixEdition      = "epaper:edition:"
	RedisPrefixProgress     = "reading:progress:"
)

// # Cache TTLs

const (
	// EditionCacheTTL bounds the staleness of a hydrated edition in Redis.
	// Published editions are immutable in practice, so an hour is safe.
	EditionCacheTTL = 1 * time.Hour

	// ProgressTTL keeps resume points around for three months of inactivity.
	ProgressTTL = 90 * 24 * time.Hour
)
