// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
Package auth implements user identity for the Kaburlu e-paper platform.

It defines the core account entity and the authentication lifecycle:
registration, login, refresh-token rotation, and logout.

# Architecture

  - Service: Orchestrates business logic (Register, Login, Refresh).
  - Repository: Abstracted interfaces for Postgres (accounts) and Redis
    (refresh tokens).
  - Security: bcrypt password hashes and RSA-signed JWTs via the sec
    platform package.
*/
package auth

import (
	"time"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/sec"
)

// # Domain Entities

// User represents a registered reader, reporter, editor, or admin.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`

	// Language is the reader's preferred publication language code
	// ("te", "hi", "en", ...), used to pre-filter the edition catalogue.
	Language string `json:"language"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Field names for validation and response mapping in the auth domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldLogin       = "login"
	FieldLanguage    = "language"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)

// # Token Constraints

const (
	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32
)
