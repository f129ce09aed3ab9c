// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		SoftDelete marks the account as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error
}

// # Refresh Token Access

// RefreshTokenRepository defines the contract for volatile refresh tokens.
//
// Tokens are stored by digest with the platform refresh TTL; rotation is a
// delete of the old digest plus a set of the new one, so a replayed old
// token reads as absent.
type RefreshTokenRepository interface {

	/*
		Set stores a refresh token digest mapped to its user.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 digest)
		  - userID: string (UUID)
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenHash, userID string, ttl time.Duration) error

	/*
		Get resolves a refresh token digest to its user.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 digest)

		Returns:
		  - string: UserID
		  - error: apperr.NotFound for absent or expired digests
	*/
	Get(context context.Context, tokenHash string) (string, error)

	/*
		Delete removes a refresh token digest (logout or rotation).

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 digest)

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, tokenHash string) error
}
