// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/apperr"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/sec"
)

// fakeUserRepository is an in-memory [UserRepository] for service tests.
type fakeUserRepository struct {
	users map[string]*User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return u, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

// fakeRefreshTokens is an in-memory [RefreshTokenRepository] keyed by digest.
type fakeRefreshTokens struct {
	tokens map[string]string
}

func newFakeRefreshTokens() *fakeRefreshTokens {
	return &fakeRefreshTokens{tokens: make(map[string]string)}
}

func (f *fakeRefreshTokens) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeRefreshTokens) Get(_ context.Context, tokenHash string) (string, error) {
	userID, ok := f.tokens[tokenHash]
	if !ok {
		return "", apperr.NotFound("Refresh token")
	}
	return userID, nil
}

func (f *fakeRefreshTokens) Delete(_ context.Context, tokenHash string) error {
	delete(f.tokens, tokenHash)
	return nil
}

// staticTokenProvider returns a predictable JWT stand-in.
type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

func newAuthService() (*Service, *fakeUserRepository, *fakeRefreshTokens) {
	users := newFakeUserRepository()
	tokens := newFakeRefreshTokens()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(users, tokens, staticTokenProvider{}, logger), users, tokens
}

func registerReader(t *testing.T, service *Service) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username: "ravi",
		Email:    "ravi@example.com",
		Password: "strong-password",
		Language: "te",
	})
	require.NoError(t, err)
	return user
}

func TestService_Register(t *testing.T) {
	t.Run("creates_reader_account", func(t *testing.T) {
		service, users, _ := newAuthService()

		user := registerReader(t, service)

		assert.Equal(t, sec.RoleReader, user.Role)
		assert.Equal(t, "te", user.Language)
		assert.NotEqual(t, "strong-password", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("strong-password", user.PasswordHash))
		assert.Contains(t, users.users, user.ID)
	})

	t.Run("rejects_duplicate_identity", func(t *testing.T) {
		service, _, _ := newAuthService()
		registerReader(t, service)

		_, err := service.Register(context.Background(), RegisterInput{
			Username: "someone-else",
			Email:    "ravi@example.com",
			Password: "strong-password",
			Language: "te",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)

		_, err = service.Register(context.Background(), RegisterInput{
			Username: "ravi",
			Email:    "other@example.com",
			Password: "strong-password",
			Language: "te",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("rejects_invalid_input", func(t *testing.T) {
		tests := []struct {
			name  string
			input RegisterInput
		}{
			{
				name:  "missing_username",
				input: RegisterInput{Email: "a@example.com", Password: "strong-password", Language: "te"},
			},
			{
				name:  "bad_email",
				input: RegisterInput{Username: "ravi", Email: "not-an-email", Password: "strong-password", Language: "te"},
			},
			{
				name:  "short_password",
				input: RegisterInput{Username: "ravi", Email: "a@example.com", Password: "short", Language: "te"},
			},
			{
				name:  "bad_language",
				input: RegisterInput{Username: "ravi", Email: "a@example.com", Password: "strong-password", Language: "telugu!"},
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				service, _, _ := newAuthService()

				_, err := service.Register(context.Background(), tc.input)

				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			})
		}
	})
}

func TestService_Login(t *testing.T) {
	t.Run("issues_tokens_by_email_or_username", func(t *testing.T) {
		service, _, tokens := newAuthService()
		user := registerReader(t, service)

		for _, login := range []string{"ravi@example.com", "ravi"} {
			session, err := service.Login(context.Background(), LoginInput{
				Login:    login,
				Password: "strong-password",
			})
			require.NoError(t, err)

			assert.Equal(t, "jwt-for-"+user.ID, session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)
			// Only the digest ever reaches the store.
			assert.NotContains(t, tokens.tokens, session.RefreshToken)
			assert.Equal(t, user.ID, tokens.tokens[sec.HashToken(session.RefreshToken)])
		}
	})

	t.Run("rejects_bad_credentials", func(t *testing.T) {
		service, _, _ := newAuthService()
		registerReader(t, service)

		_, err := service.Login(context.Background(), LoginInput{
			Login:    "ravi",
			Password: "wrong-password",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

		_, err = service.Login(context.Background(), LoginInput{
			Login:    "nobody",
			Password: "strong-password",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("rejects_empty_credentials", func(t *testing.T) {
		service, _, _ := newAuthService()

		_, err := service.Login(context.Background(), LoginInput{})

		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestService_RefreshSession(t *testing.T) {
	t.Run("rotates_refresh_token", func(t *testing.T) {
		service, _, tokens := newAuthService()
		user := registerReader(t, service)

		session, err := service.Login(context.Background(), LoginInput{
			Login:    "ravi",
			Password: "strong-password",
		})
		require.NoError(t, err)

		rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
		require.NoError(t, err)

		assert.Equal(t, "jwt-for-"+user.ID, rotated.AccessToken)
		assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
		assert.NotContains(t, tokens.tokens, sec.HashToken(session.RefreshToken))

		// The consumed token reads as absent on replay.
		_, err = service.RefreshSession(context.Background(), session.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("rejects_unknown_token", func(t *testing.T) {
		service, _, _ := newAuthService()

		_, err := service.RefreshSession(context.Background(), "not-a-real-token")

		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("rejects_token_for_deleted_user", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := registerReader(t, service)

		session, err := service.Login(context.Background(), LoginInput{
			Login:    "ravi",
			Password: "strong-password",
		})
		require.NoError(t, err)

		require.NoError(t, users.SoftDelete(context.Background(), user.ID))

		_, err = service.RefreshSession(context.Background(), session.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})
}

func TestService_Logout(t *testing.T) {
	service, _, tokens := newAuthService()
	registerReader(t, service)

	session, err := service.Login(context.Background(), LoginInput{
		Login:    "ravi",
		Password: "strong-password",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, tokens.tokens)

	// Logging out twice is a no-op.
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))

	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
