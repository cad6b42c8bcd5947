package auth_test

import (
	"context"
	"testing"
	"time"

	"conferly/internal/auth"
	"conferly/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) auth.Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     time.Hour,
			RefreshExpiresIn: 24 * time.Hour,
		},
		Admin: config.AdminConfig{
			Email:        "admin@conferly.events",
			PasswordHash: string(hash),
		},
	}

	return auth.NewService(cfg)
}

func TestLogin_Success(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "admin@conferly.events",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "ADMIN", resp.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "admin@conferly.events", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "admin@conferly.events",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "someone@else.com",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "admin@conferly.events",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "admin@conferly.events",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
}
