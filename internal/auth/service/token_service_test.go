package service_test

import (
	"testing"
	"time"

	"github.com/famcare/auth-service/internal/auth/service"
	autherror "github.com/famcare/auth-service/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := service.NewTokenService("test-secret", nil, 15)

	token, expiresAt, err := ts.IssueAccessToken(42, "user")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := ts.VerifyAccessToken(token)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := service.NewTokenService("secret-a", nil, 15)
	verifier := service.NewTokenService("secret-b", nil, 15)

	token, _, err := issuer.IssueAccessToken(1, "user")
	assert.NoError(t, err)

	claims, err := verifier.VerifyAccessToken(token)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, autherror.ErrTokenSignatureInvalid)
}

func TestTokenService_Verify_PreviousSecretFallback(t *testing.T) {
	oldService := service.NewTokenService("old-secret", nil, 15)
	token, _, err := oldService.IssueAccessToken(7, "admin")
	assert.NoError(t, err)

	// After rotation the old secret is still accepted for verification.
	newService := service.NewTokenService("new-secret", []string{"old-secret"}, 15)

	claims, err := newService.VerifyAccessToken(token)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.AccountID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	ts := service.NewTokenService("test-secret", nil, -5)

	token, _, err := ts.IssueAccessToken(1, "user")
	assert.NoError(t, err)

	claims, err := ts.VerifyAccessToken(token)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	ts := service.NewTokenService("test-secret", nil, 15)

	claims, err := ts.VerifyAccessToken("not-a-jwt")

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, autherror.ErrTokenMalformed)
}

func TestTokenService_GetAccessTokenExpiry(t *testing.T) {
	ts := service.NewTokenService("test-secret", nil, 30)

	assert.Equal(t, 30*time.Minute, ts.GetAccessTokenExpiry())
}
