package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
	repo "github.com/famcare/auth-service/internal/auth/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenRepository_Store(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)

	now := time.Now()
	rt := &domain.RefreshToken{
		ID:        "token-id",
		AccountID: 1,
		Token:     "opaque-value",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(rt.ID, rt.AccountID, rt.Token, rt.PreviousID, rt.ExpiresAt, rt.CreatedAt, rt.Revoked).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = r.Store(context.Background(), rt)
	assert.NoError(t, err)
}

func TestRefreshTokenRepository_GetByToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)
	ctx := context.Background()

	columns := []string{"id", "account_id", "token", "previous_id", "expires_at", "created_at", "revoked"}

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT id, account_id, token").
			WithArgs("opaque-value").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow("token-id", int64(1), "opaque-value", nil, now.Add(time.Hour), now, false))

		rt, err := r.GetByToken(ctx, "opaque-value")
		require.NoError(t, err)
		assert.Equal(t, "token-id", rt.ID)
		assert.Equal(t, int64(1), rt.AccountID)
		assert.False(t, rt.Revoked)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, account_id, token").
			WithArgs("unknown").
			WillReturnError(pgx.ErrNoRows)

		rt, err := r.GetByToken(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, rt)
	})
}

func TestRefreshTokenRepository_RevokeIfActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)
	ctx := context.Background()

	t.Run("wins when row was active", func(t *testing.T) {
		mock.ExpectExec("UPDATE refresh_tokens SET revoked").
			WithArgs("token-id").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		won, err := r.RevokeIfActive(ctx, "token-id")
		require.NoError(t, err)
		assert.True(t, won)
	})

	t.Run("loses when row was already revoked", func(t *testing.T) {
		mock.ExpectExec("UPDATE refresh_tokens SET revoked").
			WithArgs("token-id").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		won, err := r.RevokeIfActive(ctx, "token-id")
		require.NoError(t, err)
		assert.False(t, won)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE refresh_tokens SET revoked").
			WithArgs("token-id").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.RevokeIfActive(ctx, "token-id")
		assert.Error(t, err)
	})
}

func TestRefreshTokenRepository_RevokeAllByAccountID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)

	mock.ExpectExec("UPDATE refresh_tokens SET revoked").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))

	err = r.RevokeAllByAccountID(context.Background(), 1)
	assert.NoError(t, err)
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRefreshTokenRepository(mock)

	before := time.Now()
	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs(before).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	deleted, err := r.DeleteExpired(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
