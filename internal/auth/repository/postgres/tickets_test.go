package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
	repo "github.com/famcare/auth-service/internal/auth/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewTicketRepository(mock)

	now := time.Now()
	ticket := &domain.Ticket{
		ID:        "ticket-id",
		AccountID: 1,
		TokenHash: "digest",
		Purpose:   domain.PurposePasswordReset,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}

	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(ticket.ID, ticket.AccountID, ticket.TokenHash, ticket.Purpose,
			ticket.ExpiresAt, ticket.CreatedAt, ticket.Consumed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = r.Create(context.Background(), ticket)
	assert.NoError(t, err)
}

func TestTicketRepository_GetByTokenHash(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewTicketRepository(mock)
	ctx := context.Background()

	columns := []string{"id", "account_id", "token_hash", "purpose", "expires_at", "created_at", "consumed"}

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT id, account_id, token_hash").
			WithArgs("digest").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow("ticket-id", int64(1), "digest", domain.PurposeEmailVerify,
					now.Add(time.Hour), now, false))

		ticket, err := r.GetByTokenHash(ctx, "digest")
		require.NoError(t, err)
		assert.Equal(t, "ticket-id", ticket.ID)
		assert.Equal(t, domain.PurposeEmailVerify, ticket.Purpose)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, account_id, token_hash").
			WithArgs("unknown").
			WillReturnError(pgx.ErrNoRows)

		ticket, err := r.GetByTokenHash(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, ticket)
	})
}

func TestTicketRepository_ConsumeIfUnconsumed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewTicketRepository(mock)
	ctx := context.Background()

	t.Run("wins when unconsumed", func(t *testing.T) {
		mock.ExpectExec("UPDATE tickets SET consumed").
			WithArgs("ticket-id").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		won, err := r.ConsumeIfUnconsumed(ctx, "ticket-id")
		require.NoError(t, err)
		assert.True(t, won)
	})

	t.Run("loses when already consumed", func(t *testing.T) {
		mock.ExpectExec("UPDATE tickets SET consumed").
			WithArgs("ticket-id").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		won, err := r.ConsumeIfUnconsumed(ctx, "ticket-id")
		require.NoError(t, err)
		assert.False(t, won)
	})
}

func TestTicketRepository_DeleteExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewTicketRepository(mock)

	before := time.Now()
	mock.ExpectExec("DELETE FROM tickets").
		WithArgs(before).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	deleted, err := r.DeleteExpired(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
