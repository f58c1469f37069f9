package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
	"github.com/jackc/pgx/v5"
)

type TicketRepository struct {
	db DB
}

func NewTicketRepository(db DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (id, account_id, token_hash, purpose, expires_at, created_at, consumed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		ticket.ID, ticket.AccountID, ticket.TokenHash, ticket.Purpose,
		ticket.ExpiresAt, ticket.CreatedAt, ticket.Consumed)
	return err
}

func (r *TicketRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Ticket, error) {
	query := `
		SELECT id, account_id, token_hash, purpose, expires_at, created_at, consumed
		FROM tickets
		WHERE token_hash = $1
		LIMIT 1;
	`
	var t domain.Ticket
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(&t.ID, &t.AccountID, &t.TokenHash,
		&t.Purpose, &t.ExpiresAt, &t.CreatedAt, &t.Consumed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// ConsumeIfUnconsumed is the atomic transition guarding single use: exactly
// one concurrent caller observes rows affected = 1.
func (r *TicketRepository) ConsumeIfUnconsumed(ctx context.Context, id string) (bool, error) {
	query := `UPDATE tickets SET consumed = TRUE WHERE id = $1 AND consumed = FALSE`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TicketRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM tickets WHERE expires_at < $1`
	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tickets: %w", err)
	}
	return tag.RowsAffected(), nil
}
