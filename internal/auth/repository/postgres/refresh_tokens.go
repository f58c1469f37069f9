package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
	"github.com/jackc/pgx/v5"
)

type RefreshTokenRepository struct {
	db DB
}

func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Store(ctx context.Context, rt *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, account_id, token, previous_id, expires_at, created_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		rt.ID, rt.AccountID, rt.Token, rt.PreviousID, rt.ExpiresAt, rt.CreatedAt, rt.Revoked)
	return err
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, account_id, token, previous_id, expires_at, created_at, revoked
		FROM refresh_tokens
		WHERE token = $1
		LIMIT 1;
	`
	var rt domain.RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(&rt.ID, &rt.AccountID, &rt.Token,
		&rt.PreviousID, &rt.ExpiresAt, &rt.CreatedAt, &rt.Revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

// RevokeIfActive is the atomic state transition that serializes concurrent
// rotation: the WHERE clause lets only one caller flip the row.
func (r *RefreshTokenRepository) RevokeIfActive(ctx context.Context, id string) (bool, error) {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1 AND revoked = FALSE`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RefreshTokenRepository) RevokeAllByAccountID(ctx context.Context, accountID int64) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE account_id = $1 AND revoked = FALSE`
	_, err := r.db.Exec(ctx, query, accountID)
	return err
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at < $1`
	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
