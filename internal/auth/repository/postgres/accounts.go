package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, email, password_hash, display_name, role, email_verified,
	phone_verified, status, created_at, updated_at, last_login_at`

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 LIMIT 1;`
	return scanAccount(r.db.QueryRow(ctx, query, email))
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 LIMIT 1;`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(&account.ID, &account.Email, &account.PasswordHash, &account.DisplayName,
		&account.Role, &account.EmailVerified, &account.PhoneVerified, &account.Status,
		&account.CreatedAt, &account.UpdatedAt, &account.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (email, password_hash, display_name, role, email_verified,
		                      phone_verified, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		account.Email, account.PasswordHash, account.DisplayName, account.Role,
		account.EmailVerified, account.PhoneVerified, account.Status,
		account.CreatedAt, account.UpdatedAt).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, passwordHash)
	return err
}

func (r *AccountRepository) MarkEmailVerified(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET email_verified = TRUE, updated_at = now() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE accounts SET last_login_at = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, at)
	return err
}

func (r *AccountRepository) RecordLoginAttempt(ctx context.Context, email, ip string, success bool) error {
	query := `
		INSERT INTO login_attempts (id, email, ip_address, attempt_time, successful)
		VALUES (gen_random_uuid(), $1, $2, now(), $3)
	`
	_, err := r.db.Exec(ctx, query, email, ip, success)
	return err
}

func (r *AccountRepository) CountRecentFailedAttempts(ctx context.Context, email, ip string,
	windowMinutes int) (int, error) {
	query := `
		SELECT COUNT(id) FROM login_attempts
		WHERE email = $1 AND ip_address = $2 AND successful = FALSE
		  AND attempt_time > now() - ($3 * interval '1 minute')
	`
	var count int
	if err := r.db.QueryRow(ctx, query, email, ip, windowMinutes).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count login attempts: %w", err)
	}
	return count, nil
}
