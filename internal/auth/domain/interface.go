package domain

//go:generate mockgen -destination=../../mocks/mock_account_repository.go -package=mocks github.com/famcare/auth-service/internal/auth/domain AccountRepository
//go:generate mockgen -destination=../../mocks/mock_refresh_token_repository.go -package=mocks github.com/famcare/auth-service/internal/auth/domain RefreshTokenRepository
//go:generate mockgen -destination=../../mocks/mock_ticket_repository.go -package=mocks github.com/famcare/auth-service/internal/auth/domain TicketRepository
//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/famcare/auth-service/internal/auth/domain Mailer

import (
	"context"
	"time"
)

// AccountRepository is plain CRUD over accounts. Lookup methods return
// (nil, nil) when no row matches.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, account *Account) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id int64) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	RecordLoginAttempt(ctx context.Context, email, ip string, success bool) error
	CountRecentFailedAttempts(ctx context.Context, email, ip string, windowMinutes int) (int, error)
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, rt *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	// RevokeIfActive flips revoked on the given row only if it is still
	// active, reporting whether this caller won the transition.
	RevokeIfActive(ctx context.Context, id string) (bool, error)
	RevokeAllByAccountID(ctx context.Context, accountID int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*Ticket, error)
	// ConsumeIfUnconsumed flips consumed on the given row only if it is still
	// unconsumed, reporting whether this caller won the transition.
	ConsumeIfUnconsumed(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Mailer delivers ticket values out-of-band. Dispatch failures must not fail
// the issuing operation.
type Mailer interface {
	SendVerificationEmail(account *Account, ticketValue string) error
	SendPasswordResetEmail(account *Account, ticketValue string) error
}
