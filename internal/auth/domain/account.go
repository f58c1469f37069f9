package domain

import "time"

type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusDeleted   AccountStatus = "deleted"
)

type Account struct {
	ID            int64
	Email         string
	PasswordHash  string
	DisplayName   string
	Role          string
	EmailVerified bool
	PhoneVerified bool
	Status        AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLoginAt   *time.Time
}

type RefreshToken struct {
	ID         string
	AccountID  int64
	Token      string
	PreviousID *string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	Revoked    bool
}

type TicketPurpose string

const (
	PurposeEmailVerify   TicketPurpose = "EMAIL_VERIFY"
	PurposePasswordReset TicketPurpose = "PASSWORD_RESET"
)

// Ticket is a single-use credential for one sensitive action. Only the
// SHA-256 digest of the raw value is stored; the raw value is sent to the
// account holder out-of-band and never persisted.
type Ticket struct {
	ID        string
	AccountID int64
	TokenHash string
	Purpose   TicketPurpose
	ExpiresAt time.Time
	CreatedAt time.Time
	Consumed  bool
}

type LoginAttempt struct {
	ID          string
	Email       string
	IPAddress   string
	AttemptTime time.Time
	Successful  bool
}
