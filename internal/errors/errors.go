package errors

import (
	"errors"
)

var (
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrAccountNotActive     = errors.New("account is not active")
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailNotFound        = errors.New("email not found")
	ErrEmailAlreadyVerified = errors.New("email already verified")

	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")

	ErrTicketNotFound        = errors.New("ticket not found")
	ErrTicketExpired         = errors.New("ticket expired")
	ErrTicketPurposeMismatch = errors.New("ticket purpose mismatch")
)
