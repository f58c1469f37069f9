package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/famcare/auth-service/config"
	"github.com/famcare/auth-service/internal/auth/domain"
	"github.com/famcare/auth-service/internal/auth/dto"
	autherror "github.com/famcare/auth-service/internal/errors"
	authconstant "github.com/famcare/auth-service/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

// AuthService orchestrates the credential lifecycle by composing the account
// repository, session manager, ticket manager, and mailer. It is the only
// entry point the handlers call.
type AuthService struct {
	accounts domain.AccountRepository
	sessions *SessionService
	tickets  *TicketService
	tokens   TokenGenerator
	mailer   domain.Mailer
	cfg      *config.Config
}

func NewAuthService(accounts domain.AccountRepository, sessions *SessionService, tickets *TicketService,
	tokens TokenGenerator, mailer domain.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		tickets:  tickets,
		tokens:   tokens,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// NormalizeEmail canonicalizes an email address for use as the uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new active account, queues a verification email, and
// returns the account together with a usable session.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		Email:         email,
		PasswordHash:  string(hashed),
		DisplayName:   input.DisplayName,
		Role:          authconstant.DefaultUserRole,
		EmailVerified: false,
		Status:        domain.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	if err := s.issueVerification(ctx, account); err != nil {
		log.Printf("warn: failed to issue verification ticket for account %d: %v", account.ID, err)
	}

	tokens, err := s.sessions.Login(ctx, account)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Account: dto.NewAccountOutput(account), Tokens: *tokens}, nil
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	failed, err := s.accounts.CountRecentFailedAttempts(ctx, email, input.IPAddress, s.cfg.LoginWindowMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to check login attempts: %w", err)
	}
	if failed >= s.cfg.LoginMaxAttempts {
		return nil, autherror.ErrTooManyLoginAttempts
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// Unknown email and wrong password collapse to one error so callers
	// cannot tell which check failed.
	if account == nil || bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)) != nil {
		if recErr := s.accounts.RecordLoginAttempt(ctx, email, input.IPAddress, false); recErr != nil {
			log.Printf("warn: failed to record login attempt for %s: %v", email, recErr)
		}
		return nil, autherror.ErrInvalidCredentials
	}

	if account.Status != domain.StatusActive {
		return nil, autherror.ErrAccountNotActive
	}

	tokens, err := s.sessions.Login(ctx, account)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.accounts.UpdateLastLogin(ctx, account.ID, now); err != nil {
		log.Printf("warn: failed to update last login for account %d: %v", account.ID, err)
	}
	account.LastLoginAt = &now

	if err := s.accounts.RecordLoginAttempt(ctx, email, input.IPAddress, true); err != nil {
		log.Printf("warn: failed to record login attempt for %s: %v", email, err)
	}

	return &dto.AuthResponse{Account: dto.NewAccountOutput(account), Tokens: *tokens}, nil
}

// Logout never fails the caller-visible flow; an invalid or already-revoked
// token is treated the same as a successful revocation.
func (s *AuthService) Logout(ctx context.Context, refreshTokenValue string) {
	if err := s.sessions.Logout(ctx, refreshTokenValue); err != nil {
		log.Printf("warn: logout failed: %v", err)
	}
}

func (s *AuthService) Refresh(ctx context.Context, refreshTokenValue string) (*dto.TokenResponse, error) {
	return s.sessions.Refresh(ctx, refreshTokenValue)
}

// ForgotPassword issues a password-reset ticket. Unknown emails are not
// reported to the caller, to prevent account enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account == nil {
		log.Printf("password reset requested for unknown email %q", email)
		return nil
	}

	ttl := time.Duration(s.cfg.ResetTicketExpiryMin) * time.Minute
	value, err := s.tickets.Issue(ctx, account.ID, domain.PurposePasswordReset, ttl)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(account, value); err != nil {
		log.Printf("warn: failed to send password reset email to %s: %v", account.Email, err)
	}

	return nil
}

// ResetPassword consumes a reset ticket, replaces the password hash, and then
// terminates every existing session of the account. The revocation runs only
// after the hash update has been committed.
func (s *AuthService) ResetPassword(ctx context.Context, ticketValue, newPassword string) error {
	accountID, err := s.tickets.Consume(ctx, ticketValue, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePassword(ctx, accountID, string(hashed)); err != nil {
		return err
	}

	return s.sessions.RevokeAll(ctx, accountID)
}

func (s *AuthService) VerifyEmail(ctx context.Context, ticketValue string) error {
	accountID, err := s.tickets.Consume(ctx, ticketValue, domain.PurposeEmailVerify)
	if err != nil {
		return err
	}

	return s.accounts.MarkEmailVerified(ctx, accountID)
}

func (s *AuthService) ResendVerificationEmail(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account == nil {
		return autherror.ErrEmailNotFound
	}
	if account.EmailVerified {
		return autherror.ErrEmailAlreadyVerified
	}

	return s.issueVerification(ctx, account)
}

func (s *AuthService) GetCurrentUser(ctx context.Context, accessToken string) (*dto.AccountOutput, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrAccountNotFound
	}

	out := dto.NewAccountOutput(account)

	return &out, nil
}

// ForceLogoutByAccountID revokes every active session of the given account.
func (s *AuthService) ForceLogoutByAccountID(ctx context.Context, accountID int64) error {
	return s.sessions.RevokeAll(ctx, accountID)
}

func (s *AuthService) issueVerification(ctx context.Context, account *domain.Account) error {
	ttl := time.Duration(s.cfg.VerifyTicketExpiryMin) * time.Minute
	value, err := s.tickets.Issue(ctx, account.ID, domain.PurposeEmailVerify, ttl)
	if err != nil {
		return err
	}
	if err := s.mailer.SendVerificationEmail(account, value); err != nil {
		log.Printf("warn: failed to send verification email to %s: %v", account.Email, err)
	}
	return nil
}
