package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"github.com/famcare/auth-service/internal/auth/domain"
	"github.com/famcare/auth-service/internal/auth/dto"
	autherror "github.com/famcare/auth-service/internal/errors"
	authconstant "github.com/famcare/auth-service/pkg/constant"
	"github.com/google/uuid"
)

const refreshTokenBytes = 32

// SessionService owns the refresh-token lifecycle: issued at login, rotated
// on refresh, revoked at logout. A refresh token is single-use; the second
// use of a rotated token is treated as a theft signal and tears down every
// active session of the account.
type SessionService struct {
	accounts      domain.AccountRepository
	refreshTokens domain.RefreshTokenRepository
	tokens        TokenGenerator
	refreshExpiry time.Duration
}

func NewSessionService(accounts domain.AccountRepository, refreshTokens domain.RefreshTokenRepository,
	tokens TokenGenerator, refreshMinutes int) *SessionService {
	return &SessionService{
		accounts:      accounts,
		refreshTokens: refreshTokens,
		tokens:        tokens,
		refreshExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (s *SessionService) Login(ctx context.Context, account *domain.Account) (*dto.TokenResponse, error) {
	if account.Status != domain.StatusActive {
		return nil, autherror.ErrAccountNotActive
	}
	return s.issue(ctx, account, nil)
}

func (s *SessionService) Refresh(ctx context.Context, refreshTokenValue string) (*dto.TokenResponse, error) {
	rt, err := s.refreshTokens.GetByToken(ctx, refreshTokenValue)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, autherror.ErrRefreshTokenNotFound
	}

	if rt.Revoked {
		// Reuse of an already-rotated token: possible theft. Revoke the
		// whole session set for the account.
		log.Printf("security: refresh token reuse detected for account %d, revoking all sessions", rt.AccountID)
		if err := s.refreshTokens.RevokeAllByAccountID(ctx, rt.AccountID); err != nil {
			log.Printf("warn: failed to revoke sessions for account %d: %v", rt.AccountID, err)
		}
		return nil, autherror.ErrRefreshTokenRevoked
	}

	if time.Now().After(rt.ExpiresAt) {
		return nil, autherror.ErrRefreshTokenExpired
	}

	// Conditional revoke decides the rotation race: exactly one concurrent
	// caller wins, the rest observe the token as revoked.
	won, err := s.refreshTokens.RevokeIfActive(ctx, rt.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, autherror.ErrRefreshTokenRevoked
	}

	account, err := s.accounts.GetByID(ctx, rt.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrAccountNotFound
	}
	if account.Status != domain.StatusActive {
		return nil, autherror.ErrAccountNotActive
	}

	return s.issue(ctx, account, &rt.ID)
}

// Logout revokes the given refresh token. Revoking an unknown or
// already-revoked token is not an error.
func (s *SessionService) Logout(ctx context.Context, refreshTokenValue string) error {
	rt, err := s.refreshTokens.GetByToken(ctx, refreshTokenValue)
	if err != nil {
		return err
	}
	if rt == nil || rt.Revoked {
		return nil
	}
	_, err = s.refreshTokens.RevokeIfActive(ctx, rt.ID)
	return err
}

func (s *SessionService) RevokeAll(ctx context.Context, accountID int64) error {
	return s.refreshTokens.RevokeAllByAccountID(ctx, accountID)
}

func (s *SessionService) issue(ctx context.Context, account *domain.Account, previousID *string) (*dto.TokenResponse, error) {
	accessToken, _, err := s.tokens.IssueAccessToken(account.ID, account.Role)
	if err != nil {
		return nil, err
	}

	value, err := newOpaqueToken(refreshTokenBytes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rt := &domain.RefreshToken{
		ID:         uuid.NewString(),
		AccountID:  account.ID,
		Token:      value,
		PreviousID: previousID,
		ExpiresAt:  now.Add(s.refreshExpiry),
		CreatedAt:  now,
		Revoked:    false,
	}
	if err := s.refreshTokens.Store(ctx, rt); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: value,
		TokenType:    authconstant.DefaultTokenType,
		ExpiresIn:    int(s.tokens.GetAccessTokenExpiry().Seconds()),
	}, nil
}

func newOpaqueToken(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
