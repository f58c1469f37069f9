package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/famcare/auth-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/famcare/auth-service/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	IssueAccessToken(accountID int64, role string) (string, time.Time, error)
	VerifyAccessToken(tokenString string) (*AccessClaims, error)
	GetAccessTokenExpiry() time.Duration
}

type AccessClaims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"account_id"`
	Role      string `json:"role"`
}

// TokenService signs and verifies access tokens with HS256. Verification
// accepts the current secret plus any previous secrets still inside their
// rotation window; issuance always uses the current secret.
type TokenService struct {
	secret            []byte
	previousSecrets   [][]byte
	AccessTokenExpiry time.Duration
}

func NewTokenService(secret string, previousSecrets []string, accessMinutes int) *TokenService {
	prev := make([][]byte, 0, len(previousSecrets))
	for _, s := range previousSecrets {
		if s != "" {
			prev = append(prev, []byte(s))
		}
	}
	return &TokenService{
		secret:            []byte(secret),
		previousSecrets:   prev,
		AccessTokenExpiry: time.Duration(accessMinutes) * time.Minute,
	}
}

func (ts *TokenService) IssueAccessToken(accountID int64, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.AccessTokenExpiry)

	claims := AccessClaims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", accountID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

// VerifyAccessToken parses and validates the given access token string,
// falling back to previous signing secrets on a signature mismatch.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims, err := ts.parseWithSecret(tokenString, ts.secret)
	if err == nil {
		return claims, nil
	}
	if !errors.Is(err, autherror.ErrTokenSignatureInvalid) {
		return nil, err
	}
	for _, secret := range ts.previousSecrets {
		claims, prevErr := ts.parseWithSecret(tokenString, secret)
		if prevErr == nil {
			return claims, nil
		}
		if !errors.Is(prevErr, autherror.ErrTokenSignatureInvalid) {
			return nil, prevErr
		}
	}
	return nil, err
}

func (ts *TokenService) parseWithSecret(tokenString string, secret []byte) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, autherror.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, autherror.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, autherror.ErrTokenExpired
	default:
		return nil, autherror.ErrTokenMalformed
	}

	if !token.Valid {
		return nil, autherror.ErrTokenMalformed
	}

	return claims, nil
}
