package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fluto-auth/internal/domain"
	"fluto-auth/internal/service"
)

// tokenService mints and validates HS256-signed session tokens. Tokens are
// stateless; the only way to invalidate one before expiry is to rotate the
// secret, which invalidates all of them.
type tokenService struct {
	secret           []byte
	ttl              time.Duration
	refreshThreshold time.Duration
	now              func() time.Time
}

// NewTokenService creates a new session token codec
func NewTokenService(secret string, ttl, refreshThreshold time.Duration) service.TokenService {
	return &tokenService{
		secret:           []byte(secret),
		ttl:              ttl,
		refreshThreshold: refreshThreshold,
		now:              time.Now,
	}
}

// Mint produces a signed session token for the given user ID
func (s *tokenService) Mint(userID string) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("signing secret is not configured")
	}

	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// ParseAndValidate verifies signature and expiry of a session token
func (s *tokenService) ParseAndValidate(tokenString string) (*domain.SessionClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}
		return nil, service.ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, service.ErrTokenInvalid
	}

	result := &domain.SessionClaims{
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}

	return result, nil
}

// NearExpiry reports whether the claims are inside the refresh window
func (s *tokenService) NearExpiry(claims *domain.SessionClaims) bool {
	return claims.ExpiresAt.Sub(s.now()) < s.refreshThreshold
}
