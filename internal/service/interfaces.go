package service

import (
	"context"
	"errors"

	"fluto-auth/internal/domain"
)

// Session token validation failures. Callers map these to different HTTP
// statuses, so the two kinds stay distinct.
var (
	ErrTokenExpired = errors.New("session token expired")
	ErrTokenInvalid = errors.New("session token invalid")
)

// GoogleVerifier defines the interface for validating Google-issued
// identity tokens
type GoogleVerifier interface {
	// VerifyGoogleToken validates signature, issuer, audience and expiry
	// of a raw ID token and returns its claims. Claims without an email
	// are rejected.
	VerifyGoogleToken(ctx context.Context, rawToken string) (*domain.GoogleClaims, error)
}

// TokenService defines the interface for the session token codec
type TokenService interface {
	// Mint produces a signed session token for the given user ID
	Mint(userID string) (string, error)

	// ParseAndValidate verifies signature and expiry of a session token.
	// Returns ErrTokenExpired when the token is past its expiry and
	// ErrTokenInvalid for anything malformed or mis-signed.
	ParseAndValidate(token string) (*domain.SessionClaims, error)

	// NearExpiry reports whether the remaining lifetime of the claims is
	// below the refresh threshold
	NearExpiry(claims *domain.SessionClaims) bool
}

// AuthService defines the two public operations of the login core
type AuthService interface {
	// Login verifies a Google ID token, reconciles the user record and
	// mints a session token
	Login(ctx context.Context, rawToken string) (*domain.LoginResult, error)

	// VerifySession validates the bearer token from an Authorization
	// header, loads the subject and reissues a token when near expiry
	VerifySession(ctx context.Context, authorizationHeader string) (*domain.SessionResult, error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth   AuthService
	Google GoogleVerifier
	Token  TokenService
}
