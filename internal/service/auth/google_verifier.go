package auth

import (
	"context"

	"google.golang.org/api/idtoken"

	"fluto-auth/internal/domain"
	"fluto-auth/internal/service"
	"fluto-auth/pkg/errors"
	"fluto-auth/pkg/logger"
)

// googleVerifier validates Google ID tokens against the registered client ID
type googleVerifier struct {
	clientID string
	logger   *logger.Logger
}

// NewGoogleVerifier creates a new Google ID token verifier
func NewGoogleVerifier(clientID string, logger *logger.Logger) service.GoogleVerifier {
	return &googleVerifier{
		clientID: clientID,
		logger:   logger,
	}
}

// VerifyGoogleToken validates a raw Google ID token and extracts its claims.
// idtoken.Validate checks signature, issuer, audience and expiry against
// Google's published keys; anything it rejects is an authentication failure,
// never retried here.
func (v *googleVerifier) VerifyGoogleToken(ctx context.Context, rawToken string) (*domain.GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		v.logger.WithError(err).Warn("Google token verification failed")
		return nil, errors.NewAuthenticationError(errors.CodeInvalidGoogleToken, "Invalid Google token", err)
	}

	claims := &domain.GoogleClaims{
		Email:   stringClaim(payload.Claims, "email"),
		Name:    stringClaim(payload.Claims, "name"),
		Picture: stringClaim(payload.Claims, "picture"),
		Subject: payload.Subject,
	}

	// Email is the reconciliation key; a payload without one is useless
	if claims.Email == "" {
		v.logger.Warn("Google token payload is missing an email claim")
		return nil, errors.NewAuthenticationError(errors.CodeInvalidGoogleToken, "Invalid Google token", nil)
	}

	v.logger.WithField("email", claims.Email).Debug("Google token verified")
	return claims, nil
}

// stringClaim safely extracts a string claim from the token payload
func stringClaim(claims map[string]interface{}, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
