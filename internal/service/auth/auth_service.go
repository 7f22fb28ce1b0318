package auth

import (
	"context"
	stderrors "errors"
	"strings"

	"fluto-auth/internal/domain"
	"fluto-auth/internal/repository"
	"fluto-auth/internal/service"
	"fluto-auth/pkg/errors"
	"fluto-auth/pkg/logger"
)

// Service implements the AuthService interface. It composes the Google
// verifier, the user repository and the session token codec; it holds no
// state of its own, so every request is an independent round trip.
type Service struct {
	verifier service.GoogleVerifier
	tokens   service.TokenService
	users    repository.UserRepository
	logger   *logger.Logger
}

// NewService creates a new auth service
func NewService(verifier service.GoogleVerifier, tokens service.TokenService, users repository.UserRepository, logger *logger.Logger) *Service {
	return &Service{
		verifier: verifier,
		tokens:   tokens,
		users:    users,
		logger:   logger,
	}
}

// Login verifies a Google ID token, creates or updates the matching user
// record and mints a session token for it.
func (s *Service) Login(ctx context.Context, rawToken string) (*domain.LoginResult, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.NewValidationError(errors.CodeNoTokenProvided, "No token provided")
	}

	claims, err := s.verifier.VerifyGoogleToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, claims)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.Mint(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to mint session token")
		return nil, errors.NewInternalError(errors.CodeLoginFailed, "Login failed", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("Login successful")

	return &domain.LoginResult{
		AccessToken: accessToken,
		User:        user.Public(),
	}, nil
}

// VerifySession validates a bearer session token, loads its subject and
// reissues a fresh token when the presented one is near expiry.
func (s *Service) VerifySession(ctx context.Context, authorizationHeader string) (*domain.SessionResult, error) {
	token := extractBearerToken(authorizationHeader)
	if token == "" {
		return nil, errors.NewAuthenticationError(errors.CodeNoTokenProvided, "No token provided", nil)
	}

	claims, err := s.tokens.ParseAndValidate(token)
	if err != nil {
		s.logger.WithError(err).Debug("Session token rejected")
		return nil, errors.NewAuthenticationError(errors.CodeInvalidToken, "Invalid token", err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, domain.ErrUserNotFound) {
			return nil, errors.NewNotFoundError(errors.CodeUserNotFound, "User not found")
		}
		s.logger.WithError(err).Error("Failed to load user for session verification")
		return nil, errors.NewInternalError(errors.CodeLoginFailed, "Login failed", err)
	}

	result := &domain.SessionResult{User: user.Public()}

	if s.tokens.NearExpiry(claims) {
		newToken, err := s.tokens.Mint(user.ID)
		if err != nil {
			s.logger.WithError(err).Error("Failed to reissue session token")
			return nil, errors.NewInternalError(errors.CodeLoginFailed, "Login failed", err)
		}
		result.NewToken = newToken
		s.logger.WithField("user_id", user.ID).Debug("Session token reissued")
	}

	return result, nil
}

// resolveUser reconciles verified Google claims against the user store:
// update when the email is known, insert otherwise. A lost insert race on
// the email uniqueness constraint is treated as "already exists" and retried
// once down the update path.
func (s *Service) resolveUser(ctx context.Context, claims *domain.GoogleClaims) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		return s.updateExisting(ctx, existing, claims)

	case stderrors.Is(err, domain.ErrUserNotFound):
		created, createErr := s.users.Create(ctx, claims.Email, claims.Name, claims.Picture, claims.Subject)
		if createErr == nil {
			s.logger.WithField("user_id", created.ID).Info("New user created")
			return created, nil
		}
		if stderrors.Is(createErr, domain.ErrDuplicateEmail) {
			s.logger.WithField("email", claims.Email).Warn("Concurrent first login detected, taking update path")
			winner, raceErr := s.users.GetByEmail(ctx, claims.Email)
			if raceErr != nil {
				return nil, errors.NewInternalError(errors.CodeUserCreationFailed, "User creation failed", raceErr)
			}
			return s.updateExisting(ctx, winner, claims)
		}
		s.logger.WithError(createErr).Error("Failed to create user")
		return nil, errors.NewInternalError(errors.CodeUserCreationFailed, "User creation failed", createErr)

	default:
		s.logger.WithError(err).Error("Failed to look up user by email")
		return nil, errors.NewInternalError(errors.CodeLoginFailed, "Login failed", err)
	}
}

// updateExisting overwrites stored fields only where the provider supplied a
// non-empty value; the last known good value wins otherwise.
func (s *Service) updateExisting(ctx context.Context, existing *domain.User, claims *domain.GoogleClaims) (*domain.User, error) {
	updated, err := s.users.Update(ctx,
		existing.ID,
		firstNonEmpty(claims.Name, existing.Name),
		firstNonEmpty(claims.Picture, existing.Picture),
		firstNonEmpty(claims.Subject, existing.GoogleID),
	)
	if err != nil {
		s.logger.WithError(err).Error("Failed to update user")
		return nil, errors.NewInternalError(errors.CodeUserUpdateFailed, "User update failed", err)
	}

	return updated, nil
}

// extractBearerToken pulls the token out of an Authorization header
func extractBearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// firstNonEmpty returns the first non-empty string
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
