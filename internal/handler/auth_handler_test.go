package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluto-auth/internal/config"
	"fluto-auth/internal/container"
	"fluto-auth/internal/domain"
	"fluto-auth/internal/service"
	"fluto-auth/pkg/errors"
	"fluto-auth/pkg/logger"
)

// stubAuthService returns canned results for handler tests
type stubAuthService struct {
	loginResult  *domain.LoginResult
	loginErr     error
	verifyResult *domain.SessionResult
	verifyErr    error
}

func (s *stubAuthService) Login(ctx context.Context, rawToken string) (*domain.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) VerifySession(ctx context.Context, authorizationHeader string) (*domain.SessionResult, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verifyResult, nil
}

func newTestContainer(t *testing.T, auth service.AuthService, environment string) *container.Container {
	t.Helper()

	log, err := logger.New("error", "test")
	require.NoError(t, err)

	return &container.Container{
		Config: &config.Config{
			Environment: environment,
		},
		Logger:   log,
		Services: &service.Services{Auth: auth},
	}
}

func decodeEnvelope(t *testing.T, body string) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	return envelope
}

func TestGoogleLogin_Success(t *testing.T) {
	stub := &stubAuthService{
		loginResult: &domain.LoginResult{
			AccessToken: "signed-session-token",
			User: &domain.PublicUser{
				ID:    "u1",
				Email: "a@x.com",
				Name:  "A",
			},
		},
	}
	h := NewAuthHandler(newTestContainer(t, stub, "production"))

	req := httptest.NewRequest(http.MethodPost, "/googleLogin/api/auth/google-login", strings.NewReader(`{"token":"google-id-token"}`))
	rec := httptest.NewRecorder()

	h.GoogleLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result domain.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "signed-session-token", result.AccessToken)
	assert.Equal(t, "a@x.com", result.User.Email)
}

func TestGoogleLogin_MalformedBody(t *testing.T) {
	h := NewAuthHandler(newTestContainer(t, &stubAuthService{}, "production"))

	req := httptest.NewRequest(http.MethodPost, "/googleLogin/api/auth/google-login", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	h.GoogleLogin(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.String())
	assert.Equal(t, errors.CodeNoTokenProvided, envelope.Code)
	assert.Equal(t, "No token provided", envelope.Message)
}

func TestGoogleLogin_MissingToken(t *testing.T) {
	stub := &stubAuthService{
		loginErr: errors.NewValidationError(errors.CodeNoTokenProvided, "No token provided"),
	}
	h := NewAuthHandler(newTestContainer(t, stub, "production"))

	req := httptest.NewRequest(http.MethodPost, "/googleLogin/api/auth/google-login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.GoogleLogin(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.String())
	assert.Equal(t, errors.CodeNoTokenProvided, envelope.Code)
}

func TestGoogleLogin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "google verification failure",
			err:        errors.NewAuthenticationError(errors.CodeInvalidGoogleToken, "Invalid Google token", assert.AnError),
			wantStatus: http.StatusUnauthorized,
			wantCode:   errors.CodeInvalidGoogleToken,
		},
		{
			name:       "store failure on create",
			err:        errors.NewInternalError(errors.CodeUserCreationFailed, "User creation failed", assert.AnError),
			wantStatus: http.StatusInternalServerError,
			wantCode:   errors.CodeUserCreationFailed,
		},
		{
			name:       "unexpected failure",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   errors.CodeLoginFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(newTestContainer(t, &stubAuthService{loginErr: tt.err}, "production"))

			req := httptest.NewRequest(http.MethodPost, "/googleLogin/api/auth/google-login", strings.NewReader(`{"token":"x"}`))
			rec := httptest.NewRecorder()

			h.GoogleLogin(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			envelope := decodeEnvelope(t, rec.Body.String())
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.Empty(t, envelope.Error, "internal detail must not leak in production")
		})
	}
}

func TestGoogleLogin_InternalDetailOutsideProduction(t *testing.T) {
	stub := &stubAuthService{
		loginErr: errors.NewInternalError(errors.CodeUserCreationFailed, "User creation failed", assert.AnError),
	}
	h := NewAuthHandler(newTestContainer(t, stub, "development"))

	req := httptest.NewRequest(http.MethodPost, "/googleLogin/api/auth/google-login", strings.NewReader(`{"token":"x"}`))
	rec := httptest.NewRecorder()

	h.GoogleLogin(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec.Body.String())
	assert.Equal(t, assert.AnError.Error(), envelope.Error)
}

func TestVerify_Success(t *testing.T) {
	stub := &stubAuthService{
		verifyResult: &domain.SessionResult{
			User: &domain.PublicUser{ID: "u1", Email: "a@x.com"},
		},
	}
	h := NewAuthHandler(newTestContainer(t, stub, "production"))

	req := httptest.NewRequest(http.MethodGet, "/googleLogin/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Contains(t, result, "user")
	assert.NotContains(t, result, "newToken", "fresh sessions must not include a replacement token")
}

func TestVerify_NewTokenIncludedWhenPresent(t *testing.T) {
	stub := &stubAuthService{
		verifyResult: &domain.SessionResult{
			User:     &domain.PublicUser{ID: "u1", Email: "a@x.com"},
			NewToken: "replacement-token",
		},
	}
	h := NewAuthHandler(newTestContainer(t, stub, "production"))

	req := httptest.NewRequest(http.MethodGet, "/googleLogin/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.SessionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "replacement-token", result.NewToken)
}

func TestVerify_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing bearer token",
			err:        errors.NewAuthenticationError(errors.CodeNoTokenProvided, "No token provided", nil),
			wantStatus: http.StatusUnauthorized,
			wantCode:   errors.CodeNoTokenProvided,
		},
		{
			name:       "expired or invalid token",
			err:        errors.NewAuthenticationError(errors.CodeInvalidToken, "Invalid token", assert.AnError),
			wantStatus: http.StatusUnauthorized,
			wantCode:   errors.CodeInvalidToken,
		},
		{
			name:       "subject no longer exists",
			err:        errors.NewNotFoundError(errors.CodeUserNotFound, "User not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   errors.CodeUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(newTestContainer(t, &stubAuthService{verifyErr: tt.err}, "production"))

			req := httptest.NewRequest(http.MethodGet, "/googleLogin/api/auth/verify", nil)
			rec := httptest.NewRecorder()

			h.Verify(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			envelope := decodeEnvelope(t, rec.Body.String())
			assert.Equal(t, tt.wantCode, envelope.Code)
		})
	}
}
