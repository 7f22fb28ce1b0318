package handler

import (
	"encoding/json"
	"net/http"

	"fluto-auth/internal/container"
	"fluto-auth/pkg/errors"
)

// AuthHandler handles authentication related requests
type AuthHandler struct {
	container *container.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *container.Container) *AuthHandler {
	return &AuthHandler{
		container: container,
	}
}

// loginRequest is the body of a Google login request
type loginRequest struct {
	Token string `json:"token"`
}

// GoogleLogin handles POST /googleLogin/api/auth/google-login
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()
	cfg := h.container.GetConfig()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, log, errors.NewValidationError(errors.CodeNoTokenProvided, "No token provided"), cfg.IsProduction())
		return
	}

	result, err := h.container.GetAuthService().Login(r.Context(), req.Token)
	if err != nil {
		writeError(w, log, err, cfg.IsProduction())
		return
	}

	writeJSON(w, log, http.StatusOK, result)
}

// Verify handles GET /googleLogin/api/auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()
	cfg := h.container.GetConfig()

	result, err := h.container.GetAuthService().VerifySession(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, log, err, cfg.IsProduction())
		return
	}

	writeJSON(w, log, http.StatusOK, result)
}
