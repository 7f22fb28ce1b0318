package handler

import (
	"encoding/json"
	"net/http"

	"fluto-auth/pkg/errors"
	"fluto-auth/pkg/logger"
)

// errorEnvelope is the normalized error body shared by every endpoint.
// Error carries internal detail and is omitted in production.
type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps any error to the normalized envelope. Unknown errors
// become a generic 500; internal detail leaks only outside production.
func writeError(w http.ResponseWriter, log *logger.Logger, err error, production bool) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.NewInternalError(errors.CodeLoginFailed, "Login failed", err)
	}

	log.WithError(appErr).WithField("code", appErr.Code).Error("Request failed")

	envelope := errorEnvelope{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	if !production && appErr.Internal != nil {
		envelope.Error = appErr.Internal.Error()
	}

	writeJSON(w, log, appErr.StatusCode, envelope)
}
