package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ChallengeEnvelope is returned when a login requires a second factor.
type ChallengeEnvelope struct {
	Message        string `json:"message"`
	LoginAttemptID string `json:"loginAttemptId"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// respondError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is infrastructure trouble and stays a 500 without leaking
// details to the caller.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, domain.ErrIncorrectCredentials):
		writeError(w, http.StatusUnauthorized, "incorrect credentials")
	case errors.Is(err, domain.ErrMissingToken):
		writeError(w, http.StatusBadRequest, "missing token")
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
	default:
		writeError(w, http.StatusInternalServerError, "unexpected error")
	}
}
