package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vineetpuranik/live-bootcamp-project/internal/application/auth"
	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
	"github.com/vineetpuranik/live-bootcamp-project/internal/pkg/validate"
)

// JWTCookieName is the cookie carrying the session token.
const JWTCookieName = "jwt"

type SignupRequest struct {
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Requires2FA bool   `json:"requires2FA"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Verify2FARequest struct {
	Email          string `json:"email" validate:"required"`
	LoginAttemptID string `json:"loginAttemptId" validate:"required"`
	TwoFACode      string `json:"2FACode" validate:"required"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthHandler exposes the signup/login/verify/logout endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	email, err := domain.ParseEmail(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	password, err := domain.ParsePassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.Signup(r.Context(), email, password, req.Requires2FA); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "User created successfully!"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	email, err := domain.ParseEmail(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	password, err := domain.ParsePassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.svc.Login(r.Context(), email, password)
	if err != nil {
		respondError(w, err)
		return
	}

	if result.LoginAttemptID != "" {
		writeJSON(w, http.StatusPartialContent, ChallengeEnvelope{
			Message:        "2FA required",
			LoginAttemptID: result.LoginAttemptID,
		})
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "login successful"})
}

func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req Verify2FARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	email, err := domain.ParseEmail(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	attemptID, err := domain.ParseLoginAttemptID(req.LoginAttemptID)
	if err != nil {
		respondError(w, err)
		return
	}
	code, err := domain.ParseTwoFACode(req.TwoFACode)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.svc.Verify2FA(r.Context(), email, attemptID, code)
	if err != nil {
		respondError(w, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "2FA verified"})
}

func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req VerifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.svc.VerifyToken(r.Context(), req.Token); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "token valid"})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(JWTCookieName)
	if err != nil {
		respondError(w, domain.ErrMissingToken)
		return
	}

	if err := h.svc.Logout(r.Context(), cookie.Value); err != nil {
		respondError(w, err)
		return
	}

	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     JWTCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     JWTCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
