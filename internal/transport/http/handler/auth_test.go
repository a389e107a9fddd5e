package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vineetpuranik/live-bootcamp-project/internal/application/auth"
	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, email domain.Email, password domain.Password, requires2FA bool) error {
	args := m.Called(ctx, email, password, requires2FA)
	return args.Error(0)
}

func (m *mockAuthService) Login(ctx context.Context, email domain.Email, password domain.Password) (*auth.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *mockAuthService) Verify2FA(ctx context.Context, email domain.Email, attemptID domain.LoginAttemptID, code domain.TwoFACode) (string, error) {
	args := m.Called(ctx, email, attemptID, code)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) VerifyToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func postJSON(t *testing.T, h http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == JWTCookieName {
			return c
		}
	}
	return nil
}

func TestSignup_Created(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Signup", mock.Anything, mock.Anything, mock.Anything, true).Return(nil)

	rec := postJSON(t, h.Signup, "/signup", SignupRequest{
		Email:       "new@example.com",
		Password:    "password123",
		Requires2FA: true,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User created successfully!")
}

func TestSignup_Duplicate(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Signup", mock.Anything, mock.Anything, mock.Anything, false).Return(domain.ErrAlreadyExists)

	rec := postJSON(t, h.Signup, "/signup", SignupRequest{
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignup_InvalidEmail(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	rec := postJSON(t, h.Signup, "/signup", SignupRequest{
		Email:    "not-an-email",
		Password: "password123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSignup_ShortPassword(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	rec := postJSON(t, h.Signup, "/signup", SignupRequest{
		Email:    "new@example.com",
		Password: "short",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_MalformedBody(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSignup_MissingFields(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	rec := postJSON(t, h.Signup, "/signup", map[string]string{"email": "new@example.com"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogin_SetsCookie(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(&auth.LoginResult{Token: "session.jwt"}, nil)

	rec := postJSON(t, h.Login, "/login", LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "session.jwt", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLogin_2FAChallenge(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(&auth.LoginResult{LoginAttemptID: "11e4f2c0-5f3a-4b7a-9c2e-000000000000"}, nil)

	rec := postJSON(t, h.Login, "/login", LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusPartialContent, rec.Code)

	var body ChallengeEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2FA required", body.Message)
	assert.Equal(t, "11e4f2c0-5f3a-4b7a-9c2e-000000000000", body.LoginAttemptID)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrIncorrectCredentials)

	rec := postJSON(t, h.Login, "/login", LoginRequest{
		Email:    "user@example.com",
		Password: "wrongpass99",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestVerify2FA_SetsCookie(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Verify2FA", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("session.jwt", nil)

	rec := postJSON(t, h.Verify2FA, "/verify-2fa", Verify2FARequest{
		Email:          "user@example.com",
		LoginAttemptID: "11e4f2c0-5f3a-4b7a-9c2e-000000000000",
		TwoFACode:      "834629",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "session.jwt", cookie.Value)
}

func TestVerify2FA_BadAttemptID(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	rec := postJSON(t, h.Verify2FA, "/verify-2fa", Verify2FARequest{
		Email:          "user@example.com",
		LoginAttemptID: "not-a-uuid",
		TwoFACode:      "834629",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Verify2FA", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify2FA_WrongCode(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Verify2FA", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", domain.ErrIncorrectCredentials)

	rec := postJSON(t, h.Verify2FA, "/verify-2fa", Verify2FARequest{
		Email:          "user@example.com",
		LoginAttemptID: "11e4f2c0-5f3a-4b7a-9c2e-000000000000",
		TwoFACode:      "000000",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyToken(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("VerifyToken", mock.Anything, "good.jwt").Return(nil)

	rec := postJSON(t, h.VerifyToken, "/verify-token", VerifyTokenRequest{Token: "good.jwt"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVerifyToken_Invalid(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("VerifyToken", mock.Anything, "bad.jwt").Return(domain.ErrInvalidToken)

	rec := postJSON(t, h.VerifyToken, "/verify-token", VerifyTokenRequest{Token: "bad.jwt"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Logout", mock.Anything, "session.jwt").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: JWTCookieName, Value: "session.jwt"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestLogout_MissingCookie(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestLogout_InvalidToken(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	svc.On("Logout", mock.Anything, "revoked.jwt").Return(domain.ErrInvalidToken)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: JWTCookieName, Value: "revoked.jwt"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// The cookie is only cleared on a successful logout.
	assert.Nil(t, sessionCookie(t, rec))
}
