package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vineetpuranik/live-bootcamp-project/internal/application/session"
	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/smtp"
)

// LoginResult is the outcome of a successful credential check: either an
// issued session token, or a pending second-factor challenge.
type LoginResult struct {
	Token          string
	LoginAttemptID string
}

// Service is the login state machine coordinating the credential store, the
// challenge store, the email channel, and the session issuer. Every failure
// is terminal for the current request; nothing is retried.
type Service interface {
	Signup(ctx context.Context, email domain.Email, password domain.Password, requires2FA bool) error
	Login(ctx context.Context, email domain.Email, password domain.Password) (*LoginResult, error)
	Verify2FA(ctx context.Context, email domain.Email, attemptID domain.LoginAttemptID, code domain.TwoFACode) (string, error)
	VerifyToken(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}

type service struct {
	users    domain.UserStore
	codes    domain.TwoFACodeStore
	sessions session.Service
	mailer   smtp.Mailer
}

type ServiceDeps struct {
	Users    domain.UserStore
	Codes    domain.TwoFACodeStore
	Sessions session.Service
	Mailer   smtp.Mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:    deps.Users,
		codes:    deps.Codes,
		sessions: deps.Sessions,
		mailer:   deps.Mailer,
	}
}

func (s *service) Signup(ctx context.Context, email domain.Email, password domain.Password, requires2FA bool) error {
	if err := s.users.Add(ctx, email, password, requires2FA); err != nil {
		return err
	}
	slog.Info("user registered", "email", email.String(), "requires_2fa", requires2FA)
	return nil
}

func (s *service) Login(ctx context.Context, email domain.Email, password domain.Password) (*LoginResult, error) {
	if err := s.users.Validate(ctx, email, password); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, domain.ErrIncorrectCredentials
		}
		return nil, err
	}

	u, err := s.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrIncorrectCredentials
		}
		return nil, err
	}

	if !u.Requires2FA {
		token, err := s.sessions.Issue(ctx, email)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Token: token}, nil
	}

	return s.issueChallenge(ctx, email)
}

// issueChallenge stores a fresh challenge (replacing any pending one) and
// asks the email channel to deliver the code. A delivery failure aborts the
// flow; the stored challenge stays behind until overwritten or expired.
func (s *service) issueChallenge(ctx context.Context, email domain.Email) (*LoginResult, error) {
	attemptID := domain.NewLoginAttemptID()
	code, err := domain.NewTwoFACode()
	if err != nil {
		return nil, err
	}

	if err := s.codes.Add(ctx, email, attemptID, code); err != nil {
		return nil, fmt.Errorf("store challenge: %w", err)
	}

	body := fmt.Sprintf("Your verification code: %s", code)
	if err := s.mailer.SendEmail(email.String(), "Your verification code", body); err != nil {
		slog.Warn("2FA code delivery failed", "email", email.String(), "err", err)
		return nil, fmt.Errorf("deliver 2FA code: %w", err)
	}

	slog.Info("2FA challenge issued", "email", email.String())
	return &LoginResult{LoginAttemptID: attemptID.String()}, nil
}

func (s *service) Verify2FA(ctx context.Context, email domain.Email, attemptID domain.LoginAttemptID, code domain.TwoFACode) (string, error) {
	storedID, storedCode, err := s.codes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrIncorrectCredentials
		}
		return "", err
	}

	if storedID.String() != attemptID.String() || storedCode.String() != code.String() {
		return "", domain.ErrIncorrectCredentials
	}

	// Delete before issuing the session so the challenge is single use even
	// if issuance fails.
	if err := s.codes.Remove(ctx, email); err != nil {
		return "", fmt.Errorf("consume challenge: %w", err)
	}

	return s.sessions.Issue(ctx, email)
}

func (s *service) VerifyToken(ctx context.Context, token string) error {
	_, err := s.sessions.Validate(ctx, token)
	return err
}

func (s *service) Logout(ctx context.Context, token string) error {
	if _, err := s.sessions.Validate(ctx, token); err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, token)
}
