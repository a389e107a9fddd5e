package session

import (
	"context"
	"fmt"
	"time"

	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
	jwtinfra "github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/jwt"
)

// Service issues and validates signed session tokens. Revocation is checked
// only at validation time; issuance never consults the revocation store.
type Service interface {
	Issue(ctx context.Context, email domain.Email) (string, error)
	// Validate returns the embedded subject, or ErrInvalidToken when the
	// signature does not verify, the token is expired, or it was revoked.
	Validate(ctx context.Context, token string) (domain.Email, error)
	// Revoke records the token as invalid for the remainder of its own
	// validity window.
	Revoke(ctx context.Context, token string) error
}

type tokenProvider interface {
	Sign(subject string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

type service struct {
	provider tokenProvider
	banned   domain.BannedTokenStore
}

type ServiceDeps struct {
	Provider     tokenProvider
	BannedTokens domain.BannedTokenStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		provider: deps.Provider,
		banned:   deps.BannedTokens,
	}
}

func (s *service) Issue(ctx context.Context, email domain.Email) (string, error) {
	token, err := s.provider.Sign(email.String())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *service) Validate(ctx context.Context, token string) (domain.Email, error) {
	claims, err := s.provider.Verify(token)
	if err != nil {
		return domain.Email{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	revoked, err := s.banned.Contains(ctx, token)
	if err != nil {
		return domain.Email{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return domain.Email{}, fmt.Errorf("token revoked: %w", domain.ErrInvalidToken)
	}

	email, err := domain.ParseEmail(claims.Subject)
	if err != nil {
		return domain.Email{}, fmt.Errorf("bad subject: %w", domain.ErrInvalidToken)
	}
	return email, nil
}

func (s *service) Revoke(ctx context.Context, token string) error {
	claims, err := s.provider.Verify(token)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	// The revocation entry only needs to live as long as the token itself
	// could still be presented.
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.banned.Store(ctx, token, ttl); err != nil {
		return fmt.Errorf("store revoked token: %w", err)
	}
	return nil
}
