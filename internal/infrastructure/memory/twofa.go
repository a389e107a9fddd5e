package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
)

type challenge struct {
	attemptID domain.LoginAttemptID
	code      domain.TwoFACode
	expiresAt time.Time
}

// TwoFACodeStore is the volatile challenge backend: one pending challenge per
// email, replaced on every Add. Entries expire after the configured TTL so a
// stale challenge from an aborted login cannot be redeemed forever.
type TwoFACodeStore struct {
	mu    sync.RWMutex
	codes map[string]challenge
	ttl   time.Duration
	now   func() time.Time
}

func NewTwoFACodeStore(ttl time.Duration) *TwoFACodeStore {
	return &TwoFACodeStore{
		codes: make(map[string]challenge),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *TwoFACodeStore) Add(ctx context.Context, email domain.Email, attemptID domain.LoginAttemptID, code domain.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email.String()] = challenge{
		attemptID: attemptID,
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *TwoFACodeStore) Get(ctx context.Context, email domain.Email) (domain.LoginAttemptID, domain.TwoFACode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.codes[email.String()]
	if !ok || s.now().After(c.expiresAt) {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("challenge for %s: %w", email, domain.ErrNotFound)
	}
	return c.attemptID, c.code, nil
}

func (s *TwoFACodeStore) Remove(ctx context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email.String())
	return nil
}
