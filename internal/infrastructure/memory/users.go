package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/hash"
)

// UserStore is the volatile credential backend: a map keyed by email under a
// reader/writer lock. Duplicate detection is a check-then-insert performed
// while holding the writer lock, so concurrent signups with the same email
// cannot both succeed.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	hasher *hash.Pool
}

func NewUserStore(hasher *hash.Pool) *UserStore {
	return &UserStore{
		users:  make(map[string]domain.User),
		hasher: hasher,
	}
}

func (s *UserStore) Add(ctx context.Context, email domain.Email, password domain.Password, requires2FA bool) error {
	// Hash before taking the lock; the expensive work must not serialize
	// unrelated reads and the uniqueness check is redone under the lock.
	passwordHash, err := s.hasher.Hash(ctx, password.String())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email.String()]; ok {
		return fmt.Errorf("user %s: %w", email, domain.ErrAlreadyExists)
	}
	s.users[email.String()] = domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		Requires2FA:  requires2FA,
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, email domain.Email) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email.String()]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return &u, nil
}

func (s *UserStore) Validate(ctx context.Context, email domain.Email, password domain.Password) error {
	s.mu.RLock()
	u, ok := s.users[email.String()]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}

	if err := s.hasher.Verify(ctx, password.String(), u.PasswordHash); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}
