package memory

import (
	"context"
	"sync"
	"time"
)

// BannedTokenStore is the volatile revocation backend. Each entry carries the
// deadline at which the token would have expired on its own; lookups treat
// anything past its deadline as absent and writes prune lapsed entries, so
// the set never grows beyond tokens revoked within one validity window.
type BannedTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewBannedTokenStore() *BannedTokenStore {
	return &BannedTokenStore{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (s *BannedTokenStore) Store(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for t, deadline := range s.tokens {
		if deadline.Before(now) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = now.Add(ttl)
	return nil
}

func (s *BannedTokenStore) Contains(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deadline, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	return s.now().Before(deadline), nil
}
