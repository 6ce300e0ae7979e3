// pkg/mem/revoked_tokens.go
package mem

import (
	"sync"
	"time"
)

type RevokedTokenStore interface {
	// Revoke remembers token until expiresAt.
	Revoke(token string, expiresAt time.Time)

	// IsRevoked reports whether token was revoked and has not expired yet.
	IsRevoked(token string) bool

	// Sweep drops expired entries and returns how many were removed.
	Sweep() int
}

type RevokedTokens struct {
	mu   sync.RWMutex
	data map[string]time.Time
	now  func() time.Time
}

func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *RevokedTokens) Revoke(token string, expiresAt time.Time) {
	if token == "" || !expiresAt.After(s.now()) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = expiresAt
}

func (s *RevokedTokens) IsRevoked(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.data[token]
	return ok && s.now().Before(expiresAt)
}

func (s *RevokedTokens) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, expiresAt := range s.data {
		if !now.Before(expiresAt) {
			delete(s.data, token)
			removed++
		}
	}
	return removed
}
