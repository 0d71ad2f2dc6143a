package auth

import (
	"context"
	"time"

	"saaskit/internal/cache"
)

const (
	revokedSessionKeyPrefix = "revoked_session:"

	// DefaultRevocationTTL bounds how long a revocation is kept when the token expiry is unknown.
	DefaultRevocationTTL = time.Hour
)

// SessionStoreInterface defines session revocation operations.
type SessionStoreInterface interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// SessionStore keeps signed-out session ids in Redis until their tokens expire.
type SessionStore struct {
	cache *cache.Client
}

var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Revoke marks sessionID as signed out for ttl. A failed redis write is
// returned so sign-out can report it. Without a configured redis there is
// nowhere to record revocations and sign-out only clears the cookie.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if sessionID == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultRevocationTTL
	}
	return s.cache.Put(ctx, revokedSessionKeyPrefix+sessionID, []byte("1"), ttl)
}

// IsRevoked checks if a session was signed out.
func (s *SessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	data, err := s.cache.Get(ctx, revokedSessionKeyPrefix+sessionID)
	if err != nil {
		return false, nil // fail safe: treat as not revoked
	}
	return data != nil, nil
}

// RevocationTTL returns how long a revocation for ident must be kept.
func RevocationTTL(ident *Identity, now time.Time) time.Duration {
	if ident == nil || ident.ExpiresAt.IsZero() {
		return DefaultRevocationTTL
	}
	if ttl := ident.ExpiresAt.Sub(now); ttl > 0 {
		return ttl
	}
	return time.Second
}
