package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwks"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"

	"saaskit/internal/cache"
	"saaskit/internal/model"
)

// ClerkVerifier verifies Clerk session tokens, caching JSON web keys by key id.
type ClerkVerifier struct {
	jwksClient *jwks.Client
	leeway     time.Duration
	parties    map[string]struct{}

	mu   sync.RWMutex
	keys map[string]*clerk.JSONWebKey
}

var _ Verifier = (*ClerkVerifier)(nil)

// NewClerkConfig builds a Clerk client configuration for secretKey.
func NewClerkConfig(secretKey string) *clerk.ClientConfig {
	cfg := &clerk.ClientConfig{}
	cfg.Key = clerk.String(secretKey)
	return cfg
}

// NewClerkVerifier creates a verifier backed by the Clerk JWKS endpoint.
// Tokens whose azp claim names an origin outside authorizedParties are
// rejected; an empty list accepts any origin.
func NewClerkVerifier(cfg *clerk.ClientConfig, authorizedParties ...string) *ClerkVerifier {
	parties := make(map[string]struct{}, len(authorizedParties))
	for _, p := range authorizedParties {
		if p != "" {
			parties[p] = struct{}{}
		}
	}
	return &ClerkVerifier{
		jwksClient: jwks.NewClient(cfg),
		leeway:     5 * time.Second,
		parties:    parties,
		keys:       make(map[string]*clerk.JSONWebKey),
	}
}

// authorizedParty reports whether azp may present tokens. Tokens minted
// without an azp claim (backend-issued) are accepted.
func (v *ClerkVerifier) authorizedParty(azp string) bool {
	if azp == "" || len(v.parties) == 0 {
		return true
	}
	_, ok := v.parties[azp]
	return ok
}

// Verify implements Verifier.
func (v *ClerkVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	unverified, err := jwt.Decode(ctx, &jwt.DecodeParams{Token: token})
	if err != nil {
		return nil, fmt.Errorf("decode session token: %w", err)
	}

	jwk, err := v.jsonWebKey(ctx, unverified.KeyID)
	if err != nil {
		return nil, err
	}

	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{
		Token:                  token,
		JWK:                    jwk,
		Leeway:                 v.leeway,
		AuthorizedPartyHandler: v.authorizedParty,
	})
	if err != nil {
		return nil, fmt.Errorf("verify session token: %w", err)
	}
	return identityFromClaims(claims), nil
}

func identityFromClaims(claims *clerk.SessionClaims) *Identity {
	ident := &Identity{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
	}
	if claims.Expiry != nil {
		ident.ExpiresAt = time.Unix(*claims.Expiry, 0)
	}
	return ident
}

func (v *ClerkVerifier) jsonWebKey(ctx context.Context, keyID string) (*clerk.JSONWebKey, error) {
	v.mu.RLock()
	jwk, ok := v.keys[keyID]
	v.mu.RUnlock()
	if ok {
		return jwk, nil
	}

	jwk, err := jwt.GetJSONWebKey(ctx, &jwt.GetJSONWebKeyParams{
		KeyID:      keyID,
		JWKSClient: v.jwksClient,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch json web key %s: %w", keyID, err)
	}

	v.mu.Lock()
	v.keys[keyID] = jwk
	v.mu.Unlock()
	return jwk, nil
}

// ClerkDirectory looks users up through the Clerk Backend API.
type ClerkDirectory struct {
	users *user.Client
	cache *cache.Client
	ttl   time.Duration
}

var _ Directory = (*ClerkDirectory)(nil)

// NewClerkDirectory creates a directory that caches Clerk users for ttl.
func NewClerkDirectory(cfg *clerk.ClientConfig, cache *cache.Client, ttl time.Duration) *ClerkDirectory {
	return &ClerkDirectory{
		users: user.NewClient(cfg),
		cache: cache,
		ttl:   ttl,
	}
}

func (d *ClerkDirectory) cacheKey(userID string) string {
	return "clerk_user:" + userID
}

// Lookup implements Directory.
func (d *ClerkDirectory) Lookup(ctx context.Context, ident *Identity) (*model.User, error) {
	var cached model.User
	if d.cache.GetJSON(ctx, d.cacheKey(ident.UserID), &cached) {
		return &cached, nil
	}

	u, err := d.users.Get(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("get clerk user %s: %w", ident.UserID, err)
	}

	mapped := MapClerkUser(u)
	d.cache.SetJSON(ctx, d.cacheKey(ident.UserID), mapped, d.ttl)
	return mapped, nil
}

// Forget drops the cached user so the next lookup hits Clerk.
func (d *ClerkDirectory) Forget(ctx context.Context, userID string) {
	_ = d.cache.Delete(ctx, d.cacheKey(userID))
}

// MapClerkUser converts a Clerk user to the mirrored user record.
func MapClerkUser(u *clerk.User) *model.User {
	if u == nil {
		return nil
	}
	out := &model.User{
		ID:        u.ID,
		FirstName: nonEmpty(u.FirstName),
		LastName:  nonEmpty(u.LastName),
		ImageURL:  nonEmpty(u.ImageURL),
	}
	for _, email := range u.EmailAddresses {
		if email == nil {
			continue
		}
		if u.PrimaryEmailAddressID != nil && email.ID == *u.PrimaryEmailAddressID {
			out.Email = email.EmailAddress
			break
		}
	}
	// fall back to the first address when no primary is set
	if out.Email == "" && len(u.EmailAddresses) > 0 && u.EmailAddresses[0] != nil {
		out.Email = u.EmailAddresses[0].EmailAddress
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
