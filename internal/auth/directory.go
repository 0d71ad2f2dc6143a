package auth

import (
	"context"

	"saaskit/internal/model"
)

// Directory resolves the mirrored user record for an identity.
type Directory interface {
	Lookup(ctx context.Context, ident *Identity) (*model.User, error)
}

// ClaimsDirectory builds users from the claims carried by the session token.
type ClaimsDirectory struct{}

var _ Directory = ClaimsDirectory{}

// Lookup implements Directory.
func (ClaimsDirectory) Lookup(_ context.Context, ident *Identity) (*model.User, error) {
	return ident.User(), nil
}
