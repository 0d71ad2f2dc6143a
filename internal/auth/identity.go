package auth

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"saaskit/internal/model"
)

const (
	// SessionCookieName is the cookie the identity provider stores the session token in.
	SessionCookieName = "__session"

	identityContextKey = "identity"
	userContextKey     = "auth_user"
)

// Identity is the verified subject of a session token.
type Identity struct {
	UserID    string
	SessionID string
	Email     string
	FirstName *string
	LastName  *string
	ImageURL  *string
	ExpiresAt time.Time
}

// User converts the claims carried by the token into a user snapshot.
func (i *Identity) User() *model.User {
	return &model.User{
		ID:        i.UserID,
		Email:     i.Email,
		FirstName: i.FirstName,
		LastName:  i.LastName,
		ImageURL:  i.ImageURL,
	}
}

// Verifier turns a raw session token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// FromContext returns the identity resolved for the request, if any.
func FromContext(c echo.Context) (*Identity, bool) {
	ident, ok := c.Get(identityContextKey).(*Identity)
	return ident, ok && ident != nil
}

// SetIdentity attaches ident to the request context.
func SetIdentity(c echo.Context, ident *Identity) {
	c.Set(identityContextKey, ident)
}

// IsAuthenticated reports whether the request carries a verified session.
func IsAuthenticated(c echo.Context) bool {
	_, ok := FromContext(c)
	return ok
}

// UserFromContext returns the mirrored user set by SyncUser, if any.
func UserFromContext(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(userContextKey).(*model.User)
	return u, ok && u != nil
}
