package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/session"
	"github.com/labstack/echo/v4"

	"saaskit/internal/model"
)

// SessionIssuer mints session tokens. Only the local provider issues its own.
type SessionIssuer interface {
	GenerateSessionToken(user model.User) (sessionID string, token string, err error)
}

var _ SessionIssuer = (*JWTService)(nil)

// RemoteRevoker ends a session at the identity provider.
type RemoteRevoker interface {
	RevokeSession(ctx context.Context, sessionID string) error
}

// UserForgetter drops a cached user mirror.
type UserForgetter interface {
	Forget(ctx context.Context, userID string)
}

var _ UserForgetter = (*ClerkDirectory)(nil)

// ClerkSessions revokes Clerk sessions through the backend API.
type ClerkSessions struct {
	client *session.Client
}

var _ RemoteRevoker = (*ClerkSessions)(nil)

// NewClerkSessions creates a session client for cfg.
func NewClerkSessions(cfg *clerk.ClientConfig) *ClerkSessions {
	return &ClerkSessions{client: session.NewClient(cfg)}
}

// RevokeSession implements RemoteRevoker.
func (s *ClerkSessions) RevokeSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	_, err := s.client.Revoke(ctx, &session.RevokeParams{ID: sessionID})
	return err
}

// SetSessionCookie stores token in the session cookie until expiresAt.
func SetSessionCookie(c echo.Context, token string, expiresAt time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClerkFrontendAPI derives the Frontend API host encoded in a publishable key
// ("pk_test_" or "pk_live_" followed by base64 of "<host>$"). It returns ""
// for malformed keys.
func ClerkFrontendAPI(publishableKey string) string {
	var encoded string
	switch {
	case strings.HasPrefix(publishableKey, "pk_test_"):
		encoded = strings.TrimPrefix(publishableKey, "pk_test_")
	case strings.HasPrefix(publishableKey, "pk_live_"):
		encoded = strings.TrimPrefix(publishableKey, "pk_live_")
	default:
		return ""
	}
	decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return ""
	}
	host, ok := strings.CutSuffix(string(decoded), "$")
	if !ok || host == "" {
		return ""
	}
	return host
}

// ClerkScriptURL is the browser bundle URL served by the Frontend API.
func ClerkScriptURL(publishableKey string) string {
	host := ClerkFrontendAPI(publishableKey)
	if host == "" {
		return ""
	}
	return "https://" + host + "/npm/@clerk/clerk-js@5/dist/clerk.browser.js"
}
