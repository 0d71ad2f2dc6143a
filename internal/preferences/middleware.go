package preferences

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"saaskit/internal/auth"
	"saaskit/internal/i18n"
	"saaskit/internal/logger"
)

const contextKey = "preferences"

// Loader resolves the Store for a visitor from the cookie value and, for
// signed-in users, the server-side copy.
type Loader interface {
	Load(ctx context.Context, authID, cookieValue string) (*Store, error)
}

// Middleware restores the preference Store for every request and mirrors the
// signed-in user into it. It must run after auth.SyncUser.
func Middleware(loader Loader, log *logger.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var authID, cookieValue string
			if ident, ok := auth.FromContext(c); ok {
				authID = ident.UserID
			}
			if ck, err := c.Cookie(CookieName); err == nil {
				cookieValue = ck.Value
			}

			store, err := loader.Load(c.Request().Context(), authID, cookieValue)
			if err != nil {
				log.WithContext(c.Request().Context()).WithUserID(authID).Warn("load preferences failed, using defaults", zap.Error(err))
			}
			if store == nil {
				store = New()
			}
			if u, ok := auth.UserFromContext(c); ok {
				store.SetUser(u)
			}
			c.Set(contextKey, store)
			return next(c)
		}
	}
}

// FromContext returns the request's Store, or a default Store when the
// middleware did not run.
func FromContext(c echo.Context) *Store {
	if s, ok := c.Get(contextKey).(*Store); ok && s != nil {
		return s
	}
	s := New()
	c.Set(contextKey, s)
	return s
}

// WriteCookie persists the Store's preferences to the response.
func WriteCookie(c echo.Context, s *Store, secure bool) error {
	ck, err := Cookie(s.Preferences(), secure)
	if err != nil {
		return err
	}
	c.SetCookie(ck)
	return nil
}

// LocaleResolver picks the locale injected into paths without one: the
// persisted preference, then Accept-Language when detect is set, then the
// default locale.
func LocaleResolver(detect bool) func(echo.Context) string {
	return func(c echo.Context) string {
		var preferred, accept string
		if s := FromContext(c); s.Restored() {
			preferred = s.Locale()
		}
		if detect {
			accept = c.Request().Header.Get("Accept-Language")
		}
		return i18n.Negotiate(preferred, accept)
	}
}
