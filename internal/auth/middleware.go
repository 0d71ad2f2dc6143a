package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "saaskit/internal/errors"
	"saaskit/internal/logger"
)

// MiddlewareConfig configures identity resolution.
type MiddlewareConfig struct {
	Verifier Verifier
	Sessions SessionStoreInterface
	Logger   *logger.Logger
}

// Middleware resolves the session token from the Authorization header or the
// session cookie. Requests without a valid token continue anonymously; the
// routing gate and handlers decide what anonymous requests may see.
func Middleware(cfg MiddlewareConfig) echo.MiddlewareFunc {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithFields(zap.String("component", "auth-middleware"))

	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityContextKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:" + SessionCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			ctx := c.Request().Context()
			ident, err := cfg.Verifier.Verify(ctx, token)
			if err != nil {
				return nil, err
			}
			if cfg.Sessions != nil {
				if revoked, _ := cfg.Sessions.IsRevoked(ctx, ident.SessionID); revoked {
					return nil, apperrors.ErrSessionRevoked
				}
			}
			return ident, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrSessionRevoked) {
				log.WithContext(c.Request().Context()).Debug("revoked session presented")
			}
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// SyncUser mirrors the identity provider's user record into the request for
// authenticated requests. Directory failures fall back to the token claims.
func SyncUser(directory Directory, log *logger.Logger) echo.MiddlewareFunc {
	if directory == nil {
		directory = ClaimsDirectory{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := FromContext(c)
			if !ok {
				return next(c)
			}
			u, err := directory.Lookup(c.Request().Context(), ident)
			if err != nil || u == nil {
				log.WithContext(c.Request().Context()).WithUserID(ident.UserID).Warn("user lookup failed, using token claims", zap.Error(err))
				u = ident.User()
			}
			c.Set(userContextKey, u)
			return next(c)
		}
	}
}
