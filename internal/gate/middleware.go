package gate

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"saaskit/internal/auth"
	"saaskit/internal/logger"
)

const localeContextKey = "locale"

// MiddlewareConfig configures the gate middleware.
type MiddlewareConfig struct {
	Gate *Gate
	// ResolveLocale returns the locale to inject when a path has none.
	// Nil means always use the default locale.
	ResolveLocale func(c echo.Context) string
	Logger        *logger.Logger
}

// Middleware runs the gate in front of every route. It must be installed after
// auth.Middleware so the authentication flag is known.
func Middleware(cfg MiddlewareConfig) echo.MiddlewareFunc {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if cfg.Gate.IsExcluded(req.URL.Path) {
				return next(c)
			}

			gateReq := Request{
				Path:          req.URL.Path,
				RawQuery:      req.URL.RawQuery,
				Authenticated: auth.IsAuthenticated(c),
			}
			if cfg.ResolveLocale != nil {
				gateReq.Locale = cfg.ResolveLocale(c)
			}

			decision := cfg.Gate.Decide(gateReq)
			switch decision.Kind {
			case RedirectLocale, RedirectSignIn:
				log.WithContext(req.Context()).Debug("gate redirect",
					zap.String("path", req.URL.Path),
					zap.Stringer("kind", decision.Kind),
					zap.String("location", decision.Location))
				return c.Redirect(redirectStatus(req.Method), decision.Location)
			}

			if decision.Locale != "" {
				c.Set(localeContextKey, decision.Locale)
			}
			return next(c)
		}
	}
}

// redirectStatus keeps the method for reads and turns anything else into a
// GET of the target, so form bodies are not replayed at the sign-in page.
func redirectStatus(method string) int {
	if method == http.MethodGet || method == http.MethodHead {
		return http.StatusTemporaryRedirect
	}
	return http.StatusSeeOther
}

// LocaleFromContext returns the locale of the current path as resolved by the gate.
func LocaleFromContext(c echo.Context) (string, bool) {
	l, ok := c.Get(localeContextKey).(string)
	return l, ok && l != ""
}
