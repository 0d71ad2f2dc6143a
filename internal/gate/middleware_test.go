package gate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"saaskit/internal/auth"
)

func newGateServer(authenticated bool, resolve func(echo.Context) string) *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authenticated {
				auth.SetIdentity(c, &auth.Identity{UserID: "user_1"})
			}
			return next(c)
		}
	})
	e.Use(Middleware(MiddlewareConfig{Gate: MustNew(DefaultRules()), ResolveLocale: resolve}))
	handler := func(c echo.Context) error {
		locale, _ := LocaleFromContext(c)
		return c.String(http.StatusOK, "ok:"+locale)
	}
	e.GET("/:locale", handler)
	e.GET("/:locale/dashboard", handler)
	e.GET("/api/users/me", func(c echo.Context) error { return c.String(http.StatusOK, "api") })
	return e
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	return serveMethod(e, http.MethodGet, target)
}

func serveMethod(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestMiddleware_LocaleRedirect(t *testing.T) {
	rec := serve(newGateServer(false, nil), "/dashboard?x=1")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/en/dashboard?x=1", rec.Header().Get(echo.HeaderLocation))
}

func TestMiddleware_UsesResolvedLocale(t *testing.T) {
	rec := serve(newGateServer(false, func(echo.Context) string { return "es" }), "/")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/es", rec.Header().Get(echo.HeaderLocation))
}

func TestMiddleware_SignInRedirect(t *testing.T) {
	rec := serve(newGateServer(false, nil), "/da/dashboard")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/da/sign-in?redirect_url=%2Fda%2Fdashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestMiddleware_AuthenticatedPasses(t *testing.T) {
	rec := serve(newGateServer(true, nil), "/da/dashboard")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok:da", rec.Body.String())
}

func TestMiddleware_APIBypassesGate(t *testing.T) {
	rec := serve(newGateServer(false, nil), "/api/users/me")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "api", rec.Body.String())
}

func TestMiddleware_RedirectStatusByMethod(t *testing.T) {
	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/en/dashboard", http.StatusTemporaryRedirect},
		{http.MethodHead, "/en/dashboard", http.StatusTemporaryRedirect},
		{http.MethodPost, "/en/settings/profile", http.StatusSeeOther},
		{http.MethodPost, "/settings/profile", http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serveMethod(newGateServer(false, nil), tt.method, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestMiddleware_FileUnderProtectedPathRedirects(t *testing.T) {
	rec := serve(newGateServer(false, nil), "/en/dashboard/report.pdf")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/en/sign-in?redirect_url=%2Fen%2Fdashboard%2Freport.pdf", rec.Header().Get(echo.HeaderLocation))
}
